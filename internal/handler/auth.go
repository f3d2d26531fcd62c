package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/NazarKravchenk0/cinema-booking-api/internal/config"
	"github.com/NazarKravchenk0/cinema-booking-api/internal/model"
	"github.com/NazarKravchenk0/cinema-booking-api/internal/repository"
	"github.com/NazarKravchenk0/cinema-booking-api/internal/utils"
	"github.com/NazarKravchenk0/cinema-booking-api/internal/view"
)

// AuthHandler serves registration, login, token refresh, logout and
// the profile endpoints.
type AuthHandler struct {
	Users  *repository.UserRepo
	Tokens *repository.TokenRepo
	Cfg    *config.Config
}

func NewAuthHandler(users *repository.UserRepo, tokens *repository.TokenRepo, cfg *config.Config) *AuthHandler {
	return &AuthHandler{Users: users, Tokens: tokens, Cfg: cfg}
}

type registerReq struct {
	ID       uint64 `json:"id"` // read-only, discarded
	Email    string `json:"email"`
	Password string `json:"password"`
	IsStaff  bool   `json:"is_staff"` // read-only, discarded
}

// Register creates a user account. The staff flag cannot be set here;
// new accounts are always regular users.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if errs := bindStrict(c, &req); errs != nil {
		return validationFailed(c, errs)
	}

	errs := FieldErrors{}
	if !validEmail(req.Email) {
		errs["email"] = "a valid email address is required"
	}
	if len(req.Password) < 5 {
		errs["password"] = "password must be at least 5 characters"
	}
	if len(errs) > 0 {
		return validationFailed(c, errs)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	id, err := h.Users.Create(ctx, req.Email, req.Password, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return validationFailed(c, FieldErrors{"email": "a user with that email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create user"})
	}

	return c.JSON(http.StatusCreated, view.NewUserView(model.User{ID: id, Email: req.Email}))
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and issues a fresh token pair. The failure
// response is deliberately identical for an unknown email and a wrong
// password. Tokens from earlier logins stay valid until they expire.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if errs := bindStrict(c, &req); errs != nil {
		return validationFailed(c, errs)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil || !utils.VerifyPassword(user.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	return h.issueTokens(ctx, c, user.ID, user.IsStaff, user.Email)
}

type refreshReq struct {
	RefreshToken string `json:"refresh_token"`
}

// Refresh exchanges a valid refresh token for a new pair and revokes
// the presented one.
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if errs := bindStrict(c, &req); errs != nil {
		return validationFailed(c, errs)
	}
	if req.RefreshToken == "" {
		return validationFailed(c, FieldErrors{"refresh_token": "this field is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	hash := utils.HashRefreshRaw(req.RefreshToken)
	userID, err := h.Tokens.ValidateRefresh(ctx, hash)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired refresh token"})
	}

	user, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired refresh token"})
	}

	// Rotate: the presented token is dead from here on.
	if err := h.Tokens.RevokeByHash(ctx, hash); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not refresh token"})
	}

	return h.issueTokens(ctx, c, user.ID, user.IsStaff, user.Email)
}

type logoutReq struct {
	RefreshToken string `json:"refresh_token"`
	All          bool   `json:"all"`
}

// Logout revokes the presented refresh token, or with "all" every active
// token of the same user. Access tokens stay valid until they expire.
func (h *AuthHandler) Logout(c echo.Context) error {
	var req logoutReq
	if errs := bindStrict(c, &req); errs != nil {
		return validationFailed(c, errs)
	}
	if req.RefreshToken == "" {
		return validationFailed(c, FieldErrors{"refresh_token": "this field is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	hash := utils.HashRefreshRaw(req.RefreshToken)
	userID, err := h.Tokens.ValidateRefresh(ctx, hash)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired refresh token"})
	}

	if req.All {
		err = h.Tokens.RevokeAllForUser(ctx, userID)
	} else {
		err = h.Tokens.RevokeByHash(ctx, hash)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not log out"})
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthHandler) issueTokens(ctx context.Context, c echo.Context, userID uint64, staff bool, email string) error {
	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, userID, staff, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not issue token"})
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.RefreshTTLDays)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not issue token"})
	}
	if err := h.Tokens.StoreRefresh(ctx, userID, utils.HashRefreshRaw(refresh.Raw), refresh.Exp); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not issue token"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user":          echo.Map{"id": userID, "email": email, "is_staff": staff},
		"access_token":  access.Token,
		"refresh_token": refresh.Raw,
		"expires_at":    access.Exp,
	})
}

// Me returns the caller's own profile.
func (h *AuthHandler) Me(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load profile"})
	}

	return c.JSON(http.StatusOK, view.NewUserView(user))
}

type updateMeReq struct {
	ID      uint64  `json:"id"`       // read-only, discarded
	Email   *string `json:"email"`
	IsStaff *bool   `json:"is_staff"` // read-only, discarded
}

// UpdateMe changes the caller's email. id and is_staff are accepted in
// the body but never applied; privilege changes do not happen here.
func (h *AuthHandler) UpdateMe(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
	}

	var req updateMeReq
	if errs := bindStrict(c, &req); errs != nil {
		return validationFailed(c, errs)
	}

	// PUT replaces the profile and must carry the email; only PATCH may
	// leave it out.
	if c.Request().Method == http.MethodPut && req.Email == nil {
		return validationFailed(c, FieldErrors{"email": "this field is required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if req.Email != nil {
		if !validEmail(*req.Email) {
			return validationFailed(c, FieldErrors{"email": "a valid email address is required"})
		}
		if err := h.Users.UpdateEmail(ctx, userID, *req.Email); err != nil {
			if errors.Is(err, repository.ErrEmailExists) {
				return validationFailed(c, FieldErrors{"email": "a user with that email already exists"})
			}
			if errors.Is(err, repository.ErrNotFound) {
				return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update profile"})
		}
	}

	user, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not load profile"})
	}
	return c.JSON(http.StatusOK, view.NewUserView(user))
}
