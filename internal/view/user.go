package view

import "github.com/NazarKravchenk0/cinema-booking-api/internal/model"

// UserView renders a user's own profile. The password hash never leaves
// the repository layer.
type UserView struct {
	ID      uint64 `json:"id"`
	Email   string `json:"email"`
	IsStaff bool   `json:"is_staff"`
}

func NewUserView(u model.User) UserView {
	return UserView{ID: u.ID, Email: u.Email, IsStaff: u.IsStaff}
}
