package model

import "time"

// User represents an application user record as stored in the `users`
// table. Staff users are allowed to write catalog resources; regular
// users may only read them and manage their own orders. The json tags
// are omitted because these structs are used by the repository layer;
// handlers render users through the view package.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	IsStaff      bool      // users.is_staff
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// AuthToken models an entry in the `auth_tokens` table. Each refresh
// token belongs to a user and carries metadata for expiry and
// revocation. The plain token is never stored; only its SHA-256 hash.
type AuthToken struct {
	ID        uint64     // auth_tokens.id
	UserID    uint64     // auth_tokens.user_id
	TokenHash string     // auth_tokens.token_hash
	ExpiresAt time.Time  // auth_tokens.expires_at
	RevokedAt *time.Time // auth_tokens.revoked_at (nullable)
	CreatedAt time.Time  // auth_tokens.created_at
}
