package models

import "admin/internal/domain"

// RoleAdmin is the only role allowed to hold a dashboard session.
const RoleAdmin = "admin"

// AdminUser is the identity returned by /auth/login.
type AdminUser struct {
	ID        domain.ID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullName"`
	Role      string    `json:"role"`
	AvatarURL *string   `json:"avatarUrl,omitempty"`
}

// IsAdmin reports whether the identity carries the privileged role.
func (u AdminUser) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Valid reports whether the identity is complete enough to restore a session.
func (u AdminUser) Valid() bool {
	return u.ID != "" && u.Email != "" && u.IsAdmin()
}

// AuthTokens is the token pair issued by the API.
type AuthTokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// AuthResponse is the payload of a successful login.
type AuthResponse struct {
	User    AdminUser  `json:"user"`
	Session AuthTokens `json:"session"`
}

// Credentials is the login form.
type Credentials struct {
	Email    string `json:"email" form:"email" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}
