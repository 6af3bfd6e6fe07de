package dto

import (
	"time"

	"github.com/spec-kit/listing-service/internal/domain"
)

// RegisterRequest payload.
type RegisterRequest struct {
	Email     string  `json:"email"`
	Password  string  `json:"password"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
	UserType  string  `json:"user_type"`
}

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries an issued token.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UserResponse is the account profile representation.
type UserResponse struct {
	ID         string                 `json:"id"`
	Email      string                 `json:"email"`
	FirstName  *string                `json:"first_name"`
	LastName   *string                `json:"last_name"`
	Phone      *string                `json:"phone"`
	Permission domain.PermissionLevel `json:"permission_level"`
	UserType   domain.UserType        `json:"user_type"`
	CreatedAt  time.Time              `json:"created_at"`
	UpdatedAt  time.Time              `json:"updated_at"`
}

// FromUser maps the domain user to its response shape.
func FromUser(user *domain.User) UserResponse {
	return UserResponse{
		ID:         user.ID,
		Email:      user.Email,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Phone:      user.Phone,
		Permission: user.Permission,
		UserType:   user.UserType,
		CreatedAt:  user.CreatedAt,
		UpdatedAt:  user.UpdatedAt,
	}
}
