package domain

import "time"

// PermissionLevel is an opaque capability value carried by every user.
type PermissionLevel int

const (
	PermissionRegular   PermissionLevel = 1
	PermissionModerator PermissionLevel = 2
)

// UserType distinguishes private sellers from agencies.
type UserType string

const (
	UserTypeIndividual UserType = "individual"
	UserTypeAgency     UserType = "agency"
)

// User is the domain model for account holders.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	FirstName    *string
	LastName     *string
	Phone        *string
	Permission   PermissionLevel
	UserType     UserType
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsModerator reports whether the user carries the moderator permission.
func (u *User) IsModerator() bool {
	return u != nil && u.Permission == PermissionModerator
}
