package user

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNotFound is returned by repositories when no user matches.
	ErrNotFound = errors.New("user not found")
	// ErrConflict is returned when a unique constraint (email) is violated.
	ErrConflict = errors.New("user already exists")
)

// DefaultRoleID is assigned to users registered without an explicit role.
const DefaultRoleID = 1

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	RoleID       int64     `json:"roleId"`
	Avatar       string    `json:"avatar,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Validate checks that a record mapped from storage carries every required
// field. A violation means the row is corrupt, not that the request was bad.
func (u *User) Validate() error {
	switch {
	case u.ID == "":
		return fmt.Errorf("user entity requires an id")
	case u.Name == "":
		return fmt.Errorf("user entity requires a name")
	case u.Email == "":
		return fmt.Errorf("user entity requires an email")
	case u.PasswordHash == "":
		return fmt.Errorf("user entity requires a password hash")
	case u.RoleID == 0:
		return fmt.Errorf("user entity requires a role")
	}
	return nil
}
