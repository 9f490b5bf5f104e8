package entity

import (
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
)

type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleManager UserRole = "manager"
	RoleCashier UserRole = "cashier"
)

func (r UserRole) String() string {
	return string(r)
}

type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Role         UserRole
	CreatedAt    time.Time
}

func (u User) String() string {
	return fmt.Sprintf("%s (%s)", u.Email, u.ID)
}
