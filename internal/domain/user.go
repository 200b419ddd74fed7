package domain

import (
	"fmt"
	"time"
)

type Role string

const (
	RoleCreator Role = "creator"
	RoleJoiner  Role = "joiner"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleCreator:
		return RoleCreator, nil
	case RoleJoiner:
		return RoleJoiner, nil
	default:
		return "", fmt.Errorf("%w: unknown role %q", ErrValidation, s)
	}
}

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

type SignUpInput struct {
	Username string
	Password string
	Role     Role
}
