package valueobject

import (
	"github.com/google/uuid"

	"github.com/ignatzorin/freelance-lifecycle/internal/pkg/apperror"
)

type Role string

const (
	RoleClient     Role = "client"
	RoleFreelancer Role = "freelancer"
	RoleAdmin      Role = "admin"
)

func NewRole(role string) (Role, error) {
	switch r := Role(role); r {
	case RoleClient, RoleFreelancer, RoleAdmin:
		return r, nil
	}
	return "", apperror.New(apperror.ErrCodeUnauthorized, "неизвестная роль пользователя")
}

// Identity: проверенный вызывающий. Передаётся в каждый use case явно.
type Identity struct {
	UserID uuid.UUID
	Role   Role
}

func NewIdentity(userID uuid.UUID, role string) (Identity, error) {
	if userID == uuid.Nil {
		return Identity{}, apperror.ErrUnauthorized
	}
	r, err := NewRole(role)
	if err != nil {
		return Identity{}, err
	}
	return Identity{UserID: userID, Role: r}, nil
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

func (i Identity) Is(role Role) bool {
	return i.Role == role
}

// Require возвращает FORBIDDEN, если роль вызывающего не входит в roles.
func (i Identity) Require(roles ...Role) error {
	for _, r := range roles {
		if i.Role == r {
			return nil
		}
	}
	return apperror.ErrForbidden
}
