package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

const (
	RoleSuperAdmin     = "SUPERADMIN"
	RoleAdmin          = "ADMIN"
	RoleManager        = "MANAGER"
	RoleRepresentative = "MR"
)

// User is a row in the externally-owned user directory. This service only
// ever reads it.
type User struct {
	ID              snowflake.ID `gorm:"primaryKey" json:"id"`
	Name            string       `gorm:"not null" json:"name"`
	Email           string       `gorm:"not null;index" json:"email"`
	Role            string       `gorm:"not null" json:"role"`
	AssignedManager string       `gorm:"column:assigned_manager" json:"assigned_manager,omitempty"`
}

func (User) TableName() string { return "users" }

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperAdmin
}

type Repository interface {
	FindByEmail(ctx context.Context, db *gorm.DB, email string) (*User, error)
	FindByName(ctx context.Context, db *gorm.DB, name string) (*User, error)
	ListByAssignedManager(ctx context.Context, db *gorm.DB, manager string) ([]User, error)
}

// Service resolves identities and the manager -> representative hierarchy.
type Service interface {
	// ResolveIdentity looks a raw identity string (email, falling back to
	// name) up in the directory. Unknown identities resolve to (nil, nil).
	ResolveIdentity(ctx context.Context, raw string) (*User, error)
	// ManagedRepresentatives lists every user whose assigned manager matches
	// the given identity string, case-insensitively.
	ManagedRepresentatives(ctx context.Context, managerIdentity string) ([]User, error)
}
