package user

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleCollector  Role = "collector"
	RoleHubManager Role = "hub-manager"
	RoleVolunteer  Role = "volunteer"
	RoleDonor      Role = "donor"
	RoleAdmin      Role = "admin"
)

func (r Role) String() string {
	return string(r)
}

func (r Role) Valid() bool {
	switch r {
	case RoleCollector, RoleHubManager, RoleVolunteer, RoleDonor, RoleAdmin:
		return true
	}
	return false
}

type Status string

const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusSuspended Status = "suspended"
)

// User represents a platform member in the domain
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	Phone        *string
	PasswordHash *string
	Role         Role
	Status       Status
	Region       *string
	CashBalance  float64
	TokenBalance float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

// Filter represents filtering options for listing users
type Filter struct {
	Role     *Role
	Status   *Status
	Region   string
	Search   string
	Page     int
	PageSize int
}

// RoleCount is one row of the users-by-role breakdown.
type RoleCount struct {
	Role  string
	Count int64
}
