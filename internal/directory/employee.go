package directory

import (
	"time"

	"github.com/peoplepulse/peoplepulse/internal/accesscontrol"
)

// Employee is the directory record for a person. The users table backs both
// this and the auth account; the directory exposes the profile side only.
type Employee struct {
	ID          int64                    `db:"id" json:"id"`
	Email       string                   `db:"email" json:"email"`
	DisplayName string                   `db:"display_name" json:"display_name"`
	Role        accesscontrol.Role       `db:"role" json:"role"`
	Department  accesscontrol.Department `db:"department" json:"department"`
	Position    string                   `db:"position" json:"position"`
	Phone       string                   `db:"phone" json:"phone,omitempty"`
	HiredAt     *time.Time               `db:"hired_at" json:"hired_at,omitempty"`
	IsActive    bool                     `db:"is_active" json:"is_active"`
	CreatedAt   time.Time                `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time                `db:"updated_at" json:"updated_at"`
}

// ListFilters narrows an employee listing.
type ListFilters struct {
	Department string `json:"department"`
	Role       string `json:"role"`
	Search     string `json:"search"`
}
