package timetracking

import (
	"context"
	"time"
)

const (
	DirectionIn  = "in"
	DirectionOut = "out"
)

// ClockState is the stored time-clock state for one employee.
type ClockState struct {
	EmployeeID  int64     `json:"employee_id"`
	ClockedIn   bool      `json:"clocked_in"`
	LastPunchAt time.Time `json:"last_punch_at"`
}

// Store is the opaque key-value store holding time-clock state. The redis
// implementation also fans punches out over pub/sub for live dashboards.
type Store interface {
	Get(ctx context.Context, employeeID int64) (*ClockState, error)
	Set(ctx context.Context, state *ClockState) error
	Subscribe(ctx context.Context) (<-chan ClockState, error)
}
