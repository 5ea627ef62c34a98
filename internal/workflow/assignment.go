package workflow

import (
	"log/slog"

	"github.com/peoplepulse/peoplepulse/internal/accesscontrol"
)

// Assignee is the routing target computed for a new request.
type Assignee struct {
	ID          int64
	DisplayName string
}

// Roster is the slice of the employee directory the assigner needs. Lookups
// must be deterministic for an unchanged roster (ordered by employee id) so
// the same request type always routes to the same person.
type Roster interface {
	FirstByRole(role accesscontrol.Role) (*Assignee, error)
	FirstManagerInDepartment(dept accesscontrol.Department) (*Assignee, error)
}

// Assigner implements the auto-assignment rule: it-support goes to the first
// IT user, hr-query to the first HR manager, admin-request to the first
// admin, and leave (or anything else) to the first department manager in the
// submitter's own department. When nobody matches, the configured default
// assignee takes the request.
type Assigner struct {
	roster          Roster
	defaultAssignee string
	logger          *slog.Logger
}

func NewAssigner(roster Roster, defaultAssignee string, logger *slog.Logger) *Assigner {
	return &Assigner{
		roster:          roster,
		defaultAssignee: defaultAssignee,
		logger:          logger,
	}
}

func (a *Assigner) Assign(requestType string, dept accesscontrol.Department) Assignee {
	var (
		assignee *Assignee
		err      error
	)

	switch requestType {
	case TypeITSupport:
		assignee, err = a.roster.FirstByRole(accesscontrol.RoleIT)
	case TypeHRQuery:
		assignee, err = a.roster.FirstByRole(accesscontrol.RoleHRManager)
	case TypeAdminRequest:
		assignee, err = a.roster.FirstByRole(accesscontrol.RoleAdmin)
	default:
		assignee, err = a.roster.FirstManagerInDepartment(dept)
	}

	if err != nil {
		a.logger.Error("assignment roster lookup failed",
			"request_type", requestType,
			"department", dept,
			"error", err)
	}

	if assignee == nil {
		a.logger.Warn("no assignee found, using default",
			"request_type", requestType,
			"department", dept,
			"default_assignee", a.defaultAssignee)
		return Assignee{DisplayName: a.defaultAssignee}
	}

	return *assignee
}

// ReassignTarget returns the higher authority an escalated request moves to
// when reassign-on-escalate is enabled.
func (a *Assigner) ReassignTarget() Assignee {
	assignee, err := a.roster.FirstByRole(accesscontrol.RoleHRManager)
	if err != nil || assignee == nil {
		return Assignee{DisplayName: a.defaultAssignee}
	}
	return *assignee
}
