package directory

import (
	"log/slog"

	internal "github.com/peoplepulse/peoplepulse/internal"
	"github.com/peoplepulse/peoplepulse/internal/accesscontrol"
	"github.com/peoplepulse/peoplepulse/internal/workflow"
)

type Repository interface {
	GetByID(id int64) (*Employee, error)
	List(filters ListFilters, limit, offset int) ([]*Employee, error)
	FirstActiveByRole(role accesscontrol.Role) (*Employee, error)
	FirstActiveByRoleInDepartment(role accesscontrol.Role, dept accesscontrol.Department) (*Employee, error)
}

// Service reads the employee directory. It also backs the workflow
// assigner's roster lookups.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) GetEmployee(actor *internal.Principal, id int64) (*Employee, error) {
	if !actor.HasPermission(accesscontrol.ModuleEmployees, accesscontrol.ActionView) {
		s.logger.Warn("employee lookup denied", "user_id", actor.ID, "role", actor.Role)
		return nil, internal.ErrAccessDenied
	}

	emp, err := s.repo.GetByID(id)
	if err != nil {
		return nil, internal.ErrEmployeeNotFound
	}
	return emp, nil
}

func (s *Service) ListEmployees(actor *internal.Principal, filters ListFilters, limit, offset int) ([]*Employee, error) {
	if !actor.HasPermission(accesscontrol.ModuleEmployees, accesscontrol.ActionView) {
		s.logger.Warn("employee listing denied", "user_id", actor.ID, "role", actor.Role)
		return nil, internal.ErrAccessDenied
	}

	employees, err := s.repo.List(filters, limit, offset)
	if err != nil {
		s.logger.Error("failed to list employees", "error", err)
		return nil, err
	}
	return employees, nil
}

// FirstByRole returns the active employee with the lowest id holding the
// role. Deterministic ordering keeps auto-assignment stable for an
// unchanged roster.
func (s *Service) FirstByRole(role accesscontrol.Role) (*workflow.Assignee, error) {
	emp, err := s.repo.FirstActiveByRole(role)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, nil
	}
	return &workflow.Assignee{ID: emp.ID, DisplayName: emp.DisplayName}, nil
}

// FirstManagerInDepartment returns the first active department manager in
// the given department.
func (s *Service) FirstManagerInDepartment(dept accesscontrol.Department) (*workflow.Assignee, error) {
	emp, err := s.repo.FirstActiveByRoleInDepartment(accesscontrol.RoleDepartmentManager, dept)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, nil
	}
	return &workflow.Assignee{ID: emp.ID, DisplayName: emp.DisplayName}, nil
}
