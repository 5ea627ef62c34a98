package postgres

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/peoplepulse/peoplepulse/internal/accesscontrol"
	"github.com/peoplepulse/peoplepulse/internal/directory"
)

type EmployeeRepository struct {
	db *sqlx.DB
}

func NewEmployeeRepository(db *sqlx.DB) directory.Repository {
	return &EmployeeRepository{db: db}
}

const employeeColumns = `id, email, display_name, role, department, position, phone, hired_at, is_active, created_at, updated_at`

func (r *EmployeeRepository) GetByID(id int64) (*directory.Employee, error) {
	var emp directory.Employee
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, employeeColumns)
	if err := r.db.Get(&emp, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("employee %d not found", id)
		}
		return nil, err
	}
	return &emp, nil
}

func (r *EmployeeRepository) List(filters directory.ListFilters, limit, offset int) ([]*directory.Employee, error) {
	var (
		conditions = []string{"is_active = true"}
		args       []interface{}
	)

	if filters.Department != "" {
		args = append(args, filters.Department)
		conditions = append(conditions, fmt.Sprintf("department = $%d", len(args)))
	}
	if filters.Role != "" {
		args = append(args, filters.Role)
		conditions = append(conditions, fmt.Sprintf("role = $%d", len(args)))
	}
	if filters.Search != "" {
		args = append(args, "%"+strings.ToLower(filters.Search)+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf("(LOWER(display_name) LIKE $%d OR LOWER(email) LIKE $%d OR LOWER(position) LIKE $%d)", n, n, n))
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM users WHERE %s ORDER BY display_name ASC LIMIT $%d OFFSET $%d`,
		employeeColumns, strings.Join(conditions, " AND "), len(args)-1, len(args))

	var employees []*directory.Employee
	if err := r.db.Select(&employees, query, args...); err != nil {
		return nil, err
	}
	return employees, nil
}

// FirstActiveByRole orders by id so repeated lookups against an unchanged
// roster always return the same person.
func (r *EmployeeRepository) FirstActiveByRole(role accesscontrol.Role) (*directory.Employee, error) {
	var emp directory.Employee
	query := fmt.Sprintf(`SELECT %s FROM users WHERE role = $1 AND is_active = true ORDER BY id ASC LIMIT 1`, employeeColumns)
	if err := r.db.Get(&emp, query, role); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &emp, nil
}

func (r *EmployeeRepository) FirstActiveByRoleInDepartment(role accesscontrol.Role, dept accesscontrol.Department) (*directory.Employee, error) {
	var emp directory.Employee
	query := fmt.Sprintf(`SELECT %s FROM users WHERE role = $1 AND department = $2 AND is_active = true ORDER BY id ASC LIMIT 1`, employeeColumns)
	if err := r.db.Get(&emp, query, role, dept); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &emp, nil
}
