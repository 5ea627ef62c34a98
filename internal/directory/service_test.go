package directory_test

import (
	"errors"
	"log/slog"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	internal "github.com/peoplepulse/peoplepulse/internal"
	"github.com/peoplepulse/peoplepulse/internal/accesscontrol"
	"github.com/peoplepulse/peoplepulse/internal/directory"
)

type mockEmployeeRepository struct {
	employees []*directory.Employee
	failWith  error
}

func (m *mockEmployeeRepository) GetByID(id int64) (*directory.Employee, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	for _, e := range m.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, errors.New("not found")
}

func (m *mockEmployeeRepository) List(filters directory.ListFilters, limit, offset int) ([]*directory.Employee, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	return m.employees, nil
}

func (m *mockEmployeeRepository) FirstActiveByRole(role accesscontrol.Role) (*directory.Employee, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	for _, e := range m.employees {
		if e.Role == role && e.IsActive {
			return e, nil
		}
	}
	return nil, nil
}

func (m *mockEmployeeRepository) FirstActiveByRoleInDepartment(role accesscontrol.Role, dept accesscontrol.Department) (*directory.Employee, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	for _, e := range m.employees {
		if e.Role == role && e.Department == dept && e.IsActive {
			return e, nil
		}
	}
	return nil, nil
}

var _ = Describe("Directory Service", func() {
	var (
		repo    *mockEmployeeRepository
		service *directory.Service
		hr      *internal.Principal
	)

	BeforeEach(func() {
		repo = &mockEmployeeRepository{
			employees: []*directory.Employee{
				{ID: 2, DisplayName: "Lena Fischer", Role: accesscontrol.RoleHRManager, Department: accesscontrol.DepartmentHR, IsActive: true},
				{ID: 3, DisplayName: "Tomas Silva", Role: accesscontrol.RoleIT, Department: accesscontrol.DepartmentIT, IsActive: true},
				{ID: 4, DisplayName: "Mei Chen", Role: accesscontrol.RoleDepartmentManager, Department: accesscontrol.DepartmentEngineering, IsActive: true},
				{ID: 5, DisplayName: "Daniel Okoro", Role: accesscontrol.RoleDepartmentManager, Department: accesscontrol.DepartmentSales, IsActive: false},
				{ID: 7, DisplayName: "Jon Berg", Role: accesscontrol.RoleEmployee, Department: accesscontrol.DepartmentEngineering, IsActive: true},
			},
		}
		service = directory.NewService(repo, slog.Default())
		hr = &internal.Principal{ID: 2, DisplayName: "Lena Fischer", Role: accesscontrol.RoleHRManager, Department: accesscontrol.DepartmentHR}
	})

	Describe("GetEmployee", func() {
		It("should return the employee for a role with directory access", func() {
			emp, err := service.GetEmployee(hr, 7)
			Expect(err).NotTo(HaveOccurred())
			Expect(emp.DisplayName).To(Equal("Jon Berg"))
		})

		It("should deny a role without employees view permission", func() {
			intern := &internal.Principal{ID: 9, Role: accesscontrol.RoleIntern}
			_, err := service.GetEmployee(intern, 7)
			Expect(err).To(Equal(internal.ErrAccessDenied))
		})

		It("should map a missing employee to not found", func() {
			_, err := service.GetEmployee(hr, 99999)
			Expect(err).To(Equal(internal.ErrEmployeeNotFound))
		})
	})

	Describe("ListEmployees", func() {
		It("should return the roster for an authorized role", func() {
			employees, err := service.ListEmployees(hr, directory.ListFilters{}, 50, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(employees).To(HaveLen(5))
		})

		It("should deny an unknown role", func() {
			stranger := &internal.Principal{ID: 1, Role: accesscontrol.Role("contractor")}
			_, err := service.ListEmployees(stranger, directory.ListFilters{}, 50, 0)
			Expect(err).To(Equal(internal.ErrAccessDenied))
		})
	})

	Describe("roster lookups", func() {
		It("should resolve the first active holder of a role", func() {
			assignee, err := service.FirstByRole(accesscontrol.RoleIT)
			Expect(err).NotTo(HaveOccurred())
			Expect(assignee).NotTo(BeNil())
			Expect(assignee.ID).To(Equal(int64(3)))
			Expect(assignee.DisplayName).To(Equal("Tomas Silva"))
		})

		It("should return nil without error when nobody holds the role", func() {
			assignee, err := service.FirstByRole(accesscontrol.RoleSuperAdmin)
			Expect(err).NotTo(HaveOccurred())
			Expect(assignee).To(BeNil())
		})

		It("should resolve a department manager within the department only", func() {
			assignee, err := service.FirstManagerInDepartment(accesscontrol.DepartmentEngineering)
			Expect(err).NotTo(HaveOccurred())
			Expect(assignee.DisplayName).To(Equal("Mei Chen"))
		})

		It("should skip inactive managers", func() {
			assignee, err := service.FirstManagerInDepartment(accesscontrol.DepartmentSales)
			Expect(err).NotTo(HaveOccurred())
			Expect(assignee).To(BeNil())
		})

		It("should surface repository errors", func() {
			repo.failWith = errors.New("connection refused")
			_, err := service.FirstByRole(accesscontrol.RoleIT)
			Expect(err).To(HaveOccurred())
		})
	})
})
