package workflow_test

import (
	"errors"
	"log/slog"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/peoplepulse/peoplepulse/internal/accesscontrol"
	"github.com/peoplepulse/peoplepulse/internal/workflow"
)

var _ = Describe("Assigner", func() {
	var (
		roster   *mockRoster
		assigner *workflow.Assigner
	)

	BeforeEach(func() {
		roster = newMockRoster()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		assigner = workflow.NewAssigner(roster, "HR Operations", logger)
	})

	It("assigns by request type deterministically for an unchanged roster", func() {
		first := assigner.Assign(workflow.TypeITSupport, accesscontrol.DepartmentEngineering)
		second := assigner.Assign(workflow.TypeITSupport, accesscontrol.DepartmentSales)
		Expect(first).To(Equal(second))
		Expect(first.DisplayName).To(Equal("Tomas Silva"))
	})

	It("routes hr-query and admin-request to their role holders", func() {
		Expect(assigner.Assign(workflow.TypeHRQuery, accesscontrol.DepartmentSales).DisplayName).To(Equal("Lena Fischer"))
		Expect(assigner.Assign(workflow.TypeAdminRequest, accesscontrol.DepartmentSales).DisplayName).To(Equal("Amira Hassan"))
	})

	It("routes leave to the submitter's own department manager, never another's", func() {
		engineering := assigner.Assign(workflow.TypeLeave, accesscontrol.DepartmentEngineering)
		sales := assigner.Assign(workflow.TypeLeave, accesscontrol.DepartmentSales)
		Expect(engineering.DisplayName).To(Equal("Mei Chen"))
		Expect(sales.DisplayName).To(Equal("Daniel Okoro"))
	})

	It("routes unknown request types like the department default", func() {
		assignee := assigner.Assign(workflow.TypeGeneralQuery, accesscontrol.DepartmentEngineering)
		Expect(assignee.DisplayName).To(Equal("Mei Chen"))
	})

	It("falls back to the configured default when the roster has nobody", func() {
		assignee := assigner.Assign(workflow.TypeLeave, accesscontrol.DepartmentLegal)
		Expect(assignee.DisplayName).To(Equal("HR Operations"))
		Expect(assignee.ID).To(BeZero())
	})

	It("falls back to the default when the roster lookup fails", func() {
		roster.lookupError = errors.New("db down")
		assignee := assigner.Assign(workflow.TypeITSupport, accesscontrol.DepartmentIT)
		Expect(assignee.DisplayName).To(Equal("HR Operations"))
	})

	It("targets the HR manager for escalation reassignment", func() {
		Expect(assigner.ReassignTarget().DisplayName).To(Equal("Lena Fischer"))
	})
})
