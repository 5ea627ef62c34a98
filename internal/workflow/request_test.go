package workflow_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/peoplepulse/peoplepulse/internal/workflow"
)

var _ = Describe("Request", func() {
	var req *workflow.Request

	BeforeEach(func() {
		assigneeID := int64(4)
		req = &workflow.Request{
			ID:          1,
			RequestType: workflow.TypeLeave,
			Subject:     "Vacation",
			Description: "Two weeks",
			Status:      workflow.StatusPending,
			SubmitterID: 7,
			AssigneeID:  &assigneeID,
			DueDate:     time.Now().Add(48 * time.Hour),
		}
	})

	Describe("terminal states", func() {
		It("treats approved and rejected as terminal, escalated as open", func() {
			req.Status = workflow.StatusApproved
			Expect(req.IsTerminal()).To(BeTrue())

			req.Status = workflow.StatusRejected
			Expect(req.IsTerminal()).To(BeTrue())

			req.Status = workflow.StatusEscalated
			Expect(req.IsTerminal()).To(BeFalse())
			Expect(req.CanBeApproved()).To(BeTrue())
			Expect(req.CanBeRejected()).To(BeTrue())
		})

		It("only allows starting from pending", func() {
			Expect(req.CanBeStarted()).To(BeTrue())
			req.Start()
			Expect(req.Status).To(Equal(workflow.StatusInProgress))
			Expect(req.CanBeStarted()).To(BeFalse())
		})
	})

	Describe("Escalate", func() {
		It("increments the level and stamps the escalation date", func() {
			req.Escalate()
			Expect(req.EscalationLevel).To(Equal(1))
			Expect(req.EscalationDate).ToNot(BeNil())

			req.Escalate()
			Expect(req.EscalationLevel).To(Equal(2))
		})
	})

	Describe("IsOverdue", func() {
		It("is overdue only when past due and not terminal", func() {
			now := req.DueDate.Add(time.Hour)
			Expect(req.IsOverdue(now)).To(BeTrue())
			Expect(req.IsOverdue(req.DueDate.Add(-time.Hour))).To(BeFalse())

			req.Approve("Mei Chen")
			Expect(req.IsOverdue(now)).To(BeFalse())
		})
	})

	Describe("VisibleComments", func() {
		BeforeEach(func() {
			req.Comments = []workflow.Comment{
				{ID: "a", Content: "public", IsInternal: false},
				{ID: "b", Content: "internal", IsInternal: true},
			}
		})

		It("strips internal comments for the submitter", func() {
			visible := req.VisibleComments(7, false)
			Expect(visible).To(HaveLen(1))
			Expect(visible[0].ID).To(Equal("a"))
		})

		It("keeps internal comments for the assignee and for staff", func() {
			Expect(req.VisibleComments(4, false)).To(HaveLen(2))
			Expect(req.VisibleComments(99, true)).To(HaveLen(2))
		})
	})
})
