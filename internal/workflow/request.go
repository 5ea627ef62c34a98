package workflow

import (
	"time"
)

// Request statuses. Approved and rejected are terminal: no transition is
// defined out of them. Escalated is not terminal — an escalated request can
// still be approved or rejected.
const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusApproved   = "approved"
	StatusRejected   = "rejected"
	StatusEscalated  = "escalated"
)

const (
	TypeLeave        = "leave"
	TypeITSupport    = "it-support"
	TypeHRQuery      = "hr-query"
	TypeAdminRequest = "admin-request"
	TypeGeneralQuery = "general-query"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

var RequestTypes = []string{TypeLeave, TypeITSupport, TypeHRQuery, TypeAdminRequest, TypeGeneralQuery}

var Priorities = []string{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

var Statuses = []string{StatusPending, StatusInProgress, StatusApproved, StatusRejected, StatusEscalated}

// Request is a unit of work in the approval workflow.
type Request struct {
	ID              int64      `json:"id" gorm:"primaryKey"`
	RequestType     string     `json:"request_type" gorm:"column:request_type;not null"`
	Subject         string     `json:"subject" gorm:"not null"`
	Description     string     `json:"description" gorm:"not null"`
	Priority        string     `json:"priority" gorm:"default:medium"`
	Status          string     `json:"status" gorm:"default:pending"`
	Department      string     `json:"department"`
	SubmitterID     int64      `json:"submitter_id" gorm:"column:submitter_id;not null"`
	SubmittedBy     string     `json:"submitted_by" gorm:"column:submitted_by;not null"`
	SubmittedAt     time.Time  `json:"submitted_at" gorm:"column:submitted_at"`
	AssigneeID      *int64     `json:"assignee_id,omitempty" gorm:"column:assignee_id"`
	AssignedTo      string     `json:"assigned_to" gorm:"column:assigned_to"`
	ApprovedBy      *string    `json:"approved_by,omitempty" gorm:"column:approved_by"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty" gorm:"column:approved_at"`
	EscalationLevel int        `json:"escalation_level" gorm:"column:escalation_level;default:0"`
	EscalationDate  *time.Time `json:"escalation_date,omitempty" gorm:"column:escalation_date"`
	DueDate         time.Time  `json:"due_date" gorm:"column:due_date"`
	Overdue         bool       `json:"overdue" gorm:"-"`
	Comments        []Comment  `json:"comments" gorm:"foreignKey:RequestID"`
	CreatedAt       time.Time  `json:"created_at" gorm:"column:created_at"`
	UpdatedAt       time.Time  `json:"updated_at" gorm:"column:updated_at"`
}

func (Request) TableName() string {
	return "requests"
}

// Comment is an ordered note on a request. Internal comments are hidden from
// the submitter unless they are staff.
type Comment struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	RequestID  int64     `json:"request_id" gorm:"column:request_id;not null"`
	UserID     int64     `json:"user_id" gorm:"column:user_id;not null"`
	UserName   string    `json:"user_name" gorm:"column:user_name;not null"`
	Content    string    `json:"content" gorm:"not null"`
	IsInternal bool      `json:"is_internal" gorm:"column:is_internal;default:false"`
	CreatedAt  time.Time `json:"timestamp" gorm:"column:created_at"`
}

func (Comment) TableName() string {
	return "request_comments"
}

// IsTerminal reports whether the request reached a final state.
func (r *Request) IsTerminal() bool {
	return r.Status == StatusApproved || r.Status == StatusRejected
}

func (r *Request) CanBeApproved() bool {
	return !r.IsTerminal()
}

func (r *Request) CanBeRejected() bool {
	return !r.IsTerminal()
}

func (r *Request) CanBeEscalated() bool {
	return !r.IsTerminal()
}

func (r *Request) CanBeStarted() bool {
	return r.Status == StatusPending
}

// IsOverdue is derived on every read, never persisted.
func (r *Request) IsOverdue(now time.Time) bool {
	return now.After(r.DueDate) && !r.IsTerminal()
}

func (r *Request) Approve(by string) {
	now := time.Now()
	r.Status = StatusApproved
	r.ApprovedBy = &by
	r.ApprovedAt = &now
	r.UpdatedAt = now
}

func (r *Request) Reject(by string) {
	now := time.Now()
	r.Status = StatusRejected
	r.ApprovedBy = &by
	r.ApprovedAt = &now
	r.UpdatedAt = now
}

func (r *Request) Start() {
	r.Status = StatusInProgress
	r.UpdatedAt = time.Now()
}

// Escalate raises the escalation level. The level only ever increases; there
// is no ceiling.
func (r *Request) Escalate() {
	now := time.Now()
	r.Status = StatusEscalated
	r.EscalationLevel++
	r.EscalationDate = &now
	r.UpdatedAt = now
}

// VisibleComments filters internal comments for viewers who are the
// submitter and neither staff nor the assignee.
func (r *Request) VisibleComments(viewerID int64, viewerIsStaff bool) []Comment {
	if viewerIsStaff {
		return r.Comments
	}
	if r.AssigneeID != nil && *r.AssigneeID == viewerID {
		return r.Comments
	}

	visible := make([]Comment, 0, len(r.Comments))
	for _, c := range r.Comments {
		if c.IsInternal {
			continue
		}
		visible = append(visible, c)
	}
	return visible
}
