package workflow

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	internal "github.com/peoplepulse/peoplepulse/internal"
	"github.com/peoplepulse/peoplepulse/internal/accesscontrol"
	"github.com/peoplepulse/peoplepulse/internal/core/events"
)

// Repository defines the data access methods for requests.
type Repository interface {
	Create(req *Request) error
	GetByID(id int64) (*Request, error)
	List(limit, offset int) ([]*Request, error)
	Update(req *Request) error
	AddComment(comment *Comment) error
	ListOpen() ([]*Request, error)
}

// EventPublisher is the slice of the event bus the engine publishes on.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Options carries the workflow tuning knobs from config.
type Options struct {
	DueHours           int
	ReassignOnEscalate bool
}

// Service manages the request lifecycle. Every mutating method re-validates
// authorization itself rather than trusting that the caller already passed a
// route gate.
type Service struct {
	repo     Repository
	assigner *Assigner
	eventBus EventPublisher
	opts     Options
	logger   *slog.Logger
}

func NewService(repo Repository, assigner *Assigner, eventBus EventPublisher, opts Options, logger *slog.Logger) *Service {
	if opts.DueHours <= 0 {
		opts.DueHours = 48
	}
	return &Service{
		repo:     repo,
		assigner: assigner,
		eventBus: eventBus,
		opts:     opts,
		logger:   logger,
	}
}

// Submit creates a request in pending state with an auto-computed assignee
// and due date.
func (s *Service) Submit(ctx context.Context, actor *internal.Principal, dto SubmitRequestDTO) (*Request, error) {
	if !actor.HasPermission(accesscontrol.ModuleRequests, accesscontrol.ActionCreate) {
		s.logger.Warn("submit request denied: insufficient permissions",
			"user_id", actor.ID, "role", actor.Role)
		return nil, internal.ErrAccessDenied
	}

	if err := dto.Validate(); err != nil {
		s.logger.Error("request validation failed", "error", err, "user_id", actor.ID)
		return nil, err
	}

	assignee := s.assigner.Assign(dto.RequestType, actor.Department)

	now := time.Now()
	req := &Request{
		RequestType: dto.RequestType,
		Subject:     dto.Subject,
		Description: dto.Description,
		Priority:    dto.Priority,
		Status:      StatusPending,
		Department:  string(actor.Department),
		SubmitterID: actor.ID,
		SubmittedBy: actor.DisplayName,
		SubmittedAt: now,
		AssignedTo:  assignee.DisplayName,
		DueDate:     now.Add(time.Duration(s.opts.DueHours) * time.Hour),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if assignee.ID != 0 {
		req.AssigneeID = &assignee.ID
	}

	if err := s.repo.Create(req); err != nil {
		s.logger.Error("failed to create request", "error", err, "user_id", actor.ID)
		return nil, err
	}

	s.logger.Info("request submitted",
		"request_id", req.ID,
		"request_type", req.RequestType,
		"submitted_by", req.SubmittedBy,
		"assigned_to", req.AssignedTo,
		"due_date", req.DueDate)

	s.publish(ctx, events.NewRequestSubmitted(req.ID, req.RequestType, req.AssignedTo))

	return s.forViewer(req, actor), nil
}

// Get returns a single request if the caller's visibility scope covers it.
func (s *Service) Get(ctx context.Context, actor *internal.Principal, requestID int64) (*Request, error) {
	req, err := s.repo.GetByID(requestID)
	if err != nil {
		return nil, internal.ErrRequestNotFound
	}

	if !s.canView(actor, req) {
		s.logger.Warn("request access denied",
			"request_id", requestID, "user_id", actor.ID, "role", actor.Role)
		return nil, internal.ErrAccessDenied
	}

	return s.forViewer(req, actor), nil
}

// List returns the requests visible to the caller, with filters ANDed on
// top of the role scope: employees see their own submissions, manager-tier
// callers their own plus assigned, staff everything.
func (s *Service) List(ctx context.Context, actor *internal.Principal, filters ListFilters, limit, offset int) ([]*Request, error) {
	if !actor.HasPermission(accesscontrol.ModuleRequests, accesscontrol.ActionView) {
		s.logger.Warn("list requests denied: insufficient permissions",
			"user_id", actor.ID, "role", actor.Role)
		return nil, internal.ErrAccessDenied
	}

	all, err := s.repo.List(limit, offset)
	if err != nil {
		s.logger.Error("failed to list requests", "error", err)
		return nil, err
	}

	visible := make([]*Request, 0, len(all))
	for _, req := range all {
		if !s.canView(actor, req) {
			continue
		}
		if !filters.Matches(req) {
			continue
		}
		visible = append(visible, s.forViewer(req, actor))
	}

	return visible, nil
}

// Approve moves a request to its terminal approved state. The actor must
// hold the approve permission and either be the assignee or staff.
func (s *Service) Approve(ctx context.Context, actor *internal.Principal, requestID int64) (*Request, error) {
	req, err := s.authorizeDecision(actor, requestID, accesscontrol.ActionApprove)
	if err != nil {
		return nil, err
	}

	req.Approve(actor.DisplayName)
	if err := s.repo.Update(req); err != nil {
		s.logger.Error("failed to persist approval", "error", err, "request_id", requestID)
		return nil, err
	}

	s.logger.Info("request approved",
		"request_id", requestID,
		"approved_by", actor.DisplayName)

	s.publish(ctx, events.NewRequestApproved(requestID, actor.DisplayName))

	return s.forViewer(req, actor), nil
}

// Reject moves a request to its terminal rejected state, with the same
// preconditions as Approve.
func (s *Service) Reject(ctx context.Context, actor *internal.Principal, requestID int64) (*Request, error) {
	req, err := s.authorizeDecision(actor, requestID, accesscontrol.ActionReject)
	if err != nil {
		return nil, err
	}

	req.Reject(actor.DisplayName)
	if err := s.repo.Update(req); err != nil {
		s.logger.Error("failed to persist rejection", "error", err, "request_id", requestID)
		return nil, err
	}

	s.logger.Info("request rejected",
		"request_id", requestID,
		"rejected_by", actor.DisplayName)

	s.publish(ctx, events.NewRequestRejected(requestID, actor.DisplayName))

	return s.forViewer(req, actor), nil
}

// Start lets the assignee acknowledge a pending request, marking it
// in-progress.
func (s *Service) Start(ctx context.Context, actor *internal.Principal, requestID int64) (*Request, error) {
	req, err := s.repo.GetByID(requestID)
	if err != nil {
		return nil, internal.ErrRequestNotFound
	}

	if !s.isAssignee(actor, req) && !actor.Role.IsStaffTier() {
		s.logger.Warn("start request denied: not the assignee",
			"request_id", requestID, "user_id", actor.ID)
		return nil, internal.ErrAccessDenied
	}

	if req.IsTerminal() {
		return nil, internal.ErrRequestTerminal
	}
	if !req.CanBeStarted() {
		s.logger.Warn("cannot start request in current status",
			"request_id", requestID, "status", req.Status)
		return nil, internal.ErrInvalidRequestStatus
	}

	req.Start()
	if err := s.repo.Update(req); err != nil {
		s.logger.Error("failed to persist start", "error", err, "request_id", requestID)
		return nil, err
	}

	s.publish(ctx, events.NewRequestStarted(requestID, actor.DisplayName))

	return s.forViewer(req, actor), nil
}

// Escalate raises the escalation level and stamps the escalation date. The
// level is monotonic; there is no upper bound. When reassign-on-escalate is
// enabled the request also moves to the first HR manager.
func (s *Service) Escalate(ctx context.Context, actor *internal.Principal, requestID int64) (*Request, error) {
	if !actor.HasPermission(accesscontrol.ModuleRequests, accesscontrol.ActionEscalate) {
		s.logger.Warn("escalate denied: insufficient permissions",
			"request_id", requestID, "user_id", actor.ID, "role", actor.Role)
		return nil, internal.ErrAccessDenied
	}

	req, err := s.repo.GetByID(requestID)
	if err != nil {
		return nil, internal.ErrRequestNotFound
	}

	if !s.isAssignee(actor, req) && !actor.Role.IsStaffTier() {
		s.logger.Warn("escalate denied: not the assignee",
			"request_id", requestID, "user_id", actor.ID)
		return nil, internal.ErrAccessDenied
	}

	if req.IsTerminal() {
		s.logger.Warn("cannot escalate terminal request",
			"request_id", requestID, "status", req.Status)
		return nil, internal.ErrRequestTerminal
	}

	req.Escalate()

	if s.opts.ReassignOnEscalate {
		target := s.assigner.ReassignTarget()
		req.AssignedTo = target.DisplayName
		if target.ID != 0 {
			req.AssigneeID = &target.ID
		} else {
			req.AssigneeID = nil
		}
	}

	if err := s.repo.Update(req); err != nil {
		s.logger.Error("failed to persist escalation", "error", err, "request_id", requestID)
		return nil, err
	}

	s.logger.Info("request escalated",
		"request_id", requestID,
		"escalation_level", req.EscalationLevel,
		"assigned_to", req.AssignedTo)

	s.publish(ctx, events.NewRequestEscalated(requestID, req.EscalationLevel, req.AssignedTo))

	return s.forViewer(req, actor), nil
}

// BulkApprove processes each id independently, best effort: a failure on
// one id does not roll back the others.
func (s *Service) BulkApprove(ctx context.Context, actor *internal.Principal, dto BulkActionDTO) (*BulkResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	return s.bulk(ctx, actor, dto.RequestIDs, s.Approve), nil
}

// BulkReject is the rejection counterpart of BulkApprove.
func (s *Service) BulkReject(ctx context.Context, actor *internal.Principal, dto BulkActionDTO) (*BulkResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}
	return s.bulk(ctx, actor, dto.RequestIDs, s.Reject), nil
}

// AddComment appends a comment with a fresh id, the current timestamp and
// the actor's display name. Whitespace-only content is rejected.
func (s *Service) AddComment(ctx context.Context, actor *internal.Principal, requestID int64, dto AddCommentDTO) (*Comment, error) {
	if !actor.HasPermission(accesscontrol.ModuleRequests, accesscontrol.ActionComment) {
		s.logger.Warn("comment denied: insufficient permissions",
			"request_id", requestID, "user_id", actor.ID, "role", actor.Role)
		return nil, internal.ErrAccessDenied
	}

	if err := dto.Validate(); err != nil {
		s.logger.Error("comment validation failed", "error", err, "request_id", requestID)
		return nil, err
	}

	req, err := s.repo.GetByID(requestID)
	if err != nil {
		return nil, internal.ErrRequestNotFound
	}

	if !s.canView(actor, req) {
		s.logger.Warn("comment denied: request not visible to actor",
			"request_id", requestID, "user_id", actor.ID)
		return nil, internal.ErrAccessDenied
	}

	comment := &Comment{
		ID:         uuid.NewString(),
		RequestID:  requestID,
		UserID:     actor.ID,
		UserName:   actor.DisplayName,
		Content:    dto.Content,
		IsInternal: dto.IsInternal,
		CreatedAt:  time.Now(),
	}

	if err := s.repo.AddComment(comment); err != nil {
		s.logger.Error("failed to persist comment", "error", err, "request_id", requestID)
		return nil, err
	}

	s.logger.Info("comment added",
		"request_id", requestID,
		"comment_id", comment.ID,
		"author", actor.DisplayName,
		"is_internal", comment.IsInternal)

	s.publish(ctx, events.NewRequestCommented(requestID, comment.ID, actor.DisplayName, comment.IsInternal))

	return comment, nil
}

// FindOverdue returns every open request past its due date. Used by the
// overdue scanner; it never mutates request state.
func (s *Service) FindOverdue(ctx context.Context, now time.Time) ([]*Request, error) {
	open, err := s.repo.ListOpen()
	if err != nil {
		return nil, err
	}

	overdue := make([]*Request, 0)
	for _, req := range open {
		if req.IsOverdue(now) {
			req.Overdue = true
			overdue = append(overdue, req)
		}
	}
	return overdue, nil
}

// authorizeDecision loads the request and enforces the shared approve/reject
// preconditions: the action permission, assignee-or-staff match, and a
// non-terminal status. Calling approve on an already approved request is
// refused without touching approvedBy/approvedAt.
func (s *Service) authorizeDecision(actor *internal.Principal, requestID int64, action string) (*Request, error) {
	if !actor.HasPermission(accesscontrol.ModuleRequests, action) {
		s.logger.Warn("decision denied: insufficient permissions",
			"request_id", requestID,
			"user_id", actor.ID,
			"role", actor.Role,
			"action", action)
		return nil, internal.ErrAccessDenied
	}

	req, err := s.repo.GetByID(requestID)
	if err != nil {
		s.logger.Error("request not found for decision", "error", err, "request_id", requestID)
		return nil, internal.ErrRequestNotFound
	}

	if !s.isAssignee(actor, req) && !actor.Role.IsStaffTier() {
		s.logger.Warn("decision denied: actor is not the assignee",
			"request_id", requestID,
			"user_id", actor.ID,
			"assigned_to", req.AssignedTo)
		return nil, internal.ErrAccessDenied
	}

	if req.IsTerminal() {
		s.logger.Warn("decision refused: request already terminal",
			"request_id", requestID, "status", req.Status)
		return nil, internal.ErrRequestTerminal
	}

	return req, nil
}

func (s *Service) bulk(ctx context.Context, actor *internal.Principal, ids []int64, action func(context.Context, *internal.Principal, int64) (*Request, error)) *BulkResult {
	result := &BulkResult{Failed: make(map[int64]string)}
	for _, id := range ids {
		if _, err := action(ctx, actor, id); err != nil {
			result.Failed[id] = err.Error()
			continue
		}
		result.Succeeded = append(result.Succeeded, id)
	}
	if len(result.Failed) == 0 {
		result.Failed = nil
	}
	return result
}

func (s *Service) canView(actor *internal.Principal, req *Request) bool {
	if actor.Role.IsStaffTier() {
		return true
	}
	if actor.Role.IsManagerTier() {
		return req.SubmitterID == actor.ID || s.isAssignee(actor, req)
	}
	return req.SubmitterID == actor.ID
}

func (s *Service) isAssignee(actor *internal.Principal, req *Request) bool {
	return req.AssigneeID != nil && *req.AssigneeID == actor.ID
}

// forViewer stamps the derived overdue flag and strips internal comments the
// viewer may not see.
func (s *Service) forViewer(req *Request, viewer *internal.Principal) *Request {
	view := *req
	view.Overdue = view.IsOverdue(time.Now())
	view.Comments = req.VisibleComments(viewer.ID, viewer.Role.IsStaffTier())
	return &view
}

func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(ctx, event); err != nil {
		s.logger.Error("failed to publish event", "event_type", event.EventType(), "error", err)
	}
}
