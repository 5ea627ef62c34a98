package events

import (
	"fmt"
	"time"
)

// Workflow and time-clock event types published on the bus.
const (
	EventRequestSubmitted = "request.submitted"
	EventRequestStarted   = "request.started"
	EventRequestApproved  = "request.approved"
	EventRequestRejected  = "request.rejected"
	EventRequestEscalated = "request.escalated"
	EventRequestCommented = "request.commented"
	EventRequestOverdue   = "request.overdue"
	EventTimeclockPunched = "timeclock.punched"
)

func newEvent(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		ID:        fmt.Sprintf("%s-%d", eventType, time.Now().UnixNano()),
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
	}
}

func NewRequestSubmitted(requestID int64, requestType, assignedTo string) BaseEvent {
	return newEvent(EventRequestSubmitted, map[string]interface{}{
		"request_id":   requestID,
		"request_type": requestType,
		"assigned_to":  assignedTo,
	})
}

func NewRequestStarted(requestID int64, actor string) BaseEvent {
	return newEvent(EventRequestStarted, map[string]interface{}{
		"request_id": requestID,
		"actor":      actor,
	})
}

func NewRequestApproved(requestID int64, approvedBy string) BaseEvent {
	return newEvent(EventRequestApproved, map[string]interface{}{
		"request_id":  requestID,
		"approved_by": approvedBy,
	})
}

func NewRequestRejected(requestID int64, rejectedBy string) BaseEvent {
	return newEvent(EventRequestRejected, map[string]interface{}{
		"request_id":  requestID,
		"rejected_by": rejectedBy,
	})
}

func NewRequestEscalated(requestID int64, level int, assignedTo string) BaseEvent {
	return newEvent(EventRequestEscalated, map[string]interface{}{
		"request_id":       requestID,
		"escalation_level": level,
		"assigned_to":      assignedTo,
	})
}

func NewRequestCommented(requestID int64, commentID, author string, internal bool) BaseEvent {
	return newEvent(EventRequestCommented, map[string]interface{}{
		"request_id":  requestID,
		"comment_id":  commentID,
		"author":      author,
		"is_internal": internal,
	})
}

func NewRequestOverdue(requestID int64, assignedTo string, dueDate time.Time) BaseEvent {
	return newEvent(EventRequestOverdue, map[string]interface{}{
		"request_id":  requestID,
		"assigned_to": assignedTo,
		"due_date":    dueDate,
	})
}

func NewTimeclockPunched(employeeID int64, direction string, at time.Time) BaseEvent {
	return newEvent(EventTimeclockPunched, map[string]interface{}{
		"employee_id": employeeID,
		"direction":   direction,
		"at":          at,
	})
}
