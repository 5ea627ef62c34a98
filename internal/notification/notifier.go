package notification

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/peoplepulse/peoplepulse/internal/core/events"
)

// Variant classifies a notification for the client UI.
const (
	VariantSuccess = "success"
	VariantInfo    = "info"
	VariantWarning = "warning"
	VariantError   = "error"
)

type Notification struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Variant     string    `json:"variant"`
	CreatedAt   time.Time `json:"created_at"`
}

// Notifier is a fire-and-forget sink. Callers never depend on its result;
// a failed delivery is logged and dropped.
type Notifier struct {
	logger *slog.Logger

	mu     sync.Mutex
	recent []Notification
	limit  int
}

func NewNotifier(logger *slog.Logger) *Notifier {
	return &Notifier{
		logger: logger,
		limit:  100,
	}
}

// Notify records the notification and logs it. Keeps a bounded buffer of
// recent entries for the dashboard feed.
func (n *Notifier) Notify(title, description, variant string) {
	notif := Notification{
		ID:          uuid.NewString(),
		Title:       title,
		Description: description,
		Variant:     variant,
		CreatedAt:   time.Now(),
	}

	n.mu.Lock()
	n.recent = append(n.recent, notif)
	if len(n.recent) > n.limit {
		n.recent = n.recent[len(n.recent)-n.limit:]
	}
	n.mu.Unlock()

	n.logger.Info("notification",
		"title", title,
		"variant", variant,
		"description", description)
}

// Recent returns the buffered notifications, newest last.
func (n *Notifier) Recent() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Notification, len(n.recent))
	copy(out, n.recent)
	return out
}

// SubscribeToWorkflow wires workflow lifecycle events into user-facing
// notifications.
func (n *Notifier) SubscribeToWorkflow(bus *events.EventBus) {
	bus.Subscribe(events.EventRequestSubmitted, func(ctx context.Context, event events.Event) error {
		data, _ := event.Payload().(map[string]interface{})
		n.Notify("Request submitted",
			fmt.Sprintf("Request %v routed to %v", data["request_id"], data["assigned_to"]),
			VariantSuccess)
		return nil
	})

	bus.Subscribe(events.EventRequestApproved, func(ctx context.Context, event events.Event) error {
		data, _ := event.Payload().(map[string]interface{})
		n.Notify("Request approved",
			fmt.Sprintf("Request %v approved by %v", data["request_id"], data["approved_by"]),
			VariantSuccess)
		return nil
	})

	bus.Subscribe(events.EventRequestRejected, func(ctx context.Context, event events.Event) error {
		data, _ := event.Payload().(map[string]interface{})
		n.Notify("Request rejected",
			fmt.Sprintf("Request %v rejected by %v", data["request_id"], data["rejected_by"]),
			VariantWarning)
		return nil
	})

	bus.Subscribe(events.EventRequestEscalated, func(ctx context.Context, event events.Event) error {
		data, _ := event.Payload().(map[string]interface{})
		n.Notify("Request escalated",
			fmt.Sprintf("Request %v escalated to level %v", data["request_id"], data["escalation_level"]),
			VariantWarning)
		return nil
	})

	bus.Subscribe(events.EventRequestOverdue, func(ctx context.Context, event events.Event) error {
		data, _ := event.Payload().(map[string]interface{})
		n.Notify("Request overdue",
			fmt.Sprintf("Request %v assigned to %v is past its due date", data["request_id"], data["assigned_to"]),
			VariantError)
		return nil
	})
}
