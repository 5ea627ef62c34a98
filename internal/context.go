package internal

import (
	"context"
	"time"

	"github.com/peoplepulse/peoplepulse/internal/accesscontrol"
)

// Principal is the authenticated identity carried through request context.
// It is read-only input for the access-control and workflow layers.
type Principal struct {
	ID          int64                    `json:"id"`
	Email       string                   `json:"email"`
	DisplayName string                   `json:"display_name"`
	Role        accesscontrol.Role       `json:"role"`
	Department  accesscontrol.Department `json:"department"`
}

// HasPermission is a convenience wrapper bound to the principal's role.
func (p *Principal) HasPermission(module, action string) bool {
	if p == nil {
		return false
	}
	return accesscontrol.HasPermission(p.Role, module, action)
}

// CanAccessModule is a convenience wrapper bound to the principal's role.
func (p *Principal) CanAccessModule(module string) bool {
	if p == nil {
		return false
	}
	return accesscontrol.CanAccessModule(p.Role, module)
}

type ctxKey string

const ContextUserKey ctxKey = "user"

func UserFromContext(ctx context.Context) (*Principal, bool) {
	u, ok := ctx.Value(ContextUserKey).(*Principal)
	return u, ok && u != nil
}

func ContextWithUser(ctx context.Context, user *Principal) context.Context {
	return context.WithValue(ctx, ContextUserKey, user)
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
