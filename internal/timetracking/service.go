package timetracking

import (
	"context"
	"log/slog"
	"time"

	internal "github.com/peoplepulse/peoplepulse/internal"
	"github.com/peoplepulse/peoplepulse/internal/accesscontrol"
	"github.com/peoplepulse/peoplepulse/internal/core/events"
)

// Service handles clock-in/clock-out punches against the external store.
// A cooldown between punches absorbs double clicks and client retries.
type Service struct {
	store    Store
	eventBus *events.EventBus
	cooldown time.Duration
	logger   *slog.Logger
	now      func() time.Time
}

func NewService(store Store, eventBus *events.EventBus, cooldown time.Duration, logger *slog.Logger) *Service {
	if cooldown <= 0 {
		cooldown = 30 * time.Second
	}
	return &Service{
		store:    store,
		eventBus: eventBus,
		cooldown: cooldown,
		logger:   logger,
		now:      time.Now,
	}
}

func (s *Service) Status(ctx context.Context, actor *internal.Principal) (*ClockState, error) {
	if !actor.HasPermission(accesscontrol.ModuleTimeTracking, accesscontrol.ActionView) {
		return nil, internal.ErrAccessDenied
	}
	return s.store.Get(ctx, actor.ID)
}

func (s *Service) ClockIn(ctx context.Context, actor *internal.Principal) (*ClockState, error) {
	return s.punch(ctx, actor, true)
}

func (s *Service) ClockOut(ctx context.Context, actor *internal.Principal) (*ClockState, error) {
	return s.punch(ctx, actor, false)
}

func (s *Service) punch(ctx context.Context, actor *internal.Principal, clockIn bool) (*ClockState, error) {
	if !actor.HasPermission(accesscontrol.ModuleTimeTracking, accesscontrol.ActionCreate) {
		s.logger.Warn("punch denied: insufficient permissions",
			"user_id", actor.ID, "role", actor.Role)
		return nil, internal.ErrAccessDenied
	}

	state, err := s.store.Get(ctx, actor.ID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if !state.LastPunchAt.IsZero() && now.Sub(state.LastPunchAt) < s.cooldown {
		s.logger.Warn("punch rejected: cooldown active",
			"user_id", actor.ID,
			"last_punch_at", state.LastPunchAt)
		return nil, internal.NewConflictError("please wait before punching again", internal.ErrCodePunchCooldown)
	}

	if state.ClockedIn == clockIn {
		direction := DirectionOut
		if clockIn {
			direction = DirectionIn
		}
		s.logger.Warn("punch rejected: already in requested state",
			"user_id", actor.ID, "direction", direction)
		return nil, internal.NewConflictError("already clocked "+direction, internal.ErrCodeAlreadyPunched)
	}

	state.ClockedIn = clockIn
	state.LastPunchAt = now
	if err := s.store.Set(ctx, state); err != nil {
		s.logger.Error("failed to persist punch", "user_id", actor.ID, "error", err)
		return nil, err
	}

	direction := DirectionOut
	if clockIn {
		direction = DirectionIn
	}
	s.logger.Info("punch recorded", "user_id", actor.ID, "direction", direction)

	if s.eventBus != nil {
		if err := s.eventBus.Publish(ctx, events.NewTimeclockPunched(actor.ID, direction, now)); err != nil {
			s.logger.Error("failed to publish punch event", "error", err)
		}
	}

	return state, nil
}
