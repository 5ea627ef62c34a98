package timetracking

import (
	"context"
	"log/slog"
	"time"
)

// Poller keeps a local snapshot of punches fresh by reading the pub/sub
// stream, falling back to periodic polling when the subscription drops.
type Poller struct {
	store    Store
	interval time.Duration
	logger   *slog.Logger

	onPunch func(ClockState)
}

func NewPoller(store Store, interval time.Duration, onPunch func(ClockState), logger *slog.Logger) *Poller {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &Poller{
		store:    store,
		interval: interval,
		onPunch:  onPunch,
		logger:   logger,
	}
}

// Run blocks until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) {
	for {
		if err := p.consume(ctx); err != nil {
			p.logger.Warn("punch stream lost, retrying", "error", err, "retry_in", p.interval)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(p.interval):
		}
	}
}

func (p *Poller) consume(ctx context.Context) error {
	punches, err := p.store.Subscribe(ctx)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case state, ok := <-punches:
			if !ok {
				return nil
			}
			if p.onPunch != nil {
				p.onPunch(state)
			}
		}
	}
}
