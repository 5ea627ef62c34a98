package timetracking

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

const (
	stateKeyPrefix = "timeclock:state:"
	punchChannel   = "timeclock:punches"
)

// RedisStore keeps time-clock state in redis and publishes every punch on a
// pub/sub channel.
type RedisStore struct {
	client *redis.Client
	logger *slog.Logger
}

func NewRedisStore(addr string, db int, logger *slog.Logger) *RedisStore {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})
	return &RedisStore{client: client, logger: logger}
}

func (s *RedisStore) Get(ctx context.Context, employeeID int64) (*ClockState, error) {
	raw, err := s.client.Get(ctx, stateKey(employeeID)).Bytes()
	if err == redis.Nil {
		return &ClockState{EmployeeID: employeeID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read clock state: %w", err)
	}

	var state ClockState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("decode clock state: %w", err)
	}
	return &state, nil
}

func (s *RedisStore) Set(ctx context.Context, state *ClockState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode clock state: %w", err)
	}

	if err := s.client.Set(ctx, stateKey(state.EmployeeID), raw, 0).Err(); err != nil {
		return fmt.Errorf("write clock state: %w", err)
	}

	if err := s.client.Publish(ctx, punchChannel, raw).Err(); err != nil {
		// the punch is already persisted, only the live fan-out is lost
		s.logger.Warn("failed to publish punch", "employee_id", state.EmployeeID, "error", err)
	}
	return nil
}

// Subscribe streams punches as they happen. The channel closes when ctx is
// cancelled.
func (s *RedisStore) Subscribe(ctx context.Context) (<-chan ClockState, error) {
	sub := s.client.Subscribe(ctx, punchChannel)
	if _, err := sub.Receive(ctx); err != nil {
		return nil, fmt.Errorf("subscribe to punches: %w", err)
	}

	out := make(chan ClockState)
	go func() {
		defer close(out)
		defer sub.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-sub.Channel():
				if !ok {
					return
				}
				var state ClockState
				if err := json.Unmarshal([]byte(msg.Payload), &state); err != nil {
					s.logger.Warn("malformed punch message", "error", err)
					continue
				}
				select {
				case out <- state:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func stateKey(employeeID int64) string {
	return fmt.Sprintf("%s%d", stateKeyPrefix, employeeID)
}
