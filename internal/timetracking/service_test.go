package timetracking_test

import (
	"context"
	"log/slog"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	internal "github.com/peoplepulse/peoplepulse/internal"
	"github.com/peoplepulse/peoplepulse/internal/accesscontrol"
	"github.com/peoplepulse/peoplepulse/internal/timetracking"
)

type memoryStore struct {
	states map[int64]*timetracking.ClockState
}

func newMemoryStore() *memoryStore {
	return &memoryStore{states: make(map[int64]*timetracking.ClockState)}
}

func (m *memoryStore) Get(ctx context.Context, employeeID int64) (*timetracking.ClockState, error) {
	if state, ok := m.states[employeeID]; ok {
		copied := *state
		return &copied, nil
	}
	return &timetracking.ClockState{EmployeeID: employeeID}, nil
}

func (m *memoryStore) Set(ctx context.Context, state *timetracking.ClockState) error {
	copied := *state
	m.states[state.EmployeeID] = &copied
	return nil
}

func (m *memoryStore) Subscribe(ctx context.Context) (<-chan timetracking.ClockState, error) {
	ch := make(chan timetracking.ClockState)
	go func() {
		<-ctx.Done()
		close(ch)
	}()
	return ch, nil
}

var _ = Describe("TimeTracking Service", func() {
	var (
		ctx      context.Context
		store    *memoryStore
		employee *internal.Principal
	)

	BeforeEach(func() {
		ctx = context.Background()
		store = newMemoryStore()
		employee = &internal.Principal{
			ID:          7,
			DisplayName: "Jon Berg",
			Role:        accesscontrol.RoleEmployee,
			Department:  accesscontrol.DepartmentEngineering,
		}
	})

	Describe("Status", func() {
		It("should report a never-punched employee as clocked out", func() {
			service := timetracking.NewService(store, nil, time.Nanosecond, slog.Default())
			state, err := service.Status(ctx, employee)
			Expect(err).NotTo(HaveOccurred())
			Expect(state.ClockedIn).To(BeFalse())
			Expect(state.LastPunchAt.IsZero()).To(BeTrue())
		})

		It("should deny a role without time tracking access", func() {
			service := timetracking.NewService(store, nil, time.Nanosecond, slog.Default())
			stranger := &internal.Principal{ID: 1, Role: accesscontrol.Role("contractor")}
			_, err := service.Status(ctx, stranger)
			Expect(err).To(Equal(internal.ErrAccessDenied))
		})
	})

	Describe("punching", func() {
		It("should toggle between in and out across punches", func() {
			service := timetracking.NewService(store, nil, time.Nanosecond, slog.Default())

			state, err := service.ClockIn(ctx, employee)
			Expect(err).NotTo(HaveOccurred())
			Expect(state.ClockedIn).To(BeTrue())
			Expect(state.LastPunchAt.IsZero()).To(BeFalse())

			state, err = service.ClockOut(ctx, employee)
			Expect(err).NotTo(HaveOccurred())
			Expect(state.ClockedIn).To(BeFalse())
		})

		It("should persist the new state in the store", func() {
			service := timetracking.NewService(store, nil, time.Nanosecond, slog.Default())
			_, err := service.ClockIn(ctx, employee)
			Expect(err).NotTo(HaveOccurred())

			stored, err := store.Get(ctx, employee.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.ClockedIn).To(BeTrue())
		})

		It("should reject a repeat punch within the cooldown window", func() {
			service := timetracking.NewService(store, nil, time.Hour, slog.Default())

			_, err := service.ClockIn(ctx, employee)
			Expect(err).NotTo(HaveOccurred())

			_, err = service.ClockOut(ctx, employee)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodePunchCooldown))
		})

		It("should reject clocking in twice", func() {
			Expect(store.Set(ctx, &timetracking.ClockState{EmployeeID: employee.ID, ClockedIn: true})).To(Succeed())
			service := timetracking.NewService(store, nil, time.Nanosecond, slog.Default())

			_, err := service.ClockIn(ctx, employee)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeAlreadyPunched))
		})

		It("should deny a role without punch permission", func() {
			service := timetracking.NewService(store, nil, time.Nanosecond, slog.Default())
			stranger := &internal.Principal{ID: 1, Role: accesscontrol.Role("contractor")}
			_, err := service.ClockIn(ctx, stranger)
			Expect(err).To(Equal(internal.ErrAccessDenied))
		})
	})
})
