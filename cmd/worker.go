package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/peoplepulse/peoplepulse/internal/core/events"
	"github.com/peoplepulse/peoplepulse/internal/directory"
	directorypg "github.com/peoplepulse/peoplepulse/internal/directory/postgres"
	"github.com/peoplepulse/peoplepulse/internal/notification"
	"github.com/peoplepulse/peoplepulse/internal/timetracking"
	"github.com/peoplepulse/peoplepulse/internal/workflow"
	workflowpg "github.com/peoplepulse/peoplepulse/internal/workflow/postgres"
	"github.com/peoplepulse/peoplepulse/pkg/logger"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Start background workers",
	Long:  `Start background workers: the overdue request scanner and the time-clock stream consumer.`,
}

// Overdue scanner command
var overdueWorkerCmd = &cobra.Command{
	Use:   "overdue",
	Short: "Start the overdue request scanner",
	Long:  `Periodically scans open requests past their due date and raises overdue notifications.`,
	Run: func(cmd *cobra.Command, args []string) {
		startOverdueWorker()
	},
}

// Time-clock stream consumer command
var timeclockWorkerCmd = &cobra.Command{
	Use:   "timeclock",
	Short: "Start the time-clock stream consumer",
	Long:  `Consumes clock-in/clock-out punches from the time-tracking store and logs them for live dashboards.`,
	Run: func(cmd *cobra.Command, args []string) {
		startTimeclockWorker()
	},
}

func startOverdueWorker() {
	config, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(config.Observability.Logging.Level, config.Observability.Logging.Format)
	lg := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open gorm connection: %v\n", err)
		os.Exit(1)
	}

	eventBus := events.NewEventBus(lg)
	notifier := notification.NewNotifier(lg)
	notifier.SubscribeToWorkflow(eventBus)

	directoryService := directory.NewService(directorypg.NewEmployeeRepository(db), lg)
	assigner := workflow.NewAssigner(directoryService, config.Workflow.DefaultAssignee, lg)
	workflowService := workflow.NewService(
		workflowpg.NewRequestRepository(gormDB),
		assigner,
		eventBus,
		workflow.Options{
			DueHours:           config.Workflow.DueHours,
			ReassignOnEscalate: config.Workflow.ReassignOnEscalate,
		},
		lg,
	)

	scan := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		overdue, err := workflowService.FindOverdue(ctx, time.Now())
		if err != nil {
			lg.Error("overdue scan failed", "error", err)
			return
		}

		lg.Info("overdue scan complete", "overdue_count", len(overdue))
		for _, req := range overdue {
			if err := eventBus.PublishSync(ctx, events.NewRequestOverdue(req.ID, req.AssignedTo, req.DueDate)); err != nil {
				lg.Error("failed to publish overdue event", "request_id", req.ID, "error", err)
			}
		}
	}

	c := cron.New()
	if _, err := c.AddFunc(config.Workflow.OverdueScanCron, scan); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid overdue scan schedule %q: %v\n", config.Workflow.OverdueScanCron, err)
		os.Exit(1)
	}
	c.Start()

	lg.Info("overdue scanner started", "schedule", config.Workflow.OverdueScanCron)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	lg.Info("received signal, shutting down overdue scanner", "signal", sig)

	stopCtx := c.Stop()
	select {
	case <-stopCtx.Done():
		lg.Info("overdue scanner shutdown complete")
	case <-time.After(30 * time.Second):
		lg.Warn("shutdown timeout reached, forcing exit")
	}
}

func startTimeclockWorker() {
	config, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(config.Observability.Logging.Level, config.Observability.Logging.Format)
	lg := logger.LoggerWrapper()

	store := timetracking.NewRedisStore(config.TimeTracking.RedisAddr, config.TimeTracking.RedisDB, lg)
	defer store.Close()

	poller := timetracking.NewPoller(store, config.TimeTracking.PollInterval, func(state timetracking.ClockState) {
		lg.Info("punch observed",
			"employee_id", state.EmployeeID,
			"clocked_in", state.ClockedIn,
			"last_punch_at", state.LastPunchAt)
	}, lg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go poller.Run(ctx)
	lg.Info("time-clock consumer started", "poll_interval", config.TimeTracking.PollInterval)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigChan
	lg.Info("received signal, shutting down time-clock consumer", "signal", sig)
	cancel()
}

func init() {
	workerCmd.AddCommand(overdueWorkerCmd)
	workerCmd.AddCommand(timeclockWorkerCmd)

	rootCmd.AddCommand(workerCmd)
}
