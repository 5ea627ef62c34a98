package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/peoplepulse/peoplepulse/internal"
	"github.com/peoplepulse/peoplepulse/internal/auth"
	authpg "github.com/peoplepulse/peoplepulse/internal/auth/postgres"
	"github.com/peoplepulse/peoplepulse/internal/core/events"
	"github.com/peoplepulse/peoplepulse/internal/directory"
	directorypg "github.com/peoplepulse/peoplepulse/internal/directory/postgres"
	"github.com/peoplepulse/peoplepulse/internal/notification"
	"github.com/peoplepulse/peoplepulse/internal/timetracking"
	"github.com/peoplepulse/peoplepulse/internal/transport/rest"
	"github.com/peoplepulse/peoplepulse/internal/workflow"
	workflowpg "github.com/peoplepulse/peoplepulse/internal/workflow/postgres"
	"github.com/peoplepulse/peoplepulse/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	DB       *sqlx.DB
	GormDB   *gorm.DB
	Redis    *redis.Client
	Router   *chi.Mux
	EventBus *events.EventBus
	Logger   *slog.Logger

	Handlers rest.Handlers
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(deps.Router, deps.Config, deps.DB.DB, deps.Redis, deps.Handlers, deps.Logger)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
		if deps.Redis != nil {
			if err := deps.Redis.Close(); err != nil {
				slog.Error("Redis close error", "error", err)
			}
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Observability.Logging.Level, config.Observability.Logging.Format)
	lg := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm connection: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr: config.TimeTracking.RedisAddr,
		DB:   config.TimeTracking.RedisDB,
	})

	eventBus := events.NewEventBus(lg)

	notifier := notification.NewNotifier(lg)
	notifier.SubscribeToWorkflow(eventBus)

	// auth
	tokenGen := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)
	authService := auth.NewService(authpg.NewRepository(gormDB), tokenGen, config.Security.BCryptCost)
	authHandler := auth.NewHandler(authService)

	// directory
	directoryService := directory.NewService(directorypg.NewEmployeeRepository(db), lg)
	directoryHandler := directory.NewHandler(directoryService)

	// workflow, the directory service doubles as the assignment roster
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
	workflowHandler := workflow.NewHandler(workflowService)

	// time tracking
	timeStore := timetracking.NewRedisStore(config.TimeTracking.RedisAddr, config.TimeTracking.RedisDB, lg)
	timeService := timetracking.NewService(timeStore, eventBus, config.TimeTracking.Cooldown, lg)
	timeHandler := timetracking.NewHandler(timeService)

	return &Dependencies{
		Config:   config,
		Logger:   lg,
		DB:       db,
		GormDB:   gormDB,
		Redis:    redisClient,
		Router:   chi.NewRouter(),
		EventBus: eventBus,
		Handlers: rest.Handlers{
			Auth:         authHandler,
			Directory:    directoryHandler,
			Workflow:     workflowHandler,
			TimeTracking: timeHandler,
		},
	}, nil
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
