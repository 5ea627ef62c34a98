package rest

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi"
	"github.com/redis/go-redis/v9"

	internal "github.com/peoplepulse/peoplepulse/internal"
	"github.com/peoplepulse/peoplepulse/internal/accesscontrol"
	"github.com/peoplepulse/peoplepulse/internal/auth"
	"github.com/peoplepulse/peoplepulse/internal/directory"
	"github.com/peoplepulse/peoplepulse/internal/timetracking"
	"github.com/peoplepulse/peoplepulse/internal/transport/middleware"
	"github.com/peoplepulse/peoplepulse/internal/transport/swagger"
	"github.com/peoplepulse/peoplepulse/internal/workflow"
)

// Handlers bundles the feature handlers registered on the router.
type Handlers struct {
	Auth         *auth.Handler
	Directory    *directory.Handler
	Workflow     *workflow.Handler
	TimeTracking *timetracking.Handler
}

func RegisterAllRoutes(router *chi.Mux, cfg *internal.Config, db *sql.DB, redisClient *redis.Client, handlers Handlers, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db, redisClient)

	var allowedOrigins []string
	if cfg.Server.AllowedOrigins != "" && cfg.Server.AllowedOrigins != "*" {
		for _, origin := range strings.Split(cfg.Server.AllowedOrigins, ",") {
			allowedOrigins = append(allowedOrigins, strings.TrimSpace(origin))
		}
	}

	router.Use(middleware.CORSMiddleware(allowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		if handlers.Auth != nil {
			r.Route("/auth", func(sr chi.Router) {
				sr.Post("/login", handlers.Auth.Login)
				sr.Post("/refresh", handlers.Auth.RefreshToken)
				sr.Post("/logout", handlers.Auth.Logout)
			})
		}

		if handlers.Auth == nil {
			return
		}

		// Protected routes that require authentication
		r.Group(func(pr chi.Router) {
			pr.Use(handlers.Auth.AuthMiddleware)

			pr.Get("/users/me", handlers.Auth.Me)

			if handlers.Directory != nil {
				pr.Route("/employees", func(er chi.Router) {
					er.Use(middleware.RequireModule(accesscontrol.ModuleEmployees))
					er.Get("/", handlers.Directory.ListEmployees)
					er.Get("/{id}", handlers.Directory.GetEmployee)
				})
			}

			if handlers.Workflow != nil {
				pr.Route("/requests", func(wr chi.Router) {
					wr.Use(middleware.RequireModule(accesscontrol.ModuleRequests))

					wr.Post("/", handlers.Workflow.SubmitRequest)
					wr.Get("/", handlers.Workflow.ListRequests)
					wr.Get("/{id}", handlers.Workflow.GetRequest)
					wr.Post("/{id}/comments", handlers.Workflow.AddComment)

					// Assignee/manager actions with permission protection
					wr.Group(func(mr chi.Router) {
						mr.Use(middleware.RequirePermission(accesscontrol.ModuleRequests, accesscontrol.ActionApprove))
						mr.Patch("/{id}/approve", handlers.Workflow.ApproveRequest)
						mr.Patch("/{id}/start", handlers.Workflow.StartRequest)
						mr.Post("/bulk-approve", handlers.Workflow.BulkApprove)
					})

					wr.Group(func(mr chi.Router) {
						mr.Use(middleware.RequirePermission(accesscontrol.ModuleRequests, accesscontrol.ActionReject))
						mr.Patch("/{id}/reject", handlers.Workflow.RejectRequest)
						mr.Post("/bulk-reject", handlers.Workflow.BulkReject)
					})

					wr.Group(func(mr chi.Router) {
						mr.Use(middleware.RequirePermission(accesscontrol.ModuleRequests, accesscontrol.ActionEscalate))
						mr.Patch("/{id}/escalate", handlers.Workflow.EscalateRequest)
					})
				})
			}

			if handlers.TimeTracking != nil {
				pr.Route("/timeclock", func(tr chi.Router) {
					tr.Use(middleware.RequireModule(accesscontrol.ModuleTimeTracking))
					tr.Get("/status", handlers.TimeTracking.Status)
					tr.Post("/clock-in", handlers.TimeTracking.ClockIn)
					tr.Post("/clock-out", handlers.TimeTracking.ClockOut)
				})
			}
		})
	})
}
