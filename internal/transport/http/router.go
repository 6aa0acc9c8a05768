package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-med-reminder/internal/application/auth"
	"github.com/go-med-reminder/internal/application/intake"
	"github.com/go-med-reminder/internal/application/schedule"
	"github.com/go-med-reminder/internal/application/status"
	"github.com/go-med-reminder/internal/config"
	"github.com/go-med-reminder/internal/infrastructure/smtp"
	"github.com/go-med-reminder/internal/infrastructure/sqlite"
	"github.com/go-med-reminder/internal/infrastructure/yamlstore"
	"github.com/go-med-reminder/internal/pkg/clock"
	"github.com/go-med-reminder/internal/pkg/ttlcache"
	"github.com/go-med-reminder/internal/transport/http/handler"
	appmiddleware "github.com/go-med-reminder/internal/transport/http/middleware"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	ScheduleStore *yamlstore.Store
	Ledger        *sqlite.Ledger
	Mailer        smtp.Mailer
	Clock         clock.Clock
}

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	clk := deps.Clock
	if clk == nil {
		clk = clock.System()
	}
	now := clk.Now

	otps := ttlcache.NewWithClock[string, auth.OTPEntry](now)
	sessions := ttlcache.NewWithClock[string, auth.SessionEntry](now)
	rates := ttlcache.NewWithClock[string, auth.RateLimitEntry](now)
	snoozes := ttlcache.NewWithClock[status.SnoozeKey, time.Time](now)

	authSvc := auth.NewService(auth.Deps{
		Allowlist: deps.ScheduleStore,
		Mailer:    deps.Mailer,
		OTPs:      otps,
		Sessions:  sessions,
		Rates:     rates,
		Clock:     clk,
		Enabled:   cfg.AuthEnabled,
	})
	statusSvc := status.NewService(deps.ScheduleStore, deps.Ledger, snoozes, clk)
	intakeSvc := intake.NewService(deps.Ledger, clk)
	scheduleSvc := schedule.NewService(deps.ScheduleStore)

	healthH := handler.NewHealthHandler(cfg.AppVersion)
	authH := handler.NewAuthHandler(authSvc)
	statusH := handler.NewStatusHandler(statusSvc)
	intakeH := handler.NewIntakeHandler(intakeSvc)
	configH := handler.NewConfigHandler(scheduleSvc)

	r.Route("/api", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health", healthH.Ping)
		r.Get("/version", healthH.Version)
		r.Get("/auth/check", authH.Check)
		r.Post("/auth/request", authH.Request)
		r.Post("/auth/verify", authH.Verify)
		r.Post("/auth/logout", authH.Logout)

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(appmiddleware.Auth(authSvc))

			r.Get("/status", statusH.Get)
			r.Post("/snooze", statusH.Snooze)
			r.Post("/confirm", intakeH.Confirm)
			r.Get("/history", intakeH.History)
			r.Get("/config", configH.Get)
			r.Post("/config", configH.Update)
		})
	})

	return r
}
