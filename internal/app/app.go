// Package app wires configuration, adapters, services and transport into a
// running HTTP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/credtrack/cpd-backend/internal/adapter/postgres"
	credentialrepo "github.com/credtrack/cpd-backend/internal/adapter/postgres/credential"
	notificationrepo "github.com/credtrack/cpd-backend/internal/adapter/postgres/notification"
	planrepo "github.com/credtrack/cpd-backend/internal/adapter/postgres/plan"
	trainingrepo "github.com/credtrack/cpd-backend/internal/adapter/postgres/training"
	userrepo "github.com/credtrack/cpd-backend/internal/adapter/postgres/user"
	"github.com/credtrack/cpd-backend/internal/adapter/provider/googlecal"
	"github.com/credtrack/cpd-backend/internal/adapter/provider/resend"
	"github.com/credtrack/cpd-backend/internal/auth"
	"github.com/credtrack/cpd-backend/internal/config"
	"github.com/credtrack/cpd-backend/internal/service/calendarsync"
	"github.com/credtrack/cpd-backend/internal/service/compliance"
	notificationsvc "github.com/credtrack/cpd-backend/internal/service/notification"
	"github.com/credtrack/cpd-backend/internal/service/pastdue"
	plansvc "github.com/credtrack/cpd-backend/internal/service/plan"
	"github.com/credtrack/cpd-backend/internal/service/profile"
	"github.com/credtrack/cpd-backend/internal/service/reminder"
	trainingsvc "github.com/credtrack/cpd-backend/internal/service/training"
	"github.com/credtrack/cpd-backend/internal/transport/middleware"
	"github.com/credtrack/cpd-backend/internal/transport/rest"
)

// provisioningValidator validates an access token and lazily creates the
// shadow user row for it. Accounts live in the identity provider; the local
// row exists only so foreign keys and reminder lookups have something to
// point at.
type provisioningValidator struct {
	jwt   *auth.JWTManager
	users *userrepo.Repo
}

func (v *provisioningValidator) ValidateToken(ctx context.Context, token string) (uuid.UUID, error) {
	userID, err := v.jwt.ValidateToken(ctx, token)
	if err != nil {
		return uuid.Nil, err
	}
	if err := v.users.EnsureExists(ctx, userID); err != nil {
		return uuid.Nil, fmt.Errorf("ensure user: %w", err)
	}
	return userID, nil
}

// Run is the application entry point. It loads configuration, connects to
// the database, builds the service graph and serves HTTP until ctx is
// cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	txm := postgres.NewTxManager(pool)

	// Repositories.
	trainings := trainingrepo.New(pool)
	plans := planrepo.New(pool)
	users := userrepo.New(pool)
	credentials := credentialrepo.New(pool)
	notifications := notificationrepo.New(pool)

	// External providers.
	mailer := resend.NewClient(cfg.Notifier.ResendAPIKey, cfg.Notifier.FromAddress, logger)
	calendar := googlecal.NewClient(cfg.Calendar, logger)
	if !cfg.Calendar.Enabled() {
		logger.Warn("google calendar credentials not configured, sync endpoints will fail")
	}

	jwtMgr := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	validator := &provisioningValidator{jwt: jwtMgr, users: users}

	// Services.
	trainingService := trainingsvc.NewService(logger, trainings)
	planService := plansvc.NewService(logger, plans, trainings, txm)
	complianceService := compliance.NewService(logger, trainings, cfg.Compliance)
	reminderService := reminder.NewService(logger, plans, users, mailer, notifications, cfg.Reminder, cfg.Notifier.AppName)
	pastDueService := pastdue.NewService(logger, plans)
	calendarService := calendarsync.NewService(logger, plans, credentials, calendar)
	notificationService := notificationsvc.NewService(logger, notifications)
	profileService := profile.NewService(logger, users)

	// Handlers.
	healthHandler := rest.NewHealthHandler(pool, BuildVersion())
	trainingHandler := rest.NewTrainingHandler(trainingService, logger)
	planHandler := rest.NewPlanHandler(planService, logger)
	complianceHandler := rest.NewComplianceHandler(complianceService, logger)
	calendarHandler := rest.NewCalendarHandler(calendarService, logger)
	notificationHandler := rest.NewNotificationHandler(notificationService, logger)
	cronHandler := rest.NewCronHandler(reminderService, pastDueService, logger)
	profileHandler := rest.NewProfileHandler(profileService, logger)

	mux := http.NewServeMux()

	// Health endpoints bypass all middleware.
	mux.HandleFunc("GET /live", healthHandler.Live)
	mux.HandleFunc("GET /ready", healthHandler.Ready)
	mux.HandleFunc("GET /health", healthHandler.Health)

	// User-facing API.
	api := http.NewServeMux()
	api.HandleFunc("GET /trainings", trainingHandler.List)
	api.HandleFunc("POST /trainings", trainingHandler.Create)
	api.HandleFunc("PUT /trainings/{id}", trainingHandler.Update)
	api.HandleFunc("DELETE /trainings/{id}", trainingHandler.Delete)

	api.HandleFunc("GET /plans", planHandler.List)
	api.HandleFunc("POST /plans", planHandler.Create)
	api.HandleFunc("GET /plans/past-due", planHandler.ListPastDue)
	api.HandleFunc("PUT /plans/{id}", planHandler.Update)
	api.HandleFunc("DELETE /plans/{id}", planHandler.Delete)
	api.HandleFunc("POST /plans/{id}/promote", planHandler.Promote)

	api.HandleFunc("GET /compliance/summary", complianceHandler.GetSummary)

	api.HandleFunc("GET /calendar/auth-url", calendarHandler.AuthURL)
	// The consent redirect arrives without a bearer token; Auth passes it
	// through anonymously and the state blob identifies the user.
	api.HandleFunc("GET /calendar/callback", calendarHandler.Callback)
	api.HandleFunc("POST /calendar/sync", calendarHandler.Sync)
	api.HandleFunc("DELETE /calendar/connection", calendarHandler.Disconnect)

	api.HandleFunc("GET /profile", profileHandler.Get)
	api.HandleFunc("PUT /profile", profileHandler.Update)

	api.HandleFunc("GET /notifications", notificationHandler.List)
	api.HandleFunc("POST /notifications/read", notificationHandler.MarkRead)

	mux.Handle("/", middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.CORS(cfg.CORS),
		middleware.Logger(logger),
		middleware.Auth(validator),
	)(api))

	// Scheduler-triggered endpoints authenticate with the shared cron secret.
	cron := http.NewServeMux()
	cron.HandleFunc("POST /cron/remind", cronHandler.Remind)
	cron.HandleFunc("POST /cron/sweep", cronHandler.Sweep)

	mux.Handle("/cron/", middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.CronAuth(cfg.Reminder.CronSecret),
	)(cron))

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	return nil
}
