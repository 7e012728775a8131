// Command remind executes one reminder-dispatcher tick. It is an
// alternative to the POST /cron/remind endpoint for hosts that run crons as
// processes instead of HTTP calls.
//
// Usage:
//
//	remind
//
// Requires the same environment as the server (DATABASE_DSN,
// NOTIFIER_RESEND_API_KEY, ...).
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/credtrack/cpd-backend/internal/adapter/postgres"
	notificationrepo "github.com/credtrack/cpd-backend/internal/adapter/postgres/notification"
	planrepo "github.com/credtrack/cpd-backend/internal/adapter/postgres/plan"
	userrepo "github.com/credtrack/cpd-backend/internal/adapter/postgres/user"
	"github.com/credtrack/cpd-backend/internal/adapter/provider/resend"
	"github.com/credtrack/cpd-backend/internal/app"
	"github.com/credtrack/cpd-backend/internal/config"
	"github.com/credtrack/cpd-backend/internal/service/reminder"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	defer pool.Close()

	svc := reminder.NewService(
		logger,
		planrepo.New(pool),
		userrepo.New(pool),
		resend.NewClient(cfg.Notifier.ResendAPIKey, cfg.Notifier.FromAddress, logger),
		notificationrepo.New(pool),
		cfg.Reminder,
		cfg.Notifier.AppName,
	)

	report, err := svc.Run(ctx, time.Now())
	if err != nil {
		log.Fatalf("reminder run: %v", err)
	}

	fmt.Printf("Reminder run finished: %d plans, %d sent, %d failed, %d skipped.\n",
		report.Plans, report.Sent, report.Failed, report.Skipped)
}
