// Command sweep flags planned trainings whose training date has elapsed.
// It is an alternative to the POST /cron/sweep endpoint for hosts that run
// crons as processes instead of HTTP calls.
//
// Usage:
//
//	sweep
//
// Requires DATABASE_DSN environment variable to be set.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/credtrack/cpd-backend/internal/adapter/postgres"
	planrepo "github.com/credtrack/cpd-backend/internal/adapter/postgres/plan"
	"github.com/credtrack/cpd-backend/internal/app"
	"github.com/credtrack/cpd-backend/internal/config"
	"github.com/credtrack/cpd-backend/internal/service/pastdue"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	defer pool.Close()

	svc := pastdue.NewService(logger, planrepo.New(pool))

	flagged, err := svc.Sweep(ctx, time.Now())
	if err != nil {
		log.Fatalf("past-due sweep: %v", err)
	}

	fmt.Printf("Flagged %d past-due planned trainings.\n", flagged)
}
