package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/stridecoach/stride/internal/chatstate"
	"github.com/stridecoach/stride/internal/cli"
	"github.com/stridecoach/stride/internal/db"
	"github.com/stridecoach/stride/internal/repository"
	"github.com/stridecoach/stride/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.stride/stride.db
	dbPath := os.Getenv("STRIDE_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".stride", "stride.db")
	}

	// Open database
	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	athleteRepo := repository.NewSQLiteAthleteRepo(database)
	planRepo := repository.NewSQLitePlanRepo(database)
	sessionRepo := repository.NewSQLiteSessionRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	// Use-case telemetry goes to stderr when requested.
	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if os.Getenv("STRIDE_LOG") != "" {
		observer = service.NewLogUseCaseObserver(os.Stderr)
	}

	app := &cli.App{
		Athletes: service.NewAthleteService(athleteRepo),
		Plans:    service.NewPlanService(planRepo, uow, observer),
		Checkins: service.NewCheckinService(sessionRepo, chatstate.NewMemoryStore(time.Hour), observer),
		Feedback: service.NewFeedbackService(sessionRepo, planRepo, observer),
	}

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
