// Package wire provides dependency injection for the obras application.
// It creates singleton services with lazy initialization.
package wire

import (
	"log"
	"os"
	"sync"

	"github.com/example/obras/internal/adapters/sqlite"
	"github.com/example/obras/internal/app"
	"github.com/example/obras/internal/config"
	"github.com/example/obras/internal/db"
	"github.com/example/obras/internal/logger"
	"github.com/example/obras/internal/ports/primary"
)

var (
	cfg           *config.Config
	ingestService primary.IngestService
	workService   primary.WorkService
	reportService primary.ReportService
	once          sync.Once
)

// Config returns the loaded configuration.
func Config() *config.Config {
	once.Do(initServices)
	return cfg
}

// IngestService returns the singleton IngestService instance.
func IngestService() primary.IngestService {
	once.Do(initServices)
	return ingestService
}

// WorkService returns the singleton WorkService instance.
func WorkService() primary.WorkService {
	once.Do(initServices)
	return workService
}

// ReportService returns the singleton ReportService instance.
func ReportService() primary.ReportService {
	once.Do(initServices)
	return reportService
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	cwd, err := os.Getwd()
	if err != nil {
		log.Fatalf("failed to get working directory: %v", err)
	}
	cfg = config.LoadOrDefault(cwd)

	logger.Init(&logger.Config{Level: cfg.LogLevel})

	database, err := db.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	store := sqlite.NewStore(database)

	ingestService = app.NewIngestService(store)
	workService = app.NewWorkService(store)
	reportService = app.NewReportService(store)
}
