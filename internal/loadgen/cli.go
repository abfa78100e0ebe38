package loadgen

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/brahmiamine/ArbiNote-sub000/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string) error {
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "seed_votes_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, file)
	log.SetOutput(multiWriter)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the seed-votes tool.
func ShowHelp() {
	os.Stdout.WriteString(`ArbiNote Vote Seeder
====================

A concurrent tool for load testing the ArbiNote rating service.

Usage:
  go run cmd/seed-votes/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -votes int
        Number of votes to generate and submit (default 5000)
  -matches int
        Number of matches to seed (default 20)
  -officials string
        Space-separated official names to seed; quote names with spaces,
        e.g. '"Clement Turpin" "Stephanie Frappart"'
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 30s)
  -log string
        Log file for run output (default: seed_votes_TIMESTAMP.log)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Seed with default settings
  go run cmd/seed-votes/main.go

  # Seed a bigger schedule with custom officials
  go run cmd/seed-votes/main.go -votes 50000 -matches 100 -officials '"Clement Turpin" Frappart'
`)
}
