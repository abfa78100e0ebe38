package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/brahmiamine/ArbiNote-sub000/internal/loadgen"
)

// Default configuration constants.
const (
	defaultNumVotes   = 5000
	defaultMatches    = 20
	defaultWorkers    = 2 // multiplier for runtime.NumCPU()
	defaultTimeout    = 30 * time.Second
	defaultRunTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL   = flag.String("url", "http://localhost:9080", "Base URL of the service")
		numVotes  = flag.Int("votes", defaultNumVotes, "Number of votes to generate and submit")
		matches   = flag.Int("matches", defaultMatches, "Number of matches to seed")
		officials = flag.String("officials", "", `Official names to seed; quote names with spaces`)
		workers   = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout   = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		logFile   = flag.String("log", "", "Log file for run output (default: seed_votes_TIMESTAMP.log)")
		verbose   = flag.Bool("verbose", false, "Enable verbose logging")
		help      = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		loadgen.ShowHelp()
		return
	}

	if err := loadgen.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	names, err := loadgen.ParseOfficials(*officials)
	if err != nil {
		os.Stderr.WriteString("Failed to parse officials: " + err.Error() + "\n")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunTimeout)
	defer cancel()

	config := &loadgen.Config{
		BaseURL:   *baseURL,
		NumVotes:  *numVotes,
		Matches:   *matches,
		Officials: names,
		Workers:   *workers,
		Timeout:   *timeout,
		LogFile:   *logFile,
		Verbose:   *verbose,
	}

	if err := loadgen.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Run failed: " + err.Error() + "\n")
		return
	}
}
