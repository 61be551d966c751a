package main

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/sheikh-saqib/transactions-processor/internal/config"
	"github.com/sheikh-saqib/transactions-processor/internal/csvio"
	"github.com/sheikh-saqib/transactions-processor/internal/events/kafka"
	interfaces "github.com/sheikh-saqib/transactions-processor/internal/interfaces"
	"github.com/sheikh-saqib/transactions-processor/internal/ledger"
	"github.com/sheikh-saqib/transactions-processor/internal/logging"
	"github.com/sheikh-saqib/transactions-processor/internal/processor"
	"github.com/sheikh-saqib/transactions-processor/internal/storage/postgres"
)

// Set with -ldflags "-X main.Version=... -X main.GitHash=... -X main.BuildTimestamp=...".
var (
	Version        = "dev"
	GitHash        = "0000000000000000000000000000000000000000"
	BuildTimestamp = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("processor", flag.ContinueOnError)
	fs.SetOutput(stderr)
	envFile := fs.String("env-file", "", "dotenv file to load (default .env, if present)")
	showVersion := fs.Bool("version", false, "print version information and exit")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: processor [flags] TRANSACTIONS_FILE\n\n")
		fmt.Fprintf(fs.Output(), "Processes the transactions in a CSV file and prints the resulting accounts as CSV.\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *showVersion {
		fmt.Fprintf(stdout, "%s (%s, %s)\n", Version, GitHash, BuildTimestamp)
		return 0
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	if err := process(ctx, cfg, logger, fs.Arg(0), stdout); err != nil {
		logger.Error("transactions processing failed", zap.Error(err))
		return 1
	}
	return 0
}

func process(ctx context.Context, cfg config.Config, logger *zap.Logger, path string, stdout io.Writer) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	reader, err := csvio.NewReader(bufio.NewReader(file))
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	opts := []processor.Option{
		processor.WithLogger(logger),
		processor.WithRunID(runID),
	}

	if len(cfg.KafkaBrokers) > 0 {
		publisher := kafka.NewPublisher(cfg.KafkaBrokers)
		defer func() {
			if err := publisher.Close(); err != nil {
				logger.Error("close kafka publisher", zap.Error(err))
			}
		}()
		opts = append(opts, processor.WithPublisher(publisher, processor.Topics{
			Rejected: cfg.KafkaRejectedTopic,
			Locked:   cfg.KafkaLockedTopic,
		}))
	}

	p := processor.New(ledger.NewLedger(), opts...)
	if _, err := p.Run(ctx, reader); err != nil {
		return err
	}

	sinks := []interfaces.ReportSink{csvio.NewWriter(stdout)}
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()

		store := postgres.NewPostgresReportStore(db, runID)
		if err := store.EnsureSchema(ctx); err != nil {
			return err
		}
		sinks = append(sinks, store)
	}

	return p.Report(ctx, sinks...)
}
