package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/danielhkuo/quickly-ballot/ballot"
	"github.com/danielhkuo/quickly-ballot/cliparse"
	"github.com/danielhkuo/quickly-ballot/db"
	"github.com/danielhkuo/quickly-ballot/events"
	"github.com/danielhkuo/quickly-ballot/journal"
	"github.com/danielhkuo/quickly-ballot/metrics"
	"github.com/danielhkuo/quickly-ballot/middleware"
	"github.com/danielhkuo/quickly-ballot/router"
)

const shutdownTimeout = 10 * time.Second

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	recorder := metrics.New(registry)

	// Engine and event bus
	bus := events.NewBus(registry, logger)
	defer bus.Stop()

	opts := []ballot.Option{
		ballot.WithLogger(logger),
		ballot.WithNotifier(bus),
		ballot.WithRejectionHook(recorder.ObserveRejection),
	}
	if cfg.PublicReads {
		opts = append(opts, ballot.WithPublicReads())
	}

	// Journal (skipped for memory)
	var j *journal.Journal
	if cfg.DatabaseType != db.TypeMemory {
		dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
		if err != nil {
			slog.Error("database connection failed", "error", err)
			os.Exit(1)
		}
		defer dbConn.Close()

		if err := db.CreateSchema(dbConn); err != nil {
			slog.Error("schema creation failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Database schema ready", "type", cfg.DatabaseType)

		j = journal.New(dbConn, logger)
		opts = append(opts, ballot.WithCommitter(j))
	} else {
		slog.Warn("running without a journal, state is lost on exit")
	}

	engine, err := ballot.NewEngine(ballot.Account(cfg.AdminAccount), opts...)
	if err != nil {
		slog.Error("engine creation failed", "error", err)
		os.Exit(1)
	}
	if j != nil {
		if _, err := j.Open(context.Background(), engine); err != nil {
			slog.Error("journal restore failed", "error", err)
			os.Exit(1)
		}
	}
	recorder.Observe(engine)

	// Create router
	mux := router.NewRouter(engine, cfg, recorder, registry)

	// Create server
	server := http.Server{
		Handler:           middleware.CORS(mux),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("graceful shutdown failed", "error", err)
			server.Close()
		}
	}()

	// Start server
	slog.Info("Listening",
		"port", cfg.Port,
		"administrator", cfg.AdminAccount,
		"status", engine.WorkflowStatus(),
		"public_reads", cfg.PublicReads,
	)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}

// newLogger writes text to a terminal and JSON everywhere else
func newLogger(level slog.Level) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	fd := os.Stderr.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return slog.New(slog.NewTextHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, opts))
}
