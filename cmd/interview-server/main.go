package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/smartman98814/Sales-education-platform-with-AI-Avatar-interview-BackEnd/gateway"
	"github.com/smartman98814/Sales-education-platform-with-AI-Avatar-interview-BackEnd/persona"
	"github.com/smartman98814/Sales-education-platform-with-AI-Avatar-interview-BackEnd/provider"
	"github.com/smartman98814/Sales-education-platform-with-AI-Avatar-interview-BackEnd/scoring"
	"github.com/smartman98814/Sales-education-platform-with-AI-Avatar-interview-BackEnd/stream"
)

func main() {
	cfg, err := parseFlags(flag.CommandLine, os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}

	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		fmt.Fprintln(os.Stderr, "missing OPENAI_API_KEY (or pass -api-key)")
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := log.New(os.Stderr, "interview-server ", log.LstdFlags)

	registry, err := buildRegistry(cfg.PersonasPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}

	backend, err := provider.New(apiKey)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}

	assembler, err := stream.NewAssembler(registry, backend, stream.Options{
		MaxConcurrentRuns: cfg.MaxConcurrentRuns,
		EventWaitTimeout:  cfg.EventWaitTimeout,
		FlushThreshold:    cfg.FlushThreshold,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(2)
	}

	handler := gateway.NewHandler(gateway.Dependencies{
		Registry: registry,
		Streamer: assembler,
		Scorer:   scoring.NewEngine(backend, cfg.ScoringModel),
		Logger:   logger,
	})

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Printf("listening on %s (%d personas)", cfg.Addr, registry.Len())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Printf("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Printf("shutdown: %v", err)
			os.Exit(1)
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
	}
}

// buildRegistry loads the persona roster from path, or the built-in roster
// when no path is given.
func buildRegistry(path string) (*persona.Registry, error) {
	if path != "" {
		return persona.LoadFile(path)
	}
	return persona.NewRegistry(persona.DefaultRoster())
}

func parseFlags(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := defaultConfig()
	fs.SetOutput(os.Stderr)
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "HTTP listen address")
	fs.StringVar(&cfg.PersonasPath, "personas", "", "Optional YAML persona roster (default: built-in roster)")
	fs.StringVar(&cfg.ScoringModel, "scoring-model", cfg.ScoringModel, "OpenAI model for interview scoring")
	fs.IntVar(&cfg.MaxConcurrentRuns, "max-concurrent-runs", cfg.MaxConcurrentRuns, "Max simultaneous streaming interviews")
	fs.DurationVar(&cfg.EventWaitTimeout, "event-wait-timeout", cfg.EventWaitTimeout, "Max wait between stream events before a run is failed")
	fs.IntVar(&cfg.FlushThreshold, "flush-threshold", cfg.FlushThreshold, "Buffered chars before an unterminated segment is flushed")
	fs.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", cfg.ShutdownTimeout, "Max wait for in-flight requests on shutdown")
	fs.StringVar(&cfg.APIKey, "api-key", "", "OpenAI API key (overrides OPENAI_API_KEY env var)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
