package main

import (
	"errors"
	"time"
)

type Config struct {
	Addr              string
	PersonasPath      string
	APIKey            string
	ScoringModel      string
	MaxConcurrentRuns int
	EventWaitTimeout  time.Duration
	FlushThreshold    int
	ShutdownTimeout   time.Duration
}

func (c Config) Validate() error {
	if c.Addr == "" {
		return errors.New("missing -addr")
	}
	if c.ScoringModel == "" {
		return errors.New("missing -scoring-model")
	}
	if c.MaxConcurrentRuns <= 0 {
		return errors.New("max-concurrent-runs must be > 0")
	}
	if c.EventWaitTimeout <= 0 {
		return errors.New("event-wait-timeout must be > 0")
	}
	if c.FlushThreshold <= 0 {
		return errors.New("flush-threshold must be > 0")
	}
	if c.ShutdownTimeout <= 0 {
		return errors.New("shutdown-timeout must be > 0")
	}
	return nil
}

func defaultConfig() Config {
	return Config{
		Addr:              ":8080",
		ScoringModel:      "gpt-4o-mini",
		MaxConcurrentRuns: 10,
		EventWaitTimeout:  30 * time.Second,
		FlushThreshold:    30,
		ShutdownTimeout:   10 * time.Second,
	}
}
