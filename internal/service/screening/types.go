package screening

import (
	"time"

	"github.com/complianceworks/sanctions-screening-backend/internal/domain/errors"
	"github.com/complianceworks/sanctions-screening-backend/internal/matching"
)

// AlgorithmVersion identifies the scoring pipeline for audit trails; it is
// reported with every screening response.
const AlgorithmVersion = "2.0.0"

// Config carries everything the engine validates at startup. A bad
// configuration fails service construction, never a screening call.
type Config struct {
	Weights              Weights         `koanf:"weights"`
	Thresholds           Thresholds      `koanf:"thresholds"`
	HighSeverityPrograms []string        `koanf:"high_severity_programs"`
	Matching             matching.Config `koanf:"matching"`
	Batch                BatchConfig     `koanf:"batch"`
}

// BatchConfig bounds bulk screening
type BatchConfig struct {
	// MaxRecords rejects oversized batches up front; no partial batch is
	// ever attempted.
	MaxRecords int `koanf:"max_records"`

	// Concurrency caps the per-record worker fan-out.
	Concurrency int `koanf:"concurrency"`

	// Timeout fails the whole batch when exceeded; callers resubmit, they
	// never receive partial results.
	Timeout time.Duration `koanf:"timeout"`
}

// Validate checks the batch bounds
func (c BatchConfig) Validate() error {
	if c.MaxRecords <= 0 {
		return errors.NewConfigurationError("INVALID_BATCH_LIMIT",
			"batch.max_records must be positive")
	}
	if c.Concurrency <= 0 {
		return errors.NewConfigurationError("INVALID_BATCH_CONCURRENCY",
			"batch.concurrency must be positive")
	}
	if c.Timeout <= 0 {
		return errors.NewConfigurationError("INVALID_BATCH_TIMEOUT",
			"batch.timeout must be positive")
	}
	return nil
}

// DefaultConfig returns the documented engine defaults
func DefaultConfig() Config {
	return Config{
		Weights:              DefaultWeights(),
		Thresholds:           DefaultThresholds(),
		HighSeverityPrograms: DefaultHighSeverityPrograms(),
		Matching:             matching.DefaultConfig(),
		Batch: BatchConfig{
			MaxRecords:  10000,
			Concurrency: 8,
			Timeout:     5 * time.Minute,
		},
	}
}

// Validate runs all startup checks
func (c Config) Validate() error {
	if err := c.Weights.Validate(); err != nil {
		return err
	}
	if err := c.Thresholds.Validate(); err != nil {
		return err
	}
	if err := c.Matching.Validate(); err != nil {
		return err
	}
	return c.Batch.Validate()
}
