// Package config provides configuration management for the enrichment job.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrInvalidBatchSize    = errors.New("job.batch_size must be at least 1")
	ErrInvalidPauseSeconds = errors.New("job.pause_seconds must be non-negative")
	ErrMissingOutputPath   = errors.New("job.output_path is required")
	ErrInvalidLogLevel     = errors.New("job.log_level must be one of: debug, info, warn, error")
)

// Default job settings: pause for one minute after every 100 processed
// URLs and write results to output.xlsx in the working directory.
const (
	DefaultBatchSize    = 100
	DefaultPauseSeconds = 60
	DefaultOutputPath   = "output.xlsx"
	DefaultLogLevel     = "info"
)

// Config is the complete job configuration, built once in main and
// passed by value into the components that need it.
type Config struct {
	Reddit RedditConfig
	Job    JobConfig
}

// RedditConfig holds the credentials for the Reddit script app. All
// five values come from the environment; none is validated eagerly,
// so missing credentials surface as an authentication failure on the
// first API call rather than at startup.
type RedditConfig struct {
	ClientID     string
	ClientSecret string
	UserAgent    string
	Username     string
	Password     string
}

// JobConfig contains run-level settings with YAML-overridable defaults.
type JobConfig struct {
	BatchSize    int    `yaml:"batch_size"`
	PauseSeconds int    `yaml:"pause_seconds"`
	OutputPath   string `yaml:"output_path"`
	LogLevel     string `yaml:"log_level"`
}

// Pause returns the rate-limit pause as a duration.
func (j JobConfig) Pause() time.Duration {
	return time.Duration(j.PauseSeconds) * time.Second
}

// DefaultJobConfig returns the job settings used when no config file
// is given.
func DefaultJobConfig() JobConfig {
	return JobConfig{
		BatchSize:    DefaultBatchSize,
		PauseSeconds: DefaultPauseSeconds,
		OutputPath:   DefaultOutputPath,
		LogLevel:     DefaultLogLevel,
	}
}

// Load builds the full configuration: credentials from the process
// environment (a .env file is honored when present) and job settings
// from the optional YAML file at jobConfigPath.
func Load(jobConfigPath string) (Config, error) {
	// A missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	job := DefaultJobConfig()

	if jobConfigPath != "" {
		loaded, err := LoadJobConfig(jobConfigPath)
		if err != nil {
			return Config{}, err
		}

		job = loaded
	}

	return Config{
		Reddit: RedditFromEnv(),
		Job:    job,
	}, nil
}

// RedditFromEnv reads the five Reddit credentials from the process
// environment. Empty values pass through unchecked.
func RedditFromEnv() RedditConfig {
	return RedditConfig{
		ClientID:     os.Getenv("REDDIT_CLIENT_ID"),
		ClientSecret: os.Getenv("REDDIT_CLIENT_SECRET"),
		UserAgent:    os.Getenv("REDDIT_USER_AGENT"),
		Username:     os.Getenv("REDDIT_USERNAME"),
		Password:     os.Getenv("REDDIT_PASSWORD"),
	}
}

// LoadJobConfig loads job settings from a YAML file. Fields omitted
// from the file keep their defaults.
func LoadJobConfig(filepath string) (JobConfig, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return JobConfig{}, fmt.Errorf("failed to read config file: %w", err)
	}

	job := DefaultJobConfig()
	if err := yaml.Unmarshal(data, &job); err != nil {
		return JobConfig{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := job.Validate(); err != nil {
		return JobConfig{}, fmt.Errorf("configuration validation failed: %w", err)
	}

	return job, nil
}

// Validate validates the job settings.
func (j JobConfig) Validate() error {
	if j.BatchSize < 1 {
		return ErrInvalidBatchSize
	}

	if j.PauseSeconds < 0 {
		return ErrInvalidPauseSeconds
	}

	if j.OutputPath == "" {
		return ErrMissingOutputPath
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[j.LogLevel] {
		return ErrInvalidLogLevel
	}

	return nil
}

// String returns a string representation of the config. Credentials
// are intentionally omitted.
func (c Config) String() string {
	return fmt.Sprintf(
		"Config{BatchSize: %d, Pause: %s, Output: %s}",
		c.Job.BatchSize,
		c.Job.Pause(),
		c.Job.OutputPath,
	)
}
