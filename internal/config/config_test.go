package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// Helper to create a temp config file.
func createTempConfigFile(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()

	configPath := filepath.Join(tmpDir, "settings.yaml")
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create temp config file: %v", err)
	}

	return configPath
}

func TestDefaultJobConfig(t *testing.T) {
	job := DefaultJobConfig()

	if job.BatchSize != 100 {
		t.Errorf("BatchSize = %d, want 100", job.BatchSize)
	}

	if job.PauseSeconds != 60 {
		t.Errorf("PauseSeconds = %d, want 60", job.PauseSeconds)
	}

	if job.OutputPath != "output.xlsx" {
		t.Errorf("OutputPath = %s, want output.xlsx", job.OutputPath)
	}

	if job.LogLevel != "info" {
		t.Errorf("LogLevel = %s, want info", job.LogLevel)
	}

	if job.Pause() != 60*time.Second {
		t.Errorf("Pause() = %s, want 1m0s", job.Pause())
	}
}

func TestLoadJobConfig_Valid(t *testing.T) {
	configPath := createTempConfigFile(t, `
batch_size: 25
pause_seconds: 5
output_path: "results.xlsx"
log_level: "debug"
`)

	job, err := LoadJobConfig(configPath)
	if err != nil {
		t.Fatalf("LoadJobConfig failed: %v", err)
	}

	if job.BatchSize != 25 {
		t.Errorf("BatchSize = %d, want 25", job.BatchSize)
	}

	if job.PauseSeconds != 5 {
		t.Errorf("PauseSeconds = %d, want 5", job.PauseSeconds)
	}

	if job.OutputPath != "results.xlsx" {
		t.Errorf("OutputPath = %s, want results.xlsx", job.OutputPath)
	}

	if job.LogLevel != "debug" {
		t.Errorf("LogLevel = %s, want debug", job.LogLevel)
	}
}

func TestLoadJobConfig_PartialKeepsDefaults(t *testing.T) {
	configPath := createTempConfigFile(t, `batch_size: 10`)

	job, err := LoadJobConfig(configPath)
	if err != nil {
		t.Fatalf("LoadJobConfig failed: %v", err)
	}

	if job.BatchSize != 10 {
		t.Errorf("BatchSize = %d, want 10", job.BatchSize)
	}

	if job.OutputPath != DefaultOutputPath {
		t.Errorf("OutputPath = %s, want default %s", job.OutputPath, DefaultOutputPath)
	}

	if job.PauseSeconds != DefaultPauseSeconds {
		t.Errorf("PauseSeconds = %d, want default %d", job.PauseSeconds, DefaultPauseSeconds)
	}
}

func TestLoadJobConfig_MissingFile(t *testing.T) {
	_, err := LoadJobConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("LoadJobConfig expected error for missing file")
	}
}

func TestLoadJobConfig_InvalidYAML(t *testing.T) {
	configPath := createTempConfigFile(t, "batch_size: [not a number")

	_, err := LoadJobConfig(configPath)
	if err == nil {
		t.Fatal("LoadJobConfig expected error for invalid YAML")
	}
}

func TestJobConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*JobConfig)
		wantErr error
	}{
		{
			name:    "valid defaults",
			mutate:  func(*JobConfig) {},
			wantErr: nil,
		},
		{
			name:    "zero batch size",
			mutate:  func(j *JobConfig) { j.BatchSize = 0 },
			wantErr: ErrInvalidBatchSize,
		},
		{
			name:    "negative pause",
			mutate:  func(j *JobConfig) { j.PauseSeconds = -1 },
			wantErr: ErrInvalidPauseSeconds,
		},
		{
			name:    "empty output path",
			mutate:  func(j *JobConfig) { j.OutputPath = "" },
			wantErr: ErrMissingOutputPath,
		},
		{
			name:    "bad log level",
			mutate:  func(j *JobConfig) { j.LogLevel = "verbose" },
			wantErr: ErrInvalidLogLevel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := DefaultJobConfig()
			tt.mutate(&job)

			err := job.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRedditFromEnv(t *testing.T) {
	t.Setenv("REDDIT_CLIENT_ID", "id")
	t.Setenv("REDDIT_CLIENT_SECRET", "secret")
	t.Setenv("REDDIT_USER_AGENT", "agent/1.0")
	t.Setenv("REDDIT_USERNAME", "user")
	t.Setenv("REDDIT_PASSWORD", "pass")

	reddit := RedditFromEnv()

	if reddit.ClientID != "id" {
		t.Errorf("ClientID = %s, want id", reddit.ClientID)
	}

	if reddit.ClientSecret != "secret" {
		t.Errorf("ClientSecret = %s, want secret", reddit.ClientSecret)
	}

	if reddit.UserAgent != "agent/1.0" {
		t.Errorf("UserAgent = %s, want agent/1.0", reddit.UserAgent)
	}

	if reddit.Username != "user" {
		t.Errorf("Username = %s, want user", reddit.Username)
	}

	if reddit.Password != "pass" {
		t.Errorf("Password = %s, want pass", reddit.Password)
	}
}

func TestRedditFromEnv_MissingIsNotFatal(t *testing.T) {
	t.Setenv("REDDIT_CLIENT_ID", "")

	// Missing credentials must not fail here; they surface on the
	// first API call.
	reddit := RedditFromEnv()
	if reddit.ClientID != "" {
		t.Errorf("ClientID = %s, want empty", reddit.ClientID)
	}
}

func TestLoad_NoConfigFile(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Job != DefaultJobConfig() {
		t.Errorf("Job = %+v, want defaults", cfg.Job)
	}
}
