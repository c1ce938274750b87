package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"enough/internal/platform/config"
	apperrors "enough/internal/platform/errors"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	if cfg.Schedule.Policy != config.PolicyCalendarWeek {
		t.Fatalf("unexpected policy %q", cfg.Schedule.Policy)
	}
	if cfg.Schedule.WeekdaysPerWeek != 5 || len(cfg.Schedule.WeekendDays) != 2 {
		t.Fatalf("unexpected schedule defaults: %+v", cfg.Schedule)
	}
	if cfg.Completions.Min != 6 || cfg.Completions.Max != 10 {
		t.Fatalf("unexpected completion bounds: %+v", cfg.Completions)
	}
	if cfg.DataDir != dir {
		t.Fatalf("data dir should default to profile, got %q", cfg.DataDir)
	}
	if cfg.IndexPath() != filepath.Join(dir, ".enough", "index.db") {
		t.Fatalf("unexpected index path %q", cfg.IndexPath())
	}
}

func TestLoadFileAndEnvLayers(t *testing.T) {
	dir := t.TempDir()
	raw := "schedule:\n  policy: business_day\ncompletions:\n  min: 2\n  max: 4\ndata_dir: journal\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(raw), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("ENOUGH_COMPLETIONS_MAX", "8")

	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Schedule.Policy != config.PolicyBusinessDay {
		t.Fatalf("file layer ignored: %q", cfg.Schedule.Policy)
	}
	if cfg.Completions.Min != 2 || cfg.Completions.Max != 8 {
		t.Fatalf("env layer ignored: %+v", cfg.Completions)
	}
	if cfg.DataDir != filepath.Join(dir, "journal") {
		t.Fatalf("relative data dir not anchored: %q", cfg.DataDir)
	}
}

func TestLoadDotEnvPassphrase(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ENOUGH_TEST_SECRET", "")
	os.Unsetenv("ENOUGH_TEST_SECRET")
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("ENOUGH_TEST_SECRET=hunter2\n"), 0o600); err != nil {
		t.Fatalf("write env: %v", err)
	}
	raw := "encryption:\n  enabled: true\n  passphrase_env: ENOUGH_TEST_SECRET\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(raw), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	secret, err := cfg.Passphrase()
	if err != nil {
		t.Fatalf("passphrase: %v", err)
	}
	if secret != "hunter2" {
		t.Fatalf("unexpected passphrase %q", secret)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	dir := t.TempDir()
	raw := "schedule:\n  policy: lunar\ncompletions:\n  min: 5\n  max: 3\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(raw), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := config.Load(dir); !errors.Is(err, apperrors.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestWeekdayBoundCountsDistinctWeekendDays(t *testing.T) {
	dir := t.TempDir()
	raw := "schedule:\n  weekend_days: [saturday, Sat]\n  weekdays_per_week: 6\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(raw), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := config.Load(dir)
	if err != nil {
		t.Fatalf("a repeated weekend day must not shrink the practice week: %v", err)
	}
	if cfg.Schedule.WeekdaysPerWeek != 6 {
		t.Fatalf("unexpected weekdays per week %d", cfg.Schedule.WeekdaysPerWeek)
	}

	raw = "schedule:\n  weekend_days: [funday]\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(raw), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := config.Load(dir); !errors.Is(err, apperrors.ErrConfiguration) {
		t.Fatalf("unknown weekend day must be a configuration error, got %v", err)
	}
}

func TestResolveProfileDirPrecedence(t *testing.T) {
	t.Setenv("ENOUGH_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	got, err := config.ResolveProfileDir("")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got != filepath.Join("/tmp/xdg", "enough") {
		t.Fatalf("expected xdg path, got %q", got)
	}
	t.Setenv("ENOUGH_HOME", "/tmp/enough-home")
	got, _ = config.ResolveProfileDir("")
	if got != "/tmp/enough-home" {
		t.Fatalf("expected ENOUGH_HOME, got %q", got)
	}
	got, _ = config.ResolveProfileDir("/tmp/flag")
	if got != "/tmp/flag" {
		t.Fatalf("expected flag to win, got %q", got)
	}
}
