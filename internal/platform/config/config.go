package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"enough/internal/platform/calendar"
	apperrors "enough/internal/platform/errors"
)

const (
	PolicyCalendarWeek = "calendar_week"
	PolicyBusinessDay  = "business_day"

	TriggerWeekend           = "weekend"
	TriggerCompletedWeekdays = "completed_weekdays"

	envPrefix  = "ENOUGH"
	configName = "config.yaml"
	dotEnvName = ".env"
)

type Config struct {
	ProfileDir  string            `mapstructure:"-"`
	ProgramFile string            `mapstructure:"program_file"`
	DataDir     string            `mapstructure:"data_dir"`
	Schedule    ScheduleConfig    `mapstructure:"schedule"`
	Completions CompletionsConfig `mapstructure:"completions"`
	Encryption  EncryptionConfig  `mapstructure:"encryption"`
	Log         LogConfig         `mapstructure:"log"`
}

type ScheduleConfig struct {
	Policy            string   `mapstructure:"policy"`
	WeekdaysPerWeek   int      `mapstructure:"weekdays_per_week"`
	WeekendDays       []string `mapstructure:"weekend_days"`
	ReflectionTrigger string   `mapstructure:"reflection_trigger"`
}

type CompletionsConfig struct {
	Min int `mapstructure:"min"`
	Max int `mapstructure:"max"`
}

type EncryptionConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	PassphraseEnv string `mapstructure:"passphrase_env"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("program_file", "")
	v.SetDefault("data_dir", "")
	v.SetDefault("schedule.policy", PolicyCalendarWeek)
	v.SetDefault("schedule.weekdays_per_week", 5)
	v.SetDefault("schedule.weekend_days", []string{"saturday", "sunday"})
	v.SetDefault("schedule.reflection_trigger", TriggerWeekend)
	v.SetDefault("completions.min", 6)
	v.SetDefault("completions.max", 10)
	v.SetDefault("encryption.enabled", false)
	v.SetDefault("encryption.passphrase_env", "ENOUGH_PASSPHRASE")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "enough.log")
}

// ResolveProfileDir picks the profile directory: explicit flag, then
// $ENOUGH_HOME, then $XDG_CONFIG_HOME/enough, then ~/.config/enough.
func ResolveProfileDir(flagValue string) (string, error) {
	if flagValue != "" {
		return filepath.Abs(flagValue)
	}
	if home := os.Getenv("ENOUGH_HOME"); home != "" {
		return filepath.Abs(home)
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "enough"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("%w: cannot resolve home directory: %v", apperrors.ErrConfiguration, err)
	}
	return filepath.Join(home, ".config", "enough"), nil
}

// Load layers defaults, <profile>/config.yaml and ENOUGH_* variables. A
// <profile>/.env file is applied to the process environment first and never
// overrides variables that are already set.
func Load(profileDir string) (Config, error) {
	if profileDir == "" {
		return Config{}, fmt.Errorf("%w: profile directory is required", apperrors.ErrConfiguration)
	}
	if err := godotenv.Load(filepath.Join(profileDir, dotEnvName)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("%w: load %s: %v", apperrors.ErrConfiguration, dotEnvName, err)
	}

	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path := filepath.Join(profileDir, configName)
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("%w: read %s: %v", apperrors.ErrConfiguration, path, err)
		}
	}

	cfg := Config{}
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: decode config: %v", apperrors.ErrConfiguration, err)
	}
	cfg.ProfileDir = profileDir
	if cfg.DataDir == "" {
		cfg.DataDir = profileDir
	} else if !filepath.IsAbs(cfg.DataDir) {
		cfg.DataDir = filepath.Join(profileDir, cfg.DataDir)
	}
	if cfg.ProgramFile != "" && !filepath.IsAbs(cfg.ProgramFile) {
		cfg.ProgramFile = filepath.Join(profileDir, cfg.ProgramFile)
	}
	if cfg.Log.File != "" && !filepath.IsAbs(cfg.Log.File) {
		cfg.Log.File = filepath.Join(profileDir, cfg.Log.File)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var problems []string
	switch c.Schedule.Policy {
	case PolicyCalendarWeek, PolicyBusinessDay:
	default:
		problems = append(problems, fmt.Sprintf("schedule.policy %q must be %s or %s", c.Schedule.Policy, PolicyCalendarWeek, PolicyBusinessDay))
	}
	switch c.Schedule.ReflectionTrigger {
	case TriggerWeekend, TriggerCompletedWeekdays:
	default:
		problems = append(problems, fmt.Sprintf("schedule.reflection_trigger %q must be %s or %s", c.Schedule.ReflectionTrigger, TriggerWeekend, TriggerCompletedWeekdays))
	}
	workweek, err := calendar.ParseWorkweek(c.Schedule.WeekendDays)
	if err != nil {
		problems = append(problems, fmt.Sprintf("schedule.weekend_days: %v", err))
	} else if practice := workweek.PracticeDaysPerWeek(); c.Schedule.WeekdaysPerWeek < 1 || c.Schedule.WeekdaysPerWeek > practice {
		problems = append(problems, fmt.Sprintf("schedule.weekdays_per_week %d must be between 1 and %d", c.Schedule.WeekdaysPerWeek, practice))
	}
	if c.Completions.Min < 1 || c.Completions.Max < c.Completions.Min {
		problems = append(problems, fmt.Sprintf("completions min %d / max %d must satisfy 1 <= min <= max", c.Completions.Min, c.Completions.Max))
	}
	if c.Encryption.Enabled && c.Encryption.PassphraseEnv == "" {
		problems = append(problems, "encryption.passphrase_env is required when encryption is enabled")
	}
	switch strings.ToLower(c.Log.Level) {
	case "trace", "debug", "info", "warn", "error", "off":
	default:
		problems = append(problems, fmt.Sprintf("log.level %q is not a known level", c.Log.Level))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", apperrors.ErrConfiguration, strings.Join(problems, "; "))
	}
	return nil
}

// Passphrase returns the secret named by encryption.passphrase_env.
func (c Config) Passphrase() (string, error) {
	value := os.Getenv(c.Encryption.PassphraseEnv)
	if value == "" {
		return "", fmt.Errorf("%w: encryption enabled but $%s is empty", apperrors.ErrConfiguration, c.Encryption.PassphraseEnv)
	}
	return value, nil
}

func (c Config) ProgressPath() string {
	return filepath.Join(c.ProfileDir, "progress.json")
}

func (c Config) SubmissionsDir() string {
	return filepath.Join(c.DataDir, "submissions")
}

func (c Config) ReviewsDir() string {
	return filepath.Join(c.DataDir, "reviews")
}

func (c Config) IndexPath() string {
	return filepath.Join(c.ProfileDir, ".enough", "index.db")
}
