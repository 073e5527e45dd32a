// Package config loads and validates the toolkit's YAML configuration.
//
// Configuration covers the compiler's token vocabulary, the campaign
// platform payload values the original toolkit hard-coded, the title
// classifier's settings, and the return-app mapping override. API keys
// never live here; they come from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	outreach "github.com/alnah/go-outreach"
	"github.com/alnah/go-outreach/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrInvalidField    = errors.New("invalid config field")
)

// Limits for classifier settings. A batch above the cap produces prompts
// the model answers unreliably; the floor keeps the runner progressing.
const (
	MinBatchSize = 1
	MaxBatchSize = 500
)

// Config holds all configuration for the outreach toolkit.
type Config struct {
	Input      InputConfig      `yaml:"input"`
	Output     OutputConfig     `yaml:"output"`
	Compiler   CompilerConfig   `yaml:"compiler"`
	Platform   PlatformConfig   `yaml:"platform"`
	Launch     LaunchConfig     `yaml:"launch"`
	Classifier ClassifierConfig `yaml:"classifier"`
	Apps       AppsConfig       `yaml:"apps"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
}

// CompilerConfig overrides the sequence compiler's behavior. An empty
// token table means the built-in vocabulary.
type CompilerConfig struct {
	Tokens         []outreach.TokenMapping `yaml:"tokens"`
	StrictEmphasis bool                    `yaml:"strictEmphasis"`
}

// PlatformConfig points at the campaign platform and carries the payload
// values applied to every campaign after creation.
type PlatformConfig struct {
	BaseURL     string            `yaml:"baseURL"` // Empty = hosted platform default
	Unsubscribe UnsubscribeConfig `yaml:"unsubscribe"`
	Schedule    ScheduleConfig    `yaml:"schedule"`
}

// UnsubscribeConfig is the stop/opt-out behavior applied per campaign.
// Values pass through to the platform unchanged.
type UnsubscribeConfig struct {
	Text                        string `yaml:"text"`
	StopLeadSettings            string `yaml:"stopLeadSettings"`
	AutoPauseDomainLeadsOnReply bool   `yaml:"autoPauseDomainLeadsOnReply"`
}

// ScheduleConfig is the sending-window payload applied per campaign.
// The platform interprets the values; this toolkit only delivers them.
type ScheduleConfig struct {
	Timezone          string `yaml:"timezone"`
	DaysOfTheWeek     []int  `yaml:"daysOfTheWeek"`
	StartHour         string `yaml:"startHour"`
	EndHour           string `yaml:"endHour"`
	MinTimeBtwEmails  int    `yaml:"minTimeBtwEmails"`
	MaxNewLeadsPerDay int    `yaml:"maxNewLeadsPerDay"`
}

// LaunchConfig tunes the launch orchestration.
type LaunchConfig struct {
	Pause string `yaml:"pause"` // Pause between API calls, e.g. "1s"
}

// ClassifierConfig tunes the title classifier.
type ClassifierConfig struct {
	Model       string `yaml:"model"`       // Gemini model name
	BatchSize   int    `yaml:"batchSize"`   // Titles per request
	Pause       string `yaml:"pause"`       // Pause between batches, e.g. "2s"
	PromptPath  string `yaml:"promptPath"`  // Prompt template override (empty = embedded)
	TitleColumn string `yaml:"titleColumn"` // Column holding job titles
}

// AppsConfig tunes return-app tagging.
type AppsConfig struct {
	MappingPath string `yaml:"mappingPath"` // Mapping override (empty = embedded)
}

// DefaultConfig returns the values the original toolkit shipped with:
// weekday sends 09:00-16:00 Toronto time, the standard opt-out line, and
// a 50-title classifier batch on gemini-2.5-flash.
func DefaultConfig() *Config {
	return &Config{
		Platform: PlatformConfig{
			Unsubscribe: UnsubscribeConfig{
				Text:                        "Click here to opt out of this email, or reply 'Not interested' to be removed from our list",
				StopLeadSettings:            "REPLY_TO_AN_EMAIL",
				AutoPauseDomainLeadsOnReply: true,
			},
			Schedule: ScheduleConfig{
				Timezone:          "America/Toronto",
				DaysOfTheWeek:     []int{1, 2, 3, 4, 5},
				StartHour:         "09:00",
				EndHour:           "16:00",
				MinTimeBtwEmails:  9,
				MaxNewLeadsPerDay: 1000,
			},
		},
		Launch: LaunchConfig{Pause: "1s"},
		Classifier: ClassifierConfig{
			Model:       "gemini-2.5-flash",
			BatchSize:   50,
			Pause:       "2s",
			TitleColumn: "Title",
		},
	}
}

// Validate checks field values after decoding. Zero values stand for
// defaults and always pass.
func (c *Config) Validate() error {
	for i, m := range c.Compiler.Tokens {
		if m.Token == "" {
			return fmt.Errorf("%w: compiler.tokens[%d].token is empty", ErrInvalidField, i)
		}
	}

	if u := c.Platform.BaseURL; u != "" {
		if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
			return fmt.Errorf("%w: platform.baseURL %q must start with http:// or https://", ErrInvalidField, u)
		}
	}

	for _, day := range c.Platform.Schedule.DaysOfTheWeek {
		if day < 0 || day > 6 {
			return fmt.Errorf("%w: platform.schedule.daysOfTheWeek value %d out of range 0-6", ErrInvalidField, day)
		}
	}

	if err := validatePause("launch.pause", c.Launch.Pause); err != nil {
		return err
	}
	if err := validatePause("classifier.pause", c.Classifier.Pause); err != nil {
		return err
	}

	if b := c.Classifier.BatchSize; b != 0 && (b < MinBatchSize || b > MaxBatchSize) {
		return fmt.Errorf("%w: classifier.batchSize must be between %d and %d, got %d",
			ErrInvalidField, MinBatchSize, MaxBatchSize, b)
	}

	return nil
}

// validatePause checks that a pause field parses as a non-negative duration.
func validatePause(field, value string) error {
	if value == "" {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("%w: %s %q is not a duration", ErrInvalidField, field, value)
	}
	if d < 0 {
		return fmt.Errorf("%w: %s must not be negative", ErrInvalidField, field)
	}
	return nil
}

// LaunchPause returns the parsed pause between launch API calls.
func (c *Config) LaunchPause() time.Duration {
	return parsePause(c.Launch.Pause, time.Second)
}

// ClassifierPause returns the parsed pause between classifier batches.
func (c *Config) ClassifierPause() time.Duration {
	return parsePause(c.Classifier.Pause, 2*time.Second)
}

func parsePause(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil || d < 0 {
		return fallback
	}
	return d
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard
// locations. Returns an error if the file is not found (no silent
// fallback). Values absent from the file keep the defaults.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/outreach/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	// Try current directory first (both extensions)
	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	// Try user config directory (both extensions)
	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "outreach", name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
