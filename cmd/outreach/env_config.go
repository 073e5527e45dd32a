package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Environment variable names. API keys deliberately keep their vendor
// prefixes so the same variables serve other tooling against those APIs.
const (
	envConfig       = "OUTREACH_CONFIG"
	envInputDir     = "OUTREACH_INPUT_DIR"
	envOutputDir    = "OUTREACH_OUTPUT_DIR"
	envWorkers      = "OUTREACH_WORKERS"
	envSmartleadKey = "SMARTLEAD_API_KEY"
	envGeminiKey    = "GEMINI_API_KEY"
)

// envSettings holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envSettings struct {
	ConfigPath   string // OUTREACH_CONFIG: config file name or path
	InputDir     string // OUTREACH_INPUT_DIR: default input directory
	OutputDir    string // OUTREACH_OUTPUT_DIR: default output directory
	Workers      int    // OUTREACH_WORKERS: parallel compile workers
	SmartleadKey string // SMARTLEAD_API_KEY: campaign platform key
	GeminiKey    string // GEMINI_API_KEY: title classifier key
}

// knownEnvVars lists valid OUTREACH_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	envConfig:    true,
	envInputDir:  true,
	envOutputDir: true,
	envWorkers:   true,
}

// loadEnvSettings reads configuration from environment variables.
func loadEnvSettings(getenv func(string) string) *envSettings {
	s := &envSettings{
		ConfigPath:   getenv(envConfig),
		InputDir:     getenv(envInputDir),
		OutputDir:    getenv(envOutputDir),
		SmartleadKey: getenv(envSmartleadKey),
		GeminiKey:    getenv(envGeminiKey),
	}

	if workers := getenv(envWorkers); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			s.Workers = w
		}
	}

	return s
}

// warnUnknownEnvVars logs warnings for unrecognized OUTREACH_* variables.
// Helps catch typos like OUTREACH_CONFG instead of OUTREACH_CONFIG.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "OUTREACH_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}
