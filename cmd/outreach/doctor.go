package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"github.com/alnah/go-outreach/internal/config"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status      string       `json:"status"` // "ready", "warnings", "errors"
	Config      configInfo   `json:"config"`
	Credentials credInfo     `json:"credentials"`
	Env         platformInfo `json:"environment"`
	System      systemInfo   `json:"system"`
	Warnings    []string     `json:"warnings,omitempty"`
	Errors      []string     `json:"errors,omitempty"`
}

// configInfo holds config resolution results.
type configInfo struct {
	Source string `json:"source"` // "defaults", env var, or the file that loaded
	Valid  bool   `json:"valid"`
}

// credInfo holds API key presence (never the values).
type credInfo struct {
	Smartlead bool `json:"smartlead_api_key"`
	Gemini    bool `json:"gemini_api_key"`
}

// platformInfo holds runtime environment details.
type platformInfo struct {
	OS        string `json:"os"`
	Arch      string `json:"arch"`
	InputDir  string `json:"input_dir,omitempty"`
	OutputDir string `json:"output_dir,omitempty"`
}

// systemInfo holds system check results.
type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(args []string, env *Environment) int {
	jsonOutput := false
	for _, arg := range args {
		if arg == "--json" {
			jsonOutput = true
		}
	}

	result := runDoctor(env)

	if jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks.
func runDoctor(env *Environment) *doctorResult {
	settings := loadEnvSettings(env.Getenv)
	result := &doctorResult{
		Status: "ready",
		Env: platformInfo{
			OS:        runtime.GOOS,
			Arch:      runtime.GOARCH,
			InputDir:  settings.InputDir,
			OutputDir: settings.OutputDir,
		},
	}

	checkConfig(result, settings)
	checkCredentials(result, settings)
	checkDirs(result, settings)
	checkSystem(result)

	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}
	return result
}

// checkConfig resolves and validates the configuration.
func checkConfig(result *doctorResult, settings *envSettings) {
	if settings.ConfigPath == "" {
		result.Config = configInfo{Source: "defaults", Valid: true}
		return
	}

	result.Config.Source = settings.ConfigPath
	if _, err := config.LoadConfig(settings.ConfigPath); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Config %s failed to load: %v", settings.ConfigPath, err))
		return
	}
	result.Config.Valid = true
}

// checkCredentials reports API key presence. Missing keys are warnings:
// compile and apps work without either.
func checkCredentials(result *doctorResult, settings *envSettings) {
	result.Credentials.Smartlead = settings.SmartleadKey != ""
	result.Credentials.Gemini = settings.GeminiKey != ""

	if !result.Credentials.Smartlead {
		result.Warnings = append(result.Warnings,
			envSmartleadKey+" not set; launch and accounts will fail")
	}
	if !result.Credentials.Gemini {
		result.Warnings = append(result.Warnings,
			envGeminiKey+" not set; classify will fail")
	}
}

// checkDirs verifies configured default directories exist.
func checkDirs(result *doctorResult, settings *envSettings) {
	if settings.InputDir != "" {
		if info, err := os.Stat(settings.InputDir); err != nil || !info.IsDir() {
			result.Errors = append(result.Errors,
				fmt.Sprintf("Input directory not accessible: %s", settings.InputDir))
		}
	}
	if settings.OutputDir != "" {
		if info, err := os.Stat(settings.OutputDir); err != nil || !info.IsDir() {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("Output directory does not exist yet: %s", settings.OutputDir))
		}
	}
}

// checkSystem verifies the temp directory is writable; checkpoints and
// workbook saves need it.
func checkSystem(result *doctorResult) {
	tmpDir := os.TempDir()
	testFile := filepath.Join(tmpDir, "outreach-doctor-test")
	if err := os.WriteFile(testFile, []byte("test"), 0o600); err != nil {
		result.Errors = append(result.Errors,
			fmt.Sprintf("Temp directory not writable: %s", tmpDir))
	} else {
		_ = os.Remove(testFile)
		result.System.TempWritable = true
	}
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "outreach doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Configuration")
	if r.Config.Valid {
		fmt.Fprintf(w, "  [OK] Source: %s\n", r.Config.Source)
	} else {
		fmt.Fprintf(w, "  [ERROR] %s failed to load\n", r.Config.Source)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Credentials")
	printKeyStatus(w, envSmartleadKey, r.Credentials.Smartlead)
	printKeyStatus(w, envGeminiKey, r.Credentials.Gemini)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.InputDir != "" {
		fmt.Fprintf(w, "  [OK] Input dir: %s\n", r.Env.InputDir)
	}
	if r.Env.OutputDir != "" {
		fmt.Fprintf(w, "  [OK] Output dir: %s\n", r.Env.OutputDir)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "System")
	if r.System.TempWritable {
		fmt.Fprintln(w, "  [OK] Temp directory: writable")
	} else {
		fmt.Fprintln(w, "  [ERROR] Temp directory: not writable")
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}
	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}

func printKeyStatus(w io.Writer, name string, present bool) {
	if present {
		fmt.Fprintf(w, "  [OK] %s: set\n", name)
	} else {
		fmt.Fprintf(w, "  [WARN] %s: not set\n", name)
	}
}
