package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	outreach "github.com/alnah/go-outreach"
)

// testEnv returns an Environment with buffered output and no real
// environment variables.
func testEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	env := &Environment{
		Now:    func() time.Time { return time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC) },
		Stdout: stdout,
		Stderr: stderr,
		Getenv: fakeGetenv(nil),
	}
	return env, stdout, stderr
}

const templateCSV = `seq_number,seq_delay_details,variant_label,subject,email_body,bold_texts,italic_texts,link_texts
1,0,A,Quick question for ` + "`brand`" + `,"Hi ` + "`first name`" + `,

Does **returns** cost you time?",returns,,
1,0,B,Hello from ` + "`brand`" + `,Second variant body,,,
2,3,A,Following up,Just bumping this,,,
`

func writeTemplate(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(templateCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunCompileCmd_SingleFile(t *testing.T) {
	dir := t.TempDir()
	input := writeTemplate(t, dir, "cold.csv")
	env, stdout, _ := testEnv()

	if err := runCompileCmd(context.Background(), []string{input}, env); err != nil {
		t.Fatalf("runCompileCmd() error = %v", err)
	}

	out := filepath.Join(dir, "cold.json")
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("payload not written: %v", err)
	}

	var steps []outreach.SequenceStep
	if err := json.Unmarshal(data, &steps); err != nil {
		t.Fatalf("payload does not decode: %v", err)
	}
	if len(steps) != 2 {
		t.Fatalf("payload has %d steps, want 2", len(steps))
	}
	if steps[0].Number != 1 || len(steps[0].Variants) != 2 {
		t.Errorf("step 1 = %+v, want 2 variants", steps[0])
	}
	if steps[1].Delay.InDays != 3 {
		t.Errorf("step 2 delay = %d, want 3", steps[1].Delay.InDays)
	}
	if got := steps[0].Variants[0].Subject; !strings.Contains(got, "{{merchant_name}}") {
		t.Errorf("subject %q missing merge field substitution", got)
	}
	// Tags must land on disk literally, not as \u003c escapes.
	if raw := string(data); !strings.Contains(raw, "<strong>returns</strong>") || strings.Contains(raw, `\u003c`) {
		t.Errorf("payload file escapes HTML: %q", raw)
	}
	if !strings.Contains(stdout.String(), "Created "+out) {
		t.Errorf("stdout = %q, missing creation line", stdout.String())
	}
}

func TestRunCompileCmd_OutputDir(t *testing.T) {
	dir := t.TempDir()
	outDir := filepath.Join(dir, "payloads")
	input := writeTemplate(t, dir, "cold.csv")
	env, _, _ := testEnv()

	if err := runCompileCmd(context.Background(), []string{input, "-o", outDir}, env); err != nil {
		t.Fatalf("runCompileCmd() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(outDir, "cold.json")); err != nil {
		t.Errorf("payload not written in output dir: %v", err)
	}
}

func TestRunCompileCmd_Merge(t *testing.T) {
	dir := t.TempDir()
	a := writeTemplate(t, dir, "a.csv")
	b := writeTemplate(t, dir, "b.csv")
	merged := filepath.Join(dir, "all.json")
	env, _, _ := testEnv()

	err := runCompileCmd(context.Background(), []string{a, b, "--merge", "-o", merged}, env)
	if err != nil {
		t.Fatalf("runCompileCmd() error = %v", err)
	}

	data, err := os.ReadFile(merged)
	if err != nil {
		t.Fatalf("merged payload not written: %v", err)
	}
	var steps []outreach.SequenceStep
	if err := json.Unmarshal(data, &steps); err != nil {
		t.Fatal(err)
	}
	// Both files contribute their variants to the same steps.
	if len(steps) != 2 || len(steps[0].Variants) != 4 {
		t.Errorf("merged payload = %d steps, step 1 has %d variants; want 2 steps with 4 variants",
			len(steps), len(steps[0].Variants))
	}
}

func TestRunCompileCmd_NoInput(t *testing.T) {
	env, _, _ := testEnv()
	err := runCompileCmd(context.Background(), nil, env)
	if exitCodeFor(err) != ExitUsage {
		t.Fatalf("runCompileCmd() error = %v, want a usage error", err)
	}
}

func TestRunCompileCmd_MalformedStep(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.csv")
	csv := "seq_number,subject,email_body\nseven,Hi,Body\n"
	if err := os.WriteFile(path, []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}
	env, _, stderr := testEnv()

	err := runCompileCmd(context.Background(), []string{path}, env)
	if err == nil {
		t.Fatal("runCompileCmd() succeeded on a malformed step number")
	}
	if !strings.Contains(stderr.String(), "FAILED") {
		t.Errorf("stderr = %q, missing failure line", stderr.String())
	}
}

func TestPayloadPath(t *testing.T) {
	tests := []struct {
		input, outputDir, want string
	}{
		{"tmpl/cold.csv", "", "tmpl/cold.json"},
		{"tmpl/cold.xlsx", "out", filepath.Join("out", "cold.json")},
	}
	for _, tt := range tests {
		if got := payloadPath(tt.input, tt.outputDir); got != tt.want {
			t.Errorf("payloadPath(%q, %q) = %q, want %q", tt.input, tt.outputDir, got, tt.want)
		}
	}
}

func TestResolveWorkers(t *testing.T) {
	tests := []struct {
		name                       string
		flag, env, inputs, wantMax int
	}{
		{"flag wins", 3, 8, 10, 3},
		{"env fallback", 0, 2, 10, 2},
		{"clamped to inputs", 16, 0, 2, 2},
		{"minimum one", 0, 0, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveWorkers(tt.flag, tt.env, tt.inputs)
			if got != tt.wantMax {
				t.Errorf("resolveWorkers(%d, %d, %d) = %d, want %d",
					tt.flag, tt.env, tt.inputs, got, tt.wantMax)
			}
		})
	}
}
