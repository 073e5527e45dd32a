package logging

import (
	"bytes"
	"io"
	"strings"
	"testing"
)

func TestComponent_BeforeInitDiscards(t *testing.T) {
	log := Component("quiet")
	// Must not panic and must not write anywhere.
	log.Info().Msg("dropped")
}

func TestInitAndComponent(t *testing.T) {
	var buf bytes.Buffer
	Init(&buf, false)
	defer Init(io.Discard, false)

	log := Component("smartlead")
	log.Info().Str("campaign", "42").Msg("campaign created")

	out := buf.String()
	if !strings.Contains(out, "smartlead") {
		t.Errorf("output %q missing component tag", out)
	}
	if !strings.Contains(out, "campaign created") {
		t.Errorf("output %q missing message", out)
	}
}

func TestInit_VerboseEnablesDebug(t *testing.T) {
	var buf bytes.Buffer

	Init(&buf, false)
	log := Component("x")
	log.Debug().Msg("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug event written at info level: %q", buf.String())
	}

	Init(&buf, true)
	log = Component("x")
	log.Debug().Msg("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("debug event missing at debug level: %q", buf.String())
	}
	Init(io.Discard, false)
}
