package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"debug":   zerolog.DebugLevel,
		"warn":    zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		" WARN ":  zerolog.WarnLevel,
		"":        zerolog.InfoLevel,
		"bogus":   zerolog.InfoLevel,
	}
	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

// Init is a sync.Once singleton, so a single test exercises it end to end:
// JSON output, timestamping, and level filtering.
func TestInit(t *testing.T) {
	var buf bytes.Buffer
	log := Init(Options{Level: "warn", Output: &buf})

	log.Info().Msg("filtered out")
	log.Warn().Str("component", "catalog").Msg("kept")

	out := buf.String()
	if strings.Contains(out, "filtered out") {
		t.Fatalf("info record emitted below the configured level: %s", out)
	}
	if !strings.Contains(out, `"message":"kept"`) || !strings.Contains(out, `"component":"catalog"`) {
		t.Fatalf("expected structured warn record, got: %s", out)
	}
	if !strings.Contains(out, `"time":`) {
		t.Fatalf("expected timestamp field, got: %s", out)
	}
}
