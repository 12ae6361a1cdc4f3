package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestGet_BeforeInitIsNop(t *testing.T) {
	Reset()
	defer Reset()

	l := Get()
	if l.GetLevel() != zerolog.Disabled {
		t.Fatalf("expected disabled logger before Init, got %s", l.GetLevel())
	}
}

func TestInit_WritesJSONWithService(t *testing.T) {
	Reset()
	defer Reset()

	var buf bytes.Buffer
	Init(Options{Level: "debug", Output: &buf, Service: "imagehub-web"})
	l := Component("session")
	l.Info().Msg("hello")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("invalid json line %q: %v", buf.String(), err)
	}
	if line["service"] != "imagehub-web" || line["component"] != "session" || line["message"] != "hello" {
		t.Fatalf("unexpected fields: %+v", line)
	}
}

func TestInit_OnlyFirstCallApplies(t *testing.T) {
	Reset()
	defer Reset()

	var first, second bytes.Buffer
	Init(Options{Output: &first})
	Init(Options{Output: &second})
	Get().Info().Msg("x")

	if first.Len() == 0 || second.Len() != 0 {
		t.Fatalf("expected output only on first writer")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		" warn ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"bogus":   zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}
