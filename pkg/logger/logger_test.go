package logger

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"", zerolog.InfoLevel},
		{"info", zerolog.InfoLevel},
		{"garbage", zerolog.InfoLevel},
	}
	for _, c := range cases {
		if got := parseLevel(c.in); got != c.want {
			t.Errorf("parseLevel(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestNewSetsConfiguredLevel(t *testing.T) {
	l := New("debug", "json")
	if l.GetLevel() != zerolog.DebugLevel {
		t.Errorf("level = %v, want debug", l.GetLevel())
	}
}

func TestDefaultIsInfoLevel(t *testing.T) {
	l := Default()
	if l.GetLevel() != zerolog.InfoLevel {
		t.Errorf("level = %v, want info", l.GetLevel())
	}
}
