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
		{"debug", zerolog.DebugLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"err", zerolog.ErrorLevel},
		{"info", zerolog.InfoLevel},
		{"bogus", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}
	for _, tc := range cases {
		if got := parseLevel(tc.in); got != tc.want {
			t.Fatalf("parseLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestLInitializesOnDemand(t *testing.T) {
	base = zerolog.Logger{}
	l := L()
	if l == nil {
		t.Fatal("L returned nil")
	}
	if l.GetLevel() == zerolog.NoLevel {
		t.Fatal("logger not initialized by L()")
	}
}
