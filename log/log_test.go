package log_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/michaelbabenko/gotick/log"
)

func TestDefault(t *testing.T) {
	if got := log.Default(); got != log.Def {
		t.Fatalf("log.Default() = %p, want log.Def %p", got, log.Def)
	}

	log.SetDefault(log.Noop)
	defer log.SetDefault(nil)

	if got := log.Default(); got != log.Noop {
		t.Fatalf("log.Default() after override = %p, want log.Noop %p", got, log.Noop)
	}

	log.SetDefault(nil)
	if got := log.Default(); got != log.Def {
		t.Fatalf("log.Default() after reset = %p, want log.Def %p", got, log.Def)
	}
}

func TestNoop(t *testing.T) {
	if log.Noop.Enabled(context.Background(), slog.LevelError) {
		t.Fatal("noop logger reports enabled")
	}
}

func TestFmtValue(t *testing.T) {
	type payload struct{ A int }

	if got := log.FmtValue(payload{1}, false).LogValue().String(); got != "{A:1}" {
		t.Fatalf("FmtValue(v, false) = %q, want %q", got, "{A:1}")
	}
	if got := log.FmtValue(payload{1}, true).LogValue().String(); got == "{A:1}" {
		t.Fatalf("FmtValue(v, true) = %q, want go-syntax formatting", got)
	}
}
