package logger

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestInitAndGlobals(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	defer func() {
		if err := Sync(); err != nil {
			t.Errorf("sync: %v", err)
		}
	}()

	if Get() == nil {
		t.Fatal("global logger is nil after Init")
	}

	// Init is idempotent; a second call must not tear down the global.
	if err := Init(); err != nil {
		t.Fatalf("re-init: %v", err)
	}
	if Get() == nil {
		t.Fatal("global logger is nil after second Init")
	}
}

func TestFieldsAndLevels(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	ctx := context.Background()
	log := Get()
	log.Debug(ctx, "snapshot built", Int("users", 8), Int64("matches", 19))
	log.Info(ctx, "ranking computed", String("scope", "edition"), Duration("took", 3*time.Millisecond))
	log.Warn(ctx, "late revision excluded", Float64("anticipation_hours", -0.5))
	log.Error(ctx, "store unavailable", Error(errors.New("dial failed")), Any("attempt", 1))
}

func TestNamedComponent(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	eng := Named("engine")
	if eng == nil {
		t.Fatal("named logger is nil")
	}
	eng.Info(context.Background(), "replay finished", Int("steps", 19))
}

func TestSetLevelString(t *testing.T) {
	if err := Init(); err != nil {
		t.Fatalf("init: %v", err)
	}

	for _, lvl := range []string{"debug", "info", "warn", "error"} {
		if err := SetLevelString(lvl); err != nil {
			t.Errorf("level %q: %v", lvl, err)
		}
	}
	if err := SetLevelString("shout"); err == nil {
		t.Error("expected an error for an unknown level name")
	}
}
