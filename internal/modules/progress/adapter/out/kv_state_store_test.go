package out

import (
	"context"
	"testing"

	"focusflow/internal/modules/progress/domain"
	"focusflow/internal/platform/kvstore"
)

func TestKVStateStoreRoundTrip(t *testing.T) {
	t.Parallel()
	store := NewKVStateStore(kvstore.NewFileStore(t.TempDir()))
	ctx := context.Background()

	state := domain.DailyState{Streak: 7, YesterdayMinutes: 82.5, LastResetDate: "15/03/24", ResetTime: "06:30"}
	if err := store.Save(ctx, state); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded != state {
		t.Fatalf("round trip drift:\n  in  %+v\n  out %+v", state, loaded)
	}
}

func TestKVStateStoreAbsentYieldsDefaults(t *testing.T) {
	t.Parallel()
	store := NewKVStateStore(kvstore.NewFileStore(t.TempDir()))

	loaded, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded != domain.DefaultDailyState() {
		t.Fatalf("expected defaults, got %+v", loaded)
	}
	if loaded.ResetTime != "00:00" || loaded.LastResetDate != "" {
		t.Fatalf("unexpected defaults: %+v", loaded)
	}
}

func TestKVStateStoreCorruptFieldsDegradeIndividually(t *testing.T) {
	t.Parallel()
	kv := kvstore.NewFileStore(t.TempDir())
	seed := map[string]string{
		"streak":        "not a number",
		"yesterdayMins": "47.5",
		"lastResetDate": "2024-03-15", // wrong layout
		"resetTime":     "25:99",
	}
	for k, v := range seed {
		if err := kv.Set(k, v); err != nil {
			t.Fatalf("seed %s: %v", k, err)
		}
	}
	store := NewKVStateStore(kv)

	loaded, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Streak != 0 {
		t.Fatalf("corrupt streak should default to 0, got %d", loaded.Streak)
	}
	if loaded.YesterdayMinutes != 47.5 {
		t.Fatalf("valid field lost alongside corrupt ones: %+v", loaded)
	}
	if loaded.LastResetDate != "" {
		t.Fatalf("corrupt date should default to empty, got %q", loaded.LastResetDate)
	}
	if loaded.ResetTime != domain.DefaultResetTime {
		t.Fatalf("corrupt reset time should default, got %q", loaded.ResetTime)
	}
}

func TestKVStateStoreUnpaddedResetTimeDefaults(t *testing.T) {
	t.Parallel()
	kv := kvstore.NewFileStore(t.TempDir())
	// A hand-edited "7:00" parses but sorts after every padded clock string,
	// which would stop the auto reset from ever firing.
	if err := kv.Set("resetTime", "7:00"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	store := NewKVStateStore(kv)

	loaded, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.ResetTime != domain.DefaultResetTime {
		t.Fatalf("unpadded reset time should default, got %q", loaded.ResetTime)
	}
}
