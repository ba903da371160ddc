package sqlite

import (
	"testing"
	"time"

	"github.com/urgecare/urgecare/internal/models"
)

func TestAddDelay(t *testing.T) {
	t.Run("defaults occurredAt to now", func(t *testing.T) {
		store := setupTestStore(t)

		fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		store.SetClock(func() time.Time { return fixed })

		rec, err := store.AddDelay(models.SourceManual, 5, "", "waited it out")
		if err != nil {
			t.Fatalf("AddDelay() error: %v", err)
		}
		if rec.OccurredAt != fixed.Format(time.RFC3339) {
			t.Errorf("OccurredAt = %s, want clock time", rec.OccurredAt)
		}
	})

	t.Run("clamps negative minutes", func(t *testing.T) {
		store := setupTestStore(t)

		rec, err := store.AddDelay(models.SourceChant, -3, "", "")
		if err != nil {
			t.Fatalf("AddDelay() error: %v", err)
		}
		if rec.Minutes != 0 {
			t.Errorf("Minutes = %g, want 0", rec.Minutes)
		}
	})

	t.Run("keeps caller-supplied occurredAt", func(t *testing.T) {
		store := setupTestStore(t)

		past := "2025-01-01T08:00:00Z"
		rec, err := store.AddDelay(models.SourcePrayer, 10, past, "backfill")
		if err != nil {
			t.Fatalf("AddDelay() error: %v", err)
		}
		if rec.OccurredAt != past {
			t.Errorf("OccurredAt = %s, want %s", rec.OccurredAt, past)
		}
	})
}

func TestAddDelaySmart(t *testing.T) {
	store := setupTestStore(t)

	first, deduped, err := store.AddDelaySmart(models.SourceManual, 5, "SOS timer", 10)
	if err != nil {
		t.Fatalf("first add error: %v", err)
	}
	if deduped {
		t.Fatal("first add reported deduped")
	}

	// Same source+description inside the window merges
	second, deduped, err := store.AddDelaySmart(models.SourceManual, 5, "SOS timer", 10)
	if err != nil {
		t.Fatalf("second add error: %v", err)
	}
	if !deduped || second.ID != first.ID {
		t.Errorf("duplicate completion not absorbed: deduped=%v id=%s want %s", deduped, second.ID, first.ID)
	}

	// Different source with the same description does not merge
	_, deduped, err = store.AddDelaySmart(models.SourceChant, 5, "SOS timer", 10)
	if err != nil {
		t.Fatalf("cross-source add error: %v", err)
	}
	if deduped {
		t.Error("different source was deduped")
	}
}

func TestDelayAggregates(t *testing.T) {
	store := setupTestStore(t)

	for _, d := range []struct {
		source  models.DelaySource
		minutes float64
	}{
		{models.SourceChant, 5},
		{models.SourceChant, 2.5},
		{models.SourceManual, 10},
	} {
		if _, err := store.AddDelay(d.source, d.minutes, "", ""); err != nil {
			t.Fatalf("AddDelay() error: %v", err)
		}
	}

	total, err := store.TotalMinutesBySource(models.SourceChant)
	if err != nil {
		t.Fatalf("TotalMinutesBySource() error: %v", err)
	}
	if total != 7.5 {
		t.Errorf("chant total = %g, want 7.5", total)
	}

	count, err := store.CountBySource(models.SourceChant)
	if err != nil {
		t.Fatalf("CountBySource() error: %v", err)
	}
	if count != 2 {
		t.Errorf("chant count = %d, want 2", count)
	}

	count, err = store.CountBySource(models.SourcePrayer)
	if err != nil {
		t.Fatalf("CountBySource() error: %v", err)
	}
	if count != 0 {
		t.Errorf("prayer count = %d, want 0", count)
	}
}

func TestListDelaysSince(t *testing.T) {
	store := setupTestStore(t)

	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		at := base.AddDate(0, 0, i).Format(time.RFC3339)
		if _, err := store.AddDelay(models.SourceManual, 1, at, ""); err != nil {
			t.Fatalf("AddDelay() error: %v", err)
		}
	}

	since := base.AddDate(0, 0, 1).Format(time.RFC3339)
	records, err := store.ListDelaysSince(since)
	if err != nil {
		t.Fatalf("ListDelaysSince() error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].OccurredAt > records[1].OccurredAt {
		t.Error("records not in ascending occurredAt order")
	}
}
