package sqlite

import (
	"errors"
	"testing"
	"time"

	"github.com/urgecare/urgecare/internal/storage"
)

func TestAddDiaryEntry(t *testing.T) {
	t.Run("trims text", func(t *testing.T) {
		store := setupTestStore(t)

		entry, err := store.AddDiaryEntry("  hello  ", nil)
		if err != nil {
			t.Fatalf("AddDiaryEntry() error: %v", err)
		}
		if entry.Text != "hello" {
			t.Errorf("Text = %q, want %q", entry.Text, "hello")
		}
		if entry.ID == "" {
			t.Error("entry has no id")
		}
	})

	t.Run("empty input is a no-op", func(t *testing.T) {
		store := setupTestStore(t)

		entry, err := store.AddDiaryEntry("   ", nil)
		if err != nil {
			t.Fatalf("AddDiaryEntry() error: %v", err)
		}
		if entry.ID != "" {
			t.Errorf("empty add created entry %s, want no-op", entry.ID)
		}

		entries, err := store.ListDiaryEntries()
		if err != nil {
			t.Fatalf("ListDiaryEntries() error: %v", err)
		}
		if len(entries) != 0 {
			t.Errorf("got %d entries, want 0", len(entries))
		}
	})

	t.Run("images only is allowed", func(t *testing.T) {
		store := setupTestStore(t)

		entry, err := store.AddDiaryEntry("", []string{"data:image/*;base64,aGk="})
		if err != nil {
			t.Fatalf("AddDiaryEntry() error: %v", err)
		}
		if entry.ID == "" {
			t.Fatal("image-only add was dropped")
		}

		entries, err := store.ListDiaryEntries()
		if err != nil {
			t.Fatalf("ListDiaryEntries() error: %v", err)
		}
		if len(entries) != 1 || len(entries[0].Images) != 1 {
			t.Errorf("stored entry lost its images: %+v", entries)
		}
	})
}

func TestAddDiaryEntrySmart(t *testing.T) {
	t.Run("duplicate within cooldown returns existing", func(t *testing.T) {
		store := setupTestStore(t)

		first, deduped, err := store.AddDiaryEntrySmart("same thought", nil, 10)
		if err != nil {
			t.Fatalf("first add error: %v", err)
		}
		if deduped {
			t.Fatal("first add reported deduped")
		}

		second, deduped, err := store.AddDiaryEntrySmart("same thought", nil, 10)
		if err != nil {
			t.Fatalf("second add error: %v", err)
		}
		if !deduped {
			t.Error("second add within cooldown not deduped")
		}
		if second.ID != first.ID {
			t.Errorf("deduped add returned %s, want existing %s", second.ID, first.ID)
		}

		entries, err := store.ListDiaryEntries()
		if err != nil {
			t.Fatalf("ListDiaryEntries() error: %v", err)
		}
		if len(entries) != 1 {
			t.Errorf("got %d entries, want 1", len(entries))
		}
	})

	t.Run("different text is not deduped", func(t *testing.T) {
		store := setupTestStore(t)

		if _, _, err := store.AddDiaryEntrySmart("one", nil, 10); err != nil {
			t.Fatalf("add error: %v", err)
		}
		_, deduped, err := store.AddDiaryEntrySmart("two", nil, 10)
		if err != nil {
			t.Fatalf("add error: %v", err)
		}
		if deduped {
			t.Error("different text reported deduped")
		}
	})

	t.Run("insert allowed after cooldown expires", func(t *testing.T) {
		store := setupTestStore(t)

		base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		now := base
		store.SetClock(func() time.Time { return now })

		first, _, err := store.AddDiaryEntrySmart("recurring", nil, 10)
		if err != nil {
			t.Fatalf("first add error: %v", err)
		}

		now = base.Add(11 * time.Minute)
		second, deduped, err := store.AddDiaryEntrySmart("recurring", nil, 10)
		if err != nil {
			t.Fatalf("second add error: %v", err)
		}
		if deduped {
			t.Error("add after cooldown was deduped")
		}
		if second.ID == first.ID {
			t.Error("add after cooldown reused the old entry")
		}
	})
}

func TestUpdateDiaryEntry(t *testing.T) {
	store := setupTestStore(t)

	entry, err := store.AddDiaryEntry("before", nil)
	if err != nil {
		t.Fatalf("AddDiaryEntry() error: %v", err)
	}

	if err := store.UpdateDiaryEntry(entry.ID, "after"); err != nil {
		t.Fatalf("UpdateDiaryEntry() error: %v", err)
	}

	entries, err := store.ListDiaryEntries()
	if err != nil {
		t.Fatalf("ListDiaryEntries() error: %v", err)
	}
	if entries[0].Text != "after" {
		t.Errorf("Text = %q, want %q", entries[0].Text, "after")
	}

	err = store.UpdateDiaryEntry("no-such-id", "text")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("update of missing entry: err = %v, want ErrNotFound", err)
	}
}

func TestDeleteDiaryEntry(t *testing.T) {
	store := setupTestStore(t)
	notifier := &recordingNotifier{}
	store.SetNotifier(notifier)

	entry, err := store.AddDiaryEntry("doomed", nil)
	if err != nil {
		t.Fatalf("AddDiaryEntry() error: %v", err)
	}

	if err := store.DeleteDiaryEntry(entry.ID); err != nil {
		t.Fatalf("DeleteDiaryEntry() error: %v", err)
	}

	// Deleting an absent id is a no-op and publishes nothing
	published := notifier.count(storage.TopicJournal)
	if err := store.DeleteDiaryEntry(entry.ID); err != nil {
		t.Errorf("repeat delete error: %v, want nil", err)
	}
	if got := notifier.count(storage.TopicJournal); got != published {
		t.Errorf("repeat delete published a change notification")
	}
}

func TestListDiaryEntriesOrder(t *testing.T) {
	store := setupTestStore(t)

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	now := base
	store.SetClock(func() time.Time { return now })

	for i, text := range []string{"oldest", "middle", "newest"} {
		now = base.Add(time.Duration(i) * time.Hour)
		if _, err := store.AddDiaryEntry(text, nil); err != nil {
			t.Fatalf("AddDiaryEntry(%q) error: %v", text, err)
		}
	}

	entries, err := store.ListDiaryEntries()
	if err != nil {
		t.Fatalf("ListDiaryEntries() error: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	if entries[0].Text != "newest" || entries[2].Text != "oldest" {
		t.Errorf("entries not newest-first: %q, %q, %q", entries[0].Text, entries[1].Text, entries[2].Text)
	}
}
