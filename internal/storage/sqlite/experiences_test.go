package sqlite

import (
	"testing"
	"time"

	"github.com/urgecare/urgecare/internal/storage"
)

func TestAddExperience(t *testing.T) {
	store := setupTestStore(t)

	exp, err := store.AddExperience("  made it through tonight  ")
	if err != nil {
		t.Fatalf("AddExperience() error: %v", err)
	}
	if exp.Text != "made it through tonight" {
		t.Errorf("Text = %q, want trimmed", exp.Text)
	}

	empty, err := store.AddExperience("   ")
	if err != nil {
		t.Fatalf("AddExperience(blank) error: %v", err)
	}
	if empty.ID != "" {
		t.Error("blank text should be a no-op, got a stored row")
	}

	items, err := store.ListExperiences()
	if err != nil {
		t.Fatalf("ListExperiences() error: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("got %d experiences, want 1", len(items))
	}
}

func TestListExperiencesNewestFirst(t *testing.T) {
	store := setupTestStore(t)

	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	for i, text := range []string{"first", "second", "third"} {
		tick := base.Add(time.Duration(i) * time.Minute)
		store.SetClock(func() time.Time { return tick })
		if _, err := store.AddExperience(text); err != nil {
			t.Fatalf("AddExperience(%q) error: %v", text, err)
		}
	}

	items, err := store.ListExperiences()
	if err != nil {
		t.Fatalf("ListExperiences() error: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("got %d experiences, want 3", len(items))
	}
	if items[0].Text != "third" || items[2].Text != "first" {
		t.Errorf("order = [%s %s %s], want newest first",
			items[0].Text, items[1].Text, items[2].Text)
	}
}

func TestDeleteExperience(t *testing.T) {
	store := setupTestStore(t)
	notifier := &recordingNotifier{}
	store.SetNotifier(notifier)

	exp, err := store.AddExperience("keep going")
	if err != nil {
		t.Fatalf("AddExperience() error: %v", err)
	}

	if err := store.DeleteExperience(exp.ID); err != nil {
		t.Fatalf("DeleteExperience() error: %v", err)
	}
	items, err := store.ListExperiences()
	if err != nil {
		t.Fatalf("ListExperiences() error: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("got %d experiences after delete, want 0", len(items))
	}

	// Deleting an absent id is a no-op and must not re-publish
	before := notifier.count(storage.TopicExperiences)
	if err := store.DeleteExperience(exp.ID); err != nil {
		t.Fatalf("repeat DeleteExperience() error: %v", err)
	}
	if got := notifier.count(storage.TopicExperiences); got != before {
		t.Errorf("no-op delete published, count %d -> %d", before, got)
	}
}
