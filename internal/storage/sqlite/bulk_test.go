package sqlite

import (
	"errors"
	"testing"

	"github.com/urgecare/urgecare/internal/models"
	"github.com/urgecare/urgecare/internal/storage"
)

func wishTexts(t *testing.T, store *Store) map[string]string {
	t.Helper()
	wishes, err := store.ListWishes()
	if err != nil {
		t.Fatalf("ListWishes() error: %v", err)
	}
	byID := make(map[string]string, len(wishes))
	for _, w := range wishes {
		byID[w.ID] = w.Text
	}
	return byID
}

func TestImportAllMerge(t *testing.T) {
	store := setupTestStore(t)

	a, err := store.AddWish("keep me")
	if err != nil {
		t.Fatalf("AddWish() error: %v", err)
	}
	b, err := store.AddWish("replace me")
	if err != nil {
		t.Fatalf("AddWish() error: %v", err)
	}

	snap := storage.Snapshot{
		Wishes: []models.WishItem{
			{ID: b.ID, Text: "replaced", Votes: 9, CreatedAt: b.CreatedAt},
			{ID: "wish-c", Text: "brand new", CreatedAt: "2025-01-01T00:00:00Z"},
		},
	}
	if err := store.ImportAll(snap, storage.ImportMerge); err != nil {
		t.Fatalf("ImportAll(merge) error: %v", err)
	}

	got := wishTexts(t, store)
	if len(got) != 3 {
		t.Fatalf("got %d wishes after merge, want 3", len(got))
	}
	if got[a.ID] != "keep me" {
		t.Errorf("untouched row changed: %q", got[a.ID])
	}
	if got[b.ID] != "replaced" {
		t.Errorf("matching row not upserted: %q", got[b.ID])
	}
	if got["wish-c"] != "brand new" {
		t.Errorf("new row missing: %q", got["wish-c"])
	}
}

func TestImportAllOverwrite(t *testing.T) {
	store := setupTestStore(t)

	if _, err := store.AddWish("doomed"); err != nil {
		t.Fatalf("AddWish() error: %v", err)
	}
	if _, err := store.AddTodo("also doomed"); err != nil {
		t.Fatalf("AddTodo() error: %v", err)
	}

	snap := storage.Snapshot{
		Wishes: []models.WishItem{
			{ID: "only-survivor", Text: "from backup", CreatedAt: "2025-01-01T00:00:00Z"},
		},
	}
	if err := store.ImportAll(snap, storage.ImportOverwrite); err != nil {
		t.Fatalf("ImportAll(overwrite) error: %v", err)
	}

	got := wishTexts(t, store)
	if len(got) != 1 || got["only-survivor"] != "from backup" {
		t.Errorf("overwrite left %v, want only the backup row", got)
	}

	// Collections absent from the snapshot are cleared too
	todos, err := store.ListTodos()
	if err != nil {
		t.Fatalf("ListTodos() error: %v", err)
	}
	if len(todos) != 0 {
		t.Errorf("overwrite kept %d todos, want 0", len(todos))
	}
}

func TestImportAllAtomic(t *testing.T) {
	store := setupTestStore(t)

	if _, err := store.AddWish("survivor"); err != nil {
		t.Fatalf("AddWish() error: %v", err)
	}

	// A row without an id fails validation after the tables were cleared;
	// the rollback must bring everything back.
	snap := storage.Snapshot{
		Wishes: []models.WishItem{{Text: "no id"}},
	}
	err := store.ImportAll(snap, storage.ImportOverwrite)
	if !errors.Is(err, storage.ErrValidation) {
		t.Fatalf("ImportAll() err = %v, want ErrValidation", err)
	}

	wishes, err := store.ListWishes()
	if err != nil {
		t.Fatalf("ListWishes() error: %v", err)
	}
	if len(wishes) != 1 || wishes[0].Text != "survivor" {
		t.Errorf("failed import changed data: %+v", wishes)
	}
}

func TestImportAllRejectsUnknownMode(t *testing.T) {
	store := setupTestStore(t)

	err := store.ImportAll(storage.Snapshot{}, "sideways")
	if !errors.Is(err, storage.ErrValidation) {
		t.Errorf("unknown mode: err = %v, want ErrValidation", err)
	}
}

func TestExportAllRoundTrip(t *testing.T) {
	store := setupTestStore(t)

	if _, err := store.AddDiaryEntry("entry", nil); err != nil {
		t.Fatalf("AddDiaryEntry() error: %v", err)
	}
	if _, err := store.AddTodo("todo"); err != nil {
		t.Fatalf("AddTodo() error: %v", err)
	}
	if _, err := store.AddDelay(models.SourceChant, 5, "", "delay"); err != nil {
		t.Fatalf("AddDelay() error: %v", err)
	}

	snap, err := store.ExportAll()
	if err != nil {
		t.Fatalf("ExportAll() error: %v", err)
	}

	other := setupTestStore(t)
	if err := other.ImportAll(snap, storage.ImportMerge); err != nil {
		t.Fatalf("ImportAll() error: %v", err)
	}

	entries, _ := other.ListDiaryEntries()
	todos, _ := other.ListTodos()
	delays, _ := other.ListDelaysSince("")
	if len(entries) != 1 || len(todos) != 1 || len(delays) != 1 {
		t.Errorf("round trip lost rows: %d entries, %d todos, %d delays", len(entries), len(todos), len(delays))
	}
}
