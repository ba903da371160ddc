package sqlite

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/urgecare/urgecare/internal/storage"
)

func TestAddPomodoroSession(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.AddPomodoroSession("", "", 25, "reading")
	if !errors.Is(err, storage.ErrValidation) {
		t.Errorf("session without times: err = %v, want ErrValidation", err)
	}

	started := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	session, err := store.AddPomodoroSession(
		started.Format(time.RFC3339),
		started.Add(25*time.Minute).Format(time.RFC3339),
		25, "reading")
	if err != nil {
		t.Fatalf("AddPomodoroSession() error: %v", err)
	}
	if session.ID == "" {
		t.Error("session has no id")
	}
}

func TestListRecentPomodoroSessions(t *testing.T) {
	store := setupTestStore(t)

	base := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		started := base.Add(time.Duration(i) * time.Hour)
		_, err := store.AddPomodoroSession(
			started.Format(time.RFC3339),
			started.Add(25*time.Minute).Format(time.RFC3339),
			25, fmt.Sprintf("session %d", i))
		if err != nil {
			t.Fatalf("AddPomodoroSession() error: %v", err)
		}
	}

	sessions, err := store.ListRecentPomodoroSessions(3)
	if err != nil {
		t.Fatalf("ListRecentPomodoroSessions() error: %v", err)
	}
	if len(sessions) != 3 {
		t.Fatalf("got %d sessions, want 3", len(sessions))
	}
	if sessions[0].Label != "session 4" {
		t.Errorf("first session = %q, want the most recent", sessions[0].Label)
	}
}
