package sqlite

import (
	"errors"
	"testing"
	"time"

	"github.com/urgecare/urgecare/internal/storage"
)

func TestHomeworkProgress(t *testing.T) {
	store := setupTestStore(t)

	hw, err := store.AddHomework("daily reading")
	if err != nil {
		t.Fatalf("AddHomework() error: %v", err)
	}

	if err := store.LogHomework(hw.ID, 1.5); err != nil {
		t.Fatalf("LogHomework() error: %v", err)
	}
	if err := store.LogHomework(hw.ID, 2); err != nil {
		t.Fatalf("LogHomework() error: %v", err)
	}

	today, err := store.HomeworkToday(hw.ID)
	if err != nil {
		t.Fatalf("HomeworkToday() error: %v", err)
	}
	if today != 3.5 {
		t.Errorf("today = %g, want 3.5", today)
	}
}

func TestLogHomeworkRejectsNonPositive(t *testing.T) {
	store := setupTestStore(t)

	hw, err := store.AddHomework("daily reading")
	if err != nil {
		t.Fatalf("AddHomework() error: %v", err)
	}
	if err := store.LogHomework(hw.ID, 2); err != nil {
		t.Fatalf("LogHomework() error: %v", err)
	}

	for _, amount := range []float64{0, -1.5} {
		err := store.LogHomework(hw.ID, amount)
		if !errors.Is(err, storage.ErrValidation) {
			t.Errorf("LogHomework(%g): err = %v, want ErrValidation", amount, err)
		}
	}

	today, err := store.HomeworkToday(hw.ID)
	if err != nil {
		t.Fatalf("HomeworkToday() error: %v", err)
	}
	if today != 2 {
		t.Errorf("today = %g, want 2", today)
	}
}

func TestHomeworkDailyRollover(t *testing.T) {
	store := setupTestStore(t)

	day1 := time.Date(2025, 6, 1, 22, 0, 0, 0, time.Local)
	now := day1
	store.SetClock(func() time.Time { return now })

	hw, _ := store.AddHomework("rollover")
	if err := store.LogHomework(hw.ID, 4); err != nil {
		t.Fatalf("LogHomework() error: %v", err)
	}

	now = day1.AddDate(0, 0, 1)
	if err := store.LogHomework(hw.ID, 1); err != nil {
		t.Fatalf("LogHomework() next day error: %v", err)
	}

	today, _ := store.HomeworkToday(hw.ID)
	if today != 1 {
		t.Errorf("today after rollover = %g, want 1", today)
	}
	total, _ := store.HomeworkTotal(hw.ID)
	if total != 5 {
		t.Errorf("total = %g, want 5", total)
	}
}

func TestDeleteHomeworkCascades(t *testing.T) {
	store := setupTestStore(t)

	hw, _ := store.AddHomework("doomed")
	if err := store.LogHomework(hw.ID, 2); err != nil {
		t.Fatalf("LogHomework() error: %v", err)
	}

	if err := store.DeleteHomework(hw.ID); err != nil {
		t.Fatalf("DeleteHomework() error: %v", err)
	}

	var logs int
	if err := store.db.QueryRow(
		"SELECT COUNT(*) FROM homework_logs WHERE homework_id = ?", hw.ID).Scan(&logs); err != nil {
		t.Fatalf("count query error: %v", err)
	}
	if logs != 0 {
		t.Errorf("%d homework logs survived the cascade", logs)
	}
}
