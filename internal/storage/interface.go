package storage

import "github.com/urgecare/urgecare/internal/models"

// Provider is the typed facade over the embedded document store. Mutating
// methods enforce the per-collection invariants (trimming, dedup windows,
// cascades) and publish a change topic after a successful commit.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Diary / journal
	AddDiaryEntry(text string, images []string) (models.DiaryEntry, error)
	// AddDiaryEntrySmart suppresses the insert when an entry with identical
	// text was created within the cooldown window; the existing entry is
	// returned with deduped=true.
	AddDiaryEntrySmart(text string, images []string, cooldownMin int) (entry models.DiaryEntry, deduped bool, err error)
	ListDiaryEntries() ([]models.DiaryEntry, error)
	UpdateDiaryEntry(id, text string) error
	DeleteDiaryEntry(id string) error

	// Todos
	AddTodo(text string) (models.Todo, error)
	AddTodoSmart(text string, cooldownMin int) (todo models.Todo, deduped bool, err error)
	ListTodos() ([]models.Todo, error)
	ToggleTodo(id string) error
	DeleteTodo(id string) error
	ClearTodos() error

	// Wishes
	AddWish(text string) (models.WishItem, error)
	ListWishes() ([]models.WishItem, error)
	UpvoteWish(id string) error
	DeleteWish(id string) error

	// Supports
	AddSupport(text, image, filePath string) (models.SupportItem, error)
	ListSupports(limit int) ([]models.SupportItem, error)
	DeleteSupport(id string) error

	// Experience wall
	AddExperience(text string) (models.Experience, error)
	ListExperiences() ([]models.Experience, error)
	DeleteExperience(id string) error

	// Delay event log (append-only)
	AddDelay(source models.DelaySource, minutes float64, occurredAt, description string) (models.DelayRecord, error)
	AddDelaySmart(source models.DelaySource, minutes float64, description string, cooldownMin int) (rec models.DelayRecord, deduped bool, err error)
	ListDelaysSince(sinceISO string) ([]models.DelayRecord, error)
	TotalMinutesBySource(source models.DelaySource) (float64, error)
	CountBySource(source models.DelaySource) (int, error)

	// Chant mantras and daily counts
	AddMantra(name string) (models.ChantMantra, error)
	ListMantras() ([]models.ChantMantra, error)
	DeleteMantra(id string) error
	IncrementChant(mantraID string, delta int) error
	ChantToday(mantraID string) (int, error)
	ChantTotal(mantraID string) (int, error)
	ClearChantToday(mantraID string) error
	ClearChantTotal(mantraID string) error

	// Homework and daily amounts
	AddHomework(title string) (models.Homework, error)
	ListHomeworks() ([]models.Homework, error)
	DeleteHomework(id string) error
	LogHomework(homeworkID string, amount float64) error
	HomeworkToday(homeworkID string) (float64, error)
	HomeworkTotal(homeworkID string) (float64, error)

	// Pomodoro sessions (append-only)
	AddPomodoroSession(startedAt, endedAt string, minutes int, label string) (models.PomodoroSession, error)
	ListRecentPomodoroSessions(limit int) ([]models.PomodoroSession, error)

	// Bulk backup paths (bypass per-collection invariants, atomic commit)
	ExportAll() (Snapshot, error)
	ImportAll(snap Snapshot, mode ImportMode) error

	// Utils
	GetConfigPath() string
}
