package models

// ChantMantra is a named chant whose daily counts live in ChantLog rows.
// Deleting a mantra deletes its logs.
type ChantMantra struct {
	ID        string `json:"id"`
	Name      string `json:"name"` // unique, trimmed
	CreatedAt string `json:"createdAt"`
}

// ChantLog holds one mantra's count for one local calendar day.
// (MantraID, Date) is unique; the "today" counter resets implicitly when the
// local date advances.
type ChantLog struct {
	ID       string `json:"id"`
	MantraID string `json:"mantraId"`
	Date     string `json:"date"` // YYYY-MM-DD, local time
	Count    int    `json:"count"`
}

type Homework struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	CreatedAt string `json:"createdAt"`
}

// HomeworkLog follows the same one-row-per-day accumulator pattern as
// ChantLog.
type HomeworkLog struct {
	ID         string  `json:"id"`
	HomeworkID string  `json:"homeworkId"`
	Date       string  `json:"date"`
	Amount     float64 `json:"amount"`
}

// PomodoroSession is append-only and recorded only on natural completion.
type PomodoroSession struct {
	ID        string `json:"id"`
	Label     string `json:"label,omitempty"`
	StartedAt string `json:"startedAt"`
	EndedAt   string `json:"endedAt"`
	Minutes   int    `json:"minutes"`
}
