package storage

import "github.com/urgecare/urgecare/internal/models"

// ImportMode selects how a restore treats existing rows.
type ImportMode string

const (
	// ImportOverwrite clears each listed collection before inserting.
	ImportOverwrite ImportMode = "overwrite"
	// ImportMerge upserts by id and keeps rows absent from the import.
	ImportMerge ImportMode = "merge"
)

// Snapshot is the bulk view of every user-data collection, used by
// backup export/import. Bulk paths bypass per-collection invariants but
// still commit atomically.
type Snapshot struct {
	Journal  []models.DiaryEntry  `json:"journal"`
	Wishes   []models.WishItem    `json:"wishes"`
	Supports []models.SupportItem `json:"supports"`
	Todos    []models.Todo        `json:"todos"`
	Delays   []models.DelayRecord `json:"delays"`
}
