package models

// DelaySource identifies which flow produced a delay record.
type DelaySource string

const (
	SourceChant  DelaySource = "chant"
	SourcePrayer DelaySource = "prayer"
	SourceSystem DelaySource = "system"
	SourceManual DelaySource = "manual"
)

// DiaryEntry is a single journal entry. Text may be empty when the entry
// carries images only.
type DiaryEntry struct {
	ID        string   `json:"id"`
	Text      string   `json:"text"`
	Images    []string `json:"images,omitempty"` // encoded image payloads, display order
	CreatedAt string   `json:"createdAt"`        // RFC3339
}

type Todo struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Done      bool   `json:"done"`
	CreatedAt string `json:"createdAt"`
}

type WishItem struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Votes     int    `json:"votes"`
	CreatedAt string `json:"createdAt"`
}

// Experience is an experience-wall reflection: text shared after riding
// out an urge.
type Experience struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	CreatedAt string `json:"createdAt"`
}

// SupportItem is a support-wall card: free text, an encoded image, or a
// reference to a platform-managed file. At least one of Text/Image/FilePath
// is set on interactively created items.
type SupportItem struct {
	ID        string `json:"id"`
	Text      string `json:"text,omitempty"`
	Image     string `json:"image,omitempty"`    // base64 data URL
	FilePath  string `json:"filePath,omitempty"` // native file reference
	CreatedAt string `json:"createdAt"`
}

// DelayRecord is one row of the append-only urge/chant/prayer event log.
// OccurredAt is the event time and may differ from CreatedAt.
type DelayRecord struct {
	ID          string      `json:"id"`
	OccurredAt  string      `json:"occurredAt"` // RFC3339, range-query key
	Source      DelaySource `json:"source"`
	Minutes     float64     `json:"minutes"`
	Description string      `json:"description,omitempty"`
	CreatedAt   string      `json:"createdAt"`
}
