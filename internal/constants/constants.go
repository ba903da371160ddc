package constants

const (
	// DefaultSOSMinutes is the initial urge-delay timer length.
	DefaultSOSMinutes = 5
	// DefaultCooldownMin is the smart-insert dedup window in minutes.
	DefaultCooldownMin = 10
	// MaxSOSPhotos caps the support photos attached to one delay flow.
	MaxSOSPhotos = 3

	// DateFormat is the local calendar day key for daily counters.
	DateFormat = "2006-01-02"
	// LocalTimeFormat renders timestamps in CSV exports.
	LocalTimeFormat = "2006-01-02 15:04"

	DefaultConfigDir = "~/.config/urgecare"
	DBFileName       = "urgecare.db"
)

// Todo CSV export labels. The display language of the original application
// is Traditional Chinese; exports keep those headers so spreadsheets opened
// by existing users stay consistent.
const (
	TodoCSVHeaderText    = "內容"
	TodoCSVHeaderDone    = "完成"
	TodoCSVHeaderCreated = "建立時間"
	TodoDoneLabel        = "已完成"
	TodoNotDoneLabel     = "未完成"
)
