package ledger

import "time"

// Entry is one persisted key-value pair: a handful of well-known keys
// holding opaque text values.
type Entry struct {
	Key       string    `gorm:"type:varchar(64);primaryKey"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (Entry) TableName() string {
	return "ledger_entries"
}

// Stable key names, kept for backward compatibility with state exported
// from earlier deployments.
const (
	keyHistory    = "thumbnailHistory"
	keyCredits    = "thumbnailCredits"
	keyAPIKey     = "userApiKey"
	keyImageToken = "userImageToken"
)
