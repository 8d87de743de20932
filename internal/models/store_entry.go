package models

import "time"

// StoreEntry is one persisted key-value cell in the SQL-backed store.
type StoreEntry struct {
	Key       string    `gorm:"column:entry_key;primaryKey;size:191" json:"key"`
	Value     []byte    `gorm:"not null" json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName pins the table name independent of naming strategy.
func (StoreEntry) TableName() string {
	return "store_entries"
}
