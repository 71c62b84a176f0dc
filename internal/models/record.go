package models

import "time"

// Record is one persisted collection blob. Each profile owns a flat namespace
// of collection names ("cart", "wishlist", "ratings:v1"), and each name maps
// to a single JSON document written as a whole on every mutation.
type Record struct {
	Profile   string `gorm:"primaryKey;type:varchar(100)"`
	Name      string `gorm:"primaryKey;type:varchar(100)"`
	Data      []byte
	UpdatedAt time.Time
}
