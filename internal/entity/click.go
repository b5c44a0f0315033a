package entity

import (
	"database/sql"
	"time"
)

// ClickEvent is append-only.
type ClickEvent struct {
	ID        int64  `gorm:"primaryKey;autoIncrement:false"`
	AirdropID string `gorm:"index"`
	IPAddress sql.NullString
	Timestamp time.Time
}

func (ClickEvent) TableName() string {
	return "clicks"
}
