package entities

import "time"

// ImageBlob backs the database image store.
type ImageBlob struct {
	ObjectKey   string `gorm:"primaryKey;size:255"`
	ContentType string `gorm:"size:50"`
	Data        []byte `gorm:"not null"`
	CreatedAt   time.Time
}
