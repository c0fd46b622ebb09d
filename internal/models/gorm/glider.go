package gorm

import "time"

// Glider is the GORM model for a pilot's wing.
type Glider struct {
	ID           int32 `gorm:"primaryKey"`
	UserID       int32 `gorm:"index;not null"`
	Manufacturer string
	Model        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Glider) TableName() string {
	return "gliders"
}
