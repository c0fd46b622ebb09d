package gorm

import "time"

// User is the GORM model for a registered pilot.
type User struct {
	ID        int32  `gorm:"primaryKey"`
	Username  string `gorm:"uniqueIndex;not null"`
	Email     string
	IsActive  bool `gorm:"default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (User) TableName() string {
	return "users"
}
