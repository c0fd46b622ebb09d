package gorm

// Location is the GORM model for a launch/landing site.
type Location struct {
	ID        int32 `gorm:"primaryKey"`
	UserID    int32 `gorm:"index;not null"`
	Name      string
	Country   string
	Elevation int32
	Lat       float64
	Lng       float64
}

func (Location) TableName() string {
	return "locations"
}
