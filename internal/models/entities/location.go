package entities

// Location is a launch or landing site in a pilot's registry.
type Location struct {
	ID        int32   `db:"id"`
	UserID    int32   `db:"user_id"`
	Name      string  `db:"name"`
	Country   string  `db:"country"`
	Elevation int32   `db:"elevation"`
	Lat       float64 `db:"lat"`
	Lng       float64 `db:"lng"`
}

// LocationName is the projection used to build lookup tables.
type LocationName struct {
	ID   int32  `db:"id"`
	Name string `db:"name"`
}
