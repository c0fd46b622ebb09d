package entities

import "time"

// Glider is one wing in a pilot's equipment registry.
type Glider struct {
	ID           int32     `db:"id"`
	UserID       int32     `db:"user_id"`
	Manufacturer string    `db:"manufacturer"`
	Model        string    `db:"model"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// GliderName is the projection used to build lookup tables.
type GliderName struct {
	ID           int32  `db:"id"`
	Manufacturer string `db:"manufacturer"`
	Model        string `db:"model"`
}

// DisplayName returns the name a pilot refers to the glider by in
// spreadsheets: "manufacturer model".
func (g GliderName) DisplayName() string {
	return g.Manufacturer + " " + g.Model
}
