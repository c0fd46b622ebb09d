package constants

const (
	GetGliderNamesByUserId = `
		SELECT id, manufacturer, model
		FROM gliders
		WHERE user_id = $1
		ORDER BY id;
	`

	GetLocationNamesByUserId = `
		SELECT id, name
		FROM locations
		WHERE user_id = $1
		ORDER BY id;
	`

	GetLocationsByUserId = `
		SELECT id, user_id, name, country, elevation, lat, lng
		FROM locations
		WHERE user_id = $1
		ORDER BY id;
	`
)
