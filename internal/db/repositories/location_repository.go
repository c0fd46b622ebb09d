package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"

	"flugbuech/tower/internal/constants"
	"flugbuech/tower/internal/models/entities"
)

type LocationRepository struct {
	db *sqlx.DB
}

func NewLocationRepository(db *sqlx.DB) *LocationRepository {
	return &LocationRepository{db}
}

// NamesForUser returns the pilot's locations as (id, name) rows,
// ordered by id.
func (r *LocationRepository) NamesForUser(ctx context.Context, userID int32) ([]entities.LocationName, error) {
	var names []entities.LocationName
	if err := r.db.SelectContext(ctx, &names, constants.GetLocationNamesByUserId, userID); err != nil {
		return nil, err
	}
	return names, nil
}

// AllForUser returns the pilot's locations with coordinates.
func (r *LocationRepository) AllForUser(ctx context.Context, userID int32) ([]entities.Location, error) {
	var locations []entities.Location
	if err := r.db.SelectContext(ctx, &locations, constants.GetLocationsByUserId, userID); err != nil {
		return nil, err
	}
	return locations, nil
}
