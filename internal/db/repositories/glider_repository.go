package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"

	"flugbuech/tower/internal/constants"
	"flugbuech/tower/internal/models/entities"
)

type GliderRepository struct {
	db *sqlx.DB
}

func NewGliderRepository(db *sqlx.DB) *GliderRepository {
	return &GliderRepository{db}
}

// NamesForUser returns the pilot's gliders as (id, manufacturer, model)
// rows, ordered by id.
func (r *GliderRepository) NamesForUser(ctx context.Context, userID int32) ([]entities.GliderName, error) {
	var names []entities.GliderName
	if err := r.db.SelectContext(ctx, &names, constants.GetGliderNamesByUserId, userID); err != nil {
		return nil, err
	}
	return names, nil
}
