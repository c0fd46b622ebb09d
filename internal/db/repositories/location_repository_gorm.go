package repositories

import (
	"context"
	"math"
	"sort"

	"gorm.io/gorm"

	gormModels "flugbuech/tower/internal/models/gorm"
)

type LocationRepositoryGORM struct {
	db *gorm.DB
}

func NewLocationRepositoryGORM(db *gorm.DB) *LocationRepositoryGORM {
	return &LocationRepositoryGORM{db: db}
}

// NearPoint returns the pilot's locations within maxDistanceMeters of
// the given coordinate, closest first.
func (r *LocationRepositoryGORM) NearPoint(ctx context.Context, userID int32, lat, lng, maxDistanceMeters float64) ([]gormModels.Location, error) {
	var locations []gormModels.Location
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&locations).Error
	if err != nil {
		return nil, err
	}

	type candidate struct {
		loc  gormModels.Location
		dist float64
	}
	var nearby []candidate
	for _, loc := range locations {
		d := haversineMeters(lat, lng, loc.Lat, loc.Lng)
		if d <= maxDistanceMeters {
			nearby = append(nearby, candidate{loc: loc, dist: d})
		}
	}
	sort.Slice(nearby, func(i, j int) bool { return nearby[i].dist < nearby[j].dist })

	result := make([]gormModels.Location, 0, len(nearby))
	for _, c := range nearby {
		result = append(result, c.loc)
	}
	return result, nil
}

const earthRadiusMeters = 6371008.8

func haversineMeters(lat1, lng1, lat2, lng2 float64) float64 {
	rad := math.Pi / 180
	dLat := (lat2 - lat1) * rad
	dLng := (lng2 - lng1) * rad
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*rad)*math.Cos(lat2*rad)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusMeters * math.Asin(math.Sqrt(a))
}
