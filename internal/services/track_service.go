package services

import (
	"bytes"
	"context"

	"flugbuech/tower/internal/igc"
	"flugbuech/tower/internal/logging"
	"flugbuech/tower/internal/metrics"
	gormModels "flugbuech/tower/internal/models/gorm"
)

// Locations further away than this are not considered a match for a
// launch or landing fix.
const maxLocationDistanceMeters = 1000.0

// LocationsNearProvider finds a pilot's stored locations around a
// coordinate, closest first.
type LocationsNearProvider interface {
	NearPoint(ctx context.Context, userID int32, lat, lng, maxDistanceMeters float64) ([]gormModels.Location, error)
}

// TrackService parses uploaded IGC files and matches launch/landing
// fixes against the pilot's stored locations.
type TrackService struct {
	locations LocationsNearProvider
	metrics   *metrics.MetricsRegistry
}

func NewTrackService(locations LocationsNearProvider, metricsReg *metrics.MetricsRegistry) *TrackService {
	return &TrackService{
		locations: locations,
		metrics:   metricsReg,
	}
}

// ProcessIgc extracts flight info from raw IGC bytes. Parse failures
// are returned as an error for the handler to map into the error
// variant of the response; location matching failures only log.
func (s *TrackService) ProcessIgc(ctx context.Context, pilotID int32, data []byte) (*igc.FlightInfo, error) {
	info, err := igc.Parse(bytes.NewReader(data))
	if err != nil {
		s.countParse("error")
		return nil, err
	}

	s.matchLocation(ctx, pilotID, info.Launch)
	s.matchLocation(ctx, pilotID, info.Landing)

	s.countParse("success")
	return info, nil
}

func (s *TrackService) matchLocation(ctx context.Context, pilotID int32, fix *igc.LaunchLandingInfo) {
	if fix == nil || s.locations == nil {
		return
	}
	nearby, err := s.locations.NearPoint(ctx, pilotID, fix.Pos.Lat, fix.Pos.Lng, maxLocationDistanceMeters)
	if err != nil {
		logging.Warn("Failed to match fix against stored locations",
			"pilot_id", pilotID,
			"error", err.Error(),
		)
		return
	}
	if len(nearby) > 0 {
		fix.LocationID = &nearby[0].ID
	}
}

func (s *TrackService) countParse(result string) {
	if s.metrics != nil {
		s.metrics.IgcFilesParsedTotal.WithLabelValues(result).Inc()
	}
}
