package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"flugbuech/tower/internal/common"
	"flugbuech/tower/internal/constants"
	"flugbuech/tower/internal/models/entities"
)

// NameLookupEntry is one (id, display name) pair in a lookup table.
type NameLookupEntry struct {
	ID   int32
	Name string
}

// NameLookupTable maps free-text names from a spreadsheet to registry
// ids. Matching is exact string equality, first match wins. Tables are
// always scoped to a single pilot before they reach the analyzer.
type NameLookupTable []NameLookupEntry

// Resolve returns the id for an exact display-name match.
func (t NameLookupTable) Resolve(name string) (int32, bool) {
	for _, entry := range t {
		if entry.Name == name {
			return entry.ID, true
		}
	}
	return 0, false
}

// GliderNamesProvider supplies the glider rows backing a lookup table.
type GliderNamesProvider interface {
	NamesForUser(ctx context.Context, userID int32) ([]entities.GliderName, error)
}

// LocationNamesProvider supplies the location rows backing a lookup table.
type LocationNamesProvider interface {
	NamesForUser(ctx context.Context, userID int32) ([]entities.LocationName, error)
}

const lookupTableTTL = 60 * time.Second

// LookupService builds per-pilot name lookup tables (cache-first, then
// DB).
type LookupService struct {
	cache     common.CacheInterface
	gliders   GliderNamesProvider
	locations LocationNamesProvider
}

func NewLookupService(cache common.CacheInterface, gliders GliderNamesProvider, locations LocationNamesProvider) *LookupService {
	return &LookupService{
		cache:     cache,
		gliders:   gliders,
		locations: locations,
	}
}

// GliderNames returns the pilot's gliders as a lookup table keyed by
// "manufacturer model".
func (s *LookupService) GliderNames(ctx context.Context, pilotID int32) (NameLookupTable, error) {
	cacheKey := fmt.Sprintf("%s%d", constants.CachePrefixGliderNames, pilotID)
	val, err := s.cache.GetOrSet(cacheKey, lookupTableTTL, func() (any, error) {
		rows, err := s.gliders.NamesForUser(ctx, pilotID)
		if err != nil {
			return nil, fmt.Errorf("failed to load gliders for user %d: %w", pilotID, err)
		}
		table := make(NameLookupTable, 0, len(rows))
		for _, row := range rows {
			table = append(table, NameLookupEntry{ID: row.ID, Name: row.DisplayName()})
		}
		return table, nil
	})
	if err != nil {
		return nil, err
	}
	return val.(NameLookupTable), nil
}

// LocationNames returns the pilot's locations as a lookup table.
func (s *LookupService) LocationNames(ctx context.Context, pilotID int32) (NameLookupTable, error) {
	cacheKey := fmt.Sprintf("%s%d", constants.CachePrefixLocationNames, pilotID)
	val, err := s.cache.GetOrSet(cacheKey, lookupTableTTL, func() (any, error) {
		rows, err := s.locations.NamesForUser(ctx, pilotID)
		if err != nil {
			return nil, fmt.Errorf("failed to load locations for user %d: %w", pilotID, err)
		}
		table := make(NameLookupTable, 0, len(rows))
		for _, row := range rows {
			table = append(table, NameLookupEntry{ID: row.ID, Name: row.Name})
		}
		return table, nil
	})
	if err != nil {
		return nil, err
	}
	return val.(NameLookupTable), nil
}

// TablesForPilot loads both lookup tables, concurrently. The returned
// tables are a point-in-time snapshot for one analyze call.
func (s *LookupService) TablesForPilot(ctx context.Context, pilotID int32) (NameLookupTable, NameLookupTable, error) {
	var gliders, locations NameLookupTable

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		gliders, err = s.GliderNames(gctx, pilotID)
		return err
	})
	g.Go(func() error {
		var err error
		locations, err = s.LocationNames(gctx, pilotID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return gliders, locations, nil
}
