package services

import (
	"context"
	"errors"
	"testing"

	"flugbuech/tower/internal/common"
	"flugbuech/tower/internal/models/entities"
)

type mockGliderProvider struct {
	rows  []entities.GliderName
	err   error
	calls int
}

func (m *mockGliderProvider) NamesForUser(ctx context.Context, userID int32) ([]entities.GliderName, error) {
	m.calls++
	return m.rows, m.err
}

type mockLocationProvider struct {
	rows  []entities.LocationName
	err   error
	calls int
}

func (m *mockLocationProvider) NamesForUser(ctx context.Context, userID int32) ([]entities.LocationName, error) {
	m.calls++
	return m.rows, m.err
}

func newTestLookupService(gliders *mockGliderProvider, locations *mockLocationProvider) *LookupService {
	return NewLookupService(common.NewCacheService(60, 120), gliders, locations)
}

func TestNameLookupTableResolve(t *testing.T) {
	table := NameLookupTable{
		{ID: 1, Name: "Advance Alpha"},
		{ID: 2, Name: "Advance Omega ULS"},
		{ID: 3, Name: "Advance Alpha"},
	}

	if id, ok := table.Resolve("Advance Omega ULS"); !ok || id != 2 {
		t.Errorf("Expected (2, true), got (%d, %v)", id, ok)
	}
	// First match wins on duplicates
	if id, ok := table.Resolve("Advance Alpha"); !ok || id != 1 {
		t.Errorf("Expected (1, true), got (%d, %v)", id, ok)
	}
	// Matching is exact, not normalized
	if _, ok := table.Resolve("advance alpha"); ok {
		t.Error("Expected case-sensitive miss")
	}
	if _, ok := table.Resolve("Advance Alpha "); ok {
		t.Error("Expected exact-match miss on trailing space")
	}
	if _, ok := table.Resolve("Gin Atlas"); ok {
		t.Error("Expected miss for unknown name")
	}
}

func TestGliderNamesBuildsDisplayNames(t *testing.T) {
	gliders := &mockGliderProvider{rows: []entities.GliderName{
		{ID: 1, Manufacturer: "Advance", Model: "Alpha"},
		{ID: 2, Manufacturer: "Gin", Model: "Atlas"},
	}}
	svc := newTestLookupService(gliders, &mockLocationProvider{})

	table, err := svc.GliderNames(context.Background(), 1)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(table) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(table))
	}
	if table[0].Name != "Advance Alpha" || table[1].Name != "Gin Atlas" {
		t.Errorf("Unexpected names: %+v", table)
	}
}

func TestGliderNamesCached(t *testing.T) {
	gliders := &mockGliderProvider{rows: []entities.GliderName{
		{ID: 1, Manufacturer: "Advance", Model: "Alpha"},
	}}
	svc := newTestLookupService(gliders, &mockLocationProvider{})

	for i := 0; i < 3; i++ {
		if _, err := svc.GliderNames(context.Background(), 1); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
	}
	if gliders.calls != 1 {
		t.Errorf("Expected 1 provider call, got %d", gliders.calls)
	}
}

func TestGliderNamesScopedPerPilot(t *testing.T) {
	gliders := &mockGliderProvider{}
	svc := newTestLookupService(gliders, &mockLocationProvider{})

	if _, err := svc.GliderNames(context.Background(), 1); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if _, err := svc.GliderNames(context.Background(), 2); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if gliders.calls != 2 {
		t.Errorf("Expected a provider call per pilot, got %d", gliders.calls)
	}
}

func TestLocationNamesError(t *testing.T) {
	locations := &mockLocationProvider{err: errors.New("db down")}
	svc := newTestLookupService(&mockGliderProvider{}, locations)

	if _, err := svc.LocationNames(context.Background(), 1); err == nil {
		t.Error("Expected error to propagate")
	}
}

func TestTablesForPilot(t *testing.T) {
	gliders := &mockGliderProvider{rows: []entities.GliderName{
		{ID: 1, Manufacturer: "Advance", Model: "Alpha"},
	}}
	locations := &mockLocationProvider{rows: []entities.LocationName{
		{ID: 1, Name: "Züri"},
		{ID: 2, Name: "Rappi"},
	}}
	svc := newTestLookupService(gliders, locations)

	gliderTable, locationTable, err := svc.TablesForPilot(context.Background(), 1)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if id, ok := gliderTable.Resolve("Advance Alpha"); !ok || id != 1 {
		t.Errorf("Expected glider 1, got (%d, %v)", id, ok)
	}
	if id, ok := locationTable.Resolve("Rappi"); !ok || id != 2 {
		t.Errorf("Expected location 2, got (%d, %v)", id, ok)
	}
}

func TestTablesForPilotError(t *testing.T) {
	gliders := &mockGliderProvider{err: errors.New("db down")}
	svc := newTestLookupService(gliders, &mockLocationProvider{})

	if _, _, err := svc.TablesForPilot(context.Background(), 1); err == nil {
		t.Error("Expected error to propagate")
	}
}
