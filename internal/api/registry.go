package api

import (
	"net/http"

	"flugbuech/tower/internal/auth"
	"flugbuech/tower/internal/logging"
	"flugbuech/tower/internal/services"
)

// RegistryEntry is one glider or location as shown to the frontend.
type RegistryEntry struct {
	ID   int32  `json:"id"`
	Name string `json:"name"`
}

// GlidersHandler lists the authenticated pilot's gliders.
func GlidersHandler(lookupSvc *services.LookupService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.GetPilotClaims(r.Context())
		if claims == nil {
			respondWithError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		table, err := lookupSvc.GliderNames(r.Context(), claims.PilotID())
		if err != nil {
			logging.Error("Failed to load gliders", "error", err.Error())
			respondWithError(w, http.StatusInternalServerError, "Failed to load gliders")
			return
		}

		entries := toRegistryEntries(table)
		respondWithSuccess(w, http.StatusOK, &entries)
	}
}

// LocationsHandler lists the authenticated pilot's locations.
func LocationsHandler(lookupSvc *services.LookupService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.GetPilotClaims(r.Context())
		if claims == nil {
			respondWithError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		table, err := lookupSvc.LocationNames(r.Context(), claims.PilotID())
		if err != nil {
			logging.Error("Failed to load locations", "error", err.Error())
			respondWithError(w, http.StatusInternalServerError, "Failed to load locations")
			return
		}

		entries := toRegistryEntries(table)
		respondWithSuccess(w, http.StatusOK, &entries)
	}
}

func toRegistryEntries(table services.NameLookupTable) []RegistryEntry {
	entries := make([]RegistryEntry, 0, len(table))
	for _, e := range table {
		entries = append(entries, RegistryEntry{ID: e.ID, Name: e.Name})
	}
	return entries
}
