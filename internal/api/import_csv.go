package api

import (
	"io"
	"net/http"

	"flugbuech/tower/internal/auth"
	"flugbuech/tower/internal/constants"
	"flugbuech/tower/internal/logging"
	"flugbuech/tower/internal/services"
)

// ImportCsvHandler processes an uploaded flight CSV.
//
// The `mode` query parameter is required:
//   - analyze: parse and validate the CSV data, but don't store it
//   - import: parse, validate and store the CSV data (not implemented)
func ImportCsvHandler(importSvc *services.CsvImportService, lookupSvc *services.LookupService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mode := r.URL.Query().Get("mode")
		if mode != "analyze" && mode != "import" {
			respondWithError(w, http.StatusBadRequest, "Invalid mode: "+mode)
			return
		}

		claims := auth.GetPilotClaims(r.Context())
		if claims == nil {
			respondWithError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		logging.Info("Processing CSV", "mode", mode, "pilot_id", claims.PilotID())

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, constants.MaxCsvUploadBytes))
		if err != nil {
			logging.Error("Failed to read CSV data", "error", err.Error())
			respondWithError(w, http.StatusBadRequest, "Failed to read CSV data")
			return
		}

		// One consistent snapshot of the registry for the whole analysis.
		gliders, locations, err := lookupSvc.TablesForPilot(r.Context(), claims.PilotID())
		if err != nil {
			logging.Error("Failed to load pilot registry", "error", err.Error())
			respondWithError(w, http.StatusInternalServerError, "Failed to load pilot registry")
			return
		}

		result := importSvc.AnalyzeCsv(body, gliders, locations)

		if mode == "import" {
			respondWithError(w, http.StatusNotImplemented, "CSV import is not implemented yet")
			return
		}

		respondWithJSON(w, http.StatusOK, result)
	}
}
