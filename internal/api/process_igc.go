package api

import (
	"io"
	"net/http"

	"flugbuech/tower/internal/auth"
	"flugbuech/tower/internal/constants"
	"flugbuech/tower/internal/logging"
	"flugbuech/tower/internal/models/dtos"
	"flugbuech/tower/internal/services"
)

// ProcessIgcHandler parses an uploaded IGC file and returns the
// extracted flight info. The response is a tagged union; parse
// failures are part of the payload, not an HTTP error.
func ProcessIgcHandler(trackSvc *services.TrackService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.GetPilotClaims(r.Context())
		if claims == nil {
			respondWithError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, constants.MaxIgcUploadBytes))
		if err != nil {
			logging.Error("Error while reading IGC data", "error", err.Error())
			respondWithJSON(w, http.StatusOK, dtos.NewFlightInfoError("Error while reading IGC data"))
			return
		}

		info, err := trackSvc.ProcessIgc(r.Context(), claims.PilotID(), body)
		if err != nil {
			respondWithJSON(w, http.StatusOK, dtos.NewFlightInfoError(err.Error()))
			return
		}

		respondWithJSON(w, http.StatusOK, dtos.NewFlightInfoSuccess(info))
	}
}
