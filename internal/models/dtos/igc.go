package dtos

import "flugbuech/tower/internal/igc"

// FlightInfoSuccess is the success variant of the IGC parse response.
// The FlightInfo fields are inlined next to the type tag.
type FlightInfoSuccess struct {
	Type string `json:"type"`
	*igc.FlightInfo
}

// FlightInfoError is the error variant of the IGC parse response.
type FlightInfoError struct {
	Type string `json:"type"`
	Msg  string `json:"msg"`
}

func NewFlightInfoSuccess(info *igc.FlightInfo) FlightInfoSuccess {
	return FlightInfoSuccess{Type: "success", FlightInfo: info}
}

func NewFlightInfoError(msg string) FlightInfoError {
	return FlightInfoError{Type: "error", Msg: msg}
}
