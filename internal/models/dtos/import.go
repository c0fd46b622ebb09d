package dtos

import "time"

// Message is a single diagnostic produced while analyzing a flight CSV.
// Row and field references are omitted from the JSON when not set.
type Message struct {
	Message string  `json:"message"`
	CsvRow  *int    `json:"csvRow,omitempty"`
	Field   *string `json:"field,omitempty"`
}

// MsgWithoutRow builds a document-level diagnostic.
func MsgWithoutRow(message string) Message {
	return Message{Message: message}
}

// MsgForRow builds a diagnostic scoped to a CSV data row (1-based).
func MsgForRow(csvRow int, message string) Message {
	return Message{Message: message, CsvRow: &csvRow}
}

// MsgForField builds a diagnostic scoped to a field within a CSV data row.
func MsgForField(csvRow int, field string, message string) Message {
	return Message{Message: message, CsvRow: &csvRow, Field: &field}
}

// CsvAnalyzeResult is the outcome of analyzing an uploaded flight CSV.
// When Errors is non-empty, Flights holds whatever previews were
// collected before the fatal condition and must not be imported.
type CsvAnalyzeResult struct {
	Warnings []Message          `json:"warnings"`
	Errors   []Message          `json:"errors"`
	Flights  []CsvFlightPreview `json:"flights"`
}

// CsvFlightPreview is one CSV row parsed and resolved against the
// pilot's registry, ready to be shown for confirmation.
type CsvFlightPreview struct {
	// The row number in the CSV (starting with 1)
	CsvRow int `json:"csvRow"`
	// The user-defined flight number
	Number *int32 `json:"number,omitempty"`
	// The glider
	GliderID *int32 `json:"gliderId,omitempty"`
	// Launch location
	LaunchAt *int32 `json:"launchAt,omitempty"`
	// Landing location
	LandingAt *int32 `json:"landingAt,omitempty"`
	// Time of launch
	LaunchTime *time.Time `json:"launchTime,omitempty"`
	// Time of landing
	LandingTime *time.Time `json:"landingTime,omitempty"`
	// GPS track length
	TrackDistance *float32 `json:"trackDistance,omitempty"`
	// XContest tracktype (free_flight, flat_triangle or fai_triangle)
	XContestTracktype *string `json:"xcontestTracktype,omitempty"`
	// XContest scored distance
	XContestDistance *float32 `json:"xcontestDistance,omitempty"`
	// XContest URL
	XContestURL *string `json:"xcontestUrl,omitempty"`
	// Flight comment
	Comment *string `json:"comment,omitempty"`
	// Link to a video of the flight
	VideoURL *string `json:"videoUrl,omitempty"`
	// Whether the pilot hiked up to launch
	HikeAndFly bool `json:"hikeandfly"`
}
