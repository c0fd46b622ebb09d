package constants

// XContest track classifications accepted by the importer.
const (
	TracktypeFreeFlight   = "free_flight"
	TracktypeFlatTriangle = "flat_triangle"
	TracktypeFaiTriangle  = "fai_triangle"
)

// IsValidTracktype reports whether the value is a known XContest tracktype.
func IsValidTracktype(value string) bool {
	switch value {
	case TracktypeFreeFlight, TracktypeFlatTriangle, TracktypeFaiTriangle:
		return true
	}
	return false
}
