package constants

type (
	RequestSource string
	APIStatus     string
	CachePrefix   string
)

const (
	RequestSourceAPI       RequestSource = "API"
	RequestSourceWebClient RequestSource = "WEB_CLIENT"

	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"

	CachePrefixGliderNames   CachePrefix = "GLIDER_NAMES_"
	CachePrefixLocationNames CachePrefix = "LOCATION_NAMES_"
)

// Upload size caps, enforced before the parsers ever see the payload.
const (
	MaxCsvUploadBytes = 10 << 20
	MaxIgcUploadBytes = 50 << 20
)
