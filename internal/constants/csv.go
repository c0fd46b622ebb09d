package constants

// CSV column names recognized by the flight importer. Columns outside
// this list are ignored (with a warning).
var ValidCsvHeaders = []string{
	"number",
	"date",
	"glider",
	"launch_site",
	"launch_time_utc",
	"landing_site",
	"landing_time_utc",
	"track_distance",
	"hikeandfly",
	"comment",
	"xcontest_url",
	"xcontest_tracktype",
	"xcontest_scored_distance",
	"video_url",
}

// CSV column name constants used by the row decoder.
const (
	CsvColNumber            = "number"
	CsvColDate              = "date"
	CsvColGlider            = "glider"
	CsvColLaunchSite        = "launch_site"
	CsvColLaunchTimeUTC     = "launch_time_utc"
	CsvColLandingSite       = "landing_site"
	CsvColLandingTimeUTC    = "landing_time_utc"
	CsvColTrackDistance     = "track_distance"
	CsvColHikeAndFly        = "hikeandfly"
	CsvColComment           = "comment"
	CsvColXContestURL       = "xcontest_url"
	CsvColXContestTracktype = "xcontest_tracktype"
	CsvColXContestDistance  = "xcontest_scored_distance"
	CsvColVideoURL          = "video_url"
)
