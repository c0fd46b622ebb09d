package services

import (
	"reflect"
	"testing"
	"time"

	"flugbuech/tower/internal/models/dtos"
)

func analyzeTestCsv(t *testing.T, csv string, gliders, locations NameLookupTable) dtos.CsvAnalyzeResult {
	t.Helper()
	svc := NewCsvImportService(nil)
	return svc.AnalyzeCsv([]byte(csv), gliders, locations)
}

func i32Ptr(v int32) *int32       { return &v }
func f32Ptr(v float32) *float32   { return &v }
func strPtr(v string) *string     { return &v }
func timePtr(v time.Time) *time.Time { return &v }

func utcDatetime(year int, month time.Month, day, hour, min, sec int) time.Time {
	return time.Date(year, month, day, hour, min, sec, 0, time.UTC)
}

func assertMessages(t *testing.T, label string, got, want []dtos.Message) {
	t.Helper()
	if len(want) == 0 && len(got) == 0 {
		return
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Unexpected %s:\n got: %+v\nwant: %+v", label, got, want)
	}
}

func TestAnalyzeEmptyCsv(t *testing.T) {
	result := analyzeTestCsv(t, "", nil, nil)
	assertMessages(t, "warnings", result.Warnings, nil)
	assertMessages(t, "errors", result.Errors, []dtos.Message{
		dtos.MsgWithoutRow("CSV does not contain any columns"),
	})
	if len(result.Flights) != 0 {
		t.Errorf("Expected no flights, got %d", len(result.Flights))
	}
}

func TestAnalyzeCsvWithoutValidHeaders(t *testing.T) {
	result := analyzeTestCsv(t, "a,c,b\n1,2,3", nil, nil)
	assertMessages(t, "warnings", result.Warnings, nil)
	assertMessages(t, "errors", result.Errors, []dtos.Message{
		dtos.MsgWithoutRow("CSV header fields (a,c,b) don't contain any valid header"),
	})
	if len(result.Flights) != 0 {
		t.Errorf("Expected no flights, got %d", len(result.Flights))
	}
}

func TestAnalyzeEmptyCsvWithSomeValidHeaders(t *testing.T) {
	result := analyzeTestCsv(t, "a,number,c,b\n", nil, nil)
	assertMessages(t, "warnings", result.Warnings, []dtos.Message{
		dtos.MsgWithoutRow("Some CSV header fields are unknown and will be ignored: a,b,c"),
	})
	assertMessages(t, "errors", result.Errors, []dtos.Message{
		dtos.MsgWithoutRow("CSV is empty"),
	})
}

func TestAnalyzeCsvEmptyGlider(t *testing.T) {
	result := analyzeTestCsv(t, "number,glider\n42,", nil, nil)
	assertMessages(t, "warnings", result.Warnings, nil)
	assertMessages(t, "errors", result.Errors, nil)
	if got := result.Flights[0].Number; got == nil || *got != 42 {
		t.Errorf("Expected number 42, got %v", got)
	}
	if result.Flights[0].GliderID != nil {
		t.Errorf("Expected no glider id, got %v", *result.Flights[0].GliderID)
	}
}

func TestAnalyzeCsvUnknownGlider(t *testing.T) {
	result := analyzeTestCsv(t, "number,glider\n42,Advance Omega ULS", nil, nil)
	assertMessages(t, "warnings", result.Warnings, []dtos.Message{
		dtos.MsgForField(1, "glider_id",
			`Could not find glider with name "Advance Omega ULS" in your list of gliders`),
	})
	assertMessages(t, "errors", result.Errors, nil)
	if result.Flights[0].GliderID != nil {
		t.Errorf("Expected no glider id, got %v", *result.Flights[0].GliderID)
	}
}

func TestAnalyzeCsvKnownGlider(t *testing.T) {
	gliders := NameLookupTable{{ID: 7, Name: "Advance Omega ULS"}}
	result := analyzeTestCsv(t, "number,glider\n42,Advance Omega ULS", gliders, nil)
	assertMessages(t, "warnings", result.Warnings, nil)
	assertMessages(t, "errors", result.Errors, nil)
	if got := result.Flights[0].GliderID; got == nil || *got != 7 {
		t.Errorf("Expected glider id 7, got %v", got)
	}
}

func TestAnalyzeCsvUnknownLocations(t *testing.T) {
	result := analyzeTestCsv(t, "number,launch_site,landing_site\n42,Züri,Rappi", nil, nil)
	assertMessages(t, "warnings", result.Warnings, []dtos.Message{
		dtos.MsgForField(1, "launch_at",
			`Could not find launch site with name "Züri" in your list of locations`),
		dtos.MsgForField(1, "landing_at",
			`Could not find landing site with name "Rappi" in your list of locations`),
	})
	assertMessages(t, "errors", result.Errors, nil)
	if result.Flights[0].LaunchAt != nil || result.Flights[0].LandingAt != nil {
		t.Error("Expected unresolved launch and landing")
	}
}

func TestAnalyzeCsvKnownLocations(t *testing.T) {
	locations := NameLookupTable{{ID: 1, Name: "Züri"}, {ID: 2, Name: "Rappi"}}
	result := analyzeTestCsv(t, "number,launch_site,landing_site\n42,Züri,Rappi", nil, locations)
	assertMessages(t, "warnings", result.Warnings, nil)
	assertMessages(t, "errors", result.Errors, nil)
	if got := result.Flights[0].LaunchAt; got == nil || *got != 1 {
		t.Errorf("Expected launch location 1, got %v", got)
	}
	if got := result.Flights[0].LandingAt; got == nil || *got != 2 {
		t.Errorf("Expected landing location 2, got %v", got)
	}
}

func TestAnalyzeCsvOnlyOneLocationResolved(t *testing.T) {
	locations := NameLookupTable{{ID: 1, Name: "Züri"}}
	result := analyzeTestCsv(t, "number,launch_site,landing_site\n42,Züri,Rappi", nil, locations)
	assertMessages(t, "warnings", result.Warnings, []dtos.Message{
		dtos.MsgForField(1, "landing_at",
			`Could not find landing site with name "Rappi" in your list of locations`),
	})
	if got := result.Flights[0].LaunchAt; got == nil || *got != 1 {
		t.Errorf("Expected launch location 1, got %v", got)
	}
	if result.Flights[0].LandingAt != nil {
		t.Errorf("Expected unresolved landing, got %v", *result.Flights[0].LandingAt)
	}
}

func TestAnalyzeCsvPermissionScoping(t *testing.T) {
	// The tables passed in are already scoped to the pilot; names owned
	// by somebody else simply aren't in them.
	result := analyzeTestCsv(t,
		"number,glider,launch_site,landing_site\n42,Advance Alpha,Züri,Rappi", nil, nil)
	assertMessages(t, "warnings", result.Warnings, []dtos.Message{
		dtos.MsgForField(1, "glider_id",
			`Could not find glider with name "Advance Alpha" in your list of gliders`),
		dtos.MsgForField(1, "launch_at",
			`Could not find launch site with name "Züri" in your list of locations`),
		dtos.MsgForField(1, "landing_at",
			`Could not find landing site with name "Rappi" in your list of locations`),
	})
	assertMessages(t, "errors", result.Errors, nil)
	if result.Flights[0].GliderID != nil || result.Flights[0].LaunchAt != nil || result.Flights[0].LandingAt != nil {
		t.Error("Expected nothing resolved")
	}
}

func TestAnalyzeCsvPartialDateTime(t *testing.T) {
	result := analyzeTestCsv(t, "number,date\n42,2023-12-12", nil, nil)
	assertMessages(t, "warnings", result.Warnings, []dtos.Message{
		dtos.MsgForRow(1,
			"If you specify date, launch time or landing time, then the other two values must be provided as well"),
	})
	assertMessages(t, "errors", result.Errors, nil)
	if result.Flights[0].LaunchTime != nil || result.Flights[0].LandingTime != nil {
		t.Error("Expected no timestamps")
	}
}

func TestAnalyzeCsvInvalidDateTime(t *testing.T) {
	result := analyzeTestCsv(t,
		"number,date,launch_time_utc,landing_time_utc\n42,2023-13-44,asdf,2:15 pm", nil, nil)
	assertMessages(t, "warnings", result.Warnings, []dtos.Message{
		dtos.MsgForRow(1, "Invalid ISO date: 2023-13-44"),
		dtos.MsgForField(1, "launch_time", "Invalid launch time: asdf"),
		dtos.MsgForField(1, "landing_time", "Invalid landing time: 2:15 pm"),
	})
	assertMessages(t, "errors", result.Errors, nil)
	if result.Flights[0].LaunchTime != nil || result.Flights[0].LandingTime != nil {
		t.Error("Expected no timestamps")
	}
}

func TestAnalyzeCsvValidDateTime(t *testing.T) {
	result := analyzeTestCsv(t,
		"number,date,launch_time_utc,landing_time_utc\n42,2020-03-15,11:13:00,11:18:30", nil, nil)
	assertMessages(t, "warnings", result.Warnings, nil)
	assertMessages(t, "errors", result.Errors, nil)
	wantLaunch := utcDatetime(2020, 3, 15, 11, 13, 0)
	wantLanding := utcDatetime(2020, 3, 15, 11, 18, 30)
	if got := result.Flights[0].LaunchTime; got == nil || !got.Equal(wantLaunch) {
		t.Errorf("Expected launch %v, got %v", wantLaunch, got)
	}
	if got := result.Flights[0].LandingTime; got == nil || !got.Equal(wantLanding) {
		t.Errorf("Expected landing %v, got %v", wantLanding, got)
	}
}

func TestAnalyzeCsvPartialInvalidDate(t *testing.T) {
	// The completeness warning and the per-field parse warning are
	// independent checks and both fire.
	result := analyzeTestCsv(t, "number,date\n42,2023-13-44", nil, nil)
	assertMessages(t, "warnings", result.Warnings, []dtos.Message{
		dtos.MsgForRow(1,
			"If you specify date, launch time or landing time, then the other two values must be provided as well"),
		dtos.MsgForRow(1, "Invalid ISO date: 2023-13-44"),
	})
}

func TestAnalyzeCsvInvalidXContestTracktypeUrl(t *testing.T) {
	result := analyzeTestCsv(t,
		"number,xcontest_tracktype,xcontest_url\n42,awesome_flight,xcontest.org/some/flight", nil, nil)
	assertMessages(t, "warnings", result.Warnings, []dtos.Message{
		dtos.MsgForField(1, "xcontest_tracktype", "Invalid XContest tracktype: awesome_flight"),
		dtos.MsgForField(1, "xcontest_url", "XContest URL must start with https:// or http://"),
	})
	assertMessages(t, "errors", result.Errors, nil)
	if result.Flights[0].XContestTracktype != nil || result.Flights[0].XContestURL != nil {
		t.Error("Expected tracktype and URL unset")
	}
}

func TestAnalyzeCsvMapXContestUrlHttp(t *testing.T) {
	result := analyzeTestCsv(t, "number,xcontest_url\n42,http://xcontest.org/some/flight", nil, nil)
	assertMessages(t, "warnings", result.Warnings, nil)
	assertMessages(t, "errors", result.Errors, nil)
	if got := result.Flights[0].XContestURL; got == nil || *got != "https://xcontest.org/some/flight" {
		t.Errorf("Expected rewritten URL, got %v", got)
	}
}

func TestAnalyzeCsvSkipsUnreadableRow(t *testing.T) {
	result := analyzeTestCsv(t, "number,glider\nnope,Advance Alpha\n42,", nil, nil)
	if len(result.Warnings) != 1 {
		t.Fatalf("Expected 1 warning, got %d: %+v", len(result.Warnings), result.Warnings)
	}
	if result.Warnings[0].CsvRow == nil || *result.Warnings[0].CsvRow != 1 {
		t.Errorf("Expected warning on row 1, got %+v", result.Warnings[0])
	}
	if len(result.Flights) != 1 {
		t.Fatalf("Expected 1 flight, got %d", len(result.Flights))
	}
	// The skipped row still counts towards the row numbering
	if result.Flights[0].CsvRow != 2 {
		t.Errorf("Expected preview for row 2, got %d", result.Flights[0].CsvRow)
	}
}

func TestAnalyzeCsvFullExample(t *testing.T) {
	gliders := NameLookupTable{{ID: 3, Name: "Advance Alpha"}}
	locations := NameLookupTable{{ID: 1, Name: "Züri"}, {ID: 2, Name: "Rappi"}}

	csv := "number,date,glider,launch_site,launch_time_utc,landing_site,landing_time_utc,track_distance,hikeandfly,comment,xcontest_url,xcontest_tracktype,xcontest_scored_distance,video_url\n" +
		"1,2020-01-01,Advance Alpha,Züri,10:00:00,Rappi,11:00:00,44.7,,\"Some flying, some scratching\",https://xcontest.org/myflight/,free_flight,27,https://youtube.com/myvid\n" +
		"2,2020-01-02,Advance Alpha,Rappi,12:01:02,Züri,14:50:50,50,true,Way back,,,,\n" +
		",,,,,,,,false,,,,,\n"

	result := analyzeTestCsv(t, csv, gliders, locations)
	assertMessages(t, "warnings", result.Warnings, nil)
	assertMessages(t, "errors", result.Errors, nil)
	if len(result.Flights) != 3 {
		t.Fatalf("Expected 3 flights, got %d", len(result.Flights))
	}

	want0 := dtos.CsvFlightPreview{
		CsvRow:            1,
		Number:            i32Ptr(1),
		GliderID:          i32Ptr(3),
		LaunchAt:          i32Ptr(1),
		LandingAt:         i32Ptr(2),
		LaunchTime:        timePtr(utcDatetime(2020, 1, 1, 10, 0, 0)),
		LandingTime:       timePtr(utcDatetime(2020, 1, 1, 11, 0, 0)),
		TrackDistance:     f32Ptr(44.7),
		XContestTracktype: strPtr("free_flight"),
		XContestDistance:  f32Ptr(27.0),
		XContestURL:       strPtr("https://xcontest.org/myflight/"),
		Comment:           strPtr("Some flying, some scratching"),
		VideoURL:          strPtr("https://youtube.com/myvid"),
		HikeAndFly:        false,
	}
	if !reflect.DeepEqual(result.Flights[0], want0) {
		t.Errorf("Unexpected flight 0:\n got: %+v\nwant: %+v", result.Flights[0], want0)
	}

	want1 := dtos.CsvFlightPreview{
		CsvRow:        2,
		Number:        i32Ptr(2),
		GliderID:      i32Ptr(3),
		LaunchAt:      i32Ptr(2),
		LandingAt:     i32Ptr(1),
		LaunchTime:    timePtr(utcDatetime(2020, 1, 2, 12, 1, 2)),
		LandingTime:   timePtr(utcDatetime(2020, 1, 2, 14, 50, 50)),
		TrackDistance: f32Ptr(50.0),
		Comment:       strPtr("Way back"),
		HikeAndFly:    true,
	}
	if !reflect.DeepEqual(result.Flights[1], want1) {
		t.Errorf("Unexpected flight 1:\n got: %+v\nwant: %+v", result.Flights[1], want1)
	}

	want2 := dtos.CsvFlightPreview{CsvRow: 3, HikeAndFly: false}
	if !reflect.DeepEqual(result.Flights[2], want2) {
		t.Errorf("Unexpected flight 2:\n got: %+v\nwant: %+v", result.Flights[2], want2)
	}
}

func TestAnalyzeCsvIdempotent(t *testing.T) {
	gliders := NameLookupTable{{ID: 3, Name: "Advance Alpha"}}
	csv := "number,glider,date\n42,Advance Alpha,2023-12-12\n43,Gin Atlas,"

	first := analyzeTestCsv(t, csv, gliders, nil)
	second := analyzeTestCsv(t, csv, gliders, nil)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Analysis not deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}
