package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"flugbuech/tower/internal/common"
	"flugbuech/tower/internal/constants"
	"flugbuech/tower/internal/logging"
	"flugbuech/tower/internal/metrics"
	"flugbuech/tower/internal/models/dtos"
)

// CsvImportService analyzes uploaded flight CSVs against a pilot's
// registry. It never persists anything; the result is a preview plus
// diagnostics for the pilot to act on.
type CsvImportService struct {
	metrics *metrics.MetricsRegistry
}

func NewCsvImportService(metricsReg *metrics.MetricsRegistry) *CsvImportService {
	return &CsvImportService{metrics: metricsReg}
}

// csvRecord is one data row with every recognized column in its raw,
// already-null-checked form. An empty cell is nil.
type csvRecord struct {
	Number            *int32
	Date              *string
	Glider            *string
	LaunchSite        *string
	LaunchTimeUTC     *string
	LandingSite       *string
	LandingTimeUTC    *string
	TrackDistance     *float32
	HikeAndFly        *bool
	Comment           *string
	XContestURL       *string
	XContestTracktype *string
	XContestDistance  *float32
	VideoURL          *string
}

// AnalyzeCsv parses and validates CSV flight data against the pilot's
// glider and location tables. Structural problems (no columns, no
// recognized columns, zero usable rows) abort with a single error;
// everything else degrades to per-row warnings so one bad row cannot
// block the rest of the file.
func (s *CsvImportService) AnalyzeCsv(data []byte, gliders, locations NameLookupTable) dtos.CsvAnalyzeResult {
	result := dtos.CsvAnalyzeResult{
		Warnings: []dtos.Message{},
		Errors:   []dtos.Message{},
		Flights:  []dtos.CsvFlightPreview{},
	}

	fail := func(message string) dtos.CsvAnalyzeResult {
		result.Errors = append(result.Errors, dtos.MsgWithoutRow(message))
		return result
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	// Parse and validate headers
	headers, err := reader.Read()
	if err == io.EOF {
		return fail("CSV does not contain any columns")
	}
	if err != nil {
		return fail(fmt.Sprintf("Error while reading headers from CSV: %s", err))
	}
	if len(headers) == 0 || (len(headers) == 1 && headers[0] == "") {
		return fail("CSV does not contain any columns")
	}

	validHeaders := make(map[string]bool, len(constants.ValidCsvHeaders))
	for _, h := range constants.ValidCsvHeaders {
		validHeaders[h] = true
	}

	anyValid := false
	var unknownHeaders []string
	colIndex := make(map[string]int, len(headers))
	for i, h := range headers {
		if validHeaders[h] {
			anyValid = true
			if _, seen := colIndex[h]; !seen {
				colIndex[h] = i
			}
		} else {
			unknownHeaders = append(unknownHeaders, h)
		}
	}
	if !anyValid {
		return fail(fmt.Sprintf(
			"CSV header fields (%s) don't contain any valid header",
			strings.Join(headers, ","),
		))
	}
	if len(unknownHeaders) > 0 {
		sort.Strings(unknownHeaders)
		result.Warnings = append(result.Warnings, dtos.MsgWithoutRow(fmt.Sprintf(
			"Some CSV header fields are unknown and will be ignored: %s",
			strings.Join(unknownHeaders, ","),
		)))
	}

	// Parse and validate records
	rowNumber := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		rowNumber++
		if err != nil {
			result.Warnings = append(result.Warnings, dtos.MsgForRow(rowNumber,
				fmt.Sprintf("Error while reading record from CSV: %s", err)))
			continue
		}
		if len(row) != len(headers) {
			result.Warnings = append(result.Warnings, dtos.MsgForRow(rowNumber,
				fmt.Sprintf("Error while reading record from CSV: record has %d fields, but the header has %d", len(row), len(headers))))
			continue
		}

		record, err := decodeCsvRecord(row, colIndex)
		if err != nil {
			result.Warnings = append(result.Warnings, dtos.MsgForRow(rowNumber,
				fmt.Sprintf("Error while reading record from CSV: %s", err)))
			continue
		}

		flight := dtos.CsvFlightPreview{
			CsvRow:           rowNumber,
			Number:           record.Number,
			TrackDistance:    record.TrackDistance,
			Comment:          record.Comment,
			VideoURL:         record.VideoURL,
			XContestDistance: record.XContestDistance,
		}
		if record.HikeAndFly != nil {
			flight.HikeAndFly = *record.HikeAndFly
		}

		// Each processing step returns its own diagnostics; merge order
		// is the contract.
		result.Warnings = append(result.Warnings, processGlider(record, rowNumber, &flight, gliders)...)
		result.Warnings = append(result.Warnings, processLocations(record, rowNumber, &flight, locations)...)
		result.Warnings = append(result.Warnings, processDateTime(record, rowNumber, &flight)...)
		result.Warnings = append(result.Warnings, processXContestInfo(record, rowNumber, &flight)...)

		result.Flights = append(result.Flights, flight)
	}

	if len(result.Flights) == 0 {
		return fail("CSV is empty")
	}

	if s.metrics != nil {
		s.metrics.CsvFilesAnalyzedTotal.Inc()
		s.metrics.CsvRowsAnalyzedTotal.Add(float64(len(result.Flights)))
	}
	logging.Debug("CSV analyzed",
		"rows", len(result.Flights),
		"warnings", len(result.Warnings),
	)

	return result
}

// decodeCsvRecord maps a raw row onto the recognized columns. A typed
// cell that fails to parse fails the whole row.
func decodeCsvRecord(row []string, colIndex map[string]int) (*csvRecord, error) {
	cell := func(col string) *string {
		idx, ok := colIndex[col]
		if !ok || row[idx] == "" {
			return nil
		}
		value := row[idx]
		return &value
	}

	record := &csvRecord{
		Date:              cell(constants.CsvColDate),
		Glider:            cell(constants.CsvColGlider),
		LaunchSite:        cell(constants.CsvColLaunchSite),
		LaunchTimeUTC:     cell(constants.CsvColLaunchTimeUTC),
		LandingSite:       cell(constants.CsvColLandingSite),
		LandingTimeUTC:    cell(constants.CsvColLandingTimeUTC),
		Comment:           cell(constants.CsvColComment),
		XContestURL:       cell(constants.CsvColXContestURL),
		XContestTracktype: cell(constants.CsvColXContestTracktype),
		VideoURL:          cell(constants.CsvColVideoURL),
	}

	if raw := cell(constants.CsvColNumber); raw != nil {
		fv := common.ParseIntField("number", *raw)
		if fv.State == common.FieldMalformed {
			return nil, fmt.Errorf("%s", fv.Message)
		}
		if fv.State == common.FieldParsed {
			record.Number = &fv.Value
		}
	}
	if raw := cell(constants.CsvColTrackDistance); raw != nil {
		fv := common.ParseFloatField("track_distance", *raw)
		if fv.State == common.FieldMalformed {
			return nil, fmt.Errorf("%s", fv.Message)
		}
		if fv.State == common.FieldParsed {
			record.TrackDistance = &fv.Value
		}
	}
	if raw := cell(constants.CsvColXContestDistance); raw != nil {
		fv := common.ParseFloatField("xcontest_scored_distance", *raw)
		if fv.State == common.FieldMalformed {
			return nil, fmt.Errorf("%s", fv.Message)
		}
		if fv.State == common.FieldParsed {
			record.XContestDistance = &fv.Value
		}
	}
	if raw := cell(constants.CsvColHikeAndFly); raw != nil {
		value, err := strconv.ParseBool(*raw)
		if err != nil {
			return nil, fmt.Errorf("Invalid hikeandfly: %s", *raw)
		}
		record.HikeAndFly = &value
	}

	return record, nil
}

func processGlider(record *csvRecord, rowNumber int, flight *dtos.CsvFlightPreview, gliders NameLookupTable) []dtos.Message {
	if record.Glider == nil {
		return nil
	}
	if id, ok := gliders.Resolve(*record.Glider); ok {
		flight.GliderID = &id
		return nil
	}
	return []dtos.Message{dtos.MsgForField(rowNumber, "glider_id",
		fmt.Sprintf("Could not find glider with name %q in your list of gliders", *record.Glider))}
}

func processLocations(record *csvRecord, rowNumber int, flight *dtos.CsvFlightPreview, locations NameLookupTable) []dtos.Message {
	var warnings []dtos.Message

	// Launch and landing resolve independently; a row can have one
	// resolved and one unresolved.
	if record.LaunchSite != nil {
		if id, ok := locations.Resolve(*record.LaunchSite); ok {
			flight.LaunchAt = &id
		} else {
			warnings = append(warnings, dtos.MsgForField(rowNumber, "launch_at",
				fmt.Sprintf("Could not find launch site with name %q in your list of locations", *record.LaunchSite)))
		}
	}
	if record.LandingSite != nil {
		if id, ok := locations.Resolve(*record.LandingSite); ok {
			flight.LandingAt = &id
		} else {
			warnings = append(warnings, dtos.MsgForField(rowNumber, "landing_at",
				fmt.Sprintf("Could not find landing site with name %q in your list of locations", *record.LandingSite)))
		}
	}
	return warnings
}

func processDateTime(record *csvRecord, rowNumber int, flight *dtos.CsvFlightPreview) []dtos.Message {
	var warnings []dtos.Message

	dateParts := 0
	for _, part := range []*string{record.Date, record.LaunchTimeUTC, record.LandingTimeUTC} {
		if part != nil {
			dateParts++
		}
	}
	if dateParts > 0 && dateParts < 3 {
		warnings = append(warnings, dtos.MsgForRow(rowNumber,
			"If you specify date, launch time or landing time, then the other two values must be provided as well"))
	}

	var (
		date                     time.Time
		launchTime, landingTime  common.TimeOfDay
		dateOk, launchOk, landOk bool
	)
	if record.Date != nil {
		fv := common.ParseDateField("ISO date", *record.Date)
		switch fv.State {
		case common.FieldParsed:
			date, dateOk = fv.Value, true
		case common.FieldMalformed:
			warnings = append(warnings, dtos.MsgForRow(rowNumber, fv.Message))
		}
	}
	if record.LaunchTimeUTC != nil {
		fv := common.ParseTimeField("launch time", *record.LaunchTimeUTC)
		switch fv.State {
		case common.FieldParsed:
			launchTime, launchOk = fv.Value, true
		case common.FieldMalformed:
			warnings = append(warnings, dtos.MsgForField(rowNumber, "launch_time", fv.Message))
		}
	}
	if record.LandingTimeUTC != nil {
		fv := common.ParseTimeField("landing time", *record.LandingTimeUTC)
		switch fv.State {
		case common.FieldParsed:
			landingTime, landOk = fv.Value, true
		case common.FieldMalformed:
			warnings = append(warnings, dtos.MsgForField(rowNumber, "landing_time", fv.Message))
		}
	}

	// Both timestamps are set only when all three parts parsed.
	if dateOk && launchOk && landOk {
		launch := time.Date(date.Year(), date.Month(), date.Day(),
			launchTime.Hours, launchTime.Minutes, launchTime.Seconds, 0, time.UTC)
		landing := time.Date(date.Year(), date.Month(), date.Day(),
			landingTime.Hours, landingTime.Minutes, landingTime.Seconds, 0, time.UTC)
		flight.LaunchTime = &launch
		flight.LandingTime = &landing
	}
	return warnings
}

func processXContestInfo(record *csvRecord, rowNumber int, flight *dtos.CsvFlightPreview) []dtos.Message {
	var warnings []dtos.Message

	if record.XContestTracktype != nil {
		if constants.IsValidTracktype(*record.XContestTracktype) {
			flight.XContestTracktype = record.XContestTracktype
		} else {
			warnings = append(warnings, dtos.MsgForField(rowNumber, "xcontest_tracktype",
				fmt.Sprintf("Invalid XContest tracktype: %s", *record.XContestTracktype)))
		}
	}
	if record.XContestURL != nil {
		url := *record.XContestURL
		switch {
		case strings.HasPrefix(url, "https://"):
			flight.XContestURL = &url
		case strings.HasPrefix(url, "http://"):
			rewritten := "https://" + strings.TrimPrefix(url, "http://")
			flight.XContestURL = &rewritten
		default:
			warnings = append(warnings, dtos.MsgForField(rowNumber, "xcontest_url",
				"XContest URL must start with https:// or http://"))
		}
	}
	return warnings
}
