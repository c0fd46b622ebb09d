package igc

import (
	"fmt"
	"strconv"
)

// TimeOfDay is a GPS timestamp within the flight day.
type TimeOfDay struct {
	Hours   int
	Minutes int
	Seconds int
}

// SecondsSinceMidnight converts the time of day to seconds.
func (t TimeOfDay) SecondsSinceMidnight() int {
	return t.Hours*3600 + t.Minutes*60 + t.Seconds
}

// LatLng is a WGS84 coordinate in decimal degrees.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// HRecord is a header line: one three-letter mnemonic plus free text.
type HRecord struct {
	Source   byte
	Mnemonic string
	Data     string
}

// BRecord is a position fix.
type BRecord struct {
	Time        TimeOfDay
	Pos         LatLng
	Validity    byte
	PressureAlt int
	GPSAlt      int
}

// Record is the classification of one IGC line. At most one of H/B is
// set; a record with neither is a well-formed line of a type we ignore.
type Record struct {
	H *HRecord
	B *BRecord
}

// Byte-offset layout of a B record (fixed columns):
//
//	B HHMMSS DDMMmmmN DDDMMmmmE V PPPPP GGGGG
//	0 1....6 7.....14 15.....23 24 25.29 30.34
const (
	bTimeStart     = 1
	bTimeEnd       = 7
	bLatStart      = 7
	bLatEnd        = 15
	bLonStart      = 15
	bLonEnd        = 24
	bValidityPos   = 24
	bPressureStart = 25
	bPressureEnd   = 30
	bGPSAltStart   = 30
	bGPSAltEnd     = 35
	bRecordMinLen  = 35
)

const hRecordMinLen = 5

// ParseLine classifies a single trimmed IGC line.
func ParseLine(line string) (Record, error) {
	switch line[0] {
	case 'H':
		h, err := parseHRecord(line)
		if err != nil {
			return Record{}, err
		}
		return Record{H: h}, nil
	case 'B':
		b, err := parseBRecord(line)
		if err != nil {
			return Record{}, err
		}
		return Record{B: b}, nil
	case 'A', 'C', 'D', 'E', 'F', 'G', 'I', 'J', 'K', 'L':
		// Well-formed record types we don't extract anything from.
		return Record{}, nil
	default:
		return Record{}, fmt.Errorf("unknown record type %q in line %q", line[0], line)
	}
}

func parseHRecord(line string) (*HRecord, error) {
	if len(line) < hRecordMinLen {
		return nil, fmt.Errorf("H record too short: %q", line)
	}
	rec := &HRecord{
		Source:   line[1],
		Mnemonic: line[2:5],
	}
	// Header data follows an optional subtype name and colon, e.g.
	// "HFPLTPILOT: Chrigel Maurer" or just "HFDTE220719".
	data := line[5:]
	for i := 0; i < len(data); i++ {
		if data[i] == ':' {
			data = data[i+1:]
			break
		}
	}
	rec.Data = data
	return rec, nil
}

func parseBRecord(line string) (*BRecord, error) {
	if len(line) < bRecordMinLen {
		return nil, fmt.Errorf("B record too short: %q", line)
	}

	timeOfDay, err := parseTimeOfDay(line[bTimeStart:bTimeEnd])
	if err != nil {
		return nil, fmt.Errorf("invalid B record time in %q: %w", line, err)
	}
	lat, err := parseLatitude(line[bLatStart:bLatEnd])
	if err != nil {
		return nil, fmt.Errorf("invalid B record latitude in %q: %w", line, err)
	}
	lng, err := parseLongitude(line[bLonStart:bLonEnd])
	if err != nil {
		return nil, fmt.Errorf("invalid B record longitude in %q: %w", line, err)
	}
	validity := line[bValidityPos]
	if validity != 'A' && validity != 'V' {
		return nil, fmt.Errorf("invalid B record fix validity %q in %q", validity, line)
	}
	pressureAlt, err := parseAltitude(line[bPressureStart:bPressureEnd])
	if err != nil {
		return nil, fmt.Errorf("invalid B record pressure altitude in %q: %w", line, err)
	}
	gpsAlt, err := parseAltitude(line[bGPSAltStart:bGPSAltEnd])
	if err != nil {
		return nil, fmt.Errorf("invalid B record GPS altitude in %q: %w", line, err)
	}

	return &BRecord{
		Time:        timeOfDay,
		Pos:         LatLng{Lat: lat, Lng: lng},
		Validity:    validity,
		PressureAlt: pressureAlt,
		GPSAlt:      gpsAlt,
	}, nil
}

func parseTimeOfDay(s string) (TimeOfDay, error) {
	hours, err := parseDigits(s[0:2])
	if err != nil {
		return TimeOfDay{}, err
	}
	minutes, err := parseDigits(s[2:4])
	if err != nil {
		return TimeOfDay{}, err
	}
	seconds, err := parseDigits(s[4:6])
	if err != nil {
		return TimeOfDay{}, err
	}
	if hours > 23 || minutes > 59 || seconds > 59 {
		return TimeOfDay{}, fmt.Errorf("time %s out of range", s)
	}
	return TimeOfDay{Hours: hours, Minutes: minutes, Seconds: seconds}, nil
}

// parseLatitude decodes DDMMmmmN: degrees, minutes, thousandths of
// minutes, hemisphere.
func parseLatitude(s string) (float64, error) {
	degrees, err := parseDigits(s[0:2])
	if err != nil {
		return 0, err
	}
	value, err := degreesMinutes(degrees, s[2:7])
	if err != nil {
		return 0, err
	}
	switch s[7] {
	case 'N':
		return value, nil
	case 'S':
		return -value, nil
	}
	return 0, fmt.Errorf("invalid latitude hemisphere %q", s[7])
}

// parseLongitude decodes DDDMMmmmE.
func parseLongitude(s string) (float64, error) {
	degrees, err := parseDigits(s[0:3])
	if err != nil {
		return 0, err
	}
	value, err := degreesMinutes(degrees, s[3:8])
	if err != nil {
		return 0, err
	}
	switch s[8] {
	case 'E':
		return value, nil
	case 'W':
		return -value, nil
	}
	return 0, fmt.Errorf("invalid longitude hemisphere %q", s[8])
}

// degreesMinutes combines whole degrees with MMmmm (minutes plus
// thousandths of minutes).
func degreesMinutes(degrees int, mmThousandths string) (float64, error) {
	minutes, err := parseDigits(mmThousandths[0:2])
	if err != nil {
		return 0, err
	}
	thousandths, err := parseDigits(mmThousandths[2:5])
	if err != nil {
		return 0, err
	}
	return float64(degrees) + (float64(minutes)+float64(thousandths)/1000)/60, nil
}

// parseAltitude decodes a five-character altitude in meters, which may
// carry a leading minus sign ("-0012").
func parseAltitude(s string) (int, error) {
	return strconv.Atoi(s)
}

func parseDigits(s string) (int, error) {
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("expected digits, got %q", s)
		}
		n = n*10 + int(c-'0')
	}
	return n, nil
}
