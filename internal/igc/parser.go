// Package igc decodes IGC flight-recorder logs and extracts the
// metadata needed to prefill a logbook entry.
package igc

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strings"

	"flugbuech/tower/internal/logging"
)

// LaunchLandingInfo describes the fix chosen as launch or landing.
type LaunchLandingInfo struct {
	Pos LatLng `json:"pos"`
	// GPS altitude in meters
	Alt int `json:"alt"`
	// Time of day as (hours, minutes, seconds)
	TimeHMS [3]int `json:"time_hms"`
	// Matching stored location, if one is close enough
	LocationID *int32 `json:"location_id"`
}

// FlightInfo is everything extracted from one IGC file.
type FlightInfo struct {
	// Name of the pilot, as configured in the flight instrument.
	Pilot *string `json:"pilot"`
	// Name of the glider, as configured in the flight instrument.
	GliderType *string `json:"glidertype"`
	// Name of the launch site, as configured in the flight instrument.
	Site *string `json:"site"`
	// Date of flight (YYYY, MM, DD).
	DateYMD *[3]int `json:"date_ymd"`
	// Launch infos.
	Launch *LaunchLandingInfo `json:"launch"`
	// Landing infos.
	Landing *LaunchLandingInfo `json:"landing"`
	// Track length in kilometers.
	TrackDistance float64 `json:"track_distance"`
}

const secondsPerDay = 24 * 60 * 60

// Duration returns the flight duration in seconds. It is only defined
// when both launch and landing fixes are present. A landing time of day
// before the launch time of day means the flight crossed midnight.
func (f *FlightInfo) Duration() (int, bool) {
	if f.Launch == nil || f.Landing == nil {
		return 0, false
	}
	launch := TimeOfDay{f.Launch.TimeHMS[0], f.Launch.TimeHMS[1], f.Launch.TimeHMS[2]}.SecondsSinceMidnight()
	landing := TimeOfDay{f.Landing.TimeHMS[0], f.Landing.TimeHMS[1], f.Landing.TimeHMS[2]}.SecondsSinceMidnight()
	duration := landing - launch
	if duration < 0 {
		duration += secondsPerDay
	}
	return duration, true
}

// Parse scans an IGC byte stream line by line. The first position fix
// becomes the launch, the last one the landing. Any line that does not
// classify under the record grammar aborts parsing.
func Parse(r io.Reader) (*FlightInfo, error) {
	info := &FlightInfo{}
	path := trackPath{}

	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		rec, err := ParseLine(line)
		if err != nil {
			return nil, fmt.Errorf("error parsing line %d: %w", lineNumber, err)
		}

		switch {
		case rec.H != nil:
			applyHeader(info, rec.H)
		case rec.B != nil:
			path.add(rec.B.Pos)
			fix := &LaunchLandingInfo{
				Pos:     rec.B.Pos,
				Alt:     rec.B.GPSAlt,
				TimeHMS: [3]int{rec.B.Time.Hours, rec.B.Time.Minutes, rec.B.Time.Seconds},
			}
			if info.Launch == nil {
				info.Launch = fix
			} else {
				info.Landing = fix
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("I/O error while reading IGC data: %w", err)
	}

	info.TrackDistance = path.length()
	return info, nil
}

func applyHeader(info *FlightInfo, h *HRecord) {
	data := strings.TrimSpace(h.Data)
	switch h.Mnemonic {
	case "PLT":
		info.Pilot = &data
	case "GTY":
		info.GliderType = &data
	case "SIT":
		info.Site = &data
	case "DTE":
		// Date formats:
		// - Skytraxx: DDMMYY
		// - XCTrack:  DDMMYY,NN
		if len(data) == 6 || (len(data) == 9 && data[6] == ',') {
			day, errD := parseDigits(data[0:2])
			month, errM := parseDigits(data[2:4])
			year, errY := parseDigits(data[4:6])
			if errD == nil && errM == nil && errY == nil {
				if year > 85 {
					year += 1900
				} else {
					year += 2000
				}
				info.DateYMD = &[3]int{year, month, day}
			}
		} else {
			logging.Warn("Unexpected H record DTE format", "data", data)
		}
	}
}

// trackPath accumulates the flight path length by projecting each fix
// onto a flat coordinate system anchored at the first fix.
type trackPath struct {
	anchored  bool
	cosAnchor float64
	prev      LatLng
	totalKm   float64
}

const earthRadiusKm = 6371.0088

func (p *trackPath) add(pos LatLng) {
	if !p.anchored {
		p.anchored = true
		p.cosAnchor = math.Cos(pos.Lat * math.Pi / 180)
		p.prev = pos
		return
	}
	dx := (pos.Lng - p.prev.Lng) * math.Pi / 180 * earthRadiusKm * p.cosAnchor
	dy := (pos.Lat - p.prev.Lat) * math.Pi / 180 * earthRadiusKm
	p.totalKm += math.Hypot(dx, dy)
	p.prev = pos
}

func (p *trackPath) length() float64 {
	return p.totalKm
}
