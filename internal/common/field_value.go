package common

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FieldState distinguishes a blank input from one that failed to parse.
type FieldState int

const (
	// FieldAbsent means the input was empty or all-whitespace.
	FieldAbsent FieldState = iota
	// FieldParsed means the input decoded into a typed value.
	FieldParsed
	// FieldMalformed means the input was non-empty but did not parse.
	FieldMalformed
)

// FieldValue is the tri-state result of decoding one textual form or
// cell value. Callers match on State exhaustively; a malformed value is
// data for them to judge, never a returned error.
type FieldValue[T any] struct {
	State   FieldState
	Value   T
	Message string
}

func absent[T any]() FieldValue[T] {
	return FieldValue[T]{State: FieldAbsent}
}

func parsed[T any](v T) FieldValue[T] {
	return FieldValue[T]{State: FieldParsed, Value: v}
}

func malformed[T any](message string) FieldValue[T] {
	return FieldValue[T]{State: FieldMalformed, Message: message}
}

// ParseDateField decodes a YYYY-MM-DD value. The label names the field
// in the malformed message, e.g. "ISO date".
func ParseDateField(label, raw string) FieldValue[time.Time] {
	if strings.TrimSpace(raw) == "" {
		return absent[time.Time]()
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return malformed[time.Time](fmt.Sprintf("Invalid %s: %s", label, raw))
	}
	return parsed(t)
}

// TimeOfDay is a wall-clock time without a date.
type TimeOfDay struct {
	Hours   int
	Minutes int
	Seconds int
}

// ParseTimeField decodes a HH:MM:SS value. Inputs shorter than 8
// characters are assumed to omit the seconds and get ":00" appended.
func ParseTimeField(label, raw string) FieldValue[TimeOfDay] {
	if strings.TrimSpace(raw) == "" {
		return absent[TimeOfDay]()
	}
	value := raw
	if len(value) < 8 {
		value += ":00"
	}
	t, err := time.Parse("15:04:05", value)
	if err != nil {
		return malformed[TimeOfDay](fmt.Sprintf("Invalid %s: %s", label, raw))
	}
	return parsed(TimeOfDay{Hours: t.Hour(), Minutes: t.Minute(), Seconds: t.Second()})
}

// ParseIntField decodes a base-10 signed integer value.
func ParseIntField(label, raw string) FieldValue[int32] {
	if strings.TrimSpace(raw) == "" {
		return absent[int32]()
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return malformed[int32](fmt.Sprintf("Invalid %s: %s", label, raw))
	}
	return parsed(int32(v))
}

// ParseFloatField decodes a base-10 floating point value.
func ParseFloatField(label, raw string) FieldValue[float32] {
	if strings.TrimSpace(raw) == "" {
		return absent[float32]()
	}
	v, err := strconv.ParseFloat(raw, 32)
	if err != nil {
		return malformed[float32](fmt.Sprintf("Invalid %s: %s", label, raw))
	}
	return parsed(float32(v))
}

// ParseBase64Field decodes a URL-safe base64 value, padded or not.
func ParseBase64Field(label, raw string) FieldValue[[]byte] {
	if strings.TrimSpace(raw) == "" {
		return absent[[]byte]()
	}
	data, err := base64.URLEncoding.DecodeString(raw)
	if err != nil {
		data, err = base64.RawURLEncoding.DecodeString(raw)
	}
	if err != nil {
		return malformed[[]byte](fmt.Sprintf("Invalid %s: %s", label, raw))
	}
	return parsed(data)
}
