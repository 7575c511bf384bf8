package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// Column names as they appear in the bikeshare CSV headers.
const (
	ColStartTime    = "Start Time"
	ColEndTime      = "End Time"
	ColTripDuration = "Trip Duration"
	ColStartStation = "Start Station"
	ColEndStation   = "End Station"
	ColUserType     = "User Type"
	ColGender       = "Gender"
	ColBirthYear    = "Birth Year"
)

// requiredColumns must be present in every city file.
var requiredColumns = []string{ColStartTime, ColTripDuration, ColStartStation, ColEndStation}

// ErrMissingColumn is returned when a dataset lacks a required column.
var ErrMissingColumn = errors.New("missing required column")

var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	time.RFC3339,
}

// Trip is one parsed row of a city dataset.
// Empty cells leave the Has* flag false and are skipped by aggregates.
type Trip struct {
	StartTime    time.Time
	Duration     float64 // seconds
	HasDuration  bool
	StartStation string
	EndStation   string
	UserType     string
	Gender       string
	BirthYear    float64
	HasBirthYear bool

	// Raw is the original CSV record, used for the raw data pager.
	Raw []string
}

// Month is the lower-case month name of the trip start, e.g. "march".
func (t Trip) Month() string { return strings.ToLower(t.StartTime.Month().String()) }

// Weekday is the lower-case day name of the trip start, e.g. "sunday".
func (t Trip) Weekday() string { return strings.ToLower(t.StartTime.Weekday().String()) }

// Hour is the start hour, 0-23.
func (t Trip) Hour() int { return t.StartTime.Hour() }

// Table is an in-memory city dataset.
type Table struct {
	Name   string
	Header []string
	Trips  []Trip

	HasUserType  bool
	HasGender    bool
	HasBirthYear bool
}

// Len returns the number of trips.
func (t *Table) Len() int { return len(t.Trips) }

// Where returns a table with the same columns holding only the trips keep
// accepts. The receiver is not modified.
func (t *Table) Where(keep func(Trip) bool) *Table {
	out := &Table{
		Name:         t.Name,
		Header:       t.Header,
		HasUserType:  t.HasUserType,
		HasGender:    t.HasGender,
		HasBirthYear: t.HasBirthYear,
	}
	for _, trip := range t.Trips {
		if keep(trip) {
			out.Trips = append(out.Trips, trip)
		}
	}
	return out
}

// ReadTable parses a bikeshare CSV with a header row.
func ReadTable(r io.Reader, name string) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: empty file: %w", name, ErrMissingColumn)
		}
		return nil, fmt.Errorf("%s: read header: %w", name, err)
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		header[i] = h
		idx[h] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("%s: %w %q", name, ErrMissingColumn, col)
		}
	}

	_, hasUserType := idx[ColUserType]
	_, hasGender := idx[ColGender]
	_, hasBirthYear := idx[ColBirthYear]
	t := &Table{
		Name:         name,
		Header:       header,
		HasUserType:  hasUserType,
		HasGender:    hasGender,
		HasBirthYear: hasBirthYear,
	}

	cell := func(rec []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		start, err := parseTime(cell(rec, ColStartTime))
		if err != nil {
			return nil, fmt.Errorf("%s line %d: %w", name, line, err)
		}

		trip := Trip{
			StartTime:    start,
			StartStation: cell(rec, ColStartStation),
			EndStation:   cell(rec, ColEndStation),
			UserType:     cell(rec, ColUserType),
			Gender:       cell(rec, ColGender),
			Raw:          rec,
		}
		if v := cell(rec, ColTripDuration); v != "" {
			if trip.Duration, err = strconv.ParseFloat(v, 64); err != nil {
				return nil, fmt.Errorf("%s line %d: trip duration %q: %w", name, line, v, err)
			}
			trip.HasDuration = true
		}
		if v := cell(rec, ColBirthYear); v != "" {
			if trip.BirthYear, err = strconv.ParseFloat(v, 64); err != nil {
				return nil, fmt.Errorf("%s line %d: birth year %q: %w", name, line, v, err)
			}
			trip.HasBirthYear = true
		}

		t.Trips = append(t.Trips, trip)
	}

	return t, nil
}

func parseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty %s", ColStartTime)
	}
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized %s %q", ColStartTime, s)
}

// Load reads the dataset at path, decompressing it if needed.
func Load(path string) (*Table, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer rc.Close()

	return ReadTable(rc, path)
}
