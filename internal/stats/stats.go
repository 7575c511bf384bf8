// Package stats computes the descriptive statistics shown for a selection
// of bikeshare trips. Missing values never take part in an aggregate.
package stats

import (
	"cmp"
	"slices"
	"sort"

	"bikeshare/internal/dataset"
)

// Count is one row of a value count.
type Count struct {
	Value string
	N     int
}

// ModeFunc returns the most frequent value. Ties go to the value that
// sorts first under less. ok is false when values is empty.
func ModeFunc[T comparable](values []T, less func(a, b T) bool) (mode T, ok bool) {
	// Tally occurrences of each value
	counts := make(map[T]int, len(values))
	for _, v := range values {
		counts[v]++
	}

	// Keep the highest count, breaking ties toward the smaller value
	best := 0
	for v, n := range counts {
		if n > best || (n == best && less(v, mode)) {
			mode, best = v, n
		}
	}
	return mode, best > 0
}

// Mode is ModeFunc with natural ordering.
func Mode[T cmp.Ordered](values []T) (T, bool) {
	return ModeFunc(values, cmp.Less[T])
}

// ValueCounts counts non-empty values, most frequent first and ties in
// ascending value order.
func ValueCounts(values []string) []Count {
	counts := make(map[string]int)
	for _, v := range values {
		if v != "" {
			counts[v]++
		}
	}

	// Flatten the tally and order it for display
	out := make([]Count, 0, len(counts))
	for v, n := range counts {
		out = append(out, Count{Value: v, N: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].N != out[j].N {
			return out[i].N > out[j].N
		}
		return out[i].Value < out[j].Value
	})
	return out
}

// Median of values; the mean of the two middle values for an even count.
// values is not modified.
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	// Sort a copy so the caller's order is left alone
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

func nonEmpty(trips []dataset.Trip, field func(dataset.Trip) string) []string {
	out := make([]string, 0, len(trips))
	for _, t := range trips {
		if v := field(t); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// Times holds the most frequent times of travel.
type Times struct {
	Month string // lower-case month name
	Day   string // lower-case weekday name
	Hour  int
	OK    bool // false when there were no trips
}

// TravelTimes finds the most common month, weekday and start hour.
func TravelTimes(trips []dataset.Trip) Times {
	// Derive month, weekday and hour columns from each start time
	months := make([]string, len(trips))
	days := make([]string, len(trips))
	hours := make([]int, len(trips))
	for i, t := range trips {
		months[i] = t.Month()
		days[i] = t.Weekday()
		hours[i] = t.Hour()
	}

	var res Times
	res.Month, _ = Mode(months)
	res.Day, _ = Mode(days)
	res.Hour, res.OK = Mode(hours)
	return res
}

// Route is a start-to-end station pair.
type Route struct {
	Start string
	End   string
}

func routeLess(a, b Route) bool {
	if a.Start != b.Start {
		return a.Start < b.Start
	}
	return a.End < b.End
}

// Stations holds the most popular stations and trip.
type Stations struct {
	Start string
	End   string
	Trip  Route
	OK    bool
}

// PopularStations finds the most common start station, end station and
// start/end combination. Rows missing either station are left out of the
// combination count.
func PopularStations(trips []dataset.Trip) Stations {
	var res Stations
	res.Start, _ = Mode(nonEmpty(trips, func(t dataset.Trip) string { return t.StartStation }))
	res.End, _ = Mode(nonEmpty(trips, func(t dataset.Trip) string { return t.EndStation }))

	// Pair start and end stations; a trip missing either is not a route
	routes := make([]Route, 0, len(trips))
	for _, t := range trips {
		if t.StartStation != "" && t.EndStation != "" {
			routes = append(routes, Route{Start: t.StartStation, End: t.EndStation})
		}
	}
	res.Trip, res.OK = ModeFunc(routes, routeLess)
	return res
}

// Durations aggregates trip durations, in seconds.
type Durations struct {
	Count  int // trips with a duration
	Total  float64
	Mean   float64
	Median float64
}

// TripDurations sums and averages the recorded trip durations.
func TripDurations(trips []dataset.Trip) Durations {
	// Collect only trips that recorded a duration
	values := make([]float64, 0, len(trips))
	for _, t := range trips {
		if t.HasDuration {
			values = append(values, t.Duration)
		}
	}

	res := Durations{Count: len(values)}
	if res.Count == 0 {
		return res
	}
	// Sum, then derive mean and median from the same values
	for _, v := range values {
		res.Total += v
	}
	res.Mean = res.Total / float64(res.Count)
	res.Median = Median(values)
	return res
}

// Units converts seconds to minutes, hours and days.
func Units(seconds float64) (minutes, hours, days float64) {
	return seconds / 60, seconds / 3600, seconds / 86400
}

// BirthYears summarizes the Birth Year column.
type BirthYears struct {
	Earliest   int
	MostRecent int
	MostCommon int
	OK         bool // false when no trip records a birth year
}

// Users holds user demographics for a selection.
type Users struct {
	Trips      int
	UserTypes  []Count
	HasGender  bool // the city records gender
	Genders    []Count
	HasBirth   bool // the city records birth year
	BirthYears BirthYears
}

// UserDemographics counts user types and genders and summarizes birth
// years. Gender and birth year are only computed when t has the column.
func UserDemographics(t *dataset.Table) Users {
	res := Users{
		Trips:     t.Len(),
		UserTypes: ValueCounts(nonEmpty(t.Trips, func(tr dataset.Trip) string { return tr.UserType })),
		HasGender: t.HasGender,
		HasBirth:  t.HasBirthYear,
	}

	if t.HasGender {
		res.Genders = ValueCounts(nonEmpty(t.Trips, func(tr dataset.Trip) string { return tr.Gender }))
	}

	if t.HasBirthYear {
		years := make([]int, 0, len(t.Trips))
		for _, tr := range t.Trips {
			if tr.HasBirthYear {
				years = append(years, int(tr.BirthYear))
			}
		}
		if len(years) > 0 {
			res.BirthYears = BirthYears{
				Earliest:   slices.Min(years),
				MostRecent: slices.Max(years),
				OK:         true,
			}
			res.BirthYears.MostCommon, _ = Mode(years)
		}
	}
	return res
}
