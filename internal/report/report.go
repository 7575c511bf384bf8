// Package report prints the statistics for a selection of trips.
package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"bikeshare/internal/dataset"
	"bikeshare/internal/filter"
	"bikeshare/internal/stats"
)

// Report writes formatted statistics to an output stream.
type Report struct {
	out   io.Writer
	style styles

	// Cities lists the configured cities, suggested when a city lacks a column.
	Cities []string

	// Since measures how long a block took; replaced in tests.
	Since func(time.Time) time.Duration
}

// New creates a Report writing to out. Color is only emitted when color is
// true and out is a terminal that supports it.
func New(out io.Writer, color bool) *Report {
	r := lipgloss.NewRenderer(out)
	s := plainStyles(r)
	if color {
		s = colorStyles(r)
	}
	return &Report{out: out, style: s, Since: time.Since}
}

func (r *Report) printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.out, format, a...)
}

func (r *Report) heading(title string) {
	r.printf("\n%s\n\n", r.style.Heading.Render(title))
}

func (r *Report) field(label string, value any) {
	r.printf("%s %v\n", r.style.Label.Render(label), value)
}

func (r *Report) notice(format string, a ...any) {
	r.printf("%s\n", r.style.Notice.Render(fmt.Sprintf(format, a...)))
}

// footer closes a block with its timing and the separator line.
func (r *Report) footer(start time.Time) {
	secs := strconv.FormatFloat(r.Since(start).Seconds(), 'f', -1, 64)
	r.printf("\nThis took %s seconds.\n%s\n", secs, filter.Separator)
}

// Selection echoes the user's choices.
func (r *Report) Selection(sel filter.Selection) {
	r.printf("\nYou have selected:\n")
	r.printf(" City  : %s\n", filter.Title(sel.City))
	r.printf(" Month : %s\n", filter.Title(sel.Month))
	r.printf(" Day   : %s\n\n", filter.Title(sel.Day))
	r.printf("%s\n", filter.Separator)
}

// NoData reports a selection that matched no trips.
func (r *Report) NoData(sel filter.Selection) {
	r.printf("\n")
	r.notice("No trips found for %s with month %s and day %s. Try a wider selection.",
		filter.Title(sel.City), filter.Title(sel.Month), filter.Title(sel.Day))
	r.printf("%s\n", filter.Separator)
}

// TimeStats displays statistics on the most frequent times of travel.
// The month and day are only reported when not filtered, since a filtered
// selection can only ever return the chosen value.
func (r *Report) TimeStats(trips []dataset.Trip, sel filter.Selection) {
	r.heading("Calculating The Most Frequent Times of Travel...")
	start := time.Now()

	res := stats.TravelTimes(trips)

	if sel.Month == filter.All {
		r.field("Most common month:", filter.Title(res.Month))
	} else {
		m := filter.Title(sel.Month)
		r.printf("\nMonth filtered to %s, so your entry will exclusively return %s for most common month. "+
			"If you would like the most common month in the data, choose 'All' as your selection.\n\n", m, m)
	}

	if sel.Day == filter.All {
		r.field("Most common day of the week:", filter.Title(res.Day))
	} else {
		d := filter.Title(sel.Day)
		r.printf("\nDay filtered to %s, so your entry will exclusively return %s for most common day. "+
			"If you would like the most common day in the data, choose 'All' as your selection.\n\n", d, d)
	}

	r.field("Most common start hour:", fmt.Sprintf("%d:00", res.Hour))

	r.footer(start)
}

// StationStats displays statistics on the most popular stations and trip.
func (r *Report) StationStats(trips []dataset.Trip) {
	r.heading("Calculating The Most Popular Stations and Trip...")
	start := time.Now()

	res := stats.PopularStations(trips)
	r.field("Most common start station:", res.Start)
	r.field("Most common end station:", res.End)
	r.field("Most frequent trip:", fmt.Sprintf("%s to %s", res.Trip.Start, res.Trip.End))

	r.footer(start)
}

// floatComma formats a float with thousands separators the way a
// float always prints, keeping ".0" on whole numbers (900.0, 1,376.5).
// Very small or very large magnitudes switch to exponent form.
func floatComma(v float64) string {
	if a := math.Abs(v); a != 0 && (a < 1e-4 || a >= 1e16) {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	s := humanize.Commaf(v)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// durationLines prints seconds and its minute, hour and day conversions.
// A whole-number total keeps the plain integer form of a summed column.
func (r *Report) durationLines(title string, seconds float64, total bool) {
	m, h, d := stats.Units(seconds)

	secs := floatComma(seconds)
	if total && seconds == math.Trunc(seconds) {
		secs = humanize.Commaf(seconds)
	}

	r.printf("%s\n %s seconds\n %s minutes\n %s hours\n %s days\n",
		r.style.Label.Render(title),
		secs, floatComma(m), floatComma(h), floatComma(d))
}

// TripDurationStats displays the total, average and median trip duration
// in seconds, minutes, hours and days.
func (r *Report) TripDurationStats(trips []dataset.Trip) {
	r.heading("Calculating Trip Duration...")
	start := time.Now()

	res := stats.TripDurations(trips)
	if res.Count == 0 {
		r.notice("Trip duration data not available for this selection")
	} else {
		r.durationLines("Total travel time:", res.Total, true)
		r.printf("\n")
		r.durationLines("Average travel time:", res.Mean, false)
		r.printf("\n")
		r.durationLines("Median travel time:", res.Median, false)
	}

	r.footer(start)
}

func (r *Report) counts(counts []stats.Count) {
	width := 0
	for _, c := range counts {
		width = max(width, len(c.Value))
	}
	for _, c := range counts {
		r.printf("%-*s    %d\n", width, c.Value, c.N)
	}
}

// UserStats displays statistics on bikeshare users.
func (r *Report) UserStats(t *dataset.Table, sel filter.Selection) {
	r.heading("Calculating User Stats...")
	start := time.Now()

	res := stats.UserDemographics(t)

	r.printf("%s %s\n\n", r.style.Label.Render("Total trips for selected data:"), humanize.Comma(int64(res.Trips)))

	r.printf("%s\n", r.style.Label.Render("User Types:"))
	r.counts(res.UserTypes)

	r.printf("\n")
	if res.HasGender {
		r.printf("%s\n", r.style.Label.Render("Gender:"))
		r.counts(res.Genders)
	} else {
		r.notice("Gender data not available for this city")
	}

	r.printf("\n")
	switch {
	case !res.HasBirth:
		r.birthYearNotice(sel.City)
	case !res.BirthYears.OK:
		r.notice("No birth years recorded for this selection")
	default:
		r.printf("%s\n", r.style.Label.Render("Birth Year:"))
		r.printf("Earliest        %d\n", res.BirthYears.Earliest)
		r.printf("Most recent     %d\n", res.BirthYears.MostRecent)
		r.printf("Most common     %d\n", res.BirthYears.MostCommon)
	}

	r.footer(start)
}

// birthYearNotice points the user at the other configured cities.
func (r *Report) birthYearNotice(city string) {
	var others []string
	for _, c := range r.Cities {
		if c != city {
			others = append(others, c)
		}
	}
	if len(others) == 0 {
		r.notice("Birth year data not available for %s.", filter.Title(city))
		return
	}
	r.notice("Birth year data not available for %s, please select %s to view birth year data.",
		filter.Title(city), filter.JoinOr(others))
}

// RawRows renders trips as a table of their original CSV columns. Empty
// header cells are named by position ("Unnamed: 0").
func (r *Report) RawRows(header []string, trips []dataset.Trip) {
	headers := make([]string, len(header))
	for i, h := range header {
		if strings.TrimSpace(h) == "" {
			h = fmt.Sprintf("Unnamed: %d", i)
		}
		headers[i] = h
	}

	rows := make([][]string, 0, len(trips))
	for _, tr := range trips {
		row := make([]string, len(headers))
		copy(row, tr.Raw)
		rows = append(rows, row)
	}

	r.Table(headers, rows)
}

// Table renders rows under headers with a plain border.
func (r *Report) Table(headers []string, rows [][]string) {
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.style.Border).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.style.Header
			}
			return r.style.Cell
		}).
		Headers(headers...).
		Rows(rows...)

	r.printf("%s\n", tbl.Render())
}
