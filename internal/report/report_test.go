package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"bikeshare/internal/dataset"
	"bikeshare/internal/filter"
)

func newTestReport(color bool) (*Report, *bytes.Buffer) {
	var buf bytes.Buffer
	r := New(&buf, color)
	r.Since = func(time.Time) time.Duration { return 250 * time.Millisecond }
	return r, &buf
}

func at(s string) time.Time {
	ts, err := time.Parse("2006-01-02 15:04", s)
	if err != nil {
		panic(err)
	}
	return ts
}

func sampleTable() *dataset.Table {
	return &dataset.Table{
		Name:         "chicago",
		Header:       []string{"", "Start Time", "Trip Duration", "Start Station", "End Station"},
		HasUserType:  true,
		HasGender:    true,
		HasBirthYear: true,
		Trips: []dataset.Trip{
			{StartTime: at("2017-03-05 08:10"), Duration: 600, HasDuration: true, StartStation: "Canal St", EndStation: "Clark St",
				UserType: "Subscriber", Gender: "Male", BirthYear: 1990, HasBirthYear: true,
				Raw: []string{"1", "2017-03-05 08:10:00", "600", "Canal St", "Clark St"}},
			{StartTime: at("2017-03-06 08:20"), Duration: 900, HasDuration: true, StartStation: "Canal St", EndStation: "State St",
				UserType: "Customer", Gender: "Female", BirthYear: 1985, HasBirthYear: true,
				Raw: []string{"2", "2017-03-06 08:20:00", "900", "Canal St", "State St"}},
			{StartTime: at("2017-03-06 17:00"), Duration: 1500, HasDuration: true, StartStation: "Wells St", EndStation: "Clark St",
				UserType: "Subscriber", BirthYear: 1990, HasBirthYear: true,
				Raw: []string{"3", "2017-03-06 17:00:00", "1500"}},
		},
	}
}

func TestSelection(t *testing.T) {
	r, buf := newTestReport(false)

	r.Selection(filter.Selection{City: "new york city", Month: "all", Day: "friday"})

	assert.Equal(t, "\nYou have selected:\n City  : New York City\n Month : All\n Day   : Friday\n\n"+filter.Separator+"\n", buf.String())
}

func TestTimeStats_Unfiltered(t *testing.T) {
	r, buf := newTestReport(false)

	r.TimeStats(sampleTable().Trips, filter.Selection{City: "chicago", Month: "all", Day: "all"})

	out := buf.String()
	assert.Contains(t, out, "Calculating The Most Frequent Times of Travel...")
	assert.Contains(t, out, "Most common month: March\n")
	assert.Contains(t, out, "Most common day of the week: Monday\n")
	assert.Contains(t, out, "Most common start hour: 8:00\n")
	assert.True(t, strings.HasSuffix(out, "\nThis took 0.25 seconds.\n"+filter.Separator+"\n"))
}

func TestTimeStats_FilteredNotices(t *testing.T) {
	r, buf := newTestReport(false)

	r.TimeStats(sampleTable().Trips, filter.Selection{City: "chicago", Month: "march", Day: "monday"})

	out := buf.String()
	assert.NotContains(t, out, "Most common month:")
	assert.NotContains(t, out, "Most common day of the week:")
	assert.Contains(t, out, "Month filtered to March, so your entry will exclusively return March for most common month.")
	assert.Contains(t, out, "Day filtered to Monday, so your entry will exclusively return Monday for most common day.")
	assert.Contains(t, out, "Most common start hour: 8:00")
}

func TestStationStats(t *testing.T) {
	r, buf := newTestReport(false)

	r.StationStats(sampleTable().Trips)

	out := buf.String()
	assert.Contains(t, out, "Most common start station: Canal St\n")
	assert.Contains(t, out, "Most common end station: Clark St\n")
	assert.Contains(t, out, "Most frequent trip: Canal St to Clark St\n")
}

func TestTripDurationStats(t *testing.T) {
	r, buf := newTestReport(false)

	r.TripDurationStats(sampleTable().Trips)

	out := buf.String()
	assert.Contains(t, out, "Total travel time:\n 3,000 seconds\n 50.0 minutes\n")
	assert.Contains(t, out, "Average travel time:\n 1,000.0 seconds\n 16.666666666666668 minutes\n")
	assert.Contains(t, out, "Median travel time:\n 900.0 seconds\n 15.0 minutes\n 0.25 hours\n")
}

func TestFloatComma(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{900, "900.0"},
		{1376.5, "1,376.5"},
		{1234567, "1,234,567.0"},
		{0, "0.0"},
		{0.25, "0.25"},
		{1.0 / 86400, "1.1574074074074073e-05"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, floatComma(tt.in), "%v", tt.in)
	}
}

func TestUserStats_BirthYearNoticeWithoutAlternatives(t *testing.T) {
	r, buf := newTestReport(false)
	table := sampleTable()
	table.HasBirthYear = false

	r.UserStats(table, filter.Selection{City: "boston", Month: "all", Day: "all"})

	assert.Contains(t, buf.String(), "Birth year data not available for Boston.\n")
}

func TestTripDurationStats_NoDurations(t *testing.T) {
	r, buf := newTestReport(false)

	r.TripDurationStats([]dataset.Trip{{StartTime: at("2017-03-05 08:10")}})

	assert.Contains(t, buf.String(), "Trip duration data not available for this selection")
}

func TestUserStats(t *testing.T) {
	r, buf := newTestReport(false)

	r.UserStats(sampleTable(), filter.Selection{City: "chicago", Month: "all", Day: "all"})

	out := buf.String()
	assert.Contains(t, out, "Total trips for selected data: 3\n")
	assert.Contains(t, out, "User Types:\nSubscriber    2\nCustomer      1\n")
	assert.Contains(t, out, "Gender:\nFemale    1\nMale      1\n")
	assert.Contains(t, out, "Birth Year:\nEarliest        1985\nMost recent     1990\nMost common     1990\n")
}

func TestUserStats_WashingtonHasNoDemographics(t *testing.T) {
	r, buf := newTestReport(false)
	table := sampleTable()
	table.HasGender = false
	table.HasBirthYear = false

	r.Cities = []string{"chicago", "new york city", "washington"}
	r.UserStats(table, filter.Selection{City: "washington", Month: "all", Day: "all"})

	out := buf.String()
	assert.Contains(t, out, "Gender data not available for this city")
	assert.Contains(t, out, "Birth year data not available for Washington, please select Chicago or New York City to view birth year data.")
	assert.NotContains(t, out, "Birth Year:")
}

func TestNoData(t *testing.T) {
	r, buf := newTestReport(false)

	r.NoData(filter.Selection{City: "chicago", Month: "june", Day: "sunday"})

	assert.Contains(t, buf.String(), "No trips found for Chicago with month June and day Sunday.")
}

func TestRawRows(t *testing.T) {
	r, buf := newTestReport(true)
	table := sampleTable()

	r.RawRows(table.Header, table.Trips[1:])

	out := buf.String()
	assert.Contains(t, out, "Unnamed: 0")
	assert.Contains(t, out, "Start Station")
	assert.Contains(t, out, "State St")
	assert.Contains(t, out, "2017-03-06 17:00:00")
	assert.NotContains(t, out, "Canal St & Adams")
	assert.NotContains(t, out, "\x1b[", "buffers are not terminals, so no ANSI codes even with color on")
}
