package explorer

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bikeshare/internal/dataset"
	"bikeshare/internal/filter"
	"bikeshare/internal/prompt"
	"bikeshare/internal/report"
	"bikeshare/internal/state"
)

type stubLoader struct {
	tables map[string]*dataset.Table
	calls  []string
}

func (l *stubLoader) Load(city string) (*dataset.Table, error) {
	l.calls = append(l.calls, city)
	t, ok := l.tables[city]
	if !ok {
		return nil, fmt.Errorf("%w %q", dataset.ErrUnknownCity, city)
	}
	return t, nil
}

// marchTable holds n monday trips in march 2017, numbered from 1.
func marchTable(n int) *dataset.Table {
	t := &dataset.Table{
		Name:        "chicago",
		Header:      []string{"", "Start Time", "Trip Duration", "Start Station", "End Station", "User Type"},
		HasUserType: true,
	}
	start := time.Date(2017, time.March, 6, 8, 0, 0, 0, time.UTC)
	for i := 1; i <= n; i++ {
		id := fmt.Sprintf("row-%02d", i)
		t.Trips = append(t.Trips, dataset.Trip{
			StartTime:    start,
			Duration:     60,
			HasDuration:  true,
			StartStation: "Canal St",
			EndStation:   "Clark St",
			UserType:     "Subscriber",
			Raw:          []string{id, start.Format("2006-01-02 15:04:05"), "60", "Canal St", "Clark St", "Subscriber"},
		})
	}
	return t
}

func newSession(input string, loader TableLoader) (*Session, *bytes.Buffer) {
	var out bytes.Buffer
	rep := report.New(&out, false)
	rep.Since = func(time.Time) time.Duration { return 0 }
	return &Session{
		Prompter: prompt.New(strings.NewReader(input), &out),
		Report:   rep,
		Loader:   loader,
		Cities:   []string{"chicago", "new york city", "washington"},
		PageSize: 5,
		State:    &state.State{Datasets: map[string]state.DatasetState{}},
	}, &out
}

func lines(answers ...string) string {
	return strings.Join(answers, "\n") + "\n"
}

func TestRun_SingleSelectionWithPaging(t *testing.T) {
	loader := &stubLoader{tables: map[string]*dataset.Table{"chicago": marchTable(12)}}
	s, out := newSession(lines(
		"chicago", "march", "monday",
		"yes", // rows 1-5
		"YES", // rows 6-10
		"no",  // stop paging
		"no",  // no restart
	), loader)

	require.NoError(t, s.Run())

	text := out.String()
	assert.Contains(t, text, " City  : Chicago\n Month : March\n Day   : Monday\n")
	assert.Contains(t, text, "Calculating The Most Frequent Times of Travel...")
	assert.Contains(t, text, "Calculating The Most Popular Stations and Trip...")
	assert.Contains(t, text, "Calculating Trip Duration...")
	assert.Contains(t, text, "Calculating User Stats...")
	assert.Contains(t, text, "Would you like to see 5 rows of raw data?")
	assert.Equal(t, 2, strings.Count(text, "Would you like to see 5 more rows of raw data?"))
	assert.Contains(t, text, "row-10")
	assert.NotContains(t, text, "row-11")
	assert.NotContains(t, text, "End of data.")
	assert.Contains(t, text, "Would you like to restart?")

	assert.Equal(t, []string{"chicago"}, loader.calls)
	require.NotNil(t, s.State.LastSelection)
	assert.Equal(t, "march", s.State.LastSelection.Month)
	assert.Equal(t, 1, s.State.Sessions)
}

func TestRun_PagingToEndOfData(t *testing.T) {
	loader := &stubLoader{tables: map[string]*dataset.Table{"chicago": marchTable(7)}}
	s, out := newSession(lines("chicago", "all", "all", "yes", "yes", "no"), loader)

	require.NoError(t, s.Run())

	text := out.String()
	assert.Contains(t, text, "row-07")
	assert.Contains(t, text, "End of data.")
	assert.Equal(t, 1, strings.Count(text, "more rows of raw data"))
}

func TestRun_RestartAndEmptySelection(t *testing.T) {
	loader := &stubLoader{tables: map[string]*dataset.Table{"chicago": marchTable(3)}}
	s, out := newSession(lines(
		"chicago", "june", "all", // nothing in june
		"yes", // restart
		"chicago", "all", "all",
		"no", // no raw data
		"no", // done
	), loader)

	require.NoError(t, s.Run())

	text := out.String()
	assert.Contains(t, text, "No trips found for Chicago with month June and day All.")
	assert.Equal(t, 1, strings.Count(text, "Calculating User Stats..."))
	assert.Equal(t, 2, strings.Count(text, "Hello! Let's explore some US bikeshare data!"))
	assert.Equal(t, 1, strings.Count(text, "rows of raw data?"), "no pager for an empty selection")
	assert.Equal(t, 2, s.State.Sessions)
}

func TestRun_LoadFailureKeepsSessionAlive(t *testing.T) {
	loader := &stubLoader{tables: map[string]*dataset.Table{}}
	s, out := newSession(lines("washington", "all", "all", "no"), loader)

	require.NoError(t, s.Run())

	assert.Contains(t, out.String(), "Would you like to restart?")
	assert.NotContains(t, out.String(), "Calculating")
	assert.Nil(t, s.State.LastSelection)
}

func TestRun_EOFEndsCleanly(t *testing.T) {
	loader := &stubLoader{tables: map[string]*dataset.Table{"chicago": marchTable(3)}}

	for _, input := range []string{"", "chicago\n", "chicago\nall\nall\n", "chicago\nall\nall\nyes\n"} {
		s, _ := newSession(input, loader)
		assert.NoError(t, s.Run(), "input %q", input)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("tty gone") }

func TestRun_ReadErrorIsReturned(t *testing.T) {
	s, _ := newSession("", &stubLoader{})
	s.Prompter = prompt.New(failingReader{}, &bytes.Buffer{})

	err := s.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tty gone")
}

func TestDescribe_ReturnsFilteredTable(t *testing.T) {
	var out bytes.Buffer
	rep := report.New(&out, false)

	got := Describe(rep, marchTable(4), filter.Selection{City: "chicago", Month: "march", Day: "tuesday"})

	assert.Zero(t, got.Len())
	assert.Contains(t, out.String(), "No trips found")
}
