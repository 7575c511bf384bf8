// Package explorer runs the interactive bikeshare session.
package explorer

import (
	"errors"
	"fmt"
	"io"
	"time"

	"bikeshare/internal/dataset"
	"bikeshare/internal/filter"
	"bikeshare/internal/logger"
	"bikeshare/internal/prompt"
	"bikeshare/internal/report"
	"bikeshare/internal/state"
)

// TableLoader returns the full dataset of a city.
type TableLoader interface {
	Load(city string) (*dataset.Table, error)
}

// Session holds everything one interactive run needs.
type Session struct {
	Prompter *prompt.Prompter
	Report   *report.Report
	Loader   TableLoader
	Cities   []string
	PageSize int
	State    *state.State // optional; records the last selection
}

// Describe filters t by sel and prints the selection summary followed by
// the four statistics blocks. It returns the filtered table.
func Describe(r *report.Report, t *dataset.Table, sel filter.Selection) *dataset.Table {
	// Narrow the city table down to the chosen month and day
	filtered := filter.Apply(t, sel)
	logger.Debug("[DEBUG] %d of %d trips match %+v\n", filtered.Len(), t.Len(), sel)

	// Echo the selection, then bail out early when nothing matched
	r.Selection(sel)
	if filtered.Len() == 0 {
		r.NoData(sel)
		return filtered
	}

	// Print the four statistics blocks in order
	r.TimeStats(filtered.Trips, sel)
	r.StationStats(filtered.Trips)
	r.TripDurationStats(filtered.Trips)
	r.UserStats(filtered, sel)
	return filtered
}

// Run loops over selections until the user declines to restart or input
// ends. Running out of input is a normal way to finish, not an error.
func (s *Session) Run() error {
	for {
		// Ask for city, month and day
		sel, err := filter.GetFilters(s.Prompter, s.Cities)
		if err != nil {
			return endOfInput(err)
		}

		// Show statistics and raw rows for the selection
		if err := s.explore(sel); err != nil {
			return endOfInput(err)
		}

		// Anything other than "yes" ends the session
		again, err := s.Prompter.Confirm("\nWould you like to restart? Enter yes or type anything else to signal no.\n")
		if err != nil || !again {
			return endOfInput(err)
		}
	}
}

// explore loads, describes and pages through one selection. Load failures
// are reported and leave the session running so another city can be tried.
func (s *Session) explore(sel filter.Selection) error {
	t, err := s.Loader.Load(sel.City)
	if err != nil {
		logger.Error("[ERROR] Could not load data for %s: %v\n", filter.Title(sel.City), err)
		return nil
	}

	// Describe the selection and remember it for next time
	filtered := Describe(s.Report, t, sel)
	s.record(sel)

	if filtered.Len() == 0 {
		return nil
	}
	return s.page(filtered)
}

// page shows raw rows PageSize at a time while the user keeps saying yes.
func (s *Session) page(t *dataset.Table) error {
	// Fall back to five rows when no page size is configured
	size := s.PageSize
	if size <= 0 {
		size = 5
	}

	show, err := s.Prompter.Confirm(fmt.Sprintf(
		"Would you like to see %d rows of raw data? Enter yes or type anything else to signal no: ", size))
	row := 0
	for err == nil && show && row < t.Len() {
		end := min(row+size, t.Len())
		// Print the next page and advance the cursor
		s.Report.RawRows(t.Header, t.Trips[row:end])
		row = end

		if row >= t.Len() {
			_, _ = fmt.Fprintln(s.Prompter.Out(), "End of data.")
			break
		}
		show, err = s.Prompter.Confirm(fmt.Sprintf(
			"Would you like to see %d more rows of raw data? Enter yes or type anything else to signal no: ", size))
	}
	return err
}

func (s *Session) record(sel filter.Selection) {
	if s.State == nil {
		return
	}
	// Remember the latest selection and count it
	s.State.LastSelection = &state.Selection{City: sel.City, Month: sel.Month, Day: sel.Day, At: time.Now().UTC()}
	s.State.Sessions++
}

func endOfInput(err error) error {
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
