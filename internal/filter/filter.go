// Package filter collects and applies the city/month/day selection.
package filter

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"bikeshare/internal/dataset"
	"bikeshare/internal/prompt"
)

// All disables the month or day filter.
const All = "all"

// Separator closes every section of output.
var Separator = strings.Repeat("-", 40)

// Months covered by the bikeshare datasets.
var Months = []string{"january", "february", "march", "april", "may", "june"}

// Days of the week, Monday first.
var Days = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// ErrInvalidSelection is returned by Validate.
var ErrInvalidSelection = errors.New("invalid selection")

// Selection is what the user chose to analyze. Month and Day are either a
// lower-case name or All.
type Selection struct {
	City  string
	Month string
	Day   string
}

// Normalize lower-cases and trims every field.
func (s Selection) Normalize() Selection {
	return Selection{
		City:  strings.ToLower(strings.TrimSpace(s.City)),
		Month: strings.ToLower(strings.TrimSpace(s.Month)),
		Day:   strings.ToLower(strings.TrimSpace(s.Day)),
	}
}

// Validate checks a normalized selection against the known cities.
func (s Selection) Validate(cities []string) error {
	if !slices.Contains(cities, s.City) {
		return fmt.Errorf("%w: city %q (choose from %s)", ErrInvalidSelection, s.City, strings.Join(cities, ", "))
	}
	if s.Month != All && !slices.Contains(Months, s.Month) {
		return fmt.Errorf("%w: month %q (choose all or january to june)", ErrInvalidSelection, s.Month)
	}
	if s.Day != All && !slices.Contains(Days, s.Day) {
		return fmt.Errorf("%w: day %q (choose all or a day of the week)", ErrInvalidSelection, s.Day)
	}
	return nil
}

var titleCaser = cases.Title(language.English)

// Title capitalizes each word, e.g. "new york city" -> "New York City".
func Title(s string) string {
	return titleCaser.String(s)
}

// listCities renders city names for prompts: "A, B, C" and "A, B, or C".
func listCities(cities []string) (plain, or string) {
	titled := make([]string, len(cities))
	for i, c := range cities {
		titled[i] = Title(c)
	}
	plain = strings.Join(titled, ", ")
	switch len(titled) {
	case 0:
		return "", ""
	case 1:
		return plain, plain
	case 2:
		return plain, titled[0] + " or " + titled[1]
	default:
		return plain, strings.Join(titled[:len(titled)-1], ", ") + ", or " + titled[len(titled)-1]
	}
}

// JoinOr title-cases cities and joins them for a sentence ("A or B",
// "A, B, or C").
func JoinOr(cities []string) string {
	_, or := listCities(cities)
	return or
}

// GetFilters asks the user for a city, month and day, re-prompting until
// each answer is valid.
func GetFilters(p *prompt.Prompter, cities []string) (Selection, error) {
	out := p.Out()
	_, _ = fmt.Fprintln(out, "Hello! Let's explore some US bikeshare data!")

	plain, or := listCities(cities)
	city, err := p.Choose(
		fmt.Sprintf("Please provide the city of your choice. (%s): ", plain),
		cities,
		fmt.Sprintf("Invalid city entry - Please choose from %s.", or),
	)
	if err != nil {
		return Selection{}, err
	}

	month, err := p.Choose(
		"Please provide the month selection of your choice. (January, February, March, April, May, June, or 'All'): ",
		append(slices.Clone(Months), All),
		"Invalid selection. Please select 'all' or a month from January to June.",
	)
	if err != nil {
		return Selection{}, err
	}

	day, err := p.Choose(
		"Please select a day of the week or 'all': ",
		append(slices.Clone(Days), All),
		"Invalid selection. Please choose 'all' or a day of the week.",
	)
	if err != nil {
		return Selection{}, err
	}

	_, _ = fmt.Fprintln(out, Separator)
	return Selection{City: city, Month: month, Day: day}, nil
}

// Apply returns the trips of t that match the month and day of s.
func Apply(t *dataset.Table, s Selection) *dataset.Table {
	if s.Month == All && s.Day == All {
		return t
	}
	return t.Where(func(trip dataset.Trip) bool {
		if s.Month != All && trip.Month() != s.Month {
			return false
		}
		if s.Day != All && trip.Weekday() != s.Day {
			return false
		}
		return true
	})
}
