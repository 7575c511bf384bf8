package state

import (
	"encoding/json" // For JSON encoding and decoding of the state file
	"os"            // For file system operations like reading and writing files
	"time"

	"bikeshare/internal/logger"
)

// Selection is the last city/month/day combination a user explored.
type Selection struct {
	City  string    `json:"city"`
	Month string    `json:"month"`
	Day   string    `json:"day"`
	At    time.Time `json:"at"`
}

// DatasetState records a dataset downloaded by `bikeshare fetch`.
type DatasetState struct {
	URL       string    `json:"url"`        // URL the file was fetched from
	Path      string    `json:"path"`       // Absolute path of the stored file
	Bytes     int64     `json:"bytes"`      // Size written to disk
	FetchedAt time.Time `json:"fetched_at"` // When the download completed
}

// State holds everything the tool remembers between runs.
type State struct {
	LastSelection *Selection              `json:"last_selection,omitempty"`
	Sessions      int                     `json:"sessions"` // Selections explored so far
	Datasets      map[string]DatasetState `json:"datasets"` // Keyed by city name
}

// LoadState loads the saved state from a JSON file at the given path.
// If the file does not exist or cannot be read, it returns a new empty State.
func LoadState(path string) *State {
	file, err := os.ReadFile(path)
	if err != nil {
		logger.Debug("[DEBUG] No state at %s: %v\n", path, err)
		return &State{Datasets: make(map[string]DatasetState)}
	}

	var st State
	if err := json.Unmarshal(file, &st); err != nil {
		logger.Warn("[WARN] Ignoring unreadable state file %s: %v\n", path, err)
		return &State{Datasets: make(map[string]DatasetState)}
	}

	// JSON may contain null for the map
	if st.Datasets == nil {
		st.Datasets = make(map[string]DatasetState)
	}

	return &st
}

// SaveState writes the given State to a JSON file at the given path.
// Errors during marshalling or writing are logged but not propagated.
func SaveState(path string, st *State) {
	file, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		logger.Error("[ERROR] Failed to marshal state: %v\n", err)
		return
	}

	logger.Debug("[DEBUG] Writing state to %s:\n%s\n", path, string(file))

	if err := os.WriteFile(path, file, 0644); err != nil {
		logger.Error("[ERROR] Failed to write state file %s: %v\n", path, err)
	}
}
