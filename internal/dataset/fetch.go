package dataset

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"bikeshare/internal/config"
	"bikeshare/internal/logger"
	"bikeshare/internal/state"
)

// ErrNoURL is returned when fetching a city without a configured url.
var ErrNoURL = errors.New("no url configured")

// Download fetches url and stores it at destPath, returning the bytes
// written. Data goes to a temporary file first so an interrupted download
// never leaves a truncated dataset behind.
func Download(ctx context.Context, client *http.Client, url, destPath string) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build request for %s: %w", url, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to GET %s: %w", url, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logger.Error("[ERROR] Failed to close response body: %s\n", cerr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("failed to GET %s: %s", url, resp.Status)
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return 0, fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp := destPath + ".part"
	out, err := os.Create(tmp)
	if err != nil {
		return 0, fmt.Errorf("failed to create file %s: %w", tmp, err)
	}

	n, err := io.Copy(out, resp.Body)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmp)
		return 0, fmt.Errorf("failed to write response to file: %w", err)
	}

	if err := os.Rename(tmp, destPath); err != nil {
		os.Remove(tmp)
		return 0, fmt.Errorf("failed to move %s into place: %w", destPath, err)
	}

	logger.Debug("[DEBUG] Downloaded %s (%d bytes) to: %s\n", url, n, destPath)
	return n, nil
}

// FetchResult reports the outcome of fetching one city.
type FetchResult struct {
	City    string
	Path    string
	Bytes   int64
	Skipped bool // already present and recorded in state
	Err     error
}

// Fetcher downloads configured city datasets into the data directory.
type Fetcher struct {
	Config config.Config
	Client *http.Client
	Force  bool // re-download even when state says the file is current
}

// Fetch downloads the named cities (all configured cities with a url when
// names is empty) concurrently and records successful downloads in st.
// Results are returned sorted by city name.
func (f *Fetcher) Fetch(ctx context.Context, names []string, st *state.State) ([]FetchResult, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	// Resolve the cities to fetch, each at most once
	var targets []config.City
	seen := make(map[string]bool)
	if len(names) == 0 {
		for _, c := range f.Config.Cities {
			if c.URL != "" && !seen[c.Name] {
				seen[c.Name] = true
				targets = append(targets, c)
			}
		}
	} else {
		for _, name := range names {
			c, ok := f.Config.Lookup(name)
			if !ok {
				return nil, fmt.Errorf("%w %q", ErrUnknownCity, name)
			}
			if seen[c.Name] {
				continue
			}
			seen[c.Name] = true
			targets = append(targets, c)
		}
	}

	logger.Debug("[DEBUG] Fetching %d datasets, state has %d entries\n", len(targets), len(st.Datasets))

	// Every city owns one result slot, so goroutines never share a write
	results := make([]FetchResult, len(targets))
	var pending []int

	// Settle cities that need no download before any goroutine touches state
	for i, city := range targets {
		path := f.Config.DatasetPath(city)
		results[i] = FetchResult{City: city.Name, Path: path}

		if city.URL == "" {
			results[i].Err = ErrNoURL
			continue
		}

		if prev, ok := st.Datasets[city.Name]; ok && !f.Force && prev.URL == city.URL && fileExists(path) {
			logger.Info("[INFO] %s dataset is current. Skipping.\n", city.Name)
			results[i].Bytes = prev.Bytes
			results[i].Skipped = true
			continue
		}

		pending = append(pending, i)
	}

	var mu sync.Mutex // guards st.Datasets
	var wg sync.WaitGroup

	// Download the rest concurrently
	for _, i := range pending {
		wg.Add(1)
		go func(res *FetchResult, url string) {
			defer wg.Done()

			res.Bytes, res.Err = Download(ctx, client, url, res.Path)
			if res.Err != nil {
				logger.Error("[ERROR] Failed to fetch %s: %v\n", res.City, res.Err)
				return
			}
			logger.Info("[INFO] Fetched %s (%d bytes)\n", res.City, res.Bytes)

			mu.Lock()
			defer mu.Unlock()
			st.Datasets[res.City] = state.DatasetState{
				URL:       url,
				Path:      res.Path,
				Bytes:     res.Bytes,
				FetchedAt: time.Now().UTC(),
			}
		}(&results[i], targets[i].URL)
	}

	wg.Wait()

	sort.Slice(results, func(i, j int) bool { return results[i].City < results[j].City })
	return results, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
