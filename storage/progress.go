package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"bms-tracker/models"
	"bms-tracker/utils"
)

// Progress file names inside the progress directory.
const (
	summaryFile = "movie_summary.json"
	fetchedFile = "fetched_venues.json"
	mergedFile  = "merged_venues.json"
	rawFile     = "venue_data.json"
)

// ProgressStore persists the run state as JSON documents, one file per
// logical component. Every write goes to a temporary file first and is
// renamed into place, so a crash mid-write never corrupts the last good
// state. Files are single-writer: this process owns them exclusively.
type ProgressStore struct {
	dir    string
	logger *utils.Logger
	retry  *utils.RetryConfig
}

// NewProgressStore creates the progress directory if needed and returns a
// store writing into it. Writes are retried up to maxRetries times before a
// flush is treated as fatal.
func NewProgressStore(dir string, maxRetries int, logger *utils.Logger) (*ProgressStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("progress: create dir %q: %w", dir, err)
	}
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &ProgressStore{
		dir:    dir,
		logger: logger,
		retry: &utils.RetryConfig{
			MaxAttempts: maxRetries,
			BaseDelay:   100 * time.Millisecond,
			Logger:      logger,
		},
	}, nil
}

// Flush durably persists every component of the state. Any error is fatal to
// the caller: silently losing the merged-venue guard would double-count
// venues on the next resume.
func (p *ProgressStore) Flush(state *models.ProgressState) error {
	if err := p.writeJSON(summaryFile, state.Summary); err != nil {
		return err
	}
	if err := p.writeJSON(fetchedFile, sortedCodes(state.Fetched)); err != nil {
		return err
	}
	if err := p.writeJSON(mergedFile, sortedCodes(state.Merged)); err != nil {
		return err
	}
	return p.writeJSON(rawFile, state.Raw)
}

// Load rebuilds the state from whichever progress files exist. Missing or
// corrupt files become empty containers instead of failing the load.
func (p *ProgressStore) Load() *models.ProgressState {
	state := models.NewProgressState()

	if ok := p.readJSON(summaryFile, &state.Summary); !ok {
		state.Summary = make(map[string]*models.MovieSummary)
	}
	if ok := p.readJSON(rawFile, &state.Raw); !ok {
		state.Raw = make(map[string]models.VenueShows)
	}

	var fetched, merged []string
	if p.readJSON(fetchedFile, &fetched) {
		for _, code := range fetched {
			state.Fetched[code] = true
		}
	}
	if p.readJSON(mergedFile, &merged) {
		for _, code := range merged {
			state.Merged[code] = true
		}
	}

	return state
}

// writeJSON marshals v and atomically replaces the named progress file.
func (p *ProgressStore) writeJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("progress: marshal %s: %w", name, err)
	}

	path := filepath.Join(p.dir, name)
	tmp := path + ".tmp"

	err = p.retry.Do("flush "+name, func() error {
		if err := os.WriteFile(tmp, data, 0644); err != nil {
			return err
		}
		return os.Rename(tmp, path)
	})
	if err != nil {
		return fmt.Errorf("progress: write %s: %w", name, err)
	}
	return nil
}

// readJSON loads the named progress file into v, reporting whether v now
// holds usable data.
func (p *ProgressStore) readJSON(name string, v any) bool {
	path := filepath.Join(p.dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			p.logger.Warn("[progress] Could not read %s: %v — starting empty", name, err)
		}
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		p.logger.Warn("[progress] Corrupt %s: %v — starting empty", name, err)
		return false
	}
	return true
}

func sortedCodes(set map[string]bool) []string {
	codes := make([]string, 0, len(set))
	for code := range set {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
