package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"sync"

	"bms-tracker/models"
)

// CSVWriter exports the final movie summary to a CSV file, one row per
// movie variant. It is safe for concurrent use.
type CSVWriter struct {
	mu     sync.Mutex
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)

	if err := w.Write([]string{
		"movie", "shows", "gross", "sold", "total_seats", "occupancy",
		"venues", "cities", "fastfilling", "housefull",
	}); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}
	w.Flush()

	return &CSVWriter{file: f, writer: w}, nil
}

// WriteSummary writes one row per movie, sorted by gross descending.
func (c *CSVWriter) WriteSummary(summary map[string]*models.MovieSummary) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, movie := range moviesByGross(summary) {
		s := summary[movie]
		row := []string{
			movie,
			strconv.Itoa(s.Shows),
			strconv.FormatFloat(s.Gross, 'f', 2, 64),
			strconv.Itoa(s.Sold),
			strconv.Itoa(s.TotalSeats),
			strconv.FormatFloat(s.Occupancy, 'f', 2, 64),
			strconv.Itoa(s.Venues),
			strconv.Itoa(s.Cities),
			strconv.Itoa(s.Fastfilling),
			strconv.Itoa(s.Housefull),
		}
		if err := c.writer.Write(row); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	return c.file.Close()
}

// moviesByGross orders movie keys by gross descending, ties broken by key.
func moviesByGross(summary map[string]*models.MovieSummary) []string {
	movies := make([]string, 0, len(summary))
	for movie := range summary {
		movies = append(movies, movie)
	}
	sort.Slice(movies, func(i, j int) bool {
		gi, gj := summary[movies[i]].Gross, summary[movies[j]].Gross
		if gi != gj {
			return gi > gj
		}
		return movies[i] < movies[j]
	})
	return movies
}
