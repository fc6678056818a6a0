package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"bms-tracker/models"
)

// PostgresWriter persists the final movie-level summary rows to PostgreSQL.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema migrations,
// and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn string) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS movie_summaries (
			id          SERIAL PRIMARY KEY,
			movie       TEXT          UNIQUE NOT NULL,
			shows       INT           NOT NULL DEFAULT 0,
			gross       NUMERIC(14,2) NOT NULL DEFAULT 0,
			sold        INT           NOT NULL DEFAULT 0,
			total_seats INT           NOT NULL DEFAULT 0,
			occupancy   NUMERIC(5,2)  NOT NULL DEFAULT 0,
			venues      INT           NOT NULL DEFAULT 0,
			cities      INT           NOT NULL DEFAULT 0,
			fastfilling INT           NOT NULL DEFAULT 0,
			housefull   INT           NOT NULL DEFAULT 0,
			created_at  TIMESTAMPTZ   NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_movie_summaries_gross     ON movie_summaries(gross);
		CREATE INDEX IF NOT EXISTS idx_movie_summaries_occupancy ON movie_summaries(occupancy);
	`)
	return err
}

// Clear deletes all existing summary rows from the table.
func (pw *PostgresWriter) Clear() error {
	_, err := pw.db.Exec("DELETE FROM movie_summaries")
	if err != nil {
		return fmt.Errorf("postgres: clear: %w", err)
	}
	return nil
}

// WriteSummary batch-inserts one row per movie, clearing old data first.
func (pw *PostgresWriter) WriteSummary(summary map[string]*models.MovieSummary) error {
	if len(summary) == 0 {
		return nil
	}

	if err := pw.Clear(); err != nil {
		return err
	}

	movies := moviesByGross(summary)
	const batchSize = 50
	for i := 0; i < len(movies); i += batchSize {
		end := i + batchSize
		if end > len(movies) {
			end = len(movies)
		}
		if err := pw.insertBatch(movies[i:end], summary); err != nil {
			return err
		}
	}
	return nil
}

func (pw *PostgresWriter) insertBatch(movies []string, summary map[string]*models.MovieSummary) error {
	valueStrings := make([]string, 0, len(movies))
	valueArgs := make([]interface{}, 0, len(movies)*10)

	for idx, movie := range movies {
		s := summary[movie]
		base := idx * 10
		valueStrings = append(valueStrings,
			fmt.Sprintf("($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
				base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9, base+10))
		valueArgs = append(valueArgs,
			movie, s.Shows, s.Gross, s.Sold, s.TotalSeats, s.Occupancy,
			s.Venues, s.Cities, s.Fastfilling, s.Housefull)
	}

	query := fmt.Sprintf(`
		INSERT INTO movie_summaries (movie, shows, gross, sold, total_seats, occupancy,
		                             venues, cities, fastfilling, housefull)
		VALUES %s
		ON CONFLICT (movie) DO NOTHING
	`, strings.Join(valueStrings, ","))

	_, err := pw.db.Exec(query, valueArgs...)
	return err
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}

// FetchAll retrieves all stored summary rows, highest gross first.
func (pw *PostgresWriter) FetchAll() ([]*models.SummaryRow, error) {
	rows, err := pw.db.Query(`
		SELECT id, movie, shows, gross, sold, total_seats, occupancy,
		       venues, cities, fastfilling, housefull, created_at
		FROM movie_summaries
		ORDER BY gross DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch all: %w", err)
	}
	defer rows.Close()

	var result []*models.SummaryRow
	for rows.Next() {
		r := &models.SummaryRow{}
		if err := rows.Scan(
			&r.ID, &r.Movie, &r.Shows, &r.Gross, &r.Sold, &r.TotalSeats,
			&r.Occupancy, &r.Venues, &r.Cities, &r.Fastfilling, &r.Housefull,
			&r.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}
