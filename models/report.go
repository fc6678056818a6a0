package models

import "time"

// SummaryRow is the flat, movie-level projection of a MovieSummary as
// stored in PostgreSQL.
type SummaryRow struct {
	ID          int64
	Movie       string
	Shows       int
	Gross       float64
	Sold        int
	TotalSeats  int
	Occupancy   float64
	Venues      int
	Cities      int
	Fastfilling int
	Housefull   int
	CreatedAt   time.Time
}

// ReportRow is one line of a derived rollup report (by title+language or by
// title only). Display-only: nothing authoritative is computed from it.
type ReportRow struct {
	Label      string
	Shows      int
	Gross      float64
	Sold       int
	TotalSeats int
	ATP        float64
	Occupancy  float64
	ShortGross string
}
