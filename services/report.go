package services

import (
	"fmt"
	"sort"
	"strings"

	"bms-tracker/models"
	"bms-tracker/utils"
)

// ReportService derives display rollups from the final movie summary map.
// Ordering here is display-only and never written back to the summary.
type ReportService struct {
	logger *utils.Logger
}

// NewReportService creates a ReportService with the given logger.
func NewReportService(logger *utils.Logger) *ReportService {
	return &ReportService{logger: logger}
}

// ByTitleLanguage groups movie variants by (base title, language) and
// returns rows sorted by gross descending.
func (s *ReportService) ByTitleLanguage(summary map[string]*models.MovieSummary) []*models.ReportRow {
	type key struct{ title, lang string }
	buckets := make(map[key]*models.Rollup)

	for movieKey, stats := range summary {
		title, lang := models.SplitMovieKey(movieKey)
		k := key{title, lang}
		b, ok := buckets[k]
		if !ok {
			b = &models.Rollup{}
			buckets[k] = b
		}
		accumulate(b, &stats.Rollup)
	}

	rows := make([]*models.ReportRow, 0, len(buckets))
	for k, b := range buckets {
		rows = append(rows, buildRow(fmt.Sprintf("%s (%s)", k.title, k.lang), b))
	}
	sortByGross(rows)
	return rows
}

// ByTitle groups movie variants by base title only and returns rows sorted
// by gross descending.
func (s *ReportService) ByTitle(summary map[string]*models.MovieSummary) []*models.ReportRow {
	buckets := make(map[string]*models.Rollup)

	for movieKey, stats := range summary {
		title := models.BaseTitle(movieKey)
		b, ok := buckets[title]
		if !ok {
			b = &models.Rollup{}
			buckets[title] = b
		}
		accumulate(b, &stats.Rollup)
	}

	rows := make([]*models.ReportRow, 0, len(buckets))
	for title, b := range buckets {
		rows = append(rows, buildRow(title, b))
	}
	sortByGross(rows)
	return rows
}

// Print renders both rollups to the console.
func (s *ReportService) Print(langRows, titleRows []*models.ReportRow) {
	printDivider("Language-wise Summary")
	printRows("Movie (Lang)", langRows)

	printDivider("Movie-wise Summary")
	printRows("Movie", titleRows)
}

func accumulate(dst, src *models.Rollup) {
	dst.Shows += src.Shows
	dst.Gross += src.Gross
	dst.Sold += src.Sold
	dst.TotalSeats += src.TotalSeats
}

func buildRow(label string, b *models.Rollup) *models.ReportRow {
	atp := 0.0
	if b.Sold > 0 {
		atp = models.Round2(b.Gross / float64(b.Sold))
	}
	occ := 0.0
	if b.TotalSeats > 0 {
		occ = models.Round2(float64(b.Sold) / float64(b.TotalSeats) * 100)
	}
	return &models.ReportRow{
		Label:      label,
		Shows:      b.Shows,
		Gross:      models.Round2(b.Gross),
		Sold:       b.Sold,
		TotalSeats: b.TotalSeats,
		ATP:        atp,
		Occupancy:  occ,
		ShortGross: FormatGross(b.Gross),
	}
}

func sortByGross(rows []*models.ReportRow) {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Gross != rows[j].Gross {
			return rows[i].Gross > rows[j].Gross
		}
		return rows[i].Label < rows[j].Label
	})
}

// FormatGross abbreviates an amount in Indian units (Cr/L/K).
func FormatGross(value float64) string {
	switch {
	case value >= 1e7:
		return fmt.Sprintf("%.2f Cr", value/1e7)
	case value >= 1e5:
		return fmt.Sprintf("%.2f L", value/1e5)
	case value >= 1e3:
		return fmt.Sprintf("%.2f K", value/1e3)
	default:
		return fmt.Sprintf("%.2f", value)
	}
}

func printDivider(title string) {
	line := strings.Repeat("─", 25)
	fmt.Printf("\n%s ✦ %s ✦ %s\n\n", line, title, line)
}

func printRows(labelHeader string, rows []*models.ReportRow) {
	fmt.Printf("  %-44s %6s %14s %9s %11s %9s %7s %10s\n",
		labelHeader, "Shows", "Gross", "Sold", "TotalSeats", "ATP", "Occ%", "RGross")
	fmt.Printf("  %s\n", strings.Repeat("─", 116))

	if len(rows) == 0 {
		fmt.Printf("  No data\n")
		return
	}

	for _, r := range rows {
		fmt.Printf("  %-44s %6d %14.2f %9d %11d %9.2f %7.2f %10s\n",
			truncate(r.Label, 42), r.Shows, r.Gross, r.Sold, r.TotalSeats, r.ATP, r.Occupancy, r.ShortGross)
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
