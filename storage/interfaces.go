package storage

import "bms-tracker/models"

// SummaryWriter is the interface any summary storage backend must satisfy.
type SummaryWriter interface {
	WriteSummary(summary map[string]*models.MovieSummary) error
	Close() error
}
