package models

// ProgressState is the single source of truth for a run. It is shared
// between the orchestrator and the aggregator and guarded by one mutex
// owned by the orchestrator; nothing in here locks.
type ProgressState struct {
	// Summary maps movie key to its running multi-level aggregate.
	Summary map[string]*MovieSummary
	// Fetched holds venue codes whose fetch attempt completed, success or empty.
	Fetched map[string]bool
	// Merged holds venue codes already folded into Summary. This is the
	// at-most-once guard that makes restarts safe.
	Merged map[string]bool
	// Raw caches each venue's fetched shows for reprocessing and audit.
	Raw map[string]VenueShows
}

// NewProgressState returns an empty state with all containers allocated.
func NewProgressState() *ProgressState {
	return &ProgressState{
		Summary: make(map[string]*MovieSummary),
		Fetched: make(map[string]bool),
		Merged:  make(map[string]bool),
		Raw:     make(map[string]VenueShows),
	}
}
