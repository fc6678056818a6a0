package services

import (
	"bms-tracker/models"
	"bms-tracker/utils"
)

// Aggregator folds newly fetched per-venue show data into the running
// multi-level summary (movie → city/state → chain).
//
// Merge requires single-writer discipline: the caller must hold exclusive
// access to the state for the duration of the call. The merged-venue set is
// the at-most-once guard, so merge order across venues does not affect the
// final aggregate.
type Aggregator struct {
	logger *utils.Logger
}

// NewAggregator creates an Aggregator with the given logger.
func NewAggregator(logger *utils.Logger) *Aggregator {
	return &Aggregator{logger: logger}
}

// Merge applies one venue's fetched shows to the summary. A venue already in
// the merged set is a no-op; a venue with no shows is still marked merged
// (fetched-but-empty is terminal, never retried).
func (a *Aggregator) Merge(state *models.ProgressState, venueCode string, meta models.VenueMeta, fresh models.VenueShows) {
	if state.Merged[venueCode] {
		a.logger.Debug("[aggregator] Venue %s already merged — skipping", venueCode)
		return
	}

	city, st := meta.City, meta.State
	if city == "" {
		city = "Unknown"
	}
	if st == "" {
		st = "Unknown"
	}

	for movieKey, shows := range fresh {
		summary, ok := state.Summary[movieKey]
		if !ok {
			summary = models.NewMovieSummary()
			state.Summary[movieKey] = summary
		}

		// One venue increment per (venue, movie) pair present in the fetch,
		// even when the pair carries zero shows.
		summary.Venues++

		cityBlock := summary.CityBlock(city, st)
		chainBlock := summary.ChainBlock(venueChain(shows, meta))

		cityBlock.Venues++
		chainBlock.Venues++

		for _, show := range shows {
			summary.AddShow(show)
			cityBlock.AddShow(show)
			chainBlock.AddShow(show)
		}

		summary.Recompute()
		cityBlock.Recompute()
		chainBlock.Recompute()
	}

	state.Merged[venueCode] = true
}

// venueChain attributes a venue-movie pair to a theatre chain. The chain of
// the first show wins; a venue is assumed to belong to a single chain.
func venueChain(shows []*models.ShowRecord, meta models.VenueMeta) string {
	if len(shows) > 0 && shows[0].Chain != "" {
		return shows[0].Chain
	}
	if meta.Chain != "" {
		return meta.Chain
	}
	return "Unknown"
}
