package orchestrator

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"bms-tracker/catalog"
	"bms-tracker/config"
	"bms-tracker/models"
	"bms-tracker/services"
	"bms-tracker/storage"
	"bms-tracker/utils"
)

// Fetcher retrieves one venue's shows grouped by movie key. An empty map
// with a nil error means "fetched, nothing to merge".
type Fetcher interface {
	FetchVenue(venueCode string) (models.VenueShows, error)
}

// Orchestrator drives the concurrent fetch of all catalog venues, folds each
// completed fetch into the shared progress state, and write-through flushes
// after every venue so the run can resume from disk at any point.
//
// All shared state (the progress state and the error counter) is guarded by
// one mutex. Network fetches run outside it; only merge-and-flush is
// serialized, which keeps the aggregator effectively single-threaded.
type Orchestrator struct {
	cfg        *config.Config
	logger     *utils.Logger
	fetcher    Fetcher
	venues     catalog.Catalog
	store      *storage.ProgressStore
	aggregator *services.Aggregator

	mu       sync.Mutex
	state    *models.ProgressState
	errCount int
	tripped  bool
	flushErr error
}

// New creates an Orchestrator over the given venue catalog.
func New(cfg *config.Config, logger *utils.Logger, fetcher Fetcher, venues catalog.Catalog, store *storage.ProgressStore) *Orchestrator {
	return &Orchestrator{
		cfg:        cfg,
		logger:     logger,
		fetcher:    fetcher,
		venues:     venues,
		store:      store,
		aggregator: services.NewAggregator(logger),
	}
}

// Run executes fetch rounds until every venue has a completed fetch attempt.
// When the cumulative error count of a round reaches the configured
// threshold, the current state is flushed, the worker pool is torn down, and
// after a short delay a fresh round starts from the reloaded persisted state.
// The restart budget bounds how many times this can happen; the state
// accumulated so far is always returned, even alongside an error.
func (o *Orchestrator) Run() (*models.ProgressState, error) {
	for round := 1; ; round++ {
		state := o.store.Load()

		o.mu.Lock()
		o.state = state
		o.errCount = 0
		o.tripped = false
		o.flushErr = nil
		o.mu.Unlock()

		pending := o.pendingVenues(state)
		if len(pending) == 0 {
			o.logger.Info("[orchestrator] All %d venues already fetched — nothing to do", len(o.venues))
			return state, nil
		}

		o.logger.Info("[orchestrator] Round %d — %d venues pending (%d fetched), %d workers",
			round, len(pending), len(state.Fetched), o.cfg.MaxConcurrency)

		tripped, err := o.runRound(pending)
		if err != nil {
			return o.snapshot(), err
		}
		if !tripped {
			return o.snapshot(), nil
		}

		if round-1 >= o.cfg.MaxRestarts {
			return o.snapshot(), fmt.Errorf("orchestrator: error threshold reached again — giving up after %d restarts", o.cfg.MaxRestarts)
		}

		o.logger.Warn("[orchestrator] Restarting worker pool (restart %d/%d)", round, o.cfg.MaxRestarts)
		time.Sleep(time.Duration(o.cfg.RestartDelayMs) * time.Millisecond)
	}
}

// runRound dispatches one fetch per pending venue into a fresh worker pool
// and drains it. Reports whether the error threshold tripped, and any fatal
// persistence error.
func (o *Orchestrator) runRound(pending []string) (bool, error) {
	pool := utils.NewWorkerPool(o.cfg.MaxConcurrency, o.cfg.RateLimitMs)

	for _, code := range pending {
		code := code
		pool.Submit(func() {
			o.fetchVenue(code)
		})
	}
	pool.Wait()

	o.mu.Lock()
	defer o.mu.Unlock()
	return o.tripped, o.flushErr
}

func (o *Orchestrator) fetchVenue(code string) {
	o.mu.Lock()
	if o.tripped || o.flushErr != nil || o.state.Fetched[code] {
		o.mu.Unlock()
		return
	}
	o.mu.Unlock()

	data, err := o.fetcher.FetchVenue(code)

	o.mu.Lock()
	defer o.mu.Unlock()

	// The round may have tripped while this fetch was in flight; the venue
	// stays unfetched and is retried in the next round.
	if o.tripped || o.flushErr != nil {
		return
	}

	if err != nil {
		o.errCount++
		o.logger.Warn("[orchestrator] Fetch failed for %s (error %d/%d): %v",
			code, o.errCount, o.cfg.MaxErrors, err)
		if o.errCount >= o.cfg.MaxErrors {
			o.tripped = true
			o.logger.Warn("[orchestrator] Too many errors — flushing progress and tearing down the pool")
			if ferr := o.store.Flush(o.state); ferr != nil {
				o.flushErr = ferr
			}
		}
		return
	}

	meta := o.venues.Meta(code)
	o.aggregator.Merge(o.state, code, meta, data)
	if len(data) > 0 {
		o.state.Raw[code] = data
	}
	o.state.Fetched[code] = true

	o.logger.Info("[orchestrator] Fetched venue %s (%d/%d)", code, len(o.state.Fetched), len(o.venues))

	if ferr := o.store.Flush(o.state); ferr != nil {
		o.flushErr = ferr
		o.logger.Error("[orchestrator] Progress flush failed for %s: %v", code, ferr)
	}
}

// pendingVenues lists catalog venues without a completed fetch attempt, in
// stable order.
func (o *Orchestrator) pendingVenues(state *models.ProgressState) []string {
	pending := make([]string, 0, len(o.venues))
	for code := range o.venues {
		if !state.Fetched[code] {
			pending = append(pending, code)
		}
	}
	sort.Strings(pending)
	return pending
}

func (o *Orchestrator) snapshot() *models.ProgressState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}
