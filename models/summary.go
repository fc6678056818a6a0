package models

// Occupancy classification bands, applied per show.
const (
	HousefullPct   = 98.0
	FastfillingPct = 50.0
)

// Rollup is one aggregation bucket of summed counters with a derived
// occupancy. The same shape is used at movie, city and chain granularity.
type Rollup struct {
	Venues      int     `json:"venues"`
	Shows       int     `json:"shows"`
	Gross       float64 `json:"gross"`
	Sold        int     `json:"sold"`
	TotalSeats  int     `json:"totalSeats"`
	Fastfilling int     `json:"fastfilling"`
	Housefull   int     `json:"housefull"`
	Occupancy   float64 `json:"occupancy"`
}

// AddShow folds a single show's counters into the bucket and classifies it
// as housefull or fastfilling. Classification uses the show's own sold/total,
// never the running aggregate. Occupancy is NOT updated here; callers must
// Recompute after folding.
func (r *Rollup) AddShow(s *ShowRecord) {
	r.Shows++
	r.Gross += s.Gross
	r.Sold += s.Sold
	r.TotalSeats += s.Total

	occ := 0.0
	if s.Total > 0 {
		occ = float64(s.Sold) / float64(s.Total) * 100
	}
	switch {
	case occ >= HousefullPct:
		r.Housefull++
	case occ >= FastfillingPct:
		r.Fastfilling++
	}
}

// Recompute derives occupancy from the current sold/totalSeats counters.
// Occupancy is never stored independently of its inputs.
func (r *Rollup) Recompute() {
	if r.TotalSeats > 0 {
		r.Occupancy = Round2(float64(r.Sold) / float64(r.TotalSeats) * 100)
	} else {
		r.Occupancy = 0
	}
}

// CityRollup aggregates one (city, state) pair within a movie summary.
type CityRollup struct {
	City  string `json:"city"`
	State string `json:"state"`
	Rollup
}

// ChainRollup aggregates one theatre chain within a movie summary.
type ChainRollup struct {
	Chain string `json:"chain"`
	Rollup
}

// MovieSummary is the top-level aggregate for one movie key, with city-level
// and chain-level breakdowns. City and chain blocks are appended on first
// encounter and never removed.
type MovieSummary struct {
	Rollup
	Cities       int            `json:"cities"`
	Details      []*CityRollup  `json:"details"`
	ChainDetails []*ChainRollup `json:"chain_details"`
}

// NewMovieSummary returns a zero-initialized summary with empty breakdowns.
func NewMovieSummary() *MovieSummary {
	return &MovieSummary{
		Details:      make([]*CityRollup, 0),
		ChainDetails: make([]*ChainRollup, 0),
	}
}

// CityBlock returns the block for the given (city, state) pair, creating and
// appending it (and bumping the cities counter) if it does not exist yet.
func (m *MovieSummary) CityBlock(city, state string) *CityRollup {
	for _, d := range m.Details {
		if d.City == city && d.State == state {
			return d
		}
	}
	block := &CityRollup{City: city, State: state}
	m.Details = append(m.Details, block)
	m.Cities++
	return block
}

// ChainBlock returns the block for the given chain, creating and appending
// it if it does not exist yet.
func (m *MovieSummary) ChainBlock(chain string) *ChainRollup {
	for _, d := range m.ChainDetails {
		if d.Chain == chain {
			return d
		}
	}
	block := &ChainRollup{Chain: chain}
	m.ChainDetails = append(m.ChainDetails, block)
	return block
}

// Round2 rounds to two decimal places, half away from zero.
func Round2(f float64) float64 {
	if f < 0 {
		return -float64(int(-f*100+0.5)) / 100
	}
	return float64(int(f*100+0.5)) / 100
}
