package models

import "testing"

func TestRollupAddShowAndRecompute(t *testing.T) {
	r := &Rollup{}
	r.AddShow(&ShowRecord{Total: 100, Sold: 98, Gross: 49000})
	r.AddShow(&ShowRecord{Total: 100, Sold: 50, Gross: 10000})
	r.AddShow(&ShowRecord{Total: 100, Sold: 49, Gross: 9800})
	r.AddShow(&ShowRecord{Total: 0, Sold: 0, Gross: 0})
	r.Recompute()

	if r.Shows != 4 {
		t.Errorf("shows: got %d, want 4", r.Shows)
	}
	if r.Housefull != 1 {
		t.Errorf("housefull: got %d, want 1", r.Housefull)
	}
	if r.Fastfilling != 1 {
		t.Errorf("fastfilling: got %d, want 1", r.Fastfilling)
	}
	if r.Sold != 197 || r.TotalSeats != 300 {
		t.Errorf("seats: got sold=%d total=%d", r.Sold, r.TotalSeats)
	}
	if r.Occupancy != 65.67 {
		t.Errorf("occupancy: got %.2f, want 65.67", r.Occupancy)
	}
}

func TestRollupRecomputeZeroSeats(t *testing.T) {
	r := &Rollup{Occupancy: 42}
	r.Recompute()
	if r.Occupancy != 0 {
		t.Errorf("occupancy with zero seats: got %.2f, want 0", r.Occupancy)
	}
}

func TestCityBlockDeduplicates(t *testing.T) {
	m := NewMovieSummary()

	a := m.CityBlock("Mumbai", "MH")
	b := m.CityBlock("Mumbai", "MH")
	if a != b {
		t.Error("same (city, state) should return the same block")
	}
	if m.Cities != 1 {
		t.Errorf("cities: got %d, want 1", m.Cities)
	}

	// Same city name in a different state is a distinct bucket.
	m.CityBlock("Aurangabad", "MH")
	m.CityBlock("Aurangabad", "BR")
	if m.Cities != 3 || len(m.Details) != 3 {
		t.Errorf("cities/details: got %d/%d, want 3/3", m.Cities, len(m.Details))
	}
}

func TestChainBlockDeduplicates(t *testing.T) {
	m := NewMovieSummary()

	a := m.ChainBlock("PVR")
	b := m.ChainBlock("PVR")
	if a != b {
		t.Error("same chain should return the same block")
	}
	m.ChainBlock("INOX")
	if len(m.ChainDetails) != 2 {
		t.Errorf("chain details: got %d, want 2", len(m.ChainDetails))
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{66.666666, 66.67},
		{60.0, 60.0},
		{0, 0},
		{99.994, 99.99},
		{97.9, 97.9},
	}

	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%v) = %v; want %v", tt.in, got, tt.want)
		}
	}
}
