package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"bms-tracker/models"
	"bms-tracker/services"
	"bms-tracker/utils"
)

func newTestStore(t *testing.T) *ProgressStore {
	t.Helper()
	store, err := NewProgressStore(t.TempDir(), 1, utils.NewLogger())
	if err != nil {
		t.Fatal(err)
	}
	return store
}

func sampleState() *models.ProgressState {
	state := models.NewProgressState()
	summary := models.NewMovieSummary()
	summary.AddShow(&models.ShowRecord{Total: 100, Sold: 60, Gross: 30000})
	summary.Venues = 1
	summary.Recompute()
	city := summary.CityBlock("Mumbai", "MH")
	city.AddShow(&models.ShowRecord{Total: 100, Sold: 60, Gross: 30000})
	city.Venues = 1
	city.Recompute()
	state.Summary["Inception [IMAX | English]"] = summary
	state.Fetched["PVR-101"] = true
	state.Merged["PVR-101"] = true
	state.Raw["PVR-101"] = models.VenueShows{
		"Inception [IMAX | English]": {{VenueCode: "PVR-101", Total: 100, Sold: 60, Gross: 30000}},
	}
	return state
}

func TestFlushLoadRoundtrip(t *testing.T) {
	store := newTestStore(t)
	state := sampleState()

	if err := store.Flush(state); err != nil {
		t.Fatalf("flush: %v", err)
	}

	loaded := store.Load()

	if !loaded.Fetched["PVR-101"] || !loaded.Merged["PVR-101"] {
		t.Error("fetched/merged sets did not survive the roundtrip")
	}

	s, ok := loaded.Summary["Inception [IMAX | English]"]
	if !ok {
		t.Fatal("summary did not survive the roundtrip")
	}
	if s.Shows != 1 || s.Sold != 60 || s.Occupancy != 60.0 {
		t.Errorf("summary counters wrong after reload: %+v", s.Rollup)
	}
	if len(s.Details) != 1 || s.Details[0].City != "Mumbai" {
		t.Errorf("city details wrong after reload: %+v", s.Details)
	}

	raw, ok := loaded.Raw["PVR-101"]
	if !ok || len(raw["Inception [IMAX | English]"]) != 1 {
		t.Errorf("raw venue data wrong after reload: %+v", raw)
	}
}

func TestLoadMissingFilesYieldsEmptyState(t *testing.T) {
	store := newTestStore(t)

	state := store.Load()

	if len(state.Summary) != 0 || len(state.Fetched) != 0 ||
		len(state.Merged) != 0 || len(state.Raw) != 0 {
		t.Errorf("expected empty state from empty dir, got %+v", state)
	}
	if state.Summary == nil || state.Fetched == nil || state.Merged == nil || state.Raw == nil {
		t.Error("containers must be allocated even when files are missing")
	}
}

func TestLoadToleratesCorruptFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewProgressStore(dir, 1, utils.NewLogger())
	if err != nil {
		t.Fatal(err)
	}

	if err := store.Flush(sampleState()); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, summaryFile), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	state := store.Load()

	if len(state.Summary) != 0 {
		t.Error("corrupt summary file should load as empty")
	}
	if !state.Fetched["PVR-101"] {
		t.Error("intact components should still load")
	}
}

func TestFlushLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewProgressStore(dir, 1, utils.NewLogger())
	if err != nil {
		t.Fatal(err)
	}

	if err := store.Flush(sampleState()); err != nil {
		t.Fatal(err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if filepath.Ext(e.Name()) == ".tmp" {
			t.Errorf("leftover temp file: %s", e.Name())
		}
	}
	if len(entries) != 4 {
		t.Errorf("expected 4 progress files, got %d", len(entries))
	}
}

// Flushing after each venue and reloading before the next merge must produce
// the same summary as one continuous in-memory run.
func TestCrashResumeEquivalence(t *testing.T) {
	logger := utils.NewLogger()
	agg := services.NewAggregator(logger)

	venues := []struct {
		code string
		meta models.VenueMeta
		data models.VenueShows
	}{
		{"PVR-101", models.VenueMeta{City: "Mumbai", State: "MH"}, models.VenueShows{
			"Inception [IMAX | English]": {{Chain: "PVR", Total: 100, Sold: 60, Gross: 30000}},
		}},
		{"INOX-7", models.VenueMeta{City: "Delhi", State: "DL"}, models.VenueShows{
			"Inception [IMAX | English]": {{Chain: "INOX", Total: 200, Sold: 199, Gross: 90000}},
			"Dune [2D | Hindi]":          {{Chain: "INOX", Total: 50, Sold: 25, Gross: 5000}},
		}},
		{"SPI-3", models.VenueMeta{City: "Chennai", State: "TN"}, models.VenueShows{
			"Dune [2D | Hindi]": {{Chain: "SPI", Total: 120, Sold: 0, Gross: 0}},
		}},
	}

	// Continuous in-memory run.
	continuous := models.NewProgressState()
	for _, v := range venues {
		agg.Merge(continuous, v.code, v.meta, v.data)
	}

	// Flush + reload between every merge, as if the process crashed.
	store := newTestStore(t)
	for _, v := range venues {
		state := store.Load()
		agg.Merge(state, v.code, v.meta, v.data)
		state.Fetched[v.code] = true
		if err := store.Flush(state); err != nil {
			t.Fatalf("flush after %s: %v", v.code, err)
		}
	}
	resumed := store.Load()

	want, err := json.Marshal(continuous.Summary)
	if err != nil {
		t.Fatal(err)
	}
	got, err := json.Marshal(resumed.Summary)
	if err != nil {
		t.Fatal(err)
	}
	if string(want) != string(got) {
		t.Errorf("resumed summary differs from continuous run:\nwant: %s\ngot:  %s", want, got)
	}

	// Replaying an already-merged venue after reload must be a no-op.
	agg.Merge(resumed, "PVR-101", venues[0].meta, venues[0].data)
	replayed, err := json.Marshal(resumed.Summary)
	if err != nil {
		t.Fatal(err)
	}
	if string(replayed) != string(got) {
		t.Error("replaying a merged venue after reload changed the summary")
	}
}
