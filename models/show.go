package models

// VenueMeta describes one physical venue from the static catalog.
// Loaded once at startup and read-only for the rest of the run.
type VenueMeta struct {
	Code  string `json:"code,omitempty"`
	City  string `json:"City"`
	State string `json:"State"`
	Chain string `json:"Chain,omitempty"`
}

// ShowRecord is one showtime's seat and price aggregation for a single
// movie variant at a single venue. Created once per fetch, never mutated.
type ShowRecord struct {
	VenueCode       string  `json:"venue_code"`
	Venue           string  `json:"venue"`
	Address         string  `json:"address"`
	Chain           string  `json:"chain"`
	Movie           string  `json:"movie"`
	ParentEventCode string  `json:"parent_event_code"`
	ChildEventCode  string  `json:"child_event_code"`
	Dimension       string  `json:"dimension"`
	Language        string  `json:"language"`
	Time            string  `json:"time"`
	SessionID       int64   `json:"session_id"`
	Audi            string  `json:"audi"`
	Total           int     `json:"total"`
	Sold            int     `json:"sold"`
	Available       int     `json:"available"`
	Occupancy       float64 `json:"occupancy"`
	Gross           float64 `json:"gross"`
}

// VenueShows maps a movie key to the shows a single venue is running for it.
type VenueShows map[string][]*ShowRecord
