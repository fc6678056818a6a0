package bms

import (
	"encoding/json"
	"strconv"
)

// flexValue absorbs API fields that arrive as either JSON strings or
// numbers, keeping the raw text for lenient parsing.
type flexValue string

func (f *flexValue) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = flexValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*f = flexValue(n.String())
		return nil
	}
	*f = ""
	return nil
}

// Int parses the value as an integer, returning 0 when unparseable.
func (f flexValue) Int() int {
	n, err := strconv.Atoi(string(f))
	if err != nil {
		return 0
	}
	return n
}

// Int64 parses the value as a 64-bit integer, returning 0 when unparseable.
func (f flexValue) Int64() int64 {
	n, err := strconv.ParseInt(string(f), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// Float parses the value as a float, returning 0 when unparseable.
func (f flexValue) Float() float64 {
	v, err := strconv.ParseFloat(string(f), 64)
	if err != nil {
		return 0
	}
	return v
}

type apiResponse struct {
	ShowDetails []showDetail `json:"ShowDetails"`
}

type showDetail struct {
	Date   flexValue `json:"Date"`
	Venues venueInfo `json:"Venues"`
	Event  []event   `json:"Event"`
}

type venueInfo struct {
	VenueName     string `json:"VenueName"`
	VenueAdd      string `json:"VenueAdd"`
	VenueCompName string `json:"VenueCompName"`
}

type event struct {
	EventTitle  string       `json:"EventTitle"`
	EventGroup  string       `json:"EventGroup"`
	EventCode   string       `json:"EventCode"`
	ChildEvents []childEvent `json:"ChildEvents"`
}

type childEvent struct {
	EventCode      string     `json:"EventCode"`
	EventDimension string     `json:"EventDimension"`
	EventLanguage  string     `json:"EventLanguage"`
	ShowTimes      []showTime `json:"ShowTimes"`
}

type showTime struct {
	ShowTime   string     `json:"ShowTime"`
	SessionID  flexValue  `json:"SessionId"`
	Attributes string     `json:"Attributes"`
	Categories []category `json:"Categories"`
}

type category struct {
	MaxSeats   flexValue `json:"MaxSeats"`
	SeatsAvail flexValue `json:"SeatsAvail"`
	CurPrice   flexValue `json:"CurPrice"`
}
