package bms

import (
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"bms-tracker/config"
	"bms-tracker/models"
	"bms-tracker/utils"
)

const showtimesPath = "/api/v2/mobile/showtimes/byvenue"

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client fetches per-venue showtime data from the BookMyShow mobile API and
// normalizes it into show records grouped by movie key.
//
// A fetch never retries internally; retry and restart policy belongs to the
// orchestrator.
type Client struct {
	cfg        *config.Config
	logger     *utils.Logger
	httpClient httpDoer
}

// New creates a ready-to-use showtime Client.
func New(cfg *config.Config, logger *utils.Logger) *Client {
	return &Client{
		cfg:    cfg,
		logger: logger,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.HTTPTimeoutMs) * time.Millisecond,
		},
	}
}

// FetchVenue retrieves one venue's shows for the configured date code.
//
// A venue with no shows, or whose upstream data belongs to a different date,
// yields an empty map and no error: it counts as fetched with nothing to
// merge. Errors are returned only for network failures, non-success HTTP
// statuses and undecodable payloads.
func (c *Client) FetchVenue(venueCode string) (models.VenueShows, error) {
	req, err := c.buildRequest(venueCode)
	if err != nil {
		return nil, fmt.Errorf("bms: build request for %s: %w", venueCode, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bms: fetch %s: %w", venueCode, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("bms: fetch %s: unexpected status %d: %s",
			venueCode, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var payload apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("bms: decode %s: %w", venueCode, err)
	}

	return c.normalize(venueCode, &payload), nil
}

func (c *Client) buildRequest(venueCode string) (*http.Request, error) {
	req, err := http.NewRequest(http.MethodGet, c.cfg.BaseURL+showtimesPath, nil)
	if err != nil {
		return nil, err
	}

	q := req.URL.Query()
	q.Set("venueCode", venueCode)
	q.Set("dateCode", c.cfg.DateCode)
	req.URL.RawQuery = q.Encode()

	for key, val := range randomHeaders() {
		req.Header.Set(key, val)
	}
	return req, nil
}

// normalize flattens the API payload into show records grouped by movie key.
func (c *Client) normalize(venueCode string, payload *apiResponse) models.VenueShows {
	shows := models.VenueShows{}

	if len(payload.ShowDetails) == 0 {
		return shows
	}
	detail := payload.ShowDetails[0]

	if string(detail.Date) != c.cfg.DateCode {
		c.logger.Debug("[bms] Skipping %s — date mismatch: %s vs %s",
			venueCode, detail.Date, c.cfg.DateCode)
		return shows
	}

	venue := detail.Venues
	if venue.VenueName == "" && venue.VenueCompName == "" {
		return shows
	}
	chain := venue.VenueCompName
	if chain == "" {
		chain = "Unknown"
	}

	for _, event := range detail.Event {
		title := event.EventTitle
		if title == "" {
			title = "Unknown"
		}
		parentCode := event.EventGroup
		if parentCode == "" {
			parentCode = event.EventCode
		}

		for _, child := range event.ChildEvents {
			movieKey := models.MovieKey(title, child.EventDimension, child.EventLanguage)

			for _, show := range child.ShowTimes {
				var total, sold, available int
				var gross float64

				for _, cat := range show.Categories {
					seats := cat.MaxSeats.Int()
					avail := cat.SeatsAvail.Int()
					price := cat.CurPrice.Float()
					total += seats
					available += avail
					sold += seats - avail
					gross += float64(seats-avail) * price
				}

				occ := 0.0
				if total > 0 {
					occ = models.Round2(float64(sold) / float64(total) * 100)
				}

				shows[movieKey] = append(shows[movieKey], &models.ShowRecord{
					VenueCode:       venueCode,
					Venue:           venue.VenueName,
					Address:         venue.VenueAdd,
					Chain:           chain,
					Movie:           movieKey,
					ParentEventCode: parentCode,
					ChildEventCode:  child.EventCode,
					Dimension:       strings.TrimSpace(child.EventDimension),
					Language:        strings.TrimSpace(child.EventLanguage),
					Time:            show.ShowTime,
					SessionID:       show.SessionID.Int64(),
					Audi:            show.Attributes,
					Total:           total,
					Sold:            sold,
					Available:       available,
					Occupancy:       occ,
					Gross:           gross,
				})
			}
		}
	}

	return shows
}

// User-Agent templates mimicking common desktop browsers.
var userAgentTemplates = []string{
	"Mozilla/5.1 (Windows NT 11.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/%s Safari/537.36",
	"Mozilla/5.1 (Windows NT 11.0; Win64; x64; rv:%s) Gecko/20100101 Firefox/%[1]s",
	"Mozilla/5.1 (Macintosh; Intel Mac OS X 10_%d_0) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/%s Safari/537.38",
	"Mozilla/5.1 (Macintosh; Intel Mac OS X 10_%d_0) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/%s Safari/605.1.16",
}

func randomUserAgent() string {
	chromeVer := fmt.Sprintf("%d.0.%d.%d", 70+rand.Intn(51), 1000+rand.Intn(4001), rand.Intn(151))
	safariVer := fmt.Sprintf("%d.0.%d", 13+rand.Intn(5), 1+rand.Intn(3))
	minor := 12 + rand.Intn(4)

	switch rand.Intn(len(userAgentTemplates)) {
	case 0:
		return fmt.Sprintf(userAgentTemplates[0], chromeVer)
	case 1:
		return fmt.Sprintf(userAgentTemplates[1], chromeVer)
	case 2:
		return fmt.Sprintf(userAgentTemplates[2], minor, chromeVer)
	default:
		return fmt.Sprintf(userAgentTemplates[3], minor, safariVer)
	}
}

func randomIP() string {
	parts := make([]string, 4)
	for i := range parts {
		parts[i] = fmt.Sprintf("%d", 1+rand.Intn(255))
	}
	return strings.Join(parts, ".")
}

// randomHeaders builds a fresh spoofed header set for one request.
func randomHeaders() map[string]string {
	ip := randomIP()
	return map[string]string{
		"User-Agent":      randomUserAgent(),
		"Accept":          "application/json, text/plain, */*",
		"Accept-Language": "en-US,en;q=0.9",
		"Origin":          "https://in.bookmyshow.com",
		"Referer":         "https://in.bookmyshow.com/",
		"X-Forwarded-For": ip,
		"Client-IP":       ip,
	}
}
