// Package weather fetches daily forecasts from the IPMA open-data API
// and caches them in process.  Forecasts are a cosmetic annotation on
// meal listings; every function here degrades gracefully and nothing
// in the reservation flow depends on it.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// Forecast is the annotation attached to a meal listing entry.
type Forecast struct {
	Summary           string  `json:"summary"`
	MinTemp           float64 `json:"minTemp"`
	MaxTemp           float64 `json:"maxTemp"`
	PrecipitationProb string  `json:"precipitationProbability"`
}

// ipmaResponse mirrors the shape of the IPMA daily forecast endpoint.
// Temperatures and probabilities arrive as strings.
type ipmaResponse struct {
	Data []ipmaForecast `json:"data"`
}

type ipmaForecast struct {
	PrecipitaProb string `json:"precipitaProb"`
	TMin          string `json:"tMin"`
	TMax          string `json:"tMax"`
	WeatherType   int    `json:"idWeatherType"`
	ForecastDate  string `json:"forecastDate"`
}

// weatherTypeText maps the IPMA weather type ids we care about to a
// short English summary.  Unknown ids fall back to a generic text.
var weatherTypeText = map[int]string{
	1:  "Clear sky",
	2:  "Partly cloudy",
	3:  "Partly cloudy",
	4:  "Cloudy",
	5:  "High clouds",
	6:  "Showers",
	7:  "Light showers",
	9:  "Rain",
	10: "Light rain",
}

type cacheEntry struct {
	forecast Forecast
	storedAt time.Time
}

// Client fetches forecasts with a per-date TTL cache.  Hits and misses
// are counted for the /metrics/weather-cache endpoint, which the load
// test polls to verify the cache is doing its job.
type Client struct {
	baseURL  string
	cityCode string
	ttl      time.Duration
	httpc    *http.Client

	mu    sync.Mutex
	cache map[string]cacheEntry // keyed by yyyy-mm-dd

	hits   atomic.Uint64
	misses atomic.Uint64
}

// New returns a forecast client for one IPMA city.
func New(baseURL, cityCode string, ttl time.Duration) *Client {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &Client{
		baseURL:  baseURL,
		cityCode: cityCode,
		ttl:      ttl,
		httpc:    &http.Client{Timeout: 5 * time.Second},
		cache:    make(map[string]cacheEntry),
	}
}

// ForecastForDate returns the forecast for a calendar date, served
// from cache when a fresh entry exists.  Dates more than five days out
// are beyond the IPMA horizon and get a canned long-range prediction,
// cached like any other entry.
func (c *Client) ForecastForDate(ctx context.Context, date time.Time) (Forecast, error) {
	key := date.UTC().Format("2006-01-02")

	c.mu.Lock()
	entry, ok := c.cache[key]
	c.mu.Unlock()
	if ok && time.Since(entry.storedAt) < c.ttl {
		c.hits.Add(1)
		return entry.forecast, nil
	}

	c.misses.Add(1)
	fc, err := c.fetch(ctx, key, date)
	if err != nil {
		return Forecast{}, err
	}
	c.mu.Lock()
	c.cache[key] = cacheEntry{forecast: fc, storedAt: time.Now()}
	c.mu.Unlock()
	return fc, nil
}

// Stats reports cache hit and miss counts since startup.
func (c *Client) Stats() (hits, misses uint64) {
	return c.hits.Load(), c.misses.Load()
}

func (c *Client) fetch(ctx context.Context, key string, date time.Time) (Forecast, error) {
	if date.After(time.Now().UTC().AddDate(0, 0, 5)) {
		return Forecast{
			Summary:           "Long-range outlook: partly cloudy",
			MinTemp:           18,
			MaxTemp:           26,
			PrecipitationProb: "20%",
		}, nil
	}

	url := fmt.Sprintf("%s/%s.json", c.baseURL, c.cityCode)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Forecast{}, err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return Forecast{}, fmt.Errorf("fetch forecast: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Forecast{}, fmt.Errorf("fetch forecast: unexpected status %d", resp.StatusCode)
	}

	var payload ipmaResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Forecast{}, fmt.Errorf("decode forecast: %w", err)
	}
	for _, day := range payload.Data {
		if day.ForecastDate != key {
			continue
		}
		summary, ok := weatherTypeText[day.WeatherType]
		if !ok {
			summary = "Mixed conditions"
		}
		fc := Forecast{
			Summary:           summary,
			PrecipitationProb: day.PrecipitaProb + "%",
		}
		fmt.Sscanf(day.TMin, "%f", &fc.MinTemp)
		fmt.Sscanf(day.TMax, "%f", &fc.MaxTemp)
		return fc, nil
	}
	return Forecast{}, fmt.Errorf("no forecast for %s", key)
}
