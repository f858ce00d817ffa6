package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/voidshard/secretary/pkg/domain"

	"github.com/rs/zerolog"
)

// https://openweathermap.org/api/one-call-3#history_daily_aggregation

const DefaultBaseURL = "https://api.openweathermap.org"

type DaySummary struct {
	Lat         float64     `json:"lat"`
	Lon         float64     `json:"lon"`
	Date        string      `json:"date"`
	Temperature Temperature `json:"temperature"`
	Humidity    Afternoon   `json:"humidity"`
	CloudCover  Afternoon   `json:"cloud_cover"`
}

type Temperature struct {
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	Afternoon float64 `json:"afternoon"`
	Night     float64 `json:"night"`
	Evening   float64 `json:"evening"`
	Morning   float64 `json:"morning"`
}

type Afternoon struct {
	Afternoon float64 `json:"afternoon"`
}

func (s *DaySummary) String() string {
	return fmt.Sprintf(
		"Min Temperature: %g F\nMax Temperature: %g F\nAfternoon Humidity: %g%%\nAfternoon Cloud Cover: %g%%",
		s.Temperature.Min, s.Temperature.Max, s.Humidity.Afternoon, s.CloudCover.Afternoon,
	)
}

type Client struct {
	apiKey  string
	baseURL string
	client  *http.Client
	log     zerolog.Logger
}

func NewClient(apiKey, baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		log:     log.With().Str("component", "weather").Logger(),
	}
}

// DaySummary fetches the aggregated weather for one day at a location, in
// imperial units.
func (c *Client) DaySummary(ctx context.Context, lat, lon float64, day time.Time) (*DaySummary, error) {
	params := url.Values{}
	params.Add("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Add("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Add("date", day.Format(domain.DateLayout))
	params.Add("units", "imperial")

	c.log.Debug().Str("query", params.Encode()).Msg("fetching day summary")
	params.Add("appid", c.apiKey)

	uri := c.baseURL + "/data/3.0/onecall/day_summary?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		// url.Error carries the full URL, api key included
		return nil, fmt.Errorf("weather request failed: %w", redact(err))
	}
	defer resp.Body.Close()

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather: got status code: %d (%s)", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	summary := &DaySummary{}
	err = json.Unmarshal(body, summary)
	if err != nil {
		return nil, fmt.Errorf("decode day summary: %w", err)
	}
	return summary, nil
}

func redact(err error) error {
	if uerr, ok := err.(*url.Error); ok {
		return uerr.Err
	}
	return err
}
