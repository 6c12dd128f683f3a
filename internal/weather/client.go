// Package weather fetches the OpenWeatherMap 5-day forecast and analyzes
// it into the condition snapshot the eligibility engine consumes. The
// engine never talks to this package directly: a fetch or analysis
// failure yields a nil report, which the engine treats as "weather data
// unavailable" rather than an error.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/smsmy/farm-notifier/internal/schedule"
)

// DefaultBaseURL is the OpenWeatherMap 5-day/3-hour forecast endpoint.
const DefaultBaseURL = "https://api.openweathermap.org/data/2.5/forecast"

// Client fetches forecasts for one configured location.
type Client struct {
	apiKey     string
	city       string
	country    string
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient builds a forecast client. baseURL falls back to
// DefaultBaseURL when empty; timeout bounds each request.
func NewClient(apiKey, city, country, baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{
		apiKey:     apiKey,
		city:       city,
		country:    country,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.With("component", "weather"),
	}
}

// forecastResponse is the subset of the OpenWeatherMap payload the
// analyzer needs.
type forecastResponse struct {
	List []forecastEntry `json:"list"`
}

type forecastEntry struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp     float64 `json:"temp"`
		TempMax  float64 `json:"temp_max"`
		TempMin  float64 `json:"temp_min"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Rain struct {
		ThreeHours float64 `json:"3h"`
	} `json:"rain"`
}

// Fetch retrieves the raw 5-day/3-hour forecast for the configured city.
func (c *Client) Fetch(ctx context.Context) (*forecastResponse, error) {
	params := url.Values{}
	params.Set("q", fmt.Sprintf("%s,%s", c.city, c.country))
	params.Set("appid", c.apiKey)
	params.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build forecast request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("forecast request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("forecast API returned status %d", resp.StatusCode)
	}

	var forecast forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&forecast); err != nil {
		return nil, fmt.Errorf("failed to decode forecast response: %w", err)
	}
	return &forecast, nil
}

// Report fetches and analyzes the forecast. On any failure it logs and
// returns nil: the caller falls back to calendar-only eligibility instead
// of fabricating weather values.
func (c *Client) Report(ctx context.Context) *schedule.WeatherReport {
	if c.apiKey == "" {
		c.logger.Debug("no API key configured, skipping weather fetch")
		return nil
	}

	forecast, err := c.Fetch(ctx)
	if err != nil {
		c.logger.Warn("weather fetch failed, continuing without weather data",
			"city", c.city, "error", err)
		return nil
	}

	report, err := Analyze(forecast)
	if err != nil {
		c.logger.Warn("weather analysis failed, continuing without weather data", "error", err)
		return nil
	}

	c.logger.Info("weather analyzed",
		"current_temp", report.CurrentTemp,
		"humidity_avg", report.HumidityAvg,
		"heat_wave", report.HeatWave,
		"cold_wave", report.ColdWave,
		"high_humidity", report.HighHumidity,
		"good_fertilizer_time", report.GoodFertilizerTime)
	return report
}
