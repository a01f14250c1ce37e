package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"trip-planner-go/internal/config"
	weatherdomain "trip-planner-go/internal/domain/weather"
)

const dateLayout = "2006-01-02"

// Client talks to the Open-Meteo geocoding and forecast endpoints. Both
// calls run synchronously inside the request with a fixed timeout and no
// retries; every transport or decode failure is reported as
// weatherdomain.ErrProviderUnavailable.
type Client struct {
	httpClient   *http.Client
	geocodingURL string
	forecastURL  string
}

func NewClient(cfg config.WeatherConfig) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient:   &http.Client{Timeout: timeout},
		geocodingURL: cfg.GeocodingURL,
		forecastURL:  cfg.ForecastURL,
	}
}

type geocodingResponse struct {
	Results []struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"results"`
}

// Geocode resolves a free-text place name to the first-match coordinates.
// No match is (nil, nil).
func (c *Client) Geocode(ctx context.Context, name string) (*weatherdomain.Coordinates, error) {
	params := url.Values{}
	params.Set("name", name)
	params.Set("count", "1")

	var payload geocodingResponse
	if err := c.getJSON(ctx, c.geocodingURL+"?"+params.Encode(), &payload); err != nil {
		return nil, err
	}

	if len(payload.Results) == 0 {
		return nil, nil
	}
	first := payload.Results[0]
	return &weatherdomain.Coordinates{Latitude: first.Latitude, Longitude: first.Longitude}, nil
}

type forecastResponse struct {
	Daily forecastDaily `json:"daily"`
}

type forecastDaily struct {
	Time       []string   `json:"time"`
	TempMax    []*float64 `json:"temperature_2m_max"`
	TempMin    []*float64 `json:"temperature_2m_min"`
	PrecipProb []*float64 `json:"precipitation_probability_max"`
}

// DailyForecast fetches the inclusive date range for the coordinates.
func (c *Client) DailyForecast(ctx context.Context, coords weatherdomain.Coordinates, start, end time.Time) ([]weatherdomain.DailyForecast, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(coords.Latitude, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(coords.Longitude, 'f', -1, 64))
	params.Set("start_date", start.Format(dateLayout))
	params.Set("end_date", end.Format(dateLayout))
	params.Set("daily", "temperature_2m_max,temperature_2m_min,precipitation_probability_max")
	params.Set("timezone", "auto")

	var payload forecastResponse
	if err := c.getJSON(ctx, c.forecastURL+"?"+params.Encode(), &payload); err != nil {
		return nil, err
	}

	return daysFromPayload(payload.Daily)
}

// daysFromPayload pairs day i of the date array with index i of each
// measurement array. Ragged or null measurements fall back to zero values
// instead of failing the whole forecast.
func daysFromPayload(daily forecastDaily) ([]weatherdomain.DailyForecast, error) {
	days := make([]weatherdomain.DailyForecast, 0, len(daily.Time))
	for i, value := range daily.Time {
		date, err := time.Parse(dateLayout, value)
		if err != nil {
			return nil, fmt.Errorf("%w: bad forecast date %q", weatherdomain.ErrProviderUnavailable, value)
		}
		days = append(days, weatherdomain.DailyForecast{
			Date:       date,
			TempMax:    floatAt(daily.TempMax, i),
			TempMin:    floatAt(daily.TempMin, i),
			PrecipProb: int(floatAt(daily.PrecipProb, i)),
		})
	}
	return days, nil
}

func floatAt(values []*float64, i int) float64 {
	if i >= len(values) || values[i] == nil {
		return 0
	}
	return *values[i]
}

func (c *Client) getJSON(ctx context.Context, rawURL string, dst interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", weatherdomain.ErrProviderUnavailable, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", weatherdomain.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", weatherdomain.ErrProviderUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", weatherdomain.ErrProviderUnavailable, err)
	}
	return nil
}
