// Package api holds thin typed clients for the public services the
// portal renders. Each client validates its parameters before any
// network attempt and delegates retries and caching to the fetch layer.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/alexanderramin/teletext/internal/fetch"
)

const weatherCacheTTL = 10 * time.Minute

// Forecast is the subset of the Open-Meteo response the weather pages
// render.
type Forecast struct {
	Current struct {
		Temperature float64 `json:"temperature_2m"`
		WindSpeed   float64 `json:"wind_speed_10m"`
		WeatherCode int     `json:"weather_code"`
	} `json:"current"`
	Daily struct {
		Time        []string  `json:"time"`
		TempMax     []float64 `json:"temperature_2m_max"`
		TempMin     []float64 `json:"temperature_2m_min"`
		WeatherCode []int     `json:"weather_code"`
	} `json:"daily"`

	// Stale marks a payload served from cache after a failed live
	// fetch; views show a "using cached data" notice.
	Stale bool `json:"-"`
}

// WeatherClient fetches forecasts from Open-Meteo.
type WeatherClient struct {
	fc   *fetch.Client
	base string
}

// NewWeatherClient creates a weather client against the given base URL.
func NewWeatherClient(fc *fetch.Client, base string) *WeatherClient {
	return &WeatherClient{fc: fc, base: base}
}

// Forecast returns current and 5-day weather for the given coordinates.
// Out-of-range coordinates fail with a VALIDATION error before any
// network attempt.
func (c *WeatherClient) Forecast(ctx context.Context, lat, lon float64) (*Forecast, error) {
	if lat < -90 || lat > 90 {
		return nil, fetch.Validation("latitude %v out of range [-90, 90]", lat)
	}
	if lon < -180 || lon > 180 {
		return nil, fetch.Validation("longitude %v out of range [-180, 180]", lon)
	}

	q := url.Values{}
	q.Set("latitude", fmt.Sprintf("%.4f", lat))
	q.Set("longitude", fmt.Sprintf("%.4f", lon))
	q.Set("current", "temperature_2m,wind_speed_10m,weather_code")
	q.Set("daily", "temperature_2m_max,temperature_2m_min,weather_code")
	q.Set("forecast_days", "5")
	q.Set("timezone", "auto")

	res, err := c.fc.Get(ctx, c.base+"/forecast?"+q.Encode(), fetch.RequestOptions{
		CacheKey: fmt.Sprintf("weather:%.2f:%.2f", lat, lon),
		CacheTTL: weatherCacheTTL,
	})
	if err != nil {
		return nil, err
	}

	var f Forecast
	if err := json.Unmarshal(res.Data, &f); err != nil {
		return nil, fetch.NewError(fetch.KindParse, err)
	}
	f.Stale = res.Stale
	return &f, nil
}
