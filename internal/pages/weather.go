package pages

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/teletext/internal/api"
	"github.com/alexanderramin/teletext/internal/domain"
	"github.com/alexanderramin/teletext/internal/settings"
)

// fallbackLocation is used until the viewer sets a home location.
var fallbackLocation = settings.Location{City: "London", Lat: 51.5072, Lon: -0.1276}

// weatherCodes maps WMO weather codes to display text.
var weatherCodes = map[int]string{
	0: "CLEAR", 1: "MAINLY CLEAR", 2: "PARTLY CLOUDY", 3: "OVERCAST",
	45: "FOG", 48: "FREEZING FOG",
	51: "DRIZZLE", 53: "DRIZZLE", 55: "HEAVY DRIZZLE",
	61: "LIGHT RAIN", 63: "RAIN", 65: "HEAVY RAIN",
	71: "LIGHT SNOW", 73: "SNOW", 75: "HEAVY SNOW",
	80: "SHOWERS", 81: "SHOWERS", 82: "VIOLENT SHOWERS",
	95: "THUNDERSTORM", 96: "THUNDERSTORM", 99: "THUNDERSTORM",
}

func weatherText(code int) string {
	if t, ok := weatherCodes[code]; ok {
		return t
	}
	return "CHANGEABLE"
}

// WeatherPage renders the forecast block at 200-209.
type WeatherPage struct {
	number domain.PageNumber
	client *api.WeatherClient
	prefs  *settings.Manager
}

// NewWeatherPage creates the weather page for one number in the block.
func NewWeatherPage(n domain.PageNumber, client *api.WeatherClient, prefs *settings.Manager) *WeatherPage {
	return &WeatherPage{number: n, client: client, prefs: prefs}
}

func (p *WeatherPage) Number() domain.PageNumber      { return p.number }
func (p *WeatherPage) Title() string                  { return "WEATHER" }
func (p *WeatherPage) RefreshInterval() time.Duration { return 10 * time.Minute }

func (p *WeatherPage) Render(ctx context.Context) (string, error) {
	prefs := p.prefs.Load(ctx)
	loc := fallbackLocation
	if prefs.Location != nil {
		loc = *prefs.Location
	}

	f, err := p.client.Forecast(ctx, loc.Lat, loc.Lon)
	if err != nil {
		return "", err
	}

	unit := "C"
	conv := func(c float64) float64 { return c }
	if prefs.TemperatureUnit == settings.UnitFahrenheit {
		unit = "F"
		conv = func(c float64) float64 { return c*9/5 + 32 }
	}

	rows := []string{
		center(strings.ToUpper(loc.City)),
		rule(),
		line(fmt.Sprintf("NOW  %3.0f%s  %s", conv(f.Current.Temperature), unit,
			weatherText(f.Current.WeatherCode))),
		line(fmt.Sprintf("WIND %3.0f KM/H", f.Current.WindSpeed)),
		rule(),
	}
	for i := range f.Daily.Time {
		if i >= 5 || i >= len(f.Daily.TempMax) || i >= len(f.Daily.TempMin) {
			break
		}
		day := f.Daily.Time[i]
		if t, err := time.Parse("2006-01-02", day); err == nil {
			day = strings.ToUpper(t.Format("Mon"))
		}
		code := 0
		if i < len(f.Daily.WeatherCode) {
			code = f.Daily.WeatherCode[i]
		}
		rows = append(rows, line(fmt.Sprintf("%-4s %3.0f/%-3.0f%s %s",
			day, conv(f.Daily.TempMax[i]), conv(f.Daily.TempMin[i]), unit, weatherText(code))))
	}
	if f.Stale {
		rows = append(rows, "", staleNotice(false))
	}
	return strings.Join(rows, "\n"), nil
}

func (p *WeatherPage) FastextButtons() [4]FastextButton {
	return [4]FastextButton{
		{Label: "INDEX", Target: domain.PageHome},
		{Label: "NEWS", Target: domain.PageNews},
		{Label: "FINANCE", Target: domain.PageFinance},
		{Label: "SETTINGS", Target: domain.PageSettings},
	}
}
