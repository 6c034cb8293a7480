package pages

import (
	"time"

	"github.com/alexanderramin/teletext/internal/api"
	"github.com/alexanderramin/teletext/internal/domain"
	"github.com/alexanderramin/teletext/internal/settings"
)

// Deps carries everything the stock page set needs.
type Deps struct {
	Weather   *api.WeatherClient
	Crypto    *api.CryptoClient
	OnThisDay *api.OnThisDayClient
	Prefs     *settings.Manager
	Now       func() time.Time // nil means time.Now
}

// BuildRegistry registers the full stock page set.
func BuildRegistry(d Deps) *Registry {
	if d.Now == nil {
		d.Now = time.Now
	}
	reg := NewRegistry()

	reg.MustRegister(HomePage{})
	reg.MustRegister(NotFoundPage{})
	reg.MustRegister(AboutPage{})
	reg.MustRegister(EasterEggPage{})
	reg.MustRegister(NewSettingsPage(d.Prefs))

	for n := domain.PageNews; n <= 105; n++ {
		reg.MustRegister(NewNewsPage(n))
	}
	for n := domain.PageWeather; n <= 209; n++ {
		reg.MustRegister(NewWeatherPage(n, d.Weather, d.Prefs))
	}
	for n := domain.PageFinance; n <= 309; n++ {
		reg.MustRegister(NewFinancePage(n, d.Crypto))
	}

	reg.MustRegister(HoroscopeIndexPage{})
	for _, p := range NewHoroscopeSignPages(d.Now) {
		reg.MustRegister(p)
	}
	reg.MustRegister(NewPersonalStarsPage(d.Prefs, d.Now))

	for _, p := range NewTimeMachinePages(d.OnThisDay, d.Prefs, d.Now) {
		reg.MustRegister(p)
	}
	for n := domain.PageTVGuide; n <= 609; n++ {
		reg.MustRegister(NewTVGuidePage(n, d.Now))
	}

	return reg
}
