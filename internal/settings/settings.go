// Package settings persists user preferences and the time machine's
// active date. Settings share the storage medium with the cache but
// live under their own key prefix and carry no TTL.
package settings

import "time"

// Keys on the shared medium. The "settings:" prefix is disjoint from
// the cache namespace; cache sweeps must never touch these.
const (
	settingsKey    = "settings:v1"
	timeMachineKey = "settings:timemachine"
)

// TemperatureUnit selects how the weather pages display temperatures.
type TemperatureUnit string

const (
	UnitCelsius    TemperatureUnit = "celsius"
	UnitFahrenheit TemperatureUnit = "fahrenheit"
)

// Theme selects the screen palette.
type Theme string

const (
	ThemeClassic Theme = "classic"
	ThemeAmber   Theme = "amber"
	ThemeMono    Theme = "mono"
)

// Location is the viewer's home location for the weather pages.
type Location struct {
	City string  `json:"city"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// Birthday feeds the horoscope pages.
type Birthday struct {
	Month int `json:"month"`
	Day   int `json:"day"`
	Year  int `json:"year"`
}

// Settings is the full persisted preference record. A write-then-read
// round trip reproduces every field exactly, including the nullable
// nested records.
type Settings struct {
	Location            *Location       `json:"location"`
	Birthday            *Birthday       `json:"birthday"`
	TemperatureUnit     TemperatureUnit `json:"temperature_unit"`
	Theme               Theme           `json:"theme"`
	SoundEnabled        bool            `json:"sound_enabled"`
	ScanlinesEnabled    bool            `json:"scanlines_enabled"`
	SeenIntro           bool            `json:"seen_intro"`
	SeenTimeMachineHint bool            `json:"seen_time_machine_hint"`
}

// Defaults is the documented fallback record, also used when the
// persisted payload is corrupt.
func Defaults() Settings {
	return Settings{
		TemperatureUnit:  UnitCelsius,
		Theme:            ThemeClassic,
		SoundEnabled:     true,
		ScanlinesEnabled: true,
	}
}

// TimeMachineDate is the optional historical date the portal browses.
// Active is derived: there is never an active state without a date, and
// never a retained date in the inactive state.
type TimeMachineDate struct {
	Date   time.Time
	Active bool
}
