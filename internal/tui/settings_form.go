package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/alexanderramin/teletext/internal/settings"
)

type formState int

const (
	formEditing formState = iota
	formSaved
	formCancelled
)

// settingsForm is the modal editor behind "E" on page 900.
type settingsForm struct {
	prefs *settings.Manager
	log   zerolog.Logger
	form  *huh.Form
	state formState

	city      string
	lat       string
	lon       string
	birthday  string // DD/MM/YYYY
	unit      string
	theme     string
	sound     bool
	scanlines bool
}

// newSettingsForm builds the form pre-filled with the current record.
func newSettingsForm(prefs *settings.Manager, log zerolog.Logger) *settingsForm {
	s := prefs.Load(context.Background())

	f := &settingsForm{
		prefs:     prefs,
		log:       log,
		unit:      string(s.TemperatureUnit),
		theme:     string(s.Theme),
		sound:     s.SoundEnabled,
		scanlines: s.ScanlinesEnabled,
	}
	if s.Location != nil {
		f.city = s.Location.City
		f.lat = strconv.FormatFloat(s.Location.Lat, 'f', -1, 64)
		f.lon = strconv.FormatFloat(s.Location.Lon, 'f', -1, 64)
	}
	if s.Birthday != nil {
		f.birthday = fmt.Sprintf("%02d/%02d/%04d", s.Birthday.Day, s.Birthday.Month, s.Birthday.Year)
	}

	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("City (blank for none)").
				Placeholder("London").
				Value(&f.city),
			huh.NewInput().
				Title("Latitude").
				Placeholder("51.5072").
				Value(&f.lat).
				Validate(validateOptionalFloat(-90, 90)),
			huh.NewInput().
				Title("Longitude").
				Placeholder("-0.1276").
				Value(&f.lon).
				Validate(validateOptionalFloat(-180, 180)),
			huh.NewInput().
				Title("Birthday (DD/MM/YYYY, blank for none)").
				Placeholder("24/12/1974").
				Value(&f.birthday).
				Validate(validateOptionalBirthday),
			huh.NewSelect[string]().
				Title("Temperature Unit").
				Options(
					huh.NewOption("Celsius", string(settings.UnitCelsius)),
					huh.NewOption("Fahrenheit", string(settings.UnitFahrenheit)),
				).
				Value(&f.unit),
			huh.NewSelect[string]().
				Title("Theme").
				Options(
					huh.NewOption("Classic", string(settings.ThemeClassic)),
					huh.NewOption("Amber", string(settings.ThemeAmber)),
					huh.NewOption("Mono", string(settings.ThemeMono)),
				).
				Value(&f.theme),
			huh.NewConfirm().Title("Sound").Value(&f.sound),
			huh.NewConfirm().Title("Scanlines").Value(&f.scanlines),
		),
	).WithTheme(teletextHuhTheme()).WithShowHelp(false)

	return f
}

func (f *settingsForm) Init() tea.Cmd { return f.form.Init() }

func (f *settingsForm) State() formState { return f.state }

func (f *settingsForm) Update(msg tea.Msg) tea.Cmd {
	model, cmd := f.form.Update(msg)
	if fm, ok := model.(*huh.Form); ok {
		f.form = fm
	}
	switch f.form.State {
	case huh.StateCompleted:
		f.save()
		f.state = formSaved
	case huh.StateAborted:
		f.state = formCancelled
	}
	return cmd
}

func (f *settingsForm) View() string { return f.form.View() }

// save parses the string-backed fields and persists a partial update.
func (f *settingsForm) save() {
	_, err := f.prefs.Update(context.Background(), func(s *settings.Settings) {
		s.TemperatureUnit = settings.TemperatureUnit(f.unit)
		s.Theme = settings.Theme(f.theme)
		s.SoundEnabled = f.sound
		s.ScanlinesEnabled = f.scanlines

		city := strings.TrimSpace(f.city)
		if city == "" {
			s.Location = nil
		} else {
			lat, _ := strconv.ParseFloat(strings.TrimSpace(f.lat), 64)
			lon, _ := strconv.ParseFloat(strings.TrimSpace(f.lon), 64)
			s.Location = &settings.Location{City: city, Lat: lat, Lon: lon}
		}

		if b, ok := parseBirthday(f.birthday); ok {
			s.Birthday = b
		} else {
			s.Birthday = nil
		}
	})
	if err != nil {
		f.log.Warn().Err(err).Msg("saving settings failed")
	}
}

func parseBirthday(raw string) (*settings.Birthday, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, false
	}
	parts := strings.Split(raw, "/")
	if len(parts) != 3 {
		return nil, false
	}
	day, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	year, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return nil, false
	}
	if month < 1 || month > 12 || day < 1 || day > 31 || year < 1900 || year > 2100 {
		return nil, false
	}
	return &settings.Birthday{Month: month, Day: day, Year: year}, true
}

func validateOptionalFloat(min, max float64) func(string) error {
	return func(raw string) error {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return nil
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("not a number")
		}
		if v < min || v > max {
			return fmt.Errorf("must be between %g and %g", min, max)
		}
		return nil
	}
}

func validateOptionalBirthday(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	if _, ok := parseBirthday(raw); !ok {
		return fmt.Errorf("use DD/MM/YYYY")
	}
	return nil
}

// teletextHuhTheme themes the form with the classic palette.
func teletextHuhTheme() *huh.Theme {
	p := classicPalette
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(p.header).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(p.header)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(p.accent)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(p.fg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(p.bg).Background(p.header).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(p.dim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(p.header)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(p.header)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(p.fg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(p.dim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(p.dim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(p.dim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(p.dim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(p.dim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(p.dim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(p.dim)

	return t
}
