package pages

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/teletext/internal/domain"
	"github.com/alexanderramin/teletext/internal/settings"
)

// SettingsPage shows the persisted preferences at 900. Editing happens
// in the view layer's form; this page is the read-out.
type SettingsPage struct {
	prefs *settings.Manager
}

// NewSettingsPage creates the settings page.
func NewSettingsPage(prefs *settings.Manager) *SettingsPage {
	return &SettingsPage{prefs: prefs}
}

func (p *SettingsPage) Number() domain.PageNumber { return domain.PageSettings }
func (p *SettingsPage) Title() string             { return "SETTINGS" }

func (p *SettingsPage) Render(ctx context.Context) (string, error) {
	s := p.prefs.Load(ctx)

	location := "NOT SET"
	if s.Location != nil {
		location = strings.ToUpper(s.Location.City)
	}
	birthday := "NOT SET"
	if s.Birthday != nil {
		birthday = fmt.Sprintf("%02d/%02d/%04d", s.Birthday.Day, s.Birthday.Month, s.Birthday.Year)
	}

	rows := []string{
		center("YOUR SETTINGS"),
		rule(),
		line(fmt.Sprintf("LOCATION    %s", location)),
		line(fmt.Sprintf("BIRTHDAY    %s", birthday)),
		line(fmt.Sprintf("UNIT        %s", strings.ToUpper(string(s.TemperatureUnit)))),
		line(fmt.Sprintf("THEME       %s", strings.ToUpper(string(s.Theme)))),
		line(fmt.Sprintf("SOUND       %s", onOff(s.SoundEnabled))),
		line(fmt.Sprintf("SCANLINES   %s", onOff(s.ScanlinesEnabled))),
		rule(),
		center("PRESS E TO EDIT"),
	}

	if tm := p.prefs.TimeMachine(ctx); tm.Active {
		rows = append(rows, "", center("TIME MACHINE: "+tm.Date.Format("2006-01-02")))
	}
	return strings.Join(rows, "\n"), nil
}

func onOff(b bool) string {
	if b {
		return "ON"
	}
	return "OFF"
}
