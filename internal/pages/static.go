package pages

import (
	"context"
	"strings"
	"time"

	"github.com/alexanderramin/teletext/internal/domain"
)

// HomePage is the index at 100.
type HomePage struct{}

func (HomePage) Number() domain.PageNumber { return domain.PageHome }
func (HomePage) Title() string             { return "INDEX" }

func (HomePage) Render(ctx context.Context) (string, error) {
	rows := []string{
		center("T E L E T E X T"),
		rule(),
		entry("NEWS", int(domain.PageNews)),
		entry("WEATHER", int(domain.PageWeather)),
		entry("FINANCE", int(domain.PageFinance)),
		entry("HOROSCOPES", int(domain.PageHoroscopes)),
		entry("TIME MACHINE", int(domain.PageTimeMachine)),
		entry("TV GUIDE", int(domain.PageTVGuide)),
		entry("SETTINGS", int(domain.PageSettings)),
		entry("ABOUT", int(domain.PageAbout)),
		rule(),
		center("TYPE A PAGE NUMBER OR PRESS 1-9"),
	}
	return strings.Join(rows, "\n"), nil
}

// NotFoundPage is the error page at 404. Invalid navigation lands here;
// the router has no other user-visible error state.
type NotFoundPage struct{}

func (NotFoundPage) Number() domain.PageNumber { return domain.PageNotFound }
func (NotFoundPage) Title() string             { return "PAGE NOT FOUND" }

func (NotFoundPage) Render(ctx context.Context) (string, error) {
	rows := []string{
		"",
		center("4 0 4"),
		"",
		center("THIS PAGE IS NOT IN SERVICE"),
		"",
		center("PRESS ESC FOR THE INDEX"),
	}
	return strings.Join(rows, "\n"), nil
}

func (NotFoundPage) FastextButtons() [4]FastextButton {
	return [4]FastextButton{
		{Label: "INDEX", Target: domain.PageHome},
		{Label: "NEWS", Target: domain.PageNews},
		{Label: "WEATHER", Target: domain.PageWeather},
		{Label: "ABOUT", Target: domain.PageAbout},
	}
}

// AboutPage is the service page at 999.
type AboutPage struct{}

func (AboutPage) Number() domain.PageNumber { return domain.PageAbout }
func (AboutPage) Title() string             { return "ABOUT" }

func (AboutPage) Render(ctx context.Context) (string, error) {
	rows := []string{
		center("ABOUT THIS SERVICE"),
		rule(),
	}
	rows = append(rows, wrap(
		"A tribute to the broadcast teletext services of 1974-2012. "+
			"Pages are numbered 100-999 and fetched from the modern internet, "+
			"then held briefly in a local cache the way a real decoder held "+
			"the carousel.", 8)...)
	rows = append(rows, "", center("NO SIGNAL? BLAME THE AERIAL."))
	return strings.Join(rows, "\n"), nil
}

// EasterEggPage hides at 888.
type EasterEggPage struct{}

func (EasterEggPage) Number() domain.PageNumber { return domain.PageEasterEgg }
func (EasterEggPage) Title() string             { return "???" }

func (EasterEggPage) Render(ctx context.Context) (string, error) {
	rows := []string{
		"",
		center("*  .  *   .    *    .   *  .  *"),
		center(".   *   YOU FOUND PAGE 888  .  "),
		center("*  .    THE ENGINEERS' DEN   * "),
		center(".  *   .    *   .    *   .   . "),
		"",
		center("EST. 1974 - STILL ON AIR"),
	}
	return strings.Join(rows, "\n"), nil
}

// NewsPage is the service bulletin board at 101-105. Headlines are
// editorial content maintained with the build; there is no live wire
// feed.
type NewsPage struct {
	number domain.PageNumber
}

// NewNewsPage creates the news page for one number in the news block.
func NewNewsPage(n domain.PageNumber) *NewsPage {
	return &NewsPage{number: n}
}

func (p *NewsPage) Number() domain.PageNumber { return p.number }
func (p *NewsPage) Title() string             { return "NEWS" }

var newsBulletins = map[domain.PageNumber][]string{
	domain.PageNews: {
		"PORTAL BACK ON AIR AFTER 38 YEARS",
		"CACHE CAROUSEL NOW SPINS LOCALLY",
		"ENGINEERS DENY PAGE 888 EXISTS",
	},
	102: {
		"WEATHER SERVICE EXTENDS TO 5 DAYS",
		"FORECAST PAGE MOVES TO 200-209",
	},
	103: {
		"FINANCE DESK ADDS CRYPTO TICKER",
		"PRICES REFRESH EVERY TWO MINUTES",
	},
	104: {
		"TIME MACHINE OPENS ON PAGE 500",
		"BROWSE ANY DAY IN RECORDED HISTORY",
	},
	105: {
		"SETTINGS NOW REMEMBERED BETWEEN",
		"VISITS - SEE PAGE 900",
	},
}

func (p *NewsPage) Render(ctx context.Context) (string, error) {
	headlines, ok := newsBulletins[p.number]
	if !ok {
		headlines = newsBulletins[domain.PageNews]
	}
	rows := []string{center("SERVICE BULLETINS"), rule()}
	for _, h := range headlines {
		rows = append(rows, line(h), "")
	}
	rows = append(rows, rule(), center("MORE NEWS ON PAGES 101-105"))
	return strings.Join(rows, "\n"), nil
}

// TVGuidePage is the schedule block at 600-609.
type TVGuidePage struct {
	number domain.PageNumber
	now    func() time.Time
}

// NewTVGuidePage creates a TV guide page. now may be nil.
func NewTVGuidePage(n domain.PageNumber, now func() time.Time) *TVGuidePage {
	if now == nil {
		now = time.Now
	}
	return &TVGuidePage{number: n, now: now}
}

func (p *TVGuidePage) Number() domain.PageNumber { return p.number }
func (p *TVGuidePage) Title() string             { return "TV GUIDE" }

func (p *TVGuidePage) Render(ctx context.Context) (string, error) {
	day := p.now().Weekday()
	rows := []string{
		center("TONIGHT ON CHANNEL " + string('1'+byte(p.number-domain.PageTVGuide))),
		center(strings.ToUpper(day.String())),
		rule(),
		line("18:00  THE CACHE HIT QUIZ"),
		line("18:30  REGIONAL NEWS AND WEATHER"),
		line("19:00  ANTIQUES CODEBASE"),
		line("20:00  ONE MAN AND HIS MODEM"),
		line("21:00  FILM: THE NOT FOUND (404)"),
		line("23:00  CLOSEDOWN"),
		rule(),
		center("SCHEDULES SUBJECT TO CHANGE"),
	}
	return strings.Join(rows, "\n"), nil
}
