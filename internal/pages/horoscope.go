package pages

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/teletext/internal/domain"
	"github.com/alexanderramin/teletext/internal/settings"
)

// zodiacSign is one entry of the horoscope block.
type zodiacSign struct {
	name       string
	startMonth int
	startDay   int
	endMonth   int
	endDay     int
}

// zodiacSigns in page order: 451 = Aries through 462 = Pisces.
var zodiacSigns = []zodiacSign{
	{"ARIES", 3, 21, 4, 19},
	{"TAURUS", 4, 20, 5, 20},
	{"GEMINI", 5, 21, 6, 20},
	{"CANCER", 6, 21, 7, 22},
	{"LEO", 7, 23, 8, 22},
	{"VIRGO", 8, 23, 9, 22},
	{"LIBRA", 9, 23, 10, 22},
	{"SCORPIO", 10, 23, 11, 21},
	{"SAGITTARIUS", 11, 22, 12, 21},
	{"CAPRICORN", 12, 22, 1, 19},
	{"AQUARIUS", 1, 20, 2, 18},
	{"PISCES", 2, 19, 3, 20},
}

var fortunes = []string{
	"A forgotten page number resurfaces. Let curiosity dial it.",
	"The stars favour patience today. Cached answers are still answers.",
	"An unexpected signal arrives from an old aerial. Tune in.",
	"Avoid rash decisions before teatime. Consult page 200 for storms.",
	"Someone close holds the remote control. Negotiate gently.",
	"Your lucky number has three digits and starts with a 4.",
	"A small sweep clears space for better things. Evict the expired.",
	"Fortune follows the sequential path. Take the next page, not a leap.",
}

// signFor returns the zodiac sign for a calendar day.
func signFor(month, day int) zodiacSign {
	for _, s := range zodiacSigns {
		if (month == s.startMonth && day >= s.startDay) ||
			(month == s.endMonth && day <= s.endDay) {
			return s
		}
	}
	return zodiacSigns[0]
}

// fortuneFor picks the day's fortune for a sign, stable within a day.
func fortuneFor(sign zodiacSign, now time.Time) string {
	seed := now.YearDay() + len(sign.name)*7
	return fortunes[seed%len(fortunes)]
}

// HoroscopeIndexPage is the sign directory at 450.
type HoroscopeIndexPage struct{}

func (HoroscopeIndexPage) Number() domain.PageNumber { return domain.PageHoroscopes }
func (HoroscopeIndexPage) Title() string             { return "HOROSCOPES" }

func (HoroscopeIndexPage) Render(ctx context.Context) (string, error) {
	rows := []string{center("THE STARS TONIGHT"), rule()}
	for i, s := range zodiacSigns {
		rows = append(rows, entry(s.name, int(domain.PageHoroscopes)+1+i))
	}
	rows = append(rows, rule(), entry("YOUR STARS", 463))
	return strings.Join(rows, "\n"), nil
}

// HoroscopeSignPage renders one sign at 451-462.
type HoroscopeSignPage struct {
	number domain.PageNumber
	sign   zodiacSign
	now    func() time.Time
}

// NewHoroscopeSignPages creates the twelve per-sign pages.
func NewHoroscopeSignPages(now func() time.Time) []*HoroscopeSignPage {
	if now == nil {
		now = time.Now
	}
	out := make([]*HoroscopeSignPage, len(zodiacSigns))
	for i, s := range zodiacSigns {
		out[i] = &HoroscopeSignPage{
			number: domain.PageHoroscopes + 1 + domain.PageNumber(i),
			sign:   s,
			now:    now,
		}
	}
	return out
}

func (p *HoroscopeSignPage) Number() domain.PageNumber { return p.number }
func (p *HoroscopeSignPage) Title() string             { return "HOROSCOPES" }

func (p *HoroscopeSignPage) Render(ctx context.Context) (string, error) {
	rows := []string{
		center(p.sign.name),
		center(fmt.Sprintf("%02d/%02d - %02d/%02d",
			p.sign.startDay, p.sign.startMonth, p.sign.endDay, p.sign.endMonth)),
		rule(),
	}
	rows = append(rows, wrap(fortuneFor(p.sign, p.now()), 6)...)
	return strings.Join(rows, "\n"), nil
}

// PersonalStarsPage is 463: the viewer's own sign, from the persisted
// birthday.
type PersonalStarsPage struct {
	prefs *settings.Manager
	now   func() time.Time
}

// NewPersonalStarsPage creates the personal horoscope page. now may be
// nil.
func NewPersonalStarsPage(prefs *settings.Manager, now func() time.Time) *PersonalStarsPage {
	if now == nil {
		now = time.Now
	}
	return &PersonalStarsPage{prefs: prefs, now: now}
}

func (p *PersonalStarsPage) Number() domain.PageNumber { return 463 }
func (p *PersonalStarsPage) Title() string             { return "YOUR STARS" }

func (p *PersonalStarsPage) Render(ctx context.Context) (string, error) {
	prefs := p.prefs.Load(ctx)
	if prefs.Birthday == nil {
		rows := []string{
			"",
			center("NO BIRTHDAY ON FILE"),
			"",
			center("SET ONE ON PAGE 900 TO SEE"),
			center("YOUR PERSONAL STARS"),
		}
		return strings.Join(rows, "\n"), nil
	}

	sign := signFor(prefs.Birthday.Month, prefs.Birthday.Day)
	rows := []string{
		center("YOUR STARS: " + sign.name),
		rule(),
	}
	rows = append(rows, wrap(fortuneFor(sign, p.now()), 6)...)
	return strings.Join(rows, "\n"), nil
}
