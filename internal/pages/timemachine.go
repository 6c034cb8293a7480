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

// eventsPerPage is how many history entries fit on one screen.
const eventsPerPage = 4

// TimeMachinePage renders "on this day" history at 500-504. Page 500
// shows the first batch of events; 501-504 page deeper into the feed.
// The browsed date comes from the time machine state when active, else
// today.
type TimeMachinePage struct {
	number domain.PageNumber
	client *api.OnThisDayClient
	prefs  *settings.Manager
	now    func() time.Time
}

// NewTimeMachinePages creates the five time machine pages. now may be
// nil.
func NewTimeMachinePages(client *api.OnThisDayClient, prefs *settings.Manager, now func() time.Time) []*TimeMachinePage {
	if now == nil {
		now = time.Now
	}
	out := make([]*TimeMachinePage, 5)
	for i := range out {
		out[i] = &TimeMachinePage{
			number: domain.PageTimeMachine + domain.PageNumber(i),
			client: client,
			prefs:  prefs,
			now:    now,
		}
	}
	return out
}

func (p *TimeMachinePage) Number() domain.PageNumber { return p.number }
func (p *TimeMachinePage) Title() string             { return "TIME MACHINE" }

func (p *TimeMachinePage) Render(ctx context.Context) (string, error) {
	date := p.now()
	banner := "ON THIS DAY"
	if tm := p.prefs.TimeMachine(ctx); tm.Active {
		date = tm.Date
		banner = "TIME MACHINE ENGAGED"
	}

	res, err := p.client.Events(ctx, int(date.Month()), date.Day())
	if err != nil {
		return "", err
	}

	rows := []string{
		center(banner),
		center(strings.ToUpper(date.Format("2 January"))),
		rule(),
	}

	offset := int(p.number-domain.PageTimeMachine) * eventsPerPage
	if offset >= len(res.Events) {
		rows = append(rows, "", center("NO MORE EVENTS THIS DEEP"),
			"", center(fmt.Sprintf("BACK TO %d FOR THE START", domain.PageTimeMachine)))
		return strings.Join(rows, "\n"), nil
	}

	end := offset + eventsPerPage
	if end > len(res.Events) {
		end = len(res.Events)
	}
	for _, ev := range res.Events[offset:end] {
		rows = append(rows, line(fmt.Sprintf("%d", ev.Year)))
		rows = append(rows, wrap(ev.Text, 3)...)
		rows = append(rows, "")
	}

	if res.Stale {
		rows = append(rows, staleNotice(false))
	}
	return strings.Join(rows, "\n"), nil
}

func (p *TimeMachinePage) FastextButtons() [4]FastextButton {
	return [4]FastextButton{
		{Label: "INDEX", Target: domain.PageHome},
		{Label: "FIRST", Target: domain.PageTimeMachine},
		{Label: "DEEPER", Target: p.deeper()},
		{Label: "NEWS", Target: domain.PageNews},
	}
}

func (p *TimeMachinePage) deeper() domain.PageNumber {
	if next, ok := domain.NextPage(p.number); ok && domain.SectionOf(next) == domain.SectionTimeMachine {
		return next
	}
	return domain.PageTimeMachine
}
