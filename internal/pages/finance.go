package pages

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/teletext/internal/api"
	"github.com/alexanderramin/teletext/internal/domain"
)

// tickerAssets is the fixed board shown on the finance pages.
var tickerAssets = []struct {
	id     string
	symbol string
}{
	{"bitcoin", "BTC"},
	{"ethereum", "ETH"},
	{"dogecoin", "DOGE"},
	{"monero", "XMR"},
	{"litecoin", "LTC"},
}

// FinancePage renders the crypto ticker block at 300-309.
type FinancePage struct {
	number domain.PageNumber
	client *api.CryptoClient
}

// NewFinancePage creates the finance page for one number in the block.
func NewFinancePage(n domain.PageNumber, client *api.CryptoClient) *FinancePage {
	return &FinancePage{number: n, client: client}
}

func (p *FinancePage) Number() domain.PageNumber      { return p.number }
func (p *FinancePage) Title() string                  { return "FINANCE" }
func (p *FinancePage) RefreshInterval() time.Duration { return 2 * time.Minute }

func (p *FinancePage) Render(ctx context.Context) (string, error) {
	ids := make([]string, len(tickerAssets))
	for i, a := range tickerAssets {
		ids[i] = a.id
	}

	prices, err := p.client.Prices(ctx, ids)
	if err != nil {
		return "", err
	}

	rows := []string{
		center("CRYPTO MARKETS / USD"),
		rule(),
		line("ASSET        PRICE        24H"),
	}

	// Fixed board order, not map order.
	for _, a := range tickerAssets {
		q, ok := prices.Quotes[a.id]
		if !ok {
			rows = append(rows, line(fmt.Sprintf("%-6s       NO DATA", a.symbol)))
			continue
		}
		arrow := "+"
		if q.Change24h < 0 {
			arrow = "-"
		}
		rows = append(rows, line(fmt.Sprintf("%-6s %12.2f   %s%5.2f%%",
			a.symbol, q.Price, arrow, abs(q.Change24h))))
	}

	rows = append(rows, rule(), center("PRICES ARE NOT INVESTMENT ADVICE"))
	if prices.Stale {
		rows = append(rows, "", staleNotice(prices.RateLimited))
	}
	return strings.Join(rows, "\n"), nil
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
