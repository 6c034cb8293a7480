package pages

import (
	"fmt"
	"strings"
)

// Cols is the fixed teletext screen width.
const Cols = 40

// line pads or truncates s to exactly Cols characters.
func line(s string) string {
	if len(s) > Cols {
		return s[:Cols]
	}
	return s + strings.Repeat(" ", Cols-len(s))
}

// center centers s within Cols characters.
func center(s string) string {
	if len(s) >= Cols {
		return s[:Cols]
	}
	pad := (Cols - len(s)) / 2
	return line(strings.Repeat(" ", pad) + s)
}

// rule is a full-width separator row.
func rule() string {
	return strings.Repeat("-", Cols)
}

// entry formats an index row: a label on the left, a page number on the
// right, dots in between.
func entry(label string, page int) string {
	num := fmt.Sprintf("%d", page)
	dots := Cols - len(label) - len(num) - 2
	if dots < 1 {
		dots = 1
	}
	return line(fmt.Sprintf("%s %s %s", label, strings.Repeat(".", dots), num))
}

// wrap breaks text into Cols-width rows on word boundaries, returning
// at most max rows. The last row is ellipsized when text is longer.
func wrap(text string, max int) []string {
	words := strings.Fields(text)
	var rows []string
	var cur string
	for _, w := range words {
		switch {
		case cur == "":
			cur = w
		case len(cur)+1+len(w) <= Cols:
			cur += " " + w
		default:
			rows = append(rows, line(cur))
			cur = w
		}
	}
	if cur != "" {
		rows = append(rows, line(cur))
	}
	if len(rows) > max {
		rows = rows[:max]
		last := strings.TrimRight(rows[max-1], " ")
		if len(last) > Cols-3 {
			last = last[:Cols-3]
		}
		rows[max-1] = line(last + "...")
	}
	return rows
}

// staleNotice is the standard "using cached data" row.
func staleNotice(rateLimited bool) string {
	if rateLimited {
		return center("* RATE LIMITED - SHOWING CACHED DATA *")
	}
	return center("* LIVE FEED DOWN - SHOWING CACHED DATA *")
}
