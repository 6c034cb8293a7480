package domain

// PageNumber identifies a navigable teletext page. Valid numbers are
// three digits (100-999) and must fall inside one of the ranges in
// PageRanges.
type PageNumber int

// Well-known pages. These are part of the public numbering scheme and
// must not change: viewers type them directly.
const (
	PageHome        PageNumber = 100
	PageNews        PageNumber = 101
	PageWeather     PageNumber = 200
	PageFinance     PageNumber = 300
	PageNotFound    PageNumber = 404
	PageHoroscopes  PageNumber = 450
	PageTimeMachine PageNumber = 500
	PageTVGuide     PageNumber = 600
	PageEasterEgg   PageNumber = 888
	PageSettings    PageNumber = 900
	PageAbout       PageNumber = 999
)

// Section names the application area a page range belongs to.
type Section string

const (
	SectionNews        Section = "news"
	SectionWeather     Section = "weather"
	SectionFinance     Section = "finance"
	SectionNotFound    Section = "not_found"
	SectionHoroscopes  Section = "horoscopes"
	SectionTimeMachine Section = "time_machine"
	SectionTVGuide     Section = "tv_guide"
	SectionEasterEgg   Section = "easter_egg"
	SectionSettings    Section = "settings"
	SectionAbout       Section = "about"
)

// PageRange is an inclusive run of valid page numbers belonging to one
// section. Ranges never overlap and are kept sorted by Min.
type PageRange struct {
	Min     PageNumber
	Max     PageNumber
	Section Section
}

// Contains reports whether n falls inside the range.
func (r PageRange) Contains(n PageNumber) bool {
	return n >= r.Min && n <= r.Max
}

// PageRanges is the routing table for the whole service: a page number
// is navigable iff it is inside exactly one of these ranges. The index
// page 100 lives at the head of the news block, as it did on broadcast
// teletext.
var PageRanges = []PageRange{
	{Min: 100, Max: 109, Section: SectionNews},
	{Min: 200, Max: 209, Section: SectionWeather},
	{Min: 300, Max: 309, Section: SectionFinance},
	{Min: 404, Max: 404, Section: SectionNotFound},
	{Min: 450, Max: 463, Section: SectionHoroscopes},
	{Min: 500, Max: 504, Section: SectionTimeMachine},
	{Min: 600, Max: 609, Section: SectionTVGuide},
	{Min: 888, Max: 888, Section: SectionEasterEgg},
	{Min: 900, Max: 900, Section: SectionSettings},
	{Min: 999, Max: 999, Section: SectionAbout},
}

// QuickAccess maps the digit keys 1-9 to section entry points. The
// mapping is a compatibility surface for keyboard shortcuts and must be
// preserved verbatim.
var QuickAccess = map[rune]PageNumber{
	'1': PageNews,
	'2': PageWeather,
	'3': PageFinance,
	'4': PageHoroscopes,
	'5': PageTimeMachine,
	'6': PageTVGuide,
	'7': PageEasterEgg,
	'8': PageSettings,
	'9': PageAbout,
}

// ValidPage reports whether n is a navigable page number.
func ValidPage(n PageNumber) bool {
	_, ok := RangeOf(n)
	return ok
}

// RangeOf returns the range containing n, if any.
func RangeOf(n PageNumber) (PageRange, bool) {
	for _, r := range PageRanges {
		if r.Contains(n) {
			return r, true
		}
	}
	return PageRange{}, false
}

// SectionOf returns the section a page belongs to, or the empty string
// for invalid pages.
func SectionOf(n PageNumber) Section {
	r, ok := RangeOf(n)
	if !ok {
		return ""
	}
	return r.Section
}

// NextPage returns the numerically adjacent valid page after n, hopping
// to the start of the next range when n sits at a range boundary.
// ok is false when n is the last valid page or is itself invalid.
func NextPage(n PageNumber) (PageNumber, bool) {
	for i, r := range PageRanges {
		if !r.Contains(n) {
			continue
		}
		if n < r.Max {
			return n + 1, true
		}
		if i+1 < len(PageRanges) {
			return PageRanges[i+1].Min, true
		}
		return 0, false
	}
	return 0, false
}

// PrevPage is the mirror of NextPage, hopping to the end of the
// previous range.
func PrevPage(n PageNumber) (PageNumber, bool) {
	for i, r := range PageRanges {
		if !r.Contains(n) {
			continue
		}
		if n > r.Min {
			return n - 1, true
		}
		if i > 0 {
			return PageRanges[i-1].Max, true
		}
		return 0, false
	}
	return 0, false
}
