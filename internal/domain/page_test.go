package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidPage(t *testing.T) {
	tests := []struct {
		name string
		page PageNumber
		want bool
	}{
		{"home page", 100, true},
		{"last news page", 109, true},
		{"gap between news and weather", 110, false},
		{"weather start", 200, true},
		{"not found page is itself valid", 404, true},
		{"just below not found", 403, false},
		{"horoscope personal page", 463, true},
		{"above horoscope range", 464, false},
		{"two digits", 99, false},
		{"four digits", 1000, false},
		{"zero", 0, false},
		{"negative", -1, false},
		{"about page", 999, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidPage(tt.page))
		})
	}
}

func TestSectionOf(t *testing.T) {
	assert.Equal(t, SectionNews, SectionOf(100))
	assert.Equal(t, SectionNews, SectionOf(105))
	assert.Equal(t, SectionWeather, SectionOf(209))
	assert.Equal(t, SectionSettings, SectionOf(900))
	assert.Equal(t, Section(""), SectionOf(150))
}

func TestNextPage_CrossesRangeBoundary(t *testing.T) {
	// Walking off the end of one range lands on the start of the next.
	next, ok := NextPage(109)
	require.True(t, ok)
	assert.Equal(t, PageNumber(200), next)

	next, ok = NextPage(309)
	require.True(t, ok)
	assert.Equal(t, PageNumber(404), next)

	next, ok = NextPage(404)
	require.True(t, ok)
	assert.Equal(t, PageNumber(450), next)
}

func TestNextPage_WithinRange(t *testing.T) {
	next, ok := NextPage(101)
	require.True(t, ok)
	assert.Equal(t, PageNumber(102), next)
}

func TestNextPage_LastPage(t *testing.T) {
	_, ok := NextPage(999)
	assert.False(t, ok)
}

func TestNextPage_InvalidPage(t *testing.T) {
	_, ok := NextPage(150)
	assert.False(t, ok)
}

func TestPrevPage_CrossesRangeBoundary(t *testing.T) {
	prev, ok := PrevPage(200)
	require.True(t, ok)
	assert.Equal(t, PageNumber(109), prev)

	prev, ok = PrevPage(450)
	require.True(t, ok)
	assert.Equal(t, PageNumber(404), prev)
}

func TestPrevPage_FirstPage(t *testing.T) {
	_, ok := PrevPage(100)
	assert.False(t, ok)
}

func TestNextPrevRoundTrip(t *testing.T) {
	// Every page except the endpoints round-trips through its neighbor.
	for _, r := range PageRanges {
		for n := r.Min; n <= r.Max; n++ {
			next, ok := NextPage(n)
			if !ok {
				assert.Equal(t, PageNumber(999), n)
				continue
			}
			back, ok := PrevPage(next)
			require.True(t, ok)
			assert.Equal(t, n, back)
		}
	}
}

func TestQuickAccess_AllTargetsValid(t *testing.T) {
	require.Len(t, QuickAccess, 9)
	for digit, page := range QuickAccess {
		assert.True(t, ValidPage(page), "digit %c maps to invalid page %d", digit, page)
	}
	assert.Equal(t, PageNews, QuickAccess['1'])
	assert.Equal(t, PageAbout, QuickAccess['9'])
}

func TestPageRanges_SortedAndDisjoint(t *testing.T) {
	for i := 1; i < len(PageRanges); i++ {
		assert.Greater(t, PageRanges[i].Min, PageRanges[i-1].Max)
	}
	for _, r := range PageRanges {
		assert.LessOrEqual(t, r.Min, r.Max)
		assert.GreaterOrEqual(t, r.Min, PageNumber(100))
		assert.LessOrEqual(t, r.Max, PageNumber(999))
	}
}
