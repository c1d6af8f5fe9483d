package appeals

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"appeal-archive/internal/models"
)

var today = time.Date(2026, time.October, 19, 15, 30, 0, 0, time.UTC)

func TestOneYearAgo(t *testing.T) {
	tests := []struct {
		in   time.Time
		want string
	}{
		{time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC), "2025-10-19"},
		{time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), "2023-02-28"},
		{time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), "2024-03-01"},
		{time.Date(2025, 2, 28, 0, 0, 0, 0, time.UTC), "2024-02-28"},
		{time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), "2025-01-01"},
	}
	for _, tt := range tests {
		got := OneYearAgo(tt.in)
		assert.Equal(t, tt.want, got.Format(models.DateLayout), "from %s", tt.in.Format(models.DateLayout))
	}
}

func TestParseFilterDefaultWindow(t *testing.T) {
	f := ParseFilter(Params{}, today)

	require.NotNil(t, f.From)
	assert.Equal(t, "2025-10-19", f.From.String())
	assert.Nil(t, f.To)
	assert.Nil(t, f.CategoryID)
	assert.Nil(t, f.Status)

	where, args := f.Where()
	assert.Equal(t, "a.date >= ?", where)
	assert.Equal(t, []any{*f.From}, args)
}

func TestParseFilterExplicitAllDisablesWindow(t *testing.T) {
	f := ParseFilter(Params{CategoryID: "all", Status: "all"}, today)

	assert.Equal(t, Filter{}, f)
	where, args := f.Where()
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestParseFilterMalformedValuesAreIgnored(t *testing.T) {
	tests := []struct {
		name string
		p    Params
	}{
		{"bad from", Params{DateFrom: "yesterday"}},
		{"bad to", Params{DateTo: "2025-13-01"}},
		{"impossible day", Params{DateFrom: "2025-02-30"}},
		{"bad category", Params{CategoryID: "roads"}},
		{"float category", Params{CategoryID: "1.5"}},
		{"all malformed", Params{DateFrom: "x", DateTo: "y", CategoryID: "z"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := ParseFilter(tt.p, today)
			// supplied but ineffective: no condition and no default window
			assert.Equal(t, Filter{}, f)
		})
	}
}

func TestParseFilterCombined(t *testing.T) {
	f := ParseFilter(Params{
		DateFrom:   "2024-01-05",
		DateTo:     "2024-6-30",
		CategoryID: " 7 ",
		Status:     "закрыто",
	}, today)

	where, args := f.Where()
	assert.Equal(t, "a.date >= ? AND a.date <= ? AND a.category_id = ? AND a.status = ?", where)
	require.Len(t, args, 4)
	assert.Equal(t, models.NewDate(2024, time.January, 5), args[0])
	assert.Equal(t, models.NewDate(2024, time.June, 30), args[1])
	assert.Equal(t, int64(7), args[2])
	assert.Equal(t, "закрыто", args[3])
}

func TestParseFilterStatusOnly(t *testing.T) {
	f := ParseFilter(Params{Status: "открыто"}, today)

	assert.Nil(t, f.From)
	require.NotNil(t, f.Status)
	assert.Equal(t, "открыто", *f.Status)
}

func TestParamsFrom(t *testing.T) {
	values, err := url.ParseQuery("date_from=2025-01-01&category_id=all&status=&theme=accessible")
	require.NoError(t, err)

	p := ParamsFrom(values)
	assert.Equal(t, Params{DateFrom: "2025-01-01", CategoryID: "all"}, p)
	assert.True(t, p.Supplied())

	assert.False(t, ParamsFrom(url.Values{"status": {""}, "theme": {"normal"}}).Supplied())
}
