// Package appeals turns raw listing parameters into a predicate over the
// appeals table and runs the archive listing.
//
// Malformed values never fail a request: a date_from, date_to or
// category_id that does not parse simply contributes no condition.
package appeals

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"appeal-archive/internal/models"
)

// Any is the selector value meaning "no restriction".
const Any = "all"

var dateLayouts = []string{models.DateLayout, "2006-1-2"}

// Params are the raw query values as received, echoed back into the form.
type Params struct {
	DateFrom   string
	DateTo     string
	CategoryID string
	Status     string
}

func ParamsFrom(values url.Values) Params {
	return Params{
		DateFrom:   values.Get("date_from"),
		DateTo:     values.Get("date_to"),
		CategoryID: values.Get("category_id"),
		Status:     values.Get("status"),
	}
}

// Supplied reports whether any parameter carries a value, effective or not.
func (p Params) Supplied() bool {
	return p.DateFrom != "" || p.DateTo != "" || p.CategoryID != "" || p.Status != ""
}

// Filter is the effective set of conditions. Nil fields do not restrict.
type Filter struct {
	From       *models.Date
	To         *models.Date
	CategoryID *int64
	Status     *string
}

// ParseFilter builds the effective filter for p. When no parameter was
// supplied at all, results are limited to the year ending today.
func ParseFilter(p Params, today time.Time) Filter {
	var f Filter

	if d, ok := parseDate(p.DateFrom); ok {
		f.From = &d
	}
	if d, ok := parseDate(p.DateTo); ok {
		f.To = &d
	}
	if p.CategoryID != "" && p.CategoryID != Any {
		if id, err := strconv.ParseInt(strings.TrimSpace(p.CategoryID), 10, 64); err == nil {
			f.CategoryID = &id
		}
	}
	if p.Status != "" && p.Status != Any {
		status := p.Status
		f.Status = &status
	}

	if !p.Supplied() {
		from := models.DateOf(OneYearAgo(today))
		f.From = &from
	}
	return f
}

// Where renders f as a ?-placeholder condition over appeals aliased "a".
// An empty clause means no restriction.
func (f Filter) Where() (string, []any) {
	var (
		conds []string
		args  []any
	)
	if f.From != nil {
		conds = append(conds, "a.date >= ?")
		args = append(args, *f.From)
	}
	if f.To != nil {
		conds = append(conds, "a.date <= ?")
		args = append(args, *f.To)
	}
	if f.CategoryID != nil {
		conds = append(conds, "a.category_id = ?")
		args = append(args, *f.CategoryID)
	}
	if f.Status != nil {
		conds = append(conds, "a.status = ?")
		args = append(args, *f.Status)
	}
	return strings.Join(conds, " AND "), args
}

// OneYearAgo is the same month and day one year earlier. February 29
// has no counterpart in a common year and maps to February 28.
func OneYearAgo(today time.Time) time.Time {
	y, m, d := today.Date()
	if m == time.February && d == 29 {
		d = 28
	}
	return time.Date(y-1, m, d, 0, 0, 0, 0, today.Location())
}

func parseDate(s string) (models.Date, bool) {
	if s == "" {
		return models.Date{}, false
	}
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return models.Date{Time: t}, true
		}
	}
	return models.Date{}, false
}
