package projection

import (
	"strings"
	"time"

	domainerrors "github.com/cinelist/cinelist-server/internal/errors"
	"github.com/cinelist/cinelist-server/internal/normalize"
)

// DateRange is an inclusive span of calendar days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Filter narrows a list view. Month and Range are mutually exclusive.
type Filter struct {
	Title string
	Month string
	Range *DateRange
}

// WithMonth returns f restricted to one YYYY-MM month, clearing any date range.
func (f Filter) WithMonth(month string) Filter {
	f.Month = month
	f.Range = nil
	return f
}

// WithRange returns f restricted to the days start through end inclusive, clearing any month.
func (f Filter) WithRange(start, end time.Time) Filter {
	f.Range = &DateRange{Start: start, End: end}
	f.Month = ""
	return f
}

// Validate checks the month format, the range order, and that month and range are not both set.
func (f Filter) Validate() error {
	if f.Month != "" && f.Range != nil {
		return domainerrors.Validation("month and date range filters cannot be combined")
	}
	if f.Month != "" {
		if _, err := time.Parse(monthKeyLayout, f.Month); err != nil {
			return domainerrors.Validationf("month must be formatted YYYY-MM, got %q", f.Month)
		}
	}
	if f.Range != nil && dayStart(f.Range.End, time.UTC).Before(dayStart(f.Range.Start, time.UTC)) {
		return domainerrors.Validation("date range end is before start")
	}
	return nil
}

// Apply returns the items matching every set criterion, in their original order.
func (f Filter) Apply(items []DetailedItem, loc *time.Location) []DetailedItem {
	loc = orUTC(loc)
	title := normalize.Fold(f.Title)

	var from, to time.Time
	if f.Range != nil {
		from = dayStart(f.Range.Start, loc)
		to = dayStart(f.Range.End, loc).AddDate(0, 0, 1).Add(-time.Nanosecond)
	}

	out := make([]DetailedItem, 0, len(items))
	for _, it := range items {
		if title != "" && !strings.Contains(normalize.Fold(it.Title), title) {
			continue
		}
		if f.Month != "" && it.AddedOn.In(loc).Format(monthKeyLayout) != f.Month {
			continue
		}
		if f.Range != nil && (it.AddedOn.Before(from) || it.AddedOn.After(to)) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// dayStart returns midnight of t's calendar date, interpreted in loc.
func dayStart(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
