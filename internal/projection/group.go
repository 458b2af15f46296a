package projection

import (
	"cmp"
	"slices"
	"time"

	"github.com/cinelist/cinelist-server/internal/domain"
)

const (
	monthKeyLayout   = "2006-01"
	monthLabelLayout = "January 2006"
)

// Grouping selects how list items are bucketed.
type Grouping string

// Supported groupings.
const (
	GroupNone     Grouping = "none"
	GroupCategory Grouping = "category"
	GroupMonth    Grouping = "month"
)

// ParseGrouping accepts "", "none", "category" and "month".
func ParseGrouping(s string) (Grouping, bool) {
	switch Grouping(s) {
	case "", GroupNone:
		return GroupNone, true
	case GroupCategory, GroupMonth:
		return Grouping(s), true
	default:
		return "", false
	}
}

// Group is one bucket of items. For categories Key is the category slug (or the raw
// name for unknown categories); for months Key is YYYY-MM.
type Group struct {
	Key   string         `json:"key"`
	Label string         `json:"label"`
	Items []DetailedItem `json:"items"`
}

// SortByRecency returns a copy of items ordered by AddedOn, newest first.
// Items added at the same instant keep their relative order.
func SortByRecency(items []DetailedItem) []DetailedItem {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b DetailedItem) int {
		return b.AddedOn.Compare(a.AddedOn)
	})
	return out
}

// GroupByCategory buckets items by category in canonical category order.
// Unknown categories follow in first-seen order. Empty groups are omitted.
func GroupByCategory(items []DetailedItem) []Group {
	index := make(map[domain.Category]int)
	var groups []Group
	var cats []domain.Category
	for _, it := range items {
		i, ok := index[it.Category]
		if !ok {
			i = len(groups)
			index[it.Category] = i
			label := string(it.Category)
			key := it.Category.Slug()
			if key == "" {
				key = label
			}
			groups = append(groups, Group{Key: key, Label: label})
			cats = append(cats, it.Category)
		}
		groups[i].Items = append(groups[i].Items, it)
	}

	order := make([]int, len(groups))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(cats[a].Rank(), cats[b].Rank())
	})

	out := make([]Group, 0, len(groups))
	for _, i := range order {
		out = append(out, groups[i])
	}
	return out
}

// GroupByMonth buckets items by the calendar month of AddedOn in loc, newest month first.
// Items keep their relative order within a month.
func GroupByMonth(items []DetailedItem, loc *time.Location) []Group {
	loc = orUTC(loc)
	index := make(map[string]int)
	var groups []Group
	for _, it := range items {
		t := it.AddedOn.In(loc)
		key := t.Format(monthKeyLayout)
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, Group{Key: key, Label: t.Format(monthLabelLayout)})
		}
		groups[i].Items = append(groups[i].Items, it)
	}

	slices.SortStableFunc(groups, func(a, b Group) int {
		return cmp.Compare(b.Key, a.Key)
	})
	return groups
}

// AvailableMonths returns the distinct YYYY-MM months of AddedOn in loc, newest first.
func AvailableMonths(items []DetailedItem, loc *time.Location) []string {
	loc = orUTC(loc)
	months := make([]string, 0, len(items))
	for _, it := range items {
		months = append(months, it.AddedOn.In(loc).Format(monthKeyLayout))
	}
	slices.Sort(months)
	months = slices.Compact(months)
	slices.Reverse(months)
	return months
}

func orUTC(loc *time.Location) *time.Location {
	if loc == nil {
		return time.UTC
	}
	return loc
}
