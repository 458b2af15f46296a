package projection

import (
	"context"
	"time"

	"github.com/cinelist/cinelist-server/internal/domain"
)

// ListDetail is the resolved view of one list.
type ListDetail struct {
	ListID          string         `json:"list_id"`
	Name            string         `json:"name"`
	Pinned          bool           `json:"pinned"`
	Items           []DetailedItem `json:"items"`
	Groups          []Group        `json:"groups,omitempty"`
	AvailableMonths []string       `json:"available_months"`
}

// Projector builds list detail views.
type Projector struct {
	resolver *Resolver
	loc      *time.Location
}

// NewProjector creates a projector. Month keys and date ranges are evaluated in loc
// (UTC when nil).
func NewProjector(resolver *Resolver, loc *time.Location) *Projector {
	return &Projector{resolver: resolver, loc: orUTC(loc)}
}

// Resolve exposes the underlying resolver.
func (p *Projector) Resolve(ctx context.Context, items []domain.ListItem) []DetailedItem {
	return p.resolver.Resolve(ctx, items)
}

// Project resolves the list, sorts it newest first, applies filter, and groups the
// result. AvailableMonths covers every resolved item so a month picker can offer
// months the current filter hides.
func (p *Projector) Project(ctx context.Context, list domain.UserList, filter Filter, grouping Grouping) (ListDetail, error) {
	if err := filter.Validate(); err != nil {
		return ListDetail{}, err
	}

	resolved := SortByRecency(p.resolver.Resolve(ctx, list.Items))
	if err := ctx.Err(); err != nil {
		return ListDetail{}, err
	}
	items := filter.Apply(resolved, p.loc)

	detail := ListDetail{
		ListID:          list.ID,
		Name:            list.Name,
		Pinned:          list.Pinned,
		Items:           items,
		AvailableMonths: AvailableMonths(resolved, p.loc),
	}
	switch grouping {
	case GroupCategory:
		detail.Groups = GroupByCategory(items)
	case GroupMonth:
		detail.Groups = GroupByMonth(items, p.loc)
	}
	return detail, nil
}
