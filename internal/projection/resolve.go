// Package projection turns a stored list into the detailed, filtered and grouped
// view shown on a list page.
package projection

import (
	"context"
	"log/slog"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/cinelist/cinelist-server/internal/domain"
)

const defaultConcurrency = 8

// MediaSource resolves one media record. metadata.Provider satisfies it.
type MediaSource interface {
	Details(ctx context.Context, kind domain.MediumKind, id int) (domain.Media, error)
}

// DetailedItem is a list item joined with its resolved media record.
type DetailedItem struct {
	domain.Media
	UserRating        float64   `json:"user_rating"`
	AddedOn           time.Time `json:"added_on"`
	WatchedEpisodeIDs []int     `json:"watched_episode_ids"`
}

// Resolver fetches media for list items with bounded concurrency.
type Resolver struct {
	source      MediaSource
	concurrency int
	logger      *slog.Logger
}

// NewResolver creates a resolver. A non-positive concurrency uses the default of 8.
func NewResolver(source MediaSource, concurrency int, logger *slog.Logger) *Resolver {
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	return &Resolver{source: source, concurrency: concurrency, logger: logger}
}

// Resolve looks up every item and returns the successes in input order.
// Items whose media cannot be resolved are dropped; one failure never aborts the batch.
func (r *Resolver) Resolve(ctx context.Context, items []domain.ListItem) []DetailedItem {
	resolved := make([]DetailedItem, len(items))
	ok := make([]bool, len(items))

	p := pool.New().WithMaxGoroutines(r.concurrency).WithContext(ctx)
	for i, item := range items {
		p.Go(func(ctx context.Context) error {
			m, err := r.source.Details(ctx, item.Kind, item.MediaID)
			if err != nil {
				r.logger.Debug("dropping unresolved list item",
					"media_id", item.MediaID,
					"kind", item.Kind,
					"error", err,
				)
				return nil
			}
			resolved[i] = DetailedItem{
				Media:             m,
				UserRating:        item.UserRating,
				AddedOn:           item.AddedOn,
				WatchedEpisodeIDs: item.WatchedEpisodeIDs,
			}
			ok[i] = true
			return nil
		})
	}
	_ = p.Wait()

	out := make([]DetailedItem, 0, len(items))
	for i := range resolved {
		if ok[i] {
			out = append(out, resolved[i])
		}
	}
	return out
}
