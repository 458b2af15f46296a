// Package metadata defines the remote catalog boundary and a caching decorator over it.
package metadata

import (
	"context"

	"github.com/cinelist/cinelist-server/internal/domain"
	"github.com/cinelist/cinelist-server/internal/metadata/tmdb"
)

// Provider fetches normalized media records from a remote catalog.
// Single-record failures surface as NotFound or ProviderUnavailable domain errors.
type Provider interface {
	Search(ctx context.Context, query string) ([]domain.Media, error)
	ListByCategory(ctx context.Context, category domain.Category, page int) ([]domain.Media, error)
	Trending(ctx context.Context) ([]domain.Media, error)
	Details(ctx context.Context, kind domain.MediumKind, id int) (domain.Media, error)
	Recommendations(ctx context.Context, kind domain.MediumKind, id int) ([]domain.Media, error)
	SeasonEpisodes(ctx context.Context, seriesID, season int) ([]domain.Episode, error)
}

var _ Provider = (*tmdb.Client)(nil)
