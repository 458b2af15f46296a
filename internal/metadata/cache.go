package metadata

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/cinelist/cinelist-server/internal/domain"
)

const defaultTTL = 30 * time.Minute

// CachedProvider memoizes successful Provider responses for a fixed TTL.
// Errors are never cached. Callers get their own copy of every result, so
// mutating one never reaches the cache.
type CachedProvider struct {
	next    Provider
	cache   *gocache.Cache
	metrics *Metrics
	logger  *slog.Logger
}

// NewCachedProvider wraps next. A non-positive ttl disables caching.
func NewCachedProvider(next Provider, ttl time.Duration, metrics *Metrics, logger *slog.Logger) *CachedProvider {
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	var c *gocache.Cache
	if ttl > 0 {
		c = gocache.New(ttl, 2*ttl)
	}
	return &CachedProvider{next: next, cache: c, metrics: metrics, logger: logger}
}

// Flush drops all cached entries.
func (p *CachedProvider) Flush() {
	if p.cache != nil {
		p.cache.Flush()
	}
}

// Search implements Provider.
func (p *CachedProvider) Search(ctx context.Context, query string) ([]domain.Media, error) {
	return cached(p, "search", "search:"+query, cloneMediaList, func() ([]domain.Media, error) {
		return p.next.Search(ctx, query)
	})
}

// ListByCategory implements Provider.
func (p *CachedProvider) ListByCategory(ctx context.Context, category domain.Category, page int) ([]domain.Media, error) {
	key := fmt.Sprintf("category:%s:%d", category, page)
	return cached(p, "category", key, cloneMediaList, func() ([]domain.Media, error) {
		return p.next.ListByCategory(ctx, category, page)
	})
}

// Trending implements Provider.
func (p *CachedProvider) Trending(ctx context.Context) ([]domain.Media, error) {
	return cached(p, "trending", "trending", cloneMediaList, func() ([]domain.Media, error) {
		return p.next.Trending(ctx)
	})
}

// Details implements Provider.
func (p *CachedProvider) Details(ctx context.Context, kind domain.MediumKind, id int) (domain.Media, error) {
	key := fmt.Sprintf("details:%s:%d", kind, id)
	return cached(p, "details", key, domain.Media.Clone, func() (domain.Media, error) {
		return p.next.Details(ctx, kind, id)
	})
}

// Recommendations implements Provider.
func (p *CachedProvider) Recommendations(ctx context.Context, kind domain.MediumKind, id int) ([]domain.Media, error) {
	key := fmt.Sprintf("recommendations:%s:%d", kind, id)
	return cached(p, "recommendations", key, cloneMediaList, func() ([]domain.Media, error) {
		return p.next.Recommendations(ctx, kind, id)
	})
}

// SeasonEpisodes implements Provider.
func (p *CachedProvider) SeasonEpisodes(ctx context.Context, seriesID, season int) ([]domain.Episode, error) {
	key := fmt.Sprintf("season:%d:%d", seriesID, season)
	return cached(p, "season", key, slices.Clone[[]domain.Episode, domain.Episode], func() ([]domain.Episode, error) {
		return p.next.SeasonEpisodes(ctx, seriesID, season)
	})
}

func cloneMediaList(items []domain.Media) []domain.Media {
	if items == nil {
		return nil
	}
	out := make([]domain.Media, len(items))
	for i, m := range items {
		out[i] = m.Clone()
	}
	return out
}

func cached[T any](p *CachedProvider, op, key string, clone func(T) T, fetch func() (T, error)) (T, error) {
	if p.cache != nil {
		if v, ok := p.cache.Get(key); ok {
			p.metrics.Cache.WithLabelValues(op, "hit").Inc()
			return clone(v.(T)), nil
		}
		p.metrics.Cache.WithLabelValues(op, "miss").Inc()
	}

	v, err := fetch()
	if err != nil {
		p.metrics.Requests.WithLabelValues(op, "error").Inc()
		p.logger.Warn("metadata request failed", "op", op, "key", key, "error", err)
		return v, err
	}
	p.metrics.Requests.WithLabelValues(op, "ok").Inc()

	if p.cache != nil {
		p.cache.Set(key, clone(v), gocache.DefaultExpiration)
	}
	return v, nil
}
