package tmdb

import (
	"cmp"
	"context"
	"fmt"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/sourcegraph/conc/pool"

	"github.com/cinelist/cinelist-server/internal/domain"
	domainerrors "github.com/cinelist/cinelist-server/internal/errors"
	"github.com/cinelist/cinelist-server/internal/normalize"
)

const detailSections = "videos,credits,images,watch/providers"

var categoryQueries = map[domain.Category]discoverQuery{
	domain.CategoryHollywood: {"movie", map[string]string{"with_origin_country": "US"}},
	domain.CategoryBollywood: {"movie", map[string]string{"with_origin_country": "IN"}},
	domain.CategoryWebSeries: {"tv", map[string]string{"with_original_language": "en"}},
	domain.CategoryAnime:     {"tv", map[string]string{"with_genres": "16", "with_origin_country": "JP"}},
	domain.CategoryAnimated:  {"movie", map[string]string{"with_genres": "16"}},
}

// tmdbType returns the TMDB path segment for kind.
func tmdbType(kind domain.MediumKind) string {
	if kind == domain.KindSeries {
		return "tv"
	}
	return "movie"
}

// Trending returns this week's trending movies and series.
func (c *Client) Trending(ctx context.Context) ([]domain.Media, error) {
	var resp pagedResponse
	if err := c.get(ctx, "trending/all/week", nil, &resp); err != nil {
		return nil, err
	}
	return c.mediaOnly(resp.Results), nil
}

// ListByCategory returns one page of popular titles for a browse category.
func (c *Client) ListByCategory(ctx context.Context, category domain.Category, page int) ([]domain.Media, error) {
	q, ok := categoryQueries[category]
	if !ok {
		return []domain.Media{}, nil
	}
	if page < 1 {
		page = 1
	}

	query := url.Values{}
	for k, v := range q.params {
		query.Set(k, v)
	}
	query.Set("sort_by", "popularity.desc")
	query.Set("page", strconv.Itoa(page))

	var resp pagedResponse
	if err := c.get(ctx, "discover/"+q.mediaType, query, &resp); err != nil {
		return nil, err
	}

	out := make([]domain.Media, 0, len(resp.Results))
	for _, r := range resp.Results {
		r.MediaType = q.mediaType
		out = append(out, c.normalizer.Media(r, &category))
	}
	return out, nil
}

// Search finds titles matching query. Queries naming a genre or keyword
// (for example "anime" or "superhero") browse discover results instead of
// running a free-text search.
func (c *Client) Search(ctx context.Context, query string) ([]domain.Media, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.Media{}, nil
	}
	if filter, ok := normalize.SearchKeyword(query); ok {
		return c.discoverKeyword(ctx, filter)
	}

	var resp pagedResponse
	params := url.Values{}
	params.Set("query", query)
	params.Set("include_adult", "false")
	params.Set("page", "1")
	if err := c.get(ctx, "search/multi", params, &resp); err != nil {
		return nil, err
	}

	var direct, known []normalize.Record
	for _, r := range resp.Results {
		switch {
		case normalize.IsMedia(r):
			direct = append(direct, r)
		case r.MediaType == "person":
			known = append(known, r.KnownFor...)
		}
	}

	seen := make(map[domain.ItemKey]int)
	var results []domain.Media
	for _, r := range append(direct, known...) {
		if !normalize.IsMedia(r) {
			continue
		}
		m := c.normalizer.Media(r, nil)
		if i, dup := seen[m.Key()]; dup {
			results[i] = m
			continue
		}
		seen[m.Key()] = len(results)
		results = append(results, m)
	}

	slices.SortStableFunc(results, compareRelevance)
	if results == nil {
		results = []domain.Media{}
	}
	return results, nil
}

func (c *Client) discoverKeyword(ctx context.Context, filter normalize.DiscoverFilter) ([]domain.Media, error) {
	type lookup struct {
		mediaType string
		ids       []int
	}
	lookups := []lookup{{"movie", filter.Movie}, {"tv", filter.Series}}

	p := pool.NewWithResults[[]domain.Media]().WithContext(ctx).WithCancelOnError()
	for _, l := range lookups {
		if len(l.ids) == 0 {
			continue
		}
		p.Go(func(ctx context.Context) ([]domain.Media, error) {
			query := url.Values{}
			query.Set(filter.Param, joinInts(l.ids))
			query.Set("sort_by", "popularity.desc")
			query.Set("page", "1")

			var resp pagedResponse
			if err := c.get(ctx, "discover/"+l.mediaType, query, &resp); err != nil {
				return nil, err
			}
			out := make([]domain.Media, 0, len(resp.Results))
			for _, r := range resp.Results {
				r.MediaType = l.mediaType
				out = append(out, c.normalizer.Media(r, nil))
			}
			return out, nil
		})
	}

	batches, err := p.Wait()
	if err != nil {
		return nil, err
	}
	results := []domain.Media{}
	for _, b := range batches {
		results = append(results, b...)
	}
	slices.SortStableFunc(results, func(a, b domain.Media) int {
		return cmp.Compare(b.Popularity, a.Popularity)
	})
	return results, nil
}

// Details returns the full record for one title, including cast, gallery,
// streaming providers and trailer.
func (c *Client) Details(ctx context.Context, kind domain.MediumKind, id int) (domain.Media, error) {
	if !kind.Valid() {
		return domain.Media{}, domainerrors.Validationf("unknown medium kind %q", kind)
	}
	query := url.Values{}
	query.Set("append_to_response", detailSections)

	var r normalize.Record
	if err := c.get(ctx, fmt.Sprintf("%s/%d", tmdbType(kind), id), query, &r); err != nil {
		return domain.Media{}, err
	}
	r.MediaType = tmdbType(kind)
	return c.normalizer.Media(r, nil), nil
}

// Recommendations returns titles TMDB recommends alongside the given one.
func (c *Client) Recommendations(ctx context.Context, kind domain.MediumKind, id int) ([]domain.Media, error) {
	if !kind.Valid() {
		return nil, domainerrors.Validationf("unknown medium kind %q", kind)
	}
	var resp pagedResponse
	if err := c.get(ctx, fmt.Sprintf("%s/%d/recommendations", tmdbType(kind), id), nil, &resp); err != nil {
		return nil, err
	}
	return c.mediaOnly(resp.Results), nil
}

// SeasonEpisodes returns the episodes of one season of a series.
func (c *Client) SeasonEpisodes(ctx context.Context, seriesID, season int) ([]domain.Episode, error) {
	var resp seasonResponse
	if err := c.get(ctx, fmt.Sprintf("tv/%d/season/%d", seriesID, season), nil, &resp); err != nil {
		return nil, err
	}
	out := make([]domain.Episode, 0, len(resp.Episodes))
	for _, e := range resp.Episodes {
		out = append(out, c.normalizer.Episode(e))
	}
	return out, nil
}

func (c *Client) mediaOnly(records []normalize.Record) []domain.Media {
	out := make([]domain.Media, 0, len(records))
	for _, r := range records {
		if normalize.IsMedia(r) {
			out = append(out, c.normalizer.Media(r, nil))
		}
	}
	return out
}

// compareRelevance orders by popularity, then newest release when both dates are known.
func compareRelevance(a, b domain.Media) int {
	if a.Popularity != b.Popularity {
		return cmp.Compare(b.Popularity, a.Popularity)
	}
	ta, errA := time.Parse(time.DateOnly, a.ReleaseDate)
	tb, errB := time.Parse(time.DateOnly, b.ReleaseDate)
	if errA != nil || errB != nil {
		return 0
	}
	return tb.Compare(ta)
}

func joinInts(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}
