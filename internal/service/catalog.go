package service

import (
	"context"
	"strings"

	"github.com/cinelist/cinelist-server/internal/domain"
	domainerrors "github.com/cinelist/cinelist-server/internal/errors"
	"github.com/cinelist/cinelist-server/internal/metadata"
)

// CatalogService validates browse requests and forwards them to the metadata provider.
type CatalogService struct {
	provider metadata.Provider
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(provider metadata.Provider) *CatalogService {
	return &CatalogService{provider: provider}
}

// Search finds movies and series by free text or genre keyword.
func (s *CatalogService) Search(ctx context.Context, query string) ([]domain.Media, error) {
	if strings.TrimSpace(query) == "" {
		return []domain.Media{}, nil
	}
	return s.provider.Search(ctx, query)
}

// Trending returns this week's trending titles.
func (s *CatalogService) Trending(ctx context.Context) ([]domain.Media, error) {
	return s.provider.Trending(ctx)
}

// Category lists one page of a browse category identified by its slug.
func (s *CatalogService) Category(ctx context.Context, slug string, page int) ([]domain.Media, error) {
	category, ok := domain.CategoryFromSlug(slug)
	if !ok {
		return nil, domainerrors.NotFoundf("unknown category %q", slug)
	}
	if page < 1 {
		page = 1
	}
	return s.provider.ListByCategory(ctx, category, page)
}

// Details returns the full record for one title.
func (s *CatalogService) Details(ctx context.Context, kind string, mediaID int) (domain.Media, error) {
	k, err := parseTarget(kind, mediaID)
	if err != nil {
		return domain.Media{}, err
	}
	return s.provider.Details(ctx, k, mediaID)
}

// Recommendations returns titles related to one title.
func (s *CatalogService) Recommendations(ctx context.Context, kind string, mediaID int) ([]domain.Media, error) {
	k, err := parseTarget(kind, mediaID)
	if err != nil {
		return nil, err
	}
	return s.provider.Recommendations(ctx, k, mediaID)
}

// Season returns the episodes of one season of a series.
func (s *CatalogService) Season(ctx context.Context, seriesID, season int) ([]domain.Episode, error) {
	if seriesID <= 0 {
		return nil, domainerrors.Validation("series id must be positive")
	}
	if season < 0 {
		return nil, domainerrors.Validation("season number cannot be negative")
	}
	return s.provider.SeasonEpisodes(ctx, seriesID, season)
}

func parseTarget(kind string, mediaID int) (domain.MediumKind, error) {
	k, ok := domain.ParseMediumKind(kind)
	if !ok {
		return "", domainerrors.Validationf("unknown medium kind %q", kind)
	}
	if mediaID <= 0 {
		return "", domainerrors.Validation("media id must be positive")
	}
	return k, nil
}
