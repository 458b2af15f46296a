package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinelist/cinelist-server/internal/domain"
	domainerrors "github.com/cinelist/cinelist-server/internal/errors"
)

func TestCatalogService_Category(t *testing.T) {
	catalog := newFakeCatalog(inception, breakingBad)
	svc := NewCatalogService(catalog)

	got, err := svc.Category(context.Background(), "web-series", 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Breaking Bad", got[0].Title)

	_, err = svc.Category(context.Background(), "documentaries", 1)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestCatalogService_Details(t *testing.T) {
	svc := NewCatalogService(newFakeCatalog(inception, breakingBad))
	ctx := context.Background()

	m, err := svc.Details(ctx, "tv", 1396)
	require.NoError(t, err)
	assert.Equal(t, domain.KindSeries, m.Kind)

	_, err = svc.Details(ctx, "book", 1)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	_, err = svc.Details(ctx, "movie", 0)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)

	_, err = svc.Details(ctx, "movie", 42)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestCatalogService_SearchBlankSkipsProvider(t *testing.T) {
	catalog := newFakeCatalog(inception)
	svc := NewCatalogService(catalog)

	got, err := svc.Search(context.Background(), "   ")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Empty(t, catalog.calls)
}

func TestCatalogService_Season(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.episodes[1396] = []domain.Episode{{ID: 62085, EpisodeNumber: 1, SeasonNumber: 1}}
	svc := NewCatalogService(catalog)

	eps, err := svc.Season(context.Background(), 1396, 1)
	require.NoError(t, err)
	require.Len(t, eps, 1)

	_, err = svc.Season(context.Background(), 1396, -1)
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}
