package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinelist/cinelist-server/internal/domain"
	domainerrors "github.com/cinelist/cinelist-server/internal/errors"
	"github.com/cinelist/cinelist-server/internal/listdoc"
	"github.com/cinelist/cinelist-server/internal/projection"
	"github.com/cinelist/cinelist-server/internal/store"
)

var (
	inception = domain.Media{
		ID: 27205, Kind: domain.KindMovie, Title: "Inception",
		ReleaseDate: "2010-07-15", Genres: []string{"Science Fiction"},
		Category: domain.CategoryHollywood, OriginalLanguage: "en",
	}
	breakingBad = domain.Media{
		ID: 1396, Kind: domain.KindSeries, Title: "Breaking Bad",
		ReleaseDate: "2008-01-20", Genres: []string{"Drama"},
		Category: domain.CategoryWebSeries, OriginalLanguage: "en",
	}
)

func setupTransferService(t *testing.T, catalog *fakeCatalog) (*TransferService, *store.MemoryStore) {
	t.Helper()
	s := store.NewMemoryStore()
	lists := NewListService(s, nil, quietLogger())
	resolver := projection.NewResolver(catalog, 4, quietLogger())
	return NewTransferService(lists, resolver, quietLogger()), s
}

func TestTransferService_Export(t *testing.T) {
	svc, s := setupTransferService(t, newFakeCatalog(inception, breakingBad))
	added := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	seedUser(t, s, "usr-1", domain.UserList{
		ID:   "lst-1",
		Name: "Weekend Picks",
		Items: []domain.ListItem{
			{MediaID: 1396, Kind: domain.KindSeries, UserRating: 4, AddedOn: added, WatchedEpisodeIDs: []int{1}},
			{MediaID: 27205, Kind: domain.KindMovie, UserRating: 4.5, AddedOn: added},
		},
	})

	doc, err := svc.Export(context.Background(), "usr-1", "lst-1")
	require.NoError(t, err)

	assert.Equal(t, "Weekend Picks", doc.ListName)
	require.Len(t, doc.Items, 2)
	assert.Equal(t, "Breaking Bad", doc.Items[0].Title)
	assert.Equal(t, 4.0, doc.Items[0].UserRating)
	assert.Equal(t, domain.KindMovie, doc.Items[1].MediaType)
	assert.Equal(t, 4.5, doc.Items[1].UserRating)
}

func TestTransferService_Export_SkipsUnresolvable(t *testing.T) {
	svc, s := setupTransferService(t, newFakeCatalog(inception))
	seedUser(t, s, "usr-1", domain.UserList{
		ID:   "lst-1",
		Name: "Mixed",
		Items: []domain.ListItem{
			{MediaID: 999, Kind: domain.KindMovie, UserRating: 3},
			{MediaID: 27205, Kind: domain.KindMovie, UserRating: 5},
		},
	})

	doc, err := svc.Export(context.Background(), "usr-1", "lst-1")
	require.NoError(t, err)
	require.Len(t, doc.Items, 1)
	assert.Equal(t, 27205, doc.Items[0].ID)
}

func TestTransferService_Export_UnknownList(t *testing.T) {
	svc, s := setupTransferService(t, newFakeCatalog())
	seedUser(t, s, "usr-1")

	_, err := svc.Export(context.Background(), "usr-1", "nope")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestTransferService_RoundTrip(t *testing.T) {
	svc, s := setupTransferService(t, newFakeCatalog(inception, breakingBad))
	original := domain.UserList{
		ID:   "lst-1",
		Name: "Weekend Picks",
		Items: []domain.ListItem{
			{MediaID: 27205, Kind: domain.KindMovie, UserRating: 4.5},
			{MediaID: 1396, Kind: domain.KindSeries, UserRating: 2},
		},
	}
	seedUser(t, s, "usr-1", original)
	ctx := context.Background()

	doc, err := svc.Export(ctx, "usr-1", "lst-1")
	require.NoError(t, err)
	data, err := listdoc.Encode(doc)
	require.NoError(t, err)

	u, imported, err := svc.Import(ctx, "usr-1", data)
	require.NoError(t, err)

	assert.NotEqual(t, original.ID, imported.ID)
	assert.Equal(t, original.Name, imported.Name)
	assert.False(t, imported.Pinned)
	require.Len(t, imported.Items, len(original.Items))
	for i, item := range imported.Items {
		assert.Equal(t, original.Items[i].Key(), item.Key())
		assert.Equal(t, original.Items[i].UserRating, item.UserRating)
	}
	require.Len(t, u.Lists, 2)
	assert.Equal(t, imported.ID, u.Lists[1].ID)

	again, err := svc.Export(ctx, "usr-1", imported.ID)
	require.NoError(t, err)
	assert.Equal(t, doc, again)
}

func TestTransferService_Import_Malformed(t *testing.T) {
	svc, s := setupTransferService(t, newFakeCatalog())
	seedUser(t, s, "usr-1")
	ctx := context.Background()

	for name, body := range map[string]string{
		"not json":      `{"listName":`,
		"no items":      `{"listName":"X"}`,
		"bad item kind": `{"listName":"X","items":[{"id":1,"mediaType":"book"}]}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, _, err := svc.Import(ctx, "usr-1", []byte(body))
			assert.ErrorIs(t, err, domainerrors.ErrMalformedDocument)
		})
	}

	u, err := s.LoadUser(ctx, "usr-1")
	require.NoError(t, err)
	assert.Empty(t, u.Lists, "a malformed document must not create a list")
}

func TestTransferService_Import_DefaultName(t *testing.T) {
	svc, s := setupTransferService(t, newFakeCatalog())
	seedUser(t, s, "usr-1")

	_, l, err := svc.Import(context.Background(), "usr-1", []byte(`{"items":[{"id":5,"mediaType":"tv","userRating":3}]}`))
	require.NoError(t, err)
	assert.Equal(t, listdoc.DefaultListName, l.Name)
	require.Len(t, l.Items, 1)
	assert.Equal(t, domain.KindSeries, l.Items[0].Kind)
	assert.Equal(t, []int{}, l.Items[0].WatchedEpisodeIDs)
}
