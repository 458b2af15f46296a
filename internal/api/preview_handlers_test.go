package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinelist/cinelist-server/internal/domain"
)

func TestPreview_DoesNotPersist(t *testing.T) {
	ts := setupTestServer(t)
	header, _ := ts.login(t, "ada@example.com")
	a := ts.createList(t, header, "A")
	b := ts.createList(t, header, "B")

	resp := ts.api.Get("/api/v1/me", header)
	require.Equal(t, http.StatusOK, resp.Code)
	snapshot := decodeEnvelope[domain.User](t, resp).Data

	resp = ts.api.Post("/api/v1/preview/pin", header, map[string]any{"user": snapshot, "list_id": b.ID})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	preview := decodeEnvelope[domain.User](t, resp).Data
	require.Len(t, preview.Lists, 2)
	assert.Equal(t, b.ID, preview.Lists[0].ID)
	assert.True(t, preview.Lists[0].Pinned)

	resp = ts.api.Post("/api/v1/preview/items", header, map[string]any{
		"user":    preview,
		"list_id": a.ID,
		"item":    map[string]any{"media_id": 27205, "medium_kind": "movie", "rating": 3.5},
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	withItem := decodeEnvelope[domain.User](t, resp).Data
	got, ok := withItem.List(a.ID)
	require.True(t, ok)
	require.Len(t, got.Items, 1)

	stored, err := ts.store.LoadUser(context.Background(), snapshot.ID)
	require.NoError(t, err)
	for _, l := range stored.Lists {
		assert.False(t, l.Pinned, "preview must not persist pins")
		assert.Empty(t, l.Items, "preview must not persist items")
	}
}

func TestPreview_Reorder(t *testing.T) {
	ts := setupTestServer(t)
	header, user := ts.login(t, "ada@example.com")

	user.Lists = []domain.UserList{
		{ID: "p1", Name: "P1", Pinned: true, Items: []domain.ListItem{}},
		{ID: "p2", Name: "P2", Pinned: true, Items: []domain.ListItem{}},
		{ID: "u1", Name: "U1", Items: []domain.ListItem{}},
	}

	resp := ts.api.Post("/api/v1/preview/order", header, map[string]any{"user": user, "list_ids": []string{"p2", "u1", "p1"}})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	lists := decodeEnvelope[domain.User](t, resp).Data.Lists
	require.Len(t, lists, 3)
	assert.Equal(t, "p2", lists[0].ID)
	assert.Equal(t, "p1", lists[1].ID)
	assert.Equal(t, "u1", lists[2].ID)
}

func TestPreview_RejectsForeignSnapshot(t *testing.T) {
	ts := setupTestServer(t)
	header, _ := ts.login(t, "ada@example.com")
	_, other := ts.login(t, "grace@example.com")

	resp := ts.api.Post("/api/v1/preview/pin", header, map[string]any{"user": other, "list_id": "x"})
	assert.Equal(t, http.StatusForbidden, resp.Code)
}

func TestPreview_PinRepairsUnorderedSnapshot(t *testing.T) {
	ts := setupTestServer(t)
	header, user := ts.login(t, "ada@example.com")

	user.Lists = []domain.UserList{
		{ID: "a", Name: "A", Pinned: true, Items: []domain.ListItem{}},
		{ID: "b", Name: "B", Items: []domain.ListItem{}},
		{ID: "c", Name: "C", Pinned: true, Items: []domain.ListItem{}},
		{ID: "d", Name: "D", Items: []domain.ListItem{}},
	}

	resp := ts.api.Post("/api/v1/preview/pin", header, map[string]any{"user": user, "list_id": "d"})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	lists := decodeEnvelope[domain.User](t, resp).Data.Lists
	ids := make([]string, len(lists))
	for i, l := range lists {
		ids[i] = l.ID
	}
	assert.Equal(t, []string{"a", "c", "d", "b"}, ids)
	assert.True(t, domain.PinnedPrefixHolds(lists))
}
