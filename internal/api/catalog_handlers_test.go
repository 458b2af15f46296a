package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinelist/cinelist-server/internal/domain"
)

func TestCatalog_Endpoints(t *testing.T) {
	ts := setupTestServer(t)
	header, _ := ts.login(t, "ada@example.com")

	resp := ts.api.Get("/api/v1/catalog/trending", header)
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Len(t, decodeEnvelope[MediaListResponse](t, resp).Data.Results, 2)

	resp = ts.api.Get("/api/v1/catalog/search?q=dark", header)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/catalog/categories/web-series", header)
	require.Equal(t, http.StatusOK, resp.Code)
	results := decodeEnvelope[MediaListResponse](t, resp).Data.Results
	require.Len(t, results, 1)
	assert.Equal(t, "Dark", results[0].Title)

	resp = ts.api.Get("/api/v1/catalog/categories/documentary", header)
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = ts.api.Get("/api/v1/catalog/tv/70523", header)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	assert.Equal(t, domain.KindSeries, decodeEnvelope[domain.Media](t, resp).Data.Kind)

	resp = ts.api.Get("/api/v1/catalog/movie/1", header)
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = ts.api.Get("/api/v1/catalog/book/1", header)
	assert.Equal(t, http.StatusBadRequest, resp.Code)

	resp = ts.api.Get("/api/v1/catalog/movie/27205/recommendations", header)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/v1/catalog/series/70523/seasons/1", header)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
	episodes := decodeEnvelope[EpisodesResponse](t, resp).Data.Episodes
	require.Len(t, episodes, 1)
	assert.Equal(t, "Pilot", episodes[0].Name)

	resp = ts.api.Get("/api/v1/catalog/movie/27205/seasons/1", header)
	assert.Equal(t, http.StatusBadRequest, resp.Code)
}
