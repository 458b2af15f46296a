package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/cinelist/cinelist-server/internal/domain"
	domainerrors "github.com/cinelist/cinelist-server/internal/errors"
)

func (s *Server) registerCatalogRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "searchCatalog",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog/search",
		Summary:     "Search catalog",
		Description: "Searches movies and series by title, person, or genre keyword",
		Tags:        []string{"Catalog"},
		Security:    bearer,
	}, s.handleSearchCatalog)

	huma.Register(s.api, huma.Operation{
		OperationID: "trendingCatalog",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog/trending",
		Summary:     "Trending",
		Description: "Returns this week's trending movies and series",
		Tags:        []string{"Catalog"},
		Security:    bearer,
	}, s.handleTrending)

	huma.Register(s.api, huma.Operation{
		OperationID: "browseCategory",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog/categories/{slug}",
		Summary:     "Browse category",
		Description: "Lists one page of a browse category",
		Tags:        []string{"Catalog"},
		Security:    bearer,
	}, s.handleBrowseCategory)

	huma.Register(s.api, huma.Operation{
		OperationID: "getMediaDetails",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog/{kind}/{id}",
		Summary:     "Media details",
		Description: "Returns the full record for a movie or series",
		Tags:        []string{"Catalog"},
		Security:    bearer,
	}, s.handleMediaDetails)

	huma.Register(s.api, huma.Operation{
		OperationID: "getRecommendations",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog/{kind}/{id}/recommendations",
		Summary:     "Recommendations",
		Description: "Returns titles related to a movie or series",
		Tags:        []string{"Catalog"},
		Security:    bearer,
	}, s.handleRecommendations)

	huma.Register(s.api, huma.Operation{
		OperationID: "getSeasonEpisodes",
		Method:      http.MethodGet,
		Path:        "/api/v1/catalog/{kind}/{id}/seasons/{season}",
		Summary:     "Season episodes",
		Description: "Returns the episodes of one season of a series",
		Tags:        []string{"Catalog"},
		Security:    bearer,
	}, s.handleSeasonEpisodes)
}

// === DTOs ===

// SearchInput contains the search query.
type SearchInput struct {
	Query string `query:"q" doc:"Title, person, or genre keyword"`
}

// CategoryInput identifies a category page.
type CategoryInput struct {
	Slug string `path:"slug" doc:"Category slug, e.g. web-series"`
	Page int    `query:"page" default:"1" minimum:"1" doc:"Page number"`
}

// MediaInput identifies one catalog title.
type MediaInput struct {
	Kind string `path:"kind" doc:"movie, series, or tv"`
	ID   int    `path:"id" doc:"Catalog media ID"`
}

// SeasonInput identifies one season of a series.
type SeasonInput struct {
	Kind   string `path:"kind" doc:"series or tv"`
	ID     int    `path:"id" doc:"Series ID"`
	Season int    `path:"season" doc:"Season number"`
}

// MediaListResponse contains catalog results.
type MediaListResponse struct {
	Results []domain.Media `json:"results" doc:"Matching titles"`
}

// MediaListOutput wraps catalog results for Huma.
type MediaListOutput struct {
	Body MediaListResponse
}

// MediaOutput wraps one catalog record for Huma.
type MediaOutput struct {
	Body domain.Media
}

// EpisodesResponse contains a season's episodes.
type EpisodesResponse struct {
	Episodes []domain.Episode `json:"episodes" doc:"Episodes in order"`
}

// EpisodesOutput wraps episodes for Huma.
type EpisodesOutput struct {
	Body EpisodesResponse
}

// === Handlers ===

func (s *Server) handleSearchCatalog(ctx context.Context, input *SearchInput) (*MediaListOutput, error) {
	if _, err := GetUserID(ctx); err != nil {
		return nil, err
	}
	results, err := s.services.Catalog.Search(ctx, input.Query)
	if err != nil {
		return nil, err
	}
	return mediaList(results), nil
}

func (s *Server) handleTrending(ctx context.Context, _ *struct{}) (*MediaListOutput, error) {
	if _, err := GetUserID(ctx); err != nil {
		return nil, err
	}
	results, err := s.services.Catalog.Trending(ctx)
	if err != nil {
		return nil, err
	}
	return mediaList(results), nil
}

func (s *Server) handleBrowseCategory(ctx context.Context, input *CategoryInput) (*MediaListOutput, error) {
	if _, err := GetUserID(ctx); err != nil {
		return nil, err
	}
	results, err := s.services.Catalog.Category(ctx, input.Slug, input.Page)
	if err != nil {
		return nil, err
	}
	return mediaList(results), nil
}

func (s *Server) handleMediaDetails(ctx context.Context, input *MediaInput) (*MediaOutput, error) {
	if _, err := GetUserID(ctx); err != nil {
		return nil, err
	}
	media, err := s.services.Catalog.Details(ctx, input.Kind, input.ID)
	if err != nil {
		return nil, err
	}
	return &MediaOutput{Body: media}, nil
}

func (s *Server) handleRecommendations(ctx context.Context, input *MediaInput) (*MediaListOutput, error) {
	if _, err := GetUserID(ctx); err != nil {
		return nil, err
	}
	results, err := s.services.Catalog.Recommendations(ctx, input.Kind, input.ID)
	if err != nil {
		return nil, err
	}
	return mediaList(results), nil
}

func (s *Server) handleSeasonEpisodes(ctx context.Context, input *SeasonInput) (*EpisodesOutput, error) {
	if _, err := GetUserID(ctx); err != nil {
		return nil, err
	}
	if kind, ok := domain.ParseMediumKind(input.Kind); !ok || kind != domain.KindSeries {
		return nil, domainerrors.Validation("seasons exist only for series")
	}
	episodes, err := s.services.Catalog.Season(ctx, input.ID, input.Season)
	if err != nil {
		return nil, err
	}
	if episodes == nil {
		episodes = []domain.Episode{}
	}
	return &EpisodesOutput{Body: EpisodesResponse{Episodes: episodes}}, nil
}

func mediaList(results []domain.Media) *MediaListOutput {
	if results == nil {
		results = []domain.Media{}
	}
	return &MediaListOutput{Body: MediaListResponse{Results: results}}
}
