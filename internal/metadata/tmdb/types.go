package tmdb

import "github.com/cinelist/cinelist-server/internal/normalize"

// pagedResponse is the envelope shared by TMDB list endpoints.
type pagedResponse struct {
	Page         int                `json:"page"`
	Results      []normalize.Record `json:"results"`
	TotalPages   int                `json:"total_pages"`
	TotalResults int                `json:"total_results"`
}

type seasonResponse struct {
	ID           int                       `json:"id"`
	SeasonNumber int                       `json:"season_number"`
	Episodes     []normalize.EpisodeRecord `json:"episodes"`
}

// discoverQuery is the discover endpoint and filters for one browse category.
type discoverQuery struct {
	mediaType string
	params    map[string]string
}
