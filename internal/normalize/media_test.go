package normalize

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinelist/cinelist-server/internal/domain"
)

func TestMedia_Defaults(t *testing.T) {
	m := Media(Record{ID: 7}, nil)

	assert.Equal(t, 7, m.ID)
	assert.Equal(t, domain.KindSeries, m.Kind, "no title means series")
	assert.Equal(t, PlaceholderPoster, m.PosterURL)
	assert.Equal(t, PlaceholderBackdrop, m.BackdropURL)
	assert.Equal(t, "N/A", m.ReleaseDate)
	assert.Equal(t, "en", m.OriginalLanguage)
	assert.NotNil(t, m.Genres)
	assert.Empty(t, m.Genres)
	assert.Zero(t, m.Rating)
	assert.Equal(t, domain.CategoryWebSeries, m.Category)
}

func TestMedia_FromListResult(t *testing.T) {
	raw := `{
		"id": 550,
		"title": "Fight Club",
		"poster_path": "/p.jpg",
		"backdrop_path": "/b.jpg",
		"release_date": "1999-10-15",
		"vote_average": 8.4,
		"popularity": 61.2,
		"genre_ids": [18, 53, 99999],
		"original_language": "en-US"
	}`
	var r Record
	require.NoError(t, json.Unmarshal([]byte(raw), &r))

	m := Media(r, nil)

	assert.Equal(t, domain.KindMovie, m.Kind)
	assert.Equal(t, "Fight Club", m.Title)
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/p.jpg", m.PosterURL)
	assert.Equal(t, "https://image.tmdb.org/t/p/w1280/b.jpg", m.BackdropURL)
	assert.Equal(t, []string{"Drama", "Thriller"}, m.Genres)
	assert.Equal(t, "en", m.OriginalLanguage)
	assert.Equal(t, domain.CategoryHollywood, m.Category)
	assert.Empty(t, m.TrailerURL)
}

func TestMedia_ExplicitMediaTypeWins(t *testing.T) {
	m := Media(Record{ID: 1, MediaType: "tv", Title: "Looks Like A Movie"}, nil)
	assert.Equal(t, domain.KindSeries, m.Kind)
}

func TestMedia_TVGenreTableAndFirstAirDate(t *testing.T) {
	m := Media(Record{ID: 1, Name: "Show", FirstAirDate: "2020-01-01", GenreIDs: []int{10765, 28}}, nil)

	assert.Equal(t, "Show", m.Title)
	assert.Equal(t, "2020-01-01", m.ReleaseDate)
	assert.Equal(t, []string{"Sci-Fi & Fantasy"}, m.Genres, "movie-only genre ids are skipped for tv")
}

func TestMedia_CategoryInference(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
		want domain.Category
	}{
		{"japanese animated series", Record{Name: "A", GenreIDs: []int{16}, OriginCountry: []string{"JP"}}, domain.CategoryAnime},
		{"animated movie", Record{Title: "A", GenreIDs: []int{16}}, domain.CategoryAnimated},
		{"animated movie via named genres", Record{Title: "A", Genres: []Genre{{ID: 16, Name: "Animation"}}}, domain.CategoryAnimated},
		{"non japanese animated series", Record{Name: "A", GenreIDs: []int{16}, OriginCountry: []string{"US"}}, domain.CategoryWebSeries},
		{"series", Record{Name: "A"}, domain.CategoryWebSeries},
		{"indian movie", Record{Title: "A", OriginCountry: []string{"IN"}}, domain.CategoryBollywood},
		{"other movie", Record{Title: "A", OriginCountry: []string{"FR"}}, domain.CategoryHollywood},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Media(tt.rec, nil).Category)
		})
	}
}

func TestMedia_ForcedCategory(t *testing.T) {
	anime := domain.CategoryAnime
	m := Media(Record{Title: "Forced", OriginCountry: []string{"IN"}}, &anime)
	assert.Equal(t, domain.CategoryAnime, m.Category)
}

func TestMedia_DetailsRecord(t *testing.T) {
	raw := `{
		"id": 1399,
		"name": "Game of Thrones",
		"genres": [{"id": 10765, "name": "Sci-Fi & Fantasy"}, {"id": 18, "name": "Drama"}],
		"seasons": [{"season_number": 1, "episode_count": 10}, {"season_number": 2, "episode_count": 10}],
		"episode_run_time": [60],
		"status": "Ended",
		"credits": {"cast": [{"name": "Emilia Clarke", "character": "Daenerys", "profile_path": ""}]},
		"images": {"backdrops": [{"file_path": "/g1.jpg"}, {"file_path": ""}]},
		"watch/providers": {"results": {"IN": {"flatrate": [{"provider_name": "JioHotstar"}, {"provider_name": "JioHotstar"}]}}}
	}`
	var r Record
	require.NoError(t, json.Unmarshal([]byte(raw), &r))

	m := Normalizer{ImageBaseURL: "https://img.test/"}.Media(r, nil)

	assert.Equal(t, []string{"Sci-Fi & Fantasy", "Drama"}, m.Genres)
	assert.Equal(t, []domain.SeasonSummary{{Number: 1, EpisodeCount: 10}, {Number: 2, EpisodeCount: 10}}, m.Seasons)
	assert.Equal(t, 60, m.Runtime)
	assert.Equal(t, "Ended", m.Status)
	require.Len(t, m.Cast, 1)
	assert.Equal(t, PlaceholderAvatar, m.Cast[0].AvatarURL)
	assert.Equal(t, []string{"https://img.test/original/g1.jpg"}, m.Gallery)
	assert.Equal(t, []string{"JioHotstar"}, m.WhereToWatch)
	assert.Equal(t, "https://www.youtube.com/results?search_query=Game+of+Thrones+trailer", m.TrailerURL)
}

func TestEpisode(t *testing.T) {
	e := Episode(EpisodeRecord{ID: 9, Name: "Pilot", EpisodeNumber: 1, SeasonNumber: 1})

	assert.Equal(t, PlaceholderStill, e.StillURL)
	assert.Equal(t, "N/A", e.AirDate)

	e = Episode(EpisodeRecord{ID: 9, StillPath: "/s.jpg", AirDate: "2011-04-17"})
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/s.jpg", e.StillURL)
	assert.Equal(t, "2011-04-17", e.AirDate)
}

func TestText(t *testing.T) {
	assert.Equal(t, "Amélie", Text("  Amélie\x00 "))
	assert.Equal(t, Fold("AMÉLIE"), Fold("amélie"))
}

func TestSearchKeyword(t *testing.T) {
	f, ok := SearchKeyword("  Sci-Fi ")
	require.True(t, ok)
	assert.Equal(t, "with_genres", f.Param)
	assert.Equal(t, []int{878}, f.Movie)

	f, ok = SearchKeyword("superhero")
	require.True(t, ok)
	assert.Equal(t, "with_keywords", f.Param)

	_, ok = SearchKeyword("inception")
	assert.False(t, ok)
}
