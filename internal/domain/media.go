package domain

import "slices"

// MediumKind distinguishes standalone films from multi-episode series.
type MediumKind string

const (
	// KindMovie is a standalone film.
	KindMovie MediumKind = "movie"
	// KindSeries is a multi-episode series. TMDB calls these "tv".
	KindSeries MediumKind = "series"
)

// Valid reports whether k is a known medium kind.
func (k MediumKind) Valid() bool {
	return k == KindMovie || k == KindSeries
}

// ParseMediumKind accepts the canonical names plus the provider alias "tv".
func ParseMediumKind(s string) (MediumKind, bool) {
	switch s {
	case "movie":
		return KindMovie, true
	case "series", "tv":
		return KindSeries, true
	default:
		return "", false
	}
}

// Category is the browse category a media record is filed under.
type Category string

// Categories in canonical display order.
const (
	CategoryHollywood Category = "Hollywood"
	CategoryBollywood Category = "Bollywood"
	CategoryWebSeries Category = "Web Series"
	CategoryAnime     Category = "Anime"
	CategoryAnimated  Category = "Animated"
)

var categoryOrder = []Category{
	CategoryHollywood,
	CategoryBollywood,
	CategoryWebSeries,
	CategoryAnime,
	CategoryAnimated,
}

var categorySlugs = map[Category]string{
	CategoryHollywood: "hollywood",
	CategoryBollywood: "bollywood",
	CategoryWebSeries: "web-series",
	CategoryAnime:     "anime",
	CategoryAnimated:  "animated",
}

// Categories returns the known categories in canonical order.
func Categories() []Category {
	return slices.Clone(categoryOrder)
}

// Rank returns the canonical position of c, or len(Categories()) for unknown categories.
func (c Category) Rank() int {
	if i := slices.Index(categoryOrder, c); i >= 0 {
		return i
	}
	return len(categoryOrder)
}

// Slug returns the URL slug for c, or "" if c is unknown.
func (c Category) Slug() string {
	return categorySlugs[c]
}

// CategoryFromSlug resolves a URL slug such as "web-series".
func CategoryFromSlug(slug string) (Category, bool) {
	for c, s := range categorySlugs {
		if s == slug {
			return c, true
		}
	}
	return "", false
}

// SeasonSummary is the episode count of one season.
type SeasonSummary struct {
	Number       int `json:"season_number"`
	EpisodeCount int `json:"episode_count"`
}

// Media is the canonical, provider-independent description of a movie or series.
// Media records are immutable from the list subsystem's point of view.
type Media struct {
	ID               int             `json:"id"`
	Kind             MediumKind      `json:"medium_kind"`
	Title            string          `json:"title"`
	Overview         string          `json:"overview"`
	PosterURL        string          `json:"poster_url"`
	BackdropURL      string          `json:"backdrop_url"`
	ReleaseDate      string          `json:"release_date"`
	Rating           float64         `json:"rating"`
	Popularity       float64         `json:"popularity"`
	Genres           []string        `json:"genres"`
	Category         Category        `json:"category"`
	OriginalLanguage string          `json:"original_language"`
	Seasons          []SeasonSummary `json:"seasons,omitempty"`

	// Detail-only fields, populated when the record came from a details lookup.
	Runtime      int          `json:"runtime,omitempty"`
	Status       string       `json:"status,omitempty"`
	Cast         []CastMember `json:"cast,omitempty"`
	Gallery      []string     `json:"gallery,omitempty"`
	WhereToWatch []string     `json:"where_to_watch,omitempty"`
	TrailerURL   string       `json:"trailer_url,omitempty"`
}

// CastMember is a billed performer on a details record.
type CastMember struct {
	Name      string `json:"name"`
	Character string `json:"character"`
	AvatarURL string `json:"avatar_url"`
}

// Clone returns a copy of m that shares no slices with it.
func (m Media) Clone() Media {
	m.Genres = slices.Clone(m.Genres)
	m.Seasons = slices.Clone(m.Seasons)
	m.Cast = slices.Clone(m.Cast)
	m.Gallery = slices.Clone(m.Gallery)
	m.WhereToWatch = slices.Clone(m.WhereToWatch)
	return m
}

// Key returns the natural key of the media record.
func (m Media) Key() ItemKey {
	return ItemKey{MediaID: m.ID, Kind: m.Kind}
}

// Episode is one episode of a series season.
type Episode struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	Overview      string  `json:"overview"`
	EpisodeNumber int     `json:"episode_number"`
	SeasonNumber  int     `json:"season_number"`
	StillURL      string  `json:"still_url"`
	AirDate       string  `json:"air_date"`
	Rating        float64 `json:"rating"`
}
