// Package normalize converts raw TMDB records into canonical domain media.
package normalize

// Record is a raw TMDB movie, tv, or person result. Any field may be missing.
// List endpoints carry GenreIDs; detail endpoints carry Genres and the appended sections.
type Record struct {
	ID               int           `json:"id"`
	MediaType        string        `json:"media_type"`
	Title            string        `json:"title"`
	Name             string        `json:"name"`
	Overview         string        `json:"overview"`
	PosterPath       string        `json:"poster_path"`
	BackdropPath     string        `json:"backdrop_path"`
	ReleaseDate      string        `json:"release_date"`
	FirstAirDate     string        `json:"first_air_date"`
	VoteAverage      float64       `json:"vote_average"`
	Popularity       float64       `json:"popularity"`
	GenreIDs         []int         `json:"genre_ids"`
	Genres           []Genre       `json:"genres"`
	OriginCountry    []string      `json:"origin_country"`
	OriginalLanguage string        `json:"original_language"`
	Seasons          []SeasonEntry `json:"seasons"`
	Runtime          int           `json:"runtime"`
	EpisodeRunTime   []int         `json:"episode_run_time"`
	Status           string        `json:"status"`
	Credits          *Credits      `json:"credits"`
	Images           *Images       `json:"images"`
	WatchProviders   *Providers    `json:"watch/providers"`
	KnownFor         []Record      `json:"known_for"`
}

// Genre is a named genre on a details record.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// SeasonEntry is a season summary on a tv details record.
type SeasonEntry struct {
	SeasonNumber int `json:"season_number"`
	EpisodeCount int `json:"episode_count"`
}

// Credits is the appended credits section of a details record.
type Credits struct {
	Cast []struct {
		Name        string `json:"name"`
		Character   string `json:"character"`
		ProfilePath string `json:"profile_path"`
	} `json:"cast"`
}

// Images is the appended images section of a details record.
type Images struct {
	Backdrops []struct {
		FilePath string `json:"file_path"`
	} `json:"backdrops"`
}

// Providers is the appended watch/providers section, keyed by region.
type Providers struct {
	Results map[string]struct {
		Flatrate []struct {
			ProviderName string `json:"provider_name"`
		} `json:"flatrate"`
	} `json:"results"`
}

// EpisodeRecord is a raw episode from a season lookup.
type EpisodeRecord struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	Overview      string  `json:"overview"`
	AirDate       string  `json:"air_date"`
	EpisodeNumber int     `json:"episode_number"`
	SeasonNumber  int     `json:"season_number"`
	StillPath     string  `json:"still_path"`
	VoteAverage   float64 `json:"vote_average"`
}
