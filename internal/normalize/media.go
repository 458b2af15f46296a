package normalize

import (
	"net/url"
	"slices"

	"github.com/cinelist/cinelist-server/internal/domain"
)

// Placeholder images for records without artwork.
const (
	PlaceholderPoster   = "https://via.placeholder.com/500x750?text=No+Image"
	PlaceholderBackdrop = "https://via.placeholder.com/1280x720?text=No+Image"
	PlaceholderStill    = "https://via.placeholder.com/500x281?text=No+Image"
	PlaceholderAvatar   = "https://via.placeholder.com/200x300?text=No+Avatar"

	// DefaultImageBaseURL is the TMDB image CDN root.
	DefaultImageBaseURL = "https://image.tmdb.org/t/p/"

	unknownDate     = "N/A"
	defaultLanguage = "en"
	detailListLimit = 10
	watchRegion     = "IN"
)

// Normalizer builds domain records from raw TMDB records. The zero value uses DefaultImageBaseURL.
type Normalizer struct {
	ImageBaseURL string
}

// Media normalizes r with the default image base URL.
func Media(r Record, forced *domain.Category) domain.Media {
	return Normalizer{}.Media(r, forced)
}

// Episode normalizes r with the default image base URL.
func Episode(r EpisodeRecord) domain.Episode {
	return Normalizer{}.Episode(r)
}

// KindOf infers the medium kind: an explicit media_type wins, then a title means movie.
func KindOf(r Record) domain.MediumKind {
	if k, ok := domain.ParseMediumKind(r.MediaType); ok {
		return k
	}
	if r.Title != "" {
		return domain.KindMovie
	}
	return domain.KindSeries
}

// IsMedia reports whether r is a movie or tv result, as opposed to a person.
func IsMedia(r Record) bool {
	return r.MediaType == "movie" || r.MediaType == "tv"
}

// Media converts r to a domain.Media. It never fails: absent fields take documented defaults.
// A non-nil forced category overrides category inference.
func (n Normalizer) Media(r Record, forced *domain.Category) domain.Media {
	kind := KindOf(r)

	title := r.Title
	if title == "" {
		title = r.Name
	}
	title = Text(title)

	m := domain.Media{
		ID:               r.ID,
		Kind:             kind,
		Title:            title,
		Overview:         Text(r.Overview),
		PosterURL:        n.image("w500", r.PosterPath, PlaceholderPoster),
		BackdropURL:      n.image("w1280", r.BackdropPath, PlaceholderBackdrop),
		ReleaseDate:      firstNonEmpty(r.ReleaseDate, r.FirstAirDate, unknownDate),
		Rating:           r.VoteAverage,
		Popularity:       r.Popularity,
		Genres:           genres(r, kind),
		OriginalLanguage: firstNonEmpty(LanguageCode(r.OriginalLanguage), defaultLanguage),
		Status:           r.Status,
		Runtime:          r.Runtime,
	}

	if forced != nil {
		m.Category = *forced
	} else {
		m.Category = inferCategory(r, kind)
	}

	for _, s := range r.Seasons {
		m.Seasons = append(m.Seasons, domain.SeasonSummary{Number: s.SeasonNumber, EpisodeCount: s.EpisodeCount})
	}

	if m.Runtime == 0 && len(r.EpisodeRunTime) > 0 {
		m.Runtime = r.EpisodeRunTime[0]
	}

	if r.Credits != nil {
		for _, c := range r.Credits.Cast[:min(len(r.Credits.Cast), detailListLimit)] {
			m.Cast = append(m.Cast, domain.CastMember{
				Name:      c.Name,
				Character: c.Character,
				AvatarURL: n.image("w200", c.ProfilePath, PlaceholderAvatar),
			})
		}
	}

	if r.Images != nil {
		for _, b := range r.Images.Backdrops[:min(len(r.Images.Backdrops), detailListLimit)] {
			if b.FilePath != "" {
				m.Gallery = append(m.Gallery, n.image("original", b.FilePath, ""))
			}
		}
	}

	if r.WatchProviders != nil {
		for _, p := range r.WatchProviders.Results[watchRegion].Flatrate {
			if p.ProviderName != "" && !slices.Contains(m.WhereToWatch, p.ProviderName) {
				m.WhereToWatch = append(m.WhereToWatch, p.ProviderName)
			}
		}
	}

	if r.Credits != nil || r.Images != nil {
		m.TrailerURL = "https://www.youtube.com/results?search_query=" + url.QueryEscape(title+" trailer")
	}

	return m
}

// Episode converts an episode record.
func (n Normalizer) Episode(r EpisodeRecord) domain.Episode {
	return domain.Episode{
		ID:            r.ID,
		Name:          Text(r.Name),
		Overview:      Text(r.Overview),
		EpisodeNumber: r.EpisodeNumber,
		SeasonNumber:  r.SeasonNumber,
		StillURL:      n.image("w500", r.StillPath, PlaceholderStill),
		AirDate:       firstNonEmpty(r.AirDate, unknownDate),
		Rating:        r.VoteAverage,
	}
}

func (n Normalizer) image(size, path, placeholder string) string {
	if path == "" {
		return placeholder
	}
	base := n.ImageBaseURL
	if base == "" {
		base = DefaultImageBaseURL
	}
	return base + size + path
}

// genres prefers named genres from a details record, then maps list genre ids.
func genres(r Record, kind domain.MediumKind) []string {
	if r.Genres != nil {
		out := make([]string, 0, len(r.Genres))
		for _, g := range r.Genres {
			out = append(out, g.Name)
		}
		return out
	}

	table := movieGenres
	if kind == domain.KindSeries {
		table = tvGenres
	}

	out := make([]string, 0, len(r.GenreIDs))
	for _, gid := range r.GenreIDs {
		if name, ok := table[gid]; ok {
			out = append(out, name)
		}
	}
	return out
}

func inferCategory(r Record, kind domain.MediumKind) domain.Category {
	animated := slices.Contains(r.GenreIDs, genreAnimation) ||
		slices.ContainsFunc(r.Genres, func(g Genre) bool { return g.ID == genreAnimation })

	if animated {
		if kind == domain.KindSeries && slices.Contains(r.OriginCountry, "JP") {
			return domain.CategoryAnime
		}
		if kind == domain.KindMovie {
			return domain.CategoryAnimated
		}
	}

	if kind == domain.KindSeries {
		return domain.CategoryWebSeries
	}
	if slices.Contains(r.OriginCountry, "IN") {
		return domain.CategoryBollywood
	}
	return domain.CategoryHollywood
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
