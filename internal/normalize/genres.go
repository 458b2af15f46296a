package normalize

// TMDB genre ids.
const genreAnimation = 16

var movieGenres = map[int]string{
	28: "Action", 12: "Adventure", 16: "Animation", 35: "Comedy", 80: "Crime",
	99: "Documentary", 18: "Drama", 10751: "Family", 14: "Fantasy", 36: "History",
	27: "Horror", 10402: "Music", 9648: "Mystery", 10749: "Romance",
	878: "Science Fiction", 10770: "TV Movie", 53: "Thriller", 10752: "War", 37: "Western",
}

var tvGenres = map[int]string{
	10759: "Action & Adventure", 16: "Animation", 35: "Comedy", 80: "Crime",
	99: "Documentary", 18: "Drama", 10751: "Family", 10762: "Kids", 9648: "Mystery",
	10763: "News", 10764: "Reality", 10765: "Sci-Fi & Fantasy", 10766: "Soap",
	10767: "Talk", 10768: "War & Politics", 37: "Western",
}

// DiscoverFilter is a genre or keyword filter applied to TMDB discover calls.
type DiscoverFilter struct {
	// Param is "with_genres" or "with_keywords".
	Param  string
	Movie  []int
	Series []int
}

var searchKeywords = map[string]DiscoverFilter{
	"action":          {"with_genres", []int{28}, []int{10759}},
	"adventure":       {"with_genres", []int{12}, []int{10759}},
	"animation":       {"with_genres", []int{16}, []int{16}},
	"comedy":          {"with_genres", []int{35}, []int{35}},
	"crime":           {"with_genres", []int{80}, []int{80}},
	"documentary":     {"with_genres", []int{99}, []int{99}},
	"drama":           {"with_genres", []int{18}, []int{18}},
	"family":          {"with_genres", []int{10751}, []int{10751}},
	"fantasy":         {"with_genres", []int{14}, []int{10765}},
	"history":         {"with_genres", []int{36}, []int{10768}},
	"horror":          {"with_genres", []int{27}, nil},
	"music":           {"with_genres", []int{10402}, nil},
	"mystery":         {"with_genres", []int{9648}, []int{9648}},
	"romance":         {"with_genres", []int{10749}, nil},
	"science fiction": {"with_genres", []int{878}, []int{10765}},
	"sci-fi":          {"with_genres", []int{878}, []int{10765}},
	"tv movie":        {"with_genres", []int{10770}, nil},
	"thriller":        {"with_genres", []int{53}, nil},
	"war":             {"with_genres", []int{10752}, []int{10768}},
	"western":         {"with_genres", []int{37}, []int{37}},
	"kids":            {"with_genres", nil, []int{10762}},
	"superhero":       {"with_keywords", []int{9715}, []int{210024}},
	"superheroes":     {"with_keywords", []int{9715}, []int{210024}},
}

// SearchKeyword returns the discover filter for queries that name a genre or keyword.
// The query is matched after trimming and case folding.
func SearchKeyword(query string) (DiscoverFilter, bool) {
	f, ok := searchKeywords[Fold(query)]
	return f, ok
}
