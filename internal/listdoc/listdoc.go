// Package listdoc encodes and decodes the portable list document used for
// list export and import:
//
//	{
//	  "listName": "Weekend",
//	  "items": [ { "id": 27205, "mediaType": "movie", ..., "userRating": 4.5 } ]
//	}
//
// Only id, mediaType and userRating are read back on import. The remaining
// media fields are carried so the file is readable on its own. A userRating
// off the half-star grid is snapped onto it; zero or negative means unrated.
package listdoc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/cinelist/cinelist-server/internal/domain"
	domainerrors "github.com/cinelist/cinelist-server/internal/errors"
)

// DefaultListName names an imported list whose document has no usable listName.
const DefaultListName = "Imported List"

// Document is a list and the resolved media for its items.
type Document struct {
	ListName string  `json:"listName"`
	Items    []Entry `json:"items"`
}

// Entry is one exported item: media fields plus the owner's rating.
type Entry struct {
	ID               int               `json:"id"`
	Title            string            `json:"title"`
	MediaType        domain.MediumKind `json:"mediaType"`
	PosterPath       string            `json:"posterPath"`
	BackdropPath     string            `json:"backdropPath"`
	ReleaseDate      string            `json:"releaseDate"`
	Rating           float64           `json:"rating"`
	Popularity       float64           `json:"popularity"`
	Genres           []string          `json:"genres"`
	Category         domain.Category   `json:"category"`
	OriginalLanguage string            `json:"originalLanguage"`
	Overview         string            `json:"overview"`
	UserRating       float64           `json:"userRating"`
}

// NewEntry builds an export entry from resolved media and the item's rating.
func NewEntry(m domain.Media, userRating float64) Entry {
	genres := m.Genres
	if genres == nil {
		genres = []string{}
	}
	return Entry{
		ID:               m.ID,
		Title:            m.Title,
		MediaType:        m.Kind,
		PosterPath:       m.PosterURL,
		BackdropPath:     m.BackdropURL,
		ReleaseDate:      m.ReleaseDate,
		Rating:           m.Rating,
		Popularity:       m.Popularity,
		Genres:           genres,
		Category:         m.Category,
		OriginalLanguage: m.OriginalLanguage,
		Overview:         m.Overview,
		UserRating:       userRating,
	}
}

// Key identifies the media an entry refers to.
func (e Entry) Key() domain.ItemKey {
	return domain.ItemKey{MediaID: e.ID, Kind: e.MediaType}
}

// Encode renders doc as indented JSON.
func Encode(doc Document) ([]byte, error) {
	if doc.Items == nil {
		doc.Items = []Entry{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("encode list document: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Decode parses an import document. Any structural problem is a MalformedDocument error.
// A blank listName is replaced with DefaultListName, and the "tv" media type alias is
// accepted and canonicalized.
func Decode(data []byte) (Document, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return Document{}, domainerrors.MalformedDocument("document must be a JSON object", err)
	}
	if top == nil {
		return Document{}, domainerrors.MalformedDocument("document must be a JSON object", nil)
	}

	var doc Document
	if raw, ok := top["listName"]; ok {
		var name *string
		if err := json.Unmarshal(raw, &name); err != nil {
			return Document{}, domainerrors.MalformedDocument("listName must be a string", err)
		}
		if name != nil {
			doc.ListName = strings.TrimSpace(*name)
		}
	}
	if doc.ListName == "" {
		doc.ListName = DefaultListName
	}

	rawItems, ok := top["items"]
	if !ok || bytes.Equal(bytes.TrimSpace(rawItems), []byte("null")) {
		return Document{}, domainerrors.MalformedDocument("document has no items array", nil)
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(rawItems, &entries); err != nil {
		return Document{}, domainerrors.MalformedDocument("items must be an array", err)
	}

	doc.Items = make([]Entry, 0, len(entries))
	for i, raw := range entries {
		e, err := decodeEntry(raw)
		if err != nil {
			return Document{}, domainerrors.MalformedDocument(fmt.Sprintf("items[%d]: %s", i, err.Error()), err)
		}
		doc.Items = append(doc.Items, e)
	}
	return doc, nil
}

func decodeEntry(raw json.RawMessage) (Entry, error) {
	var wire struct {
		Entry
		MediaType string `json:"mediaType"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return Entry{}, fmt.Errorf("invalid entry: %w", err)
	}

	e := wire.Entry
	if e.ID <= 0 {
		return Entry{}, fmt.Errorf("id must be a positive integer")
	}
	kind, ok := domain.ParseMediumKind(strings.ToLower(strings.TrimSpace(wire.MediaType)))
	if !ok {
		return Entry{}, fmt.Errorf("unknown mediaType %q", wire.MediaType)
	}
	e.MediaType = kind
	e.UserRating = snapRating(e.UserRating)
	return e, nil
}

// snapRating rounds r to the nearest half star within [0.5, 5]. Non-positive
// ratings stay unrated.
func snapRating(r float64) float64 {
	if r <= 0 {
		return 0
	}
	return math.Min(5, math.Max(0.5, math.Round(r*2)/2))
}

// ListItems converts the entries to list items added at addedOn, in document order.
func (d Document) ListItems(addedOn time.Time) []domain.ListItem {
	items := make([]domain.ListItem, 0, len(d.Items))
	for _, e := range d.Items {
		items = append(items, domain.ListItem{
			MediaID:    e.ID,
			Kind:       e.MediaType,
			UserRating: e.UserRating,
			AddedOn:    addedOn,
		})
	}
	return items
}

var whitespaceRun = regexp.MustCompile(`\s+`)

// FileName returns the download file name for a list, e.g. "Weekend_Picks.json".
func FileName(listName string) string {
	name := whitespaceRun.ReplaceAllString(listName, "_")
	if name == "" {
		name = "list"
	}
	return name + ".json"
}
