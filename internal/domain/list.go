package domain

import (
	"math"
	"slices"
	"strings"
	"time"

	domainerrors "github.com/cinelist/cinelist-server/internal/errors"
)

// ItemKey is the natural key of a list item: at most one item per key exists in a list.
type ItemKey struct {
	MediaID int        `json:"media_id"`
	Kind    MediumKind `json:"medium_kind"`
}

// ListItem is one rated media entry in a user list.
type ListItem struct {
	MediaID    int        `json:"media_id"`
	Kind       MediumKind `json:"medium_kind"`
	UserRating float64    `json:"user_rating"`
	// AddedOn is set when the item is first added and never changes on merge.
	AddedOn time.Time `json:"added_on"`
	// WatchedEpisodeIDs is nil for movies and an ascending set for series.
	WatchedEpisodeIDs []int `json:"watched_episode_ids"`
}

// Key returns the natural key of the item.
func (i ListItem) Key() ItemKey {
	return ItemKey{MediaID: i.MediaID, Kind: i.Kind}
}

func (i ListItem) clone() ListItem {
	if i.WatchedEpisodeIDs != nil {
		i.WatchedEpisodeIDs = slices.Clone(i.WatchedEpisodeIDs)
	}
	return i
}

// UserList is a named, ordered collection of list items owned by one user.
type UserList struct {
	ID     string     `json:"id"`
	Name   string     `json:"name"`
	Items  []ListItem `json:"items"`
	Pinned bool       `json:"pinned"`
}

// Clone returns a deep copy of the list.
func (l UserList) Clone() UserList {
	if l.Items == nil {
		return l
	}
	items := make([]ListItem, len(l.Items))
	for i, item := range l.Items {
		items[i] = item.clone()
	}
	l.Items = items
	return l
}

// Item returns the item with the given key.
func (l UserList) Item(key ItemKey) (ListItem, bool) {
	if i := l.indexOf(key); i >= 0 {
		return l.Items[i], true
	}
	return ListItem{}, false
}

func (l UserList) indexOf(key ItemKey) int {
	return slices.IndexFunc(l.Items, func(it ListItem) bool { return it.Key() == key })
}

// upsert merges an item into the list in place. New items are prepended; existing
// items take the new rating and, for series, the union of watched episodes.
// The receiver must already be a private copy.
func (l *UserList) upsert(key ItemKey, rating float64, watched []int, now time.Time) {
	if i := l.indexOf(key); i >= 0 {
		existing := &l.Items[i]
		existing.UserRating = rating
		if key.Kind == KindSeries {
			existing.WatchedEpisodeIDs = unionSorted(existing.WatchedEpisodeIDs, watched)
		}
		return
	}

	item := ListItem{
		MediaID:    key.MediaID,
		Kind:       key.Kind,
		UserRating: rating,
		AddedOn:    now,
	}
	if key.Kind == KindSeries {
		item.WatchedEpisodeIDs = unionSorted(nil, watched)
	}
	l.Items = slices.Insert(l.Items, 0, item)
}

// unionSorted returns the ascending, duplicate-free union of a and b.
// The result is never nil.
func unionSorted(a, b []int) []int {
	out := make([]int, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	slices.Sort(out)
	return slices.Compact(out)
}

// ValidateRating enforces a rating in (0, 5] in half-star steps.
func ValidateRating(rating float64) error {
	if rating <= 0 || rating > 5 || math.Mod(rating*2, 1) != 0 {
		return domainerrors.Validationf("rating must be between 0.5 and 5 in steps of 0.5, got %v", rating)
	}
	return nil
}

// ValidateListName trims name and rejects it when empty.
func ValidateListName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", domainerrors.Validation("list name cannot be empty")
	}
	return trimmed, nil
}
