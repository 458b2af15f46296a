package domain

import (
	"slices"
	"time"

	domainerrors "github.com/cinelist/cinelist-server/internal/errors"
)

// User is a signed-in profile and the lists it owns.
//
// A User value is a snapshot. The list operations below never modify their
// receiver: each returns a new User that shares no mutable state with the old one,
// so a caller can publish the result as a single atomic swap. The same functions
// serve as the "apply locally" preview a client runs before the store confirms.
type User struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Bio           string     `json:"bio"`
	AvatarURL     string     `json:"avatar_url"`
	CoverImageURL string     `json:"cover_image_url"`
	Lists         []UserList `json:"lists"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Clone returns a deep copy of the user.
func (u User) Clone() User {
	if u.Lists == nil {
		return u
	}
	lists := make([]UserList, len(u.Lists))
	for i, l := range u.Lists {
		lists[i] = l.Clone()
	}
	u.Lists = lists
	return u
}

// List returns the list with the given id.
func (u User) List(listID string) (UserList, bool) {
	if i := u.listIndex(listID); i >= 0 {
		return u.Lists[i], true
	}
	return UserList{}, false
}

func (u User) listIndex(listID string) int {
	return slices.IndexFunc(u.Lists, func(l UserList) bool { return l.ID == listID })
}

// AddOrUpdateItem adds media to a list or merges it into the existing item with the same key.
//
// The rating and medium kind are validated before anything else. An unknown listID is a
// no-op and returns an unchanged copy. Watched episodes are ignored for movies.
func (u User) AddOrUpdateItem(listID string, mediaID int, kind MediumKind, rating float64, watched []int, now time.Time) (User, error) {
	if mediaID <= 0 {
		return u, domainerrors.Validationf("media id must be positive, got %d", mediaID)
	}
	if !kind.Valid() {
		return u, domainerrors.Validationf("unknown medium kind %q", kind)
	}
	if err := ValidateRating(rating); err != nil {
		return u, err
	}

	next := u.Clone()
	i := next.listIndex(listID)
	if i < 0 {
		return next, nil
	}

	next.Lists[i].upsert(ItemKey{MediaID: mediaID, Kind: kind}, rating, watched, now)
	return next, nil
}

// CreateList appends a new empty, unpinned list with the given id.
func (u User) CreateList(listID, name string) (User, UserList, error) {
	trimmed, err := ValidateListName(name)
	if err != nil {
		return u, UserList{}, err
	}
	if listID == "" {
		return u, UserList{}, domainerrors.Validation("list id cannot be empty")
	}
	if u.listIndex(listID) >= 0 {
		return u, UserList{}, domainerrors.Conflict("list id already in use: " + listID)
	}

	created := UserList{ID: listID, Name: trimmed, Items: []ListItem{}}
	next := u.Clone()
	next.Lists = append(next.Lists, created)
	return next, created.Clone(), nil
}

// ImportList appends a new unpinned list pre-filled with items in the given order.
// Items sharing a key are merged into the first occurrence with the later rating.
func (u User) ImportList(listID, name string, items []ListItem) (User, UserList, error) {
	next, created, err := u.CreateList(listID, name)
	if err != nil {
		return u, UserList{}, err
	}

	list := &next.Lists[len(next.Lists)-1]
	seen := make(map[ItemKey]int, len(items))
	for _, item := range items {
		if !item.Kind.Valid() {
			return u, UserList{}, domainerrors.Validationf("unknown medium kind %q", item.Kind)
		}
		if j, ok := seen[item.Key()]; ok {
			list.Items[j].UserRating = item.UserRating
			continue
		}
		item = item.clone()
		if item.Kind == KindSeries && item.WatchedEpisodeIDs == nil {
			item.WatchedEpisodeIDs = []int{}
		}
		if item.Kind == KindMovie {
			item.WatchedEpisodeIDs = nil
		}
		seen[item.Key()] = len(list.Items)
		list.Items = append(list.Items, item)
	}

	created = list.Clone()
	return next, created, nil
}

// RenameList replaces the name of the matching list. An unknown listID is a no-op.
func (u User) RenameList(listID, name string) (User, error) {
	trimmed, err := ValidateListName(name)
	if err != nil {
		return u, err
	}

	next := u.Clone()
	if i := next.listIndex(listID); i >= 0 {
		next.Lists[i].Name = trimmed
	}
	return next, nil
}

// RemoveList drops the matching list. Removing an absent list is a no-op.
func (u User) RemoveList(listID string) User {
	next := u.Clone()
	next.Lists = slices.DeleteFunc(next.Lists, func(l UserList) bool { return l.ID == listID })
	return next
}

// ProfileUpdate carries optional profile edits. Nil fields are left unchanged.
type ProfileUpdate struct {
	Name          *string
	Bio           *string
	AvatarURL     *string
	CoverImageURL *string
}

// WithProfile applies a profile update.
func (u User) WithProfile(p ProfileUpdate) User {
	next := u.Clone()
	if p.Name != nil {
		next.Name = *p.Name
	}
	if p.Bio != nil {
		next.Bio = *p.Bio
	}
	if p.AvatarURL != nil {
		next.AvatarURL = *p.AvatarURL
	}
	if p.CoverImageURL != nil {
		next.CoverImageURL = *p.CoverImageURL
	}
	return next
}
