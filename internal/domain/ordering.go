package domain

import "slices"

// Pinned lists always form a contiguous prefix of User.Lists, in pin order,
// followed by the unpinned lists in their own order.

// TogglePin flips the pinned flag of a list and reinserts it directly after the
// pinned lists that remain. A newly pinned list becomes the last pinned; a newly
// unpinned list becomes the first unpinned. The remaining lists are partitioned
// first, so the result holds the pinned prefix even when u did not. An unknown
// listID is a no-op.
func (u User) TogglePin(listID string) User {
	next := u.Clone()
	i := next.listIndex(listID)
	if i < 0 {
		return next
	}

	target := next.Lists[i]
	target.Pinned = !target.Pinned

	rest := NormalizeOrder(slices.Delete(next.Lists, i, i+1))
	next.Lists = slices.Insert(rest, pinnedCount(rest), target)
	return next
}

// Reorder sets the order of the pinned lists. Ids are resolved against the current
// pinned lists; unknown ids, duplicates, and ids of unpinned lists are skipped.
// Pinned lists the caller did not mention follow the named ones in their existing
// order, and unpinned lists keep their existing order after all pinned lists.
func (u User) Reorder(orderedIDs []string) User {
	next := u.Clone()

	byID := make(map[string]UserList, len(next.Lists))
	for _, l := range next.Lists {
		byID[l.ID] = l
	}

	out := make([]UserList, 0, len(next.Lists))
	placed := make(map[string]bool, len(orderedIDs))
	for _, listID := range orderedIDs {
		l, ok := byID[listID]
		if !ok || !l.Pinned || placed[listID] {
			continue
		}
		placed[listID] = true
		out = append(out, l)
	}
	for _, l := range next.Lists {
		if l.Pinned && !placed[l.ID] {
			out = append(out, l)
		}
	}
	for _, l := range next.Lists {
		if !l.Pinned {
			out = append(out, l)
		}
	}

	next.Lists = out
	return next
}

// PinnedPrefixHolds reports whether every pinned list precedes every unpinned list.
func PinnedPrefixHolds(lists []UserList) bool {
	return pinnedPrefixLen(lists) == pinnedCount(lists)
}

// NormalizeOrder stably moves pinned lists ahead of unpinned ones.
// Stores use it to repair snapshots written by older clients.
func NormalizeOrder(lists []UserList) []UserList {
	out := make([]UserList, 0, len(lists))
	for _, l := range lists {
		if l.Pinned {
			out = append(out, l)
		}
	}
	for _, l := range lists {
		if !l.Pinned {
			out = append(out, l)
		}
	}
	return out
}

func pinnedPrefixLen(lists []UserList) int {
	n := 0
	for n < len(lists) && lists[n].Pinned {
		n++
	}
	return n
}

func pinnedCount(lists []UserList) int {
	n := 0
	for _, l := range lists {
		if l.Pinned {
			n++
		}
	}
	return n
}
