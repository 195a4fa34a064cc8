// Package feed assembles the personalized home feed: one entry per album
// the viewer may see, plus a single aggregate entry collecting the
// albumless pool for viewers of at least MEMBER tier. Entries are
// reverse-chronological by content creation time and stable across reads.
package feed

import (
	"sort"

	"galeria/models"
)

type EntryKind string

const (
	// A persisted album with its media
	EntryAlbum EntryKind = "album"
	// The read-time aggregate of the albumless pool, not a persisted album
	EntryAlbumless EntryKind = "albumless"
)

type Entry struct {
	Kind      EntryKind           `json:"kind"`
	Album     *models.Album       `json:"album,omitempty"`
	Items     []models.MediaItem  `json:"items"`
	CreatedAt int64               `json:"created_at"`

	// Tie-break key so repeated reads return identical order
	sortID uint64
}

// Filter narrows a feed after visibility filtering. Categories intersect;
// values within a category union. AlbumIDs is the canonical container key
// (event titles resolve to album ids through the events listing). The
// albumless aggregate is not an album, so any non-empty AlbumIDs filter
// excludes it; a tagged filter narrows it to the matching items.
type Filter struct {
	TaggedUserIDs []uint64
	AlbumIDs      []uint64
}

func (f Filter) Empty() bool {
	return len(f.TaggedUserIDs) == 0 && len(f.AlbumIDs) == 0
}

// Build assembles the feed for viewer. Filtering is applied after the
// visibility policy, so a filter can only narrow what the viewer could
// already see.
func Build(viewer *models.User, filter Filter) []Entry {
	entries := []Entry{}

	wantAlbum := idSet(filter.AlbumIDs)
	wantTagged := idSet(filter.TaggedUserIDs)

	for _, album := range models.AlbumsVisibleTo(viewer) {
		album := album
		if len(wantAlbum) > 0 && !wantAlbum[album.ID] {
			continue
		}
		if len(wantTagged) > 0 && !anyIn(album.TaggedUsers, wantTagged) {
			continue
		}
		entries = append(entries, Entry{
			Kind:      EntryAlbum,
			Album:     &album,
			Items:     models.AlbumMedia(album.ID),
			CreatedAt: album.CreatedAt,
			sortID:    album.ID,
		})
	}

	if entry, ok := albumlessEntry(viewer, wantAlbum, wantTagged); ok {
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].CreatedAt != entries[j].CreatedAt {
			return entries[i].CreatedAt > entries[j].CreatedAt
		}
		return entries[i].sortID > entries[j].sortID
	})
	return entries
}

func albumlessEntry(viewer *models.User, wantAlbum, wantTagged map[uint64]bool) (Entry, bool) {
	if !viewer.Approved() || !viewer.Role.Meets(models.RoleMember) {
		return Entry{}, false
	}
	if len(wantAlbum) > 0 {
		return Entry{}, false
	}
	items := models.AlbumlessMedia()
	if len(wantTagged) > 0 {
		narrowed := items[:0]
		for _, item := range items {
			if anyIn(item.TaggedUsers, wantTagged) {
				narrowed = append(narrowed, item)
			}
		}
		items = narrowed
	}
	if len(items) == 0 {
		return Entry{}, false
	}
	entry := Entry{
		Kind:  EntryAlbumless,
		Items: items,
	}
	for _, item := range items {
		if item.CreatedAt > entry.CreatedAt {
			entry.CreatedAt = item.CreatedAt
		}
		if item.ID > entry.sortID {
			entry.sortID = item.ID
		}
	}
	return entry, true
}

func idSet(ids []uint64) map[uint64]bool {
	set := make(map[uint64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func anyIn(ids []uint64, want map[uint64]bool) bool {
	for _, id := range ids {
		if want[id] {
			return true
		}
	}
	return false
}
