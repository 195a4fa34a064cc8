package models

import (
	"strings"

	"galeria/db"
)

// SearchResults groups matches across the three content kinds. Everything
// in it has already passed the visibility policy for the querying viewer.
type SearchResults struct {
	Users  []User      `json:"users"`
	Albums []Album     `json:"albums"`
	Media  []MediaItem `json:"media"`
}

// SearchContent matches users by name and albums/media by title or
// description, case-insensitively, filtered to what the viewer may see.
func SearchContent(query string, viewer *User) SearchResults {
	results := SearchResults{Users: []User{}, Albums: []Album{}, Media: []MediaItem{}}
	query = strings.TrimSpace(query)
	if query == "" {
		return results
	}
	like := "%" + strings.ToLower(query) + "%"

	db.Instance.Where("lower(name) LIKE ?", like).Order("name ASC").Find(&results.Users)

	albums := []Album{}
	db.Instance.Where("lower(title) LIKE ? OR lower(description) LIKE ?", like, like).
		Order("created_at DESC, id DESC").Find(&albums)
	visibleAlbumIDs := map[uint64]bool{}
	for i := range albums {
		if CanViewAlbum(viewer, &albums[i]) {
			results.Albums = append(results.Albums, albums[i])
			visibleAlbumIDs[albums[i].ID] = true
		}
	}
	attachAlbumTags(results.Albums)

	items := []MediaItem{}
	db.Instance.Where("lower(description) LIKE ?", like).
		Order("created_at DESC, id DESC").Find(&items)
	for i := range items {
		if items[i].AlbumID == nil {
			if viewer.Approved() {
				results.Media = append(results.Media, items[i])
			}
			continue
		}
		if visibleAlbumIDs[*items[i].AlbumID] {
			results.Media = append(results.Media, items[i])
			continue
		}
		// The matching item may sit in a non-matching album
		var album Album
		if db.Instance.First(&album, *items[i].AlbumID).Error == nil && CanViewAlbum(viewer, &album) {
			results.Media = append(results.Media, items[i])
		}
	}
	attachMediaTags(results.Media)
	return results
}

// TaggedContent returns the visible albums and media a user appears in,
// for their profile page.
func TaggedContent(userID uint64, viewer *User) (albums []Album, media []MediaItem) {
	albums = []Album{}
	media = []MediaItem{}

	visible := AlbumsVisibleTo(viewer)
	visibleIDs := map[uint64]bool{}
	for i := range visible {
		visibleIDs[visible[i].ID] = true
		for _, tagged := range visible[i].TaggedUsers {
			if tagged == userID {
				albums = append(albums, visible[i])
				break
			}
		}
	}

	tags := []MediaTag{}
	db.Instance.Where("user_id = ?", userID).Find(&tags)
	itemIDs := make([]uint64, 0, len(tags))
	for _, t := range tags {
		itemIDs = append(itemIDs, t.MediaItemID)
	}
	if len(itemIDs) == 0 {
		return albums, media
	}
	items := []MediaItem{}
	db.Instance.Where("id IN ?", itemIDs).Order("created_at DESC, id DESC").Find(&items)
	for i := range items {
		if items[i].AlbumID == nil {
			if viewer.Approved() {
				media = append(media, items[i])
			}
			continue
		}
		if visibleIDs[*items[i].AlbumID] {
			media = append(media, items[i])
		}
	}
	attachMediaTags(media)
	return albums, media
}
