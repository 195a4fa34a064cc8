package models

// CanViewAlbum decides whether the viewer may see an album. READER-gated
// albums are public, including for anonymous viewers (nil). Anything above
// that requires an approved account whose role meets the album's minimum
// tier. Fail-closed: unknown content is simply not visible, never an error.
func CanViewAlbum(viewer *User, album *Album) bool {
	if album == nil {
		return false
	}
	if album.Permission == RoleReader {
		return true
	}
	if !viewer.Approved() {
		return false
	}
	return viewer.Role.Meets(album.Permission)
}

// CanViewMedia decides whether the viewer may see a single item. Filed
// items inherit their album's visibility; albumless items are visible to
// any approved, authenticated viewer regardless of role.
func CanViewMedia(viewer *User, item *MediaItem, album *Album) bool {
	if item == nil {
		return false
	}
	if item.AlbumID == nil {
		return viewer.Approved()
	}
	return CanViewAlbum(viewer, album)
}
