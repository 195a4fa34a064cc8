package models

import (
	"strings"

	"galeria/db"

	"gorm.io/gorm"
)

// PlaceholderCover marks an album that has not received its first image
// yet. MediaAdd swaps it for the first uploaded image.
const PlaceholderCover = "https://picsum.photos/seed/galeria/400/400"

type Album struct {
	ID           uint64 `gorm:"primaryKey" json:"id"`
	UserID       uint64 `gorm:"not null;index:user_album_created,priority:1" json:"created_by"`
	User         User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	CreatedAt    int64  `gorm:"index:user_album_created,priority:2" json:"created_at"`
	Title        string `gorm:"type:varchar(300)" json:"title"`
	Description  string `gorm:"type:varchar(2000)" json:"description"`
	CoverPhoto   string `gorm:"type:varchar(2000)" json:"cover_photo"`
	// Minimum role tier required to view the album and its media
	Permission   Role `gorm:"type:tinyint(1);not null" json:"permission"`
	IsEventAlbum bool `gorm:"not null;default:false" json:"is_event_album"`

	// Loaded on demand, not a column
	TaggedUsers []uint64 `gorm:"-" json:"tagged_users"`
}

func albumCreateTx(tx *gorm.DB, title, description string, permission Role, isEventAlbum bool, creator *User) (*Album, error) {
	if strings.TrimSpace(title) == "" {
		return nil, validation("title", "must not be empty")
	}
	if !permission.Valid() {
		return nil, validation("permission", "unknown tier")
	}
	if creator == nil || creator.ID == 0 {
		return nil, validation("creator", "required")
	}
	album := Album{
		UserID:       creator.ID,
		Title:        strings.TrimSpace(title),
		Description:  description,
		CoverPhoto:   PlaceholderCover,
		Permission:   permission,
		IsEventAlbum: isEventAlbum,
	}
	if err := tx.Create(&album).Error; err != nil {
		return nil, err
	}
	album.TaggedUsers = []uint64{}
	return &album, nil
}

// AlbumCreate makes an empty album with a placeholder cover.
func AlbumCreate(title, description string, permission Role, isEventAlbum bool, creator *User) (*Album, error) {
	var album *Album
	err := db.Instance.Transaction(func(tx *gorm.DB) error {
		var err error
		album, err = albumCreateTx(tx, title, description, permission, isEventAlbum, creator)
		return err
	})
	if err != nil {
		return nil, err
	}
	return album, nil
}

// albumDeleteTx removes the album record and moves its media into the
// albumless pool within the caller's transaction, so no item is ever
// observable with a dangling album reference.
func albumDeleteTx(tx *gorm.DB, id uint64) (bool, error) {
	var album Album
	if err := tx.First(&album, id).Error; err != nil {
		return false, nil
	}
	if err := tx.Model(&MediaItem{}).Where("album_id = ?", id).Update("album_id", nil).Error; err != nil {
		return false, err
	}
	if err := tx.Delete(&AlbumTag{}, "album_id = ?", id).Error; err != nil {
		return false, err
	}
	if err := tx.Delete(&Album{}, id).Error; err != nil {
		return false, err
	}
	return true, nil
}

// AlbumDelete removes an album, orphaning its media into the albumless
// pool. An album still referenced by an event can only go away through
// EventDelete.
func AlbumDelete(id uint64) (bool, error) {
	deleted := false
	err := db.Instance.Transaction(func(tx *gorm.DB) error {
		var count int64
		tx.Model(&Event{}).Where("album_id = ?", id).Count(&count)
		if count > 0 {
			return ErrPermissionDenied
		}
		var err error
		deleted, err = albumDeleteTx(tx, id)
		return err
	})
	return deleted, err
}

// AlbumByID returns the album if the viewer may see it, nil otherwise.
func AlbumByID(id uint64, viewer *User) *Album {
	var album Album
	if db.Instance.First(&album, id).Error != nil {
		return nil
	}
	if !CanViewAlbum(viewer, &album) {
		return nil
	}
	albums := []Album{album}
	attachAlbumTags(albums)
	return &albums[0]
}

// AlbumsVisibleTo lists the albums the viewer may see, newest first.
func AlbumsVisibleTo(viewer *User) []Album {
	all := []Album{}
	db.Instance.Order("created_at DESC, id DESC").Find(&all)
	visible := []Album{}
	for i := range all {
		if CanViewAlbum(viewer, &all[i]) {
			visible = append(visible, all[i])
		}
	}
	attachAlbumTags(visible)
	return visible
}

// AlbumsAll is the unfiltered administrative listing.
func AlbumsAll() []Album {
	albums := []Album{}
	db.Instance.Order("created_at DESC, id DESC").Find(&albums)
	attachAlbumTags(albums)
	return albums
}

func AlbumsByCreator(userID uint64, viewer *User) []Album {
	albums := []Album{}
	db.Instance.Where("user_id = ?", userID).Order("created_at DESC, id DESC").Find(&albums)
	visible := []Album{}
	for i := range albums {
		if CanViewAlbum(viewer, &albums[i]) {
			visible = append(visible, albums[i])
		}
	}
	attachAlbumTags(visible)
	return visible
}

func attachAlbumTags(albums []Album) {
	ids := make([]uint64, 0, len(albums))
	for i := range albums {
		ids = append(ids, albums[i].ID)
	}
	tags := AlbumTagIDs(ids)
	for i := range albums {
		albums[i].TaggedUsers = tags[albums[i].ID]
		if albums[i].TaggedUsers == nil {
			albums[i].TaggedUsers = []uint64{}
		}
	}
}
