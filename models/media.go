package models

import (
	"errors"
	"io"
	"log"
	"time"

	"galeria/db"
	"galeria/storage"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)

type MediaItem struct {
	ID uint64 `gorm:"primaryKey" json:"id"`
	// nil means the item sits in the shared albumless pool
	AlbumID   *uint64 `gorm:"index" json:"album_id,omitempty"`
	UserID    uint64  `gorm:"not null" json:"uploaded_by"`
	User      User    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	CreatedAt int64   `json:"created_at"`
	// Bumped whenever the item enters a container, so a relocated item
	// lands at the head of its new container while the feed still orders
	// by CreatedAt
	FiledAt     int64  `gorm:"index" json:"-"`
	URL         string `gorm:"type:varchar(2000)" json:"url"`
	Type        string `gorm:"type:varchar(10)" json:"type"`
	Description string `gorm:"type:varchar(2000)" json:"description"`
	Filter      string `gorm:"type:varchar(50)" json:"filter,omitempty"`

	TaggedUsers []uint64 `gorm:"-" json:"tagged_users"`
}

// UploadFile is one incoming file before it reaches the storage collaborator.
type UploadFile struct {
	Name        string
	ContentType string
	Data        io.Reader
}

// MediaPatch carries optional field changes for MediaUpdate. MoveAlbum
// distinguishes "leave the container alone" from "move to AlbumID"
// (nil AlbumID meaning the albumless pool).
type MediaPatch struct {
	Description *string
	Filter      *string
	MoveAlbum   bool
	AlbumID     *uint64
	TaggedUsers *[]uint64
}

// MediaAdd stores each file through the upload collaborator and creates
// the matching items at the head of the target container. When the
// collaborator fails, the flow still completes with a locally-scoped
// reference; the second return value reports that degraded outcome.
func MediaAdd(files []UploadFile, uploader *User, albumID *uint64) ([]MediaItem, bool, error) {
	if uploader == nil || uploader.ID == 0 {
		return nil, false, validation("uploader", "required")
	}
	if len(files) == 0 {
		return nil, false, validation("files", "must not be empty")
	}
	degraded := false
	saved := make([]storage.SavedFile, 0, len(files))
	for _, file := range files {
		sf, err := storage.SaveMedia(file.Name, file.ContentType, file.Data)
		if err != nil {
			// Keep the in-memory flow alive - the reference will not
			// survive a restart
			log.Printf("upload of %s failed, keeping local reference: %v", file.Name, err)
			degraded = true
			sf = storage.SavedFile{
				StoredName: file.Name,
				URL:        "local://" + uuid.NewString() + "/" + file.Name,
				Kind:       storage.KindFromContentType(file.ContentType),
			}
		}
		saved = append(saved, sf)
	}

	now := time.Now()
	items := make([]MediaItem, 0, len(files))
	err := db.Instance.Transaction(func(tx *gorm.DB) error {
		var album *Album
		if albumID != nil {
			var a Album
			if tx.First(&a, *albumID).Error == nil {
				album = &a
			}
		}
		// Earlier files end up closer to the head, like the whole batch
		// was prepended at once
		base := now.UnixNano()
		for i, sf := range saved {
			item := MediaItem{
				UserID:      uploader.ID,
				CreatedAt:   now.Unix(),
				FiledAt:     base - int64(i),
				URL:         sf.URL,
				Type:        mediaTypeFor(sf.Kind),
				Description: "",
			}
			if album != nil {
				item.AlbumID = &album.ID
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			item.TaggedUsers = []uint64{}
			items = append(items, item)
		}
		if album != nil && album.CoverPhoto == PlaceholderCover {
			if cover := firstImageURL(saved); cover != "" {
				if err := tx.Model(album).Update("cover_photo", cover).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, degraded, err
	}
	return items, degraded, nil
}

func mediaTypeFor(kind storage.Kind) string {
	if kind == storage.KindVideo {
		return MediaTypeVideo
	}
	return MediaTypeImage
}

func firstImageURL(saved []storage.SavedFile) string {
	for _, sf := range saved {
		if sf.Kind != storage.KindImage {
			continue
		}
		if sf.ThumbURL != "" {
			return sf.ThumbURL
		}
		return sf.URL
	}
	return ""
}

// MediaUpdate applies a patch. A container move removes the item from its
// current container and inserts it at the head of the target within one
// transaction - the item is never observable in zero or two containers. A
// move towards a nonexistent album degrades to the albumless pool.
func MediaUpdate(id uint64, patch MediaPatch) (*MediaItem, error) {
	var item MediaItem
	err := db.Instance.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&item, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if patch.Description != nil {
			item.Description = *patch.Description
		}
		if patch.Filter != nil {
			item.Filter = *patch.Filter
		}
		if patch.MoveAlbum {
			target := patch.AlbumID
			if target != nil {
				var album Album
				if tx.First(&album, *target).Error != nil {
					target = nil
				}
			}
			moved := (item.AlbumID == nil) != (target == nil) ||
				(item.AlbumID != nil && target != nil && *item.AlbumID != *target)
			if moved {
				item.AlbumID = target
				item.FiledAt = time.Now().UnixNano()
			}
		}
		if err := tx.Save(&item).Error; err != nil {
			return err
		}
		if patch.TaggedUsers != nil {
			if err := replaceMediaTags(tx, item.ID, *patch.TaggedUsers); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	items := []MediaItem{item}
	attachMediaTags(items)
	return &items[0], nil
}

// MediaDelete removes the item wherever it actually resides. The album
// hint from the caller is deliberately not trusted - the row's own album
// reference is authoritative, so a stale hint cannot leave the item behind.
func MediaDelete(id uint64, albumHint *uint64) bool {
	_ = albumHint
	deleted := false
	err := db.Instance.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&MediaTag{}, "media_item_id = ?", id).Error; err != nil {
			return err
		}
		result := tx.Delete(&MediaItem{}, id)
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected > 0
		return nil
	})
	if err != nil {
		return false
	}
	return deleted
}

func MediaByID(id uint64) *MediaItem {
	var item MediaItem
	if db.Instance.First(&item, id).Error != nil {
		return nil
	}
	items := []MediaItem{item}
	attachMediaTags(items)
	return &items[0]
}

// AlbumMedia lists an album's items, most recently filed first.
func AlbumMedia(albumID uint64) []MediaItem {
	items := []MediaItem{}
	db.Instance.Where("album_id = ?", albumID).Order("filed_at DESC, id DESC").Find(&items)
	attachMediaTags(items)
	return items
}

// AlbumlessMedia lists the shared unfiled pool, most recently filed first.
func AlbumlessMedia() []MediaItem {
	items := []MediaItem{}
	db.Instance.Where("album_id IS NULL").Order("filed_at DESC, id DESC").Find(&items)
	attachMediaTags(items)
	return items
}

func MediaCount() int64 {
	var count int64
	db.Instance.Model(&MediaItem{}).Count(&count)
	return count
}

func attachMediaTags(items []MediaItem) {
	ids := make([]uint64, 0, len(items))
	for i := range items {
		ids = append(ids, items[i].ID)
	}
	tags := mediaTagIDs(ids)
	for i := range items {
		items[i].TaggedUsers = tags[items[i].ID]
		if items[i].TaggedUsers == nil {
			items[i].TaggedUsers = []uint64{}
		}
	}
}
