package models

import (
	"galeria/db"

	"gorm.io/gorm"
)

// AlbumTag marks a user as appearing in an album.
type AlbumTag struct {
	AlbumID uint64 `gorm:"primaryKey"`
	Album   Album  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	UserID  uint64 `gorm:"primaryKey"`
	User    User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// MediaTag marks a user as appearing in a single media item.
type MediaTag struct {
	MediaItemID uint64    `gorm:"primaryKey"`
	MediaItem   MediaItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	UserID      uint64    `gorm:"primaryKey"`
	User        User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// AlbumTagIDs returns tagged user ids per album for the given albums.
func AlbumTagIDs(albumIDs []uint64) map[uint64][]uint64 {
	result := map[uint64][]uint64{}
	if len(albumIDs) == 0 {
		return result
	}
	tags := []AlbumTag{}
	db.Instance.Where("album_id IN ?", albumIDs).Order("user_id ASC").Find(&tags)
	for _, t := range tags {
		result[t.AlbumID] = append(result[t.AlbumID], t.UserID)
	}
	return result
}

// AlbumSetTags replaces an album's tagged-user set.
func AlbumSetTags(albumID uint64, userIDs []uint64) error {
	return db.Instance.Transaction(func(tx *gorm.DB) error {
		var album Album
		if tx.First(&album, albumID).Error != nil {
			return ErrNotFound
		}
		if err := tx.Delete(&AlbumTag{}, "album_id = ?", albumID).Error; err != nil {
			return err
		}
		for _, id := range userIDs {
			if err := tx.Create(&AlbumTag{AlbumID: albumID, UserID: id}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func mediaTagIDs(itemIDs []uint64) map[uint64][]uint64 {
	result := map[uint64][]uint64{}
	if len(itemIDs) == 0 {
		return result
	}
	tags := []MediaTag{}
	db.Instance.Where("media_item_id IN ?", itemIDs).Order("user_id ASC").Find(&tags)
	for _, t := range tags {
		result[t.MediaItemID] = append(result[t.MediaItemID], t.UserID)
	}
	return result
}

func replaceMediaTags(tx *gorm.DB, itemID uint64, userIDs []uint64) error {
	if err := tx.Delete(&MediaTag{}, "media_item_id = ?", itemID).Error; err != nil {
		return err
	}
	for _, id := range userIDs {
		if err := tx.Create(&MediaTag{MediaItemID: itemID, UserID: id}).Error; err != nil {
			return err
		}
	}
	return nil
}
