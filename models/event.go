package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"galeria/db"

	"gorm.io/gorm"
)

// Event is coupled to exactly one album for its whole lifetime: it either
// attaches to an existing album at creation or manufactures one, and
// EventDelete takes the album record with it. The coupling is exclusive -
// an album backs at most one event, so the delete cascade can never strand
// another event with a dangling album reference.
type Event struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	CreatedAt int64     `json:"-"`
	Title     string    `gorm:"type:varchar(300)" json:"title"`
	Location  string    `gorm:"type:varchar(300)" json:"location"`
	Date      time.Time `gorm:"index" json:"date"`
	AlbumID   uint64    `gorm:"not null;index" json:"album_id"`
}

type EventPatch struct {
	Title    *string    `json:"title,omitempty"`
	Location *string    `json:"location,omitempty"`
	Date     *time.Time `json:"date,omitempty"`
	AlbumID  *uint64    `json:"album_id,omitempty"`
}

// EventCreate links the event to albumID, or - with autoCreateAlbum - to a
// freshly created MEMBER-gated event album named after the event.
func EventCreate(title, location string, date time.Time, albumID *uint64, autoCreateAlbum bool, creator *User) (*Event, error) {
	if strings.TrimSpace(title) == "" {
		return nil, validation("title", "must not be empty")
	}
	if strings.TrimSpace(location) == "" {
		return nil, validation("location", "must not be empty")
	}
	if date.IsZero() {
		return nil, validation("date", "required")
	}
	if albumID == nil && !autoCreateAlbum {
		return nil, validation("album", "an event needs an associated album")
	}
	event := Event{
		Title:    strings.TrimSpace(title),
		Location: strings.TrimSpace(location),
		Date:     date,
	}
	err := db.Instance.Transaction(func(tx *gorm.DB) error {
		if autoCreateAlbum {
			album, err := albumCreateTx(tx,
				title,
				fmt.Sprintf("Album for the event %q", strings.TrimSpace(title)),
				RoleMember,
				true,
				creator)
			if err != nil {
				return err
			}
			event.AlbumID = album.ID
		} else {
			var album Album
			if tx.First(&album, *albumID).Error != nil {
				return validation("album", "does not exist")
			}
			var linked int64
			tx.Model(&Event{}).Where("album_id = ?", album.ID).Count(&linked)
			if linked > 0 {
				return validation("album", "already linked to an event")
			}
			event.AlbumID = album.ID
		}
		return tx.Create(&event).Error
	})
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// EventSave applies a patch. Re-linking to a nonexistent album, or to an
// album another event already owns, is rejected so no event ever dangles.
func EventSave(id uint64, patch EventPatch) (*Event, error) {
	var event Event
	err := db.Instance.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&event, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if patch.Title != nil {
			if strings.TrimSpace(*patch.Title) == "" {
				return validation("title", "must not be empty")
			}
			event.Title = strings.TrimSpace(*patch.Title)
		}
		if patch.Location != nil {
			event.Location = *patch.Location
		}
		if patch.Date != nil {
			event.Date = *patch.Date
		}
		if patch.AlbumID != nil {
			var album Album
			if tx.First(&album, *patch.AlbumID).Error != nil {
				return validation("album", "does not exist")
			}
			var linked int64
			tx.Model(&Event{}).Where("album_id = ? AND id <> ?", album.ID, event.ID).Count(&linked)
			if linked > 0 {
				return validation("album", "already linked to an event")
			}
			event.AlbumID = album.ID
		}
		return tx.Save(&event).Error
	})
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// EventDelete removes the event and its linked album record in one
// transaction. The album's media survive in the albumless pool.
func EventDelete(id uint64) (bool, error) {
	deleted := false
	err := db.Instance.Transaction(func(tx *gorm.DB) error {
		var event Event
		if err := tx.First(&event, id).Error; err != nil {
			return nil
		}
		if _, err := albumDeleteTx(tx, event.AlbumID); err != nil {
			return err
		}
		if err := tx.Delete(&Event{}, id).Error; err != nil {
			return err
		}
		deleted = true
		return nil
	})
	return deleted, err
}

func EventByID(id uint64) *Event {
	var event Event
	if db.Instance.First(&event, id).Error != nil {
		return nil
	}
	return &event
}

// EventsAll lists events, most recent date first.
func EventsAll() []Event {
	events := []Event{}
	db.Instance.Order("date DESC, id DESC").Find(&events)
	return events
}
