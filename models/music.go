package models

import (
	"log"
	"strings"

	"galeria/db"
	"galeria/storage"

	"github.com/google/uuid"
)

type MusicTrack struct {
	ID        uint64 `gorm:"primaryKey" json:"id"`
	CreatedAt int64  `json:"-"`
	Title     string `gorm:"type:varchar(300)" json:"title"`
	Artist    string `gorm:"type:varchar(300)" json:"artist"`
	URL       string `gorm:"type:varchar(2000)" json:"url"`
	Duration  uint32 `json:"duration"`
}

// MusicAdd stores one audio file and records the track, title taken from
// the file name.
func MusicAdd(file UploadFile) (*MusicTrack, bool, error) {
	degraded := false
	saved, err := storage.SaveMedia(file.Name, file.ContentType, file.Data)
	if err != nil {
		log.Printf("music upload of %s failed, keeping local reference: %v", file.Name, err)
		degraded = true
		saved = storage.SavedFile{
			StoredName: file.Name,
			URL:        "local://" + uuid.NewString() + "/" + file.Name,
			Kind:       storage.KindAudio,
		}
	}
	track := MusicTrack{
		Title:  strings.TrimSuffix(file.Name, ".mp3"),
		Artist: "Unknown",
		URL:    saved.URL,
	}
	if err := db.Instance.Create(&track).Error; err != nil {
		return nil, degraded, err
	}
	return &track, degraded, nil
}

func MusicAll() []MusicTrack {
	tracks := []MusicTrack{}
	db.Instance.Order("created_at ASC, id ASC").Find(&tracks)
	return tracks
}

func MusicDelete(id uint64) bool {
	result := db.Instance.Delete(&MusicTrack{}, id)
	return result.Error == nil && result.RowsAffected > 0
}
