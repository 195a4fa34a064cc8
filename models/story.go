package models

import (
	"log"
	"time"

	"galeria/db"
	"galeria/storage"

	"github.com/google/uuid"
)

// Stories live for 24 hours from creation. Expiry is the only removal
// mechanism - there is no delete operation.
const storyLifetime = 24 * time.Hour

type Story struct {
	ID        uint64 `gorm:"primaryKey" json:"id"`
	UserID    uint64 `gorm:"not null" json:"user_id"`
	User      User   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	FilePath  string `gorm:"type:varchar(2000)" json:"file_path"`
	Type      string `gorm:"type:varchar(10)" json:"type"`
	CreatedAt int64  `json:"created_at"`
	ExpiresAt int64  `gorm:"index" json:"expires_at"`
}

// StoryAdd uploads one image/video through the collaborator and records
// the story. Collaborator failure degrades to a local reference like
// MediaAdd does.
func StoryAdd(user *User, file UploadFile) (*Story, bool, error) {
	if user == nil || user.ID == 0 {
		return nil, false, validation("user", "required")
	}
	degraded := false
	saved, err := storage.SaveStory(file.Name, file.ContentType, file.Data)
	if err == storage.ErrNotMedia {
		return nil, false, validation("file", "must be an image or a video")
	}
	if err != nil {
		log.Printf("story upload of %s failed, keeping local reference: %v", file.Name, err)
		degraded = true
		saved = storage.SavedFile{
			StoredName: file.Name,
			URL:        "local://" + uuid.NewString() + "/" + file.Name,
			Kind:       storage.KindFromContentType(file.ContentType),
		}
	}
	now := time.Now()
	story := Story{
		UserID:    user.ID,
		FilePath:  saved.URL,
		Type:      mediaTypeFor(saved.Kind),
		CreatedAt: now.Unix(),
		ExpiresAt: now.Add(storyLifetime).Unix(),
	}
	if err := db.Instance.Create(&story).Error; err != nil {
		return nil, degraded, err
	}
	return &story, degraded, nil
}

// ActiveStories lists the stories that have not expired yet, newest first.
func ActiveStories() []Story {
	stories := []Story{}
	db.Instance.Where("expires_at > ?", time.Now().Unix()).
		Order("created_at DESC, id DESC").Find(&stories)
	return stories
}
