// Package storage is the upload/storage collaborator: it persists uploaded
// bytes partitioned by kind (photos/, videos/, others/) and hands back the
// URL the rest of the system records. The media catalogue itself lives in
// the database - the sidecar list kept here is informational only.
package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"galeria/config"
	"galeria/utils"

	"github.com/google/uuid"
)

const thumbWidth = 400

// SavedFile is what the collaborator returns per stored file.
type SavedFile struct {
	StoredName string `json:"stored_name"`
	URL        string `json:"url"`
	ThumbURL   string `json:"thumb_url,omitempty"`
	Kind       Kind   `json:"kind"`
}

type StorageAPI interface {
	Save(path, contentType string, reader io.Reader) (int64, error)
	Delete(path string) error
	URL(path string) string
	GetTotalSpace() uint64
	GetFreeSpace() uint64
}

var backend StorageAPI

var ErrNotMedia = errors.New("file is neither an image nor a video")

func Init() {
	if config.S3_BUCKET != "" {
		backend = NewS3Storage(config.S3_BUCKET)
	} else {
		backend = NewDiskStorage(config.DATA_DIR)
	}
	loadSidecar()
}

func Get() StorageAPI {
	if backend == nil {
		panic("storage not initialized")
	}
	return backend
}

// SetBackend swaps the active backend. Used by tests.
func SetBackend(s StorageAPI) {
	backend = s
}

func dirFor(kind Kind) string {
	switch kind {
	case KindImage:
		return "photos"
	case KindVideo:
		return "videos"
	default:
		return "others"
	}
}

func storedName(original string) string {
	return fmt.Sprintf("%d-%s-%s", time.Now().UnixMilli(), uuid.NewString()[:8], utils.SanitizeFileName(original))
}

// SaveMedia stores one uploaded file under the directory for its kind and
// appends an entry to the sidecar list. Images additionally get a JPEG
// thumbnail stored next to the original.
func SaveMedia(name, contentType string, reader io.Reader) (SavedFile, error) {
	kind, reader := DetectKind(name, contentType, reader)
	stored := storedName(name)
	path := dirFor(kind) + "/" + stored

	var imageData []byte
	if kind == KindImage {
		// Buffered so the same bytes can feed the thumbnail encoder
		var err error
		imageData, err = io.ReadAll(reader)
		if err != nil {
			return SavedFile{}, err
		}
		reader = bytes.NewReader(imageData)
	}
	if _, err := Get().Save(path, contentType, reader); err != nil {
		return SavedFile{}, err
	}
	saved := SavedFile{
		StoredName: stored,
		URL:        Get().URL(path),
		Kind:       kind,
	}
	if kind == KindImage {
		if thumbPath, err := saveThumb(path, imageData); err == nil {
			saved.ThumbURL = Get().URL(thumbPath)
		} else {
			log.Printf("thumbnail for %s failed: %v", stored, err)
		}
	}
	appendSidecar(saved)
	return saved, nil
}

// SaveStory is SaveMedia restricted to images and videos.
func SaveStory(name, contentType string, reader io.Reader) (SavedFile, error) {
	kind, reader := DetectKind(name, contentType, reader)
	if kind != KindImage && kind != KindVideo {
		return SavedFile{}, ErrNotMedia
	}
	return SaveMedia(name, contentType, reader)
}

func saveThumb(path string, imageData []byte) (string, error) {
	var thumb bytes.Buffer
	if _, err := utils.CreateThumb(thumbWidth, bytes.NewReader(imageData), &thumb); err != nil {
		return "", err
	}
	thumbPath := path + "_thumb.jpg"
	if _, err := Get().Save(thumbPath, "image/jpeg", &thumb); err != nil {
		return "", err
	}
	return thumbPath, nil
}
