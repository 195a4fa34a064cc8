package storage

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"galeria/config"

	"github.com/google/uuid"
	cmap "github.com/orcaman/concurrent-map/v2"
)

const sidecarFileName = "media.json"

// SidecarEntry is one line of the append-only upload log. The database is
// the authority on media - this list only mirrors what passed through the
// collaborator.
type SidecarEntry struct {
	ID         string    `json:"id"`
	StoredName string    `json:"stored_name"`
	URL        string    `json:"url"`
	Kind       Kind      `json:"kind"`
	UploadedAt time.Time `json:"uploaded_at"`
}

var (
	sidecarIndex = cmap.New[SidecarEntry]()
	sidecarFile  sync.Mutex
)

func sidecarPath() string {
	return filepath.Join(config.DATA_DIR, sidecarFileName)
}

func loadSidecar() {
	data, err := os.ReadFile(sidecarPath())
	if err != nil {
		return
	}
	var entries []SidecarEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		log.Printf("sidecar %s unreadable: %v", sidecarPath(), err)
		return
	}
	for _, e := range entries {
		sidecarIndex.Set(e.ID, e)
	}
}

func appendSidecar(saved SavedFile) {
	entry := SidecarEntry{
		ID:         uuid.NewString(),
		StoredName: saved.StoredName,
		URL:        saved.URL,
		Kind:       saved.Kind,
		UploadedAt: time.Now(),
	}
	sidecarIndex.Set(entry.ID, entry)
	writeSidecar()
}

func writeSidecar() {
	sidecarFile.Lock()
	defer sidecarFile.Unlock()

	entries := ListSidecar()
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return
	}
	if err := os.MkdirAll(config.DATA_DIR, 0777); err != nil {
		log.Printf("sidecar dir: %v", err)
		return
	}
	if err := os.WriteFile(sidecarPath(), data, 0666); err != nil {
		log.Printf("sidecar write: %v", err)
	}
}

// ListSidecar returns the upload log, most recent first.
func ListSidecar() []SidecarEntry {
	entries := make([]SidecarEntry, 0, sidecarIndex.Count())
	for item := range sidecarIndex.IterBuffered() {
		entries = append(entries, item.Val)
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].UploadedAt.Equal(entries[j].UploadedAt) {
			return entries[i].UploadedAt.After(entries[j].UploadedAt)
		}
		return entries[i].ID > entries[j].ID
	})
	return entries
}
