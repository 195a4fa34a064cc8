package models

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"galeria/config"
	"galeria/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memStorage struct {
	files   map[string][]byte
	failing bool
}

func (s *memStorage) Save(path, contentType string, reader io.Reader) (int64, error) {
	if s.failing {
		return 0, errors.New("storage unreachable")
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return 0, err
	}
	s.files[path] = data
	return int64(len(data)), nil
}

func (s *memStorage) Delete(path string) error {
	delete(s.files, path)
	return nil
}

func (s *memStorage) URL(path string) string {
	return "/uploads/" + path
}

func (s *memStorage) GetTotalSpace() uint64 { return 0 }
func (s *memStorage) GetFreeSpace() uint64  { return 0 }

func setupMediaTest(t *testing.T) *memStorage {
	t.Helper()
	setupTestDB(t)
	config.DATA_DIR = t.TempDir()
	mem := &memStorage{files: map[string][]byte{}}
	storage.SetBackend(mem)
	return mem
}

func upload(name, contentType string) UploadFile {
	return UploadFile{Name: name, ContentType: contentType, Data: bytes.NewReader([]byte("data-" + name))}
}

func TestMediaAdd(t *testing.T) {
	mem := setupMediaTest(t)
	uploader := approvedUser(t, "uploader", RoleMember)
	album, err := AlbumCreate("Trip", "", RoleMember, false, uploader)
	require.NoError(t, err)

	items, degraded, err := MediaAdd([]UploadFile{
		upload("first.jpg", "image/jpeg"),
		upload("clip.mp4", "video/mp4"),
	}, uploader, &album.ID)
	require.NoError(t, err)
	assert.False(t, degraded)
	require.Len(t, items, 2)
	assert.Equal(t, MediaTypeImage, items[0].Type)
	assert.Equal(t, MediaTypeVideo, items[1].Type)
	for _, item := range items {
		require.NotNil(t, item.AlbumID)
		assert.Equal(t, album.ID, *item.AlbumID)
		assert.Equal(t, uploader.ID, item.UserID)
	}

	// Most-recent-first, whole batch at the head in input order
	listed := AlbumMedia(album.ID)
	require.Len(t, listed, 2)
	assert.Equal(t, items[0].ID, listed[0].ID)
	assert.Equal(t, items[1].ID, listed[1].ID)

	// Cover left the placeholder for the first image of the batch
	saved := AlbumByID(album.ID, uploader)
	require.NotNil(t, saved)
	assert.NotEqual(t, PlaceholderCover, saved.CoverPhoto)
	assert.Contains(t, saved.CoverPhoto, "first.jpg")

	// Bytes went through the collaborator, partitioned by kind
	photoSeen, videoSeen := false, false
	for path := range mem.files {
		if strings.HasPrefix(path, "photos/") {
			photoSeen = true
		}
		if strings.HasPrefix(path, "videos/") {
			videoSeen = true
		}
	}
	assert.True(t, photoSeen)
	assert.True(t, videoSeen)
}

func TestMediaAddDegradedFallback(t *testing.T) {
	mem := setupMediaTest(t)
	mem.failing = true
	uploader := approvedUser(t, "uploader", RoleMember)

	items, degraded, err := MediaAdd([]UploadFile{upload("pic.jpg", "image/jpeg")}, uploader, nil)
	require.NoError(t, err, "collaborator failure must not fail the operation")
	assert.True(t, degraded)
	require.Len(t, items, 1)
	assert.True(t, strings.HasPrefix(items[0].URL, "local://"), "got %s", items[0].URL)
	assert.Len(t, AlbumlessMedia(), 1)
}

func TestMediaAddUnknownAlbumGoesToPool(t *testing.T) {
	setupMediaTest(t)
	uploader := approvedUser(t, "uploader", RoleMember)
	missing := uint64(999)

	items, _, err := MediaAdd([]UploadFile{upload("pic.jpg", "image/jpeg")}, uploader, &missing)
	require.NoError(t, err)
	assert.Nil(t, items[0].AlbumID)
}

func TestMediaUpdateRelocation(t *testing.T) {
	setupMediaTest(t)
	uploader := approvedUser(t, "uploader", RoleMember)
	albumA, err := AlbumCreate("A", "", RoleMember, false, uploader)
	require.NoError(t, err)
	albumB, err := AlbumCreate("B", "", RoleMember, false, uploader)
	require.NoError(t, err)

	_, _, err = MediaAdd([]UploadFile{upload("b1.jpg", "image/jpeg")}, uploader, &albumB.ID)
	require.NoError(t, err)
	items, _, err := MediaAdd([]UploadFile{upload("a1.jpg", "image/jpeg")}, uploader, &albumA.ID)
	require.NoError(t, err)
	moved := items[0]
	total := MediaCount()

	// A -> B: gone from A, at the head of B, exactly one container
	updated, err := MediaUpdate(moved.ID, MediaPatch{MoveAlbum: true, AlbumID: &albumB.ID})
	require.NoError(t, err)
	require.NotNil(t, updated.AlbumID)
	assert.Equal(t, albumB.ID, *updated.AlbumID)
	assert.Empty(t, AlbumMedia(albumA.ID))
	inB := AlbumMedia(albumB.ID)
	require.Len(t, inB, 2)
	assert.Equal(t, moved.ID, inB[0].ID, "relocated item must land at index 0")
	assert.Equal(t, total, MediaCount(), "relocation must not create or drop items")

	// B -> pool via empty target
	updated, err = MediaUpdate(moved.ID, MediaPatch{MoveAlbum: true})
	require.NoError(t, err)
	assert.Nil(t, updated.AlbumID)
	require.Len(t, AlbumlessMedia(), 1)
	assert.Equal(t, total, MediaCount())

	// Nonexistent target degrades to the pool, no error
	bogus := uint64(4242)
	inBItem := AlbumMedia(albumB.ID)[0]
	updated, err = MediaUpdate(inBItem.ID, MediaPatch{MoveAlbum: true, AlbumID: &bogus})
	require.NoError(t, err)
	assert.Nil(t, updated.AlbumID)
	assert.Len(t, AlbumlessMedia(), 2)
}

func TestMediaUpdateFieldsAndTags(t *testing.T) {
	setupMediaTest(t)
	uploader := approvedUser(t, "uploader", RoleMember)
	items, _, err := MediaAdd([]UploadFile{upload("pic.jpg", "image/jpeg")}, uploader, nil)
	require.NoError(t, err)

	updated, err := MediaUpdate(items[0].ID, MediaPatch{
		Description: ptr("sunset"),
		Filter:      ptr("sepia"),
		TaggedUsers: ptr([]uint64{uploader.ID}),
	})
	require.NoError(t, err)
	assert.Equal(t, "sunset", updated.Description)
	assert.Equal(t, "sepia", updated.Filter)
	assert.Equal(t, []uint64{uploader.ID}, updated.TaggedUsers)
	assert.Nil(t, updated.AlbumID, "container untouched without MoveAlbum")

	_, err = MediaUpdate(98765, MediaPatch{Description: ptr("x")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMediaDeleteIgnoresStaleHint(t *testing.T) {
	setupMediaTest(t)
	uploader := approvedUser(t, "uploader", RoleMember)
	albumA, err := AlbumCreate("A", "", RoleMember, false, uploader)
	require.NoError(t, err)
	albumB, err := AlbumCreate("B", "", RoleMember, false, uploader)
	require.NoError(t, err)
	items, _, err := MediaAdd([]UploadFile{upload("pic.jpg", "image/jpeg")}, uploader, &albumA.ID)
	require.NoError(t, err)
	_, err = MediaUpdate(items[0].ID, MediaPatch{MoveAlbum: true, AlbumID: &albumB.ID})
	require.NoError(t, err)

	// The hint still says A; the item actually lives in B
	assert.True(t, MediaDelete(items[0].ID, &albumA.ID))
	assert.Equal(t, int64(0), MediaCount())

	assert.False(t, MediaDelete(items[0].ID, nil), "second delete finds nothing")
}
