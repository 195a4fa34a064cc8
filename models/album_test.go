package models

import (
	"testing"
	"time"

	"galeria/db"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedItem(t *testing.T, userID uint64, albumID *uint64) MediaItem {
	t.Helper()
	now := time.Now()
	item := MediaItem{
		UserID:    userID,
		AlbumID:   albumID,
		CreatedAt: now.Unix(),
		FiledAt:   now.UnixNano(),
		URL:       "/uploads/photos/seed.jpg",
		Type:      MediaTypeImage,
	}
	require.NoError(t, db.Instance.Create(&item).Error)
	return item
}

func TestAlbumCreateValidation(t *testing.T) {
	setupTestDB(t)
	creator := approvedUser(t, "creator", RoleMember)

	_, err := AlbumCreate("   ", "", RoleMember, false, creator)
	assert.True(t, IsValidation(err), "blank title: got %v", err)

	_, err = AlbumCreate("Trip", "", Role(42), false, creator)
	assert.True(t, IsValidation(err), "bogus permission: got %v", err)

	_, err = AlbumCreate("Trip", "", RoleMember, false, nil)
	assert.True(t, IsValidation(err), "missing creator: got %v", err)

	album, err := AlbumCreate("  Trip  ", "summer", RoleReader, false, creator)
	require.NoError(t, err)
	assert.Equal(t, "Trip", album.Title)
	assert.Equal(t, PlaceholderCover, album.CoverPhoto)
	assert.False(t, album.IsEventAlbum)
}

func TestAlbumDeleteOrphansMedia(t *testing.T) {
	setupTestDB(t)
	creator := approvedUser(t, "creator", RoleMember)
	album, err := AlbumCreate("Trip", "", RoleMember, false, creator)
	require.NoError(t, err)
	a := seedItem(t, creator.ID, &album.ID)
	b := seedItem(t, creator.ID, &album.ID)

	deleted, err := AlbumDelete(album.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	assert.Nil(t, AlbumByID(album.ID, creator))
	// Media survive in the pool, none are destroyed
	pool := AlbumlessMedia()
	require.Len(t, pool, 2)
	for _, item := range []MediaItem{a, b} {
		got := MediaByID(item.ID)
		require.NotNil(t, got)
		assert.Nil(t, got.AlbumID)
	}
}

func TestAlbumDeleteRefusedWhileEventLinked(t *testing.T) {
	setupTestDB(t)
	creator := approvedUser(t, "creator", RoleAdmin)
	album, err := AlbumCreate("Gala", "", RoleMember, false, creator)
	require.NoError(t, err)
	event, err := EventCreate("Gala", "Lisboa", time.Now(), &album.ID, false, creator)
	require.NoError(t, err)

	deleted, err := AlbumDelete(album.ID)
	assert.ErrorIs(t, err, ErrPermissionDenied)
	assert.False(t, deleted)
	assert.NotNil(t, AlbumByID(album.ID, creator))

	// Unlinking the event frees the album
	_, err = EventDelete(event.ID)
	require.NoError(t, err)
	assert.Nil(t, AlbumByID(album.ID, creator))
}

func TestAlbumDeleteMissing(t *testing.T) {
	setupTestDB(t)
	deleted, err := AlbumDelete(123)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestAlbumSetTags(t *testing.T) {
	setupTestDB(t)
	creator := approvedUser(t, "creator", RoleMember)
	friend := approvedUser(t, "friend", RoleReader)
	album, err := AlbumCreate("Trip", "", RoleReader, false, creator)
	require.NoError(t, err)

	require.NoError(t, AlbumSetTags(album.ID, []uint64{creator.ID, friend.ID}))
	got := AlbumByID(album.ID, nil)
	require.NotNil(t, got)
	assert.ElementsMatch(t, []uint64{creator.ID, friend.ID}, got.TaggedUsers)

	// Replacement, not accumulation
	require.NoError(t, AlbumSetTags(album.ID, []uint64{friend.ID}))
	got = AlbumByID(album.ID, nil)
	assert.Equal(t, []uint64{friend.ID}, got.TaggedUsers)
}

func TestAlbumsVisibleTo(t *testing.T) {
	setupTestDB(t)
	admin := approvedUser(t, "admin", RoleAdmin)
	member := approvedUser(t, "member", RoleMember)

	_, err := AlbumCreate("Public", "", RoleReader, false, admin)
	require.NoError(t, err)
	_, err = AlbumCreate("Members", "", RoleMember, false, admin)
	require.NoError(t, err)
	_, err = AlbumCreate("Staff", "", RoleAdmin, false, admin)
	require.NoError(t, err)

	titles := func(albums []Album) []string {
		out := make([]string, 0, len(albums))
		for _, a := range albums {
			out = append(out, a.Title)
		}
		return out
	}

	assert.ElementsMatch(t, []string{"Public"}, titles(AlbumsVisibleTo(nil)))
	assert.ElementsMatch(t, []string{"Public", "Members"}, titles(AlbumsVisibleTo(member)))
	assert.ElementsMatch(t, []string{"Public", "Members", "Staff"}, titles(AlbumsVisibleTo(admin)))
}
