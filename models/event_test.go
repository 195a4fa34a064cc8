package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventCreateValidation(t *testing.T) {
	setupTestDB(t)
	admin := approvedUser(t, "admin", RoleAdmin)
	when := time.Date(2026, 9, 12, 18, 0, 0, 0, time.UTC)

	_, err := EventCreate("", "Porto", when, nil, true, admin)
	assert.True(t, IsValidation(err))

	_, err = EventCreate("Festa", "", when, nil, true, admin)
	assert.True(t, IsValidation(err))

	_, err = EventCreate("Festa", "Porto", time.Time{}, nil, true, admin)
	assert.True(t, IsValidation(err))

	// Neither an album reference nor auto-creation requested
	_, err = EventCreate("Festa", "Porto", when, nil, false, admin)
	assert.True(t, IsValidation(err))

	missing := uint64(777)
	_, err = EventCreate("Festa", "Porto", when, &missing, false, admin)
	assert.True(t, IsValidation(err))
}

func TestEventCreateAutoAlbum(t *testing.T) {
	setupTestDB(t)
	admin := approvedUser(t, "admin", RoleAdmin)
	when := time.Date(2026, 9, 12, 18, 0, 0, 0, time.UTC)

	event, err := EventCreate("Festa de Verão", "Porto", when, nil, true, admin)
	require.NoError(t, err)
	require.NotZero(t, event.AlbumID)

	album := AlbumByID(event.AlbumID, admin)
	require.NotNil(t, album)
	assert.Equal(t, "Festa de Verão", album.Title)
	assert.True(t, album.IsEventAlbum)
	assert.Equal(t, RoleMember, album.Permission)
	assert.Equal(t, admin.ID, album.UserID)
}

func TestEventDeleteTakesAlbumOrphansMedia(t *testing.T) {
	setupTestDB(t)
	admin := approvedUser(t, "admin", RoleAdmin)
	when := time.Date(2026, 9, 12, 18, 0, 0, 0, time.UTC)

	event, err := EventCreate("Festa", "Porto", when, nil, true, admin)
	require.NoError(t, err)
	item := seedItem(t, admin.ID, &event.AlbumID)

	deleted, err := EventDelete(event.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	assert.Nil(t, EventByID(event.ID))
	assert.Nil(t, AlbumByID(event.AlbumID, admin))
	got := MediaByID(item.ID)
	require.NotNil(t, got, "media must survive the cascade")
	assert.Nil(t, got.AlbumID)

	deleted, err = EventDelete(event.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestEventAlbumLinkageIsExclusive(t *testing.T) {
	setupTestDB(t)
	admin := approvedUser(t, "admin", RoleAdmin)
	when := time.Date(2026, 9, 12, 18, 0, 0, 0, time.UTC)
	shared, err := AlbumCreate("Shared", "", RoleMember, false, admin)
	require.NoError(t, err)

	first, err := EventCreate("One", "Porto", when, &shared.ID, false, admin)
	require.NoError(t, err)

	// A second event may not claim the same album
	_, err = EventCreate("Two", "Braga", when, &shared.ID, false, admin)
	assert.True(t, IsValidation(err), "second link to the same album: got %v", err)

	// Nor may an existing event re-link onto it
	other, err := EventCreate("Other", "Braga", when, nil, true, admin)
	require.NoError(t, err)
	_, err = EventSave(other.ID, EventPatch{AlbumID: &shared.ID})
	assert.True(t, IsValidation(err), "re-link onto an owned album: got %v", err)

	// Re-saving an event with its own album is not a conflict
	_, err = EventSave(first.ID, EventPatch{AlbumID: &shared.ID})
	require.NoError(t, err)

	// So the delete cascade can never orphan another event
	deleted, err := EventDelete(first.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.Nil(t, AlbumByID(shared.ID, admin))
	survivor := EventByID(other.ID)
	require.NotNil(t, survivor)
	assert.NotNil(t, AlbumByID(survivor.AlbumID, admin),
		"surviving event must still reference an existing album")
}

func TestEventSave(t *testing.T) {
	setupTestDB(t)
	admin := approvedUser(t, "admin", RoleAdmin)
	when := time.Date(2026, 9, 12, 18, 0, 0, 0, time.UTC)
	event, err := EventCreate("Festa", "Porto", when, nil, true, admin)
	require.NoError(t, err)
	other, err := AlbumCreate("Outro", "", RoleMember, false, admin)
	require.NoError(t, err)

	later := when.Add(48 * time.Hour)
	updated, err := EventSave(event.ID, EventPatch{
		Title:   ptr("Festa Grande"),
		Date:    &later,
		AlbumID: &other.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Festa Grande", updated.Title)
	assert.True(t, later.Equal(updated.Date))
	assert.Equal(t, other.ID, updated.AlbumID)

	missing := uint64(777)
	_, err = EventSave(event.ID, EventPatch{AlbumID: &missing})
	assert.True(t, IsValidation(err), "re-link to missing album: got %v", err)

	_, err = EventSave(999, EventPatch{Title: ptr("x")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEventsAllOrder(t *testing.T) {
	setupTestDB(t)
	admin := approvedUser(t, "admin", RoleAdmin)
	base := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	_, err := EventCreate("Primeiro", "Porto", base, nil, true, admin)
	require.NoError(t, err)
	_, err = EventCreate("Segundo", "Braga", base.AddDate(0, 0, 5), nil, true, admin)
	require.NoError(t, err)

	events := EventsAll()
	require.Len(t, events, 2)
	assert.Equal(t, "Segundo", events[0].Title)
	assert.Equal(t, "Primeiro", events[1].Title)
}
