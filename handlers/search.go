package handlers

import (
	"net/http"

	"galeria/auth"
	"galeria/models"
	"galeria/storage"

	"github.com/gin-gonic/gin"
)

// Search is open to anonymous visitors; results are visibility-filtered.
func Search(c *gin.Context) {
	viewer := auth.CurrentUser(c)
	c.JSON(http.StatusOK, models.SearchContent(c.Query("q"), viewer))
}

// ProfileContent returns the visible albums and media a user appears in.
func ProfileContent(c *gin.Context) {
	viewer := auth.CurrentUser(c)
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad id"})
		return
	}
	albums, media := models.TaggedContent(id, viewer)
	c.JSON(http.StatusOK, gin.H{
		"tagged_in_albums": albums,
		"tagged_in_media":  media,
		"created_albums":   models.AlbumsByCreator(id, viewer),
	})
}

// SidecarList exposes the collaborator's upload log. Informational only -
// the media tables are the authority.
func SidecarList(c *gin.Context, user *models.User) {
	c.JSON(http.StatusOK, gin.H{"media": storage.ListSidecar()})
}
