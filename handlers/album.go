package handlers

import (
	"net/http"

	"galeria/auth"
	"galeria/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type AlbumCreateRequest struct {
	Title        string `form:"title" binding:"required"`
	Description  string `form:"description"`
	Permission   string `form:"permission" binding:"required"`
	IsEventAlbum bool   `form:"is_event_album"`
}

type AlbumTagRequest struct {
	TaggedUsers string `form:"tagged_users"` // comma-separated user ids
}

// AlbumWithMedia is the by-id response shape.
type AlbumWithMedia struct {
	models.Album
	Photos []models.MediaItem `json:"photos"`
}

// AlbumList serves anonymous visitors too - the policy decides what shows.
func AlbumList(c *gin.Context) {
	viewer := auth.CurrentUser(c)
	c.JSON(http.StatusOK, models.AlbumsVisibleTo(viewer))
}

func AlbumGet(c *gin.Context) {
	viewer := auth.CurrentUser(c)
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad id"})
		return
	}
	album := models.AlbumByID(id, viewer)
	if album == nil {
		// Invisible and nonexistent look identical on purpose
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, AlbumWithMedia{
		Album:  *album,
		Photos: models.AlbumMedia(album.ID),
	})
}

func AlbumCreate(c *gin.Context, user *models.User) {
	r := AlbumCreateRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	permission, ok := models.RoleFromString(r.Permission)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown permission"})
		return
	}
	album, err := models.AlbumCreate(r.Title, r.Description, permission, r.IsEventAlbum, user)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, album)
}

func AlbumDelete(c *gin.Context, user *models.User) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad id"})
		return
	}
	deleted, err := models.AlbumDelete(id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"error": ""})
}

// AlbumTag replaces the album's tagged-user set. Creator or admin only.
func AlbumTag(c *gin.Context, user *models.User) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad id"})
		return
	}
	album := models.AlbumByID(id, user)
	if album == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if album.UserID != user.ID && !user.Role.Meets(models.RoleAdmin) {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}
	r := AlbumTagRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := models.AlbumSetTags(id, parseIDList(r.TaggedUsers)); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"error": ""})
}

// AlbumsAdmin is the unfiltered listing for the admin panel.
func AlbumsAdmin(c *gin.Context, user *models.User) {
	albums := models.AlbumsAll()
	result := make([]AlbumWithMedia, 0, len(albums))
	for i := range albums {
		result = append(result, AlbumWithMedia{
			Album:  albums[i],
			Photos: models.AlbumMedia(albums[i].ID),
		})
	}
	c.JSON(http.StatusOK, result)
}

// AlbumlessAdmin lists the unfiled pool for the admin panel.
func AlbumlessAdmin(c *gin.Context, user *models.User) {
	c.JSON(http.StatusOK, models.AlbumlessMedia())
}
