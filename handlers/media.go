package handlers

import (
	"net/http"

	"galeria/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// MediaSaveRequest is form-bound so that an absent album_id means "leave
// the container alone" while an empty one means "move to the pool".
type MediaSaveRequest struct {
	Description *string `form:"description"`
	Filter      *string `form:"filter"`
	AlbumID     *string `form:"album_id"`
	TaggedUsers *string `form:"tagged_users"` // comma-separated user ids
}

type MediaDeleteRequest struct {
	AlbumID *uint64 `form:"album_id"` // hint only, not trusted
}

func MediaAdd(c *gin.Context, user *models.User) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var albumID *uint64
	if v := c.PostForm("album_id"); v != "" {
		if id, ok := parseID(v); ok {
			albumID = &id
		}
	}
	files := []models.UploadFile{}
	for _, header := range form.File["files"] {
		f, err := header.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		defer f.Close()
		files = append(files, models.UploadFile{
			Name:        header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Data:        f,
		})
	}
	items, degraded, err := models.MediaAdd(files, user, albumID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"error": "", "items": items, "degraded": degraded})
}

func MediaSave(c *gin.Context, user *models.User) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad id"})
		return
	}
	item := models.MediaByID(id)
	if item == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if item.UserID != user.ID && !user.Role.Meets(models.RoleAdmin) {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}
	r := MediaSaveRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	patch := models.MediaPatch{
		Description: r.Description,
		Filter:      r.Filter,
	}
	if r.AlbumID != nil {
		patch.MoveAlbum = true
		if target, ok := parseID(*r.AlbumID); ok {
			patch.AlbumID = &target
		}
	}
	if r.TaggedUsers != nil {
		tagged := parseIDList(*r.TaggedUsers)
		patch.TaggedUsers = &tagged
	}
	saved, err := models.MediaUpdate(id, patch)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

func MediaDelete(c *gin.Context, user *models.User) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad id"})
		return
	}
	item := models.MediaByID(id)
	if item == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	if item.UserID != user.ID && !user.Role.Meets(models.RoleAdmin) {
		c.JSON(http.StatusForbidden, gin.H{"error": "permission denied"})
		return
	}
	r := MediaDeleteRequest{}
	_ = c.ShouldBindQuery(&r)
	if !models.MediaDelete(id, r.AlbumID) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"error": ""})
}
