package handlers

import (
	"net/http"
	"time"

	"galeria/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type EventCreateRequest struct {
	Title           string `form:"title" binding:"required"`
	Location        string `form:"location" binding:"required"`
	Date            string `form:"date" binding:"required"` // RFC 3339
	AlbumID         string `form:"album_id"`
	AutoCreateAlbum bool   `form:"create_album_automatically"`
}

func EventList(c *gin.Context, user *models.User) {
	c.JSON(http.StatusOK, models.EventsAll())
}

func EventCreate(c *gin.Context, user *models.User) {
	r := EventCreateRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	date, err := time.Parse(time.RFC3339, r.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad date"})
		return
	}
	var albumID *uint64
	if id, ok := parseID(r.AlbumID); ok {
		albumID = &id
	}
	event, err := models.EventCreate(r.Title, r.Location, date, albumID, r.AutoCreateAlbum, user)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func EventSave(c *gin.Context, user *models.User) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad id"})
		return
	}
	patch := models.EventPatch{}
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	event, err := models.EventSave(id, patch)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, event)
}

func EventDelete(c *gin.Context, user *models.User) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad id"})
		return
	}
	deleted, err := models.EventDelete(id)
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
