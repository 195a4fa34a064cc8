package handlers

import (
	"net/http"

	"galeria/models"

	"github.com/gin-gonic/gin"
)

func MusicList(c *gin.Context, user *models.User) {
	c.JSON(http.StatusOK, models.MusicAll())
}

func MusicAdd(c *gin.Context, user *models.User) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no file"})
		return
	}
	f, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer f.Close()
	track, degraded, err := models.MusicAdd(models.UploadFile{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        f,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"error": "", "track": track, "degraded": degraded})
}

func MusicDelete(c *gin.Context, user *models.User) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad id"})
		return
	}
	if !models.MusicDelete(id) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"error": ""})
}
