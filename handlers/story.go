package handlers

import (
	"net/http"

	"galeria/models"

	"github.com/gin-gonic/gin"
)

func StoryList(c *gin.Context, user *models.User) {
	c.JSON(http.StatusOK, models.ActiveStories())
}

func StoryAdd(c *gin.Context, user *models.User) {
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
	story, degraded, err := models.StoryAdd(user, models.UploadFile{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        f,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"error": "", "story": story, "degraded": degraded})
}
