package handlers

import (
	"net/http"

	"galeria/auth"
	"galeria/feed"

	"github.com/gin-gonic/gin"
)

// Feed assembles the home feed. Anonymous visitors get the public slice;
// filters can only narrow what the viewer could already see.
// Query params: tagged_users=1,2 album_ids=3,4 (comma-separated ids).
func Feed(c *gin.Context) {
	viewer := auth.CurrentUser(c)
	filter := feed.Filter{
		TaggedUserIDs: parseIDList(c.Query("tagged_users")),
		AlbumIDs:      parseIDList(c.Query("album_ids")),
	}
	c.JSON(http.StatusOK, feed.Build(viewer, filter))
}
