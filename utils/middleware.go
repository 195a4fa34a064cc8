package utils

import (
	"log"
	"strconv"

	"github.com/gin-gonic/gin"
)

// CacheControl sets the cache-control header for every response passing
// through it: no-cache when maxAge is zero, private with the given max-age
// (seconds) otherwise. Mounted once as the default and again on route
// groups that want a longer lifetime, like the stored media tree.
func CacheControl(maxAge int) gin.HandlerFunc {
	value := "no-cache"
	if maxAge > 0 {
		value = "private, max-age=" + strconv.Itoa(maxAge)
	}
	return func(c *gin.Context) {
		c.Header("cache-control", value)
		c.Next()
	}
}

type errorBodyWriter struct {
	gin.ResponseWriter
}

func (w errorBodyWriter) Write(b []byte) (int, error) {
	if status := w.Status(); status >= 400 {
		log.Printf("response %d: %s", status, b)
	}
	return w.ResponseWriter.Write(b)
}

// LogErrorResponses logs the body of every error response. Debug aid only;
// must sit before gzip so it sees the plain body.
func LogErrorResponses(c *gin.Context) {
	c.Writer = &errorBodyWriter{ResponseWriter: c.Writer}
	c.Next()
}
