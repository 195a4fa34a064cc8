package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestCacheControl(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		maxAge int
		want   string
	}{
		{0, "no-cache"},
		{3600, "private, max-age=3600"},
	}
	for _, tc := range tests {
		router := gin.New()
		router.Use(CacheControl(tc.maxAge))
		router.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		if got := w.Header().Get("cache-control"); got != tc.want {
			t.Errorf("CacheControl(%d) header = %q, want %q", tc.maxAge, got, tc.want)
		}
	}
}

func TestLogErrorResponsesPassesBodyThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(LogErrorResponses)
	router.GET("/boom", func(c *gin.Context) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad"})
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	if body := w.Body.String(); body != `{"error":"bad"}` {
		t.Fatalf("body altered: %s", body)
	}
}
