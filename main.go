package main

import (
	"log"
	"strings"
	"time"

	"galeria/auth"
	"galeria/config"
	"galeria/db"
	"galeria/handlers"
	"galeria/models"
	"galeria/storage"
	"galeria/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	gormsessions "github.com/gin-contrib/sessions/gorm"
	"github.com/gin-gonic/autotls"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

const (
	sessionCookieName     = "token"
	sessionExpirationTime = 365 * 86400 // 1 year
	uploadsCacheTime      = 30 * 86400
)

func main() {
	if err := godotenv.Load(); err == nil {
		config.Load()
	}
	db.Init()
	models.Init()
	storage.Init()

	if !config.DEBUG_MODE {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	_ = router.SetTrustedProxies([]string{})
	if config.DEBUG_MODE {
		router.Use(utils.LogErrorResponses)
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "PUT", "POST", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           30 * 24 * time.Hour,
	}))

	cookieStore := gormsessions.NewStore(db.Instance, true, []byte(config.SESSION_KEY))
	cookieStore.Options(sessions.Options{MaxAge: sessionExpirationTime})
	router.Use(sessions.Sessions(sessionCookieName, cookieStore))
	if !config.DEBUG_MODE {
		router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/uploads"})))
	}
	router.Use(utils.CacheControl(0)) // no-cache by default, groups below override it

	// Stored media (disk backend; the S3 backend hands out absolute URLs)
	if config.S3_BUCKET == "" {
		uploads := router.Group("/uploads", utils.CacheControl(uploadsCacheTime))
		uploads.Static("/", config.DATA_DIR)
	}

	// Custom Auth Router
	authRouter := &auth.Router{Base: router}
	// Session handlers
	router.POST("/api/login", handlers.UserLogin)
	router.POST("/api/register", handlers.UserRegister)
	router.POST("/api/logout", handlers.UserLogout)
	router.GET("/api/me", handlers.UserStatus)
	// User handlers
	authRouter.GET("/api/user/list", handlers.UserList, models.RoleReader)
	authRouter.GET("/api/user/birthdays", handlers.UserBirthdays, models.RoleReader)
	authRouter.GET("/api/user/:id", handlers.UserGet, models.RoleReader)
	authRouter.POST("/api/user/create", handlers.UserCreate, models.RoleAdmin)
	authRouter.POST("/api/user/:id/save", handlers.UserSave, models.RoleAdmin)
	authRouter.DELETE("/api/user/:id", handlers.UserDelete, models.RoleAdmin)
	// Feed + albums; anonymous visitors allowed, the policy filters
	router.GET("/api/feed", handlers.Feed)
	router.GET("/api/album/list", handlers.AlbumList)
	router.GET("/api/album/:id", handlers.AlbumGet)
	authRouter.POST("/api/album/create", handlers.AlbumCreate, models.RoleMember)
	authRouter.POST("/api/album/:id/tags", handlers.AlbumTag, models.RoleMember)
	authRouter.DELETE("/api/album/:id", handlers.AlbumDelete, models.RoleAdmin)
	// Media handlers
	authRouter.POST("/api/upload/media", handlers.MediaAdd, models.RoleMember)
	authRouter.POST("/api/media/:id/save", handlers.MediaSave, models.RoleMember)
	authRouter.DELETE("/api/media/:id", handlers.MediaDelete, models.RoleMember)
	// Story handlers
	authRouter.GET("/api/story/list", handlers.StoryList, models.RoleReader)
	authRouter.POST("/api/upload/story", handlers.StoryAdd, models.RoleMember)
	// Event handlers
	authRouter.GET("/api/event/list", handlers.EventList, models.RoleReader)
	authRouter.POST("/api/event/create", handlers.EventCreate, models.RoleAdmin)
	authRouter.POST("/api/event/:id/save", handlers.EventSave, models.RoleAdmin)
	authRouter.DELETE("/api/event/:id", handlers.EventDelete, models.RoleAdmin)
	// Music handlers
	authRouter.GET("/api/music/list", handlers.MusicList, models.RoleReader)
	authRouter.POST("/api/upload/music", handlers.MusicAdd, models.RoleMember)
	authRouter.DELETE("/api/music/:id", handlers.MusicDelete, models.RoleAdmin)
	// Search + profiles
	router.GET("/api/search", handlers.Search)
	router.GET("/api/profile/:id/content", handlers.ProfileContent)
	// Admin content management
	authRouter.GET("/api/admin/albums", handlers.AlbumsAdmin, models.RoleAdmin)
	authRouter.GET("/api/admin/albumless", handlers.AlbumlessAdmin, models.RoleAdmin)
	authRouter.GET("/api/media/list", handlers.SidecarList, models.RoleAdmin)

	var err error
	if config.TLS_DOMAINS != "" {
		err = autotls.Run(router, strings.Split(config.TLS_DOMAINS, ",")...)
	} else {
		err = router.Run(config.BIND_ADDRESS)
	}
	log.Fatalf("Server stopped: %v", err)
}
