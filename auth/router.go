package auth

import (
	"net/http"

	"galeria/models"

	"github.com/gin-gonic/gin"
)

// User is authenticated, approved and meets the minimum role tier
type HandlerFunc func(c *gin.Context, user *models.User)

// Router is a wrapper that adds the role gate + User pre-loading
type Router struct {
	Base *gin.Engine
}

func (cr *Router) baseExec(c *gin.Context, handler HandlerFunc, minRole models.Role) {
	user := LoadSession(c).User()
	if !user.Approved() || !user.Role.Meets(minRole) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "access denied"})
		return
	}
	handler(c, user)
}

func (cr *Router) GET(path string, handler HandlerFunc, minRole models.Role) {
	cr.Base.GET(path, func(c *gin.Context) {
		cr.baseExec(c, handler, minRole)
	})
}

func (cr *Router) POST(path string, handler HandlerFunc, minRole models.Role) {
	cr.Base.POST(path, func(c *gin.Context) {
		cr.baseExec(c, handler, minRole)
	})
}

func (cr *Router) PUT(path string, handler HandlerFunc, minRole models.Role) {
	cr.Base.PUT(path, func(c *gin.Context) {
		cr.baseExec(c, handler, minRole)
	})
}

func (cr *Router) DELETE(path string, handler HandlerFunc, minRole models.Role) {
	cr.Base.DELETE(path, func(c *gin.Context) {
		cr.baseExec(c, handler, minRole)
	})
}
