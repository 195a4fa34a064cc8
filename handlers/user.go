package handlers

import (
	"net/http"

	"galeria/auth"
	"galeria/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

type UserLoginRequest struct {
	Name     string `form:"name" binding:"required"`
	Password string `form:"password"`
}

type UserRegisterRequest struct {
	Name     string `form:"name" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type UserCreateRequest struct {
	Name     string `form:"name" binding:"required"`
	Email    string `form:"email"`
	Password string `form:"password"`
	Role     string `form:"role" binding:"required"`
}

func UserLogin(c *gin.Context) {
	r := UserLoginRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, ok := models.UserLogin(r.Name, r.Password)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials or account not approved"})
		return
	}
	auth.LoadSession(c).LoginUser(user)
	c.JSON(http.StatusOK, gin.H{"error": "", "user": user})
}

func UserLogout(c *gin.Context) {
	auth.LoadSession(c).LogoutUser()
	c.JSON(http.StatusOK, gin.H{"error": ""})
}

func UserRegister(c *gin.Context) {
	r := UserRegisterRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := models.UserRegister(r.Name, r.Password)
	if err != nil {
		abortWithError(c, err)
		return
	}
	// Account stays PENDING until an admin approves it
	c.JSON(http.StatusOK, gin.H{"error": "", "user": user})
}

func UserStatus(c *gin.Context) {
	user := auth.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not logged in"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"error": "", "user": user})
}

func UserList(c *gin.Context, user *models.User) {
	c.JSON(http.StatusOK, models.UsersAll())
}

func UserGet(c *gin.Context, user *models.User) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad id"})
		return
	}
	target := models.UserByID(id)
	if target == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, target)
}

func UserBirthdays(c *gin.Context, user *models.User) {
	c.JSON(http.StatusOK, models.UsersWithBirthdays())
}

func UserCreate(c *gin.Context, user *models.User) {
	r := UserCreateRequest{}
	if err := c.ShouldBindWith(&r, binding.Form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	role, ok := models.RoleFromString(r.Role)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown role"})
		return
	}
	created, err := models.UserCreate(r.Name, r.Email, r.Password, role)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"error": "", "user": created})
}

func UserSave(c *gin.Context, user *models.User) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad id"})
		return
	}
	patch := models.UserPatch{}
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	saved, err := models.UserSave(id, patch)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"error": "", "user": saved})
}

func UserDelete(c *gin.Context, user *models.User) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad id"})
		return
	}
	deleted, err := models.UserDelete(id)
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
