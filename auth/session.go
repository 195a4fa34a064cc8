package auth

import (
	"galeria/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const userIdKey = "id"

type Session struct {
	sessions.Session
}

func LoadSession(c *gin.Context) *Session {
	return &Session{
		Session: sessions.Default(c),
	}
}

func (s *Session) LoginUser(user *models.User) {
	s.Set(userIdKey, user.ID)
	s.Save()
}

func (s *Session) LogoutUser() {
	s.Delete(userIdKey)
	s.Clear()
	s.Options(sessions.Options{Path: "/", MaxAge: -1})
	s.Save()
}

// User returns the logged in account, or nil for an anonymous visitor.
func (s *Session) User() *models.User {
	id := s.Get(userIdKey)
	if id == nil {
		return nil
	}
	uid, ok := id.(uint64)
	if !ok {
		return nil
	}
	return models.UserByID(uid)
}

// CurrentUser is for endpoints that serve anonymous visitors too - the
// visibility policy decides what they get to see.
func CurrentUser(c *gin.Context) *models.User {
	return LoadSession(c).User()
}
