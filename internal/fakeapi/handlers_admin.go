package fakeapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/achievo/internal/client/models"
)

const maxGrowthDays = 365

func (s *Server) handleAdminUsers(c *gin.Context) {
	skip, limit, ok := paging(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.store.adminUsers(skip, limit, c.Query("search")))
}

func (s *Server) handleAdminUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	u, found := s.store.adminUser(id)
	if !found {
		abortDetail(c, http.StatusNotFound, "User not found")
		return
	}
	c.JSON(http.StatusOK, u)
}

func (s *Server) handleAdminUpdateUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in models.UserAdminUpdate
	if !bindJSON(c, &in) {
		return
	}
	u, found := s.store.adminUpdateUser(id, in)
	if !found {
		abortDetail(c, http.StatusNotFound, "User not found")
		return
	}
	c.JSON(http.StatusOK, u)
}

func (s *Server) handleAdminDeleteUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if _, found := s.store.userByID(id); !found {
		abortDetail(c, http.StatusNotFound, "User not found")
		return
	}
	if id == currentUser(c).ID {
		abortDetail(c, http.StatusBadRequest, "Cannot delete your own admin account")
		return
	}
	s.store.deleteUser(id)
	c.JSON(http.StatusOK, models.Message{Message: "User deleted successfully"})
}

func (s *Server) handleAdminStats(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.stats())
}

func (s *Server) handleAdminGrowth(c *gin.Context) {
	days, ok := queryInt(c, "days", 30)
	if !ok {
		return
	}
	if days > maxGrowthDays {
		abortValidation(c, "less_than_equal", "Input should be less than or equal to 365", "query", "days")
		return
	}
	c.JSON(http.StatusOK, s.store.growth(max(days, 0)))
}

func (s *Server) handleAdminAchievements(c *gin.Context) {
	skip, limit, ok := paging(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.store.adminAchievements(skip, limit))
}
