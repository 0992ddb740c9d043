package fakeapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/achievo/internal/client/apipaths"
	"github.com/dmitrijs2005/achievo/internal/client/models"
	"github.com/dmitrijs2005/achievo/internal/common"
)

const currentUserKey = "current_user"

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.requestLogger())

	r.GET(apipaths.Root, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to Achievo API", "docs": "/docs"})
	})
	r.GET(apipaths.Health, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/login", s.handleLogin)
		authGroup.POST("/register", s.handleRegister)
		authGroup.POST("/register/request-otp", s.handleRequestRegistrationOTP)
		authGroup.POST("/forgot-password", s.handleForgotPassword)
		authGroup.POST("/verify-otp", s.handleVerifyOTP)
		authGroup.POST("/reset-password", s.handleResetPassword)

		authGroup.GET("/me", s.authRequired(), s.handleMe)
		authGroup.PUT("/me", s.authRequired(), s.handleUpdateMe)
		authGroup.POST("/change-password", s.authRequired(), s.handleChangePassword)
	}

	r.GET(apipaths.PublicAchievements, s.handlePublicAchievements)

	achievements := r.Group("/api/achievements", s.authRequired())
	{
		achievements.GET("/", s.handleListAchievements)
		achievements.POST("/", s.handleCreateAchievement)
		achievements.GET("/:id", s.handleGetAchievement)
		achievements.PUT("/:id", s.handleUpdateAchievement)
		achievements.DELETE("/:id", s.handleDeleteAchievement)
	}

	categories := r.Group("/api/categories")
	{
		categories.GET("/", s.handleListCategories)
		categories.POST("/", s.handleCreateCategory)
		categories.GET("/:id", s.handleGetCategory)
	}

	skills := r.Group("/api/skills", s.authRequired())
	{
		skills.GET("/", s.handleListSkills)
		skills.POST("/", s.handleCreateSkill)
		skills.PUT("/:id", s.handleUpdateSkill)
		skills.DELETE("/:id", s.handleDeleteSkill)
	}

	goals := r.Group("/api/goals", s.authRequired())
	{
		goals.GET("/", s.handleListGoals)
		goals.POST("/", s.handleCreateGoal)
		goals.PUT("/:id", s.handleUpdateGoal)
		goals.DELETE("/:id", s.handleDeleteGoal)
	}

	admin := r.Group("/api/admin", s.authRequired(), adminRequired())
	{
		admin.GET("/users", s.handleAdminUsers)
		admin.GET("/users/:id", s.handleAdminUser)
		admin.PUT("/users/:id", s.handleAdminUpdateUser)
		admin.DELETE("/users/:id", s.handleAdminDeleteUser)
		admin.GET("/stats/overview", s.handleAdminStats)
		admin.GET("/stats/growth", s.handleAdminGrowth)
		admin.GET("/achievements", s.handleAdminAchievements)
	}

	r.NoRoute(func(c *gin.Context) {
		abortDetail(c, http.StatusNotFound, "Not Found")
	})

	return r
}

// requestLogger logs each request after it is served, reusing the
// client's request id when one was sent.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		reqID := c.GetHeader(common.RequestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Header(common.RequestIDHeader, reqID)

		c.Next()

		s.logger.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"request_id", reqID,
			"remote_addr", c.ClientIP(),
		)
	}
}

// authRequired resolves the bearer token to an active user.
func (s *Server) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(common.AuthorizationHeader)
		if header == "" {
			unauthorized(c, "Not authenticated")
			return
		}

		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, common.BearerScheme) || token == "" {
			unauthorized(c, "Could not validate credentials")
			return
		}

		id, err := UserIDFromToken(token, s.secret)
		if err != nil {
			unauthorized(c, "Could not validate credentials")
			return
		}

		u, ok := s.store.userByID(id)
		if !ok {
			abortDetail(c, http.StatusNotFound, "User not found")
			return
		}
		if !u.IsActive {
			abortDetail(c, http.StatusBadRequest, "Inactive user")
			return
		}

		c.Set(currentUserKey, u)
		c.Next()
	}
}

func adminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !currentUser(c).IsSuperuser {
			abortDetail(c, http.StatusForbidden, "Admin access required")
			return
		}
		c.Next()
	}
}

func currentUser(c *gin.Context) models.User {
	u, _ := c.MustGet(currentUserKey).(models.User)
	return u
}
