package fakeapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/achievo/internal/client/models"
)

// validInput answers 422 when in fails its own field checks.
func validInput(c *gin.Context, in interface{ Validate() error }) bool {
	if err := in.Validate(); err != nil {
		var fe *models.FieldError
		if errors.As(err, &fe) {
			abortValidation(c, "value_error", "Value error, "+fe.Error(), "body", fe.Field)
		} else {
			valueError(c, err, "body")
		}
		return false
	}
	return true
}

// achievements

func (s *Server) handleListAchievements(c *gin.Context) {
	skip, limit, ok := paging(c)
	if !ok {
		return
	}
	categoryID, ok := queryInt(c, "category_id", 0)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.store.listAchievements(currentUser(c).ID, int64(categoryID), skip, limit))
}

func (s *Server) handlePublicAchievements(c *gin.Context) {
	skip, limit, ok := paging(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.store.publicAchievements(skip, limit))
}

func (s *Server) handleCreateAchievement(c *gin.Context) {
	var in models.AchievementInput
	if !bindJSON(c, &in) || !validInput(c, in) {
		return
	}
	if in.Title == nil {
		abortValidation(c, "missing", "Field required", "body", "title")
		return
	}
	c.JSON(http.StatusCreated, s.store.createAchievement(currentUser(c).ID, in))
}

func (s *Server) handleGetAchievement(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	a, err := s.store.achievement(currentUser(c).ID, id)
	if err != nil {
		abortStoreError(c, err, "Achievement")
		return
	}
	c.JSON(http.StatusOK, a)
}

func (s *Server) handleUpdateAchievement(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in models.AchievementInput
	if !bindJSON(c, &in) || !validInput(c, in) {
		return
	}
	a, err := s.store.updateAchievement(currentUser(c).ID, id, in)
	if err != nil {
		abortStoreError(c, err, "Achievement")
		return
	}
	c.JSON(http.StatusOK, a)
}

func (s *Server) handleDeleteAchievement(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	a, err := s.store.deleteAchievement(currentUser(c).ID, id)
	if err != nil {
		abortStoreError(c, err, "Achievement")
		return
	}
	c.JSON(http.StatusOK, a)
}

// categories

func (s *Server) handleListCategories(c *gin.Context) {
	skip, limit, ok := paging(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.store.listCategories(skip, limit))
}

func (s *Server) handleCreateCategory(c *gin.Context) {
	var in models.CategoryInput
	if !bindJSON(c, &in) || !validInput(c, in) {
		return
	}
	if in.Name == nil {
		abortValidation(c, "missing", "Field required", "body", "name")
		return
	}
	c.JSON(http.StatusCreated, s.store.createCategory(in))
}

func (s *Server) handleGetCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	cat, err := s.store.category(id)
	if err != nil {
		abortStoreError(c, err, "Category")
		return
	}
	c.JSON(http.StatusOK, cat)
}

// skills

func (s *Server) handleListSkills(c *gin.Context) {
	skip, limit, ok := paging(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.store.listSkills(currentUser(c).ID, skip, limit))
}

func (s *Server) handleCreateSkill(c *gin.Context) {
	var in models.SkillInput
	if !bindJSON(c, &in) || !validInput(c, in) {
		return
	}
	if in.Name == nil {
		abortValidation(c, "missing", "Field required", "body", "name")
		return
	}
	c.JSON(http.StatusCreated, s.store.createSkill(currentUser(c).ID, in))
}

func (s *Server) handleUpdateSkill(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in models.SkillInput
	if !bindJSON(c, &in) || !validInput(c, in) {
		return
	}
	sk, err := s.store.updateSkill(currentUser(c).ID, id, in)
	if err != nil {
		abortStoreError(c, err, "Skill")
		return
	}
	c.JSON(http.StatusOK, sk)
}

func (s *Server) handleDeleteSkill(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	sk, err := s.store.deleteSkill(currentUser(c).ID, id)
	if err != nil {
		abortStoreError(c, err, "Skill")
		return
	}
	c.JSON(http.StatusOK, sk)
}

// goals

func (s *Server) handleListGoals(c *gin.Context) {
	skip, limit, ok := paging(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.store.listGoals(currentUser(c).ID, skip, limit))
}

func (s *Server) handleCreateGoal(c *gin.Context) {
	var in models.GoalInput
	if !bindJSON(c, &in) || !validInput(c, in) {
		return
	}
	if in.Title == nil {
		abortValidation(c, "missing", "Field required", "body", "title")
		return
	}
	c.JSON(http.StatusCreated, s.store.createGoal(currentUser(c).ID, in))
}

func (s *Server) handleUpdateGoal(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in models.GoalInput
	if !bindJSON(c, &in) || !validInput(c, in) {
		return
	}
	g, err := s.store.updateGoal(currentUser(c).ID, id, in)
	if err != nil {
		abortStoreError(c, err, "Goal")
		return
	}
	c.JSON(http.StatusOK, g)
}

func (s *Server) handleDeleteGoal(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	g, err := s.store.deleteGoal(currentUser(c).ID, id)
	if err != nil {
		abortStoreError(c, err, "Goal")
		return
	}
	c.JSON(http.StatusOK, g)
}
