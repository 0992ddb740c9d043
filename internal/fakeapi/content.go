package fakeapi

import (
	"errors"

	"github.com/dmitrijs2005/achievo/internal/client/models"
	"github.com/dmitrijs2005/achievo/internal/common"
)

var errForbidden = errors.New("not enough permissions")

// achievements

func applyAchievement(a *models.Achievement, in models.AchievementInput) {
	if in.Title != nil {
		a.Title = *in.Title
	}
	if in.Description != nil {
		a.Description = *in.Description
	}
	if in.CategoryID != nil {
		a.CategoryID = in.CategoryID
	}
	if in.DateAchieved != nil {
		d := *in.DateAchieved
		a.DateAchieved = &d
		a.AchievedDate = &d
	}
	if in.ImportanceLevel != nil {
		a.ImportanceLevel = *in.ImportanceLevel
	}
	if in.IsPublic != nil {
		a.IsPublic = *in.IsPublic
	}
}

func (s *memoryStore) createAchievement(userID int64, in models.AchievementInput) models.Achievement {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.stamp()
	return s.achievements.insert(func(id int64) models.Achievement {
		a := models.Achievement{ID: id, UserID: userID, ImportanceLevel: 3, CreatedAt: now, UpdatedAt: now}
		applyAchievement(&a, in)
		return a
	})
}

func (s *memoryStore) listAchievements(userID int64, categoryID int64, skip, limit int) []models.Achievement {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := s.achievements.list(func(a *models.Achievement) bool {
		if a.UserID != userID {
			return false
		}
		return categoryID == 0 || (a.CategoryID != nil && *a.CategoryID == categoryID)
	})
	return page(rows, skip, limit)
}

func (s *memoryStore) publicAchievements(skip, limit int) []models.Achievement {
	s.mu.Lock()
	defer s.mu.Unlock()

	return page(s.achievements.list(func(a *models.Achievement) bool { return a.IsPublic }), skip, limit)
}

// achievement returns the row when userID owns it or it is public.
func (s *memoryStore) achievement(userID, id int64) (models.Achievement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.achievements.rows[id]
	if !ok {
		return models.Achievement{}, common.ErrorNotFound
	}
	if a.UserID != userID && !a.IsPublic {
		return models.Achievement{}, errForbidden
	}
	return *a, nil
}

func (s *memoryStore) updateAchievement(userID, id int64, in models.AchievementInput) (models.Achievement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := owned(s.achievements, id, userID, func(a *models.Achievement) int64 { return a.UserID })
	if err != nil {
		return models.Achievement{}, err
	}
	applyAchievement(a, in)
	a.UpdatedAt = s.stamp()
	return *a, nil
}

func (s *memoryStore) deleteAchievement(userID, id int64) (models.Achievement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := owned(s.achievements, id, userID, func(a *models.Achievement) int64 { return a.UserID })
	if err != nil {
		return models.Achievement{}, err
	}
	delete(s.achievements.rows, id)
	return *a, nil
}

// categories are shared by every user.

func applyCategory(c *models.Category, in models.CategoryInput) {
	if in.Name != nil {
		c.Name = *in.Name
	}
	if in.Icon != nil {
		c.Icon = *in.Icon
	}
	if in.Color != nil {
		c.Color = *in.Color
	}
	if in.Description != nil {
		c.Description = *in.Description
	}
}

func (s *memoryStore) createCategory(in models.CategoryInput) models.Category {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.stamp()
	return s.categories.insert(func(id int64) models.Category {
		c := models.Category{ID: id, CreatedAt: now, UpdatedAt: now}
		applyCategory(&c, in)
		return c
	})
}

func (s *memoryStore) listCategories(skip, limit int) []models.Category {
	s.mu.Lock()
	defer s.mu.Unlock()

	return page(s.categories.list(nil), skip, limit)
}

func (s *memoryStore) category(id int64) (models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.categories.rows[id]
	if !ok {
		return models.Category{}, common.ErrorNotFound
	}
	return *c, nil
}

// skills

func applySkill(sk *models.Skill, in models.SkillInput) {
	if in.Name != nil {
		sk.Name = *in.Name
	}
	if in.ProficiencyLevel != nil {
		sk.ProficiencyLevel = *in.ProficiencyLevel
	}
	if in.Category != nil {
		sk.Category = *in.Category
	}
}

func (s *memoryStore) createSkill(userID int64, in models.SkillInput) models.Skill {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.stamp()
	return s.skills.insert(func(id int64) models.Skill {
		sk := models.Skill{ID: id, UserID: userID, ProficiencyLevel: 1, CreatedAt: now, UpdatedAt: now}
		applySkill(&sk, in)
		return sk
	})
}

func (s *memoryStore) listSkills(userID int64, skip, limit int) []models.Skill {
	s.mu.Lock()
	defer s.mu.Unlock()

	return page(s.skills.list(func(sk *models.Skill) bool { return sk.UserID == userID }), skip, limit)
}

func (s *memoryStore) updateSkill(userID, id int64, in models.SkillInput) (models.Skill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sk, err := owned(s.skills, id, userID, func(sk *models.Skill) int64 { return sk.UserID })
	if err != nil {
		return models.Skill{}, err
	}
	applySkill(sk, in)
	sk.UpdatedAt = s.stamp()
	return *sk, nil
}

func (s *memoryStore) deleteSkill(userID, id int64) (models.Skill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sk, err := owned(s.skills, id, userID, func(sk *models.Skill) int64 { return sk.UserID })
	if err != nil {
		return models.Skill{}, err
	}
	delete(s.skills.rows, id)
	return *sk, nil
}

// goals

func applyGoal(g *models.Goal, in models.GoalInput) {
	if in.Title != nil {
		g.Title = *in.Title
	}
	if in.Description != nil {
		g.Description = *in.Description
	}
	if in.TargetDate != nil {
		d := *in.TargetDate
		g.TargetDate = &d
	}
	if in.Status != nil {
		g.Status = *in.Status
	}
	if in.ProgressPercentage != nil {
		g.ProgressPercentage = *in.ProgressPercentage
	}
}

func (s *memoryStore) createGoal(userID int64, in models.GoalInput) models.Goal {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.stamp()
	return s.goals.insert(func(id int64) models.Goal {
		g := models.Goal{ID: id, UserID: userID, Status: models.GoalNotStarted, CreatedAt: now, UpdatedAt: now}
		applyGoal(&g, in)
		return g
	})
}

func (s *memoryStore) listGoals(userID int64, skip, limit int) []models.Goal {
	s.mu.Lock()
	defer s.mu.Unlock()

	return page(s.goals.list(func(g *models.Goal) bool { return g.UserID == userID }), skip, limit)
}

func (s *memoryStore) updateGoal(userID, id int64, in models.GoalInput) (models.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := owned(s.goals, id, userID, func(g *models.Goal) int64 { return g.UserID })
	if err != nil {
		return models.Goal{}, err
	}
	applyGoal(g, in)
	g.UpdatedAt = s.stamp()
	return *g, nil
}

func (s *memoryStore) deleteGoal(userID, id int64) (models.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	g, err := owned(s.goals, id, userID, func(g *models.Goal) int64 { return g.UserID })
	if err != nil {
		return models.Goal{}, err
	}
	delete(s.goals.rows, id)
	return *g, nil
}

// owned looks up id in t and checks that userID owns it. The caller holds
// the store lock.
func owned[T any](t *table[T], id, userID int64, owner func(*T) int64) (*T, error) {
	row, ok := t.rows[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	if owner(row) != userID {
		return nil, errForbidden
	}
	return row, nil
}
