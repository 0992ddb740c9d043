package services

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/achievo/internal/client/analytics"
	"github.com/dmitrijs2005/achievo/internal/client/client"
	"github.com/dmitrijs2005/achievo/internal/client/models"
)

// fetchLimit is large enough to read a whole personal collection in one
// page.
const fetchLimit = 1000

const recentCount = 5

// Lister is satisfied by the gateway's resource collections.
type Lister[T any] interface {
	List(ctx context.Context, opts client.ListOptions) ([]T, error)
}

// Dashboard is what the start screen of a signed-in user shows.
type Dashboard struct {
	Summary     analytics.Summary
	Recent      []models.Achievement
	SkillCount  int
	ActiveGoals int
}

// ContentService builds the read-only views over a user's content.
type ContentService struct {
	achievements Lister[models.Achievement]
	skills       Lister[models.Skill]
	goals        Lister[models.Goal]
	now          func() time.Time
}

func NewContentService(achievements Lister[models.Achievement], skills Lister[models.Skill], goals Lister[models.Goal]) *ContentService {
	return &ContentService{achievements: achievements, skills: skills, goals: goals, now: time.Now}
}

func (s *ContentService) allAchievements(ctx context.Context) ([]models.Achievement, error) {
	return s.achievements.List(ctx, client.ListOptions{Limit: fetchLimit})
}

// Dashboard loads achievements, skills and goals concurrently. The first
// failure cancels the other requests.
func (s *ContentService) Dashboard(ctx context.Context) (*Dashboard, error) {
	var (
		achievements []models.Achievement
		skills       []models.Skill
		goals        []models.Goal
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		achievements, err = s.allAchievements(gctx)
		return err
	})
	g.Go(func() (err error) {
		skills, err = s.skills.List(gctx, client.ListOptions{Limit: fetchLimit})
		return err
	})
	g.Go(func() (err error) {
		goals, err = s.goals.List(gctx, client.ListOptions{Limit: fetchLimit})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	d := &Dashboard{
		Summary:    analytics.Summarize(achievements, s.now()),
		SkillCount: len(skills),
	}
	for _, goal := range goals {
		if goal.Status == models.GoalNotStarted || goal.Status == models.GoalInProgress {
			d.ActiveGoals++
		}
	}
	for _, group := range analytics.Timeline(achievements, 0) {
		for _, a := range group.Items {
			if len(d.Recent) == recentCount {
				return d, nil
			}
			d.Recent = append(d.Recent, a)
		}
	}
	return d, nil
}

// Analytics summarizes every achievement and lists the years present.
func (s *ContentService) Analytics(ctx context.Context) (analytics.Summary, []int, error) {
	items, err := s.allAchievements(ctx)
	if err != nil {
		return analytics.Summary{}, nil, err
	}
	return analytics.Summarize(items, s.now()), analytics.Years(items), nil
}

// Timeline groups achievements by month; year 0 keeps all years.
func (s *ContentService) Timeline(ctx context.Context, year int) ([]analytics.Group, error) {
	items, err := s.allAchievements(ctx)
	if err != nil {
		return nil, err
	}
	return analytics.Timeline(items, year), nil
}
