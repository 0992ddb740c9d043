package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/achievo/internal/client/apipaths"
	"github.com/dmitrijs2005/achievo/internal/client/models"
)

// ListOptions are the paging and filter parameters shared by list routes.
// Zero values are not sent.
type ListOptions struct {
	Skip       int
	Limit      int
	CategoryID int64
	Search     string
}

func (o ListOptions) values() url.Values {
	q := url.Values{}
	if o.Skip > 0 {
		q.Set("skip", strconv.Itoa(o.Skip))
	}
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.CategoryID > 0 {
		q.Set("category_id", strconv.FormatInt(o.CategoryID, 10))
	}
	if o.Search != "" {
		q.Set("search", o.Search)
	}
	return q
}

type validator interface {
	Validate() error
}

// Resource is a CRUD collection of T, written with input type I.
type Resource[T any, I any] struct {
	c    *HTTPClient
	path string
}

func newResource[T any, I any](c *HTTPClient, path string) *Resource[T, I] {
	return &Resource[T, I]{c: c, path: path}
}

func (r *Resource[T, I]) List(ctx context.Context, opts ListOptions) ([]T, error) {
	var out []T
	if err := r.c.getJSON(ctx, r.path, opts.values(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Resource[T, I]) Get(ctx context.Context, id int64) (*T, error) {
	var out T
	if err := r.c.getJSON(ctx, apipaths.Item(r.path, id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Create validates in locally, when I knows how, before sending it.
func (r *Resource[T, I]) Create(ctx context.Context, in I) (*T, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	var out T
	if err := r.c.sendJSON(ctx, http.MethodPost, r.path, nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Resource[T, I]) Update(ctx context.Context, id int64, in I) (*T, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	var out T
	if err := r.c.sendJSON(ctx, http.MethodPut, apipaths.Item(r.path, id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Resource[T, I]) Delete(ctx context.Context, id int64) error {
	return r.c.do(ctx, http.MethodDelete, apipaths.Item(r.path, id), nil, nil, "", nil)
}

func validate(in any) error {
	if v, ok := in.(validator); ok {
		return v.Validate()
	}
	return nil
}

func (c *HTTPClient) Achievements() *Resource[models.Achievement, models.AchievementInput] {
	return newResource[models.Achievement, models.AchievementInput](c, apipaths.Achievements)
}

func (c *HTTPClient) Categories() *Resource[models.Category, models.CategoryInput] {
	return newResource[models.Category, models.CategoryInput](c, apipaths.Categories)
}

func (c *HTTPClient) Skills() *Resource[models.Skill, models.SkillInput] {
	return newResource[models.Skill, models.SkillInput](c, apipaths.Skills)
}

func (c *HTTPClient) Goals() *Resource[models.Goal, models.GoalInput] {
	return newResource[models.Goal, models.GoalInput](c, apipaths.Goals)
}

// PublicAchievements lists achievements every user marked public.
func (c *HTTPClient) PublicAchievements(ctx context.Context, opts ListOptions) ([]models.Achievement, error) {
	var out []models.Achievement
	if err := c.getJSON(ctx, apipaths.PublicAchievements, opts.values(), &out); err != nil {
		return nil, err
	}
	return out, nil
}
