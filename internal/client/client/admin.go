package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dmitrijs2005/achievo/internal/client/apipaths"
	"github.com/dmitrijs2005/achievo/internal/client/models"
)

func (c *HTTPClient) AdminStats(ctx context.Context) (*models.SystemStats, error) {
	var out models.SystemStats
	if err := c.getJSON(ctx, apipaths.AdminStatsOverview, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminGrowth returns one point per day for the last days days. A
// non-positive value lets the backend pick its default.
func (c *HTTPClient) AdminGrowth(ctx context.Context, days int) ([]models.GrowthDataPoint, error) {
	var q url.Values
	if days > 0 {
		q = url.Values{"days": {strconv.Itoa(days)}}
	}
	var out []models.GrowthDataPoint
	if err := c.getJSON(ctx, apipaths.AdminStatsGrowth, q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) AdminUsers(ctx context.Context, opts ListOptions) ([]models.UserAdmin, error) {
	var out []models.UserAdmin
	if err := c.getJSON(ctx, apipaths.AdminUsers, opts.values(), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) AdminUser(ctx context.Context, id int64) (*models.UserAdmin, error) {
	var out models.UserAdmin
	if err := c.getJSON(ctx, apipaths.Item(apipaths.AdminUsers, id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) AdminUpdateUser(ctx context.Context, id int64, in models.UserAdminUpdate) (*models.UserAdmin, error) {
	var out models.UserAdmin
	if err := c.sendJSON(ctx, http.MethodPut, apipaths.Item(apipaths.AdminUsers, id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) AdminDeleteUser(ctx context.Context, id int64) (*models.Message, error) {
	var out models.Message
	if err := c.do(ctx, http.MethodDelete, apipaths.Item(apipaths.AdminUsers, id), nil, nil, "", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) AdminAchievements(ctx context.Context, opts ListOptions) ([]models.AdminAchievement, error) {
	var out []models.AdminAchievement
	if err := c.getJSON(ctx, apipaths.AdminAchievements, opts.values(), &out); err != nil {
		return nil, err
	}
	return out, nil
}
