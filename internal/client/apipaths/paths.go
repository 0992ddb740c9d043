// Package apipaths lists the backend routes consumed by the client.
package apipaths

import "strconv"

const (
	Root   = "/"
	Health = "/health"

	Login              = "/api/auth/login"
	Me                 = "/api/auth/me"
	Register           = "/api/auth/register"
	RegisterRequestOTP = "/api/auth/register/request-otp"
	ForgotPassword     = "/api/auth/forgot-password"
	VerifyOTP          = "/api/auth/verify-otp"
	ResetPassword      = "/api/auth/reset-password"
	ChangePassword     = "/api/auth/change-password"

	// Collection routes keep their trailing slash; the backend redirects
	// without it.
	Achievements       = "/api/achievements/"
	PublicAchievements = "/api/achievements/public/all"
	Categories         = "/api/categories/"
	Skills             = "/api/skills/"
	Goals              = "/api/goals/"

	AdminUsers         = "/api/admin/users"
	AdminStatsOverview = "/api/admin/stats/overview"
	AdminStatsGrowth   = "/api/admin/stats/growth"
	AdminAchievements  = "/api/admin/achievements"
)

// Item joins a collection route and an id: Item(Goals, 3) is "/api/goals/3".
func Item(collection string, id int64) string {
	if n := len(collection); n > 0 && collection[n-1] == '/' {
		return collection + strconv.FormatInt(id, 10)
	}
	return collection + "/" + strconv.FormatInt(id, 10)
}
