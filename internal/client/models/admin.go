package models

// UserAdmin is a user row as seen by administrators.
type UserAdmin struct {
	ID               int64     `json:"id"`
	Email            string    `json:"email"`
	FullName         string    `json:"full_name,omitempty"`
	IsActive         bool      `json:"is_active"`
	IsSuperuser      bool      `json:"is_superuser"`
	SubscriptionTier string    `json:"subscription_tier"`
	IsEmailVerified  bool      `json:"is_email_verified"`
	IsPhoneVerified  bool      `json:"is_phone_verified"`
	CreatedAt        Timestamp `json:"created_at"`
	UpdatedAt        Timestamp `json:"updated_at"`
	AchievementCount int       `json:"achievement_count"`
	SkillCount       int       `json:"skill_count"`
	GoalCount        int       `json:"goal_count"`
}

type UserAdminUpdate struct {
	IsActive              *bool      `json:"is_active,omitempty"`
	IsSuperuser           *bool      `json:"is_superuser,omitempty"`
	SubscriptionTier      *string    `json:"subscription_tier,omitempty"`
	SubscriptionExpiresAt *Timestamp `json:"subscription_expires_at,omitempty"`
	IsEmailVerified       *bool      `json:"is_email_verified,omitempty"`
}

type SystemStats struct {
	TotalUsers        int `json:"total_users"`
	ActiveUsers       int `json:"active_users"`
	VerifiedUsers     int `json:"verified_users"`
	ProUsers          int `json:"pro_users"`
	TotalAchievements int `json:"total_achievements"`
	TotalSkills       int `json:"total_skills"`
	TotalGoals        int `json:"total_goals"`
	UsersCreatedToday int `json:"users_created_today"`
}

// GrowthDataPoint is one day of the user growth series. Date is YYYY-MM-DD.
type GrowthDataPoint struct {
	Date       string `json:"date"`
	NewUsers   int    `json:"new_users"`
	TotalUsers int    `json:"total_users"`
}
