package models

type Achievement struct {
	ID              int64      `json:"id"`
	UserID          int64      `json:"user_id"`
	CategoryID      *int64     `json:"category_id,omitempty"`
	Title           string     `json:"title"`
	Description     string     `json:"description,omitempty"`
	AchievedDate    *Timestamp `json:"achieved_date,omitempty"`
	DateAchieved    *Timestamp `json:"date_achieved,omitempty"`
	ImportanceLevel int        `json:"importance_level"`
	IsPublic        bool       `json:"is_public"`
	CreatedAt       Timestamp  `json:"created_at"`
	UpdatedAt       Timestamp  `json:"updated_at"`
}

// EffectiveDate is the date the achievement is filed under: the achieved
// date when present, then date_achieved, then the creation time.
func (a Achievement) EffectiveDate() Timestamp {
	if a.AchievedDate != nil && !a.AchievedDate.IsZero() {
		return *a.AchievedDate
	}
	if a.DateAchieved != nil && !a.DateAchieved.IsZero() {
		return *a.DateAchieved
	}
	return a.CreatedAt
}

// AchievementInput is used for both create and update. Nil pointers are
// left out of the request body.
type AchievementInput struct {
	Title           *string    `json:"title,omitempty"`
	Description     *string    `json:"description,omitempty"`
	CategoryID      *int64     `json:"category_id,omitempty"`
	DateAchieved    *Timestamp `json:"date_achieved,omitempty"`
	ImportanceLevel *int       `json:"importance_level,omitempty"`
	IsPublic        *bool      `json:"is_public,omitempty"`
}

func (in AchievementInput) Validate() error {
	if in.Title != nil && *in.Title == "" {
		return fieldError("title", "must not be empty")
	}
	if in.ImportanceLevel != nil {
		return ValidateRange("importance_level", *in.ImportanceLevel, 1, 5)
	}
	return nil
}

// AdminAchievement is the moderation view of an achievement.
type AdminAchievement struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	UserID      int64     `json:"user_id"`
	UserEmail   string    `json:"user_email,omitempty"`
	IsPublic    bool      `json:"is_public"`
	CreatedAt   Timestamp `json:"created_at"`
}
