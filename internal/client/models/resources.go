package models

type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Icon        string    `json:"icon,omitempty"`
	Color       string    `json:"color,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   Timestamp `json:"created_at"`
	UpdatedAt   Timestamp `json:"updated_at"`
}

type CategoryInput struct {
	Name        *string `json:"name,omitempty"`
	Icon        *string `json:"icon,omitempty"`
	Color       *string `json:"color,omitempty"`
	Description *string `json:"description,omitempty"`
}

func (in CategoryInput) Validate() error {
	if in.Name != nil && *in.Name == "" {
		return fieldError("name", "must not be empty")
	}
	return nil
}

type Skill struct {
	ID               int64     `json:"id"`
	UserID           int64     `json:"user_id"`
	Name             string    `json:"name"`
	ProficiencyLevel int       `json:"proficiency_level"`
	Category         string    `json:"category,omitempty"`
	CreatedAt        Timestamp `json:"created_at"`
	UpdatedAt        Timestamp `json:"updated_at"`
}

type SkillInput struct {
	Name             *string `json:"name,omitempty"`
	ProficiencyLevel *int    `json:"proficiency_level,omitempty"`
	Category         *string `json:"category,omitempty"`
}

func (in SkillInput) Validate() error {
	if in.Name != nil && *in.Name == "" {
		return fieldError("name", "must not be empty")
	}
	if in.ProficiencyLevel != nil {
		return ValidateRange("proficiency_level", *in.ProficiencyLevel, 1, 5)
	}
	return nil
}

type GoalStatus string

const (
	GoalNotStarted GoalStatus = "not_started"
	GoalInProgress GoalStatus = "in_progress"
	GoalCompleted  GoalStatus = "completed"
	GoalCancelled  GoalStatus = "cancelled"
)

func (s GoalStatus) Valid() bool {
	switch s {
	case GoalNotStarted, GoalInProgress, GoalCompleted, GoalCancelled:
		return true
	}
	return false
}

type Goal struct {
	ID                 int64      `json:"id"`
	UserID             int64      `json:"user_id"`
	Title              string     `json:"title"`
	Description        string     `json:"description,omitempty"`
	TargetDate         *Timestamp `json:"target_date,omitempty"`
	Status             GoalStatus `json:"status"`
	ProgressPercentage int        `json:"progress_percentage"`
	CreatedAt          Timestamp  `json:"created_at"`
	UpdatedAt          Timestamp  `json:"updated_at"`
}

type GoalInput struct {
	Title              *string     `json:"title,omitempty"`
	Description        *string     `json:"description,omitempty"`
	TargetDate         *Timestamp  `json:"target_date,omitempty"`
	Status             *GoalStatus `json:"status,omitempty"`
	ProgressPercentage *int        `json:"progress_percentage,omitempty"`
}

func (in GoalInput) Validate() error {
	if in.Title != nil && *in.Title == "" {
		return fieldError("title", "must not be empty")
	}
	if in.Status != nil && !in.Status.Valid() {
		return fieldError("status", "must be one of not_started, in_progress, completed, cancelled")
	}
	if in.ProgressPercentage != nil {
		return ValidateRange("progress_percentage", *in.ProgressPercentage, 0, 100)
	}
	return nil
}
