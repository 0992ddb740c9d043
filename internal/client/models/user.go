package models

// User is the authenticated account as returned by /api/auth/me.
type User struct {
	ID          int64     `json:"id"`
	Email       string    `json:"email"`
	FullName    string    `json:"full_name,omitempty"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	Bio         string    `json:"bio,omitempty"`
	IsActive    bool      `json:"is_active"`
	IsSuperuser bool      `json:"is_superuser"`
	CreatedAt   Timestamp `json:"created_at"`
	UpdatedAt   Timestamp `json:"updated_at"`
}

// DisplayName prefers the full name and falls back to the email.
func (u *User) DisplayName() string {
	if u == nil {
		return ""
	}
	if u.FullName != "" {
		return u.FullName
	}
	return u.Email
}

// LoginData carries credentials for the OAuth2 password form. Username is
// the account email.
type LoginData struct {
	Username string
	Password string
}

type RegisterData struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name,omitempty"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// ProfileUpdate changes only the non-nil fields.
type ProfileUpdate struct {
	FullName *string `json:"full_name,omitempty"`
	Bio      *string `json:"bio,omitempty"`
}

type PasswordChange struct {
	CurrentPassword string
	NewPassword     string
}

// Message is the generic {"message": ...} acknowledgement.
type Message struct {
	Message string `json:"message"`
	Email   string `json:"email,omitempty"`
}

// OTPRequestResult is returned when a registration code is requested.
// DebugOTP is only filled by backends that cannot send mail.
type OTPRequestResult struct {
	Message  string `json:"message"`
	DebugOTP string `json:"debug_otp,omitempty"`
}
