package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/achievo/internal/client/apipaths"
	"github.com/dmitrijs2005/achievo/internal/client/models"
	"github.com/dmitrijs2005/achievo/internal/common"
)

// Login exchanges credentials for an access token. The backend expects an
// OAuth2 password form, not JSON.
func (c *HTTPClient) Login(ctx context.Context, data models.LoginData) (*models.TokenResponse, error) {
	form := url.Values{}
	form.Set("username", data.Username)
	form.Set("password", data.Password)

	var out models.TokenResponse
	if err := c.postForm(ctx, apipaths.Login, form, &out); err != nil {
		return nil, err
	}
	if out.AccessToken == "" {
		return nil, common.ErrEmptyToken
	}
	return &out, nil
}

func (c *HTTPClient) Me(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := c.getJSON(ctx, apipaths.Me, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Register(ctx context.Context, data models.RegisterData) (*models.User, error) {
	var out models.User
	if err := c.sendJSON(ctx, http.MethodPost, apipaths.Register, nil, data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RequestRegistrationOTP asks the backend to mail a one-time code for
// registering email.
func (c *HTTPClient) RequestRegistrationOTP(ctx context.Context, email, fullName string) (*models.OTPRequestResult, error) {
	q := url.Values{}
	q.Set("email", email)
	q.Set("full_name", fullName)

	var out models.OTPRequestResult
	if err := c.sendJSON(ctx, http.MethodPost, apipaths.RegisterRequestOTP, q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) RegisterWithOTP(ctx context.Context, data models.RegisterData, otp string) (*models.User, error) {
	q := url.Values{}
	q.Set("otp_code", otp)

	var out models.User
	if err := c.sendJSON(ctx, http.MethodPost, apipaths.Register, q, data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) ForgotPassword(ctx context.Context, email string) (*models.Message, error) {
	q := url.Values{}
	q.Set("email", email)
	return c.postMessage(ctx, apipaths.ForgotPassword, q)
}

func (c *HTTPClient) VerifyOTP(ctx context.Context, email, otp string) (*models.Message, error) {
	q := url.Values{}
	q.Set("email", email)
	q.Set("otp_code", otp)
	return c.postMessage(ctx, apipaths.VerifyOTP, q)
}

func (c *HTTPClient) ResetPassword(ctx context.Context, email, newPassword string) (*models.Message, error) {
	q := url.Values{}
	q.Set("email", email)
	q.Set("new_password", newPassword)
	return c.postMessage(ctx, apipaths.ResetPassword, q)
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, in models.ProfileUpdate) (*models.User, error) {
	var out models.User
	if err := c.sendJSON(ctx, http.MethodPut, apipaths.Me, nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ChangePassword sends both passwords as query parameters, which is how the
// backend declares them.
func (c *HTTPClient) ChangePassword(ctx context.Context, in models.PasswordChange) (*models.Message, error) {
	q := url.Values{}
	q.Set("current_password", in.CurrentPassword)
	q.Set("new_password", in.NewPassword)
	return c.postMessage(ctx, apipaths.ChangePassword, q)
}

func (c *HTTPClient) postMessage(ctx context.Context, path string, q url.Values) (*models.Message, error) {
	var out models.Message
	if err := c.sendJSON(ctx, http.MethodPost, path, q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
