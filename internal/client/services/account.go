// Package services contains application services used by the CLI on top of
// the request gateway and the session store.
package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/achievo/internal/client/models"
	"github.com/dmitrijs2005/achievo/internal/common"
)

var ErrPasswordMismatch = errors.New("passwords do not match")

// AccountAPI is the part of the gateway the account service needs.
type AccountAPI interface {
	UpdateProfile(ctx context.Context, in models.ProfileUpdate) (*models.User, error)
	ChangePassword(ctx context.Context, in models.PasswordChange) (*models.Message, error)
	RequestRegistrationOTP(ctx context.Context, email, fullName string) (*models.OTPRequestResult, error)
	ForgotPassword(ctx context.Context, email string) (*models.Message, error)
	VerifyOTP(ctx context.Context, email, otp string) (*models.Message, error)
	ResetPassword(ctx context.Context, email, newPassword string) (*models.Message, error)
	Ping(ctx context.Context) error
}

// UserRefresher re-reads the current user after a profile change.
type UserRefresher interface {
	FetchUser(ctx context.Context) error
}

// AccountService defines the profile and password operations of the CLI.
//
// Contract:
//   - UpdateProfile: save profile fields and refresh the session user.
//   - ChangePassword: check confirmation and strength, then ask the backend.
//   - RequestRegistrationCode: start the OTP registration flow.
//   - RequestPasswordReset / VerifyResetCode / ResetPassword: the forgot
//     password flow, in that order.
//   - Ping: check backend liveness.
//
// Password arguments are wiped before the methods return.
type AccountService interface {
	UpdateProfile(ctx context.Context, in models.ProfileUpdate) (*models.User, error)
	ChangePassword(ctx context.Context, current, next, confirm []byte) error
	RequestRegistrationCode(ctx context.Context, email, fullName string) (*models.OTPRequestResult, error)
	RequestPasswordReset(ctx context.Context, email string) (string, error)
	VerifyResetCode(ctx context.Context, email, code string) error
	ResetPassword(ctx context.Context, email string, next, confirm []byte) error
	Ping(ctx context.Context) error
}

type accountService struct {
	api   AccountAPI
	users UserRefresher
}

// NewAccountService binds the service to the gateway and the session store.
func NewAccountService(api AccountAPI, users UserRefresher) AccountService {
	return &accountService{api: api, users: users}
}

// UpdateProfile saves the change and then refreshes the session user, so
// the store never shows stale profile data. A failed refresh is reported
// but the update itself has already happened.
func (s *accountService) UpdateProfile(ctx context.Context, in models.ProfileUpdate) (*models.User, error) {
	u, err := s.api.UpdateProfile(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := s.users.FetchUser(ctx); err != nil {
		return u, fmt.Errorf("refresh user: %w", err)
	}
	return u, nil
}

func (s *accountService) ChangePassword(ctx context.Context, current, next, confirm []byte) error {
	defer common.WipeByteArray(current)
	defer common.WipeByteArray(next)
	defer common.WipeByteArray(confirm)

	if err := checkNewPassword(next, confirm); err != nil {
		return err
	}
	_, err := s.api.ChangePassword(ctx, models.PasswordChange{
		CurrentPassword: string(current),
		NewPassword:     string(next),
	})
	return err
}

func (s *accountService) RequestRegistrationCode(ctx context.Context, email, fullName string) (*models.OTPRequestResult, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, &models.FieldError{Field: "email", Reason: "is required"}
	}
	return s.api.RequestRegistrationOTP(ctx, email, strings.TrimSpace(fullName))
}

// RequestPasswordReset returns the backend's acknowledgement, which reads
// the same whether or not the account exists.
func (s *accountService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return "", &models.FieldError{Field: "email", Reason: "is required"}
	}
	msg, err := s.api.ForgotPassword(ctx, email)
	if err != nil {
		return "", err
	}
	return msg.Message, nil
}

func (s *accountService) VerifyResetCode(ctx context.Context, email, code string) error {
	code = strings.TrimSpace(code)
	if err := models.ValidateOTP(code); err != nil {
		return err
	}
	_, err := s.api.VerifyOTP(ctx, strings.TrimSpace(email), code)
	return err
}

func (s *accountService) ResetPassword(ctx context.Context, email string, next, confirm []byte) error {
	defer common.WipeByteArray(next)
	defer common.WipeByteArray(confirm)

	if err := checkNewPassword(next, confirm); err != nil {
		return err
	}
	_, err := s.api.ResetPassword(ctx, strings.TrimSpace(email), string(next))
	return err
}

func (s *accountService) Ping(ctx context.Context) error {
	return s.api.Ping(ctx)
}

func checkNewPassword(next, confirm []byte) error {
	if subtle.ConstantTimeCompare(next, confirm) == 0 {
		return ErrPasswordMismatch
	}
	return models.ValidatePassword(string(next))
}
