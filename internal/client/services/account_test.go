package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/achievo/internal/client/models"
	"github.com/dmitrijs2005/achievo/internal/common"
)

// fakeAccountAPI records what the service sends.
type fakeAccountAPI struct {
	UpdateErr error
	ChangeErr error
	VerifyErr error

	LastProfile models.ProfileUpdate
	LastChange  models.PasswordChange
	LastOTPUser [2]string
	LastForgot  string
	LastVerify  [2]string
	LastReset   [2]string
	Calls       int
}

func (f *fakeAccountAPI) UpdateProfile(_ context.Context, in models.ProfileUpdate) (*models.User, error) {
	f.Calls++
	f.LastProfile = in
	if f.UpdateErr != nil {
		return nil, f.UpdateErr
	}
	u := &models.User{ID: 1, Email: "a@b.c"}
	if in.FullName != nil {
		u.FullName = *in.FullName
	}
	return u, nil
}

func (f *fakeAccountAPI) ChangePassword(_ context.Context, in models.PasswordChange) (*models.Message, error) {
	f.Calls++
	f.LastChange = in
	if f.ChangeErr != nil {
		return nil, f.ChangeErr
	}
	return &models.Message{Message: "Password updated successfully"}, nil
}

func (f *fakeAccountAPI) RequestRegistrationOTP(_ context.Context, email, fullName string) (*models.OTPRequestResult, error) {
	f.Calls++
	f.LastOTPUser = [2]string{email, fullName}
	return &models.OTPRequestResult{Message: "sent", DebugOTP: "123456"}, nil
}

func (f *fakeAccountAPI) ForgotPassword(_ context.Context, email string) (*models.Message, error) {
	f.Calls++
	f.LastForgot = email
	return &models.Message{Message: "If the email exists, an OTP has been sent"}, nil
}

func (f *fakeAccountAPI) VerifyOTP(_ context.Context, email, otp string) (*models.Message, error) {
	f.Calls++
	f.LastVerify = [2]string{email, otp}
	if f.VerifyErr != nil {
		return nil, f.VerifyErr
	}
	return &models.Message{Message: "OTP verified successfully", Email: email}, nil
}

func (f *fakeAccountAPI) ResetPassword(_ context.Context, email, newPassword string) (*models.Message, error) {
	f.Calls++
	f.LastReset = [2]string{email, newPassword}
	return &models.Message{Message: "Password reset successfully"}, nil
}

func (f *fakeAccountAPI) Ping(context.Context) error { return nil }

type fakeRefresher struct {
	err   error
	calls int
}

func (f *fakeRefresher) FetchUser(context.Context) error {
	f.calls++
	return f.err
}

func TestUpdateProfile_RefreshesSessionUser(t *testing.T) {
	api, users := &fakeAccountAPI{}, &fakeRefresher{}
	svc := NewAccountService(api, users)

	name := "Ann"
	u, err := svc.UpdateProfile(context.Background(), models.ProfileUpdate{FullName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Ann", u.FullName)
	assert.Equal(t, 1, users.calls)
}

func TestUpdateProfile_FailureSkipsRefresh(t *testing.T) {
	boom := errors.New("boom")
	api, users := &fakeAccountAPI{UpdateErr: boom}, &fakeRefresher{}
	svc := NewAccountService(api, users)

	_, err := svc.UpdateProfile(context.Background(), models.ProfileUpdate{})
	require.ErrorIs(t, err, boom)
	assert.Zero(t, users.calls)
}

func TestUpdateProfile_RefreshErrorKeepsResult(t *testing.T) {
	refreshErr := errors.New("offline")
	svc := NewAccountService(&fakeAccountAPI{}, &fakeRefresher{err: refreshErr})

	u, err := svc.UpdateProfile(context.Background(), models.ProfileUpdate{})
	require.ErrorIs(t, err, refreshErr)
	assert.NotNil(t, u)
}

func TestChangePassword(t *testing.T) {
	tests := []struct {
		name      string
		next      string
		confirm   string
		wantErr   error
		wantCalls int
	}{
		{name: "ok", next: "Strong1!x", confirm: "Strong1!x", wantCalls: 1},
		{name: "mismatch", next: "Strong1!x", confirm: "Strong1!y", wantErr: ErrPasswordMismatch},
		{name: "weak", next: "weakweak", confirm: "weakweak", wantErr: models.ErrPasswordNoUpper},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAccountAPI{}
			svc := NewAccountService(api, &fakeRefresher{})

			current := []byte("Old1!pass")
			next := []byte(tt.next)
			err := svc.ChangePassword(context.Background(), current, next, []byte(tt.confirm))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, models.PasswordChange{CurrentPassword: "Old1!pass", NewPassword: tt.next}, api.LastChange)
			}
			assert.Equal(t, tt.wantCalls, api.Calls)
			assert.Equal(t, make([]byte, len(current)), current, "current password wiped")
			assert.Equal(t, make([]byte, len(next)), next, "new password wiped")
		})
	}
}

func TestRequestRegistrationCode(t *testing.T) {
	api := &fakeAccountAPI{}
	svc := NewAccountService(api, &fakeRefresher{})

	_, err := svc.RequestRegistrationCode(context.Background(), "  ", "x")
	require.ErrorIs(t, err, common.ErrorInvalidInput)

	res, err := svc.RequestRegistrationCode(context.Background(), " n@x.io ", " Nia ")
	require.NoError(t, err)
	assert.Equal(t, "123456", res.DebugOTP)
	assert.Equal(t, [2]string{"n@x.io", "Nia"}, api.LastOTPUser)
}

func TestForgotPasswordFlow(t *testing.T) {
	api := &fakeAccountAPI{}
	svc := NewAccountService(api, &fakeRefresher{})
	ctx := context.Background()

	msg, err := svc.RequestPasswordReset(ctx, "f@x.io")
	require.NoError(t, err)
	assert.Equal(t, "If the email exists, an OTP has been sent", msg)

	require.ErrorIs(t, svc.VerifyResetCode(ctx, "f@x.io", "12ab56"), models.ErrInvalidOTP)
	assert.Equal(t, [2]string{}, api.LastVerify, "malformed code never sent")

	require.NoError(t, svc.VerifyResetCode(ctx, "f@x.io", " 123456 "))
	assert.Equal(t, [2]string{"f@x.io", "123456"}, api.LastVerify)

	require.ErrorIs(t, svc.ResetPassword(ctx, "f@x.io", []byte("Newpass1!"), []byte("Newpass1?")), ErrPasswordMismatch)
	require.NoError(t, svc.ResetPassword(ctx, "f@x.io", []byte("Newpass1!"), []byte("Newpass1!")))
	assert.Equal(t, [2]string{"f@x.io", "Newpass1!"}, api.LastReset)
}

func TestRequestPasswordReset_RequiresEmail(t *testing.T) {
	api := &fakeAccountAPI{}
	svc := NewAccountService(api, &fakeRefresher{})

	_, err := svc.RequestPasswordReset(context.Background(), "")
	require.ErrorIs(t, err, common.ErrorInvalidInput)
	assert.Zero(t, api.Calls)
}
