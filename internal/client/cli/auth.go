package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/achievo/internal/client/client"
	"github.com/dmitrijs2005/achievo/internal/client/models"
	"github.com/dmitrijs2005/achievo/internal/client/services"
	"github.com/dmitrijs2005/achievo/internal/client/session"
	"github.com/dmitrijs2005/achievo/internal/common"
)

// Login asks for credentials and signs in. A rejected login ends any
// previous session; the pending login route is dropped afterwards so the
// REPL does not prompt again straight away.
func (a *App) Login(ctx context.Context) error {
	defer a.takeRoute()

	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	pw, err := getPassword(a.out, "Password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(pw)

	err = a.store.Login(ctx, models.LoginData{Username: email, Password: string(pw)})
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == 401 {
			fmt.Fprintln(a.out, "Error: "+apiErr.Message())
			return err
		}
		return a.report(ctx, "login", err)
	}

	fmt.Fprintf(a.out, "Logged in as %s.\n", a.store.User().DisplayName())
	return nil
}

// readNewPassword asks for a password twice and checks it locally.
func (a *App) readNewPassword(prompt string) ([]byte, error) {
	pw, err := getPassword(a.out, prompt)
	if err != nil {
		return nil, err
	}
	confirm, err := getPassword(a.out, "Confirm password")
	if err != nil {
		common.WipeByteArray(pw)
		return nil, err
	}
	defer common.WipeByteArray(confirm)

	if !bytes.Equal(pw, confirm) {
		common.WipeByteArray(pw)
		return nil, services.ErrPasswordMismatch
	}
	if err := models.ValidatePassword(string(pw)); err != nil {
		common.WipeByteArray(pw)
		return nil, err
	}
	return pw, nil
}

func (a *App) readRegisterData() (models.RegisterData, error) {
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return models.RegisterData{}, err
	}
	if email == "" {
		return models.RegisterData{}, &models.FieldError{Field: "email", Reason: "must not be empty"}
	}
	name, err := GetSimpleText(a.reader, "Full name (optional)", a.out)
	if err != nil {
		return models.RegisterData{}, err
	}
	return models.RegisterData{Email: email, FullName: name}, nil
}

// Register creates an account and signs in with it.
func (a *App) Register(ctx context.Context) error {
	data, err := a.readRegisterData()
	if err != nil {
		return a.report(ctx, "register", err)
	}
	pw, err := a.readNewPassword("Password")
	if err != nil {
		return a.report(ctx, "register", err)
	}
	defer common.WipeByteArray(pw)
	data.Password = string(pw)

	if err := a.store.Register(ctx, data); err != nil {
		return a.report(ctx, "register", err)
	}
	fmt.Fprintf(a.out, "Welcome, %s! You are now logged in.\n", a.store.User().DisplayName())
	return nil
}

// RegisterOTP is Register with an emailed verification code.
func (a *App) RegisterOTP(ctx context.Context) error {
	data, err := a.readRegisterData()
	if err != nil {
		return a.report(ctx, "register", err)
	}

	res, err := a.account.RequestRegistrationCode(ctx, data.Email, data.FullName)
	if err != nil {
		return a.report(ctx, "request verification code", err)
	}
	fmt.Fprintln(a.out, res.Message)

	code, err := GetSimpleText(a.reader, "Verification code", a.out)
	if err != nil {
		return err
	}
	pw, err := a.readNewPassword("Password")
	if err != nil {
		return a.report(ctx, "register", err)
	}
	defer common.WipeByteArray(pw)
	data.Password = string(pw)

	if err := a.store.RegisterWithOTP(ctx, data, code); err != nil {
		return a.report(ctx, "register", err)
	}
	fmt.Fprintf(a.out, "Welcome, %s! You are now logged in.\n", a.store.User().DisplayName())
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	a.store.Logout(ctx)
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	u := a.store.User()
	if u == nil {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}

	fmt.Fprintf(a.out, "%s <%s>\n", u.DisplayName(), u.Email)
	if u.IsSuperuser {
		fmt.Fprintln(a.out, "Role: administrator")
	}

	tok, err := a.tokens.Token(ctx)
	if err != nil {
		return a.report(ctx, "read token", err)
	}
	if saved, ok := a.tokens.(interface {
		SavedAt(context.Context) (time.Time, bool, error)
	}); ok {
		if at, ok, err := saved.SavedAt(ctx); err == nil && ok {
			fmt.Fprintf(a.out, "Signed in at %s\n", at.Local().Format(time.DateTime))
		}
	}
	if exp, ok := session.ParseExpiry(tok); ok {
		fmt.Fprintf(a.out, "Session expires at %s\n", exp.Local().Format(time.DateTime))
	}
	return nil
}

// Profile shows the current user; "profile edit" changes name and bio.
func (a *App) Profile(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] == "show" {
		u := a.store.User()
		if u == nil {
			fmt.Fprintln(a.out, "Not logged in.")
			return nil
		}
		fmt.Fprintf(a.out, "Email:     %s\n", u.Email)
		fmt.Fprintf(a.out, "Full name: %s\n", u.FullName)
		fmt.Fprintf(a.out, "Bio:       %s\n", u.Bio)
		fmt.Fprintf(a.out, "Joined:    %s\n", u.CreatedAt.Date())
		return nil
	}
	if args[0] != "edit" {
		fmt.Fprintln(a.out, "Usage: profile [edit]")
		return nil
	}

	var in models.ProfileUpdate
	var err error
	if in.FullName, err = GetOptionalText(a.reader, "Full name (blank keeps current)", a.out); err != nil {
		return err
	}
	if in.Bio, err = GetOptionalText(a.reader, "Bio (blank keeps current)", a.out); err != nil {
		return err
	}
	if in.FullName == nil && in.Bio == nil {
		fmt.Fprintln(a.out, "Nothing to change.")
		return nil
	}

	if _, err := a.account.UpdateProfile(ctx, in); err != nil {
		return a.report(ctx, "update profile", err)
	}
	fmt.Fprintln(a.out, "Profile updated.")
	return nil
}

func (a *App) Passwd(ctx context.Context) error {
	current, err := getPassword(a.out, "Current password")
	if err != nil {
		return err
	}
	next, err := getPassword(a.out, "New password")
	if err != nil {
		common.WipeByteArray(current)
		return err
	}
	confirm, err := getPassword(a.out, "Confirm password")
	if err != nil {
		common.WipeByteArray(current)
		common.WipeByteArray(next)
		return err
	}

	if err := a.account.ChangePassword(ctx, current, next, confirm); err != nil {
		return a.report(ctx, "change password", err)
	}
	fmt.Fprintln(a.out, "Password changed.")
	return nil
}

// Forgot runs the password reset flow: request a code, verify it, set a
// new password.
func (a *App) Forgot(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	msg, err := a.account.RequestPasswordReset(ctx, email)
	if err != nil {
		return a.report(ctx, "request password reset", err)
	}
	fmt.Fprintln(a.out, msg)

	code, err := GetSimpleText(a.reader, "Verification code", a.out)
	if err != nil {
		return err
	}
	if err := a.account.VerifyResetCode(ctx, email, code); err != nil {
		return a.report(ctx, "verify code", err)
	}

	next, err := getPassword(a.out, "New password")
	if err != nil {
		return err
	}
	confirm, err := getPassword(a.out, "Confirm password")
	if err != nil {
		common.WipeByteArray(next)
		return err
	}
	if err := a.account.ResetPassword(ctx, email, next, confirm); err != nil {
		return a.report(ctx, "reset password", err)
	}
	fmt.Fprintln(a.out, "Password reset. You can now log in.")
	return nil
}
