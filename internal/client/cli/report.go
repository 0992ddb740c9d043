package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/achievo/internal/client/client"
	"github.com/dmitrijs2005/achievo/internal/client/models"
	"github.com/dmitrijs2005/achievo/internal/client/services"
	"github.com/dmitrijs2005/achievo/internal/common"
)

var inputErrors = []error{
	common.ErrorInvalidInput,
	services.ErrPasswordMismatch,
	models.ErrPasswordTooShort,
	models.ErrPasswordTooLong,
	models.ErrPasswordNoUpper,
	models.ErrPasswordNoDigit,
	models.ErrPasswordNoSpecial,
	models.ErrInvalidOTP,
}

// report prints err in a form fit for the user and returns it unchanged.
// Unauthorized responses are not printed: the session has already ended
// and the REPL will ask for a new login.
func (a *App) report(ctx context.Context, action string, err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(a.out, "Cancelled.")
		return err
	case client.IsUnauthorized(err):
		a.logger.Debug(ctx, "request rejected as unauthorized", "action", action)
		return err
	case errors.Is(err, client.ErrUnavailable):
		fmt.Fprintln(a.out, "Backend is not reachable, please try again later.")
		a.logger.Warn(ctx, "backend unavailable", "action", action, "error", err)
		return err
	}

	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.StatusCode < 500 {
		fmt.Fprintln(a.out, "Error: "+apiErr.Message())
		return err
	}

	for _, target := range inputErrors {
		if errors.Is(err, target) {
			fmt.Fprintln(a.out, "Error: "+err.Error())
			return err
		}
	}

	fmt.Fprintln(a.out, "Something went wrong, please try again")
	a.logger.Error(ctx, action+" failed", "error", err)
	return err
}
