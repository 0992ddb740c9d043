package models

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dmitrijs2005/achievo/internal/common"
)

// PasswordSpecialChars are the characters that satisfy the special
// character rule of ValidatePassword.
const PasswordSpecialChars = `!@#$%^&*(),.?":{}|<>`

// Password length bounds, counted in characters.
const (
	PasswordMinLen = 8
	PasswordMaxLen = 100
)

var (
	ErrPasswordTooShort  = errors.New("password must be at least 8 characters long")
	ErrPasswordTooLong   = errors.New("password must be at most 100 characters long")
	ErrPasswordNoUpper   = errors.New("password must contain at least one uppercase letter")
	ErrPasswordNoDigit   = errors.New("password must contain at least one number")
	ErrPasswordNoSpecial = errors.New("password must contain at least one special character")
	ErrInvalidOTP        = errors.New("verification code must be exactly 6 digits")
)

// FieldError reports an invalid input field. It matches
// common.ErrorInvalidInput.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return e.Field + " " + e.Reason
}

func (e *FieldError) Unwrap() error {
	return common.ErrorInvalidInput
}

func fieldError(field, reason string) error {
	return &FieldError{Field: field, Reason: reason}
}

// ValidateRange checks min <= v <= max.
func ValidateRange(field string, v, min, max int) error {
	if v < min || v > max {
		return fieldError(field, fmt.Sprintf("must be between %d and %d", min, max))
	}
	return nil
}

// ValidatePassword applies the backend's password strength rules so that
// obviously weak passwords are rejected before a round trip.
func ValidatePassword(p string) error {
	switch n := utf8.RuneCountInString(p); {
	case n < PasswordMinLen:
		return ErrPasswordTooShort
	case n > PasswordMaxLen:
		return ErrPasswordTooLong
	}
	var upper, digit, special bool
	for _, r := range p {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(PasswordSpecialChars, r):
			special = true
		}
	}
	if !upper {
		return ErrPasswordNoUpper
	}
	if !digit {
		return ErrPasswordNoDigit
	}
	if !special {
		return ErrPasswordNoSpecial
	}
	return nil
}

func ValidateOTP(code string) error {
	if len(code) != 6 {
		return ErrInvalidOTP
	}
	for _, r := range code {
		if !unicode.IsDigit(r) || r > unicode.MaxASCII {
			return ErrInvalidOTP
		}
	}
	return nil
}
