package fakeapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/achievo/internal/client/models"
)

func (s *Server) handleLogin(c *gin.Context) {
	username, ok := c.GetPostForm("username")
	if !ok {
		abortValidation(c, "missing", "Field required", "body", "username")
		return
	}
	password, ok := c.GetPostForm("password")
	if !ok {
		abortValidation(c, "missing", "Field required", "body", "password")
		return
	}

	u, err := s.store.authenticate(username, password)
	if err != nil {
		abortDetail(c, http.StatusUnauthorized, "Incorrect email or password")
		return
	}
	if !u.IsActive {
		abortDetail(c, http.StatusUnauthorized, "Inactive user")
		return
	}

	token, err := s.IssueToken(u.ID)
	if err != nil {
		_ = c.Error(err)
		abortDetail(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	c.JSON(http.StatusOK, models.TokenResponse{AccessToken: token, TokenType: "bearer"})
}

func (s *Server) handleMe(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c))
}

func (s *Server) handleUpdateMe(c *gin.Context) {
	var in models.ProfileUpdate
	if !bindJSON(c, &in) {
		return
	}

	u, err := s.store.updateProfile(currentUser(c).ID, in)
	if err != nil {
		abortStoreError(c, err, "User")
		return
	}
	c.JSON(http.StatusOK, u)
}

// handleRegister creates an account. With otp_code the code issued by
// request-otp must match and the account starts email-verified.
func (s *Server) handleRegister(c *gin.Context) {
	var in models.RegisterData
	if !bindJSON(c, &in) {
		return
	}
	if !strings.Contains(in.Email, "@") {
		abortValidation(c, "value_error", "value is not a valid email address", "body", "email")
		return
	}
	if err := models.ValidatePassword(in.Password); err != nil {
		valueError(c, err, "body", "password")
		return
	}

	if s.store.emailExists(in.Email) {
		abortDetail(c, http.StatusBadRequest, "A user with this email already exists.")
		return
	}

	otp, withOTP := c.GetQuery("otp_code")
	if withOTP && !s.store.consumeOTP(purposeRegister, in.Email, otp) {
		abortDetail(c, http.StatusBadRequest, "Invalid or expired OTP")
		return
	}

	u, err := s.store.createUser(in.Email, in.Password, in.FullName, false, withOTP)
	if errors.Is(err, errEmailTaken) {
		abortDetail(c, http.StatusBadRequest, "A user with this email already exists.")
		return
	}
	if err != nil {
		_ = c.Error(err)
		abortDetail(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	c.JSON(http.StatusCreated, u)
}

func (s *Server) handleRequestRegistrationOTP(c *gin.Context) {
	email, ok := requireQuery(c, "email")
	if !ok {
		return
	}
	if s.store.emailExists(email) {
		abortDetail(c, http.StatusBadRequest, "Email already registered")
		return
	}

	code, err := s.store.issueOTP(purposeRegister, email)
	if err != nil {
		_ = c.Error(err)
		abortDetail(c, http.StatusInternalServerError, "Internal Server Error")
		return
	}
	s.logger.Info(c.Request.Context(), "registration OTP issued", "email", email, "otp", code)

	c.JSON(http.StatusOK, models.OTPRequestResult{
		Message:  "OTP sent! (Check server logs for code: " + code + ")",
		DebugOTP: code,
	})
}

// handleForgotPassword answers the same way whether or not the account
// exists.
func (s *Server) handleForgotPassword(c *gin.Context) {
	email, ok := requireQuery(c, "email")
	if !ok {
		return
	}

	if s.store.emailExists(email) {
		code, err := s.store.issueOTP(purposeReset, email)
		if err != nil {
			_ = c.Error(err)
			abortDetail(c, http.StatusInternalServerError, "Internal Server Error")
			return
		}
		s.logger.Info(c.Request.Context(), "password reset OTP issued", "email", email, "otp", code)
	}

	c.JSON(http.StatusOK, models.Message{Message: "If the email exists, an OTP has been sent"})
}

func (s *Server) handleVerifyOTP(c *gin.Context) {
	email, ok := requireQuery(c, "email")
	if !ok {
		return
	}
	code, ok := requireQuery(c, "otp_code")
	if !ok {
		return
	}

	if !s.store.emailExists(email) {
		abortDetail(c, http.StatusBadRequest, "Invalid OTP")
		return
	}
	if !s.store.consumeOTP(purposeReset, email, code) {
		abortDetail(c, http.StatusBadRequest, "Invalid or expired OTP")
		return
	}

	c.JSON(http.StatusOK, models.Message{Message: "OTP verified successfully", Email: email})
}

func (s *Server) handleResetPassword(c *gin.Context) {
	email, ok := requireQuery(c, "email")
	if !ok {
		return
	}
	password, ok := requireQuery(c, "new_password")
	if !ok {
		return
	}
	if err := models.ValidatePassword(password); err != nil {
		valueError(c, err, "query", "new_password")
		return
	}

	if err := s.store.setPassword(email, password); err != nil {
		abortDetail(c, http.StatusBadRequest, "User not found")
		return
	}
	c.JSON(http.StatusOK, models.Message{Message: "Password reset successfully"})
}

func (s *Server) handleChangePassword(c *gin.Context) {
	current, ok := requireQuery(c, "current_password")
	if !ok {
		return
	}
	next, ok := requireQuery(c, "new_password")
	if !ok {
		return
	}

	u := currentUser(c)
	if !s.store.checkPassword(u.ID, current) {
		abortDetail(c, http.StatusBadRequest, "Incorrect password")
		return
	}
	if err := models.ValidatePassword(next); err != nil {
		valueError(c, err, "query", "new_password")
		return
	}

	if err := s.store.setPassword(u.Email, next); err != nil {
		abortStoreError(c, err, "User")
		return
	}
	c.JSON(http.StatusOK, models.Message{Message: "Password updated successfully"})
}
