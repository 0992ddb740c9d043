package fakeapi

import (
	"errors"
	"net/http"
	"strconv"
	"unicode"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/achievo/internal/common"
)

// validationIssue mirrors one entry of a FastAPI 422 detail list.
type validationIssue struct {
	Loc  []any  `json:"loc"`
	Msg  string `json:"msg"`
	Type string `json:"type"`
}

func abortDetail(c *gin.Context, status int, detail string) {
	c.AbortWithStatusJSON(status, gin.H{"detail": detail})
}

func unauthorized(c *gin.Context, detail string) {
	c.Header("WWW-Authenticate", "Bearer")
	abortDetail(c, http.StatusUnauthorized, detail)
}

func abortValidation(c *gin.Context, typ, msg string, loc ...any) {
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{
		"detail": []validationIssue{{Loc: loc, Msg: msg, Type: typ}},
	})
}

// valueError reports err the way a failed field validator does.
func valueError(c *gin.Context, err error, loc ...any) {
	abortValidation(c, "value_error", "Value error, "+capitalize(err.Error()), loc...)
}

// abortStoreError maps store errors onto HTTP responses. what names the
// resource in not-found details, e.g. "Goal".
func abortStoreError(c *gin.Context, err error, what string) {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		abortDetail(c, http.StatusNotFound, what+" not found")
	case errors.Is(err, errForbidden):
		abortDetail(c, http.StatusForbidden, "Not enough permissions")
	default:
		_ = c.Error(err)
		abortDetail(c, http.StatusInternalServerError, "Internal Server Error")
	}
}

// bindJSON decodes the body into v or answers 422.
func bindJSON(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		abortValidation(c, "json_invalid", err.Error(), "body")
		return false
	}
	return true
}

// queryInt reads an optional integer query parameter or answers 422.
func queryInt(c *gin.Context, name string, def int) (int, bool) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return def, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		abortValidation(c, "int_parsing", "Input should be a valid integer", "query", name)
		return 0, false
	}
	return n, true
}

// requireQuery reads a mandatory query parameter or answers 422.
func requireQuery(c *gin.Context, name string) (string, bool) {
	v, ok := c.GetQuery(name)
	if !ok {
		abortValidation(c, "missing", "Field required", "query", name)
		return "", false
	}
	return v, true
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		abortValidation(c, "int_parsing", "Input should be a valid integer", "path", "id")
		return 0, false
	}
	return id, true
}

func paging(c *gin.Context) (skip, limit int, ok bool) {
	if skip, ok = queryInt(c, "skip", 0); !ok {
		return 0, 0, false
	}
	if limit, ok = queryInt(c, "limit", 100); !ok {
		return 0, 0, false
	}
	return skip, limit, true
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
