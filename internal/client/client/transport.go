package client

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/achievo/internal/client/session"
	"github.com/dmitrijs2005/achievo/internal/common"
	"github.com/dmitrijs2005/achievo/internal/logging"
)

// authTransport decorates every outgoing request with the stored bearer
// token and reports 401 responses to onUnauthorized.
type authTransport struct {
	base           http.RoundTripper
	tokens         session.TokenStore
	logger         logging.Logger
	onUnauthorized func(req *http.Request)
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	r := req.Clone(ctx)

	reqID := r.Header.Get(common.RequestIDHeader)
	if reqID == "" {
		reqID = uuid.NewString()
		r.Header.Set(common.RequestIDHeader, reqID)
	}
	if r.Header.Get("Accept") == "" {
		r.Header.Set("Accept", "application/json")
	}

	token, err := t.tokens.Token(ctx)
	if err != nil {
		// A broken token store must not block requests; send anonymously.
		t.logger.Warn(ctx, "token read failed", "error", err)
		token = ""
	}
	if token != "" {
		r.Header.Set(common.AuthorizationHeader, common.BearerScheme+" "+token)
	} else {
		r.Header.Del(common.AuthorizationHeader)
	}

	t.logger.Debug(ctx, "api request",
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", reqID,
		"token_present", token != "",
	)

	resp, err := t.base.RoundTrip(r)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized && t.onUnauthorized != nil {
		t.onUnauthorized(r)
	}
	return resp, nil
}
