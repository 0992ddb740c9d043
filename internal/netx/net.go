// Package netx contains small URL helpers shared by the client and the
// local fake backend.
package netx

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrInvalidOrigin is returned when a value cannot serve as a backend origin.
var ErrInvalidOrigin = errors.New("invalid origin")

// NormalizeOrigin validates raw as an http(s) URL with a host and returns it
// without a trailing slash. Paths are kept so the backend may be mounted
// under a prefix; query strings and fragments are rejected.
func NormalizeOrigin(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("%w: empty", ErrInvalidOrigin)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidOrigin, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("%w: unsupported scheme %q", ErrInvalidOrigin, u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("%w: missing host in %q", ErrInvalidOrigin, raw)
	}
	if u.RawQuery != "" || u.Fragment != "" {
		return "", fmt.Errorf("%w: query or fragment in %q", ErrInvalidOrigin, raw)
	}

	u.Path = strings.TrimRight(u.Path, "/")
	u.RawPath = ""
	return u.String(), nil
}

// HostOf returns the lower-cased host name (without port) of raw, which may
// be either a bare host ("app.example.com:3000") or a full URL.
func HostOf(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if strings.Contains(raw, "://") {
		if u, err := url.Parse(raw); err == nil {
			return strings.ToLower(u.Hostname())
		}
	}
	if u, err := url.Parse("//" + raw); err == nil {
		return strings.ToLower(u.Hostname())
	}
	return strings.ToLower(raw)
}
