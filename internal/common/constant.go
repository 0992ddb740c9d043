// Package common contains shared constants and sentinel errors used across
// Achievo components.
package common

const (
	// AccessTokenKey is the metadata key under which the session credential
	// is persisted on disk.
	AccessTokenKey = "access_token"

	// AuthorizationHeader carries the bearer credential on outbound requests.
	AuthorizationHeader = "Authorization"

	// BearerScheme prefixes the token inside AuthorizationHeader.
	BearerScheme = "Bearer"

	// RequestIDHeader correlates a client request with backend logs.
	RequestIDHeader = "X-Request-ID"

	// DefaultAPIBaseURL is used when nothing else configures the backend origin.
	DefaultAPIBaseURL = "http://localhost:8000"

	// ProductionAPIBaseURL is the backend serving the hosted deployment.
	ProductionAPIBaseURL = "https://achievement-production.up.railway.app"
)
