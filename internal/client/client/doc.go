// Package client is the request gateway between the Achievo CLI and the
// backend REST API.
//
// # Overview
//
// HTTPClient is the single choke point for backend calls:
//  1. Every request passes through an auth transport that attaches the
//     stored access token as "Authorization: Bearer <token>" when one is
//     present. Requests without a token are sent anonymously.
//  2. Any 401 response removes the stored token, publishes an
//     UnauthorizedEvent to subscribers and navigates to RouteLogin. The
//     error is still returned to the caller.
//  3. Typed methods cover the auth, resource and admin routes.
//
// There are no retries and no request queueing.
//
// # Error Handling
//
// Non-2xx responses become *APIError, which matches ErrUnauthorized,
// ErrForbidden, ErrNotFound, ErrValidation or ErrServer with errors.Is.
// Transport failures wrap ErrUnavailable.
//
// The package also bootstraps the local SQLite database (InitDatabase,
// RunMigrations) in which the token is persisted.
package client
