// Package cli provides the interactive Achievo command-line client.
//
// It wires configuration, the local token database, the request gateway,
// the session store and the account and content services behind a
// line-oriented REPL. On start the previous session is restored from the
// stored token; a token the backend rejects is dropped.
//
// Commands:
//   - register, register-otp, login, forgot, logout, whoami
//   - dashboard, analytics, timeline [year]
//   - ach, cat, skills, goals with list / show / add / edit / delete
//   - public, profile [edit], passwd
//   - admin ... (administrators only)
//
// Whenever the backend answers 401 the session ends and the REPL asks for
// a new login before the next prompt.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
