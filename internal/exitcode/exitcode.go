// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, invalid form values, unreadable page).
	UserError = 1

	// AuthError indicates an auth/config error, including 401/403 from the server.
	AuthError = 2

	// BackendError indicates a network error, a non-2xx status or a malformed response.
	BackendError = 3
)
