package core

// Exit codes for the application.
// Degraded runs (no text, sentinel summary, no numeric data) still exit with
// ExitCodeSuccess.
const (
	// ExitCodeSuccess indicates the run completed, possibly degraded (exit code 0)
	ExitCodeSuccess = 0

	// ExitCodeError indicates a fatal error: client construction, configuration,
	// or a failed output write (exit code 1)
	ExitCodeError = 1

	// ExitCodeSIGINT indicates termination due to SIGINT (Ctrl+C)
	// Convention: 128 + 2 (SIGINT) = 130
	ExitCodeSIGINT = 130
)

// ExitCodeName returns a human-readable name for an exit code.
func ExitCodeName(code int) string {
	switch code {
	case ExitCodeSuccess:
		return "success"
	case ExitCodeError:
		return "error"
	case ExitCodeSIGINT:
		return "interrupted (SIGINT)"
	default:
		return "unknown"
	}
}
