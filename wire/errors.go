package wire

import "fmt"

// Wire-protocol status codes this module branches on.
const (
	StatusNoSuchSession = 6
)

// Error is a command failure reported by the driver process.
type Error struct {
	URL     string
	Status  int
	Message string
}

// Error satisfies the builtin error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("wire error (status %d) on %s: %s", e.Status, e.URL, e.Message)
}

// IsNoSuchSession reports whether err is the driver telling us the session
// no longer exists, typically because the process issuing it has restarted.
func IsNoSuchSession(err error) bool {
	we, ok := err.(*Error)
	return ok && we.Status == StatusNoSuchSession
}
