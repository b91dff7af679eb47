package common

// Session is a live automation session issued by the driver process.
//
// Sessions do not outlive the process that issued them: if the supervised
// process restarts, commands against an existing session fail at the
// transport and the caller must negotiate a new one.
type Session struct {
	// ID is the opaque identifier issued by the driver process.
	ID string

	// URL is the address commands for this session are routed to,
	// i.e. the supervisor's base URL plus the session path segment.
	URL string

	// Driver names the backend that negotiated the session.
	Driver string
}

// NewSession builds a session handle from the supervisor's base URL and the
// identifier issued by the driver process.
func NewSession(driver, baseURL, id string) *Session {
	return &Session{
		ID:     id,
		URL:    baseURL + "session/" + id,
		Driver: driver,
	}
}
