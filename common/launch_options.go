package common

import (
	"fmt"
	"time"

	"gopkg.in/guregu/null.v3"
)

// Default values for launch options.
const (
	DefaultReadyTimeout = 10 * time.Second
)

// LaunchOptions stores driver launch options.
type LaunchOptions struct {
	// Headless controls whether the browser runs without a visible UI.
	// Left unset it defaults to true.
	Headless null.Bool

	// UserAgent overrides the browser user agent for sessions started
	// against this driver. Empty means the browser default.
	UserAgent string

	// ReadyTimeout bounds how long BaseURL waits for the driver process
	// to accept requests after a spawn or a restart.
	ReadyTimeout time.Duration
}

// NewLaunchOptions creates a default set of launch options.
func NewLaunchOptions() LaunchOptions {
	return LaunchOptions{
		ReadyTimeout: DefaultReadyTimeout,
	}
}

// IsHeadless resolves the tri-state headless option.
func (l LaunchOptions) IsHeadless() bool {
	if !l.Headless.Valid {
		return true
	}
	return l.Headless.Bool
}

// Validate validates the launch options.
func (l LaunchOptions) Validate() error {
	if l.ReadyTimeout < 0 {
		return fmt.Errorf("invalid ready timeout %q: precondition 0 <= TIMEOUT failed", l.ReadyTimeout)
	}
	return nil
}

// SessionOptions stores per-session options.
type SessionOptions struct {
	// Metadata is merged into the user agent string sent with the
	// capabilities payload, so that sessions can be told apart on the
	// receiving end.
	Metadata map[string]string
}
