// Package api contains the public interface every concrete driver backend
// must satisfy.
package api

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/browserkit/webdriver/common"
)

// ErrNotSupported is returned by operations a backend does not implement.
// Callers can branch on it with errors.Is instead of treating the
// operation's absence as a failure.
var ErrNotSupported = errors.New("operation not supported by this driver")

// Element refers to a DOM element located within a session.
type Element struct {
	ID string
}

// Cookie represents a browser cookie.
type Cookie struct {
	Name     string `json:"name"`
	Value    string `json:"value"`
	Domain   string `json:"domain,omitempty"`
	Path     string `json:"path,omitempty"`
	Secure   bool   `json:"secure,omitempty"`
	HTTPOnly bool   `json:"httpOnly,omitempty"`
	Expiry   int64  `json:"expiry,omitempty"`
}

// WindowSize holds browser window dimensions in pixels.
type WindowSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Driver is the capability contract of a driver backend. A backend
// supervises its own driver binary, negotiates sessions with it and routes
// every subsequent command over the negotiated session.
type Driver interface {
	// Name identifies the backend, e.g. "chromedriver".
	Name() string

	// Validate confirms the driver binary is installed and meets the
	// minimum supported version. It must be called before Start.
	Validate() error

	// Start spawns the supervised driver process; Stop terminates it and
	// invalidates every session it issued.
	Start() error
	Stop()

	// StartSession negotiates a new automation session. EndSession ends
	// it on a best-effort basis and always reports success.
	StartSession(ctx context.Context, opts common.SessionOptions) (*common.Session, error)
	EndSession(ctx context.Context, sess *common.Session) error

	URL(ctx context.Context, sess *common.Session) (string, error)
	Title(ctx context.Context, sess *common.Session) (string, error)
	Source(ctx context.Context, sess *common.Session) (string, error)
	Cookies(ctx context.Context, sess *common.Session) ([]Cookie, error)
	Navigate(ctx context.Context, sess *common.Session, url string) error
	SetCookie(ctx context.Context, sess *common.Session, cookie Cookie) error

	FindElements(ctx context.Context, sess *common.Session, q Query) ([]Element, error)
	Click(ctx context.Context, sess *common.Session, el Element) error
	Clear(ctx context.Context, sess *common.Session, el Element) error
	Attribute(ctx context.Context, sess *common.Session, el Element, name string) (string, error)
	Text(ctx context.Context, sess *common.Session, el Element) (string, error)
	SetValue(ctx context.Context, sess *common.Session, el Element, value string) error
	Displayed(ctx context.Context, sess *common.Session, el Element) (bool, error)
	Selected(ctx context.Context, sess *common.Session, el Element) (bool, error)

	ExecuteScript(ctx context.Context, sess *common.Session, script string, args []any) (json.RawMessage, error)
	SendKeys(ctx context.Context, sess *common.Session, keys string) error
	Screenshot(ctx context.Context, sess *common.Session) ([]byte, error)

	// Dialog handling; backends without dialog support return
	// ErrNotSupported.
	AcceptDialog(ctx context.Context, sess *common.Session) error
	DismissDialog(ctx context.Context, sess *common.Session) error

	WindowSize(ctx context.Context, sess *common.Session) (WindowSize, error)
	SetWindowSize(ctx context.Context, sess *common.Session, size WindowSize) error
}
