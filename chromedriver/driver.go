// Package chromedriver implements the api.Driver contract on top of a
// supervised chromedriver process speaking the JSON wire protocol.
package chromedriver

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/browserkit/webdriver/api"
	"github.com/browserkit/webdriver/common"
	"github.com/browserkit/webdriver/log"
	"github.com/browserkit/webdriver/storage"
	"github.com/browserkit/webdriver/wire"
)

// Name identifies this backend.
const Name = "chromedriver"

// processSupervisor is the narrow supervision contract the driver needs:
// spawn the process, learn its address, tear it down.
type processSupervisor interface {
	Start() error
	Stop()
	BaseURL(ctx context.Context) (string, error)
}

// Driver supervises a chromedriver process and forwards automation
// commands to it over the wire protocol.
type Driver struct {
	opts   common.LaunchOptions
	logger *log.Logger
	client wire.Client

	validator  *validator
	binaryPath string
	supervisor processSupervisor

	createSession CreateSessionFunc
	deleteSession DeleteSessionFunc
}

var _ api.Driver = (*Driver)(nil)

// New creates a chromedriver backend with the default wire transport.
func New(opts common.LaunchOptions, logger *log.Logger) *Driver {
	client := wire.NewHTTPClient(0, logger)
	d := &Driver{
		opts:      opts,
		logger:    logger,
		client:    client,
		validator: newValidator(),
	}
	d.createSession = createSessionOver(client)
	d.deleteSession = deleteSessionOver(client)
	return d
}

// Name returns the backend name.
func (d *Driver) Name() string { return Name }

// Validate confirms a compatible chromedriver binary is discoverable. It
// must succeed before Start; an absent or outdated binary fails with a
// DependencyError and no process is spawned.
func (d *Driver) Validate() error {
	path, err := d.validator.validate()
	if err != nil {
		return err
	}
	d.binaryPath = path
	d.logger.Debugf("Driver:Validate", "using %s", path)
	return nil
}

// Start spawns the supervised driver process. A driver owns at most one
// supervisor; starting twice would orphan the first child with no handle
// left to stop it.
func (d *Driver) Start() error {
	if d.supervisor != nil {
		return &common.ProcessError{Op: "start", Err: fmt.Errorf("already started")}
	}
	if d.binaryPath == "" {
		if err := d.Validate(); err != nil {
			return err
		}
	}
	if err := d.opts.Validate(); err != nil {
		return err
	}

	d.supervisor = common.NewSupervisor(d.binaryPath, common.SupervisorOptions{
		ReadyTimeout: d.opts.ReadyTimeout,
	}, d.logger)

	return d.supervisor.Start()
}

// Stop terminates the driver process, invalidating every session it
// issued.
func (d *Driver) Stop() {
	if d.supervisor != nil {
		d.supervisor.Stop()
	}
}

// get issues a GET against a session-relative path and decodes the value.
func (d *Driver) get(ctx context.Context, sess *common.Session, path string, v any) error {
	resp, err := d.client.Get(common.WithSessionID(ctx, sess.ID), sess.URL+path)
	if err != nil {
		return err
	}
	return resp.DecodeValue(v)
}

// post issues a POST against a session-relative path, discarding the
// response value.
func (d *Driver) post(ctx context.Context, sess *common.Session, path string, body any) error {
	_, err := d.client.Post(common.WithSessionID(ctx, sess.ID), sess.URL+path, body)
	return err
}

// URL returns the current page URL.
func (d *Driver) URL(ctx context.Context, sess *common.Session) (string, error) {
	var u string
	err := d.get(ctx, sess, "/url", &u)
	return u, err
}

// Title returns the current page title.
func (d *Driver) Title(ctx context.Context, sess *common.Session) (string, error) {
	var t string
	err := d.get(ctx, sess, "/title", &t)
	return t, err
}

// Source returns the current page source.
func (d *Driver) Source(ctx context.Context, sess *common.Session) (string, error) {
	var s string
	err := d.get(ctx, sess, "/source", &s)
	return s, err
}

// Cookies returns the cookies visible to the current page.
func (d *Driver) Cookies(ctx context.Context, sess *common.Session) ([]api.Cookie, error) {
	var cookies []api.Cookie
	err := d.get(ctx, sess, "/cookie", &cookies)
	return cookies, err
}

// Navigate loads the given URL in the session.
func (d *Driver) Navigate(ctx context.Context, sess *common.Session, url string) error {
	return d.post(ctx, sess, "/url", map[string]string{"url": url})
}

// SetCookie adds a cookie to the session.
func (d *Driver) SetCookie(ctx context.Context, sess *common.Session, cookie api.Cookie) error {
	return d.post(ctx, sess, "/cookie", map[string]api.Cookie{"cookie": cookie})
}

// FindElements locates every element matching the compiled query.
func (d *Driver) FindElements(ctx context.Context, sess *common.Session, q api.Query) ([]api.Element, error) {
	resp, err := d.client.Post(common.WithSessionID(ctx, sess.ID), sess.URL+"/elements", q)
	if err != nil {
		return nil, err
	}

	var refs []struct {
		ID string `json:"ELEMENT"`
	}
	if err := resp.DecodeValue(&refs); err != nil {
		return nil, err
	}

	els := make([]api.Element, len(refs))
	for i, ref := range refs {
		els[i] = api.Element{ID: ref.ID}
	}
	return els, nil
}

// Click clicks the element.
func (d *Driver) Click(ctx context.Context, sess *common.Session, el api.Element) error {
	return d.post(ctx, sess, "/element/"+el.ID+"/click", nil)
}

// Clear clears the element's value.
func (d *Driver) Clear(ctx context.Context, sess *common.Session, el api.Element) error {
	return d.post(ctx, sess, "/element/"+el.ID+"/clear", nil)
}

// Attribute reads the named attribute; a missing attribute reads as the
// empty string.
func (d *Driver) Attribute(ctx context.Context, sess *common.Session, el api.Element, name string) (string, error) {
	var v *string
	if err := d.get(ctx, sess, "/element/"+el.ID+"/attribute/"+name, &v); err != nil {
		return "", err
	}
	if v == nil {
		return "", nil
	}
	return *v, nil
}

// Text returns the element's visible text.
func (d *Driver) Text(ctx context.Context, sess *common.Session, el api.Element) (string, error) {
	var t string
	err := d.get(ctx, sess, "/element/"+el.ID+"/text", &t)
	return t, err
}

// SetValue types the value into the element.
func (d *Driver) SetValue(ctx context.Context, sess *common.Session, el api.Element, value string) error {
	return d.post(ctx, sess, "/element/"+el.ID+"/value", map[string][]string{"value": {value}})
}

// Displayed reports whether the element is visible.
func (d *Driver) Displayed(ctx context.Context, sess *common.Session, el api.Element) (bool, error) {
	var v bool
	err := d.get(ctx, sess, "/element/"+el.ID+"/displayed", &v)
	return v, err
}

// Selected reports whether the element is selected.
func (d *Driver) Selected(ctx context.Context, sess *common.Session, el api.Element) (bool, error) {
	var v bool
	err := d.get(ctx, sess, "/element/"+el.ID+"/selected", &v)
	return v, err
}

// ExecuteScript runs the script in the page and returns its raw result.
func (d *Driver) ExecuteScript(ctx context.Context, sess *common.Session, script string, args []any) (json.RawMessage, error) {
	if args == nil {
		args = []any{}
	}
	resp, err := d.client.Post(common.WithSessionID(ctx, sess.ID), sess.URL+"/execute", map[string]any{
		"script": script,
		"args":   args,
	})
	if err != nil {
		return nil, err
	}
	return resp.Value, nil
}

// SendKeys sends key input to the active element. See the keys package for
// special-key codepoints.
func (d *Driver) SendKeys(ctx context.Context, sess *common.Session, keys string) error {
	return d.post(ctx, sess, "/keys", map[string][]string{"value": {keys}})
}

// Screenshot captures the current page as PNG bytes.
func (d *Driver) Screenshot(ctx context.Context, sess *common.Session) ([]byte, error) {
	var encoded string
	if err := d.get(ctx, sess, "/screenshot", &encoded); err != nil {
		return nil, err
	}
	png, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, &wire.Error{
			URL:     sess.URL + "/screenshot",
			Message: "undecodable screenshot payload: " + err.Error(),
		}
	}
	return png, nil
}

// SaveScreenshot captures the current page and hands it to the persister.
func (d *Driver) SaveScreenshot(ctx context.Context, sess *common.Session, p storage.ScreenshotPersister, path string) error {
	png, err := d.Screenshot(ctx, sess)
	if err != nil {
		return err
	}
	return p.Persist(ctx, path, png)
}

// AcceptDialog is not supported by this backend.
func (d *Driver) AcceptDialog(_ context.Context, _ *common.Session) error {
	return api.ErrNotSupported
}

// DismissDialog is not supported by this backend.
func (d *Driver) DismissDialog(_ context.Context, _ *common.Session) error {
	return api.ErrNotSupported
}

// WindowSize returns the current window dimensions.
func (d *Driver) WindowSize(ctx context.Context, sess *common.Session) (api.WindowSize, error) {
	var size api.WindowSize
	err := d.get(ctx, sess, "/window/current/size", &size)
	return size, err
}

// SetWindowSize resizes the current window.
func (d *Driver) SetWindowSize(ctx context.Context, sess *common.Session, size api.WindowSize) error {
	return d.post(ctx, sess, "/window/current/size", size)
}
