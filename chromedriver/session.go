package chromedriver

import (
	"context"

	"github.com/browserkit/webdriver/common"
	"github.com/browserkit/webdriver/trace"
	"github.com/browserkit/webdriver/wire"
)

// CreateSessionFunc negotiates a new session against the driver process
// listening at baseURL and returns the issued session identifier. It is
// injectable so tests can negotiate without a live process.
type CreateSessionFunc func(ctx context.Context, baseURL string, caps Capabilities) (string, error)

// DeleteSessionFunc ends the given session. Injectable, like
// CreateSessionFunc.
type DeleteSessionFunc func(ctx context.Context, sess *common.Session) error

func createSessionOver(client wire.Client) CreateSessionFunc {
	return func(ctx context.Context, baseURL string, caps Capabilities) (string, error) {
		resp, err := client.Post(ctx, baseURL+"session", caps)
		if err != nil {
			return "", err
		}
		if resp.SessionID == "" {
			return "", &wire.Error{
				URL:     baseURL + "session",
				Message: "driver answered without a session identifier",
			}
		}
		return resp.SessionID, nil
	}
}

func deleteSessionOver(client wire.Client) DeleteSessionFunc {
	return func(ctx context.Context, sess *common.Session) error {
		_, err := client.Delete(ctx, sess.URL)
		return err
	}
}

// StartSession negotiates a new automation session: it waits for the
// supervised process to be reachable, builds the capabilities payload from
// the launch options and the caller's metadata-augmented user agent, and
// issues the create-session call. Transport errors are propagated
// unchanged; retries, if any, belong to the transport.
func (d *Driver) StartSession(ctx context.Context, opts common.SessionOptions) (_ *common.Session, rerr error) {
	ctx, span := trace.Session(ctx, "session.start", d.Name())
	defer func() { trace.EndWithError(span, rerr) }()

	baseURL, err := d.supervisor.BaseURL(ctx)
	if err != nil {
		return nil, err
	}

	caps := buildCapabilities(
		d.opts.IsHeadless(),
		mergeMetadata(d.opts.UserAgent, opts.Metadata),
	)

	id, err := d.createSession(ctx, baseURL, caps)
	if err != nil {
		return nil, err
	}
	trace.SessionID(span, id)

	sess := common.NewSession(d.Name(), baseURL, id)
	d.logger.Debugf("Driver:StartSession", "negotiated session %s at %s", sess.ID, sess.URL)

	return sess, nil
}

// EndSession ends the session on a best-effort basis. A failing
// delete-session call is logged and recorded on the span but never
// surfaced: ending a session always reports success. This can mask genuine
// teardown failures; watch the Driver:EndSession log category if leaked
// sessions are suspected.
func (d *Driver) EndSession(ctx context.Context, sess *common.Session) error {
	if sess == nil {
		return nil
	}

	ctx, span := trace.Session(ctx, "session.end", d.Name())
	defer span.End()
	trace.SessionID(span, sess.ID)

	if err := d.deleteSession(common.WithSessionID(ctx, sess.ID), sess); err != nil {
		d.logger.Warnf("Driver:EndSession",
			"discarding delete-session failure for %s: %v", sess.ID, err)
		span.RecordError(err)
	}

	return nil
}
