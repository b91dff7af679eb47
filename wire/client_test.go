package wire

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/browserkit/webdriver/log"
)

func TestHTTPClient(t *testing.T) {
	t.Parallel()

	t.Run("ok/post_session", func(t *testing.T) {
		t.Parallel()

		var gotBody map[string]any
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/session", r.URL.Path)
			assert.Contains(t, r.Header.Get("Content-Type"), "application/json")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"sessionId":"abc123","status":0,"value":{}}`))
		}))
		t.Cleanup(srv.Close)

		c := NewHTTPClient(0, log.NewNullLogger())
		resp, err := c.Post(context.Background(), srv.URL+"/session",
			map[string]string{"platform": "ANY"})
		require.NoError(t, err)
		assert.Equal(t, "abc123", resp.SessionID)
		assert.Equal(t, map[string]any{"platform": "ANY"}, gotBody)
	})

	t.Run("ok/delete", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			_, _ = w.Write([]byte(`{"sessionId":"abc123","status":0,"value":null}`))
		}))
		t.Cleanup(srv.Close)

		c := NewHTTPClient(0, log.NewNullLogger())
		_, err := c.Delete(context.Background(), srv.URL+"/session/abc123")
		require.NoError(t, err)
	})

	t.Run("err/envelope_status", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			// Legacy servers report command failures with HTTP 200
			// and a non-zero envelope status.
			_, _ = w.Write([]byte(`{"status":6,"value":{"message":"no such session"}}`))
		}))
		t.Cleanup(srv.Close)

		c := NewHTTPClient(0, log.NewNullLogger())
		_, err := c.Get(context.Background(), srv.URL+"/session/gone/title")
		var werr *Error
		require.ErrorAs(t, err, &werr)
		assert.Equal(t, StatusNoSuchSession, werr.Status)
		assert.Equal(t, "no such session", werr.Message)
		assert.True(t, IsNoSuchSession(err))
	})

	t.Run("err/http_status", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		t.Cleanup(srv.Close)

		c := NewHTTPClient(0, log.NewNullLogger())
		_, err := c.Get(context.Background(), srv.URL+"/nope")
		var werr *Error
		require.ErrorAs(t, err, &werr)
		assert.Equal(t, http.StatusNotFound, werr.Status)
	})

	t.Run("err/connection_refused", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		srv.Close()

		c := NewHTTPClient(0, log.NewNullLogger())
		_, err := c.Get(context.Background(), srv.URL+"/status")
		require.Error(t, err)
	})

	t.Run("err/undecodable_envelope", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`<html>not json</html>`))
		}))
		t.Cleanup(srv.Close)

		c := NewHTTPClient(0, log.NewNullLogger())
		_, err := c.Get(context.Background(), srv.URL+"/status")
		require.Error(t, err)
	})
}

func TestResponseDecodeValue(t *testing.T) {
	t.Parallel()

	t.Run("ok/string", func(t *testing.T) {
		t.Parallel()

		r := &Response{Value: json.RawMessage(`"hello"`)}
		var s string
		require.NoError(t, r.DecodeValue(&s))
		assert.Equal(t, "hello", s)
	})

	t.Run("err/empty_value", func(t *testing.T) {
		t.Parallel()

		var s string
		require.Error(t, (&Response{}).DecodeValue(&s))
	})
}

func TestIsNoSuchSession(t *testing.T) {
	t.Parallel()

	assert.True(t, IsNoSuchSession(&Error{Status: StatusNoSuchSession}))
	assert.False(t, IsNoSuchSession(&Error{Status: 13}))
	assert.False(t, IsNoSuchSession(assert.AnError))
}
