package chromedriver

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/browserkit/webdriver/common"
)

func TestParseVersion(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		out    string
		assert func(t *testing.T, info versionInfo, err error)
	}{
		{
			name: "ok/simple",
			out:  "ChromeDriver 2.35.1 (abcdef)",
			assert: func(t *testing.T, info versionInfo, err error) {
				t.Helper()
				require.NoError(t, err)
				assert.Equal(t, versionInfo{minor: 35, patch: 1}, info)
			},
		},
		{
			name: "ok/trailing_newline_and_long_annotation",
			out:  "ChromeDriver 2.46.628388 (4a34a70827ac54148e092aafb70504c4ea7ae926)\n",
			assert: func(t *testing.T, info versionInfo, err error) {
				t.Helper()
				require.NoError(t, err)
				assert.Equal(t, versionInfo{minor: 46, patch: 628388}, info)
			},
		},
		{
			name: "err/missing_annotation",
			out:  "ChromeDriver 2.35.1",
			assert: func(t *testing.T, _ versionInfo, err error) {
				t.Helper()
				require.Error(t, err)
			},
		},
		{
			name: "err/wrong_name",
			out:  "GeckoDriver 2.35.1 (abcdef)",
			assert: func(t *testing.T, _ versionInfo, err error) {
				t.Helper()
				require.Error(t, err)
			},
		},
		{
			name: "err/wrong_major",
			out:  "ChromeDriver 73.0.3683 (abcdef)",
			assert: func(t *testing.T, _ versionInfo, err error) {
				t.Helper()
				require.Error(t, err)
			},
		},
		{
			name: "err/two_version_tokens",
			out:  "ChromeDriver 2.35 (abcdef)",
			assert: func(t *testing.T, _ versionInfo, err error) {
				t.Helper()
				require.Error(t, err)
			},
		},
		{
			name: "err/non_integer_minor",
			out:  "ChromeDriver 2.x.1 (abcdef)",
			assert: func(t *testing.T, _ versionInfo, err error) {
				t.Helper()
				require.Error(t, err)
			},
		},
		{
			name: "err/empty",
			out:  "",
			assert: func(t *testing.T, _ versionInfo, err error) {
				t.Helper()
				require.Error(t, err)
			},
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			info, err := parseVersion(tc.out)
			tc.assert(t, info, err)
		})
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	t.Run("ok/new_enough", func(t *testing.T) {
		t.Parallel()

		v := &validator{
			lookPath: func(string) (string, error) { return "/usr/bin/chromedriver", nil },
			queryVersion: func(string) (string, error) {
				return "ChromeDriver 2.30.0 (abcdef)", nil
			},
		}
		path, err := v.validate()
		require.NoError(t, err)
		assert.Equal(t, "/usr/bin/chromedriver", path)
	})

	t.Run("err/too_old", func(t *testing.T) {
		t.Parallel()

		v := &validator{
			lookPath: func(string) (string, error) { return "/usr/bin/chromedriver", nil },
			queryVersion: func(string) (string, error) {
				return "ChromeDriver 2.29.0 (abcdef)", nil
			},
		}
		_, err := v.validate()
		var depErr *common.DependencyError
		require.ErrorAs(t, err, &depErr)
		assert.Contains(t, depErr.Reason, "2.30 or newer is required")
	})

	t.Run("err/binary_missing", func(t *testing.T) {
		t.Parallel()

		queried := false
		v := &validator{
			lookPath: func(string) (string, error) { return "", errors.New("not found") },
			queryVersion: func(string) (string, error) {
				queried = true
				return "", nil
			},
		}
		_, err := v.validate()
		var depErr *common.DependencyError
		require.ErrorAs(t, err, &depErr)
		assert.Contains(t, depErr.Reason, "not found on the search path")
		assert.False(t, queried, "version must not be queried for a missing binary")
	})

	t.Run("err/unparseable_version_is_fatal", func(t *testing.T) {
		t.Parallel()

		v := &validator{
			lookPath: func(string) (string, error) { return "/usr/bin/chromedriver", nil },
			queryVersion: func(string) (string, error) {
				return "weird output", nil
			},
		}
		_, err := v.validate()
		var depErr *common.DependencyError
		require.ErrorAs(t, err, &depErr)
		assert.Contains(t, depErr.Reason, "parsing")
	})

	t.Run("err/version_query_failure", func(t *testing.T) {
		t.Parallel()

		v := &validator{
			lookPath:     func(string) (string, error) { return "/usr/bin/chromedriver", nil },
			queryVersion: func(string) (string, error) { return "", errors.New("exec format error") },
		}
		_, err := v.validate()
		var depErr *common.DependencyError
		require.ErrorAs(t, err, &depErr)
	})
}
