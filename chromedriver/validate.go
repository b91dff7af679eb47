package chromedriver

import (
	"os/exec"
	"strconv"
	"strings"

	"github.com/browserkit/webdriver/common"
)

const (
	binaryName      = "chromedriver"
	versionPrefix   = "ChromeDriver"
	majorVersion    = "2"
	minMinorVersion = 30
)

type versionInfo struct {
	minor int
	patch int
}

// validator checks that a usable chromedriver binary is installed. The
// lookup and version-query calls are injectable so tests never touch the
// host system.
type validator struct {
	lookPath     func(file string) (string, error)
	queryVersion func(path string) (string, error)
}

func newValidator() *validator {
	return &validator{
		lookPath:     exec.LookPath,
		queryVersion: queryVersion,
	}
}

func queryVersion(path string) (string, error) {
	out, err := exec.Command(path, "--version").Output() //nolint:gosec
	return string(out), err
}

// validate locates the driver binary on the search path and gates on the
// minimum supported version. It returns the resolved binary path. No
// process is spawned when validation fails.
func (v *validator) validate() (string, error) {
	path, err := v.lookPath(binaryName)
	if err != nil {
		return "", common.NewDependencyError(
			"%s was not found on the search path; install it and make sure it is discoverable",
			binaryName)
	}

	out, err := v.queryVersion(path)
	if err != nil {
		return "", common.NewDependencyError("querying %s version: %v", binaryName, err)
	}

	info, err := parseVersion(out)
	if err != nil {
		return "", common.NewDependencyError("parsing %s version output %q: %v", binaryName, strings.TrimSpace(out), err)
	}
	if info.minor < minMinorVersion {
		return "", common.NewDependencyError(
			"%s %s.%d.%d is too old; %s.%d or newer is required",
			versionPrefix, majorVersion, info.minor, info.patch, majorVersion, minMinorVersion)
	}

	return path, nil
}

// parseVersion extracts the minor and patch versions from output shaped
// like "ChromeDriver 2.35.1 (abc123)". Anything else is a parse error;
// an unparseable version string must never lead to a spawned process.
func parseVersion(out string) (versionInfo, error) {
	fields := strings.Fields(strings.TrimSpace(out))
	if len(fields) < 3 {
		return versionInfo{}, errMalformed("expected at least 3 fields, got " + strconv.Itoa(len(fields)))
	}
	if fields[0] != versionPrefix {
		return versionInfo{}, errMalformed("unexpected driver name " + strconv.Quote(fields[0]))
	}
	if !strings.HasPrefix(fields[2], "(") || !strings.HasSuffix(fields[len(fields)-1], ")") {
		return versionInfo{}, errMalformed("missing build annotation")
	}

	parts := strings.Split(fields[1], ".")
	if len(parts) != 3 {
		return versionInfo{}, errMalformed("expected MAJOR.MINOR.PATCH, got " + strconv.Quote(fields[1]))
	}
	if parts[0] != majorVersion {
		return versionInfo{}, errMalformed("unsupported major version " + strconv.Quote(parts[0]))
	}

	minor, err := strconv.Atoi(parts[1])
	if err != nil {
		return versionInfo{}, errMalformed("minor version " + strconv.Quote(parts[1]) + " is not an integer")
	}
	patch, err := strconv.Atoi(parts[2])
	if err != nil {
		return versionInfo{}, errMalformed("patch version " + strconv.Quote(parts[2]) + " is not an integer")
	}

	return versionInfo{minor: minor, patch: patch}, nil
}

type errMalformed string

func (e errMalformed) Error() string {
	return "malformed version string: " + string(e)
}
