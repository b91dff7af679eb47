package chromedriver

import (
	"encoding/base64"
	"encoding/json"
)

// Capabilities is the payload sent when negotiating a new session. It is
// built fresh per session start and never mutated afterwards.
type Capabilities struct {
	JavascriptEnabled       bool          `json:"javascriptEnabled"`
	LoadImages              bool          `json:"loadImages"`
	Version                 string        `json:"version"`
	Rotatable               bool          `json:"rotatable"`
	TakesScreenshot         bool          `json:"takesScreenshot"`
	CSSSelectorsEnabled     bool          `json:"cssSelectorsEnabled"`
	NativeEvents            bool          `json:"nativeEvents"`
	Platform                string        `json:"platform"`
	UnhandledPromptBehavior string        `json:"unhandledPromptBehavior"`
	ChromeOptions           ChromeOptions `json:"chromeOptions"`
}

// ChromeOptions is the driver-specific options block.
type ChromeOptions struct {
	Args []string `json:"args"`
}

// buildCapabilities assembles the capabilities payload: the fixed baseline
// map plus the chrome argument list. It is pure; identical inputs always
// produce a structurally identical payload.
func buildCapabilities(headless bool, userAgent string) Capabilities {
	args := []string{
		"--no-sandbox",
		"window-size=1280,800",
		"--disable-gpu",
	}
	if headless {
		args = append(args, "--fullscreen", "--headless")
	}
	if userAgent != "" {
		args = append(args, "--user-agent="+userAgent)
	}

	return Capabilities{
		JavascriptEnabled:       false,
		LoadImages:              false,
		Version:                 "",
		Rotatable:               false,
		TakesScreenshot:         true,
		CSSSelectorsEnabled:     true,
		NativeEvents:            false,
		Platform:                "ANY",
		UnhandledPromptBehavior: "accept",
		ChromeOptions:           ChromeOptions{Args: args},
	}
}

// metadataMarker tags the metadata blob appended to the user agent so the
// receiving end can strip or parse it.
const metadataMarker = "BrowserKitMetadata"

// mergeMetadata appends the caller's session metadata to the user agent
// string as a base64 encoded JSON blob. JSON map encoding sorts keys, so
// the merge is deterministic.
func mergeMetadata(userAgent string, metadata map[string]string) string {
	if len(metadata) == 0 {
		return userAgent
	}

	buf, err := json.Marshal(metadata)
	if err != nil {
		// map[string]string cannot fail to encode.
		panic(err)
	}
	blob := metadataMarker + " (" + base64.StdEncoding.EncodeToString(buf) + ")"

	if userAgent == "" {
		return blob
	}
	return userAgent + " " + blob
}
