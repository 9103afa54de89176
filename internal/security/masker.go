// Package security masks secrets out of hook command output before it is
// captured into a hook.Result or printed, since hook commands routinely
// interpolate {var} values (and inherit the ambient environment) that may
// carry tokens.
package security

import (
	"io"
	"os"
	"sync"

	"github.com/driftship/driftship/internal/errors"
)

var (
	enabled  bool
	globalMu sync.RWMutex
)

// Enable turns on secret masking globally.
func Enable() {
	globalMu.Lock()
	defer globalMu.Unlock()
	enabled = true
}

// Disable turns off secret masking globally.
func Disable() {
	globalMu.Lock()
	defer globalMu.Unlock()
	enabled = false
}

// IsEnabled reports whether secret masking is currently enabled.
func IsEnabled() bool {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return enabled
}

// EnableInCI turns on masking automatically when a recognized CI
// environment variable is set, so hook output is redacted in CI logs by
// default without requiring a config flag.
func EnableInCI() {
	ciEnvVars := []string{
		"CI",
		"GITHUB_ACTIONS",
		"GITLAB_CI",
		"CIRCLECI",
		"JENKINS_URL",
		"TRAVIS",
		"BITBUCKET_PIPELINES",
		"AZURE_PIPELINES",
		"TEAMCITY_VERSION",
		"BUILDKITE",
	}

	for _, env := range ciEnvVars {
		if os.Getenv(env) != "" {
			Enable()
			return
		}
	}
}

// Mask redacts sensitive data from a string if masking is enabled. If
// masking is disabled, returns the original string unchanged.
func Mask(s string) string {
	if !IsEnabled() {
		return s
	}
	return errors.RedactSensitive(s)
}

// MaskBytes redacts sensitive data from a byte slice if masking is
// enabled. If masking is disabled, returns the original bytes unchanged.
func MaskBytes(b []byte) []byte {
	if !IsEnabled() {
		return b
	}
	return []byte(errors.RedactSensitive(string(b)))
}

// MaskedWriter wraps an io.Writer, masking sensitive data before it
// reaches the underlying writer. internal/hook uses it as the stdout/
// stderr sink for every command it launches, so a hook command's captured
// output is redacted at the point it's buffered rather than after the
// fact.
type MaskedWriter struct {
	w io.Writer
}

// NewMaskedWriter wraps w so every Write is masked first.
func NewMaskedWriter(w io.Writer) *MaskedWriter {
	return &MaskedWriter{w: w}
}

// Write implements io.Writer, masking sensitive data before writing.
func (mw *MaskedWriter) Write(p []byte) (n int, err error) {
	masked := MaskBytes(p)
	if _, err := mw.w.Write(masked); err != nil {
		return 0, err
	}
	// Report the original length so callers (notably exec.Cmd, which
	// treats a short write as an error) see an unbroken io.Writer contract.
	return len(p), nil
}
