// Package errs defines the error classes the engine exposes to its callers.
// Configuration and upstream failures abort the whole operation; everything
// else (scoring, per-item enrichment) is absorbed locally and never surfaces
// through this package.
package errs

import (
	"errors"
	"fmt"
)

// ConfigurationError signals a missing required credential or setting.
// It is fatal and never retried.
type ConfigurationError struct {
	Key string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("missing required configuration: %s", e.Key)
}

// UpstreamError signals that the external recruitment source returned a
// non-success status or a rejected/malformed response. The raw body is kept
// so the boundary layer can log it.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("upstream request failed: status %d: %s", e.Status, e.Body)
	}
	return fmt.Sprintf("upstream request failed: status %d", e.Status)
}

// IsConfiguration reports whether err is (or wraps) a ConfigurationError.
func IsConfiguration(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// IsUpstream reports whether err is (or wraps) an UpstreamError.
func IsUpstream(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue)
}
