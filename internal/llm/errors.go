package llm

import "fmt"

// ConfigurationError reports an unrecognized provider selection. It is not
// retried against the same configuration.
type ConfigurationError struct {
	Provider string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("provider not supported: %q", e.Provider)
}

// UpstreamError reports a non-success status from the completion provider.
// Body carries the provider response verbatim for caller-side diagnostics.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream status %d: %s", e.Status, e.Body)
}

// InvalidResponseError reports provider content that is not valid JSON even
// after the substring repair attempt. Raw carries the original text.
type InvalidResponseError struct {
	Raw string
}

func (e *InvalidResponseError) Error() string {
	return fmt.Sprintf("invalid JSON from model: %s", e.Raw)
}

// ValidationError reports a structurally malformed result, such as a JSON
// array or scalar where an object was required.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "malformed completion result: " + e.Reason
}
