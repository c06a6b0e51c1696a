package oauth2

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrStateMismatch means the callback carried an absent or mismatched
	// CSRF state value. The callback must be rejected.
	ErrStateMismatch = errors.New("oauth2: state mismatch")

	ErrProviderNotFound = errors.New("oauth2: provider not found")
)

// ConfigurationError reports blank or missing provider settings.
// It is fatal at startup.
type ConfigurationError struct {
	Provider string
	Missing  []string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("[%s] Missing configuration: %s", e.Provider, strings.Join(e.Missing, ", "))
}

// InvalidResponseFormatError means the provider's token response could not
// be parsed into a TokenInfo.
type InvalidResponseFormatError struct {
	Provider string
}

func (e *InvalidResponseFormatError) Error() string {
	return fmt.Sprintf("[%s] Invalid response format for accessToken", e.Provider)
}

// SpecifiedProfileError carries an error object the provider itself
// reported in the profile response.
type SpecifiedProfileError struct {
	Provider string
	Type     string
	Message  string
}

func (e *SpecifiedProfileError) Error() string {
	return fmt.Sprintf("[%s] Error retrieving profile information. Error type: %s, message: %s",
		e.Provider, e.Type, e.Message)
}

// UnspecifiedProfileError wraps any other profile-fetch failure: malformed
// JSON, a missing required field, an unexpected status.
type UnspecifiedProfileError struct {
	Provider string
	Cause    error
}

func (e *UnspecifiedProfileError) Error() string {
	return fmt.Sprintf("[%s] Error retrieving profile information", e.Provider)
}

func (e *UnspecifiedProfileError) Unwrap() error {
	return e.Cause
}

// NetworkError wraps a transport-level failure or timeout from the HTTP
// client, distinguishable from provider-level failures.
type NetworkError struct {
	Provider string
	Cause    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("[%s] Network error: %v", e.Provider, e.Cause)
}

func (e *NetworkError) Unwrap() error {
	return e.Cause
}
