package browser

import (
	"fmt"
	"time"
)

// AuthenticationError indicates the site rejected the supplied credentials.
// Message carries the site-reported failure text when one was found.
type AuthenticationError struct {
	Username string
	Message  string
}

func (e *AuthenticationError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("authentication failed for %q: %s", e.Username, e.Message)
	}
	return fmt.Sprintf("authentication failed for %q", e.Username)
}

// SessionTimeoutError indicates neither a success nor an error marker appeared
// within the deadline, so the session state is unknown.
type SessionTimeoutError struct {
	Stage   string
	Timeout time.Duration
}

func (e *SessionTimeoutError) Error() string {
	return fmt.Sprintf("session timed out during %s after %s", e.Stage, e.Timeout)
}

// ElementNotFoundError indicates a bounded element lookup expired. The locator
// is always included so failures can be attributed to a specific wait.
type ElementNotFoundError struct {
	Locator string
	Timeout time.Duration
}

func (e *ElementNotFoundError) Error() string {
	return fmt.Sprintf("element %q not found within %s", e.Locator, e.Timeout)
}
