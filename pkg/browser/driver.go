package browser

import (
	"context"
	"time"
)

// Driver launches browser sessions. The production implementation wraps
// Playwright; tests substitute an in-memory fake so the upload workflow can be
// exercised without a real browser.
type Driver interface {
	// Open launches a new browser process and returns an authenticatable
	// session. Every successful Open must be balanced by a Close on the
	// returned session.
	Open(ctx context.Context, opts OpenOptions) (Session, error)

	// Stop releases the driver's own resources. Safe to call after all
	// sessions are closed.
	Stop() error
}

// Session is one live browser context. All element lookups are bounded: a
// lookup that exceeds its timeout returns ElementNotFoundError rather than
// blocking indefinitely or silently returning nil.
type Session interface {
	// Navigate loads the given URL and waits for the page load to settle.
	Navigate(ctx context.Context, url string) error

	// WaitFor polls for an element matching locator until it appears or the
	// timeout expires.
	WaitFor(ctx context.Context, locator string, timeout time.Duration) (Element, error)

	// Query returns the first element matching locator, or nil if none is
	// currently present. It never waits.
	Query(ctx context.Context, locator string) (Element, error)

	// Fill sets the value of the input matching locator.
	Fill(ctx context.Context, locator, value string, timeout time.Duration) error

	// Click clicks the element matching locator.
	Click(ctx context.Context, locator string, timeout time.Duration) error

	// SetFiles attaches the given file paths to the file input matching
	// locator.
	SetFiles(ctx context.Context, locator string, paths []string, timeout time.Duration) error

	// SelectOption selects the option with the given value attribute in the
	// select element matching locator.
	SelectOption(ctx context.Context, locator, value string, timeout time.Duration) error

	// SetInnerHTML replaces the inner HTML of the element matching locator.
	// Used for rich-text editor surfaces that reject plain Fill.
	SetInnerHTML(ctx context.Context, locator, html string, timeout time.Duration) error

	// Content returns the full HTML of the current page.
	Content(ctx context.Context) (string, error)

	// URL returns the current page URL.
	URL() string

	// Close terminates the underlying browser process. Idempotent: calling
	// Close on an already-closed session is a no-op.
	Close() error
}

// Element is a handle to a located DOM element.
type Element interface {
	Text() (string, error)
	Attr(name string) (string, error)
	Click() error
}

// OpenOptions configures a new browser session.
type OpenOptions struct {
	// Headless controls whether the browser runs without a visible window.
	Headless bool

	// UserAgent overrides the browser's user agent string.
	UserAgent string

	// Viewport sets the initial viewport size. Zero values use the defaults.
	Viewport Viewport
}

// Viewport represents the browser viewport dimensions.
type Viewport struct {
	Width  int
	Height int
}

// Default values for session creation and element waits.
const (
	DefaultTimeout        = 7 * time.Second
	DefaultPollInterval   = 250 * time.Millisecond
	DefaultViewportWidth  = 1280
	DefaultViewportHeight = 1024
)
