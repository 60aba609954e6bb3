package browser

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/playwright-community/playwright-go"
)

// PlaywrightDriver is the production Driver implementation backed by a
// Playwright-managed Chromium. The Playwright runtime is started lazily on the
// first Open and torn down by Stop.
type PlaywrightDriver struct {
	mu          sync.Mutex
	pw          *playwright.Playwright
	initialized bool
}

// NewPlaywrightDriver creates a driver. No browser process is started until
// Open is called.
func NewPlaywrightDriver() *PlaywrightDriver {
	return &PlaywrightDriver{}
}

func (d *PlaywrightDriver) initialize() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.initialized {
		return nil
	}

	// Discard driver output so it does not interleave with our own logging.
	opts := &playwright.RunOptions{
		Verbose: false,
		Stdout:  io.Discard,
		Stderr:  io.Discard,
	}

	if err := playwright.Install(opts); err != nil {
		return fmt.Errorf("failed to install playwright: %w", err)
	}

	pw, err := playwright.Run(opts)
	if err != nil {
		return fmt.Errorf("failed to start playwright: %w", err)
	}

	d.pw = pw
	d.initialized = true
	return nil
}

// Open launches a Chromium process, creates an isolated context and page, and
// returns the session. On any partial failure the already-acquired resources
// are released before the error propagates.
func (d *PlaywrightDriver) Open(ctx context.Context, opts OpenOptions) (Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := d.initialize(); err != nil {
		return nil, err
	}

	if opts.Viewport.Width == 0 {
		opts.Viewport.Width = DefaultViewportWidth
	}
	if opts.Viewport.Height == 0 {
		opts.Viewport.Height = DefaultViewportHeight
	}

	launchOpts := playwright.BrowserTypeLaunchOptions{
		Headless: &opts.Headless,
	}
	b, err := d.pw.Chromium.Launch(launchOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	contextOpts := playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  opts.Viewport.Width,
			Height: opts.Viewport.Height,
		},
	}
	if opts.UserAgent != "" {
		contextOpts.UserAgent = &opts.UserAgent
	}
	bctx, err := b.NewContext(contextOpts)
	if err != nil {
		b.Close()
		return nil, fmt.Errorf("failed to create context: %w", err)
	}

	page, err := bctx.NewPage()
	if err != nil {
		bctx.Close()
		b.Close()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	page.SetDefaultTimeout(DefaultTimeout.Seconds() * 1000)

	return &playwrightSession{
		browser: b,
		context: bctx,
		page:    page,
	}, nil
}

// Stop shuts down the Playwright runtime. Sessions must be closed first.
func (d *PlaywrightDriver) Stop() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.initialized || d.pw == nil {
		return nil
	}
	if err := d.pw.Stop(); err != nil {
		return fmt.Errorf("failed to stop playwright: %w", err)
	}
	d.initialized = false
	return nil
}

// playwrightSession implements Session on top of a live Playwright page.
type playwrightSession struct {
	browser   playwright.Browser
	context   playwright.BrowserContext
	page      playwright.Page
	closeOnce sync.Once
}

func millis(timeout time.Duration) float64 {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return float64(timeout.Milliseconds())
}

func (s *playwrightSession) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := s.page.Goto(url, playwright.PageGotoOptions{}); err != nil {
		return fmt.Errorf("navigation to %s failed: %w", url, err)
	}
	return nil
}

func (s *playwrightSession) WaitFor(ctx context.Context, locator string, timeout time.Duration) (Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ms := millis(timeout)
	handle, err := s.page.WaitForSelector(locator, playwright.PageWaitForSelectorOptions{
		Timeout: &ms,
	})
	if err != nil || handle == nil {
		return nil, &ElementNotFoundError{Locator: locator, Timeout: timeout}
	}
	return &playwrightElement{handle: handle}, nil
}

func (s *playwrightSession) Query(ctx context.Context, locator string) (Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	handle, err := s.page.QuerySelector(locator)
	if err != nil {
		return nil, fmt.Errorf("selector query %q failed: %w", locator, err)
	}
	if handle == nil {
		return nil, nil
	}
	return &playwrightElement{handle: handle}, nil
}

func (s *playwrightSession) Fill(ctx context.Context, locator, value string, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ms := millis(timeout)
	if err := s.page.Fill(locator, value, playwright.PageFillOptions{Timeout: &ms}); err != nil {
		return &ElementNotFoundError{Locator: locator, Timeout: timeout}
	}
	return nil
}

func (s *playwrightSession) Click(ctx context.Context, locator string, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ms := millis(timeout)
	if err := s.page.Click(locator, playwright.PageClickOptions{Timeout: &ms}); err != nil {
		return &ElementNotFoundError{Locator: locator, Timeout: timeout}
	}
	return nil
}

func (s *playwrightSession) SetFiles(ctx context.Context, locator string, paths []string, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	files := make([]playwright.InputFile, 0, len(paths))
	for _, p := range paths {
		buf, err := os.ReadFile(p)
		if err != nil {
			return fmt.Errorf("reading upload file %s: %w", p, err)
		}
		files = append(files, playwright.InputFile{
			Name:     filepath.Base(p),
			MimeType: "application/octet-stream",
			Buffer:   buf,
		})
	}

	ms := millis(timeout)
	if err := s.page.SetInputFiles(locator, files, playwright.PageSetInputFilesOptions{Timeout: &ms}); err != nil {
		return fmt.Errorf("attaching files to %q: %w", locator, err)
	}
	return nil
}

func (s *playwrightSession) SelectOption(ctx context.Context, locator, value string, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ms := millis(timeout)
	values := []string{value}
	selected, err := s.page.SelectOption(locator, playwright.SelectOptionValues{
		Values: &values,
	}, playwright.PageSelectOptionOptions{Timeout: &ms})
	if err != nil {
		return &ElementNotFoundError{Locator: locator, Timeout: timeout}
	}
	if len(selected) == 0 {
		return fmt.Errorf("select %q has no option with value %q", locator, value)
	}
	return nil
}

func (s *playwrightSession) SetInnerHTML(ctx context.Context, locator, html string, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ms := millis(timeout)
	handle, err := s.page.WaitForSelector(locator, playwright.PageWaitForSelectorOptions{Timeout: &ms})
	if err != nil || handle == nil {
		return &ElementNotFoundError{Locator: locator, Timeout: timeout}
	}
	if _, err := s.page.Evaluate("([el, html]) => { el.innerHTML = html; }", []interface{}{handle, html}); err != nil {
		return fmt.Errorf("setting inner HTML of %q: %w", locator, err)
	}
	return nil
}

func (s *playwrightSession) Content(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	content, err := s.page.Content()
	if err != nil {
		return "", fmt.Errorf("reading page content: %w", err)
	}
	return content, nil
}

func (s *playwrightSession) URL() string {
	return s.page.URL()
}

// Close terminates the browser process. Errors from individual resources are
// ignored so cleanup always runs to completion; the close itself happens at
// most once.
func (s *playwrightSession) Close() error {
	s.closeOnce.Do(func() {
		_ = s.page.Close()
		_ = s.context.Close()
		_ = s.browser.Close()
	})
	return nil
}

// playwrightElement adapts a Playwright element handle to the Element
// interface.
type playwrightElement struct {
	handle playwright.ElementHandle
}

func (e *playwrightElement) Text() (string, error) {
	text, err := e.handle.TextContent()
	if err != nil {
		return "", fmt.Errorf("text extraction failed: %w", err)
	}
	return text, nil
}

func (e *playwrightElement) Attr(name string) (string, error) {
	value, err := e.handle.GetAttribute(name)
	if err != nil {
		return "", fmt.Errorf("attribute %q extraction failed: %w", name, err)
	}
	return value, nil
}

func (e *playwrightElement) Click() error {
	if err := e.handle.Click(); err != nil {
		return fmt.Errorf("click failed: %w", err)
	}
	return nil
}
