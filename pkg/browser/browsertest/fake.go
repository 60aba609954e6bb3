// Package browsertest provides in-memory fakes for the browser capability
// interfaces so workflow and client code can be tested without driving a real
// browser.
package browsertest

import (
	"context"
	"sync"
	"time"

	"github.com/fgtools/forgeup/pkg/browser"
)

// Driver is a fake browser.Driver handing out a single scripted session.
type Driver struct {
	Session *Session
	OpenErr error

	mu        sync.Mutex
	opens     int
	stopCount int
}

// NewDriver returns a fake driver with an empty scripted session.
func NewDriver() *Driver {
	return &Driver{Session: NewSession()}
}

func (d *Driver) Open(ctx context.Context, opts browser.OpenOptions) (browser.Session, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.OpenErr != nil {
		return nil, d.OpenErr
	}
	d.opens++
	return d.Session, nil
}

func (d *Driver) Stop() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopCount++
	return nil
}

// Opens reports how many sessions were opened.
func (d *Driver) Opens() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.opens
}

// Element is a scripted DOM element.
type Element struct {
	TextValue string
	Attrs     map[string]string
	ClickErr  error
}

func (e *Element) Text() (string, error)            { return e.TextValue, nil }
func (e *Element) Attr(name string) (string, error) { return e.Attrs[name], nil }
func (e *Element) Click() error                     { return e.ClickErr }

// FileAttach records one SetFiles call.
type FileAttach struct {
	Locator string
	Paths   []string
}

// Session is a scripted browser.Session. Element presence is keyed by locator;
// AppearAfter delays an element's appearance by a number of lookups so
// completion-marker polling can be exercised.
type Session struct {
	mu sync.Mutex

	CurrentURL string

	// Pages maps URL to the HTML served by Content after navigating there.
	Pages map[string]string

	// Elements maps locator to a present element.
	Elements map[string]*Element

	// AppearAfter maps locator to the number of lookups that miss before the
	// element in Elements becomes visible.
	AppearAfter map[string]int

	// Missing marks locators that never resolve, regardless of Elements.
	Missing map[string]bool

	NavigateErr error
	FillErr     error
	SetFilesErr map[string]error // keyed by first attached path

	// Recorded interactions, in order.
	Navigations []string
	Fills       map[string]string
	Clicks      []string
	Attached    []FileAttach
	Selected    map[string]string
	InnerHTML   map[string]string

	closeCount int
}

// NewSession returns an empty scripted session.
func NewSession() *Session {
	return &Session{
		Pages:       make(map[string]string),
		Elements:    make(map[string]*Element),
		AppearAfter: make(map[string]int),
		Missing:     make(map[string]bool),
		SetFilesErr: make(map[string]error),
		Fills:       make(map[string]string),
		Selected:    make(map[string]string),
		InnerHTML:   make(map[string]string),
	}
}

// AddElement makes an element immediately visible at locator.
func (s *Session) AddElement(locator string, el *Element) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if el == nil {
		el = &Element{}
	}
	s.Elements[locator] = el
}

func (s *Session) lookup(locator string) *Element {
	if s.Missing[locator] {
		return nil
	}
	el, ok := s.Elements[locator]
	if !ok {
		return nil
	}
	if s.AppearAfter[locator] > 0 {
		s.AppearAfter[locator]--
		return nil
	}
	return el
}

func (s *Session) Navigate(ctx context.Context, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.NavigateErr != nil {
		return s.NavigateErr
	}
	s.CurrentURL = url
	s.Navigations = append(s.Navigations, url)
	return nil
}

func (s *Session) WaitFor(ctx context.Context, locator string, timeout time.Duration) (browser.Element, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if el := s.lookup(locator); el != nil {
		return el, nil
	}
	return nil, &browser.ElementNotFoundError{Locator: locator, Timeout: timeout}
}

func (s *Session) Query(ctx context.Context, locator string) (browser.Element, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if el := s.lookup(locator); el != nil {
		return el, nil
	}
	return nil, nil
}

func (s *Session) Fill(ctx context.Context, locator, value string, timeout time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.FillErr != nil {
		return s.FillErr
	}
	s.Fills[locator] = value
	return nil
}

func (s *Session) Click(ctx context.Context, locator string, timeout time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Clicks = append(s.Clicks, locator)
	return nil
}

func (s *Session) SetFiles(ctx context.Context, locator string, paths []string, timeout time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(paths) > 0 {
		if err, ok := s.SetFilesErr[paths[0]]; ok {
			return err
		}
	}
	s.Attached = append(s.Attached, FileAttach{Locator: locator, Paths: paths})
	return nil
}

func (s *Session) SelectOption(ctx context.Context, locator, value string, timeout time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Missing[locator] {
		return &browser.ElementNotFoundError{Locator: locator, Timeout: timeout}
	}
	s.Selected[locator] = value
	return nil
}

func (s *Session) SetInnerHTML(ctx context.Context, locator, html string, timeout time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Missing[locator] {
		return &browser.ElementNotFoundError{Locator: locator, Timeout: timeout}
	}
	s.InnerHTML[locator] = html
	return nil
}

func (s *Session) Content(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Pages[s.CurrentURL], nil
}

func (s *Session) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.CurrentURL
}

func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeCount++
	return nil
}

// CloseCount reports how many times Close was invoked.
func (s *Session) CloseCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closeCount
}
