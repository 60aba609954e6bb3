// Package forge drives the storefront's crafter pages: authentication,
// listing resolution, build uploads, and description edits. All browser work
// goes through the browser.Session capability interface so everything here is
// testable against an in-memory fake.
package forge

import (
	"context"
	"time"

	"github.com/fgtools/forgeup/pkg/browser"
	"github.com/fgtools/forgeup/pkg/logging"
)

// Credentials hold the storefront login. They live only for the duration of
// the process and are never persisted.
type Credentials struct {
	Username string
	Password string
}

// Client performs authenticated operations against one live browser session.
type Client struct {
	session browser.Session
	timeout time.Duration
	log     *logging.Logger
}

// NewClient wraps an open session. The timeout bounds every element wait the
// client performs; zero uses the driver default.
func NewClient(session browser.Session, timeout time.Duration, log *logging.Logger) *Client {
	if timeout <= 0 {
		timeout = browser.DefaultTimeout
	}
	return &Client{session: session, timeout: timeout, log: log}
}

// loginForm describes the storefront's vBulletin login page.
func loginForm() browser.LoginForm {
	return browser.LoginForm{
		URL:           LoginURL,
		UsernameField: selLoginUsername,
		PasswordField: selLoginPassword,
		SubmitButton:  selLoginSubmit,
		SuccessMarker: selLoginSuccess,
		ErrorMarker:   selLoginError,
	}
}

// Login authenticates the session. Success is confirmed by observing the
// logged-in marker; no upload or edit may be attempted before this returns.
func (c *Client) Login(ctx context.Context, creds Credentials) (*browser.AuthResult, error) {
	c.log.Infof("logging in as %s", creds.Username)
	res, err := browser.Login(ctx, c.session, creds.Username, creds.Password, loginForm(), c.timeout)
	if err != nil {
		return nil, err
	}
	c.log.Infof("logged in as %s (%s)", res.Username, res.Elapsed.Round(time.Millisecond))
	return res, nil
}

// openListing navigates to the crafter item table and opens the listing's
// management page. A missing item link means the listing id does not belong
// to this account.
func (c *Client) openListing(ctx context.Context, listing Listing) error {
	if err := c.session.Navigate(ctx, ManageCraftURL); err != nil {
		return err
	}
	if _, err := c.session.WaitFor(ctx, selItemsTable, c.timeout); err != nil {
		return err
	}
	link, err := c.session.WaitFor(ctx, selItemLink(listing.ID), c.timeout)
	if err != nil {
		return &ListingNotFoundError{ItemID: listing.ID}
	}
	return link.Click()
}
