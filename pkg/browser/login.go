package browser

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// LoginForm describes the site's login page: where it lives, which inputs take
// the credentials, and which markers distinguish a successful login from a
// rejected one.
type LoginForm struct {
	URL           string
	UsernameField string
	PasswordField string
	SubmitButton  string

	// SuccessMarker is an element only present once the account is logged in.
	// Authentication is confirmed by observing it, never by the mere absence
	// of an error.
	SuccessMarker string

	// ErrorMarker is an element only present when the site rejected the
	// credentials. Its text content is reported to the operator.
	ErrorMarker string
}

// AuthResult reports a confirmed login.
type AuthResult struct {
	Username string
	Elapsed  time.Duration
}

// Login submits credentials into the site's login form and polls for either
// the success or the error marker. The error marker yields an
// AuthenticationError carrying the site-reported message; neither marker
// within the timeout yields a SessionTimeoutError.
func Login(ctx context.Context, s Session, username, password string, form LoginForm, timeout time.Duration) (*AuthResult, error) {
	start := time.Now()
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	if err := s.Navigate(ctx, form.URL); err != nil {
		return nil, fmt.Errorf("opening login page: %w", err)
	}
	if err := s.Fill(ctx, form.UsernameField, username, timeout); err != nil {
		return nil, fmt.Errorf("filling username: %w", err)
	}
	if err := s.Fill(ctx, form.PasswordField, password, timeout); err != nil {
		return nil, fmt.Errorf("filling password: %w", err)
	}
	if err := s.Click(ctx, form.SubmitButton, timeout); err != nil {
		return nil, fmt.Errorf("submitting login form: %w", err)
	}

	_, err := Poll(ctx, DefaultPollInterval, timeout, func() (struct{}, bool, error) {
		if el, qerr := s.Query(ctx, form.ErrorMarker); qerr == nil && el != nil {
			msg, _ := el.Text()
			return struct{}{}, false, &AuthenticationError{Username: username, Message: strings.TrimSpace(msg)}
		}
		if el, qerr := s.Query(ctx, form.SuccessMarker); qerr == nil && el != nil {
			return struct{}{}, true, nil
		}
		return struct{}{}, false, nil
	})
	if err != nil {
		if err == ErrPollTimeout {
			return nil, &SessionTimeoutError{Stage: "login", Timeout: timeout}
		}
		return nil, err
	}

	return &AuthResult{Username: username, Elapsed: time.Since(start)}, nil
}
