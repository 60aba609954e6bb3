// Package workflow sequences a publish run: authenticate, resolve the target
// listing, upload builds, update the description. It owns the single browser
// session for the run and guarantees it is closed on every exit path.
package workflow

import (
	"context"
	"fmt"

	"github.com/fgtools/forgeup/pkg/browser"
	"github.com/fgtools/forgeup/pkg/config"
	"github.com/fgtools/forgeup/pkg/forge"
	"github.com/fgtools/forgeup/pkg/logging"
	"github.com/fgtools/forgeup/pkg/readme"
)

// Step identifies where in the run a failure occurred. The CLI maps steps to
// distinct exit codes for CI triage.
type Step string

const (
	StepConfig      Step = "config"
	StepSession     Step = "session"
	StepAuth        Step = "auth"
	StepResolve     Step = "resolve"
	StepUpload      Step = "upload"
	StepDescription Step = "description"
)

// Result reports what a run accomplished. On failure, everything completed
// before the failing step is still populated; in particular an upload that
// finished before a description failure is never hidden.
type Result struct {
	Auth    *browser.AuthResult
	Listing forge.Listing
	Upload  *forge.UploadResult
	Update  *forge.UpdateResult

	// FailedStep is set when Run returns an error.
	FailedStep Step
}

// Orchestrator runs the publish workflow against a browser driver.
type Orchestrator struct {
	driver browser.Driver
	cfg    *config.Resolved
	log    *logging.Logger
}

// New creates an orchestrator. The configuration must already be validated.
func New(driver browser.Driver, cfg *config.Resolved, log *logging.Logger) *Orchestrator {
	return &Orchestrator{driver: driver, cfg: cfg, log: log}
}

// Run executes the enabled steps in order. State machine:
//
//	Init → Authenticated → ListingResolved → (Uploaded)? → (DescriptionUpdated)? → Closed
//
// The session is closed exactly once on every path, including failures and
// panics unwinding through the deferred close. Any failure before
// authentication aborts immediately; an upload failure is fatal but partial
// progress is reported; a description failure is reported without reverting
// the upload.
func (o *Orchestrator) Run(ctx context.Context) (*Result, error) {
	result := &Result{}

	// The description body is pure file work; prepare it before paying for a
	// browser process so a missing README fails fast.
	var htmlBody string
	if o.cfg.UpdateDescription {
		body, err := readme.FromArtifacts(o.cfg.Artifacts, o.cfg.StripImages)
		if err != nil {
			result.FailedStep = StepConfig
			return result, fmt.Errorf("preparing description: %w", err)
		}
		htmlBody = body
	}

	session, err := o.driver.Open(ctx, browser.OpenOptions{Headless: o.cfg.Headless})
	if err != nil {
		result.FailedStep = StepSession
		return result, fmt.Errorf("opening browser session: %w", err)
	}
	defer session.Close()

	client := forge.NewClient(session, o.cfg.Timeout, o.log)

	auth, err := client.Login(ctx, o.cfg.Credentials)
	if err != nil {
		result.FailedStep = StepAuth
		return result, err
	}
	result.Auth = auth

	listing, err := client.Resolve(ctx, o.cfg.Ref)
	if err != nil {
		result.FailedStep = StepResolve
		return result, err
	}
	result.Listing = listing

	if o.cfg.UploadBuild {
		upload, err := client.UploadBuilds(ctx, listing, o.cfg.Artifacts, o.cfg.Channel)
		result.Upload = upload
		if err != nil {
			result.FailedStep = StepUpload
			return result, err
		}
	}

	if o.cfg.UpdateDescription {
		update, err := client.UpdateDescription(ctx, listing, htmlBody)
		result.Update = update
		if err != nil {
			result.FailedStep = StepDescription
			return result, err
		}
	}

	return result, nil
}
