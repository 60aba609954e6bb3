package forge

import (
	"context"
)

// UpdateResult reports a confirmed description save.
type UpdateResult struct {
	ItemID int
}

// UpdateDescription replaces the listing's description with already-rendered
// HTML. Markdown rendering and image rewriting happen upstream (pkg/readme);
// this method only pushes the body into the edit form.
//
// The editor is a rich-text div, so the body is injected as inner HTML rather
// than filled as text. A save is only trusted once the confirmation alert
// appears; otherwise DescriptionSaveError is returned. That failure does not
// roll back a build uploaded earlier in the run.
func (c *Client) UpdateDescription(ctx context.Context, listing Listing, htmlBody string) (*UpdateResult, error) {
	c.log.Infof("updating description of item %d", listing.ID)
	if err := c.openListing(ctx, listing); err != nil {
		return nil, err
	}
	if err := c.session.Click(ctx, selManageItemTab, c.timeout); err != nil {
		return nil, err
	}

	// Clear first so stale markup cannot survive a partial injection.
	if err := c.session.SetInnerHTML(ctx, selDescriptionEditor, "", c.timeout); err != nil {
		return nil, err
	}
	if err := c.session.SetInnerHTML(ctx, selDescriptionEditor, htmlBody, c.timeout); err != nil {
		return nil, err
	}

	if err := c.session.Click(ctx, selDescriptionSubmit, c.timeout); err != nil {
		return nil, &DescriptionSaveError{ItemID: listing.ID, Cause: err}
	}
	if _, err := c.session.WaitFor(ctx, selDescriptionSaved, c.timeout); err != nil {
		return nil, &DescriptionSaveError{ItemID: listing.ID, Cause: err}
	}

	c.log.Infof("description saved for item %d", listing.ID)
	return &UpdateResult{ItemID: listing.ID}, nil
}
