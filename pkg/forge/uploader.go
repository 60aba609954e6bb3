package forge

import (
	"context"
	"fmt"
	"path/filepath"
)

// UploadResult reports per-file progress of one upload batch. On failure the
// completed files are still listed so the operator can re-run with the
// remaining subset.
type UploadResult struct {
	// Completed lists files whose completion marker was observed, in upload
	// order.
	Completed []string

	// Failed is the file whose upload failed, or "" on success.
	Failed string

	// Skipped lists files never attempted because an earlier file failed.
	Skipped []string

	// Channel is the release channel the batch was assigned to.
	Channel ReleaseChannel
}

// UploadBuilds uploads the given artifacts to the listing's build-management
// page and assigns the release channel to the batch.
//
// Files are attached strictly one at a time, each waiting for its completion
// marker before the next is attached; the storefront's upload widget does not
// handle concurrent submissions reliably and the attach order becomes the
// published build order. The channel is selected once after all files have
// attached, then the batch is submitted. A failed file aborts the batch with
// UploadStepError; the submit is never retried automatically since a flaky
// resubmission can publish duplicate builds.
func (c *Client) UploadBuilds(ctx context.Context, listing Listing, files []string, channel ReleaseChannel) (*UploadResult, error) {
	result := &UploadResult{Channel: channel}

	c.log.Infof("uploading %d build file(s) to item %d", len(files), listing.ID)
	if err := c.openListing(ctx, listing); err != nil {
		result.Skipped = append(result.Skipped, files...)
		return result, err
	}
	if err := c.session.Click(ctx, selManageBuildTab, c.timeout); err != nil {
		result.Skipped = append(result.Skipped, files...)
		return result, err
	}

	for i, file := range files {
		if err := c.uploadOne(ctx, file); err != nil {
			result.Failed = file
			result.Skipped = append(result.Skipped, files[i+1:]...)
			return result, &UploadStepError{File: file, Cause: err}
		}
		result.Completed = append(result.Completed, file)
		c.log.Infof("uploaded %s (%d/%d)", filepath.Base(file), i+1, len(files))
	}

	if channel != ChannelNone {
		c.log.Infof("assigning batch to %s channel", channel)
		if err := c.session.SelectOption(ctx, selChannelSelect, channel.FormValue(), c.timeout); err != nil {
			return result, fmt.Errorf("selecting %s channel: %w", channel, err)
		}
	}

	if err := c.session.Click(ctx, selBuildSubmit, c.timeout); err != nil {
		return result, fmt.Errorf("submitting build batch: %w", err)
	}
	if _, err := c.session.WaitFor(ctx, selBuildSavedAlert, c.timeout); err != nil {
		return result, fmt.Errorf("confirming build submission: %w", err)
	}

	c.log.Infof("build upload complete for all files")
	return result, nil
}

func (c *Client) uploadOne(ctx context.Context, file string) error {
	if err := c.session.SetFiles(ctx, selBuildFileInput, []string{file}, c.timeout); err != nil {
		return err
	}
	if _, err := c.session.WaitFor(ctx, selUploadComplete(filepath.Base(file)), c.timeout); err != nil {
		return err
	}
	return nil
}
