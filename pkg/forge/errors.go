package forge

import (
	"fmt"
	"strings"
)

// ListingNotFoundError indicates no listing matched the requested id or name.
type ListingNotFoundError struct {
	ItemID int
	Query  string
}

func (e *ListingNotFoundError) Error() string {
	if e.ItemID > 0 {
		return fmt.Sprintf("no listing found with item id %d", e.ItemID)
	}
	return fmt.Sprintf("no listing found matching %q", e.Query)
}

// AmbiguousListingError indicates a name search matched more than one listing.
// The candidates are listed so the operator can disambiguate explicitly; the
// tool never guesses.
type AmbiguousListingError struct {
	Query      string
	Candidates []Listing
}

func (e *AmbiguousListingError) Error() string {
	names := make([]string, len(e.Candidates))
	for i, c := range e.Candidates {
		names[i] = fmt.Sprintf("%d: %s", c.ID, c.Name)
	}
	return fmt.Sprintf("listing name %q matches %d listings: %s", e.Query, len(e.Candidates), strings.Join(names, ", "))
}

// UploadStepError indicates a single file failed during the upload sequence.
// Files already completed are reported through UploadResult, never discarded.
type UploadStepError struct {
	File  string
	Cause error
}

func (e *UploadStepError) Error() string {
	return fmt.Sprintf("upload of %s failed: %v", e.File, e.Cause)
}

func (e *UploadStepError) Unwrap() error { return e.Cause }

// DescriptionSaveError indicates the save confirmation never appeared after
// submitting the edited description. A build uploaded earlier in the same run
// is unaffected.
type DescriptionSaveError struct {
	ItemID int
	Cause  error
}

func (e *DescriptionSaveError) Error() string {
	return fmt.Sprintf("description save for item %d was not confirmed: %v", e.ItemID, e.Cause)
}

func (e *DescriptionSaveError) Unwrap() error { return e.Cause }
