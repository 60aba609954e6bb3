package forge

import "fmt"

// Selectors for the storefront's login form and crafter pages. These are the
// single point of breakage when the site changes its markup, so they all live
// here.
const (
	selLoginUsername = "input[name='vb_login_username']"
	selLoginPassword = "input[name='vb_login_password']"
	selLoginSubmit   = "a.registerbtn"

	// Present only once the account is logged in.
	selLoginSuccess = "li.welcomelink"

	// Present only when the site rejected the credentials.
	selLoginError = "div.blockrow.restore"

	// Present once the crafter item table has rendered.
	selItemsTable = "select[name='items-table_length']"

	selManageItemTab  = "a#manage-item-tab"
	selManageBuildTab = "a#manage-build-tab"

	selBuildFileInput  = "#build-upload-dropzone input[type='file']"
	selChannelSelect   = "select[name='build-channel']"
	selBuildSubmit     = "#save-build-button"
	selBuildSavedAlert = "#manage-build .alert-success"

	selDescriptionEditor = "#manage-item .note-editable"
	selDescriptionSubmit = "#save-item-button"
	selDescriptionSaved  = "#manage-item .alert-success"
)

func selItemLink(itemID int) string {
	return fmt.Sprintf("a[data-item-id='%d']", itemID)
}

// selUploadComplete matches the per-file success marker the upload widget
// renders once a file has finished transferring.
func selUploadComplete(filename string) string {
	return fmt.Sprintf(".dz-preview.dz-success [data-dz-name='%s']", filename)
}
