package workflow

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fgtools/forgeup/pkg/browser/browsertest"
	"github.com/fgtools/forgeup/pkg/config"
	"github.com/fgtools/forgeup/pkg/forge"
	"github.com/fgtools/forgeup/pkg/logging"
)

// Selectors the scripted sessions must serve. Kept in sync with pkg/forge by
// the assertions on recorded interactions, not by sharing constants.
const (
	loginSuccess  = "li.welcomelink"
	loginError    = "div.blockrow.restore"
	itemsTable    = "select[name='items-table_length']"
	buildSaved    = "#manage-build .alert-success"
	channelSelect = "select[name='build-channel']"
	descSaved     = "#manage-item .alert-success"
)

func itemLink(id string) string { return "a[data-item-id='" + id + "']" }

func uploadComplete(name string) string {
	return ".dz-preview.dz-success [data-dz-name='" + name + "']"
}

// buildArtifact writes a zip artifact carrying a README so description runs
// have something to render.
func buildArtifact(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	w, err := zw.Create("README.md")
	require.NoError(t, err)
	_, err = w.Write([]byte("# My Module\n\nA test build.\n"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return path
}

func baseConfig(artifacts ...string) *config.Resolved {
	return &config.Resolved{
		Credentials: forge.Credentials{Username: "alice", Password: "hunter2"},
		Ref:         forge.ListingRef{ItemID: 33},
		Artifacts:   artifacts,
		Channel:     forge.ChannelLive,
		UploadBuild: true,
		Headless:    true,
		Timeout:     50 * time.Millisecond,
	}
}

// scriptHappyPath makes login, listing navigation, uploads, and saves all
// succeed for the given artifact names.
func scriptHappyPath(session *browsertest.Session, artifacts ...string) {
	session.AddElement(loginSuccess, &browsertest.Element{})
	session.AddElement(itemsTable, &browsertest.Element{})
	session.AddElement(itemLink("33"), &browsertest.Element{})
	session.AddElement(buildSaved, &browsertest.Element{})
	session.AddElement(descSaved, &browsertest.Element{})
	for _, a := range artifacts {
		session.AddElement(uploadComplete(filepath.Base(a)), &browsertest.Element{})
	}
}

func TestRun_UploadOnlySuccess(t *testing.T) {
	dir := t.TempDir()
	artifact := buildArtifact(t, dir, "build.ext")

	driver := browsertest.NewDriver()
	scriptHappyPath(driver.Session, artifact)

	result, err := New(driver, baseConfig(artifact), logging.NewNop()).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 33, result.Listing.ID)
	require.NotNil(t, result.Upload)
	assert.Equal(t, []string{artifact}, result.Upload.Completed)
	assert.Nil(t, result.Update)
	assert.Equal(t, "1", driver.Session.Selected[channelSelect])
	assert.Equal(t, 1, driver.Session.CloseCount())
}

func TestRun_UploadAndDescription(t *testing.T) {
	dir := t.TempDir()
	artifact := buildArtifact(t, dir, "build.ext")

	driver := browsertest.NewDriver()
	scriptHappyPath(driver.Session, artifact)

	cfg := baseConfig(artifact)
	cfg.UpdateDescription = true

	result, err := New(driver, cfg, logging.NewNop()).Run(context.Background())

	require.NoError(t, err)
	require.NotNil(t, result.Upload)
	require.NotNil(t, result.Update)
	assert.Equal(t, 1, driver.Session.CloseCount())
}

func TestRun_DescriptionOnlySkipsUpload(t *testing.T) {
	dir := t.TempDir()
	artifact := buildArtifact(t, dir, "build.ext")

	driver := browsertest.NewDriver()
	scriptHappyPath(driver.Session, artifact)

	cfg := baseConfig(artifact)
	cfg.UploadBuild = false
	cfg.UpdateDescription = true

	result, err := New(driver, cfg, logging.NewNop()).Run(context.Background())

	require.NoError(t, err)
	assert.Nil(t, result.Upload)
	require.NotNil(t, result.Update)
	assert.Empty(t, driver.Session.Attached)
}

func TestRun_AuthFailureAbortsImmediately(t *testing.T) {
	dir := t.TempDir()
	artifact := buildArtifact(t, dir, "build.ext")

	driver := browsertest.NewDriver()
	driver.Session.AddElement(loginError, &browsertest.Element{TextValue: "Invalid password"})

	result, err := New(driver, baseConfig(artifact), logging.NewNop()).Run(context.Background())

	require.Error(t, err)
	assert.Equal(t, StepAuth, result.FailedStep)
	assert.Nil(t, result.Upload)
	// Only the login page was visited; no crafter navigation happened.
	assert.Len(t, driver.Session.Navigations, 1)
	assert.Equal(t, 1, driver.Session.CloseCount())
}

func TestRun_UploadFailureClosesSessionOnce(t *testing.T) {
	dir := t.TempDir()
	good := buildArtifact(t, dir, "a.ext")
	bad := buildArtifact(t, dir, "b.ext")

	driver := browsertest.NewDriver()
	scriptHappyPath(driver.Session, good) // no completion marker for b.ext

	result, err := New(driver, baseConfig(good, bad), logging.NewNop()).Run(context.Background())

	require.Error(t, err)
	assert.Equal(t, StepUpload, result.FailedStep)
	require.NotNil(t, result.Upload)
	assert.Equal(t, []string{good}, result.Upload.Completed)
	assert.Equal(t, bad, result.Upload.Failed)
	assert.Equal(t, 1, driver.Session.CloseCount())
}

func TestRun_DescriptionFailureKeepsUploadResult(t *testing.T) {
	dir := t.TempDir()
	artifact := buildArtifact(t, dir, "build.ext")

	driver := browsertest.NewDriver()
	scriptHappyPath(driver.Session, artifact)
	driver.Session.Missing[descSaved] = true

	cfg := baseConfig(artifact)
	cfg.UpdateDescription = true

	result, err := New(driver, cfg, logging.NewNop()).Run(context.Background())

	var saveErr *forge.DescriptionSaveError
	require.ErrorAs(t, err, &saveErr)
	assert.Equal(t, StepDescription, result.FailedStep)

	// The completed upload is still reported; it is not rolled back.
	require.NotNil(t, result.Upload)
	assert.Equal(t, []string{artifact}, result.Upload.Completed)
	assert.Equal(t, 1, driver.Session.CloseCount())
}

func TestRun_MissingReadmeFailsBeforeBrowserOpens(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.ext")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	driver := browsertest.NewDriver()

	cfg := baseConfig(path)
	cfg.UpdateDescription = true

	result, runErr := New(driver, cfg, logging.NewNop()).Run(context.Background())

	require.Error(t, runErr)
	assert.Equal(t, StepConfig, result.FailedStep)
	assert.Zero(t, driver.Opens())
}

func TestRun_OpenFailure(t *testing.T) {
	dir := t.TempDir()
	artifact := buildArtifact(t, dir, "build.ext")

	driver := browsertest.NewDriver()
	driver.OpenErr = os.ErrPermission

	result, err := New(driver, baseConfig(artifact), logging.NewNop()).Run(context.Background())

	require.Error(t, err)
	assert.Equal(t, StepSession, result.FailedStep)
	assert.Zero(t, driver.Session.CloseCount())
}
