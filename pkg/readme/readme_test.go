package readme

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_ImageBecomesLink(t *testing.T) {
	out, err := Render(`![Map](https://x/m.png)`, false)

	require.NoError(t, err)
	assert.NotContains(t, out, "<img")
	assert.Contains(t, out, `<a href="https://x/m.png">Map</a>`)
}

func TestRender_ImageWithoutAltDegradesToBareLink(t *testing.T) {
	out, err := Render(`![](https://x/m.png)`, false)

	require.NoError(t, err)
	assert.NotContains(t, out, "<img")
	assert.Contains(t, out, `<a href="https://x/m.png">https://x/m.png</a>`)
}

func TestRender_StripImagesRemovesEverything(t *testing.T) {
	out, err := Render("before\n\n![Map](https://x/m.png)\n\nafter", true)

	require.NoError(t, err)
	assert.NotContains(t, out, "<img")
	assert.NotContains(t, out, "m.png")
	assert.Contains(t, out, "before")
	assert.Contains(t, out, "after")
}

func TestRender_LinkedImageKeepsAnchorTarget(t *testing.T) {
	out, err := Transform(`<p><a href="https://x/full.png"><img src="https://x/thumb.png" alt="Map"/></a></p>`, false)

	require.NoError(t, err)
	assert.NotContains(t, out, "<img")
	assert.Contains(t, out, `href="https://x/full.png"`)
	assert.Contains(t, out, ">Map</a>")
}

func TestRender_RelativeImagesDropped(t *testing.T) {
	out, err := Render("intro ![](./docs/screenshot.png) outro", false)

	require.NoError(t, err)
	assert.NotContains(t, out, "screenshot.png")
	assert.Contains(t, out, "intro")
}

func TestRender_TableGetsInlineStyles(t *testing.T) {
	src := "| A | B |\n|---|---|\n| 1 | 2 |\n| 3 | 4 |\n"

	out, err := Render(src, false)

	require.NoError(t, err)
	assert.Contains(t, out, "border:1px solid #FFFFFF; padding:0.5em;")
	assert.Contains(t, out, "background-color: #000000")
	assert.Contains(t, out, "background-color: #1C1C1E")
}

func writeZip(t *testing.T, dir, name string, entries map[string]string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for entry, content := range entries {
		w, err := zw.Create(entry)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return path
}

func TestFromArtifacts_FirstArchiveWithReadmeWins(t *testing.T) {
	dir := t.TempDir()
	noReadme := writeZip(t, dir, "a.ext", map[string]string{"data.xml": "<root/>"})
	withReadme := writeZip(t, dir, "b.ext", map[string]string{"README.md": "# Hello"})

	out, err := FromArtifacts([]string{noReadme, withReadme}, false)

	require.NoError(t, err)
	assert.Contains(t, out, "<h1")
	assert.Contains(t, out, "Hello")
}

func TestFromArtifacts_NoReadmeAnywhere(t *testing.T) {
	dir := t.TempDir()
	archive := writeZip(t, dir, "a.ext", map[string]string{"data.xml": "<root/>"})

	_, err := FromArtifacts([]string{archive}, false)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "README.md")
}
