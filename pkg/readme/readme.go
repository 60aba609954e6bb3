// Package readme turns a build's bundled README.md into the HTML body the
// storefront's description editor accepts. The storefront rejects inline
// images outright, so images are rewritten into links (or dropped) before
// submission.
package readme

import (
	"archive/zip"
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	ghtml "github.com/yuin/goldmark/renderer/html"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DefaultName is the README file looked for inside build archives.
const DefaultName = "README.md"

// relativeImage matches Markdown image references with a relative path.
// They cannot resolve outside the repository, so they are dropped before
// rendering.
var relativeImage = regexp.MustCompile(`!\[]\(\..+?\)`)

var renderer = goldmark.New(
	goldmark.WithExtensions(extension.GFM, extension.Typographer),
	goldmark.WithRendererOptions(
		ghtml.WithHardWraps(),
		ghtml.WithUnsafe(),
	),
)

// FromArtifacts extracts README.md from the first artifact archive containing
// one and renders it for the description editor.
func FromArtifacts(artifacts []string, stripImages bool) (string, error) {
	for _, artifact := range artifacts {
		text, ok, err := extract(artifact, DefaultName)
		if err != nil {
			return "", err
		}
		if ok {
			return Render(text, stripImages)
		}
	}
	return "", fmt.Errorf("no %s found in any build file", DefaultName)
}

func extract(archive, name string) (string, bool, error) {
	zr, err := zip.OpenReader(archive)
	if err != nil {
		return "", false, fmt.Errorf("opening build file %s: %w", archive, err)
	}
	defer zr.Close()

	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", false, fmt.Errorf("reading %s from %s: %w", name, archive, err)
		}
		defer rc.Close()

		var buf bytes.Buffer
		if _, err := buf.ReadFrom(rc); err != nil {
			return "", false, fmt.Errorf("reading %s from %s: %w", name, archive, err)
		}
		return buf.String(), true, nil
	}
	return "", false, nil
}

// Render converts Markdown source into storefront-ready HTML: GFM rendering,
// image rewriting per the editor's constraints, and table styling for the
// site's dark theme.
func Render(markdown string, stripImages bool) (string, error) {
	markdown = relativeImage.ReplaceAllString(markdown, "")

	var rendered bytes.Buffer
	if err := renderer.Convert([]byte(markdown), &rendered); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}

	return Transform(rendered.String(), stripImages)
}

// Transform rewrites already-rendered HTML for submission: every <img> is
// either removed (stripImages) or replaced with an anchor whose text is the
// image's alt text, and tables get explicit styles.
func Transform(body string, stripImages bool) (string, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(body), ctx)
	if err != nil {
		return "", fmt.Errorf("parsing rendered HTML: %w", err)
	}

	var out bytes.Buffer
	for _, n := range nodes {
		rewriteImages(n, stripImages)
		styleTables(n)
		if err := html.Render(&out, n); err != nil {
			return "", fmt.Errorf("rendering transformed HTML: %w", err)
		}
	}
	return out.String(), nil
}

func rewriteImages(n *html.Node, strip bool) {
	var images []*html.Node
	walk(n, func(node *html.Node) {
		if node.Type == html.ElementNode && node.DataAtom == atom.Img {
			images = append(images, node)
		}
	})

	for _, img := range images {
		parent := img.Parent
		if parent == nil {
			continue
		}
		if strip {
			parent.RemoveChild(img)
			continue
		}

		// Prefer the wrapping anchor's target over the image source, so a
		// linked thumbnail keeps pointing at its full-size original.
		target := attr(img, "src")
		if parent.DataAtom == atom.A && attr(parent, "href") != "" {
			target = attr(parent, "href")
		}
		text := attr(img, "alt")
		if text == "" {
			text = target
		}

		link := &html.Node{
			Type:     html.ElementNode,
			Data:     "a",
			DataAtom: atom.A,
			Attr:     []html.Attribute{{Key: "href", Val: target}},
		}
		link.AppendChild(&html.Node{Type: html.TextNode, Data: text})
		parent.InsertBefore(link, img)
		parent.RemoveChild(img)
	}
}

// styleTables applies explicit cell borders and alternating row backgrounds;
// the editor strips stylesheets, so everything must be inline.
func styleTables(n *html.Node) {
	walk(n, func(node *html.Node) {
		if node.Type != html.ElementNode || node.DataAtom != atom.Table {
			return
		}

		row := 0
		walk(node, func(inner *html.Node) {
			if inner.Type != html.ElementNode {
				return
			}
			switch inner.DataAtom {
			case atom.Td, atom.Th:
				setAttr(inner, "style", "border:1px solid #FFFFFF; padding:0.5em;")
			case atom.Tr:
				color := "#000000"
				if row%2 == 1 {
					color = "#1C1C1E"
				}
				setAttr(inner, "style", fmt.Sprintf("background-color: %s; border:1px solid #FFFFFF;", color))
				row++
			}
		})
	})
}

func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		walk(child, fn)
	}
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}
