package forge

import (
	"context"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// Listing is a published item page on the storefront.
type Listing struct {
	ID   int
	Name string
}

// ListingRef partially identifies the target listing. A positive ItemID wins;
// otherwise Name drives a scan of the account's listings.
type ListingRef struct {
	ItemID int
	Name   string
}

// maxListingScan bounds listing discovery to the first page of the crafter
// table. This mirrors the storefront's default page size; accounts with more
// listings must supply an explicit item id.
const maxListingScan = 100

// Resolve determines the target listing. A known item id short-circuits
// without validation; the storefront itself rejects a bad id later, which
// surfaces as ListingNotFoundError from the uploader. An unknown id triggers
// a name search over the account's first listing page.
func (c *Client) Resolve(ctx context.Context, ref ListingRef) (Listing, error) {
	if ref.ItemID > 0 {
		return Listing{ID: ref.ItemID, Name: ref.Name}, nil
	}

	listings, err := c.Listings(ctx)
	if err != nil {
		return Listing{}, err
	}

	var matches []Listing
	needle := strings.ToLower(strings.TrimSpace(ref.Name))
	for _, l := range listings {
		if needle != "" && strings.Contains(strings.ToLower(l.Name), needle) {
			matches = append(matches, l)
		}
	}

	switch len(matches) {
	case 0:
		return Listing{}, &ListingNotFoundError{Query: ref.Name}
	case 1:
		c.log.Infof("resolved listing %q to item %d (%s)", ref.Name, matches[0].ID, matches[0].Name)
		return matches[0], nil
	default:
		return Listing{}, &AmbiguousListingError{Query: ref.Name, Candidates: matches}
	}
}

// Listings scans the account's crafter table and returns the visible listings,
// bounded to the first page (maxListingScan rows).
func (c *Client) Listings(ctx context.Context) ([]Listing, error) {
	if err := c.session.Navigate(ctx, ManageCraftURL); err != nil {
		return nil, err
	}
	if _, err := c.session.WaitFor(ctx, selItemsTable, c.timeout); err != nil {
		return nil, err
	}
	content, err := c.session.Content(ctx)
	if err != nil {
		return nil, err
	}

	listings, err := parseListings(content)
	if err != nil {
		return nil, err
	}
	c.log.Infof("found %d listings on first page", len(listings))
	return listings, nil
}

// parseListings extracts listing rows from the crafter table markup. Rows are
// anchors carrying a data-item-id attribute whose text is the listing name.
func parseListings(content string) ([]Listing, error) {
	doc, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return nil, err
	}

	var listings []Listing
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if len(listings) >= maxListingScan {
			return
		}
		if n.Type == html.ElementNode && n.Data == "a" {
			for _, attr := range n.Attr {
				if attr.Key != "data-item-id" {
					continue
				}
				id, convErr := strconv.Atoi(strings.TrimSpace(attr.Val))
				if convErr != nil || id <= 0 {
					continue
				}
				listings = append(listings, Listing{ID: id, Name: strings.TrimSpace(nodeText(n))})
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)
	return listings, nil
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return sb.String()
}
