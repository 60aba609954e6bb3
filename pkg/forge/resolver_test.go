package forge

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fgtools/forgeup/pkg/browser/browsertest"
	"github.com/fgtools/forgeup/pkg/logging"
)

const craftTableHTML = `<html><body>
<table id="items-table"><tbody>
<tr><td><a data-item-id="33" href="/crafter/item/33">Dungeon Map Pack</a></td><td>Live</td></tr>
<tr><td><a data-item-id="44" href="/crafter/item/44">Token Pack</a></td><td>Test</td></tr>
<tr><td><a data-item-id="55" href="/crafter/item/55">Dungeon Tiles</a></td><td>Live</td></tr>
</tbody></table>
</body></html>`

func newTestClient(t *testing.T) (*Client, *browsertest.Session) {
	t.Helper()
	session := browsertest.NewSession()
	session.AddElement(selItemsTable, &browsertest.Element{})
	session.Pages[ManageCraftURL] = craftTableHTML
	return NewClient(session, 0, logging.NewNop()), session
}

func TestResolve_KnownIDShortCircuits(t *testing.T) {
	client, session := newTestClient(t)

	listing, err := client.Resolve(context.Background(), ListingRef{ItemID: 77})

	require.NoError(t, err)
	assert.Equal(t, 77, listing.ID)
	// No discovery navigation happened.
	assert.Empty(t, session.Navigations)
}

func TestResolve_SingleNameMatch(t *testing.T) {
	client, _ := newTestClient(t)

	listing, err := client.Resolve(context.Background(), ListingRef{Name: "token"})

	require.NoError(t, err)
	assert.Equal(t, 44, listing.ID)
	assert.Equal(t, "Token Pack", listing.Name)
}

func TestResolve_NoMatch(t *testing.T) {
	client, _ := newTestClient(t)

	_, err := client.Resolve(context.Background(), ListingRef{Name: "ruleset"})

	var notFound *ListingNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "ruleset", notFound.Query)
}

func TestResolve_AmbiguousMatchNamesCandidates(t *testing.T) {
	client, _ := newTestClient(t)

	_, err := client.Resolve(context.Background(), ListingRef{Name: "dungeon"})

	var ambiguous *AmbiguousListingError
	require.ErrorAs(t, err, &ambiguous)
	require.Len(t, ambiguous.Candidates, 2)
	assert.Contains(t, err.Error(), "Dungeon Map Pack")
	assert.Contains(t, err.Error(), "Dungeon Tiles")
}

func TestListings_ParsesVisibleRows(t *testing.T) {
	client, _ := newTestClient(t)

	listings, err := client.Listings(context.Background())

	require.NoError(t, err)
	require.Len(t, listings, 3)
	assert.Equal(t, Listing{ID: 33, Name: "Dungeon Map Pack"}, listings[0])
	assert.Equal(t, Listing{ID: 55, Name: "Dungeon Tiles"}, listings[2])
}

func TestParseListings_IgnoresMalformedRows(t *testing.T) {
	listings, err := parseListings(`<a data-item-id="not-a-number">Broken</a><a data-item-id="-3">Negative</a><a data-item-id="9"> Fine </a>`)

	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, Listing{ID: 9, Name: "Fine"}, listings[0])
}

func TestParseListings_BoundedToFirstPage(t *testing.T) {
	var sb []byte
	for i := 1; i <= 150; i++ {
		sb = append(sb, []byte(rowFor(i))...)
	}

	listings, err := parseListings(string(sb))

	require.NoError(t, err)
	assert.Len(t, listings, maxListingScan)
}

func rowFor(id int) string {
	return `<a data-item-id="` + strconv.Itoa(id) + `">Item</a>`
}
