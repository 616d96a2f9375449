package menu

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchMenuEmptyURL(t *testing.T) {
	_, err := NewFetcher(0).FetchMenu(context.Background(), "")
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestFetchMenuEditURL(t *testing.T) {
	_, err := NewFetcher(0).FetchMenu(context.Background(), "https://docs.google.com/spreadsheets/d/abc/edit#gid=0")
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestFetchMenuHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := NewFetcher(0).FetchMenu(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrFetch)
}

func TestFetchMenuParsesRows(t *testing.T) {
	srv := serve(t, "item_id,name,price,category,active\n1,Espresso,40000,Hot Drinks,true\n2,Iced Latte,65000,Cold Drinks,TRUE\n")

	items, err := NewFetcher(0).FetchMenu(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "1", items[0].ItemID)
	assert.Equal(t, "Espresso", items[0].Name)
	assert.Equal(t, 40000.0, items[0].Price)
	assert.Equal(t, "Hot Drinks", items[0].Category)
	assert.True(t, items[0].Active)
	assert.Equal(t, "Iced Latte", items[1].Name)
}

func TestFetchMenuAlternateCasing(t *testing.T) {
	srv := serve(t, "Name,Price,Category\nTea,20000,Hot Drinks\n")

	items, err := NewFetcher(0).FetchMenu(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Tea", items[0].Name)
	// missing identifier falls back to a synthesized name-index key
	assert.Equal(t, "Tea-0", items[0].ItemID)
	// missing active column defaults to true
	assert.True(t, items[0].Active)
}

func TestFetchMenuHeaderOnly(t *testing.T) {
	srv := serve(t, "name,price,category\n")

	items, err := NewFetcher(0).FetchMenu(context.Background(), srv.URL)
	assert.NoError(t, err)
	assert.Empty(t, items)
}

func TestFetchMenuAllInactive(t *testing.T) {
	srv := serve(t, "name,price,category,active\nEspresso,40000,Hot Drinks,false\nTea,20000,Hot Drinks,false\n")

	items, err := NewFetcher(0).FetchMenu(context.Background(), srv.URL)
	assert.NoError(t, err)
	assert.Empty(t, items)
}

func TestFetchMenuWrongColumns(t *testing.T) {
	srv := serve(t, "sku,cost\nA1,40000\nA2,20000\n")

	_, err := NewFetcher(0).FetchMenu(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrFormat)
}

func TestFetchMenuFiltersBadRows(t *testing.T) {
	srv := serve(t, "name,price,category\n,1000,a\nundefined,1000,a\nScone,cheap,Bakery\nCroissant,55000,Bakery\n")

	items, err := NewFetcher(0).FetchMenu(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Croissant", items[0].Name)
}

func TestNormalizeSheetURL(t *testing.T) {
	assert.Equal(t,
		"https://docs.google.com/spreadsheets/d/e/abc/pub?output=csv",
		normalizeSheetURL("https://docs.google.com/spreadsheets/d/e/abc/pubhtml"))
	assert.Equal(t,
		"https://docs.google.com/spreadsheets/d/e/abc/pub?gid=0&output=csv",
		normalizeSheetURL("https://docs.google.com/spreadsheets/d/e/abc/pub?gid=0"))
	assert.Equal(t,
		"https://docs.google.com/spreadsheets/d/e/abc/pub?output=csv",
		normalizeSheetURL("https://docs.google.com/spreadsheets/d/e/abc/pub?output=csv"))
	assert.Equal(t,
		"https://example.com/menu.csv",
		normalizeSheetURL("https://example.com/menu.csv"))
}

func TestParseTableCoercion(t *testing.T) {
	rows := parseTable("a,b,c,d\n1.5,true,FALSE,hello\n")
	require.Len(t, rows, 1)
	assert.Equal(t, 1.5, rows[0]["a"])
	assert.Equal(t, true, rows[0]["b"])
	assert.Equal(t, false, rows[0]["c"])
	assert.Equal(t, "hello", rows[0]["d"])
}

func TestParseTableShortLine(t *testing.T) {
	rows := parseTable("a,b,c\n1,2\n")
	require.Len(t, rows, 1)
	assert.Contains(t, rows[0], "a")
	assert.Contains(t, rows[0], "b")
	// the missing trailing cell stays absent rather than becoming empty
	assert.NotContains(t, rows[0], "c")
}
