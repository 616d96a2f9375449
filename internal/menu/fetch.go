// Package menu ingests the published spreadsheet the café menu lives in:
// it normalizes the configured link, fetches it as comma-delimited text and
// validates the rows into menu items.
package menu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/farzadkfc/cafetill/internal/models"
)

var (
	// ErrConfiguration means the sheet url is missing or is not a published
	// csv link. This is user guidance, not a security check.
	ErrConfiguration = errors.New("menu: sheet url not usable")
	// ErrFetch means the retrieval itself failed (transport error or non-2xx).
	ErrFetch = errors.New("menu: fetch failed")
	// ErrFormat means rows were retrieved but none carried the expected
	// name/price columns.
	ErrFormat = errors.New("menu: unexpected sheet format")
)

const defaultTimeout = 15 * time.Second

type Fetcher struct {
	client *http.Client
}

func NewFetcher(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Fetcher{client: &http.Client{Timeout: timeout}}
}

// FetchMenu retrieves and validates the menu behind rawURL. A sheet with only
// a header line (or no recognizable lines at all) yields an empty menu and no
// error; rows that all fail structural validation yield ErrFormat.
func (f *Fetcher) FetchMenu(ctx context.Context, rawURL string) ([]models.MenuItem, error) {
	if rawURL == "" {
		return nil, fmt.Errorf("%w: no url configured", ErrConfiguration)
	}
	if strings.Contains(rawURL, "/edit") {
		return nil, fmt.Errorf("%w: %q is an edit link, publish the sheet (File -> Share -> Publish to web) and use the csv link", ErrConfiguration, rawURL)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, normalizeSheetURL(rawURL), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s", ErrFetch, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}

	rows := parseTable(string(body))
	items, structurallyValid := mapRows(rows)
	if len(rows) > 0 && structurallyValid == 0 {
		return nil, fmt.Errorf("%w: no name/price columns recognised (wanted name/Name, price/Price, category/Category)", ErrFormat)
	}
	return items, nil
}

// normalizeSheetURL rewrites known published-link shapes into the
// export-as-csv form.
func normalizeSheetURL(u string) string {
	if strings.Contains(u, "/pubhtml") {
		return strings.Replace(u, "/pubhtml", "/pub?output=csv", 1)
	}
	if strings.Contains(u, "/pub?") && !strings.Contains(u, "output=csv") {
		return u + "&output=csv"
	}
	return u
}
