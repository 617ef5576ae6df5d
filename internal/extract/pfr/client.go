// Package pfr fetches season passing statistics from a
// pro-football-reference style stats site and converts the HTML stats
// table into the pipeline's raw table shape.
package pfr

import (
	"context"
	"fmt"
	"net/http"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/wrowley/gridiron/internal/table"
	"github.com/wrowley/gridiron/pkg/config"
)

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"

// Client is a rate-limited scraper for season passing tables. Stats
// sites throttle aggressively, so every request goes through the
// limiter.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	log        zerolog.Logger
}

// NewClient creates a scraper client from config.
func NewClient(cfg config.ScraperConfig, log zerolog.Logger) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: cfg.HTTPTimeout},
		limiter:    rate.NewLimiter(rate.Limit(cfg.RatePerSec), 1),
		log:        log.With().Str("component", "extract.pfr").Logger(),
	}
}

// FetchPassing downloads and parses the passing table for a season.
// Column names come out raw ("Player", "Yds", "TD", ...), ready for the
// column normalizer.
func (c *Client) FetchPassing(ctx context.Context, year int) (*table.Table, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/years/%d/passing.htm", c.baseURL, year)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request failed: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse response failed: %w", err)
	}

	t, err := parsePassingTable(doc)
	if err != nil {
		return nil, err
	}

	c.log.Info().
		Int("year", year).
		Int("rows", t.RowCount()).
		Int("columns", t.ColumnCount()).
		Msg("fetched season passing stats")
	return t, nil
}

// parsePassingTable extracts the #passing stats table. Repeated header
// rows inside tbody (class "thead") are skipped.
func parsePassingTable(doc *goquery.Document) (*table.Table, error) {
	sel := doc.Find("table#passing")
	if sel.Length() == 0 {
		return nil, fmt.Errorf("no passing table found in document")
	}

	var header []string
	sel.Find("thead tr").Last().Find("th").Each(func(_ int, th *goquery.Selection) {
		header = append(header, th.Text())
	})
	if len(header) == 0 {
		return nil, fmt.Errorf("passing table has no header row")
	}

	var rows [][]string
	sel.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		if tr.HasClass("thead") {
			return
		}
		row := make([]string, 0, len(header))
		tr.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			row = append(row, cell.Text())
		})
		if len(row) > 0 {
			rows = append(rows, row)
		}
	})

	return table.FromRecords(header, rows)
}
