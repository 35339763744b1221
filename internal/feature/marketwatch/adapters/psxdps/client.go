// Package psxdps scrapes the exchange's data portal: the market-watch,
// listings and defaulters HTML tables plus the index-composition CSV.
package psxdps

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"psx_backend/internal/feature/marketwatch/domain/entity"
	"psx_backend/internal/feature/marketwatch/usecase"
	"psx_backend/internal/shared/syncerr"
)

const (
	marketWatchPath  = "/market-watch"
	listingsPath     = "/listings-table/main/nc"
	defaultersPath   = "/listings-table/main/dc"
	constituentsPath = "/download/kse100idx.csv"
)

// Config holds the settings for the data-portal client.
type Config struct {
	// BaseURL is the portal root, e.g. "https://dps.psx.com.pk".
	BaseURL string
}

// Client scrapes the data portal.
type Client struct {
	cfg    Config
	client *http.Client
	log    *slog.Logger
}

var (
	_ usecase.SnapshotSource    = (*Client)(nil)
	_ usecase.ConstituentSource = (*Client)(nil)
)

// NewClient creates a Client using the given HTTP client. A nil logger
// disables logging.
func NewClient(cfg Config, client *http.Client, log *slog.Logger) *Client {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{cfg: cfg, client: client, log: log}
}

// FetchSnapshot scrapes the live market-watch table. Each symbol comes
// back as one record per index it is listed in.
func (c *Client) FetchSnapshot(ctx context.Context) ([]entity.SnapshotRecord, error) {
	rows, err := c.fetchTable(ctx, marketWatchPath)
	if err != nil {
		return nil, err
	}

	var records []entity.SnapshotRecord
	dropped := 0
	for _, cols := range rows {
		if len(cols) != 11 {
			dropped++
			continue
		}
		symbol := cols[0].Strong
		if symbol == "" {
			symbol = cols[0].Text
		}
		rec, err := parseSnapshotRow(symbol, cols)
		if err != nil {
			dropped++
			c.log.Warn("dropping market-watch row", "symbol", symbol, "error", err)
			continue
		}
		for _, idx := range splitListedIn(cols[2].Text) {
			rec.ListedIn = idx
			records = append(records, rec)
		}
	}
	c.log.Debug("market watch scraped", "records", len(records), "dropped", dropped)
	return records, nil
}

func parseSnapshotRow(symbol string, cols []tableCell) (entity.SnapshotRecord, error) {
	rec := entity.SnapshotRecord{
		Symbol: symbol,
		Sector: SectorName(cols[1].Text),
	}
	var err error
	if rec.LDCP, err = parseOrderFloat(cols[3]); err != nil {
		return rec, fmt.Errorf("ldcp: %w", err)
	}
	if rec.Open, err = parseOrderFloat(cols[4]); err != nil {
		return rec, fmt.Errorf("open: %w", err)
	}
	if rec.High, err = parseOrderFloat(cols[5]); err != nil {
		return rec, fmt.Errorf("high: %w", err)
	}
	if rec.Low, err = parseOrderFloat(cols[6]); err != nil {
		return rec, fmt.Errorf("low: %w", err)
	}
	if rec.Current, err = parseOrderFloat(cols[7]); err != nil {
		return rec, fmt.Errorf("current: %w", err)
	}
	if rec.Change, err = parseOrderFloat(cols[8]); err != nil {
		return rec, fmt.Errorf("change: %w", err)
	}
	if rec.ChangePercent, err = parseOrderFloat(cols[9]); err != nil {
		return rec, fmt.Errorf("change percent: %w", err)
	}
	if rec.Volume, err = parseOrderInt(cols[10]); err != nil {
		return rec, fmt.Errorf("volume: %w", err)
	}
	return rec, nil
}

// FetchListings scrapes the regular-counter listings table.
func (c *Client) FetchListings(ctx context.Context) ([]entity.ListingRecord, error) {
	rows, err := c.fetchTable(ctx, listingsPath)
	if err != nil {
		return nil, err
	}

	var records []entity.ListingRecord
	for _, cols := range rows {
		if len(cols) != 7 {
			continue
		}
		shares, err := parseCommaInt(cols[4].Text)
		if err != nil {
			c.log.Warn("dropping listings row", "symbol", cols[0].Text, "error", err)
			continue
		}
		freeFloat, err := parseCommaInt(cols[5].Text)
		if err != nil {
			c.log.Warn("dropping listings row", "symbol", cols[0].Text, "error", err)
			continue
		}
		records = append(records, entity.ListingRecord{
			Symbol:       cols[0].Text,
			Name:         cols[1].Text,
			Sector:       cols[2].Text,
			ClearingType: cols[3].Text,
			Shares:       shares,
			FreeFloat:    freeFloat,
			ListedIn:     cols[6].Tags,
		})
	}
	return records, nil
}

// FetchDefaulters scrapes the defaulting-companies table.
func (c *Client) FetchDefaulters(ctx context.Context) ([]entity.DefaulterRecord, error) {
	rows, err := c.fetchTable(ctx, defaultersPath)
	if err != nil {
		return nil, err
	}

	var records []entity.DefaulterRecord
	for _, cols := range rows {
		if len(cols) != 8 {
			continue
		}
		shares, err := parseCommaInt(cols[5].Text)
		if err != nil {
			c.log.Warn("dropping defaulters row", "symbol", cols[0].Text, "error", err)
			continue
		}
		freeFloat, err := parseCommaInt(cols[6].Text)
		if err != nil {
			c.log.Warn("dropping defaulters row", "symbol", cols[0].Text, "error", err)
			continue
		}
		records = append(records, entity.DefaulterRecord{
			Symbol:           cols[0].Text,
			Name:             cols[1].Text,
			Sector:           cols[2].Text,
			DefaultingClause: cols[3].Text,
			ClearingType:     cols[4].Text,
			Shares:           shares,
			FreeFloat:        freeFloat,
			ListedIn:         cols[7].Tags,
		})
	}
	return records, nil
}

// FetchConstituents downloads the published KSE-100 composition file.
func (c *Client) FetchConstituents(ctx context.Context) ([]entity.Constituent, error) {
	body, err := c.get(ctx, constituentsPath)
	if err != nil {
		return nil, err
	}
	defer c.closeBody(body)

	reader := csv.NewReader(body)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var records []entity.Constituent
	first := true
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: constituents csv: %v", syncerr.ErrSourceUnavailable, err)
		}
		if first {
			first = false
			continue
		}
		if len(row) < 10 {
			continue
		}
		rec, err := parseConstituentRow(row)
		if err != nil {
			c.log.Warn("dropping constituents row", "isin", row[0], "error", err)
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseConstituentRow(row []string) (entity.Constituent, error) {
	rec := entity.Constituent{
		ISIN:    strings.TrimSpace(row[0]),
		Symbol:  strings.TrimSpace(row[1]),
		Company: strings.TrimSpace(row[2]),
	}
	var err error
	if rec.Price, err = parseCommaFloat(row[3]); err != nil {
		return rec, fmt.Errorf("price: %w", err)
	}
	if rec.IdxWeight, err = parseCommaFloat(row[4]); err != nil {
		return rec, fmt.Errorf("index weight: %w", err)
	}
	if rec.FFBasedShares, err = parseCommaInt(row[5]); err != nil {
		return rec, fmt.Errorf("free-float shares: %w", err)
	}
	if rec.FFBasedMcap, err = parseCommaInt(row[6]); err != nil {
		return rec, fmt.Errorf("free-float mcap: %w", err)
	}
	if rec.OrdShares, err = parseCommaInt(row[7]); err != nil {
		return rec, fmt.Errorf("ordinary shares: %w", err)
	}
	if rec.OrdSharesMcap, err = parseCommaInt(row[8]); err != nil {
		return rec, fmt.Errorf("ordinary mcap: %w", err)
	}
	if rec.Volume, err = parseCommaInt(row[9]); err != nil {
		return rec, fmt.Errorf("volume: %w", err)
	}
	return rec, nil
}

func (c *Client) fetchTable(ctx context.Context, path string) ([][]tableCell, error) {
	body, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}
	defer c.closeBody(body)

	rows, err := parseTableRows(body)
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", syncerr.ErrSourceUnavailable, path, err)
	}
	if rows == nil {
		return nil, fmt.Errorf("%w: no data table at %s", syncerr.ErrSourceUnavailable, path)
	}
	return rows, nil
}

func (c *Client) get(ctx context.Context, path string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.BaseURL+path, nil)
	if err != nil {
		return nil, err
	}
	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", syncerr.ErrSourceUnavailable, err)
	}
	if res.StatusCode >= 400 {
		c.closeBody(res.Body)
		return nil, fmt.Errorf("%w: %s http %d", syncerr.ErrSourceUnavailable, path, res.StatusCode)
	}
	return res.Body, nil
}

func (c *Client) closeBody(body io.Closer) {
	if err := body.Close(); err != nil {
		c.log.Warn("failed to close response body", "error", err)
	}
}

func splitListedIn(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		out = []string{""}
	}
	return out
}

// parseOrderFloat reads a numeric cell, preferring the data-order
// attribute the portal uses for sorting over the display text.
func parseOrderFloat(cell tableCell) (float64, error) {
	return parseCommaFloat(orderValue(cell))
}

func parseOrderInt(cell tableCell) (int64, error) {
	return parseCommaInt(orderValue(cell))
}

func orderValue(cell tableCell) string {
	if cell.DataOrder != "" {
		return cell.DataOrder
	}
	return cell.Text
}

func parseCommaFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", ""), 64)
}

func parseCommaInt(s string) (int64, error) {
	return strconv.ParseInt(strings.ReplaceAll(strings.TrimSpace(s), ",", ""), 10, 64)
}
