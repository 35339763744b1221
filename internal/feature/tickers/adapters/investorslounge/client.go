package investorslounge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"psx_backend/internal/feature/tickers/domain/entity"
	"psx_backend/internal/feature/tickers/usecase"
	"psx_backend/internal/shared/syncerr"
)

const (
	proxyPath   = "/Default/SendPostRequest"
	historyPath = "PriceHistory/GetPriceHistoryCompanyWise"
	dateLayout  = "02 Jan 2006"
)

// Client implements the price-history source against the Investors
// Lounge proxy API.
type Client struct {
	cfg    Config
	client *http.Client
	log    *slog.Logger
}

var _ usecase.PriceHistorySource = (*Client)(nil)

// NewClient creates a Client using the given HTTP client. A nil logger
// disables logging.
func NewClient(cfg Config, client *http.Client, log *slog.Logger) *Client {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{cfg: cfg, client: client, log: log}
}

// FetchPriceHistory retrieves the daily records for symbol over the
// inclusive [from, to] window. Any transport, HTTP or payload-shape
// failure is reported as a source-unavailable error so callers can treat
// it as non-fatal for the rest of the run.
func (c *Client) FetchPriceHistory(ctx context.Context, symbol string, from, to time.Time) ([]entity.RawPoint, error) {
	inner, err := json.Marshal(historyQuery{
		Company:  symbol,
		Sort:     "0",
		DateFrom: from.Format(dateLayout),
		DateTo:   to.Format(dateLayout),
	})
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(postRequest{URL: historyPath, Data: string(inner)})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+proxyPath, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "*/*")
	req.Header.Set("Content-Type", "application/json; charset=UTF-8")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")

	res, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", syncerr.ErrSourceUnavailable, err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			c.log.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: price history http %d", syncerr.ErrSourceUnavailable, res.StatusCode)
	}

	// The endpoint answers errors with non-array JSON, so a decode
	// failure means the source misbehaved, not the caller.
	var records []priceRecord
	if err := json.NewDecoder(res.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: unexpected payload: %v", syncerr.ErrSourceUnavailable, err)
	}

	c.log.Debug("price history fetched", "symbol", symbol, "records", len(records))

	points := make([]entity.RawPoint, 0, len(records))
	for _, r := range records {
		points = append(points, toRawPoint(r))
	}
	return points, nil
}

func toRawPoint(r priceRecord) entity.RawPoint {
	return entity.RawPoint{
		Date:          firstNonEmpty(r.Date, r.DateAlt),
		Open:          string(r.Open),
		High:          string(r.High),
		Low:           string(r.Low),
		Close:         string(r.Close),
		Change:        string(r.Change),
		ChangePercent: firstNonEmpty(string(r.ChangePercent), string(r.ChangeP), string(r.ChangeValueP)),
		Volume:        string(r.Volume),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
