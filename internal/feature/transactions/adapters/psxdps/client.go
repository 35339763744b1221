// Package psxdps downloads and parses the exchange's daily off-market
// transactions CSV.
package psxdps

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"psx_backend/internal/feature/transactions/domain/entity"
	"psx_backend/internal/feature/transactions/usecase"
	"psx_backend/internal/shared/syncerr"
)

// sectionMarker separates the broker-to-broker section from the
// client-to-client/institutional section in the published file. The
// stray commas are part of the upstream format.
const sectionMarker = "CROSS ,TRANSACTIONS, BETWEEN, CLIENT TO ,CLIENT & FINANCIAL, INSTITUTIONS"

const feedDateLayout = "02-Jan-06"

var (
	b2bMemberRe = regexp.MustCompile(`MEMBER\s\+(\d+)\s-(\d+)`)
	memberRe    = regexp.MustCompile(`\d+`)
)

// Config holds the settings for the settlement-feed client.
type Config struct {
	// BaseURL is the portal root, e.g. "https://dps.psx.com.pk".
	BaseURL string
}

// Client downloads the settlement feed.
type Client struct {
	cfg    Config
	client *http.Client
	log    *slog.Logger
}

var _ usecase.TransactionSource = (*Client)(nil)

// NewClient creates a Client using the given HTTP client. A nil logger
// disables logging.
func NewClient(cfg Config, client *http.Client, log *slog.Logger) *Client {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Client{cfg: cfg, client: client, log: log}
}

// FetchTransactions downloads and parses one trading day's feed. A file
// that cannot be fetched or does not contain the two expected sections
// is a source-unavailable failure; individual unparseable rows are
// dropped.
func (c *Client) FetchTransactions(ctx context.Context, date time.Time) ([]entity.Transaction, error) {
	u := fmt.Sprintf("%s/download/omts/%s.csv", c.cfg.BaseURL, date.Format("2006-01-02"))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
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
		return nil, fmt.Errorf("%w: transactions feed http %d", syncerr.ErrSourceUnavailable, res.StatusCode)
	}

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", syncerr.ErrSourceUnavailable, err)
	}

	sections := strings.Split(string(raw), sectionMarker)
	if len(sections) != 2 {
		return nil, fmt.Errorf("%w: transactions feed format not recognized", syncerr.ErrSourceUnavailable)
	}

	transactions := c.parseSection(sections[0], entity.BrokerToBroker)
	transactions = append(transactions, c.parseSection(sections[1], entity.InstitutionToInstitution)...)
	c.log.Debug("transactions feed parsed",
		"date", date.Format("2006-01-02"), "records", len(transactions))
	return transactions, nil
}

// parseSection reads one CSV section. Header and separator lines fail
// the date parse and are skipped, matching the upstream file's layout of
// repeated headers inside a section.
func (c *Client) parseSection(section string, kind entity.TransactionType) []entity.Transaction {
	reader := csv.NewReader(strings.NewReader(strings.TrimSpace(section)))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var out []entity.Transaction
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		if len(row) < 8 {
			continue
		}
		date, err := time.Parse(feedDateLayout, strings.TrimSpace(row[0]))
		if err != nil {
			continue
		}
		t, err := parseRow(date, row, kind)
		if err != nil {
			c.log.Warn("dropping transaction row", "symbol", row[3], "error", err)
			continue
		}
		out = append(out, t)
	}
	return out
}

func parseRow(date time.Time, row []string, kind entity.TransactionType) (entity.Transaction, error) {
	t := entity.Transaction{
		Date:       date,
		SymbolCode: strings.TrimSpace(row[3]),
		Company:    strings.TrimSpace(row[4]),
		Type:       kind,
	}
	if t.SymbolCode == "" {
		return t, fmt.Errorf("missing symbol code")
	}

	var err error
	if t.SettlementDate, err = time.Parse(feedDateLayout, strings.TrimSpace(row[1])); err != nil {
		return t, fmt.Errorf("settlement date: %w", err)
	}
	if t.BuyerCode, t.SellerCode, err = memberCodes(row[2], kind); err != nil {
		return t, err
	}
	if t.Turnover, err = parseCommaInt(row[5]); err != nil {
		return t, fmt.Errorf("turnover: %w", err)
	}
	if t.Rate, err = parseCommaFloat(row[6]); err != nil {
		return t, fmt.Errorf("rate: %w", err)
	}
	if t.Value, err = parseCommaFloat(row[7]); err != nil {
		return t, fmt.Errorf("value: %w", err)
	}
	return t, nil
}

// memberCodes extracts buyer and seller member codes. Broker-to-broker
// rows carry both in "MEMBER +XXX -YYY" form; institutional rows carry
// one code acting as both sides.
func memberCodes(field string, kind entity.TransactionType) (buyer, seller string, err error) {
	if kind == entity.BrokerToBroker {
		m := b2bMemberRe.FindStringSubmatch(field)
		if m == nil {
			return "", "", fmt.Errorf("member field %q not in broker form", field)
		}
		return padCode(m[1]), padCode(m[2]), nil
	}
	code := memberRe.FindString(field)
	if code == "" {
		return "", "", fmt.Errorf("member field %q has no code", field)
	}
	return padCode(code), padCode(code), nil
}

func padCode(code string) string {
	for len(code) < 3 {
		code = "0" + code
	}
	return code
}

func parseCommaInt(s string) (int64, error) {
	return strconv.ParseInt(strings.ReplaceAll(strings.TrimSpace(s), ",", ""), 10, 64)
}

func parseCommaFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(s), ",", ""), 64)
}
