// Package sheets reads ranges from Google Sheets through the v4 REST API.
//
// Requests are authorized by the *http.Client passed to [NewClient],
// normally one built by [HTTPClient] from the installed-app OAuth flow.
// Responses are cached through [cache.Cache] and transient failures are
// retried with [httputil.RetryWithBackoff].
package sheets

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sheetprint/pkg/cache"
	"github.com/matzehuels/sheetprint/pkg/errors"
	"github.com/matzehuels/sheetprint/pkg/httputil"
	"github.com/matzehuels/sheetprint/pkg/observability"
	"github.com/matzehuels/sheetprint/pkg/source"
)

// DefaultBaseURL is the Sheets API endpoint.
const DefaultBaseURL = "https://sheets.googleapis.com"

const httpTimeout = 30 * time.Second

// ErrNotFound is returned when the spreadsheet or one of its sheets does not exist.
var ErrNotFound = stderrors.New("spreadsheet not found")

// Client implements [source.RowSource] on top of the Sheets REST API.
type Client struct {
	http    *http.Client
	baseURL string
	cache   cache.Cache
	keyer   cache.Keyer
	refresh bool
	logger  *log.Logger

	rangeTTL  time.Duration
	sheetsTTL time.Duration
}

// Option configures a [Client].
type Option func(*Client)

// WithBaseURL points the client at another endpoint (tests, proxies).
func WithBaseURL(u string) Option { return func(c *Client) { c.baseURL = u } }

// WithCache enables response caching.
func WithCache(ch cache.Cache, keyer cache.Keyer) Option {
	return func(c *Client) { c.cache, c.keyer = ch, keyer }
}

// WithTTL overrides the lifetimes of cached ranges and tab lists.
// Zero values keep the defaults.
func WithTTL(rangeTTL, sheetsTTL time.Duration) Option {
	return func(c *Client) {
		if rangeTTL > 0 {
			c.rangeTTL = rangeTTL
		}
		if sheetsTTL > 0 {
			c.sheetsTTL = sheetsTTL
		}
	}
}

// WithRefresh bypasses cached entries; fresh responses are still stored.
func WithRefresh(refresh bool) Option { return func(c *Client) { c.refresh = refresh } }

// WithLogger sets the logger used for cache and request diagnostics.
func WithLogger(l *log.Logger) Option { return func(c *Client) { c.logger = l } }

// NewClient creates a Client sending requests with hc.
// A nil hc uses an unauthenticated client, which only works for public sheets
// behind a proxy that adds credentials.
func NewClient(hc *http.Client, opts ...Option) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: httpTimeout}
	}
	c := &Client{
		http:    hc,
		baseURL: DefaultBaseURL,
		cache:   cache.NewNullCache(),
		keyer:   cache.NewDefaultKeyer(),
		logger:  log.Default(),

		rangeTTL:  cache.TTLRange,
		sheetsTTL: cache.TTLSheets,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.cache == nil {
		c.cache = cache.NewNullCache()
	}
	if c.keyer == nil {
		c.keyer = cache.NewDefaultKeyer()
	}
	return c
}

type valueRange struct {
	Range  string  `json:"range"`
	Values [][]any `json:"values"`
}

type spreadsheet struct {
	Sheets []struct {
		Properties struct {
			Title string `json:"title"`
		} `json:"properties"`
	} `json:"sheets"`
}

// Range fetches the formatted values of rng.
func (c *Client) Range(ctx context.Context, id, rng string) ([][]string, error) {
	if err := errors.ValidateSpreadsheetID(id); err != nil {
		return nil, err
	}
	if _, err := source.ParseRange(rng); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/v4/spreadsheets/%s/values/%s", c.baseURL, id, url.PathEscape(rng))
	var rows [][]string
	err := c.cached(ctx, "range", c.keyer.RangeKey(id, rng), c.rangeTTL, &rows, func() error {
		var vr valueRange
		if err := c.get(ctx, endpoint, &vr); err != nil {
			return err
		}
		rows = stringify(vr.Values)
		return nil
	})
	if err != nil {
		return nil, c.annotate(err, id, "range %s", rng)
	}
	c.logger.Debug("fetched range", "range", rng, "rows", len(rows))
	return rows, nil
}

// Sheets fetches the tab titles of a spreadsheet in workbook order.
func (c *Client) Sheets(ctx context.Context, id string) ([]string, error) {
	if err := errors.ValidateSpreadsheetID(id); err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/v4/spreadsheets/%s?fields=%s", c.baseURL, id, url.QueryEscape("sheets.properties.title"))
	var titles []string
	err := c.cached(ctx, "sheets", c.keyer.SheetsKey(id), c.sheetsTTL, &titles, func() error {
		var s spreadsheet
		if err := c.get(ctx, endpoint, &s); err != nil {
			return err
		}
		titles = make([]string, 0, len(s.Sheets))
		for _, sh := range s.Sheets {
			titles = append(titles, sh.Properties.Title)
		}
		return nil
	})
	if err != nil {
		return nil, c.annotate(err, id, "sheet list")
	}
	return titles, nil
}

// cached returns the entry under key decoded into v, or runs fetch with
// retries and stores v on success.
func (c *Client) cached(ctx context.Context, keyType, key string, ttl time.Duration, v any, fetch func() error) error {
	hooks := observability.Cache()
	if !c.refresh {
		if data, ok, err := c.cache.Get(ctx, key); err != nil {
			c.logger.Warn("cache read failed", "error", err)
		} else if ok && json.Unmarshal(data, v) == nil {
			hooks.OnCacheHit(ctx, keyType)
			return nil
		}
		hooks.OnCacheMiss(ctx, keyType)
	}
	if err := httputil.RetryWithBackoff(ctx, fetch); err != nil {
		return err
	}
	if data, err := json.Marshal(v); err == nil {
		if err := c.cache.Set(ctx, key, data, ttl); err != nil {
			c.logger.Warn("cache write failed", "error", err)
		} else {
			hooks.OnCacheSet(ctx, keyType, len(data))
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, endpoint string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	hooks := observability.HTTP()
	host, path := req.URL.Host, req.URL.Path
	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return &httputil.RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "GET %s", path)}
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	if err := httputil.CheckStatus(resp); err != nil {
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "decode response")
	}
	return nil
}

// annotate attaches the spreadsheet to err and maps missing resources to
// [ErrNotFound].
func (c *Client) annotate(err error, id, format string, args ...any) error {
	what := fmt.Sprintf(format, args...)
	if errors.Is(err, errors.ErrCodeNotFound) {
		return errors.Wrap(errors.ErrCodeSheetNotFound, fmt.Errorf("%w: %v", ErrNotFound, err), "spreadsheet %s: %s", id, what)
	}
	return fmt.Errorf("spreadsheet %s: %s: %w", id, what, err)
}

// stringify converts decoded JSON cells to strings. FORMATTED_VALUE
// responses only carry strings, but numbers and booleans are accepted for
// UNFORMATTED_VALUE proxies.
func stringify(values [][]any) [][]string {
	rows := make([][]string, len(values))
	for i, row := range values {
		cells := make([]string, len(row))
		for j, v := range row {
			switch x := v.(type) {
			case nil:
			case string:
				cells[j] = x
			case float64:
				cells[j] = strconv.FormatFloat(x, 'f', -1, 64)
			case bool:
				cells[j] = strconv.FormatBool(x)
			default:
				cells[j] = fmt.Sprint(x)
			}
		}
		rows[i] = cells
	}
	return rows
}

var _ source.RowSource = (*Client)(nil)
