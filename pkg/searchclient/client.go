// Package searchclient implements the HTTP search client described in
// spec.md §4.7: landing-page discovery, GET/POST request construction, and
// a paginated stream of items following "next" links.
package searchclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/robert-malhotra/stac-go/pkg/href"
	"github.com/robert-malhotra/stac-go/pkg/search"
	"github.com/robert-malhotra/stac-go/pkg/stac"
)

// ErrNoSearchLink is returned when a landing page advertises neither a
// "search" link nor a usable fallback.
var ErrNoSearchLink = fmt.Errorf("searchclient: no search link advertised")

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default *http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpClient = c }
}

// WithLogger overrides the default slog.Logger.
func WithLogger(logger *slog.Logger) Option {
	return func(cl *Client) {
		if logger != nil {
			cl.logger = logger
		}
	}
}

// Client discovers and searches a single STAC API landing page. It is safe
// for concurrent use; discovery happens once and is cached.
type Client struct {
	landingURL string
	httpClient *http.Client
	logger     *slog.Logger

	mu           sync.Mutex
	discovered   bool
	conformsTo   []string
	searchGet    *stac.Link
	searchPost   *stac.Link
}

// New builds a Client for the landing page at landingURL. Discovery is
// deferred to the first call to Search's returned stream, per spec.md §4.7
// ("lazily and asynchronously").
func New(landingURL string, opts ...Option) *Client {
	c := &Client{
		landingURL: landingURL,
		httpClient: http.DefaultClient,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ConformsTo returns the landing page's conformance URIs, discovering the
// landing page first if needed.
func (c *Client) ConformsTo(ctx context.Context) ([]string, error) {
	if err := c.ensureDiscovered(ctx); err != nil {
		return nil, err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conformsTo, nil
}

// Search returns a lazily-paginated Stream over items matching params. No
// HTTP request is made until the stream's first Next call.
func (c *Client) Search(params *search.Params) *Stream {
	return &Stream{client: c, params: params, pending: true}
}

func (c *Client) ensureDiscovered(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.discovered {
		return nil
	}

	data, err := c.get(ctx, c.landingURL, nil)
	if err != nil {
		return fmt.Errorf("searchclient: fetching landing page: %w", err)
	}
	entity, err := href.ParseEntity(data)
	if err != nil {
		return fmt.Errorf("searchclient: parsing landing page: %w", err)
	}
	landing, ok := entity.(*stac.Catalog)
	if !ok {
		return fmt.Errorf("searchclient: landing page is a %T, want a Catalog", entity)
	}

	if raw, ok := landing.Field("conformsTo"); ok {
		var conforms []string
		if err := json.Unmarshal(raw, &conforms); err != nil {
			return fmt.Errorf("searchclient: decoding conformsTo: %w", err)
		}
		c.conformsTo = conforms
	}

	for _, l := range landing.Links {
		if l.Rel != "search" {
			continue
		}
		if strings.EqualFold(l.Method, http.MethodPost) {
			c.searchPost = l
		} else {
			c.searchGet = l
		}
	}
	if c.searchGet == nil && c.searchPost == nil {
		c.searchGet = stac.NewLink(href.Absolute("search", strings.TrimRight(c.landingURL, "/")+"/"), "search")
	}

	c.discovered = true
	c.logger.DebugContext(ctx, "searchclient: discovered landing page",
		slog.Bool("post_available", c.searchPost != nil),
		slog.Int("conforms_to", len(c.conformsTo)))
	return nil
}

// chooseMethod reports whether params must be carried over POST: spec.md §9
// prefers POST iff the request carries Intersects, a JSON-shaped Filter
// (cql2-json), or a Query, since none of those round-trip through a GET
// query string.
func chooseMethod(params *search.Params) bool {
	if params.Intersects != nil {
		return true
	}
	if len(params.Filter) > 0 && params.FilterLang == search.FilterLangCQL2JSON {
		return true
	}
	return len(params.Query) > 0
}

// buildRequest chooses POST (if available and chooseMethod requires a
// JSON-only field) or GET, per spec.md §4.7 step 2.
func (c *Client) buildRequest(params *search.Params) (method, url string, body []byte, err error) {
	c.mu.Lock()
	getLink, postLink, landingURL := c.searchGet, c.searchPost, c.landingURL
	c.mu.Unlock()

	needsJSONOnly := chooseMethod(params)

	if postLink != nil && (needsJSONOnly || getLink == nil) {
		body, err = params.ToJSON()
		if err != nil {
			return "", "", nil, err
		}
		return http.MethodPost, href.Absolute(postLink.Href, landingURL), body, nil
	}
	if getLink != nil {
		q := params.ToQuery()
		u := href.Absolute(getLink.Href, landingURL)
		if len(q) > 0 {
			u += "?" + q.Encode()
		}
		return http.MethodGet, u, nil, nil
	}
	return "", "", nil, ErrNoSearchLink
}

// get issues a GET request and returns the decoded response body.
func (c *Client) get(ctx context.Context, url string, body []byte) ([]byte, error) {
	return c.do(ctx, http.MethodGet, url, body)
}

func (c *Client) do(ctx context.Context, method, url string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/geo+json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.DebugContext(ctx, "searchclient: request", slog.String("method", method), slog.String("url", url))
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.ErrorContext(ctx, "searchclient: non-2xx response",
			slog.Int("status", resp.StatusCode), slog.String("url", url))
		return nil, fmt.Errorf("%s %s: status %d: %s", method, url, resp.StatusCode, data)
	}
	return data, nil
}
