// Package entrez is a small client for the NCBI E-utilities endpoints used by
// seqfetch: taxonomy lookup, history-backed search and paginated fetch.
package entrez

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
)

// DefaultBaseURL is the public E-utilities root.
const DefaultBaseURL = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/"

// DefaultTool is sent as the "tool" parameter unless overridden.
const DefaultTool = "seqfetch"

type (
	// Option configures the Client.
	Option func(*Client)

	// Client issues E-utilities requests. It keeps no per-search state: the
	// WebEnv/query_key pair is passed explicitly to every Fetch.
	Client struct {
		base   *url.URL
		http   *http.Client
		email  string
		apiKey string
		tool   string
	}

	// HTTPStatusError reports a non-2xx response.
	HTTPStatusError struct {
		StatusCode int
		Message    string
	}

	// ServiceError reports an error message embedded in a 200 response body.
	ServiceError struct {
		Op      string
		Message string
	}
)

// ErrTaxonNotFound is returned by LookupTaxon when the ID resolves to nothing.
var ErrTaxonNotFound = errors.New("taxon not found")

func (e *HTTPStatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("entrez http status %d", e.StatusCode)
	}
	return fmt.Sprintf("entrez http status %d: %s", e.StatusCode, e.Message)
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("entrez %s: %s", e.Op, e.Message)
}

// WithHTTPClient overrides the underlying *http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.http = c }
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		if d > 0 && cl.http != nil {
			cl.http.Timeout = d
		}
	}
}

// WithCredentials sets the contact email and API key. Neither is validated;
// an empty key means keyless access (3 requests/second at NCBI).
func WithCredentials(email, apiKey string) Option {
	return func(cl *Client) {
		cl.email = email
		cl.apiKey = apiKey
	}
}

// WithTool sets the "tool" parameter.
func WithTool(tool string) Option {
	return func(cl *Client) { cl.tool = tool }
}

// New constructs a Client against baseURL (DefaultBaseURL when empty).
func New(baseURL string, opts ...Option) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("entrez: bad base url %q: %w", baseURL, err)
	}
	cl := &Client{
		base: u,
		http: &http.Client{Timeout: 60 * time.Second},
		tool: DefaultTool,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(cl)
		}
	}
	if cl.http == nil {
		cl.http = &http.Client{Timeout: 60 * time.Second}
	}
	return cl, nil
}

// get issues GET <base><endpoint>?params and returns the (decompressed) body.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	q := url.Values{}
	for k, vs := range params {
		q[k] = vs
	}
	if c.email != "" {
		q.Set("email", c.email)
	}
	if c.apiKey != "" {
		q.Set("api_key", c.apiKey)
	}
	if c.tool != "" {
		q.Set("tool", c.tool)
	}

	u := c.base.ResolveReference(&url.URL{Path: endpoint})
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	// Asking explicitly turns off the transport's transparent gunzip.
	req.Header.Set("Accept-Encoding", "gzip")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	var body io.Reader = resp.Body
	if strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		zr, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("entrez %s: gzip: %w", endpoint, err)
		}
		defer func() { _ = zr.Close() }()
		body = zr
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("entrez %s: read body: %w", endpoint, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPStatusError{StatusCode: resp.StatusCode, Message: errorMessage(data)}
	}
	return data, nil
}
