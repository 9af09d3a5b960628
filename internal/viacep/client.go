package viacep

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/time/rate"

	"github.com/muurk/buscacep/internal/address"
	"github.com/muurk/buscacep/internal/version"
)

const (
	// DefaultBaseURL is the public ViaCEP endpoint
	DefaultBaseURL = "https://viacep.com.br/ws"

	// DefaultTimeout bounds one lookup, including any wait on the limiter
	DefaultTimeout = 10 * time.Second

	// maxBodySize caps how much of a response is read
	maxBodySize = 1 << 20

	minSearchTermLength = 3
)

// Client talks to a ViaCEP-compatible directory service.
//
// Every Lookup issues exactly one request: there is no retry, no cache and no
// de-duplication. The client keeps no per-request state, so concurrent calls
// are independent.
type Client struct {
	// BaseURL is the service root, e.g. "https://viacep.com.br/ws"
	BaseURL string

	// HTTPClient is the underlying HTTP client
	HTTPClient *http.Client

	// Timeout bounds each call (0 = only the caller's context applies)
	Timeout time.Duration

	// UserAgent is sent on every request
	UserAgent string

	// limiter spaces out requests when a rate is configured
	limiter *rate.Limiter
}

// NewClient creates a client for the public ViaCEP service.
func NewClient() *Client {
	return NewClientWithURL(DefaultBaseURL)
}

// NewClientWithURL creates a client for the service rooted at baseURL.
func NewClientWithURL(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{},
		Timeout:    DefaultTimeout,
		UserAgent:  version.UserAgent(),
	}
}

// SetTimeout sets the per-call timeout
func (c *Client) SetTimeout(timeout time.Duration) {
	c.Timeout = timeout
}

// SetRateLimit allows rps requests per second with the given burst.
// rps <= 0 disables limiting.
func (c *Client) SetRateLimit(rps float64, burst int) {
	if rps <= 0 {
		c.limiter = nil
		return
	}
	if burst < 1 {
		burst = 1
	}
	c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
}

// Lookup resolves one postal code. The code is sent as given; deciding when
// a code is worth looking up is the caller's job.
func (c *Client) Lookup(ctx context.Context, postalCode string) Outcome {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	if err := c.wait(ctx); err != nil {
		return TransportError(err)
	}

	resp, err := c.get(ctx, c.BaseURL+"/"+url.PathEscape(postalCode)+"/json/")
	if err != nil {
		return TransportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusBadRequest, resp.StatusCode == http.StatusNotFound:
		// Malformed or unknown code: a miss the user can correct.
		return EmptyBody()
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return TransportError(NewHTTPError(resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return TransportError(NewNetworkError("failed to read response body", err))
	}

	return decodeLookup(body)
}

// Search finds addresses by state code, city and street. City and street
// need at least three characters; invalid records are dropped.
func (c *Client) Search(ctx context.Context, stateCode, city, street string) ([]address.Record, error) {
	stateCode = strings.ToUpper(strings.TrimSpace(stateCode))
	city = strings.TrimSpace(city)
	street = strings.TrimSpace(street)

	if utf8.RuneCountInString(stateCode) != 2 {
		return nil, NewValidationError(fmt.Sprintf("state code must have 2 letters, got %q", stateCode))
	}
	if utf8.RuneCountInString(city) < minSearchTermLength {
		return nil, NewValidationError(fmt.Sprintf("city must have at least %d characters", minSearchTermLength))
	}
	if utf8.RuneCountInString(street) < minSearchTermLength {
		return nil, NewValidationError(fmt.Sprintf("street must have at least %d characters", minSearchTermLength))
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	endpoint := strings.Join([]string{
		c.BaseURL,
		url.PathEscape(stateCode),
		url.PathEscape(city),
		url.PathEscape(street),
		"json/",
	}, "/")

	resp, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusBadRequest {
		return nil, NewValidationError("the directory rejected the search terms")
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, NewHTTPError(resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, NewNetworkError("failed to read response body", err)
	}

	return decodeSearch(body)
}

func (c *Client) get(ctx context.Context, endpoint string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, NewNetworkError("failed to create GET request", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, NewNetworkError("GET request failed", err)
	}
	return resp, nil
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.Timeout > 0 {
		return context.WithTimeout(ctx, c.Timeout)
	}
	return context.WithCancel(ctx)
}

// wait blocks on the limiter, if any. A wait that cannot finish before the
// deadline is reported as a rate-limit error.
func (c *Client) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	if err := c.limiter.Wait(ctx); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return NewNetworkError("gave up waiting for the rate limiter", ctxErr)
		}
		return &Error{Type: ErrTypeRateLimited, Message: "request would exceed the configured rate", Err: err}
	}
	return nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient == nil {
		return http.DefaultClient
	}
	return c.HTTPClient
}

var errNoBaseURL = errors.New("base URL is empty")

// Validate checks the client configuration.
func (c *Client) Validate() error {
	if c.BaseURL == "" {
		return errNoBaseURL
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid base URL scheme %q (use http or https)", u.Scheme)
	}
	return nil
}
