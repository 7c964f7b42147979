package core

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/dnscache"
)

const defaultUserAgent = "packmate-verifier"

// Response is the portion of a registry reply a verifier needs to
// interpret: status, headers, and a bounded body.
type Response struct {
	StatusCode int
	Status     string
	Header     http.Header
	Body       []byte
	URL        string
}

// RetryAfterSeconds reads the Retry-After header, if any.
func (r *Response) RetryAfterSeconds() int {
	v := r.Header.Get("Retry-After")
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// Client performs registry queries. Transport errors surface as
// *NetworkError; HTTP status interpretation is left to the caller.
type Client struct {
	httpClient *http.Client
	userAgent  string
	// maxBody caps how much of a response body is read. Existence checks
	// only need enough of the body to spot a match.
	maxBody int64
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		cl.httpClient.Timeout = d
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(cl *Client) {
		cl.userAgent = ua
	}
}

// NewClient creates a new client with the given options.
func NewClient(opts ...Option) *Client {
	// DNS cache with a 5 minute refresh interval; registry sweeps hit the
	// same handful of hosts hundreds of times.
	resolver := &dnscache.Resolver{}
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			resolver.Refresh(true)
		}
	}()

	dialer := &net.Dialer{
		Timeout:   30 * time.Second,
		KeepAlive: 30 * time.Second,
	}

	c := &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
					host, port, err := net.SplitHostPort(addr)
					if err != nil {
						return nil, err
					}
					ips, err := resolver.LookupHost(ctx, host)
					if err != nil {
						return nil, err
					}
					for _, ip := range ips {
						conn, err := dialer.DialContext(ctx, network, net.JoinHostPort(ip, port))
						if err == nil {
							return conn, nil
						}
					}
					return nil, fmt.Errorf("failed to dial any resolved IP")
				},
				MaxIdleConns:          100,
				MaxIdleConnsPerHost:   10,
				IdleConnTimeout:       90 * time.Second,
				TLSHandshakeTimeout:   10 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
		userAgent: defaultUserAgent,
		maxBody:   1 << 20,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// DefaultClient returns a client with sensible defaults: 30s timeout and a
// DNS-cached transport.
func DefaultClient() *Client {
	return NewClient()
}

// Get issues a GET and returns the raw response. headers may be nil.
func (c *Client) Get(ctx context.Context, url string, headers map[string]string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "*/*")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{URL: url, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody))
	if err != nil {
		return nil, &NetworkError{URL: url, Err: err}
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Header:     resp.Header,
		Body:       body,
		URL:        url,
	}, nil
}

// Interpret applies the status contract shared by all verifiers:
//
//	2xx            -> verified
//	404            -> failed, "Package not found" (terminal)
//	429            -> *RateLimitError (retryable)
//	5xx            -> *ServerError (retryable)
//	other non-2xx  -> failed with the status embedded (terminal)
//
// Variants with manager-specific rules (OData match lists, quota headers)
// handle those cases before falling through to Interpret. AppID is left
// empty; the orchestrator stamps it.
func Interpret(resp *Response, managerID, packageName string) (*VerificationResult, error) {
	result := &VerificationResult{
		PackageManagerID: managerID,
		PackageName:      packageName,
		Timestamp:        Now(),
	}

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		result.Status = StatusVerified
		return result, nil

	case resp.StatusCode == http.StatusNotFound:
		result.Status = StatusFailed
		result.ErrorMessage = NotFoundMessage
		return result, nil

	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, &RateLimitError{RetryAfter: resp.RetryAfterSeconds()}

	case resp.StatusCode >= 500:
		return nil, &ServerError{StatusCode: resp.StatusCode, URL: resp.URL}

	default:
		result.Status = StatusFailed
		result.ErrorMessage = fmt.Sprintf("HTTP %s", statusText(resp))
		return result, nil
	}
}

func statusText(resp *Response) string {
	if resp.Status != "" {
		return resp.Status
	}
	return strconv.Itoa(resp.StatusCode)
}
