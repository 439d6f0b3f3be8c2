package web

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/agoranet/go-agora-client/metrics"
	"github.com/agoranet/go-agora-client/throttle"
)

const (
	// APIURLEnvVar names the environment variable consulted for the base URL
	// when [WithAPIURL] is not given.
	APIURLEnvVar = "AGORA_API_URL"

	// AppKeyEnvVar names the environment variable consulted for the bearer
	// token when [WithAppKey] is not given.
	AppKeyEnvVar = "AGORA_APPKEY"

	// DefaultAPIURL is the base URL of a node running on the local host,
	// used when neither the option nor the environment provide one.
	DefaultAPIURL = "http://127.0.0.1:7465"
)

// Client issues requests against a single API mount point. It is immutable
// once built and safe for concurrent use. Derive per-sub-API clients with
// [Client.Subclient]; they share the transport, logger, and tracer of their
// parent and differ only in base URL.
type Client struct {
	c       *http.Client
	base    *url.URL
	appKey  string
	headers http.Header
	logger  *slog.Logger
	tracer  trace.Tracer
	rec     *metrics.Recorder
}

// Build creates a [Client] from the given options. The base URL falls back
// to the AGORA_API_URL environment variable and then to [DefaultAPIURL];
// the app key falls back to AGORA_APPKEY and may be empty, in which case no
// Authorization header is sent.
func Build(optFns ...Option) (*Client, error) {
	client := &Client{
		c:      &http.Client{},
		logger: slog.Default(),
		tracer: noop.NewTracerProvider().Tracer(""),
	}

	var opts options
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return nil, fmt.Errorf("applying client option: %w", err)
		}
	}

	rawURL := opts.apiURL
	if rawURL == "" {
		rawURL = os.Getenv(APIURLEnvVar)
	}
	if rawURL == "" {
		rawURL = DefaultAPIURL
	}
	if err := checkBaseURL(rawURL); err != nil {
		return nil, err
	}

	base, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidURL, rawURL, err)
	}
	client.base = base

	client.appKey = opts.appKey
	if client.appKey == "" {
		client.appKey = os.Getenv(AppKeyEnvVar)
	}

	client.headers = opts.headers

	if opts.client != nil {
		client.c = opts.client
	}
	if opts.logger != nil {
		client.logger = opts.logger
	}
	if opts.tracer != nil {
		client.tracer = opts.tracer
	}
	if opts.recorder != nil {
		client.rec = opts.recorder
	}

	if opts.timeout != nil {
		client.c.Timeout = *opts.timeout
	}

	if opts.noFollowRedirects {
		client.c.CheckRedirect = func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}
	}

	var transport http.RoundTripper
	switch {
	case opts.rt != nil:
		transport = opts.rt
	case opts.client != nil && opts.client.Transport != nil:
		transport = opts.client.Transport
	default:
		transport = http.DefaultTransport
	}
	if opts.userAgent != "" {
		transport = userAgent{value: opts.userAgent, base: transport}
	}
	if opts.throttle != nil {
		rt, err := throttle.NewRoundTripper(opts.throttle.RPS, opts.throttle.Burst, func() *slog.Logger { return client.logger }, transport)
		if err != nil {
			return nil, fmt.Errorf("configuring throttle: %w", err)
		}
		transport = rt
	}
	client.c.Transport = transport

	return client, nil
}

// Subclient derives a client rooted at one sub-API mount. When the
// environment variable named by envVar is set, its value becomes the full
// base URL and suffix is ignored; otherwise suffix is resolved against the
// parent base URL. A suffix must end in "/" so relative request paths extend
// the mount rather than replace its final segment.
func (c *Client) Subclient(envVar, suffix string) (*Client, error) {
	var base *url.URL

	if raw := os.Getenv(envVar); raw != "" {
		if err := checkBaseURL(raw); err != nil {
			return nil, fmt.Errorf("from %s: %w", envVar, err)
		}

		u, err := url.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("%w %q from %s: %w", ErrInvalidURL, raw, envVar, err)
		}
		base = u
	} else {
		rel, err := url.Parse(suffix)
		if err != nil {
			return nil, fmt.Errorf("%w %q: %w", ErrInvalidURL, suffix, err)
		}
		base = c.base.ResolveReference(rel)
	}

	sub := *c
	sub.base = base

	return &sub, nil
}

// SubclientAt derives a client rooted at an explicit base URL, bypassing the
// environment override that [Client.Subclient] consults.
func (c *Client) SubclientAt(rawURL string) (*Client, error) {
	if err := checkBaseURL(rawURL); err != nil {
		return nil, err
	}

	base, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", ErrInvalidURL, rawURL, err)
	}

	sub := *c
	sub.base = base

	return &sub, nil
}

// BaseURL reports the mount point requests are resolved against.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// Get prepares a GET request for path, resolved against the client's base
// URL. Paths are relative; a leading "/" resets resolution to the host root
// per standard reference-resolution rules.
func (c *Client) Get(path string) *Request {
	return c.newRequest(http.MethodGet, path)
}

// Post prepares a POST request for path.
func (c *Client) Post(path string) *Request {
	return c.newRequest(http.MethodPost, path)
}

// Put prepares a PUT request for path.
func (c *Client) Put(path string) *Request {
	return c.newRequest(http.MethodPut, path)
}

// Delete prepares a DELETE request for path.
func (c *Client) Delete(path string) *Request {
	return c.newRequest(http.MethodDelete, path)
}

func (c *Client) newRequest(method, path string) *Request {
	r := &Request{client: c, method: method}

	rel, err := url.Parse(path)
	if err != nil {
		r.err = fmt.Errorf("%w %q: %w", ErrInvalidURL, path, err)
		return r
	}
	r.url = c.base.ResolveReference(rel)

	return r
}
