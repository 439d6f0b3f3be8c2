package web

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/otel/trace"
	"golang.org/x/net/http/httpguts"

	"github.com/agoranet/go-agora-client/metrics"
	"github.com/agoranet/go-agora-client/throttle"
)

// Option is a functional option for configuring a [Client] via [Build].
type Option func(*options) error

type options struct {
	apiURL            string
	appKey            string
	headers           http.Header
	client            *http.Client
	rt                http.RoundTripper
	timeout           *time.Duration
	userAgent         string
	throttle          *throttle.Config
	noFollowRedirects bool
	logger            *slog.Logger
	tracer            trace.Tracer
	recorder          *metrics.Recorder
}

// WithAPIURL sets the base URL all relative request paths resolve against.
// It takes precedence over the AGORA_API_URL environment variable.
func WithAPIURL(rawURL string) Option {
	return func(o *options) error {
		if err := checkBaseURL(rawURL); err != nil {
			return err
		}
		o.apiURL = rawURL
		return nil
	}
}

// WithAppKey sets the node app key, sent as a bearer token on every request.
// It takes precedence over the AGORA_APPKEY environment variable.
func WithAppKey(key string) Option {
	return func(o *options) error {
		if key == "" {
			return errors.New("app key must not be empty")
		}
		o.appKey = key
		return nil
	}
}

// WithHeader adds a persistent header to all outgoing requests. The name and
// value are validated up front; a bad header fails [Build] with
// [ErrInvalidHeader] rather than surfacing later on the wire.
func WithHeader(name, value string) Option {
	return func(o *options) error {
		if !httpguts.ValidHeaderFieldName(name) {
			return fmt.Errorf("%w: bad field name %q", ErrInvalidHeader, name)
		}
		if !httpguts.ValidHeaderFieldValue(value) {
			return fmt.Errorf("%w: bad value for field %q", ErrInvalidHeader, name)
		}
		if o.headers == nil {
			o.headers = make(http.Header)
		}
		o.headers.Add(name, value)
		return nil
	}
}

// WithClient replaces the default [http.Client] used by the [Client].
func WithClient(hc *http.Client) Option {
	return func(o *options) error {
		if hc == nil {
			return errors.New("client must not be nil")
		}
		o.client = hc
		return nil
	}
}

// WithTransport sets a custom [http.RoundTripper] as the base transport.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) error {
		if rt == nil {
			return errors.New("transport must not be nil")
		}
		o.rt = rt
		return nil
	}
}

// WithTimeout sets the overall request timeout on the underlying [http.Client].
func WithTimeout(d time.Duration) Option {
	return func(o *options) error {
		if d < 0 {
			return errors.New("timeout must not be negative")
		}
		o.timeout = &d
		return nil
	}
}

// WithUserAgent adds a persistent User-Agent header to all outgoing requests.
func WithUserAgent(header string) Option {
	return func(o *options) error {
		o.userAgent = header
		return nil
	}
}

// WithThrottle enables token-bucket rate limiting with the given requests per second and burst capacity.
func WithThrottle(rps, burst int) Option {
	return func(o *options) error {
		if rps <= 0 || burst <= 0 {
			return fmt.Errorf("rps[%d] and burst[%d] %w", rps, burst, throttle.ErrMustNotBeZero)
		}
		o.throttle = &throttle.Config{RPS: rps, Burst: burst}
		return nil
	}
}

// WithNoFollowRedirects prevents the [Client] from following HTTP redirects.
func WithNoFollowRedirects() Option {
	return func(o *options) error {
		o.noFollowRedirects = true
		return nil
	}
}

// WithLogger injects a custom [slog.Logger] into the [Client].
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}

// WithTracer injects a tracer; request spans are emitted under "web.request".
func WithTracer(tracer trace.Tracer) Option {
	return func(o *options) error {
		if tracer == nil {
			return errors.New("tracer must not be nil")
		}
		o.tracer = tracer
		return nil
	}
}

// WithRecorder instruments the [Client] with the given metrics recorder.
func WithRecorder(rec *metrics.Recorder) Option {
	return func(o *options) error {
		if rec == nil {
			return errors.New("recorder must not be nil")
		}
		o.recorder = rec
		return nil
	}
}

// checkBaseURL rejects anything that cannot serve as an absolute request base.
func checkBaseURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%w %q: %w", ErrInvalidURL, rawURL, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("%w %q: must be absolute", ErrInvalidURL, rawURL)
	}

	return nil
}

// userAgent is an http.RoundTripper, enabling the persistent User-Agent header.
type userAgent struct {
	value string
	base  http.RoundTripper
}

func (ua userAgent) RoundTrip(r *http.Request) (*http.Response, error) {
	cpy := r.Clone(r.Context())
	cpy.Header.Set("User-Agent", ua.value)
	return ua.base.RoundTrip(cpy)
}
