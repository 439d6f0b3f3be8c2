package web

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// maxErrBodySize caps the amount of response body read when
// building an error for a failed status code. This prevents
// unbounded memory usage when a large response arrives with a
// wrong status.
const maxErrBodySize = 4 << 10 // 4KB

const requestIDHeader = "X-Request-Id"

// Request is a prepared call against the node. It is created by the
// [Client.Get] family, optionally given a body with [Request.SendJSON], and
// executed with [Request.Decode]. Construction errors are carried inside the
// Request and surface on execution, so call chains stay linear.
type Request struct {
	client *Client
	method string
	url    *url.URL
	body   []byte
	err    error
}

// SendJSON attaches the JSON encoding of v as the request body and sets
// Content-Type accordingly.
func (r *Request) SendJSON(v any) *Request {
	if r.err != nil {
		return r
	}

	data, err := json.Marshal(v)
	if err != nil {
		r.err = &InternalError{Msg: fmt.Sprintf("encoding request payload: %v", err)}
		return r
	}
	r.body = data

	return r
}

// URL reports the fully resolved request target.
func (r *Request) URL() string {
	if r.url == nil {
		return ""
	}

	return r.url.String()
}

// Decode issues the request and decodes the JSON response into dest.
//
// A nil dest discards the body after the status check, for endpoints whose
// success response carries nothing of interest. A 204 response, or one with
// an explicit Content-Length of 0, succeeds and leaves dest untouched
// without attempting a JSON parse.
//
// Failures map onto the package error kinds: transport-level timeouts and
// 408 responses become [TimeoutError], other transport failures [SendError],
// other non-2xx responses [StatusError], body read failures [PayloadError],
// and non-UTF-8 or malformed JSON bodies [DecodeError].
func (r *Request) Decode(ctx context.Context, dest any) error {
	if r.err != nil {
		return r.err
	}

	reqURL := r.url.String()

	ctx, span := r.client.tracer.Start(ctx, "web.request", trace.WithAttributes(
		attribute.String("http.method", r.method),
		attribute.String("url.full", reqURL),
	))
	defer span.End()

	req, err := r.newHTTPRequest(ctx)
	if err != nil {
		return err
	}

	r.client.logger.DebugContext(ctx, "issuing request",
		"method", r.method, "url", reqURL, "request_id", req.Header.Get(requestIDHeader))

	start := time.Now()

	resp, err := r.client.c.Do(req)
	if err != nil {
		r.client.rec.ObserveRequest(r.method, 0, time.Since(start))
		return classifySendError(reqURL, err)
	}

	r.client.rec.ObserveRequest(r.method, resp.StatusCode, time.Since(start))
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	discardBody := true
	defer func() {
		if discardBody {
			if _, err := io.Copy(io.Discard, resp.Body); err != nil {
				r.client.logger.Error("failed to discard unused body", "error", err)
			}
		}
		if err := resp.Body.Close(); err != nil {
			r.client.logger.Error("failed to close response body", "error", err)
		}
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode > 299 {
		return statusError(reqURL, resp)
	}

	r.client.logger.DebugContext(ctx, "response received",
		"method", r.method, "url", reqURL, "status", resp.StatusCode)

	if dest == nil {
		return nil
	}

	if resp.StatusCode == http.StatusNoContent || resp.Header.Get("Content-Length") == "0" {
		return nil
	}

	discardBody = false
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &PayloadError{URL: reqURL, Err: err}
	}

	if !utf8.Valid(data) {
		return &DecodeError{URL: reqURL, Err: ErrInvalidUTF8}
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return &DecodeError{URL: reqURL, Err: err}
	}

	return nil
}

func (r *Request) newHTTPRequest(ctx context.Context) (*http.Request, error) {
	var body io.Reader
	if r.body != nil {
		body = bytes.NewReader(r.body)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, r.url.String(), body)
	if err != nil {
		return nil, &InternalError{Msg: fmt.Sprintf("instantiating request: %v", err)}
	}

	if r.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.client.appKey != "" {
		req.Header.Set("Authorization", "Bearer "+r.client.appKey)
	}
	for k, vals := range r.client.headers {
		for _, v := range vals {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set(requestIDHeader, uuid.NewString())

	return req, nil
}

// classifySendError splits transport failures into the timeout kind and the
// generic send kind.
func classifySendError(reqURL string, err error) error {
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return &TimeoutError{URL: reqURL, Msg: err.Error()}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{URL: reqURL, Msg: err.Error()}
	}

	return &SendError{URL: reqURL, Err: err}
}

// statusError builds the error for a non-2xx response. The node's JSON error
// envelope is decoded best-effort; a body that isn't one degrades the message
// rather than masking the status. A 408 response maps to the timeout kind,
// same as a transport-level timeout.
func statusError(reqURL string, resp *http.Response) error {
	var msg string

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxErrBodySize))
	if err != nil {
		msg = fmt.Sprintf("error parsing error msg: %v", err)
	} else {
		var em ErrorMessage
		if jsonErr := json.Unmarshal(b, &em); jsonErr != nil {
			msg = fmt.Sprintf("error parsing error msg: %v", jsonErr)
		} else if em.Message != nil {
			msg = *em.Message
		}
	}

	if resp.StatusCode == http.StatusRequestTimeout {
		return &TimeoutError{URL: reqURL, Msg: msg}
	}

	return &StatusError{Code: resp.StatusCode, URL: reqURL, Msg: msg}
}
