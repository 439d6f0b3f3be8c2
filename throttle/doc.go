// Package throttle provides an [http.RoundTripper] that paces outbound
// requests to a node using a token-bucket algorithm from
// [golang.org/x/time/rate]. Nodes commonly rate-limit their REST APIs;
// pacing on the client side avoids burning requests on 429 responses.
//
// Most callers enable it through the web client option:
//
//	c, err := web.Build(web.WithThrottle(10, 5))
//
// To wrap an arbitrary transport directly, use [NewRoundTripper]:
//
//	rt, err := throttle.NewRoundTripper(
//		10,  // requests per second
//		5,   // burst capacity
//		func() *slog.Logger { return slog.Default() },
//		http.DefaultTransport,
//	)
//	httpClient := &http.Client{Transport: rt}
//
// When the bucket is empty, outbound requests block until a token becomes
// available or the request context is cancelled.
package throttle
