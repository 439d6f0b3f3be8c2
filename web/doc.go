// Package web implements the HTTP plumbing shared by every Agora API
// binding: base-URL resolution, auth-header injection, JSON encoding and
// decoding, and the mapping of transport and status failures onto a closed
// set of error kinds.
//
// # Building a Client
//
// Use [Build] to create a [Client] with functional options. The base URL
// resolves from [WithAPIURL], then the AGORA_API_URL environment variable,
// then [DefaultAPIURL]; the app key resolves from [WithAppKey], then
// AGORA_APPKEY:
//
//	c, err := web.Build(
//		web.WithAppKey("my-app-key"),
//		web.WithTimeout(30 * time.Second),
//	)
//
// # Sub-APIs
//
// A node mounts each sub-API under its own prefix. [Client.Subclient]
// derives a client for one mount, letting a dedicated environment variable
// override the location entirely:
//
//	market, err := c.Subclient("AGORA_MARKET_URL", "market-api/v1/")
//
// # Issuing Requests
//
// Requests chain from a method constructor through an optional body to
// [Request.Decode], which runs the exchange and decodes the JSON response:
//
//	var proposal market.Proposal
//	err := c.Get("demands/sub-1/proposals/prop-2").Decode(ctx, &proposal)
//
//	err := c.Post("demands").SendJSON(demand).Decode(ctx, &id)
//
// A nil destination discards the response body after the status check. A
// 204 response, or one with Content-Length 0, succeeds and leaves the
// destination untouched.
//
// # Error Kinds
//
// Every failure is one of a closed set of kinds: [SendError],
// [TimeoutError], [StatusError], [PayloadError], [DecodeError], or
// [InternalError]. Timeouts from the transport and 408 responses share the
// [TimeoutError] kind, detectable with errors.Is(err, [ErrTimeout]);
// [DefaultOnTimeout] converts that kind into a zero value for long-poll
// endpoints where an expired poll simply means "nothing new".
//
// # URL Helpers
//
// [FormatPath] fills {name} placeholders with path-escaped values, and
// [Query] collects optional query parameters, skipping unset ones and
// preserving insertion order.
package web
