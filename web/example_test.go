package web_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"

	"github.com/agoranet/go-agora-client/web"
)

// ————————————————————————————————————————————————————————————————————
// Client examples
// ————————————————————————————————————————————————————————————————————

func ExampleBuild() {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"name":"agora-node","version":"0.4.1"}`)
	}))
	defer ts.Close()

	c, err := web.Build(
		web.WithAPIURL(ts.URL),
		web.WithAppKey("example-key"),
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	var info struct {
		Name    string `json:"name"`
		Version string `json:"version"`
	}
	if err := c.Get("version").Decode(context.Background(), &info); err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(info.Name, info.Version)
	// Output: agora-node 0.4.1
}

func ExampleClient_Subclient() {
	c, err := web.Build(web.WithAPIURL("http://127.0.0.1:7465"))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	market, err := c.Subclient("EXAMPLE_MARKET_URL", "market-api/v1/")
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(market.BaseURL())
	// Output: http://127.0.0.1:7465/market-api/v1/
}

// ————————————————————————————————————————————————————————————————————
// URL helper examples
// ————————————————————————————————————————————————————————————————————

func ExampleFormatPath() {
	path, err := web.FormatPath("demands/{subscriptionId}/proposals/{proposalId}",
		"subscriptionId", "sub-17",
		"proposalId", "prop 4",
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(path)
	// Output: demands/sub-17/proposals/prop%204
}

func ExampleQuery() {
	maxEvents := 10

	path := web.NewQuery().
		Put("timeout", 5).
		Put("afterTimestamp", nil).
		Put("maxEvents", maxEvents).
		Apply("invoiceEvents")

	fmt.Println(path)
	// Output: invoiceEvents?timeout=5&maxEvents=10
}

// ————————————————————————————————————————————————————————————————————
// Error handling examples
// ————————————————————————————————————————————————————————————————————

func ExampleDefaultOnTimeout() {
	poll := func() ([]string, error) {
		return nil, &web.TimeoutError{URL: "http://127.0.0.1:7465/invoiceEvents", Msg: "long poll expired"}
	}

	events, err := web.DefaultOnTimeout(poll())
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println(len(events))
	// Output: 0
}

func ExampleStatusError() {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message":"no such demand"}`)
	}))
	defer ts.Close()

	c, err := web.Build(web.WithAPIURL(ts.URL))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	err = c.Get("demands/missing").Decode(context.Background(), nil)

	var statusErr *web.StatusError
	if errors.As(err, &statusErr) {
		fmt.Println(statusErr.Code, statusErr.Msg)
	}
	// Output: 404 no such demand
}
