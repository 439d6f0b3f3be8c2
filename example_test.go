package agora_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	agora "github.com/agoranet/go-agora-client"
	"github.com/agoranet/go-agora-client/market"
)

func ExampleNew() {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost && r.URL.Path == "/market-api/v1/offers" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusCreated)
			fmt.Fprint(w, `"sub-offer-9"`)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	node, err := agora.New(
		agora.WithAPIURL(ts.URL),
		agora.WithAppKey("example-key"),
		agora.WithTimeout(5*time.Second),
	)
	if err != nil {
		fmt.Println("connect error:", err)
		return
	}

	offer := market.New(
		json.RawMessage(`{"golem.node.id.name":"provider-1"}`),
		"(golem.inf.mem.gib>0.5)",
	)

	id, err := node.Market().SubscribeOffer(context.Background(), &offer)
	if err != nil {
		fmt.Println("subscribe error:", err)
		return
	}

	fmt.Println(id)
	// Output: sub-offer-9
}
