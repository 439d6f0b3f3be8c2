package agora_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	agora "github.com/agoranet/go-agora-client"
	"github.com/agoranet/go-agora-client/config"
	"github.com/agoranet/go-agora-client/market"
	"github.com/agoranet/go-agora-client/payment"
	"github.com/agoranet/go-agora-client/web"
)

// clearEnv strips every connection variable so mounting starts from a
// clean slate.
func clearEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{
		web.APIURLEnvVar,
		web.AppKeyEnvVar,
		market.URLEnvVar,
		payment.URLEnvVar,
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestNew(t *testing.T) {
	clearEnv(t)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	t.Cleanup(ts.Close)

	node, err := agora.New(agora.WithAPIURL(ts.URL))
	require.NoError(t, err)

	require.Equal(t, ts.URL, node.Web().BaseURL())
	require.Equal(t, ts.URL+"/market-api/v1/", node.Market().BaseURL())
	require.Equal(t, ts.URL+"/payment-api/v1/", node.Payment().BaseURL())
}

func TestNew_Defaults(t *testing.T) {
	clearEnv(t)

	node, err := agora.New()
	require.NoError(t, err)
	require.Equal(t, web.DefaultAPIURL, node.Web().BaseURL())
}

func TestNew_BindingEnvOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv(market.URLEnvVar, "http://market.internal:9000/market-api/v1/")

	node, err := agora.New(agora.WithAPIURL("http://127.0.0.1:7465"))
	require.NoError(t, err)

	require.Equal(t, "http://market.internal:9000/market-api/v1/", node.Market().BaseURL())
	require.Equal(t, "http://127.0.0.1:7465/payment-api/v1/", node.Payment().BaseURL())
}

func TestNew_InvalidOption(t *testing.T) {
	clearEnv(t)

	_, err := agora.New(agora.WithAPIURL("::not-a-url"))
	require.True(t, errors.Is(err, web.ErrInvalidURL))
}

func TestNew_InvalidBindingOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv(payment.URLEnvVar, "::not-a-url")

	_, err := agora.New()
	require.True(t, errors.Is(err, web.ErrInvalidURL))
}

func TestNewFromConfig(t *testing.T) {
	clearEnv(t)

	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `"sub-1"`)
	}))
	t.Cleanup(ts.Close)

	cfg := config.DefaultConfig()
	cfg.APIURL = ts.URL
	cfg.AppKey = "cfg-key"
	cfg.Market.URL = ts.URL + "/elsewhere/market/"

	node, err := agora.NewFromConfig(cfg)
	require.NoError(t, err)

	require.Equal(t, ts.URL+"/elsewhere/market/", node.Market().BaseURL())
	require.Equal(t, ts.URL+"/payment-api/v1/", node.Payment().BaseURL())

	// The configured URL also beats the binding's environment override.
	t.Setenv(market.URLEnvVar, "http://ignored.internal:9000/")
	node, err = agora.NewFromConfig(cfg)
	require.NoError(t, err)
	require.Equal(t, ts.URL+"/elsewhere/market/", node.Market().BaseURL())

	demand := market.New([]byte(`{"golem.node.id.name":"cfg-test"}`), "")
	_, err = node.Market().SubscribeDemand(t.Context(), &demand)
	require.NoError(t, err)
	require.Equal(t, "Bearer cfg-key", gotAuth)
}

func TestNewFromConfig_ExtraOptionsWin(t *testing.T) {
	clearEnv(t)

	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(ts.Close)

	cfg := config.DefaultConfig()
	cfg.APIURL = ts.URL
	cfg.AppKey = "cfg-key"

	node, err := agora.NewFromConfig(cfg, agora.WithAppKey("override-key"))
	require.NoError(t, err)

	require.NoError(t, node.Market().UnsubscribeDemand(t.Context(), "sub-1"))
	require.Equal(t, "Bearer override-key", gotAuth)
}
