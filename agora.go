// Package agora connects the typed API bindings for an Agora node.
//
// A [Node] bundles one [web.Client] with the market and payment bindings
// mounted on it:
//
//	node, err := agora.New(
//		agora.WithAPIURL("http://127.0.0.1:7465"),
//		agora.WithAppKey(key),
//	)
//	if err != nil {
//		return err
//	}
//
//	id, err := node.Market().SubscribeDemand(ctx, demand)
//
// Connection details can also come from files and the environment through
// the config package, see [NewFromConfig].
package agora

import (
	"github.com/agoranet/go-agora-client/config"
	"github.com/agoranet/go-agora-client/market"
	"github.com/agoranet/go-agora-client/payment"
	"github.com/agoranet/go-agora-client/web"
)

// Option configures the underlying web client. The full set lives in the
// web package; the most common ones are aliased here so simple programs
// only import this package.
type Option = web.Option

// Commonly used client options, re-exported from the web package.
var (
	WithAPIURL    = web.WithAPIURL
	WithAppKey    = web.WithAppKey
	WithTimeout   = web.WithTimeout
	WithUserAgent = web.WithUserAgent
)

// Node is a connected Agora node: one shared HTTP pipeline with each
// sub-API mounted at its resolved base URL.
type Node struct {
	web     *web.Client
	market  *market.API
	payment *payment.API
}

// New connects a Node using the provided options. Base URLs resolve per
// binding: an explicit option, then the binding's environment variable,
// then the node's default mount path.
func New(opts ...Option) (*Node, error) {
	c, err := web.Build(opts...)
	if err != nil {
		return nil, err
	}

	return mount(c, "", "")
}

// NewFromConfig connects a Node from a loaded configuration. Per-service
// URLs in the config take precedence over the environment overrides the
// bindings would otherwise consult. Extra options are applied after the
// config-derived ones, so they win on conflict.
func NewFromConfig(cfg config.Config, opts ...Option) (*Node, error) {
	c, err := web.Build(append(cfg.ClientOptions(), opts...)...)
	if err != nil {
		return nil, err
	}

	return mount(c, cfg.Market.URL, cfg.Payment.URL)
}

func mount(c *web.Client, marketURL, paymentURL string) (*Node, error) {
	n := &Node{web: c}

	var err error
	if marketURL != "" {
		n.market, err = market.NewAPIAt(c, marketURL)
	} else {
		n.market, err = market.NewAPI(c)
	}
	if err != nil {
		return nil, err
	}

	if paymentURL != "" {
		n.payment, err = payment.NewAPIAt(c, paymentURL)
	} else {
		n.payment, err = payment.NewAPI(c)
	}
	if err != nil {
		return nil, err
	}

	return n, nil
}

// Market returns the market API binding.
func (n *Node) Market() *market.API {
	return n.market
}

// Payment returns the payment API binding.
func (n *Node) Payment() *payment.API {
	return n.payment
}

// Web returns the pipeline client rooted at the node's base URL, for
// endpoints not covered by the typed bindings.
func (n *Node) Web() *web.Client {
	return n.web
}
