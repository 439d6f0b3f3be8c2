// Package market binds the node's market API: publishing demands and offers,
// and negotiating proposals under a subscription.
package market

import (
	"context"
	"fmt"

	"github.com/agoranet/go-agora-client/validate"
	"github.com/agoranet/go-agora-client/web"
)

const (
	// URLEnvVar overrides the market API base URL when set.
	URLEnvVar = "AGORA_MARKET_URL"

	// basePath is the market API mount under the node's gateway.
	basePath = "market-api/v1/"
)

const proposalPath = "demands/{subscriptionId}/proposals/{proposalId}"

// API issues market requests against one mount point.
type API struct {
	c *web.Client
}

// NewAPI mounts the market binding on c. The AGORA_MARKET_URL environment
// variable overrides the mount; otherwise it is the parent base URL joined
// with market-api/v1/.
func NewAPI(c *web.Client) (*API, error) {
	sub, err := c.Subclient(URLEnvVar, basePath)
	if err != nil {
		return nil, fmt.Errorf("mounting market api: %w", err)
	}

	return &API{c: sub}, nil
}

// NewAPIAt mounts the market binding at an explicit base URL, ignoring the
// environment override.
func NewAPIAt(c *web.Client, rawURL string) (*API, error) {
	sub, err := c.SubclientAt(rawURL)
	if err != nil {
		return nil, fmt.Errorf("mounting market api: %w", err)
	}

	return &API{c: sub}, nil
}

// BaseURL reports the mount point market requests resolve against.
func (a *API) BaseURL() string {
	return a.c.BaseURL()
}

// SubscribeDemand publishes a demand and returns its subscription id. The
// node matches it against known offers until unsubscribed.
func (a *API) SubscribeDemand(ctx context.Context, demand *NewDemand) (string, error) {
	if err := validate.Check(demand); err != nil {
		return "", fmt.Errorf("checking demand: %w", err)
	}

	var id string
	if err := a.c.Post("demands").SendJSON(demand).Decode(ctx, &id); err != nil {
		return "", err
	}

	return id, nil
}

// UnsubscribeDemand stops the subscription's matching and event collection.
func (a *API) UnsubscribeDemand(ctx context.Context, subscriptionID string) error {
	path, err := web.FormatPath("demands/{subscriptionId}", "subscriptionId", subscriptionID)
	if err != nil {
		return err
	}

	return a.c.Delete(path).Decode(ctx, nil)
}

// SubscribeOffer publishes an offer and returns its subscription id.
func (a *API) SubscribeOffer(ctx context.Context, offer *NewOffer) (string, error) {
	if err := validate.Check(offer); err != nil {
		return "", fmt.Errorf("checking offer: %w", err)
	}

	var id string
	if err := a.c.Post("offers").SendJSON(offer).Decode(ctx, &id); err != nil {
		return "", err
	}

	return id, nil
}

// UnsubscribeOffer withdraws the offer from matching.
func (a *API) UnsubscribeOffer(ctx context.Context, subscriptionID string) error {
	path, err := web.FormatPath("offers/{subscriptionId}", "subscriptionId", subscriptionID)
	if err != nil {
		return err
	}

	return a.c.Delete(path).Decode(ctx, nil)
}

// GetProposal fetches one proposal received under a demand subscription.
func (a *API) GetProposal(ctx context.Context, subscriptionID, proposalID string) (*Proposal, error) {
	path, err := web.FormatPath(proposalPath,
		"subscriptionId", subscriptionID,
		"proposalId", proposalID,
	)
	if err != nil {
		return nil, err
	}

	var p Proposal
	if err := a.c.Get(path).Decode(ctx, &p); err != nil {
		return nil, err
	}

	return &p, nil
}

// CounterProposal answers a received proposal with a revised one and returns
// the id the node assigned to it.
func (a *API) CounterProposal(ctx context.Context, subscriptionID, proposalID string, proposal *NewProposal) (string, error) {
	if err := validate.Check(proposal); err != nil {
		return "", fmt.Errorf("checking proposal: %w", err)
	}

	path, err := web.FormatPath(proposalPath,
		"subscriptionId", subscriptionID,
		"proposalId", proposalID,
	)
	if err != nil {
		return "", err
	}

	var id string
	if err := a.c.Post(path).SendJSON(proposal).Decode(ctx, &id); err != nil {
		return "", err
	}

	return id, nil
}
