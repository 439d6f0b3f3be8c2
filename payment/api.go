// Package payment binds the node's payment API: allocating funds, tracking
// invoices, and following invoice lifecycle events.
package payment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/agoranet/go-agora-client/validate"
	"github.com/agoranet/go-agora-client/web"
)

const (
	// URLEnvVar overrides the payment API base URL when set.
	URLEnvVar = "AGORA_PAYMENT_URL"

	// basePath is the payment API mount under the node's gateway.
	basePath = "payment-api/v1/"
)

// API issues payment requests against one mount point.
type API struct {
	c *web.Client
}

// NewAPI mounts the payment binding on c. The AGORA_PAYMENT_URL environment
// variable overrides the mount; otherwise it is the parent base URL joined
// with payment-api/v1/.
func NewAPI(c *web.Client) (*API, error) {
	sub, err := c.Subclient(URLEnvVar, basePath)
	if err != nil {
		return nil, fmt.Errorf("mounting payment api: %w", err)
	}

	return &API{c: sub}, nil
}

// NewAPIAt mounts the payment binding at an explicit base URL, ignoring the
// environment override.
func NewAPIAt(c *web.Client, rawURL string) (*API, error) {
	sub, err := c.SubclientAt(rawURL)
	if err != nil {
		return nil, fmt.Errorf("mounting payment api: %w", err)
	}

	return &API{c: sub}, nil
}

// BaseURL reports the mount point payment requests resolve against.
func (a *API) BaseURL() string {
	return a.c.BaseURL()
}

// checkAmount rejects negative monetary values before they leave the
// process. The decimal type carries sign information the tag-based validator
// cannot inspect, so the check is explicit.
func checkAmount(field string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return validate.NewFieldsError(field, errors.New("must not be negative"))
	}

	return nil
}

// CreateAllocation reserves funds and returns the allocation the node
// created, including its assigned identifier and balances.
func (a *API) CreateAllocation(ctx context.Context, allocation *NewAllocation) (*Allocation, error) {
	if err := checkAmount("totalAmount", allocation.TotalAmount); err != nil {
		return nil, fmt.Errorf("checking allocation: %w", err)
	}

	var created Allocation
	if err := a.c.Post("allocations").SendJSON(allocation).Decode(ctx, &created); err != nil {
		return nil, err
	}

	return &created, nil
}

// GetAllocations lists the caller's active allocations.
func (a *API) GetAllocations(ctx context.Context) ([]Allocation, error) {
	var allocations []Allocation
	if err := a.c.Get("allocations").Decode(ctx, &allocations); err != nil {
		return nil, err
	}

	return allocations, nil
}

// GetAllocation fetches one allocation by id.
func (a *API) GetAllocation(ctx context.Context, allocationID string) (*Allocation, error) {
	path, err := web.FormatPath("allocations/{allocationId}", "allocationId", allocationID)
	if err != nil {
		return nil, err
	}

	var allocation Allocation
	if err := a.c.Get(path).Decode(ctx, &allocation); err != nil {
		return nil, err
	}

	return &allocation, nil
}

// AmendAllocation updates an existing allocation in place and returns the
// node's view of it after the change.
func (a *API) AmendAllocation(ctx context.Context, allocation *Allocation) (*Allocation, error) {
	if err := checkAmount("totalAmount", allocation.TotalAmount); err != nil {
		return nil, fmt.Errorf("checking allocation: %w", err)
	}

	path, err := web.FormatPath("allocations/{allocationId}", "allocationId", allocation.AllocationID)
	if err != nil {
		return nil, err
	}

	var amended Allocation
	if err := a.c.Put(path).SendJSON(allocation).Decode(ctx, &amended); err != nil {
		return nil, err
	}

	return &amended, nil
}

// ReleaseAllocation frees the reserved funds. The node answers with an empty
// body.
func (a *API) ReleaseAllocation(ctx context.Context, allocationID string) error {
	path, err := web.FormatPath("allocations/{allocationId}", "allocationId", allocationID)
	if err != nil {
		return err
	}

	return a.c.Delete(path).Decode(ctx, nil)
}

// ListOption narrows an invoice listing.
type ListOption func(*listParams)

type listParams struct {
	afterTimestamp *time.Time
	maxItems       *int
}

// WithAfterTimestamp returns only invoices recorded after ts.
func WithAfterTimestamp(ts time.Time) ListOption {
	return func(p *listParams) { p.afterTimestamp = &ts }
}

// WithMaxItems caps the number of invoices returned.
func WithMaxItems(n int) ListOption {
	return func(p *listParams) { p.maxItems = &n }
}

// GetInvoices lists known invoices, newest last, honoring the given bounds.
func (a *API) GetInvoices(ctx context.Context, opts ...ListOption) ([]Invoice, error) {
	var p listParams
	for _, opt := range opts {
		opt(&p)
	}

	path := web.NewQuery().
		Put("afterTimestamp", p.afterTimestamp).
		Put("maxItems", p.maxItems).
		Apply("invoices")

	var invoices []Invoice
	if err := a.c.Get(path).Decode(ctx, &invoices); err != nil {
		return nil, err
	}

	return invoices, nil
}

// GetInvoice fetches one invoice by id.
func (a *API) GetInvoice(ctx context.Context, invoiceID string) (*Invoice, error) {
	path, err := web.FormatPath("invoices/{invoiceId}", "invoiceId", invoiceID)
	if err != nil {
		return nil, err
	}

	var invoice Invoice
	if err := a.c.Get(path).Decode(ctx, &invoice); err != nil {
		return nil, err
	}

	return &invoice, nil
}

// AcceptInvoice confirms the invoice for payment out of the acceptance's
// allocation.
func (a *API) AcceptInvoice(ctx context.Context, invoiceID string, acceptance *Acceptance) error {
	if err := validate.Check(acceptance); err != nil {
		return fmt.Errorf("checking acceptance: %w", err)
	}
	if err := checkAmount("totalAmountAccepted", acceptance.TotalAmountAccepted); err != nil {
		return fmt.Errorf("checking acceptance: %w", err)
	}

	path, err := web.FormatPath("invoices/{invoiceId}/accept", "invoiceId", invoiceID)
	if err != nil {
		return err
	}

	return a.c.Post(path).SendJSON(acceptance).Decode(ctx, nil)
}

// RejectInvoice turns the invoice down, citing the rejection's reason.
func (a *API) RejectInvoice(ctx context.Context, invoiceID string, rejection *Rejection) error {
	if rejection.RejectionReason == "" {
		return fmt.Errorf("checking rejection: %w",
			validate.NewFieldsError("rejectionReason", errors.New("must be set")))
	}
	if err := checkAmount("totalAmountAccepted", rejection.TotalAmountAccepted); err != nil {
		return fmt.Errorf("checking rejection: %w", err)
	}

	path, err := web.FormatPath("invoices/{invoiceId}/reject", "invoiceId", invoiceID)
	if err != nil {
		return err
	}

	return a.c.Post(path).SendJSON(rejection).Decode(ctx, nil)
}

// EventsOption narrows or extends an invoice event poll.
type EventsOption func(*eventParams)

type eventParams struct {
	pollTimeout    *int
	afterTimestamp *time.Time
	maxEvents      *int
}

// WithPollTimeout asks the node to hold the poll open for up to d before
// answering with whatever arrived. Sub-second durations truncate to zero,
// which the node treats as an immediate answer.
func WithPollTimeout(d time.Duration) EventsOption {
	seconds := int(d / time.Second)
	return func(p *eventParams) { p.pollTimeout = &seconds }
}

// WithAfterEventTimestamp returns only events recorded after ts.
func WithAfterEventTimestamp(ts time.Time) EventsOption {
	return func(p *eventParams) { p.afterTimestamp = &ts }
}

// WithMaxEvents caps the number of events returned in one poll.
func WithMaxEvents(n int) EventsOption {
	return func(p *eventParams) { p.maxEvents = &n }
}

// GetInvoiceEvents long-polls the invoice event stream. A poll that times
// out, whether at the transport or as a 408 from the node, yields an empty
// result rather than an error, so callers can loop on it directly.
func (a *API) GetInvoiceEvents(ctx context.Context, opts ...EventsOption) ([]InvoiceEvent, error) {
	var p eventParams
	for _, opt := range opts {
		opt(&p)
	}

	path := web.NewQuery().
		Put("timeout", p.pollTimeout).
		Put("afterTimestamp", p.afterTimestamp).
		Put("maxEvents", p.maxEvents).
		Apply("invoiceEvents")

	var events []InvoiceEvent
	err := a.c.Get(path).Decode(ctx, &events)

	return web.DefaultOnTimeout(events, err)
}
