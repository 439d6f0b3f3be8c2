package payment

import (
	"time"

	"github.com/shopspring/decimal"
)

// Allocation is a reserved amount of funds available for future payment.
// Amounts are arbitrary-precision decimals and travel as JSON strings, so no
// precision is lost in transit. A nil Timeout means the reservation does not
// expire on its own.
type Allocation struct {
	AllocationID    string          `json:"allocationId"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	SpentAmount     decimal.Decimal `json:"spentAmount"`
	RemainingAmount decimal.Decimal `json:"remainingAmount"`
	Timeout         *time.Time      `json:"timeout,omitempty"`
	MakeDeposit     bool            `json:"makeDeposit"`
}

// NewAllocation is the creation request for an [Allocation]. The identifier
// and the spent/remaining balances are assigned by the node.
type NewAllocation struct {
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Timeout     *time.Time      `json:"timeout,omitempty"`
	MakeDeposit bool            `json:"makeDeposit"`
}

// Invoice is a payment request issued for an agreement.
type Invoice struct {
	InvoiceID      string          `json:"invoiceId"`
	IssuerID       string          `json:"issuerId"`
	RecipientID    string          `json:"recipientId"`
	AgreementID    string          `json:"agreementId"`
	ActivityIDs    []string        `json:"activityIds,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	PaymentDueDate *time.Time      `json:"paymentDueDate,omitempty"`
	Status         InvoiceStatus   `json:"status"`
	Timestamp      time.Time       `json:"timestamp"`
}

// Acceptance confirms an invoice for payment out of a specific allocation.
type Acceptance struct {
	TotalAmountAccepted decimal.Decimal `json:"totalAmountAccepted"`
	AllocationID        string          `json:"allocationId" validate:"required"`
}
