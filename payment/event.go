package payment

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// RejectionReason is the closed set of causes a recipient may cite when
// rejecting an invoice.
type RejectionReason string

const (
	ReasonUnsolicitedService RejectionReason = "UNSOLICITED_SERVICE"
	ReasonBadService         RejectionReason = "BAD_SERVICE"
	ReasonIncorrectAmount    RejectionReason = "INCORRECT_AMOUNT"
)

// Rejection carries the reason an invoice was turned down and how much of it
// the recipient acknowledges.
type Rejection struct {
	RejectionReason     RejectionReason `json:"rejectionReason"`
	TotalAmountAccepted decimal.Decimal `json:"totalAmountAccepted"`
	Message             *string         `json:"message,omitempty"`
}

// EventKind enumerates the invoice event variants.
type EventKind int

const (
	EventReceived EventKind = iota
	EventAccepted
	EventRejected
	EventCancelled
	EventSettled
)

// eventJSONNames is the full-variant-name encoding used on the JSON path.
var eventJSONNames = [...]string{
	EventReceived:  "InvoiceReceivedEvent",
	EventAccepted:  "InvoiceAcceptedEvent",
	EventRejected:  "InvoiceRejectedEvent",
	EventCancelled: "InvoiceCancelledEvent",
	EventSettled:   "InvoiceSettledEvent",
}

// eventTags is the short uppercase encoding used by String and
// ParseInvoiceEventType. The two encodings are independent: the JSON wire
// form never uses these tags.
var eventTags = [...]string{
	EventReceived:  "RECEIVED",
	EventAccepted:  "ACCEPTED",
	EventRejected:  "REJECTED",
	EventCancelled: "CANCELLED",
	EventSettled:   "SETTLED",
}

func (k EventKind) valid() bool {
	return k >= 0 && int(k) < len(eventJSONNames)
}

// InvoiceEventType is a closed sum over the invoice event variants. Four
// variants carry no payload; the rejected variant carries the rejection
// detail. Payload-less variants encode in JSON as the bare full variant name
// ("InvoiceSettledEvent"), while the rejected variant encodes as a single-key
// object wrapping its detail.
type InvoiceEventType struct {
	Kind EventKind

	// Rejection is set for EventRejected decoded from JSON. It stays nil when
	// the value came from ParseInvoiceEventType, which sees only the tag.
	Rejection *Rejection
}

// ReceivedEvent marks an invoice as delivered to the recipient.
func ReceivedEvent() InvoiceEventType { return InvoiceEventType{Kind: EventReceived} }

// AcceptedEvent marks an invoice as accepted for payment.
func AcceptedEvent() InvoiceEventType { return InvoiceEventType{Kind: EventAccepted} }

// RejectedEvent marks an invoice as turned down, with detail.
func RejectedEvent(r Rejection) InvoiceEventType {
	return InvoiceEventType{Kind: EventRejected, Rejection: &r}
}

// CancelledEvent marks an invoice as withdrawn by its issuer.
func CancelledEvent() InvoiceEventType { return InvoiceEventType{Kind: EventCancelled} }

// SettledEvent marks an invoice as paid.
func SettledEvent() InvoiceEventType { return InvoiceEventType{Kind: EventSettled} }

// String returns the short uppercase tag of the variant.
func (t InvoiceEventType) String() string {
	if !t.Kind.valid() {
		return fmt.Sprintf("InvoiceEventType(%d)", int(t.Kind))
	}

	return eventTags[t.Kind]
}

// ParseInvoiceEventType maps a short uppercase tag to its variant. The
// rejected variant parses with no rejection detail attached.
func ParseInvoiceEventType(tag string) (InvoiceEventType, error) {
	for i, candidate := range eventTags {
		if candidate == tag {
			return InvoiceEventType{Kind: EventKind(i)}, nil
		}
	}

	return InvoiceEventType{}, fmt.Errorf("unknown invoice event type %q", tag)
}

type rejectedDetail struct {
	Rejection Rejection `json:"rejection"`
}

// MarshalJSON encodes payload-less variants as their full variant name and
// the rejected variant as a single-key object.
func (t InvoiceEventType) MarshalJSON() ([]byte, error) {
	if !t.Kind.valid() {
		return nil, fmt.Errorf("unknown invoice event kind %d", int(t.Kind))
	}

	if t.Kind == EventRejected {
		if t.Rejection == nil {
			return nil, fmt.Errorf("rejected invoice event requires rejection detail")
		}
		return json.Marshal(struct {
			Detail rejectedDetail `json:"InvoiceRejectedEvent"`
		}{Detail: rejectedDetail{Rejection: *t.Rejection}})
	}

	return json.Marshal(eventJSONNames[t.Kind])
}

// UnmarshalJSON accepts either wire form: a bare full variant name, or the
// single-key rejected object.
func (t *InvoiceEventType) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		for i, candidate := range eventJSONNames {
			if candidate == name && EventKind(i) != EventRejected {
				*t = InvoiceEventType{Kind: EventKind(i)}
				return nil
			}
		}
		return fmt.Errorf("unknown invoice event type %q", name)
	}

	var obj struct {
		Detail *rejectedDetail `json:"InvoiceRejectedEvent"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("decoding invoice event type: %w", err)
	}
	if obj.Detail == nil {
		return fmt.Errorf("decoding invoice event type: no known variant key")
	}

	*t = InvoiceEventType{Kind: EventRejected, Rejection: &obj.Detail.Rejection}

	return nil
}

// InvoiceEvent is a timestamped state-change notification for one invoice.
type InvoiceEvent struct {
	InvoiceID string           `json:"invoiceId"`
	EventDate time.Time        `json:"eventDate"`
	EventType InvoiceEventType `json:"eventType"`
}
