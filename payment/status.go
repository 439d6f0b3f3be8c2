package payment

import (
	"encoding/json"
	"fmt"
)

// InvoiceStatus is the lifecycle state of a billing document. Values are
// declared in progression order, so states compare meaningfully with < and
// the zero value is StatusIssued.
type InvoiceStatus int

const (
	StatusIssued InvoiceStatus = iota
	StatusReceived
	StatusAccepted
	StatusRejected
	StatusFailed
	StatusSettled
	StatusCancelled
)

var statusNames = [...]string{
	StatusIssued:    "ISSUED",
	StatusReceived:  "RECEIVED",
	StatusAccepted:  "ACCEPTED",
	StatusRejected:  "REJECTED",
	StatusFailed:    "FAILED",
	StatusSettled:   "SETTLED",
	StatusCancelled: "CANCELLED",
}

// String returns the uppercase wire name of the status.
func (s InvoiceStatus) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("InvoiceStatus(%d)", int(s))
	}

	return statusNames[s]
}

// ParseInvoiceStatus maps an uppercase wire name back to its status.
func ParseInvoiceStatus(name string) (InvoiceStatus, error) {
	for i, n := range statusNames {
		if n == name {
			return InvoiceStatus(i), nil
		}
	}

	return 0, fmt.Errorf("unknown invoice status %q", name)
}

// MarshalJSON encodes the status as its uppercase name.
func (s InvoiceStatus) MarshalJSON() ([]byte, error) {
	if s < 0 || int(s) >= len(statusNames) {
		return nil, fmt.Errorf("unknown invoice status %d", int(s))
	}

	return json.Marshal(statusNames[s])
}

// UnmarshalJSON decodes an uppercase name into the status, rejecting
// anything outside the closed set.
func (s *InvoiceStatus) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}

	parsed, err := ParseInvoiceStatus(name)
	if err != nil {
		return err
	}
	*s = parsed

	return nil
}
