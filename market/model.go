package market

import (
	"encoding/json"
	"time"
)

// DemandOfferBase is the flat-property payload shared by offers, demands, and
// counter-proposals. Properties is an opaque JSON object in flat convention,
// where keys are full property names (for example "golem.inf.cpu.cores");
// nothing inside it is validated locally. Constraints is a filter expression
// over the counterparty's properties.
type DemandOfferBase struct {
	Properties  json.RawMessage `json:"properties" validate:"required"`
	Constraints string          `json:"constraints"`
}

// The three payload kinds share one wire shape.
type (
	NewOffer    = DemandOfferBase
	NewDemand   = DemandOfferBase
	NewProposal = DemandOfferBase
)

// New builds a payload from raw flat-convention properties and a constraint
// expression.
func New(properties json.RawMessage, constraints string) DemandOfferBase {
	return DemandOfferBase{
		Properties:  properties,
		Constraints: constraints,
	}
}

// State describes where a proposal sits in the negotiation exchange.
type State string

const (
	StateInitial  State = "Initial"
	StateDraft    State = "Draft"
	StateRejected State = "Rejected"
	StateAccepted State = "Accepted"
	StateExpired  State = "Expired"
)

// Proposal is one side's negotiable artifact within a subscription. The node
// assigns identifiers and state; PrevProposalID links a counter-proposal back
// to the proposal it answers.
type Proposal struct {
	ProposalID     string          `json:"proposalId"`
	IssuerID       string          `json:"issuerId"`
	State          State           `json:"state"`
	Timestamp      time.Time       `json:"timestamp"`
	Properties     json.RawMessage `json:"properties"`
	Constraints    string          `json:"constraints"`
	PrevProposalID *string         `json:"prevProposalId,omitempty"`
}
