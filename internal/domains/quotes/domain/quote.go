package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Status tracks a quote through the sales pipeline.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPending   Status = "pending"
	StatusReviewed  Status = "reviewed"
	StatusApproved  Status = "approved"
	StatusDeclined  Status = "declined"
	StatusConverted Status = "converted"
)

var (
	ErrMissingCustomerName  = errors.New("customer name is required")
	ErrMissingCustomerEmail = errors.New("customer email is required")
	ErrInvalidStatus        = errors.New("quote status is invalid")
	ErrNegativeCost         = errors.New("cost fields must not be negative")
)

// Message is one turn of the design consultation attached to a quote.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CabinetSpec captures what the customer wants built.
type CabinetSpec struct {
	CabinetType string `json:"cabinetType"`
	DoorStyle   string `json:"doorStyle"`
	WoodSpecies string `json:"woodSpecies"`
	Finish      string `json:"finish"`
	Hardware    string `json:"hardware"`
}

// Quote is a custom-cabinet estimate. Conversation holds the chat history
// that produced it, oldest turn first.
type Quote struct {
	ID            int64
	UserID        int64
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	RoomType      string
	Dimensions    string
	Cabinet       CabinetSpec
	EstimatedCost decimal.Decimal
	MaterialsCost decimal.Decimal
	LaborCost     decimal.Decimal
	HardwareCost  decimal.Decimal
	Status        Status
	CRMLeadID     string
	SentToCRM     bool
	Conversation  []Message
	Notes         string
}

// NewQuote validates and constructs a quote in the draft state.
func NewQuote(userID int64, customerName, customerEmail, customerPhone, roomType, dimensions string, cabinet CabinetSpec) (*Quote, error) {
	quote := &Quote{
		UserID:        userID,
		CustomerName:  strings.TrimSpace(customerName),
		CustomerEmail: strings.TrimSpace(customerEmail),
		CustomerPhone: strings.TrimSpace(customerPhone),
		RoomType:      strings.TrimSpace(roomType),
		Dimensions:    strings.TrimSpace(dimensions),
		Cabinet:       cabinet,
		Status:        StatusDraft,
	}
	if err := quote.Validate(); err != nil {
		return nil, err
	}
	return quote, nil
}

func (q *Quote) Validate() error {
	if q.CustomerName == "" {
		return ErrMissingCustomerName
	}
	if q.CustomerEmail == "" {
		return ErrMissingCustomerEmail
	}
	if !ValidStatus(q.Status) {
		return ErrInvalidStatus
	}
	for _, cost := range []decimal.Decimal{q.EstimatedCost, q.MaterialsCost, q.LaborCost, q.HardwareCost} {
		if cost.IsNegative() {
			return ErrNegativeCost
		}
	}
	return nil
}

// Append adds turns to the conversation, dropping empty ones.
func (q *Quote) Append(messages ...Message) {
	for _, msg := range messages {
		if strings.TrimSpace(msg.Content) == "" {
			continue
		}
		q.Conversation = append(q.Conversation, msg)
	}
}

func ValidStatus(status Status) bool {
	switch status {
	case StatusDraft, StatusPending, StatusReviewed, StatusApproved, StatusDeclined, StatusConverted:
		return true
	default:
		return false
	}
}
