package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status tracks a cabinet project from design through installation.
type Status string

const (
	StatusDesign        Status = "design"
	StatusApproved      Status = "approved"
	StatusOrdered       Status = "ordered"
	StatusManufacturing Status = "manufacturing"
	StatusDelivery      Status = "delivery"
	StatusInstallation  Status = "installation"
	StatusCompleted     Status = "completed"
)

var (
	ErrMissingName   = errors.New("project name is required")
	ErrMissingUser   = errors.New("project owner is required")
	ErrInvalidStatus = errors.New("project status is invalid")
	ErrNegativePrice = errors.New("financial fields must not be negative")
)

// Project is a sold job being built and installed. It optionally links back
// to the quote it was converted from.
type Project struct {
	ID                int64
	QuoteID           int64
	UserID            int64
	Name              string
	Status            Status
	EstimatedDelivery *time.Time
	InstalledAt       *time.Time
	FinalPrice        decimal.Decimal
	DepositPaid       decimal.Decimal
	BalanceDue        decimal.Decimal
	Notes             string
}

// NewProject validates and constructs a project in the design state.
func NewProject(userID, quoteID int64, name string) (*Project, error) {
	project := &Project{
		QuoteID: quoteID,
		UserID:  userID,
		Name:    strings.TrimSpace(name),
		Status:  StatusDesign,
	}
	if err := project.Validate(); err != nil {
		return nil, err
	}
	return project, nil
}

func (p *Project) Validate() error {
	if p.Name == "" {
		return ErrMissingName
	}
	if p.UserID == 0 {
		return ErrMissingUser
	}
	if !ValidStatus(p.Status) {
		return ErrInvalidStatus
	}
	for _, amount := range []decimal.Decimal{p.FinalPrice, p.DepositPaid, p.BalanceDue} {
		if amount.IsNegative() {
			return ErrNegativePrice
		}
	}
	return nil
}

func ValidStatus(status Status) bool {
	switch status {
	case StatusDesign, StatusApproved, StatusOrdered, StatusManufacturing, StatusDelivery, StatusInstallation, StatusCompleted:
		return true
	default:
		return false
	}
}
