package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidIdentity = errors.New("cart identity is invalid")
	ErrInvalidQuantity = errors.New("quantity must not be negative")
)

// Identity is the opaque key cart lines are grouped under. The authenticated
// and anonymous namespaces are disjoint and never merged; a guest checking out
// after signing in keeps two separate carts (see DESIGN.md open questions).
type Identity string

const (
	userPrefix = "user:"
	anonPrefix = "anon:"
)

// UserIdentity keys a cart by an authenticated user id.
func UserIdentity(userID int64) Identity {
	return Identity(fmt.Sprintf("%s%d", userPrefix, userID))
}

// AnonymousIdentity keys a cart by a client-generated session token.
func AnonymousIdentity(token string) (Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return "", ErrInvalidIdentity
	}
	return Identity(anonPrefix + token), nil
}

// Valid reports whether the identity carries a known namespace prefix.
func (i Identity) Valid() bool {
	s := string(i)
	switch {
	case strings.HasPrefix(s, userPrefix):
		return len(s) > len(userPrefix)
	case strings.HasPrefix(s, anonPrefix):
		return len(s) > len(anonPrefix)
	default:
		return false
	}
}

// Line is a stored cart line. Unique per (identity, product).
type Line struct {
	ID        int64
	Identity  Identity
	ProductID int64
	Quantity  int
}

// LineView is a cart line joined with current catalog data at read time.
// Products that no longer resolve are kept with a zero price and
// Available=false so the cart stays renderable across catalog changes.
type LineView struct {
	LineID    int64
	ProductID int64
	SKU       string
	Name      string
	ImageURL  string
	UnitPrice decimal.Decimal
	Quantity  int
	LineTotal decimal.Decimal
	Available bool
}

// View is the full denormalized cart returned to callers.
type View struct {
	Identity Identity
	Lines    []LineView
	Count    int
	Subtotal decimal.Decimal
}
