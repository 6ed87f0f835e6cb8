package application

import (
	"errors"
	"fmt"

	"github.com/cabinetworks/storefront/internal/domains/orders/domain"
)

// ErrInvalidInput wraps domain validation failures so transports can map
// them to a 4xx without knowing the individual sentinels.
var ErrInvalidInput = errors.New("invalid input")

func mapError(err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrMissingTrackingNumber):
		return fmt.Errorf("%w: %s", ErrInvalidInput, err)
	default:
		return err
	}
}
