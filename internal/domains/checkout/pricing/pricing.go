// Package pricing computes shipping, sales tax, and order totals. All
// functions are pure and total over subtotal >= 0.
package pricing

import "github.com/shopspring/decimal"

// Method enumerates the supported shipping methods.
type Method string

const (
	MethodStandard  Method = "standard"
	MethodExpedited Method = "expedited"
	MethodExpress   Method = "express"
)

const (
	labelStandard  = "Standard Shipping (5-7 business days)"
	labelExpedited = "Expedited Shipping (2-3 business days)"
	labelExpress   = "Express Shipping (Next day)"
)

var (
	freeShippingThreshold = decimal.RequireFromString("100")
	standardRate          = decimal.RequireFromString("9.95")
	expeditedRateOver     = decimal.RequireFromString("14.95")
	expeditedRateUnder    = decimal.RequireFromString("19.95")
	expressRate           = decimal.RequireFromString("29.95")

	// Virginia sales tax, applied to subtotal plus shipping.
	taxRate = decimal.RequireFromString("0.053")
)

// ParseMethod normalizes a raw method string; anything unrecognized falls
// back to standard.
func ParseMethod(raw string) Method {
	switch Method(raw) {
	case MethodExpedited:
		return MethodExpedited
	case MethodExpress:
		return MethodExpress
	default:
		return MethodStandard
	}
}

// Shipping returns the shipping cost and the customer-facing label for the
// method. Standard is free at or above the threshold; express is flat.
func Shipping(subtotal decimal.Decimal, method Method) (decimal.Decimal, string) {
	switch method {
	case MethodExpedited:
		if subtotal.GreaterThanOrEqual(freeShippingThreshold) {
			return expeditedRateOver, labelExpedited
		}
		return expeditedRateUnder, labelExpedited
	case MethodExpress:
		return expressRate, labelExpress
	default:
		if subtotal.GreaterThanOrEqual(freeShippingThreshold) {
			return decimal.Zero, labelStandard
		}
		return standardRate, labelStandard
	}
}

// Tax returns round((subtotal + shipping) * rate, 2), half-up.
func Tax(subtotal, shipping decimal.Decimal) decimal.Decimal {
	return subtotal.Add(shipping).Mul(taxRate).Round(2)
}

// Breakdown carries the independently rounded terms of an order total.
type Breakdown struct {
	Subtotal      decimal.Decimal
	ShippingCost  decimal.Decimal
	ShippingLabel string
	Tax           decimal.Decimal
	Total         decimal.Decimal
	Method        Method
}

// Totals rounds each term to two decimals before summing so rounding error
// cannot compound across terms.
func Totals(subtotal decimal.Decimal, method Method) Breakdown {
	subtotal = subtotal.Round(2)
	shipping, label := Shipping(subtotal, method)
	shipping = shipping.Round(2)
	tax := Tax(subtotal, shipping)
	return Breakdown{
		Subtotal:      subtotal,
		ShippingCost:  shipping,
		ShippingLabel: label,
		Tax:           tax,
		Total:         subtotal.Add(shipping).Add(tax),
		Method:        method,
	}
}
