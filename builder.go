package ordering

import (
	"strings"

	"github.com/elliottskebab/ordering/catalog"
	"github.com/elliottskebab/ordering/checkout"
	"github.com/elliottskebab/ordering/consts"
	"github.com/elliottskebab/ordering/pricing"
)

// BuildCheckoutSession maps a cart and customer details to a
// create-session request for the payment provider.
//
// Line items carry the catalog display name and unit price; lines with
// unknown ids or a clamped quantity of zero are omitted entirely rather
// than sent as degenerate rows. The delivery fee appears as its own
// single-quantity line only when it is actually charged. Redirect URLs are
// derived from the caller's origin so the same build works in every
// deployment environment.
//
// A cart that resolves to subtotal <= 0 returns EmptyCartError and must
// not be submitted.
func BuildCheckoutSession(lines []pricing.Line, customer checkout.CustomerInfo, origin string) (*checkout.CreateSessionRequest, error) {
	quote := pricing.Quote(lines)
	if quote.Subtotal <= 0 {
		return nil, &EmptyCartError{}
	}

	items := make([]checkout.LineItem, 0, len(lines)+1)
	for _, ln := range lines {
		entry, ok := catalog.Lookup(ln.ID)
		if !ok {
			continue
		}
		qty := ln.Qty.Clamp()
		if qty <= 0 {
			continue
		}
		items = append(items, checkout.LineItem{
			PriceData: checkout.PriceData{
				Currency:    consts.Currency,
				ProductData: checkout.ProductData{Name: entry.Name},
				UnitAmount:  entry.UnitAmount,
			},
			Quantity: qty,
		})
	}

	if quote.DeliveryFee > 0 {
		items = append(items, checkout.LineItem{
			PriceData: checkout.PriceData{
				Currency:    consts.Currency,
				ProductData: checkout.ProductData{Name: consts.DeliveryLineName},
				UnitAmount:  quote.DeliveryFee,
			},
			Quantity: 1,
		})
	}

	origin = strings.TrimRight(strings.TrimSpace(origin), "/")

	return &checkout.CreateSessionRequest{
		Mode:               consts.ModePayment,
		PaymentMethodTypes: []string{"card"},
		LineItems:          items,
		SuccessURL:         origin + consts.SuccessPath,
		CancelURL:          origin + consts.CancelPath,
		Metadata: checkout.Metadata{
			Name:    strings.TrimSpace(customer.Name),
			Phone:   strings.TrimSpace(customer.Phone),
			Address: strings.TrimSpace(customer.Address),
			Notes:   strings.TrimSpace(customer.Notes),
		},
	}, nil
}
