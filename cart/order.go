package cart

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/elliottskebab/ordering/catalog"
	"github.com/elliottskebab/ordering/checkout"
	"github.com/elliottskebab/ordering/pricing"
)

// PaymentMethod is how the customer chose to pay.
type PaymentMethod string

const (
	PaymentCard PaymentMethod = "card"
	PaymentCash PaymentMethod = "cash"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentCard || m == PaymentCash
}

// Label is the human-facing name of the method.
func (m PaymentMethod) Label() string {
	switch m {
	case PaymentCard:
		return "Kort (Stripe)"
	case PaymentCash:
		return "Kontant ved levering"
	default:
		return string(m)
	}
}

// Order is an immutable snapshot of a placed order, kept only for receipt
// display.
type Order struct {
	Reference     string
	CreatedAt     time.Time
	PaymentMethod PaymentMethod
	Customer      checkout.CustomerInfo
	Items         []OrderItem
	Subtotal      int64
	DeliveryFee   int64
	Total         int64
}

// OrderItem is one purchased line with its catalog name and price frozen
// at order time.
type OrderItem struct {
	ID         string
	Name       string
	Quantity   int64
	UnitAmount int64
}

func newOrder(lines []pricing.Line, quote pricing.Result, customer checkout.CustomerInfo, method PaymentMethod) *Order {
	items := make([]OrderItem, 0, len(lines))
	for _, ln := range lines {
		entry, ok := catalog.Lookup(ln.ID)
		if !ok {
			continue
		}
		qty := ln.Qty.Clamp()
		if qty <= 0 {
			continue
		}
		items = append(items, OrderItem{
			ID:         entry.ID,
			Name:       entry.Name,
			Quantity:   qty,
			UnitAmount: entry.UnitAmount,
		})
	}

	return &Order{
		Reference:     newReference(),
		CreatedAt:     time.Now(),
		PaymentMethod: method,
		Customer: checkout.CustomerInfo{
			Name:    strings.TrimSpace(customer.Name),
			Phone:   strings.TrimSpace(customer.Phone),
			Address: strings.TrimSpace(customer.Address),
			Notes:   strings.TrimSpace(customer.Notes),
		},
		Items:       items,
		Subtotal:    quote.Subtotal,
		DeliveryFee: quote.DeliveryFee,
		Total:       quote.Total,
	}
}

// Request builds the payload the site posts to the creation endpoint for
// a card order.
func (o *Order) Request() *checkout.OrderRequest {
	lines := make([]pricing.Line, 0, len(o.Items))
	for _, item := range o.Items {
		lines = append(lines, pricing.Line{ID: item.ID, Qty: pricing.Quantity(item.Quantity)})
	}
	return &checkout.OrderRequest{
		Cart:     lines,
		Customer: o.Customer,
	}
}

// newReference makes a short human-readable order reference like "EK-3F9A1".
func newReference() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "EK-" + raw[:5]
}
