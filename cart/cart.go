// Package cart is the client-side order state: one explicitly owned,
// single-writer structure mutated only through its methods, with every
// read (totals, receipt, summary) recomputed as a pure derivation.
package cart

import (
	"strings"

	ordering "github.com/elliottskebab/ordering"
	"github.com/elliottskebab/ordering/checkout"
	"github.com/elliottskebab/ordering/pricing"
)

// Cart holds item quantities in insertion order. It is not safe for
// concurrent use; the UI drives it from a single goroutine.
type Cart struct {
	order []string
	qty   map[string]int64

	lastOrder *Order
}

func New() *Cart {
	return &Cart{qty: make(map[string]int64)}
}

// SetQuantity sets the quantity for an item. A quantity <= 0 removes the
// line. Quantities above the per-line maximum are clamped when priced, not
// here, so the UI can show what was asked for.
func (c *Cart) SetQuantity(id string, qty int64) {
	if id == "" {
		return
	}
	if qty <= 0 {
		c.remove(id)
		return
	}
	if _, ok := c.qty[id]; !ok {
		c.order = append(c.order, id)
	}
	c.qty[id] = qty
}

// Add increments an item's quantity by one.
func (c *Cart) Add(id string) {
	c.SetQuantity(id, c.qty[id]+1)
}

func (c *Cart) remove(id string) {
	if _, ok := c.qty[id]; !ok {
		return
	}
	delete(c.qty, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Clear empties the cart. The last order snapshot is kept for receipts.
func (c *Cart) Clear() {
	c.order = nil
	c.qty = make(map[string]int64)
}

func (c *Cart) IsEmpty() bool {
	return len(c.order) == 0
}

// Lines returns the cart as pricing input, in insertion order.
func (c *Cart) Lines() []pricing.Line {
	lines := make([]pricing.Line, 0, len(c.order))
	for _, id := range c.order {
		lines = append(lines, pricing.Line{ID: id, Qty: pricing.Quantity(c.qty[id])})
	}
	return lines
}

// Quote prices the current cart. Recomputed on every call; never cached.
func (c *Cart) Quote() pricing.Result {
	return pricing.Quote(c.Lines())
}

// Checkout validates the cart and customer details, produces an immutable
// order snapshot, clears the cart and caches the snapshot for receipt
// display. Nothing is persisted anywhere else.
func (c *Cart) Checkout(customer checkout.CustomerInfo, method PaymentMethod) (*Order, error) {
	quote := c.Quote()
	if quote.Subtotal <= 0 {
		return nil, &ordering.EmptyCartError{}
	}

	ve := &ordering.ValidationError{}
	if strings.TrimSpace(customer.Name) == "" {
		ve.Add("customer.name", "is required")
	}
	if strings.TrimSpace(customer.Phone) == "" {
		ve.Add("customer.phone", "is required")
	}
	if strings.TrimSpace(customer.Address) == "" {
		ve.Add("customer.address", "is required")
	}
	if !method.Valid() {
		ve.Add("payment_method", "must be card or cash")
	}
	if ve.HasErrors() {
		return nil, ve
	}

	order := newOrder(c.Lines(), quote, customer, method)
	c.Clear()
	c.lastOrder = order
	return order, nil
}

// LastOrder returns the receipt cache: the most recent order placed from
// this cart, or nil. Transient by design.
func (c *Cart) LastOrder() *Order {
	return c.lastOrder
}
