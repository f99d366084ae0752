// Package pricing turns a cart into money amounts.
//
// Everything here is a pure function of the input lines and the catalog:
// no side effects, safe to recompute on every cart change. All amounts are
// in øre; FormatNOK is the only place that converts to display kroner.
package pricing

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/elliottskebab/ordering/catalog"
)

const (
	// FreeDeliveryThreshold is the subtotal (in øre) at which delivery
	// becomes free.
	FreeDeliveryThreshold int64 = 35000

	// FlatDeliveryFee is charged (in øre) below the threshold.
	FlatDeliveryFee int64 = 4900

	// MaxLineQuantity bounds a single cart line.
	MaxLineQuantity int64 = 50
)

// Quantity is a cart line quantity as it arrives from an untrusted caller.
//
// JSON decoding is deliberately forgiving: numbers and numeric strings are
// accepted, anything else decodes to 0 so that one garbage line degrades to
// a zero-contribution line instead of failing the whole cart.
type Quantity int64

func (q *Quantity) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	s = strings.Trim(s, `"`)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) {
		*q = 0
		return nil
	}
	// Saturate before the integer conversion: converting an out-of-range
	// float64 to int64 is implementation-defined and would bypass Clamp.
	if f > float64(MaxLineQuantity) {
		f = float64(MaxLineQuantity)
	}
	if f < -float64(MaxLineQuantity) {
		f = -float64(MaxLineQuantity)
	}
	*q = Quantity(f)
	return nil
}

// Clamp bounds the quantity to [0, MaxLineQuantity].
func (q Quantity) Clamp() int64 {
	n := int64(q)
	if n < 0 {
		return 0
	}
	if n > MaxLineQuantity {
		return MaxLineQuantity
	}
	return n
}

// Line is one cart entry: an item id and a requested quantity.
type Line struct {
	ID  string   `json:"id"`
	Qty Quantity `json:"qty"`
}

// Result is the derived price of a cart. It is never stored independently
// of the lines that produced it.
type Result struct {
	Subtotal    int64 `json:"subtotal"`
	DeliveryFee int64 `json:"delivery_fee"`
	Total       int64 `json:"total"`
}

// Subtotal sums unit price times clamped quantity over all lines.
//
// Lines referencing unknown ids are skipped silently: the item no longer
// exists, the line contributes nothing. An empty or all-invalid cart
// returns 0.
func Subtotal(lines []Line) int64 {
	var sum int64
	for _, ln := range lines {
		entry, ok := catalog.Lookup(ln.ID)
		if !ok {
			continue
		}
		sum += entry.UnitAmount * ln.Qty.Clamp()
	}
	return sum
}

// DeliveryFee is a function of the subtotal only. Nothing to deliver costs
// nothing; orders at or above the threshold ship free.
func DeliveryFee(subtotal int64) int64 {
	if subtotal <= 0 {
		return 0
	}
	if subtotal >= FreeDeliveryThreshold {
		return 0
	}
	return FlatDeliveryFee
}

// Total is Subtotal plus the delivery fee on that subtotal.
func Total(lines []Line) int64 {
	subtotal := Subtotal(lines)
	return subtotal + DeliveryFee(subtotal)
}

// Quote prices a cart in one pass.
func Quote(lines []Line) Result {
	subtotal := Subtotal(lines)
	fee := DeliveryFee(subtotal)
	return Result{
		Subtotal:    subtotal,
		DeliveryFee: fee,
		Total:       subtotal + fee,
	}
}

// FormatNOK renders a minor-unit amount as whole kroner for display,
// e.g. 17900 -> "179 kr". Rounds to the nearest krone.
func FormatNOK(minor int64) string {
	kr := (minor + 50) / 100
	if minor < 0 {
		kr = (minor - 50) / 100
	}
	return fmt.Sprintf("%d kr", kr)
}
