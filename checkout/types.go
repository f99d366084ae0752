// Package checkout holds the wire types for the payment provider's
// checkout-session API and for the ordering endpoint that fronts it.
package checkout

import "github.com/elliottskebab/ordering/pricing"

// CustomerInfo is untrusted free text collected at checkout. It is passed
// through to the provider's metadata for fulfillment, never parsed or
// validated beyond trimming. Fields are plain strings so they serialize as
// "" rather than null, which the provider requires.
type CustomerInfo struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

// OrderRequest is the inbound creation request: the cart plus customer
// details, as posted by the site.
type OrderRequest struct {
	Cart     []pricing.Line `json:"cart"`
	Customer CustomerInfo   `json:"customer"`
}

// CreateSessionRequest corresponds to "Create checkout session"
// (POST /v1/checkout/sessions).
type CreateSessionRequest struct {
	Mode               string     `json:"mode"`
	PaymentMethodTypes []string   `json:"payment_method_types"`
	LineItems          []LineItem `json:"line_items"`
	SuccessURL         string     `json:"success_url"`
	CancelURL          string     `json:"cancel_url"`
	Metadata           Metadata   `json:"metadata"`
}

// LineItem is one priced row of the session: a product or the delivery fee.
type LineItem struct {
	PriceData PriceData `json:"price_data"`
	Quantity  int64     `json:"quantity"`
}

type PriceData struct {
	Currency    string      `json:"currency"`
	ProductData ProductData `json:"product_data"`
	UnitAmount  int64       `json:"unit_amount"`
}

type ProductData struct {
	Name string `json:"name"`
}

// Metadata carries customer details on the session for downstream
// fulfillment. String-only by provider constraint.
type Metadata struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

// CreateSessionResponse is the provider's answer: an opaque session id and
// the URL the customer is redirected to.
type CreateSessionResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// ErrorEnvelope is the provider's error response shape.
type ErrorEnvelope struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}
