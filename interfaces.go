package ordering

import "github.com/elliottskebab/ordering/log"

// Gateway is the payment provider client as seen by the rest of the module.
type Gateway interface {
	Checkout() *CheckoutService

	VerifyWebhook(payload []byte, header string) error

	SetLogLevel(level log.Level)
}

var _ Gateway = (*Client)(nil)
