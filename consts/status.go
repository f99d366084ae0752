package consts

// AttemptStatus tracks a single checkout attempt through its lifecycle.
//
// Every attempt ends in either AttemptRedirected (the caller got a payment
// URL) or AttemptFailed (an error response went out). There are no retries:
// a failed attempt requires the caller to resubmit.
type AttemptStatus string

const (
	AttemptReceived        AttemptStatus = "received"
	AttemptValidated       AttemptStatus = "validated"
	AttemptPricingComputed AttemptStatus = "pricing_computed"
	AttemptRequestBuilt    AttemptStatus = "request_built"
	AttemptSubmitted       AttemptStatus = "submitted"
	AttemptRedirected      AttemptStatus = "redirected"
	AttemptFailed          AttemptStatus = "failed"
)

// Terminal reports whether the attempt has reached a final state.
func (s AttemptStatus) Terminal() bool {
	return s == AttemptRedirected || s == AttemptFailed
}
