package consts

const (
	HeaderAuthorization    = "Authorization"
	HeaderAPIVersion       = "Stripe-Version"
	HeaderWebhookSignature = "Stripe-Signature"
	HeaderAccept           = "Accept"
	HeaderContentType      = "Content-Type"

	ContentTypeJSON = "application/json"
)

// Base URLs.
const (
	DefaultAPIBaseURL = "https://api.stripe.com"

	// Reverse geocoding for the delivery-zone picker.
	DefaultGeocodeBaseURL = "https://nominatim.openstreetmap.org"
)

// DefaultAPIVersion pins the payment API version the session payload is
// written against.
const DefaultAPIVersion = "2023-10-16"

// Endpoint paths.
const (
	CheckoutSessionsPath = "/v1/checkout/sessions"
	ReverseGeocodePath   = "/reverse"
)

// Environment variables read by the server deployment.
const (
	EnvSecretKey     = "STRIPE_SECRET_KEY"
	EnvWebhookSecret = "STRIPE_WEBHOOK_SECRET"
)

// Session payload constants.
//
// All money is in minor units (øre). Conversion to display kroner happens
// only at the presentation boundary.
const (
	Currency    = "nok"
	ModePayment = "payment"

	// Display name of the delivery fee line item.
	DeliveryLineName = "Levering"

	// Redirect paths appended to the caller's origin.
	SuccessPath = "/success.html?session_id={CHECKOUT_SESSION_ID}"
	CancelPath  = "/cancel.html"
)
