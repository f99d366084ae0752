package ordering

import (
	"errors"
	"testing"

	"github.com/elliottskebab/ordering/checkout"
	"github.com/elliottskebab/ordering/pricing"
)

func TestBuildCheckoutSessionSkipsUnpriceableLines(t *testing.T) {
	req, err := BuildCheckoutSession(
		[]pricing.Line{
			{ID: "kebab_i_pita", Qty: 2},
			{ID: "ghost", Qty: 3},
			{ID: "drikke", Qty: 0},
			{ID: "rull", Qty: -4},
		},
		checkout.CustomerInfo{Name: "Kari"},
		"https://elliotts.example",
	)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	// 2x kebab i pita = 29800, under the free-delivery threshold, so the
	// fee rides along as its own line.
	if len(req.LineItems) != 2 {
		t.Fatalf("expected 2 line items, got %+v", req.LineItems)
	}
	first := req.LineItems[0]
	if first.PriceData.ProductData.Name != "Kebab i pita" || first.PriceData.UnitAmount != 14900 || first.Quantity != 2 {
		t.Fatalf("unexpected first line item: %+v", first)
	}
	if first.PriceData.Currency != "nok" {
		t.Fatalf("unexpected currency: %q", first.PriceData.Currency)
	}
	fee := req.LineItems[1]
	if fee.PriceData.ProductData.Name != "Levering" || fee.PriceData.UnitAmount != 4900 || fee.Quantity != 1 {
		t.Fatalf("unexpected delivery line: %+v", fee)
	}
}

func TestBuildCheckoutSessionNoDeliveryLineAboveThreshold(t *testing.T) {
	// 3x kebab tallerken = 53700, free delivery.
	req, err := BuildCheckoutSession(
		[]pricing.Line{{ID: "kebab_tallerken", Qty: 3}},
		checkout.CustomerInfo{},
		"https://elliotts.example",
	)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(req.LineItems) != 1 {
		t.Fatalf("expected a single line item, got %+v", req.LineItems)
	}
	for _, li := range req.LineItems {
		if li.PriceData.ProductData.Name == "Levering" {
			t.Fatalf("no delivery line expected above the threshold: %+v", req.LineItems)
		}
	}
}

func TestBuildCheckoutSessionEmptyCart(t *testing.T) {
	for name, lines := range map[string][]pricing.Line{
		"nil":          nil,
		"empty":        {},
		"unknown only": {{ID: "ghost", Qty: 5}},
		"zero qty":     {{ID: "rull", Qty: 0}},
		"negative qty": {{ID: "rull", Qty: -1}},
	} {
		_, err := BuildCheckoutSession(lines, checkout.CustomerInfo{}, "https://elliotts.example")
		var empty *EmptyCartError
		if !errors.As(err, &empty) {
			t.Fatalf("%s: expected EmptyCartError, got %v", name, err)
		}
	}
}

func TestBuildCheckoutSessionRedirectURLs(t *testing.T) {
	req, err := BuildCheckoutSession(
		[]pricing.Line{{ID: "drikke", Qty: 1}},
		checkout.CustomerInfo{},
		"  https://elliotts.example/  ",
	)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if req.SuccessURL != "https://elliotts.example/success.html?session_id={CHECKOUT_SESSION_ID}" {
		t.Fatalf("unexpected success url: %q", req.SuccessURL)
	}
	if req.CancelURL != "https://elliotts.example/cancel.html" {
		t.Fatalf("unexpected cancel url: %q", req.CancelURL)
	}
	if req.Mode != "payment" || len(req.PaymentMethodTypes) != 1 || req.PaymentMethodTypes[0] != "card" {
		t.Fatalf("unexpected session shape: %+v", req)
	}
}

func TestBuildCheckoutSessionMetadataTrimmed(t *testing.T) {
	req, err := BuildCheckoutSession(
		[]pricing.Line{{ID: "falafel_rull", Qty: 1}},
		checkout.CustomerInfo{Name: "  Ola Nordmann  ", Phone: " 98765432 ", Address: " Nygårdsgaten 5 ", Notes: "  ring på  "},
		"https://elliotts.example",
	)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	md := req.Metadata
	if md.Name != "Ola Nordmann" || md.Phone != "98765432" || md.Address != "Nygårdsgaten 5" || md.Notes != "ring på" {
		t.Fatalf("metadata not trimmed: %+v", md)
	}
}
