package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Webhook events are signed with HMAC-SHA256 over "<timestamp>.<payload>"
// and delivered in a header of the form:
//
//	t=1614556800,v1=5257a869e7...[,v1=...]
//
// Multiple v1 entries appear during secret rotation; any one matching
// signature is accepted.

// DefaultTolerance bounds how old a signed timestamp may be. Events older
// than this are rejected to limit replay.
const DefaultTolerance = 5 * time.Minute

// Verifier checks webhook signatures against a shared endpoint secret.
type Verifier struct {
	Secret    []byte
	Tolerance time.Duration
}

// Verify checks header against payload using the current time.
func (v *Verifier) Verify(payload []byte, header string) error {
	return v.VerifyAt(payload, header, time.Now())
}

// VerifyAt is Verify with an explicit clock, for tests.
func (v *Verifier) VerifyAt(payload []byte, header string, now time.Time) error {
	if v == nil || len(v.Secret) == 0 {
		return errors.New("signature: webhook secret is not configured")
	}

	ts, candidates, err := parseHeader(header)
	if err != nil {
		return err
	}

	tolerance := v.Tolerance
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	age := now.Sub(time.Unix(ts, 0))
	if age > tolerance || age < -tolerance {
		return fmt.Errorf("signature: timestamp outside tolerance (age %s)", age)
	}

	expected := Compute(v.Secret, payload, ts)
	for _, c := range candidates {
		if hmac.Equal([]byte(c), []byte(expected)) {
			return nil
		}
	}
	return errors.New("signature: no matching v1 signature")
}

// Compute returns the hex HMAC-SHA256 signature for payload at timestamp ts.
// Exposed so tests and the webhook examples can produce valid headers.
func Compute(secret, payload []byte, ts int64) string {
	mac := hmac.New(sha256.New, secret)
	fmt.Fprintf(mac, "%d.", ts)
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// Header builds a signed header value for payload at timestamp ts.
func Header(secret, payload []byte, ts int64) string {
	return fmt.Sprintf("t=%d,v1=%s", ts, Compute(secret, payload, ts))
}

func parseHeader(header string) (ts int64, candidates []string, err error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return 0, nil, errors.New("signature: empty signature header")
	}

	for _, part := range strings.Split(header, ",") {
		k, v, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch k {
		case "t":
			ts, err = strconv.ParseInt(v, 10, 64)
			if err != nil {
				return 0, nil, fmt.Errorf("signature: invalid timestamp %q", v)
			}
		case "v1":
			if v != "" {
				candidates = append(candidates, v)
			}
		}
	}

	if ts == 0 {
		return 0, nil, errors.New("signature: header has no timestamp")
	}
	if len(candidates) == 0 {
		return 0, nil, errors.New("signature: header has no v1 signature")
	}
	return ts, candidates, nil
}
