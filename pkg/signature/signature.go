// Package signature computes the Unleashed API authorization signature.
//
// Unleashed authenticates every request with an HMAC-SHA256 digest of the
// query string (the filter), keyed by the account's API key and sent
// base64-encoded in the api-auth-signature header. The signature covers only
// the filter string, never the path or page number, so it is stable across
// pages of the same query.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"unicode"
)

// EncodingError is returned when a signing input contains characters outside
// the ASCII range the Unleashed API expects.
type EncodingError struct {
	// Field names the offending input ("filter" or "secret").
	Field string
}

// Error implements the error interface.
func (e *EncodingError) Error() string {
	return fmt.Sprintf("signature: %s contains non-ASCII characters", e.Field)
}

// Sign computes the base64-encoded HMAC-SHA256 of filter keyed by secret.
// An empty filter is valid and signs the empty string, which Unleashed
// requires for unfiltered and single-item requests. Deterministic: equal
// inputs always produce equal output.
func Sign(filter, secret string) (string, error) {
	if !isASCII(filter) {
		return "", &EncodingError{Field: "filter"}
	}
	if !isASCII(secret) {
		return "", &EncodingError{Field: "secret"}
	}

	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(filter))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil)), nil
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > unicode.MaxASCII {
			return false
		}
	}
	return true
}
