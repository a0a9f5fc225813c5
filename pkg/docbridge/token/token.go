// Package token signs and verifies the compact credential attached to editor
// configurations.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// PlaceholderSecret is the well-known default shipped in sample configs.
// Running with it (or any secret of 10 characters or fewer) disables token
// issuance entirely rather than signing with a guessable key.
const PlaceholderSecret = "secret"

// DefaultExpiry is the token lifetime used when no expiry is configured.
const DefaultExpiry = 3600 * time.Second

// Issuer signs editor configuration payloads with a process-wide symmetric
// key. Stateless: expiry is the only invalidation mechanism.
type Issuer struct {
	secret []byte
	expiry time.Duration
}

// New creates an Issuer. A non-positive expiry falls back to DefaultExpiry.
func New(secret string, expiry time.Duration) *Issuer {
	if expiry <= 0 {
		expiry = DefaultExpiry
	}
	return &Issuer{
		secret: []byte(secret),
		expiry: expiry,
	}
}

// Enabled reports whether the configured secret is usable for signing.
func (i *Issuer) Enabled() bool {
	return string(i.secret) != PlaceholderSecret && len(i.secret) > 10
}

// Issue signs the payload with the default expiry. When the issuer is
// disabled it returns an empty token and no error; the caller omits the
// token and the request still succeeds.
func (i *Issuer) Issue(payload map[string]any) (string, error) {
	return i.IssueWithExpiry(payload, i.expiry)
}

// IssueWithExpiry signs the payload with an explicit lifetime.
func (i *Issuer) IssueWithExpiry(payload map[string]any, expiry time.Duration) (string, error) {
	if !i.Enabled() {
		return "", nil
	}

	claims := jwt.MapClaims{}
	for k, v := range payload {
		claims[k] = v
	}
	claims["exp"] = jwt.NewNumericDate(time.Now().Add(expiry))
	claims["iat"] = jwt.NewNumericDate(time.Now())

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(i.secret)
}

// Verify parses and validates a token, returning its payload. It never
// returns an error: expired, malformed, or badly signed tokens all yield nil,
// leaving the "is this valid" decision with the caller.
func (i *Issuer) Verify(tokenString string) map[string]any {
	if !i.Enabled() {
		return nil
	}

	claims := jwt.MapClaims{}
	tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !tok.Valid {
		return nil
	}

	return map[string]any(claims)
}
