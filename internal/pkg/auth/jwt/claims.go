package jwt

import "github.com/golang-jwt/jwt"

// Payload defines the JWT claims issued by the quiz service. It embeds the
// standard claims (expiry, issued-at, issuer) plus the identity fields the
// REST handlers need to resolve the caller.
type Payload struct {
	jwt.StandardClaims `json:"standard_claims"`

	// ID is the account's numeric identifier, serialized as a string.
	ID string `json:"id"`

	// Username is the account's unique login name.
	Username string `json:"username"`
}
