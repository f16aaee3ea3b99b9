package identity

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Values of the Context claim. A token is minted either for a tenant
// user or for a backoffice operator, never both. Backoffice tokens
// carry no tenant identifier: tenant scope for backoffice callers is
// established per request through impersonation, not through claims.
const (
	ContextTenant     = "tenant"
	ContextBackoffice = "backoffice"
)

// Claims is the principal shape this core consumes. Token issuance
// lives in the auth service; only verification happens here.
type Claims struct {
	jwt.RegisteredClaims
	Context string `json:"context"`
}

// IsTenant reports whether the principal is a genuine tenant identity.
func (c *Claims) IsTenant() bool { return c != nil && c.Context == ContextTenant }

// IsBackoffice reports whether the principal is a backoffice operator.
func (c *Claims) IsBackoffice() bool { return c != nil && c.Context == ContextBackoffice }

// Verifier validates bearer tokens issued by the auth service.
type Verifier struct {
	signingKey []byte
}

// NewVerifier creates a verifier for HS256-signed tokens.
func NewVerifier(signingKey []byte) (*Verifier, error) {
	if len(signingKey) == 0 {
		return nil, ErrMissingSigningKey
	}
	return &Verifier{signingKey: signingKey}, nil
}

// Parse verifies the signature and temporal claims and returns the
// parsed principal.
func (v *Verifier) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrUnexpectedSigningMethod
		}
		return v.signingKey, nil
	})
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
