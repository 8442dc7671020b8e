package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"stream-api/internal/model"
)

type tokenClaims struct {
	jwt.RegisteredClaims
	Authorities string `json:"authorities"`
}

// TokenIssuer creates signed, time-bounded bearer tokens carrying the
// principal's granted authorities.
type TokenIssuer struct {
	keys   *SigningKeys
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(keys *SigningKeys, issuer string, ttl time.Duration) *TokenIssuer {
	return &TokenIssuer{keys: keys, issuer: issuer, ttl: ttl, now: time.Now}
}

func (i *TokenIssuer) Issue(p Principal) (string, error) {
	now := i.now()
	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
		Authorities: p.Authorities().Join(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(i.keys.signer())
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// TokenVerifier validates presented tokens against the process public key and
// reconstructs the claimed authorities.
type TokenVerifier struct {
	keys *SigningKeys
	now  func() time.Time
}

func NewTokenVerifier(keys *SigningKeys) *TokenVerifier {
	return &TokenVerifier{keys: keys, now: time.Now}
}

func (v *TokenVerifier) Verify(tokenString string) (Principal, error) {
	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims,
		func(*jwt.Token) (any, error) { return v.keys.verifier(), nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithTimeFunc(v.now),
	)
	if err != nil {
		return Principal{}, classifyTokenError(err)
	}
	if !parsed.Valid {
		return Principal{}, model.ErrInvalidBearerToken
	}

	return TokenPrincipal(claims.Authorities), nil
}

// classifyTokenError keeps the three verification failure modes apart for
// logs and tests; they all unwrap to ErrInvalidBearerToken at the boundary.
func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return model.ErrTokenMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return model.ErrTokenSignatureInvalid
	case errors.Is(err, jwt.ErrTokenExpired):
		return model.ErrTokenExpired
	default:
		return fmt.Errorf("%w: %s", model.ErrInvalidBearerToken, err)
	}
}
