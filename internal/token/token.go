// Package token issues and verifies the bearer tokens that carry a user's
// identity between login and later requests. Tokens are stateless: there is
// no server-side session record and no revocation list, validity is decided
// solely by signature and expiry.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned for any verification failure. Malformed tokens,
// bad signatures and expired tokens are deliberately indistinguishable to the
// caller.
var ErrInvalidToken = errors.New("invalid token")

// Issuer signs and verifies HS256 tokens with a process-wide shared secret.
type Issuer struct {
	Secret []byte
	TTL    time.Duration
}

func NewIssuer(secret []byte, ttl time.Duration) *Issuer {
	return &Issuer{Secret: secret, TTL: ttl}
}

// Issue signs a token embedding userID, expiring after the issuer's TTL.
func (i *Issuer) Issue(userID int) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(i.TTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(i.Secret)
}

// Verify checks the signature and expiry and returns the embedded user id.
func (i *Issuer) Verify(tokenString string) (int, error) {
	t, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return i.Secret, nil
	})
	if err != nil || !t.Valid {
		return 0, ErrInvalidToken
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}
	id, ok := claims["user_id"].(float64)
	if !ok {
		return 0, ErrInvalidToken
	}
	return int(id), nil
}
