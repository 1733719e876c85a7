// Package legacykex reproduces the original client's toy Diffie-Hellman
// exchange so old clients can keep obscuring submitted passwords in transit.
//
// This is NOT a security boundary. The group parameters are tiny (p = 5159)
// and the exchange is trivially brute-forceable; it exists only for wire
// compatibility with the legacy client. Real transport security belongs to
// TLS in front of the service.
package legacykex

import (
	"crypto/rand"
	"errors"
	"math/big"
)

// Legacy group parameters, unchanged from the original client.
var (
	generator = big.NewInt(2579)
	prime     = big.NewInt(5159)
)

var (
	// ErrInvalidPublicKey reports a peer public key outside [2, p-2].
	ErrInvalidPublicKey = errors.New("legacykex: public key out of range")
)

// Params returns copies of the legacy generator and prime.
func Params() (g, p *big.Int) {
	return new(big.Int).Set(generator), new(big.Int).Set(prime)
}

// Exchange is one server side of the legacy handshake.
type Exchange struct {
	priv *big.Int
}

// NewExchange picks a fresh private exponent in [2, p-2].
func NewExchange() (*Exchange, error) {
	// rand.Int returns [0, p-4); shift into [2, p-2).
	n, err := rand.Int(rand.Reader, new(big.Int).Sub(prime, big.NewInt(3)))
	if err != nil {
		return nil, err
	}
	return &Exchange{priv: n.Add(n, big.NewInt(2))}, nil
}

// Public returns g^priv mod p.
func (e *Exchange) Public() *big.Int {
	return new(big.Int).Exp(generator, e.priv, prime)
}

// SharedSecret computes clientPublic^priv mod p after a range check.
func (e *Exchange) SharedSecret(clientPublic *big.Int) (*big.Int, error) {
	if clientPublic == nil {
		return nil, ErrInvalidPublicKey
	}
	upper := new(big.Int).Sub(prime, big.NewInt(1))
	if clientPublic.Cmp(big.NewInt(2)) < 0 || clientPublic.Cmp(upper) >= 0 {
		return nil, ErrInvalidPublicKey
	}
	return new(big.Int).Exp(clientPublic, e.priv, prime), nil
}
