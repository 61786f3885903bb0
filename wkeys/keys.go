// Package wkeys defines the wallet's key material: spend/view keypairs,
// the identity that groups them, and the curve operations needed to check
// that recovered key material is mathematically consistent.
package wkeys

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"

	"filippo.io/edwards25519"

	"github.com/cirrusnote/cirruswallet/internal/zero"
)

// KeySize is the width in bytes of both public and secret keys.
const KeySize = 32

// PublicKey is a compressed edwards25519 curve point.
type PublicKey [KeySize]byte

// SecretKey is a canonical edwards25519 scalar.  The all-zero value is
// reserved on the wire to mark a watch-only identity and is never a valid
// spending key.
type SecretKey [KeySize]byte

// ErrInvalidSecretKey describes a secret key whose bytes are not a
// canonical scalar.
var ErrInvalidSecretKey = errors.New("secret key is not a canonical scalar")

// String returns the hex encoding of the public key.
func (k PublicKey) String() string {
	return hex.EncodeToString(k[:])
}

// IsZero returns true if the secret key is the all-zero wire sentinel.
// The comparison runs in constant time.
func (k *SecretKey) IsZero() bool {
	var empty SecretKey
	return subtle.ConstantTimeCompare(k[:], empty[:]) == 1
}

// Zero clears the secret key bytes from memory.
func (k *SecretKey) Zero() {
	zero.Bytea32((*[KeySize]byte)(k))
}

// DerivePublic computes the canonical public key paired with the given
// secret key, i.e. the scalar multiple of the curve base point.  It fails
// if the secret key bytes are not a canonical scalar, which is the common
// outcome when data decrypted with a wrong passphrase is interpreted as a
// key.
func DerivePublic(sec *SecretKey) (PublicKey, error) {
	s, err := new(edwards25519.Scalar).SetCanonicalBytes(sec[:])
	if err != nil {
		return PublicKey{}, ErrInvalidSecretKey
	}
	var pub PublicKey
	copy(pub[:], new(edwards25519.Point).ScalarBaseMult(s).Bytes())
	return pub, nil
}

// CheckKey returns true if the public key bytes decompress to a point on
// the curve.
func CheckKey(pub *PublicKey) bool {
	_, err := new(edwards25519.Point).SetBytes(pub[:])
	return err == nil
}

// randomSecretKey returns a fresh canonical scalar drawn from the system
// entropy source.
func randomSecretKey() (SecretKey, error) {
	var wide [64]byte
	if _, err := rand.Read(wide[:]); err != nil {
		return SecretKey{}, fmt.Errorf("failed to read random source: %w", err)
	}
	s, err := new(edwards25519.Scalar).SetUniformBytes(wide[:])
	if err != nil {
		return SecretKey{}, err
	}
	var sec SecretKey
	copy(sec[:], s.Bytes())
	zero.Bytes(wide[:])
	return sec, nil
}
