package wkeys

import (
	"errors"
)

// Identity is the cryptographic material of one wallet: a spend keypair, a
// view keypair and the creation time.  A watch-only identity carries no
// spend secret; on the wire the missing secret is encoded as all zeros,
// but in memory the distinction is an explicit flag so the sentinel value
// can never be confused with real key material.
type Identity struct {
	createTime   uint64
	spendPub     PublicKey
	spendSec     SecretKey
	viewPub      PublicKey
	viewSec      SecretKey
	watchingOnly bool
}

var (
	// ErrZeroSecretKey is returned when a full identity is constructed
	// from the reserved all-zero secret key.
	ErrZeroSecretKey = errors.New("all-zero secret key is reserved for watch-only identities")

	// ErrInvalidPublicKey is returned when a watch-only identity is
	// constructed from a spend public key that is not a curve point.
	ErrInvalidPublicKey = errors.New("public key is not a valid curve point")
)

// NewIdentity builds a full identity from its secret keys, deriving both
// public keys.  createTime is the wallet creation time in unix seconds.
func NewIdentity(spendSec, viewSec SecretKey, createTime uint64) (*Identity, error) {
	if spendSec.IsZero() {
		return nil, ErrZeroSecretKey
	}
	spendPub, err := DerivePublic(&spendSec)
	if err != nil {
		return nil, err
	}
	viewPub, err := DerivePublic(&viewSec)
	if err != nil {
		return nil, err
	}
	return &Identity{
		createTime: createTime,
		spendPub:   spendPub,
		spendSec:   spendSec,
		viewPub:    viewPub,
		viewSec:    viewSec,
	}, nil
}

// NewWatchOnlyIdentity builds an identity that can view incoming funds but
// not spend them.  The spend public key is taken as-is and must be a valid
// curve point; the spend secret stays zero.
func NewWatchOnlyIdentity(spendPub PublicKey, viewSec SecretKey, createTime uint64) (*Identity, error) {
	if !CheckKey(&spendPub) {
		return nil, ErrInvalidPublicKey
	}
	viewPub, err := DerivePublic(&viewSec)
	if err != nil {
		return nil, err
	}
	return &Identity{
		createTime:   createTime,
		spendPub:     spendPub,
		viewPub:      viewPub,
		viewSec:      viewSec,
		watchingOnly: true,
	}, nil
}

// GenerateIdentity creates a brand new identity with random keys.
func GenerateIdentity(createTime uint64) (*Identity, error) {
	spendSec, err := randomSecretKey()
	if err != nil {
		return nil, err
	}
	viewSec, err := randomSecretKey()
	if err != nil {
		return nil, err
	}
	return NewIdentity(spendSec, viewSec, createTime)
}

// CreateTime returns the wallet creation time in unix seconds.
func (id *Identity) CreateTime() uint64 { return id.createTime }

// WatchingOnly returns true if the identity holds no spend secret.
func (id *Identity) WatchingOnly() bool { return id.watchingOnly }

// SpendPub returns the spend public key.
func (id *Identity) SpendPub() PublicKey { return id.spendPub }

// ViewPub returns the view public key.
func (id *Identity) ViewPub() PublicKey { return id.viewPub }

// SpendSecret returns the spend secret key.  For a watch-only identity it
// returns the all-zero wire sentinel.
func (id *Identity) SpendSecret() SecretKey { return id.spendSec }

// ViewSecret returns the view secret key.
func (id *Identity) ViewSecret() SecretKey { return id.viewSec }

// Assign replaces the identity's key material, creation time and
// watch-only flag with those of other in a single step.  Loading code
// decodes and verifies into a scratch identity first, then commits with
// one Assign so a failed load never leaves a half-updated identity.
func (id *Identity) Assign(other *Identity) {
	*id = *other
}

// Equal reports whether two identities carry the same key material,
// creation time and watch-only flag.
func (id *Identity) Equal(other *Identity) bool {
	return id.createTime == other.createTime &&
		id.watchingOnly == other.watchingOnly &&
		id.spendPub == other.spendPub &&
		id.spendSec == other.spendSec &&
		id.viewPub == other.viewPub &&
		id.viewSec == other.viewSec
}

// Zero clears the identity's secret keys from memory.
func (id *Identity) Zero() {
	id.spendSec.Zero()
	id.viewSec.Zero()
}
