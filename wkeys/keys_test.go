package wkeys

import (
	"testing"
)

func TestGenerateIdentity(t *testing.T) {
	id, err := GenerateIdentity(1700000000)
	if err != nil {
		t.Fatalf("GenerateIdentity: %v", err)
	}
	if id.WatchingOnly() {
		t.Fatal("generated identity must not be watch-only")
	}
	if id.CreateTime() != 1700000000 {
		t.Fatalf("creation time mismatch: %d", id.CreateTime())
	}

	// Both public keys must be the canonical derivations of their
	// secret keys and valid curve points.
	spendSec := id.SpendSecret()
	spendPub, err := DerivePublic(&spendSec)
	if err != nil {
		t.Fatalf("DerivePublic(spend): %v", err)
	}
	if spendPub != id.SpendPub() {
		t.Fatal("spend public key is not the derivation of the spend secret")
	}
	viewSec := id.ViewSecret()
	viewPub, err := DerivePublic(&viewSec)
	if err != nil {
		t.Fatalf("DerivePublic(view): %v", err)
	}
	if viewPub != id.ViewPub() {
		t.Fatal("view public key is not the derivation of the view secret")
	}
	for _, pub := range []PublicKey{id.SpendPub(), id.ViewPub()} {
		pub := pub
		if !CheckKey(&pub) {
			t.Fatalf("derived public key %s is not a curve point", pub)
		}
	}
}

func TestNewIdentityRejectsZeroSecret(t *testing.T) {
	var zeroSec SecretKey
	viewSec := SecretKey{2}
	if _, err := NewIdentity(zeroSec, viewSec, 0); err != ErrZeroSecretKey {
		t.Fatalf("expected ErrZeroSecretKey, got %v", err)
	}
}

func TestDerivePublicNonCanonical(t *testing.T) {
	// All-ones is far beyond the group order and can never be a
	// canonical scalar.
	var sec SecretKey
	for i := range sec {
		sec[i] = 0xff
	}
	if _, err := DerivePublic(&sec); err != ErrInvalidSecretKey {
		t.Fatalf("expected ErrInvalidSecretKey, got %v", err)
	}
}

func TestWatchOnlyIdentity(t *testing.T) {
	full, err := GenerateIdentity(42)
	if err != nil {
		t.Fatalf("GenerateIdentity: %v", err)
	}

	wo, err := NewWatchOnlyIdentity(full.SpendPub(), full.ViewSecret(), 42)
	if err != nil {
		t.Fatalf("NewWatchOnlyIdentity: %v", err)
	}
	if !wo.WatchingOnly() {
		t.Fatal("identity must be watch-only")
	}
	sec := wo.SpendSecret()
	if !sec.IsZero() {
		t.Fatal("watch-only spend secret must be the zero sentinel")
	}
	if wo.SpendPub() != full.SpendPub() || wo.ViewPub() != full.ViewPub() {
		t.Fatal("watch-only identity must carry the same public keys")
	}
}

func TestWatchOnlyRejectsInvalidPoint(t *testing.T) {
	bad := findInvalidPublicKey(t)
	viewSec := SecretKey{2}
	if _, err := NewWatchOnlyIdentity(bad, viewSec, 0); err != ErrInvalidPublicKey {
		t.Fatalf("expected ErrInvalidPublicKey, got %v", err)
	}
}

func TestCheckKeyRejectsSomeEncodings(t *testing.T) {
	// Roughly half of all 32-byte strings do not decompress to a curve
	// point, so a small scan must find at least one of each kind.
	var valid, invalid int
	for i := 0; i < 64; i++ {
		pub := PublicKey{byte(i), 0x5a, 0xc3}
		if CheckKey(&pub) {
			valid++
		} else {
			invalid++
		}
	}
	if invalid == 0 {
		t.Fatal("scan found no invalid encodings")
	}
	if valid == 0 {
		t.Fatal("scan found no valid encodings")
	}
}

// findInvalidPublicKey scans low byte patterns until one fails point
// decompression.  About half of all encodings are invalid, so this
// terminates almost immediately.
func findInvalidPublicKey(t *testing.T) PublicKey {
	t.Helper()
	for i := 0; i < 256; i++ {
		pub := PublicKey{byte(i), 0x5a, 0xc3}
		if !CheckKey(&pub) {
			return pub
		}
	}
	t.Fatal("no invalid public key encoding found")
	return PublicKey{}
}

func TestAssignAndZero(t *testing.T) {
	a, err := GenerateIdentity(1)
	if err != nil {
		t.Fatalf("GenerateIdentity: %v", err)
	}
	b, err := GenerateIdentity(2)
	if err != nil {
		t.Fatalf("GenerateIdentity: %v", err)
	}
	if a.Equal(b) {
		t.Fatal("distinct identities compare equal")
	}

	var target Identity
	target.Assign(a)
	if !target.Equal(a) {
		t.Fatal("assigned identity differs from source")
	}

	target.Zero()
	sec := target.SpendSecret()
	if !sec.IsZero() {
		t.Fatal("spend secret not cleared")
	}
	sec = target.ViewSecret()
	if !sec.IsZero() {
		t.Fatal("view secret not cleared")
	}
}
