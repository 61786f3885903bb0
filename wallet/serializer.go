// Package wallet implements the encrypted wallet container format: the
// versioned outer envelope, the encrypted inner payload holding the
// wallet's key material and transaction history, and the passphrase
// verification performed on load.
//
// The format carries no authentication tag.  Passphrase correctness is
// detected on load solely from the mathematical consistency of the
// recovered key pairs; this is a property of the format shared with
// existing wallet files, not an omission to be fixed here.
package wallet

import (
	"bytes"
	"errors"
	"io"

	"github.com/cirrusnote/cirruswallet/internal/zero"
	"github.com/cirrusnote/cirruswallet/serial"
	"github.com/cirrusnote/cirruswallet/wcrypt"
	"github.com/cirrusnote/cirruswallet/wkeys"
	"github.com/cirrusnote/cirruswallet/wtxcache"
)

// CurrentVersion is the container version written by Serialize.  The
// version discriminates the details layout on load: version 1 selects the
// legacy transaction history decoding, every other value selects the
// current one.  It is not a semantic version of the whole format.
const CurrentVersion uint32 = 2

// Serializer saves and loads one wallet's identity and transaction history
// as a passphrase-encrypted container.  It borrows the caller-owned
// identity and cache for the duration of each call and keeps no state of
// its own between calls.
//
// Serializer is not safe for concurrent use: the caller must ensure the
// identity and cache are not accessed while a save or load is in flight.
type Serializer struct {
	identity *wkeys.Identity
	txCache  *wtxcache.Cache
	kdfOpts  wcrypt.KDFOptions
}

// NewSerializer binds a serializer to the caller-owned identity and
// transaction cache.
func NewSerializer(identity *wkeys.Identity, txCache *wtxcache.Cache) *Serializer {
	return &Serializer{
		identity: identity,
		txCache:  txCache,
		kdfOpts:  wcrypt.DefaultKDFOptions,
	}
}

// SetKDFOptions overrides the passphrase derivation parameters.  A wallet
// must be loaded with the same options it was saved with.
func (s *Serializer) SetKDFOptions(opts wcrypt.KDFOptions) {
	s.kdfOpts = opts
}

// Serialize writes the wallet as an encrypted container to w.  When
// saveDetails is set the transaction history is included in the payload;
// cache is an opaque caller blob stored after it verbatim.  The envelope
// is staged in memory and written with a single call, so a failing sink
// yields ErrIO without this method emitting a partial envelope.
func (s *Serializer) Serialize(w io.Writer, passphrase string, saveDetails bool, cache []byte) error {
	var plainBuf bytes.Buffer
	pw := serial.NewWriter(&plainBuf)

	ks := newKeysStorage(s.identity)
	err := ks.encode(pw)
	ks.zero()
	if err != nil {
		return walletError(ErrData, "failed to encode wallet keys", err)
	}
	if err := pw.Bool(saveDetails, "has_details"); err != nil {
		return walletError(ErrData, "failed to encode details flag", err)
	}
	if saveDetails {
		if err := pw.Object(s.txCache, "details"); err != nil {
			return walletError(ErrData, "failed to encode transaction history", err)
		}
	}
	if err := pw.Blob(cache, "cache"); err != nil {
		return walletError(ErrData, "failed to encode wallet cache", err)
	}

	plain := plainBuf.Bytes()
	defer zero.Bytes(plain)

	nonce, cipherText, err := s.encrypt(plain, passphrase)
	if err != nil {
		return err
	}

	var out bytes.Buffer
	ew := serial.NewWriter(&out)
	if err := ew.BeginObject("wallet"); err != nil {
		return walletError(ErrData, "failed to encode wallet envelope", err)
	}
	if err := ew.Uint32(CurrentVersion, "version"); err != nil {
		return walletError(ErrData, "failed to encode container version", err)
	}
	if err := ew.Bytes(nonce[:], "iv"); err != nil {
		return walletError(ErrData, "failed to encode cipher nonce", err)
	}
	if err := ew.Blob(cipherText, "data"); err != nil {
		return walletError(ErrData, "failed to encode ciphertext", err)
	}
	if err := ew.EndObject("wallet"); err != nil {
		return walletError(ErrData, "failed to encode wallet envelope", err)
	}

	if _, err := w.Write(out.Bytes()); err != nil {
		return walletError(ErrIO, "failed to write wallet container", err)
	}

	log.Debugf("Saved wallet container version %d (%d payload bytes)",
		CurrentVersion, len(plain))
	return nil
}

// Deserialize reads an encrypted container from r, verifies the
// passphrase, installs the recovered key material into the caller-owned
// identity and replaces the caller-owned transaction cache.  It returns
// the opaque cache blob stored at the tail of the payload.
//
// A wrong passphrase surfaces as ErrWrongPassphrase; a mangled envelope as
// ErrMalformedContainer; a failing source as ErrIO.  On any failure the
// caller's identity is left untouched.
func (s *Serializer) Deserialize(r io.Reader, passphrase string) ([]byte, error) {
	version, nonce, cipherText, err := readContainer(r)
	if err != nil {
		return nil, err
	}

	plain, err := s.decrypt(cipherText, passphrase, nonce)
	if err != nil {
		return nil, err
	}
	defer zero.Bytes(plain)

	pr := serial.NewReader(bytes.NewReader(plain))

	// Bytes decrypted with a wrong passphrase are structurally
	// indistinguishable from corruption, so a decode failure here is
	// reported as a wrong passphrase.
	var ks keysStorage
	if err := ks.decode(pr); err != nil {
		ks.zero()
		return nil, walletError(ErrWrongPassphrase,
			"decrypted key material is not decodable", err)
	}
	recovered, err := verifyKeys(&ks)
	ks.zero()
	if err != nil {
		return nil, err
	}

	hasDetails, err := pr.Bool("has_details")
	if err != nil {
		return nil, walletError(ErrData, "failed to decode details flag", err)
	}
	if hasDetails {
		if version == 1 {
			err = s.txCache.DecodeLegacyV1(pr)
		} else {
			err = pr.Object(s.txCache, "details")
		}
		if err != nil {
			return nil, walletError(ErrData,
				"failed to decode transaction history", err)
		}
	}

	cache, err := pr.Blob("cache")
	if err != nil {
		return nil, walletError(ErrData, "failed to decode wallet cache", err)
	}

	// Commit point: everything decoded and verified, install the
	// recovered identity in one step.
	s.identity.Assign(recovered)

	log.Debugf("Loaded wallet container version %d (details=%v, %d cache bytes)",
		version, hasDetails, len(cache))
	return cache, nil
}

// readContainer parses the outer envelope: version, cipher nonce and
// ciphertext.  No decryption happens here, so every failure is either a
// malformed envelope or an I/O error, never a wrong passphrase.
func readContainer(r io.Reader) (uint32, *wcrypt.Nonce, []byte, error) {
	er := serial.NewReader(r)
	if err := er.BeginObject("wallet"); err != nil {
		return 0, nil, nil, containerError(err)
	}
	version, err := er.Uint32("version")
	if err != nil {
		return 0, nil, nil, containerError(err)
	}
	var nonce wcrypt.Nonce
	if err := er.Bytes(nonce[:], "iv"); err != nil {
		return 0, nil, nil, containerError(err)
	}
	cipherText, err := er.Blob("data")
	if err != nil {
		return 0, nil, nil, containerError(err)
	}
	if err := er.EndObject("wallet"); err != nil {
		return 0, nil, nil, containerError(err)
	}
	return version, &nonce, cipherText, nil
}

// containerError maps an envelope read failure onto the error taxonomy:
// truncation and framing damage mean a malformed container, anything else
// is the byte source failing.
func containerError(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, serial.ErrCorruptStream) {
		return walletError(ErrMalformedContainer,
			"wallet container is malformed or truncated", err)
	}
	return walletError(ErrIO, "failed to read wallet container", err)
}

// verifyKeys checks that the recovered key material is mathematically
// consistent and builds a fresh identity from it.  The view public key
// must be the canonical derivation of the view secret key.  The spend pair
// is checked the same way unless the spend secret is the all-zero wire
// sentinel, in which case the wallet is watch-only and the spend public
// key only has to be a valid curve point.
func verifyKeys(ks *keysStorage) (*wkeys.Identity, error) {
	viewPub, err := wkeys.DerivePublic(&ks.viewSec)
	if err != nil || viewPub != ks.viewPub {
		return nil, walletError(ErrWrongPassphrase, errKeysMismatch, nil)
	}

	if ks.spendSec.IsZero() {
		if !wkeys.CheckKey(&ks.spendPub) {
			return nil, walletError(ErrWrongPassphrase, errKeysMismatch, nil)
		}
		id, err := wkeys.NewWatchOnlyIdentity(ks.spendPub, ks.viewSec,
			ks.creationTimestamp)
		if err != nil {
			return nil, walletError(ErrCrypto,
				"failed to rebuild watch-only identity", err)
		}
		return id, nil
	}

	spendPub, err := wkeys.DerivePublic(&ks.spendSec)
	if err != nil || spendPub != ks.spendPub {
		return nil, walletError(ErrWrongPassphrase, errKeysMismatch, nil)
	}
	id, err := wkeys.NewIdentity(ks.spendSec, ks.viewSec, ks.creationTimestamp)
	if err != nil {
		return nil, walletError(ErrCrypto, "failed to rebuild identity", err)
	}
	return id, nil
}

// errKeysMismatch is the description shared by every wrong-passphrase
// verdict so callers cannot tell which check tripped.
const errKeysMismatch = "invalid passphrase for wallet container"

// encrypt derives the cipher key from the passphrase, draws a fresh nonce
// and applies the keystream.  Ciphertext length always equals plaintext
// length.
func (s *Serializer) encrypt(plain []byte, passphrase string) (*wcrypt.Nonce, []byte, error) {
	key := wcrypt.DeriveKey([]byte(passphrase), &s.kdfOpts)
	defer key.Zero()

	nonce, err := wcrypt.RandomNonce()
	if err != nil {
		return nil, nil, walletError(ErrCrypto,
			"failed to generate cipher nonce", err)
	}

	cipherText := make([]byte, len(plain))
	if err := wcrypt.ApplyKeyStream(cipherText, plain, key, nonce); err != nil {
		return nil, nil, walletError(ErrCrypto, "cipher failure", err)
	}
	return nonce, cipherText, nil
}

// decrypt runs the keystream in the inverse direction.  It cannot detect a
// wrong passphrase; with a wrong key it simply produces garbage, which the
// key verification downstream rejects.
func (s *Serializer) decrypt(cipherText []byte, passphrase string, nonce *wcrypt.Nonce) ([]byte, error) {
	key := wcrypt.DeriveKey([]byte(passphrase), &s.kdfOpts)
	defer key.Zero()

	plain := make([]byte, len(cipherText))
	if err := wcrypt.ApplyKeyStream(plain, cipherText, key, nonce); err != nil {
		return nil, walletError(ErrCrypto, "cipher failure", err)
	}
	return plain, nil
}
