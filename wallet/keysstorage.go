package wallet

import (
	"github.com/cirrusnote/cirruswallet/serial"
	"github.com/cirrusnote/cirruswallet/wkeys"
)

// keysStorage is the wire form of the wallet's key material, serialized as
// the "keys" sub-object at the head of the decrypted payload.  A watch-only
// identity carries an all-zero spend secret here; field order is part of
// the format and must never change.
type keysStorage struct {
	creationTimestamp uint64
	spendPub          wkeys.PublicKey
	spendSec          wkeys.SecretKey
	viewPub           wkeys.PublicKey
	viewSec           wkeys.SecretKey
}

func newKeysStorage(id *wkeys.Identity) *keysStorage {
	return &keysStorage{
		creationTimestamp: id.CreateTime(),
		spendPub:          id.SpendPub(),
		spendSec:          id.SpendSecret(),
		viewPub:           id.ViewPub(),
		viewSec:           id.ViewSecret(),
	}
}

func (ks *keysStorage) encode(w *serial.Writer) error {
	if err := w.BeginObject("keys"); err != nil {
		return err
	}
	if err := w.Uint64(ks.creationTimestamp, "creation_timestamp"); err != nil {
		return err
	}
	if err := w.Bytes(ks.spendPub[:], "spend_public_key"); err != nil {
		return err
	}
	if err := w.Bytes(ks.spendSec[:], "spend_secret_key"); err != nil {
		return err
	}
	if err := w.Bytes(ks.viewPub[:], "view_public_key"); err != nil {
		return err
	}
	if err := w.Bytes(ks.viewSec[:], "view_secret_key"); err != nil {
		return err
	}
	return w.EndObject("keys")
}

func (ks *keysStorage) decode(r *serial.Reader) error {
	if err := r.BeginObject("keys"); err != nil {
		return err
	}
	var err error
	if ks.creationTimestamp, err = r.Uint64("creation_timestamp"); err != nil {
		return err
	}
	if err = r.Bytes(ks.spendPub[:], "spend_public_key"); err != nil {
		return err
	}
	if err = r.Bytes(ks.spendSec[:], "spend_secret_key"); err != nil {
		return err
	}
	if err = r.Bytes(ks.viewPub[:], "view_public_key"); err != nil {
		return err
	}
	if err = r.Bytes(ks.viewSec[:], "view_secret_key"); err != nil {
		return err
	}
	return r.EndObject("keys")
}

// zero clears the secret key material held by the wire form.
func (ks *keysStorage) zero() {
	ks.spendSec.Zero()
	ks.viewSec.Zero()
}
