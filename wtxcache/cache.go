// Package wtxcache implements the wallet's transaction history cache: the
// ordered list of transfers a wallet has seen, kept so a restored wallet
// does not have to rescan the chain for its own history.
//
// The cache knows two wire layouts.  The current layout records the fee
// and block height of every transfer.  The legacy v1 layout predates both
// fields and framed its record count as a fixed 64-bit integer; it is
// retained for decoding only, selected by the container version.
package wtxcache

import (
	"bytes"

	"github.com/cirrusnote/cirruswallet/serial"
)

// TxHashSize is the width of a transaction hash.
const TxHashSize = 32

// TxRecord is one cached transfer.
type TxRecord struct {
	TxHash      [TxHashSize]byte
	Amount      uint64
	Fee         uint64
	Timestamp   uint64 // unix seconds
	BlockHeight uint32
	Extra       []byte // payment id and other raw tx extra data
}

// Cache holds the wallet's transfer history in the order it was observed.
// It is owned by the caller for the process lifetime; the wallet codec
// borrows it for the duration of one save or load call.
type Cache struct {
	records []TxRecord
}

// New returns an empty cache.
func New() *Cache {
	return &Cache{}
}

// AddRecord appends a transfer to the history.
func (c *Cache) AddRecord(rec TxRecord) {
	c.records = append(c.records, rec)
}

// Records returns the cached transfers in observation order.  The returned
// slice is the cache's backing storage and must not be modified.
func (c *Cache) Records() []TxRecord {
	return c.records
}

// Len returns the number of cached transfers.
func (c *Cache) Len() int {
	return len(c.records)
}

// Reset drops all cached transfers.
func (c *Cache) Reset() {
	c.records = nil
}

// Equal reports whether two caches hold the same transfers in the same
// order.
func (c *Cache) Equal(other *Cache) bool {
	if len(c.records) != len(other.records) {
		return false
	}
	for i := range c.records {
		a, b := &c.records[i], &other.records[i]
		if a.TxHash != b.TxHash || a.Amount != b.Amount ||
			a.Fee != b.Fee || a.Timestamp != b.Timestamp ||
			a.BlockHeight != b.BlockHeight ||
			!bytes.Equal(a.Extra, b.Extra) {
			return false
		}
	}
	return true
}

// Encode writes the history in the current layout.
func (c *Cache) Encode(w *serial.Writer) error {
	if err := w.Uvarint(uint64(len(c.records)), "count"); err != nil {
		return err
	}
	for i := range c.records {
		rec := &c.records[i]
		if err := w.BeginObject("transfer"); err != nil {
			return err
		}
		if err := w.Bytes(rec.TxHash[:], "tx_hash"); err != nil {
			return err
		}
		if err := w.Uint64(rec.Amount, "amount"); err != nil {
			return err
		}
		if err := w.Uint64(rec.Fee, "fee"); err != nil {
			return err
		}
		if err := w.Uint64(rec.Timestamp, "timestamp"); err != nil {
			return err
		}
		if err := w.Uint32(rec.BlockHeight, "block_height"); err != nil {
			return err
		}
		if err := w.Blob(rec.Extra, "extra"); err != nil {
			return err
		}
		if err := w.EndObject("transfer"); err != nil {
			return err
		}
	}
	return nil
}

// Decode reads a history in the current layout, replacing the cache
// contents.  The replacement happens only after the whole structure has
// decoded, so a failed decode leaves the cache untouched.
func (c *Cache) Decode(r *serial.Reader) error {
	count, err := r.Uvarint("count")
	if err != nil {
		return err
	}
	records, err := decodeRecords(r, count, false)
	if err != nil {
		return err
	}
	c.records = records
	return nil
}

// DecodeLegacyV1 reads a history in the legacy v1 layout: a fixed 64-bit
// record count followed by records without fee or block height fields.
// Missing fields decode as zero.  Like Decode, the cache is replaced only
// on full success.
func (c *Cache) DecodeLegacyV1(r *serial.Reader) error {
	count, err := r.Uint64("count")
	if err != nil {
		return err
	}
	records, err := decodeRecords(r, count, true)
	if err != nil {
		return err
	}
	c.records = records
	return nil
}

func decodeRecords(r *serial.Reader, count uint64, legacy bool) ([]TxRecord, error) {
	// The count comes from untrusted bytes.  Records are appended rather
	// than allocated up front so a garbled count cannot demand an absurd
	// allocation before the stream runs dry.
	var records []TxRecord
	for i := uint64(0); i < count; i++ {
		var rec TxRecord
		if err := r.BeginObject("transfer"); err != nil {
			return nil, err
		}
		if err := r.Bytes(rec.TxHash[:], "tx_hash"); err != nil {
			return nil, err
		}
		var err error
		if rec.Amount, err = r.Uint64("amount"); err != nil {
			return nil, err
		}
		if !legacy {
			if rec.Fee, err = r.Uint64("fee"); err != nil {
				return nil, err
			}
		}
		if rec.Timestamp, err = r.Uint64("timestamp"); err != nil {
			return nil, err
		}
		if !legacy {
			if rec.BlockHeight, err = r.Uint32("block_height"); err != nil {
				return nil, err
			}
		}
		if rec.Extra, err = r.Blob("extra"); err != nil {
			return nil, err
		}
		if err := r.EndObject("transfer"); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

// encodeLegacyV1 writes the history in the legacy v1 layout.  Nothing in
// the save path uses it; it exists so tests and migration tooling can
// produce version 1 fixtures.
func (c *Cache) encodeLegacyV1(w *serial.Writer) error {
	if err := w.Uint64(uint64(len(c.records)), "count"); err != nil {
		return err
	}
	for i := range c.records {
		rec := &c.records[i]
		if err := w.Bytes(rec.TxHash[:], "tx_hash"); err != nil {
			return err
		}
		if err := w.Uint64(rec.Amount, "amount"); err != nil {
			return err
		}
		if err := w.Uint64(rec.Timestamp, "timestamp"); err != nil {
			return err
		}
		if err := w.Blob(rec.Extra, "extra"); err != nil {
			return err
		}
	}
	return nil
}
