// Package walletdb persists serialized wallet containers in named slots
// backed by a bbolt database.  The store treats containers as opaque
// blobs; building and opening them is the wallet package's job.
package walletdb

import (
	"encoding/binary"
	"time"

	"github.com/lightningnetwork/lnd/clock"
	"go.etcd.io/bbolt"
)

// Big endian is the preferred byte order, due to cursor scans over integer
// keys iterating in order.
var byteOrder = binary.BigEndian

// Bucket names
var (
	bucketWallets = []byte("wallets")
	bucketMeta    = []byte("walletmeta")
	bucketInfo    = []byte("info")
)

// Info bucket keys
var (
	rootVersion = []byte("vers")
)

// latestStoreVersion is bumped whenever the store layout changes in a way
// that old code cannot read.
const latestStoreVersion uint32 = 1

// WalletInfo describes one stored container.
type WalletInfo struct {
	// SavedAt is the time the container was last written.
	SavedAt time.Time

	// Size is the container length in bytes.
	Size int
}

// Store keeps wallet containers in a bbolt database, one slot per wallet
// name, with the last save time recorded alongside each slot.
type Store struct {
	db    *bbolt.DB
	clock clock.Clock
}

// Create makes a new store at the given path.  It fails if a database
// already exists there with a newer layout version.
func Create(path string) (*Store, error) {
	return openStore(path, true)
}

// Open opens an existing store, creating it if necessary.
func Open(path string) (*Store, error) {
	return openStore(path, false)
}

func openStore(path string, create bool) (*Store, error) {
	db, err := bbolt.Open(path, 0600, nil)
	if err != nil {
		return nil, storeError(ErrDatabase, "failed to open wallet store", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketWallets); err != nil {
			return storeError(ErrDatabase, "failed to create wallets bucket", err)
		}
		if _, err := tx.CreateBucketIfNotExists(bucketMeta); err != nil {
			return storeError(ErrDatabase, "failed to create metadata bucket", err)
		}
		info, err := tx.CreateBucketIfNotExists(bucketInfo)
		if err != nil {
			return storeError(ErrDatabase, "failed to create info bucket", err)
		}

		v := info.Get(rootVersion)
		if v == nil {
			var vers [4]byte
			byteOrder.PutUint32(vers[:], latestStoreVersion)
			if err := info.Put(rootVersion, vers[:]); err != nil {
				return storeError(ErrDatabase, "failed to put store version", err)
			}
			return nil
		}
		if len(v) != 4 {
			return storeError(ErrData, "store version: short read", nil)
		}
		if byteOrder.Uint32(v) > latestStoreVersion {
			return storeError(ErrNeedsUpgrade,
				"wallet store was created by a newer version", nil)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	if create {
		log.Infof("Created wallet store %s", path)
	} else {
		log.Infof("Opened wallet store %s", path)
	}
	return &Store{db: db, clock: clock.NewDefaultClock()}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	if err := s.db.Close(); err != nil {
		return storeError(ErrDatabase, "failed to close wallet store", err)
	}
	return nil
}

// PutWallet writes a serialized container into the named slot, replacing
// any previous contents, and stamps the slot with the current time.
func (s *Store) PutWallet(name string, container []byte) error {
	savedAt := s.clock.Now()
	err := s.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.Bucket(bucketWallets).Put([]byte(name), container); err != nil {
			return storeError(ErrDatabase, "failed to put wallet container", err)
		}
		var v [8]byte
		byteOrder.PutUint64(v[:], uint64(savedAt.Unix()))
		if err := tx.Bucket(bucketMeta).Put([]byte(name), v[:]); err != nil {
			return storeError(ErrDatabase, "failed to put wallet metadata", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	log.Debugf("Stored wallet %q (%d bytes)", name, len(container))
	return nil
}

// FetchWallet returns the container stored in the named slot.
func (s *Store) FetchWallet(name string) ([]byte, error) {
	var container []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(bucketWallets).Get([]byte(name))
		if v == nil {
			return storeError(ErrNoExist, "wallet not found: "+name, nil)
		}
		container = make([]byte, len(v))
		copy(container, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return container, nil
}

// WalletInfo returns the metadata recorded for the named slot.
func (s *Store) WalletInfo(name string) (*WalletInfo, error) {
	var info WalletInfo
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(bucketWallets).Get([]byte(name))
		if v == nil {
			return storeError(ErrNoExist, "wallet not found: "+name, nil)
		}
		info.Size = len(v)

		m := tx.Bucket(bucketMeta).Get([]byte(name))
		if len(m) != 8 {
			return storeError(ErrData, "wallet metadata: short read", nil)
		}
		info.SavedAt = time.Unix(int64(byteOrder.Uint64(m)), 0)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &info, nil
}

// DeleteWallet removes the named slot and its metadata.  Deleting a slot
// that does not exist is an error.
func (s *Store) DeleteWallet(name string) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		wallets := tx.Bucket(bucketWallets)
		if wallets.Get([]byte(name)) == nil {
			return storeError(ErrNoExist, "wallet not found: "+name, nil)
		}
		if err := wallets.Delete([]byte(name)); err != nil {
			return storeError(ErrDatabase, "failed to delete wallet container", err)
		}
		if err := tx.Bucket(bucketMeta).Delete([]byte(name)); err != nil {
			return storeError(ErrDatabase, "failed to delete wallet metadata", err)
		}
		return nil
	})
}

// ListWallets returns the names of all stored wallets.
func (s *Store) ListWallets() ([]string, error) {
	var names []string
	err := s.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketWallets).ForEach(func(k, v []byte) error {
			names = append(names, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, storeError(ErrDatabase, "failed to list wallets", err)
	}
	return names, nil
}
