package wallet

import (
	"os"
)

// SaveToFile writes the wallet container to a file, creating or truncating
// it.  The file is written with owner-only permissions since it holds
// encrypted key material.
func (s *Serializer) SaveToFile(path, passphrase string, saveDetails bool, cache []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return walletError(ErrIO, "failed to create wallet file", err)
	}
	if err := s.Serialize(f, passphrase, saveDetails, cache); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return walletError(ErrIO, "failed to close wallet file", err)
	}
	return nil
}

// LoadFromFile reads a wallet container from a file.
func (s *Serializer) LoadFromFile(path, passphrase string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, walletError(ErrIO, "failed to open wallet file", err)
	}
	defer f.Close()
	return s.Deserialize(f, passphrase)
}
