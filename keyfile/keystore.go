package keyfile

import (
	"encoding/base64"
	"fmt"

	"github.com/99designs/keyring"
)

// Keystore stores encoded secret keys in the operating system's secret
// storage (Keychain, Secret Service, wincred, or an encrypted file
// fallback) as an alternative to secret key files on disk.
type Keystore struct {
	ring keyring.Keyring
}

// OpenKeystore opens the default OS keystore for sigil.
func OpenKeystore() (*Keystore, error) {
	ring, err := keyring.Open(keyring.Config{
		ServiceName: "sigil",
	})
	if err != nil {
		return nil, fmt.Errorf("keyfile: opening keystore: %w", err)
	}
	return &Keystore{ring: ring}, nil
}

// NewKeystore wraps an already-open keyring. Tests use this with
// keyring.NewArrayKeyring.
func NewKeystore(ring keyring.Keyring) *Keystore {
	return &Keystore{ring: ring}
}

// SecretKey retrieves the named secret key from the keystore. Items hold
// the same 44-character encoded form as secret key files. The caller must
// Wipe the returned key on every exit path.
func (s *Keystore) SecretKey(name string) (*SecretKey, error) {
	item, err := s.ring.Get(name)
	if err != nil {
		return nil, fmt.Errorf("keyfile: keystore key %q: %w", name, err)
	}
	defer Zeroize(item.Data)
	if len(item.Data) < EncodedKeySize {
		return nil, fmt.Errorf("%w: keystore key %q", ErrMalformedKey, name)
	}
	raw, err := decodeKey(item.Data[:EncodedKeySize], name)
	if err != nil {
		return nil, err
	}
	return &SecretKey{seed: raw}, nil
}

// Store saves a secret key in the keystore under name.
func (s *Keystore) Store(name string, key *SecretKey) error {
	// The item buffer is handed to the keyring backend, which may retain
	// it, so it is not wiped here.
	data := make([]byte, EncodedKeySize)
	base64.StdEncoding.Encode(data, key.seed)
	err := s.ring.Set(keyring.Item{
		Key:   name,
		Data:  data,
		Label: "sigil signing key " + name,
	})
	if err != nil {
		return fmt.Errorf("keyfile: storing keystore key %q: %w", name, err)
	}
	return nil
}
