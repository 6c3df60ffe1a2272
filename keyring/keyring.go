// Package keyring resolves trust by scanning a directory of candidate
// public keys for the first one that verifies a signature.
//
// Every regular file whose name ends in ".sigil.pub" is a candidate. Files
// that cannot be read or do not hold a valid encoded key are skipped, never
// fatal: one bad file in a keyring must not deny service for the valid
// keys. Scan order is whatever the directory listing provides and is not a
// guarantee; when several keys would verify the same signature, which one
// is reported as the signer depends on that order.
package keyring

import (
	"crypto/ed25519"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/sigilsign/sigil/keyfile"
)

// CandidateSuffix is the file name suffix a keyring entry must carry to be
// considered during a scan.
const CandidateSuffix = keyfile.PublicKeySuffix

var (
	// ErrNoKeyring is returned when no keyring directory is configured.
	ErrNoKeyring = errors.New("keyring: no keyring directory configured")
	// ErrUnknownSigner is returned when a scan exhausts every candidate
	// without finding a key that verifies the signature.
	ErrUnknownSigner = errors.New("keyring: no key in the keyring signed this message")
)

// Keyring is a directory of candidate public keys.
type Keyring struct {
	// Fs is the filesystem the keyring lives on.
	Fs afero.Fs
	// Dir is the keyring directory. Empty means unconfigured.
	Dir string
}

// Verify scans the keyring for the first key that verifies sig over
// message and returns that key's file name as the signer identity.
//
// An unset Dir is ErrNoKeyring; an unreadable directory is an I/O error;
// exhausting all candidates without a match is ErrUnknownSigner.
func (k Keyring) Verify(message []byte, sig [64]byte) (identity string, err error) {
	if k.Dir == "" {
		return "", ErrNoKeyring
	}
	entries, err := afero.ReadDir(k.Fs, k.Dir)
	if err != nil {
		return "", fmt.Errorf("keyring: reading %s: %w", k.Dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), CandidateSuffix) {
			continue
		}
		pub, err := keyfile.ReadPublicKey(k.Fs, filepath.Join(k.Dir, entry.Name()))
		if err != nil {
			continue // unreadable or malformed candidate, keep scanning
		}
		if ed25519.Verify(pub, message, sig[:]) {
			return entry.Name(), nil
		}
	}
	return "", ErrUnknownSigner
}
