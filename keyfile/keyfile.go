// Package keyfile loads and generates the raw 32-byte Ed25519 key material
// sigil works with. On disk a key is exactly 44 base64 characters,
// optionally followed by a newline that fixed-length readers never consume.
//
// Secret and public keys are structurally identical but must not be
// interchanged: secret keys come back as *SecretKey, which owns its bytes
// and must be wiped by the caller on every exit path.
package keyfile

import (
	"crypto/ed25519"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/afero"
)

const (
	// KeySize is the size of a raw key, secret or public.
	KeySize = 32
	// EncodedKeySize is the size of a base64-encoded key.
	EncodedKeySize = 44

	// SecretKeySuffix is the conventional file name suffix for secret keys.
	SecretKeySuffix = ".sigil.sec"
	// PublicKeySuffix is the conventional file name suffix for public keys.
	PublicKeySuffix = ".sigil.pub"
)

// ErrMalformedKey is returned when key material fails base64 validation or
// does not decode to exactly KeySize bytes.
var ErrMalformedKey = errors.New("keyfile: malformed key")

// SecretKey holds a raw Ed25519 seed. Callers own the obligation to call
// Wipe on every code path that can see the key, including error paths.
type SecretKey struct {
	seed []byte
}

// Sign signs message with the key. The expanded private key derived from
// the seed is wiped before Sign returns.
func (k *SecretKey) Sign(message []byte) (sig [64]byte) {
	priv := ed25519.NewKeyFromSeed(k.seed)
	defer Zeroize(priv)
	copy(sig[:], ed25519.Sign(priv, message))
	return sig
}

// Public derives the public key. The returned slice holds no secret
// material and need not be wiped.
func (k *SecretKey) Public() ed25519.PublicKey {
	priv := ed25519.NewKeyFromSeed(k.seed)
	defer Zeroize(priv)
	pub := make([]byte, ed25519.PublicKeySize)
	copy(pub, priv[ed25519.SeedSize:])
	return pub
}

// Wipe overwrites the seed with zeros. The key is unusable afterwards.
// Wipe is safe to call more than once.
func (k *SecretKey) Wipe() {
	Zeroize(k.seed)
}

// ReadSecretKey loads a secret key from path. The caller must Wipe the
// returned key on every exit path.
func ReadSecretKey(fs afero.Fs, path string) (*SecretKey, error) {
	raw, err := readKey(fs, path)
	if err != nil {
		return nil, err
	}
	return &SecretKey{seed: raw}, nil
}

// ReadPublicKey loads a public key from path.
func ReadPublicKey(fs afero.Fs, path string) (ed25519.PublicKey, error) {
	raw, err := readKey(fs, path)
	if err != nil {
		return nil, err
	}
	return ed25519.PublicKey(raw), nil
}

// readKey reads exactly EncodedKeySize characters from path and decodes
// them to KeySize raw bytes. A short read is an I/O error; a validation or
// length failure is ErrMalformedKey. Intermediate buffers are wiped before
// returning, success or failure, since the key may be secret.
func readKey(fs afero.Fs, path string) ([]byte, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("keyfile: opening %s: %w", path, err)
	}
	defer f.Close()

	enc := make([]byte, EncodedKeySize)
	defer Zeroize(enc)
	if _, err := io.ReadFull(f, enc); err != nil {
		return nil, fmt.Errorf("keyfile: reading %s: %w", path, err)
	}
	return decodeKey(enc, path)
}

// decodeKey decodes EncodedKeySize base64 characters into a fresh KeySize
// buffer, wiping the oversized scratch decode buffer on the way out.
func decodeKey(enc []byte, name string) ([]byte, error) {
	scratch := make([]byte, base64.StdEncoding.DecodedLen(EncodedKeySize))
	defer Zeroize(scratch)
	n, err := base64.StdEncoding.Strict().Decode(scratch, enc)
	if err != nil || n != KeySize {
		return nil, fmt.Errorf("%w: %s", ErrMalformedKey, name)
	}
	raw := make([]byte, KeySize)
	copy(raw, scratch[:KeySize])
	return raw, nil
}

// WarnSuffix reports whether a key file name carries the conventional
// suffix for its role, so callers can warn about a likely swapped key.
func WarnSuffix(path string, secret bool) bool {
	if secret {
		return strings.HasSuffix(path, SecretKeySuffix)
	}
	return strings.HasSuffix(path, PublicKeySuffix)
}
