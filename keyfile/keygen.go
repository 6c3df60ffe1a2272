package keyfile

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/spf13/afero"
)

// Generate creates a fresh Ed25519 keypair and writes it to
// <base>.sigil.sec (mode 0600) and <base>.sigil.pub (mode 0644). Each file
// holds one encoded key followed by a newline. All secret material is wiped
// before Generate returns, on success and on failure.
func Generate(fs afero.Fs, base string) (secPath, pubPath string, err error) {
	seed := make([]byte, KeySize)
	defer Zeroize(seed)
	if _, err := rand.Read(seed); err != nil {
		return "", "", fmt.Errorf("keyfile: generating seed: %w", err)
	}

	sk := &SecretKey{seed: seed}
	pub := sk.Public()

	// The seed is encoded directly into the file buffer so no intermediate
	// copy of the secret escapes the deferred wipe.
	secFile := make([]byte, EncodedKeySize+1)
	defer Zeroize(secFile)
	base64.StdEncoding.Encode(secFile, seed)
	secFile[EncodedKeySize] = '\n'
	pubFile := append(encodeKey(pub), '\n')

	secPath = base + SecretKeySuffix
	pubPath = base + PublicKeySuffix
	if err := afero.WriteFile(fs, secPath, secFile, 0o600); err != nil {
		return "", "", fmt.Errorf("keyfile: writing secret key: %w", err)
	}
	if err := afero.WriteFile(fs, pubPath, pubFile, 0o644); err != nil {
		return "", "", fmt.Errorf("keyfile: writing public key: %w", err)
	}
	return secPath, pubPath, nil
}

// GenerateStored creates a fresh keypair, stores the secret key in the
// keystore under name, and writes only <name>.sigil.pub to fs. The seed is
// wiped before GenerateStored returns.
func GenerateStored(fs afero.Fs, ks *Keystore, name string) (pubPath string, err error) {
	seed := make([]byte, KeySize)
	defer Zeroize(seed)
	if _, err := rand.Read(seed); err != nil {
		return "", fmt.Errorf("keyfile: generating seed: %w", err)
	}

	sk := &SecretKey{seed: seed}
	if err := ks.Store(name, sk); err != nil {
		return "", err
	}

	pubPath = name + PublicKeySuffix
	if err := afero.WriteFile(fs, pubPath, append(encodeKey(sk.Public()), '\n'), 0o644); err != nil {
		return "", fmt.Errorf("keyfile: writing public key: %w", err)
	}
	return pubPath, nil
}

// encodeKey encodes a raw key into its 44-character form.
func encodeKey(raw []byte) []byte {
	enc := make([]byte, EncodedKeySize)
	base64.StdEncoding.Encode(enc, raw)
	return enc
}
