// Package sigil composes the armor codec, key material loaders, and trust
// resolution into the three user-facing operations: Sign, Verify, and
// Trim.
//
// Each operation handles exactly one message, buffered whole in memory,
// with blocking I/O. Secret key material passed in is wiped by the caller;
// nothing in this package retains it.
package sigil

import (
	"crypto/ed25519"
	"errors"
	"fmt"
	"io"

	"github.com/sigilsign/sigil/armor"
	"github.com/sigilsign/sigil/keyfile"
	"github.com/sigilsign/sigil/keyring"
)

// ErrVerificationFailed is returned when a signature is well-formed but
// does not verify against the given public key. It is distinct from format
// and I/O errors: the data was readable and correctly armored, just not
// trusted.
var ErrVerificationFailed = errors.New("sigil: signature verification failed")

// Sign reads all of in, signs it with sk, and writes the result to out.
// Detached mode writes only the encoded signature; joined mode writes the
// message followed by the armored envelope.
func Sign(sk *keyfile.SecretKey, in io.Reader, out io.Writer, detached bool) error {
	msg, err := armor.ReadAll(in)
	if err != nil {
		return err
	}
	sig := sk.Sign(msg)

	if detached {
		if _, err := out.Write(armor.Wrap(sig, armor.Detached)); err != nil {
			return fmt.Errorf("sigil: writing signature: %w", err)
		}
		return nil
	}
	if _, err := out.Write(msg); err != nil {
		return fmt.Errorf("sigil: writing message: %w", err)
	}
	if _, err := out.Write(armor.Wrap(sig, armor.Joined)); err != nil {
		return fmt.Errorf("sigil: writing envelope: %w", err)
	}
	return nil
}

// VerifyWith reports whether sig is a valid signature over message by pub.
// Pure delegation to the signature primitive: no retry, no fallback.
func VerifyWith(message []byte, sig [64]byte, pub ed25519.PublicKey) bool {
	return ed25519.Verify(pub, message, sig[:])
}

// VerifyOptions selects where the signature comes from and which keys are
// trusted for one Verify call.
type VerifyOptions struct {
	// Input is the signed input. With a joined signature this is message
	// plus envelope; with a detached signature it is the bare message.
	Input io.Reader
	// Signature, when non-nil, is read as a detached signature and Input
	// is treated as the bare message.
	Signature io.Reader
	// PublicKey, when non-nil, is the only trusted key.
	PublicKey ed25519.PublicKey
	// Keyring is scanned for a matching key when PublicKey is nil.
	Keyring keyring.Keyring
	// Output, when non-nil, receives the verified message.
	Output io.Writer
}

// Verify checks the signature over the input message and returns the
// identity of the matching keyring entry, or "" when an explicit public
// key was used. Nothing is written to Output unless verification
// succeeded.
func Verify(opts VerifyOptions) (identity string, err error) {
	msg, err := armor.ReadAll(opts.Input)
	if err != nil {
		return "", err
	}

	var sig [armor.SignatureSize]byte
	if opts.Signature != nil {
		if sig, err = armor.UnwrapDetached(opts.Signature); err != nil {
			return "", err
		}
	} else {
		var msgLen int
		if sig, msgLen, err = armor.UnwrapJoined(msg); err != nil {
			return "", err
		}
		msg = msg[:msgLen]
	}

	if opts.PublicKey != nil {
		if !VerifyWith(msg, sig, opts.PublicKey) {
			return "", ErrVerificationFailed
		}
	} else {
		if identity, err = opts.Keyring.Verify(msg, sig); err != nil {
			return "", err
		}
	}

	if opts.Output != nil {
		if _, err := opts.Output.Write(msg); err != nil {
			return "", fmt.Errorf("sigil: writing verified message: %w", err)
		}
	}
	return identity, nil
}

// Trim strips a joined envelope from in and writes only the message to
// out. The embedded signature must be well-formed but is not checked
// cryptographically; Trim is a format operation, not a trust operation.
func Trim(in io.Reader, out io.Writer) error {
	msg, err := armor.ReadAll(in)
	if err != nil {
		return err
	}
	_, msgLen, err := armor.UnwrapJoined(msg)
	if err != nil {
		return err
	}
	if _, err := out.Write(msg[:msgLen]); err != nil {
		return fmt.Errorf("sigil: writing message: %w", err)
	}
	return nil
}
