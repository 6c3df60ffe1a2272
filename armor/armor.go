// Package armor implements the textual envelope that carries an Ed25519
// signature either on its own (detached) or appended to the message it
// signs (joined).
//
// The joined layout is fixed, byte for byte:
//
//	\n----BEGIN SIGIL SIGNATURE----\n
//	<first 44 base64 characters>\n
//	<last 44 base64 characters>
//	\n----END SIGIL SIGNATURE----\n
//
// The 44/44 split is purely presentational; the two halves always
// reassemble into one 88-character base64 signature. A detached signature
// is the 88 characters alone.
package armor

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
)

const (
	// SignatureSize is the size of a raw Ed25519 signature.
	SignatureSize = 64
	// EncodedSignatureSize is the size of a base64-encoded signature.
	EncodedSignatureSize = 88

	sigStart = "\n----BEGIN SIGIL SIGNATURE----\n"
	sigEnd   = "\n----END SIGIL SIGNATURE----\n"
	halfSize = EncodedSignatureSize / 2

	// EnvelopeSize is the exact number of bytes a joined envelope adds to
	// a message: start marker, two 44-character halves, the newline
	// between them, and the end marker.
	EnvelopeSize = len(sigStart) + EncodedSignatureSize + 1 + len(sigEnd)
)

// ErrMalformedEnvelope is returned when a buffer does not end in a valid
// signature envelope. It is distinct from I/O errors so callers can tell
// "not signed" apart from "can't read".
var ErrMalformedEnvelope = errors.New("armor: malformed signature envelope")

// Mode selects the envelope placement produced by Wrap.
type Mode int

const (
	// Detached produces the bare 88-character encoded signature.
	Detached Mode = iota
	// Joined produces the banner-delimited envelope for appending to a
	// message.
	Joined
)

// Wrap encodes a raw signature into its textual envelope. In Detached mode
// the result is exactly EncodedSignatureSize bytes; in Joined mode it is
// exactly EnvelopeSize bytes. Wrap never fails: every 64-byte value has an
// encoding.
func Wrap(sig [SignatureSize]byte, mode Mode) []byte {
	enc := make([]byte, EncodedSignatureSize)
	base64.StdEncoding.Encode(enc, sig[:])
	if mode == Detached {
		return enc
	}

	out := make([]byte, 0, EnvelopeSize)
	out = append(out, sigStart...)
	out = append(out, enc[:halfSize]...)
	out = append(out, '\n')
	out = append(out, enc[halfSize:]...)
	out = append(out, sigEnd...)
	return out
}

// UnwrapJoined extracts the signature from a buffer ending in a joined
// envelope. It returns the decoded signature and the length of the buffer
// with the envelope removed, which is the message that was signed.
//
// The envelope is only ever matched at the very end of the buffer. A buffer
// shorter than EnvelopeSize, a marker mismatch, a wrong separator byte, or
// an encoded signature that fails base64 validation all return
// ErrMalformedEnvelope. No cryptographic check is performed.
func UnwrapJoined(buf []byte) (sig [SignatureSize]byte, msgLen int, err error) {
	if len(buf) < EnvelopeSize {
		return sig, 0, ErrMalformedEnvelope
	}

	tail := buf[len(buf)-EnvelopeSize:]
	payload := tail[len(sigStart) : len(sigStart)+EncodedSignatureSize+1]
	if !bytes.Equal(tail[:len(sigStart)], []byte(sigStart)) ||
		!bytes.Equal(tail[EnvelopeSize-len(sigEnd):], []byte(sigEnd)) ||
		payload[halfSize] != '\n' {
		return sig, 0, ErrMalformedEnvelope
	}

	enc := make([]byte, 0, EncodedSignatureSize)
	enc = append(enc, payload[:halfSize]...)
	enc = append(enc, payload[halfSize+1:]...)
	if err := decodeSignature(&sig, enc); err != nil {
		return sig, 0, err
	}
	return sig, len(buf) - EnvelopeSize, nil
}

// UnwrapDetached reads a detached signature from r. Exactly
// EncodedSignatureSize bytes are consumed; a short read is an I/O error,
// not a format error. Validation failures return ErrMalformedEnvelope.
func UnwrapDetached(r io.Reader) (sig [SignatureSize]byte, err error) {
	enc := make([]byte, EncodedSignatureSize)
	if _, err := io.ReadFull(r, enc); err != nil {
		return sig, fmt.Errorf("armor: reading detached signature: %w", err)
	}
	if err := decodeSignature(&sig, enc); err != nil {
		return sig, err
	}
	return sig, nil
}

// decodeSignature decodes an 88-character encoded signature, requiring the
// decoded length to be exactly SignatureSize.
func decodeSignature(sig *[SignatureSize]byte, enc []byte) error {
	raw := make([]byte, base64.StdEncoding.DecodedLen(len(enc)))
	n, err := base64.StdEncoding.Strict().Decode(raw, enc)
	if err != nil || n != SignatureSize {
		return ErrMalformedEnvelope
	}
	copy(sig[:], raw[:SignatureSize])
	return nil
}
