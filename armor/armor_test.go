package armor

import (
	"bytes"
	"encoding/base64"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSignature() (sig [SignatureSize]byte) {
	for i := range sig {
		sig[i] = byte(i * 3)
	}
	return sig
}

func TestWrapDetached(t *testing.T) {
	sig := testSignature()
	out := Wrap(sig, Detached)

	require.Len(t, out, EncodedSignatureSize)
	assert.Equal(t, base64.StdEncoding.EncodeToString(sig[:]), string(out))
}

func TestWrapJoinedLayout(t *testing.T) {
	sig := testSignature()
	out := Wrap(sig, Joined)

	require.Len(t, out, EnvelopeSize)
	assert.True(t, bytes.HasPrefix(out, []byte(sigStart)))
	assert.True(t, bytes.HasSuffix(out, []byte(sigEnd)))
	assert.Equal(t, byte('\n'), out[len(sigStart)+halfSize], "separator between the two halves")

	enc := base64.StdEncoding.EncodeToString(sig[:])
	assert.Equal(t, enc[:halfSize], string(out[len(sigStart):len(sigStart)+halfSize]))
	assert.Equal(t, enc[halfSize:], string(out[len(sigStart)+halfSize+1:EnvelopeSize-len(sigEnd)]))
}

func TestUnwrapJoinedRoundTrip(t *testing.T) {
	sig := testSignature()
	msg := []byte("hello")
	buf := append(msg, Wrap(sig, Joined)...)

	got, msgLen, err := UnwrapJoined(buf)
	require.NoError(t, err)
	assert.Equal(t, sig, got)
	assert.Equal(t, len(msg), msgLen)
}

func TestUnwrapJoinedEmptyMessage(t *testing.T) {
	// An envelope with nothing in front of it is a valid zero-length message.
	sig := testSignature()

	got, msgLen, err := UnwrapJoined(Wrap(sig, Joined))
	require.NoError(t, err)
	assert.Equal(t, sig, got)
	assert.Zero(t, msgLen)
}

func TestUnwrapJoinedRejects(t *testing.T) {
	sig := testSignature()
	valid := append([]byte("payload"), Wrap(sig, Joined)...)

	corrupt := func(offset int, b byte) []byte {
		buf := append([]byte(nil), valid...)
		buf[len(buf)-EnvelopeSize+offset] = b
		return buf
	}

	tests := []struct {
		name string
		buf  []byte
	}{
		{"empty buffer", nil},
		{"shorter than envelope", valid[:EnvelopeSize-1]},
		{"corrupt start marker", corrupt(1, 'X')},
		{"corrupt end marker", corrupt(EnvelopeSize-2, 'X')},
		{"wrong separator byte", corrupt(len(sigStart)+halfSize, ' ')},
		{"invalid base64 character", corrupt(len(sigStart)+1, '!')},
		{"envelope not at the tail", append(append([]byte(nil), valid...), '\n')},
		{"detached form only", Wrap(sig, Detached)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := UnwrapJoined(tt.buf)
			assert.ErrorIs(t, err, ErrMalformedEnvelope)
		})
	}
}

func TestUnwrapDetached(t *testing.T) {
	sig := testSignature()

	t.Run("valid signature", func(t *testing.T) {
		got, err := UnwrapDetached(bytes.NewReader(Wrap(sig, Detached)))
		require.NoError(t, err)
		assert.Equal(t, sig, got)
	})

	t.Run("short read is an I/O error", func(t *testing.T) {
		_, err := UnwrapDetached(strings.NewReader("too short"))
		require.Error(t, err)
		assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
		assert.NotErrorIs(t, err, ErrMalformedEnvelope)
	})

	t.Run("invalid encoding", func(t *testing.T) {
		_, err := UnwrapDetached(strings.NewReader(strings.Repeat("!", EncodedSignatureSize)))
		assert.ErrorIs(t, err, ErrMalformedEnvelope)
	})

	t.Run("wrong decoded length", func(t *testing.T) {
		// 88 valid characters that decode to fewer than 64 bytes.
		enc := strings.Repeat("A", EncodedSignatureSize-2) + "=="
		_, err := UnwrapDetached(strings.NewReader(enc))
		assert.ErrorIs(t, err, ErrMalformedEnvelope)
	})
}
