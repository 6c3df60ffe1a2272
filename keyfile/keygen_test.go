package keyfile

import (
	"crypto/ed25519"
	"testing"

	"github.com/99designs/keyring"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	fs := afero.NewMemMapFs()

	secPath, pubPath, err := Generate(fs, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice.sigil.sec", secPath)
	assert.Equal(t, "alice.sigil.pub", pubPath)

	secData, err := afero.ReadFile(fs, secPath)
	require.NoError(t, err)
	require.Len(t, secData, EncodedKeySize+1)
	assert.Equal(t, byte('\n'), secData[EncodedKeySize])

	sk, err := ReadSecretKey(fs, secPath)
	require.NoError(t, err)
	defer sk.Wipe()
	pub, err := ReadPublicKey(fs, pubPath)
	require.NoError(t, err)
	assert.Equal(t, sk.Public(), pub, "public key file must match the secret key")
}

func TestGenerateDistinctKeys(t *testing.T) {
	fs := afero.NewMemMapFs()
	_, pubA, err := Generate(fs, "a")
	require.NoError(t, err)
	_, pubB, err := Generate(fs, "b")
	require.NoError(t, err)

	keyA, err := ReadPublicKey(fs, pubA)
	require.NoError(t, err)
	keyB, err := ReadPublicKey(fs, pubB)
	require.NoError(t, err)
	assert.NotEqual(t, keyA, keyB)
}

func TestGenerateStored(t *testing.T) {
	fs := afero.NewMemMapFs()
	ks := NewKeystore(keyring.NewArrayKeyring(nil))

	pubPath, err := GenerateStored(fs, ks, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice.sigil.pub", pubPath)

	exists, err := afero.Exists(fs, "alice.sigil.sec")
	require.NoError(t, err)
	assert.False(t, exists, "no secret key file when storing in the keystore")

	sk, err := ks.SecretKey("alice")
	require.NoError(t, err)
	defer sk.Wipe()
	pub, err := ReadPublicKey(fs, pubPath)
	require.NoError(t, err)
	assert.Equal(t, sk.Public(), pub)
}

func TestKeystoreRoundTrip(t *testing.T) {
	ks := NewKeystore(keyring.NewArrayKeyring(nil))
	sk := &SecretKey{seed: testSeed()}
	defer sk.Wipe()

	require.NoError(t, ks.Store("signing", sk))

	got, err := ks.SecretKey("signing")
	require.NoError(t, err)
	defer got.Wipe()
	assert.Equal(t, testSeed(), got.seed)
}

func TestKeystoreSecretKeyErrors(t *testing.T) {
	t.Run("missing key", func(t *testing.T) {
		ks := NewKeystore(keyring.NewArrayKeyring(nil))
		_, err := ks.SecretKey("nope")
		assert.Error(t, err)
	})

	t.Run("malformed item", func(t *testing.T) {
		ks := NewKeystore(keyring.NewArrayKeyring([]keyring.Item{
			{Key: "bad", Data: []byte("not a key")},
		}))
		_, err := ks.SecretKey("bad")
		assert.ErrorIs(t, err, ErrMalformedKey)
	})
}

func TestSignVerifyAcrossGeneratedKey(t *testing.T) {
	fs := afero.NewMemMapFs()
	secPath, pubPath, err := Generate(fs, "signer")
	require.NoError(t, err)

	sk, err := ReadSecretKey(fs, secPath)
	require.NoError(t, err)
	defer sk.Wipe()
	pub, err := ReadPublicKey(fs, pubPath)
	require.NoError(t, err)

	msg := []byte("generated keys must interoperate")
	sig := sk.Sign(msg)
	assert.True(t, ed25519.Verify(pub, msg, sig[:]))
}
