package common

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrypto_SignAndRecover(t *testing.T) {
	kp := GenerateKeyPair()
	hash := SHA3Sum256([]byte("add Mom"))

	sig, err := kp.Sign(hash)
	require.NoError(t, err)
	assert.Equal(t, SignatureBytes, len(sig))

	addr, err := RecoverAddress(hash, sig)
	require.NoError(t, err)
	assert.Equal(t, *kp.Address(), *addr)
	assert.False(t, addr.IsContract())

	// a different message recovers a different key
	other, err := RecoverAddress(SHA3Sum256([]byte("add Dad")), sig)
	if err == nil {
		assert.NotEqual(t, *kp.Address(), *other)
	}

	_, err = RecoverAddress(hash, sig[:10])
	assert.Equal(t, ErrInvalidSignature, errors.Cause(err))

	_, err = kp.Sign([]byte("short"))
	assert.Error(t, err)
}

func TestCrypto_KeyFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "key")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	kp := GenerateKeyPair()
	file := filepath.Join(dir, "owner.key")
	require.NoError(t, kp.Save(file))

	loaded, err := LoadKeyPair(file)
	require.NoError(t, err)
	assert.Equal(t, *kp.Address(), *loaded.Address())

	_, err = KeyPairFromSecret([]byte{1, 2, 3})
	assert.Error(t, err)
}
