package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgon2idRoundTrip(t *testing.T) {
	hash, err := hashArgon2id("correct horse", fastParams)
	require.NoError(t, err)
	assert.Contains(t, hash, "$argon2id$v=19$m=1024,t=1,p=1$")

	ok, err := verifyArgon2id(hash, "correct horse")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = verifyArgon2id(hash, "battery staple")
	require.NoError(t, err)
	assert.False(t, ok)

	params, err := extractArgon2idParams(hash)
	require.NoError(t, err)
	assert.True(t, argon2idParamsEqual(fastParams, params))
}

func TestArgon2idRejectsMalformedHashes(t *testing.T) {
	for _, encoded := range []string{
		"",
		"plain",
		"$argon2i$v=19$m=1,t=1,p=1$AAAA$AAAA",
		"$argon2id$v=18$m=1,t=1,p=1$AAAA$AAAA",
		"$argon2id$v=19$m=x,t=1,p=1$AAAA$AAAA",
		"$argon2id$v=19$m=1,t=1,p=1$AAAA",
	} {
		_, err := verifyArgon2id(encoded, "secret")
		assert.Error(t, err, encoded)
	}
}

func TestKeysStorageCheckSecretWithoutHash(t *testing.T) {
	placeholder, err := hashArgon2id("", fastParams)
	require.NoError(t, err)
	keys := &KeysStorage{params: fastParams, placeholder: placeholder}
	assert.False(t, keys.CheckSecret("", ""))
	assert.False(t, keys.CheckSecret("anything", ""))
}
