package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordVerifies(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)

	assert.True(t, VerifyPassword("correct horse battery staple", hash))
	assert.False(t, VerifyPassword("wrong password", hash))
}

func TestHashPasswordIsSalted(t *testing.T) {
	first, err := HashPassword("same input")
	require.NoError(t, err)
	second, err := HashPassword("same input")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, VerifyPassword("same input", first))
	assert.True(t, VerifyPassword("same input", second))
}

func TestVerifyPasswordMalformedDigestFailsClosed(t *testing.T) {
	cases := [][]byte{
		nil,
		[]byte(""),
		[]byte("not a digest"),
		[]byte("$argon2id$v=19$t=3,m=65536,p=2$!!!$!!!"),
		[]byte("$bcrypt$whatever"),
	}

	for _, digest := range cases {
		assert.False(t, VerifyPassword("anything", digest), "digest %q", digest)
	}
}

func TestHashPasswordEmptyPlaintext(t *testing.T) {
	hash, err := HashPassword("")
	require.NoError(t, err)

	assert.True(t, VerifyPassword("", hash))
	assert.False(t, VerifyPassword("nonempty", hash))
}
