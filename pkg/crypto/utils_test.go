package crypto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSealOpen(t *testing.T) {
	key, err := NewRandomKey()
	require.Nil(t, err)

	sealed, err := Seal([]byte("plaid-secret"), key)
	require.Nil(t, err)
	assert.NotContains(t, sealed, "plaid-secret")

	plain, err := Open(sealed, key)
	require.Nil(t, err)
	assert.Equal(t, "plaid-secret", string(plain))
}

func TestOpenWrongKey(t *testing.T) {
	key, err := NewRandomKey()
	require.Nil(t, err)
	other, err := NewRandomKey()
	require.Nil(t, err)

	sealed, err := Seal([]byte("plaid-secret"), key)
	require.Nil(t, err)

	_, err = Open(sealed, other)
	assert.NotNil(t, err)
}

func TestShortKey(t *testing.T) {
	_, err := Seal([]byte("x"), "short")
	assert.NotNil(t, err)
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint("client-a")

	assert.Equal(t, a, Fingerprint("client-a"))
	assert.NotEqual(t, a, Fingerprint("client-b"))
	assert.Len(t, a, 12)
	assert.Equal(t, "none", Fingerprint(""))
}
