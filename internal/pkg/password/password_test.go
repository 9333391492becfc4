package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHasherRoundTrip(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hash, err := h.Hash("s3cret-pass")
	require.NoError(t, err)

	assert.NotEqual(t, "s3cret-pass", hash)
	assert.True(t, h.Verify("s3cret-pass", hash))
	assert.False(t, h.Verify("s3cret-pasS", hash))
	assert.False(t, h.Verify("", hash))
}

func TestHasherSaltsEachHash(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	first, err := h.Hash("same-password")
	require.NoError(t, err)
	second, err := h.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.True(t, h.Verify("same-password", first))
	assert.True(t, h.Verify("same-password", second))
}

func TestNewHasherCost(t *testing.T) {
	assert.Equal(t, DefaultCost, NewHasher(0).Cost())
	assert.Equal(t, DefaultCost, NewHasher(bcrypt.MaxCost+1).Cost())
	assert.Equal(t, 12, NewHasher(12).Cost())

	hash, err := NewHasher(bcrypt.MinCost).Hash("pw123456")
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}

func TestVerifyRejectsGarbageHash(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	assert.False(t, h.Verify("pw", "not-a-bcrypt-hash"))
}
