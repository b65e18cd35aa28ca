package crypto

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, CheckPassword("s3cret-pass", hash))
	assert.False(t, CheckPassword("wrong-pass", hash))
}

func TestGenerateRandomStringLength(t *testing.T) {
	s, err := GenerateRandomString(12)
	require.NoError(t, err)
	assert.Len(t, s, 16)
}

func TestGenerateOrderID(t *testing.T) {
	a, err := GenerateOrderID()
	require.NoError(t, err)
	b, err := GenerateOrderID()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(a, "ORD-"))
	assert.Len(t, a, 20)
	assert.NotContains(t, a[4:], "-")
	assert.NotEqual(t, a, b)
}
