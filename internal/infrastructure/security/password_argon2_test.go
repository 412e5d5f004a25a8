package security

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Manavv007/GlobeTrotter-sub000/internal/config"
)

func testHashParams() config.PasswordHashConfig {
	// Small parameters keep the test fast; production values live in config.
	return config.PasswordHashConfig{
		Memory:      8 * 1024,
		Iterations:  1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	svc, err := NewArgon2idPasswordService(testHashParams())
	require.NoError(t, err)

	hash, err := svc.HashPassword("correct-horse")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))
	assert.NotContains(t, hash, "correct-horse")

	match, err := svc.CheckPasswordHash("correct-horse", hash)
	require.NoError(t, err)
	assert.True(t, match)

	match, err = svc.CheckPasswordHash("wrong-password", hash)
	require.NoError(t, err)
	assert.False(t, match)
}

func TestHashPassword_SaltsDiffer(t *testing.T) {
	svc, err := NewArgon2idPasswordService(testHashParams())
	require.NoError(t, err)

	first, err := svc.HashPassword("same-password")
	require.NoError(t, err)
	second, err := svc.HashPassword("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestCheckPasswordHash_MalformedHash(t *testing.T) {
	svc, err := NewArgon2idPasswordService(testHashParams())
	require.NoError(t, err)

	for _, hash := range []string{"", "not-a-hash", "$argon2id$v=19$garbage"} {
		match, err := svc.CheckPasswordHash("whatever", hash)
		assert.Error(t, err, "hash %q", hash)
		assert.False(t, match)
	}
}
