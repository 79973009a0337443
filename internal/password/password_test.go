package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHasher() *Hasher {
	// Low cost so the suite stays fast; parameters are embedded in the
	// encoded string either way.
	return NewHasher(Params{MemoryKiB: 8 * 1024, Iterations: 1, Parallelism: 1, KeyLength: 32})
}

func TestHashVerify_RoundTrip(t *testing.T) {
	h := testHasher()

	encoded, err := h.Hash("s3cr3t")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(encoded, "$argon2id$"))

	assert.True(t, h.Verify("s3cr3t", encoded))
	assert.False(t, h.Verify("S3cr3t", encoded))
	assert.False(t, h.Verify("", encoded))
}

func TestHash_NotDeterministic(t *testing.T) {
	h := testHasher()

	first, err := h.Hash("same-password")
	require.NoError(t, err)
	second, err := h.Hash("same-password")
	require.NoError(t, err)

	// Fresh salt per call.
	assert.NotEqual(t, first, second)
	assert.True(t, h.Verify("same-password", first))
	assert.True(t, h.Verify("same-password", second))
}

func TestVerify_MalformedEncodings(t *testing.T) {
	h := testHasher()

	cases := []string{
		"",
		"not-a-hash",
		"$argon2id$v=19$m=8192,t=1,p=1$onlysalt",
		"$argon2id$v=19$bogus$c2FsdA$aGFzaA",
		"$bcrypt$v=19$m=8192,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=19$m=8192,t=1,p=1$!!!$aGFzaA",
	}
	for _, encoded := range cases {
		assert.False(t, h.Verify("whatever", encoded), "encoded=%q", encoded)
	}
}

func TestVerify_TamperedHash(t *testing.T) {
	h := testHasher()

	encoded, err := h.Hash("s3cr3t")
	require.NoError(t, err)

	last := encoded[len(encoded)-1]
	replacement := byte('A')
	if last == 'A' {
		replacement = 'B'
	}
	tampered := encoded[:len(encoded)-1] + string(replacement)

	assert.False(t, h.Verify("s3cr3t", tampered))
}

func TestVerify_ParamsFromEncodedString(t *testing.T) {
	// A hash produced with one work factor verifies under a Hasher
	// configured with another; the encoded parameters win.
	old := NewHasher(Params{MemoryKiB: 8 * 1024, Iterations: 2, Parallelism: 1, KeyLength: 32})
	encoded, err := old.Hash("migrate-me")
	require.NoError(t, err)

	current := NewHasher(Params{MemoryKiB: 16 * 1024, Iterations: 1, Parallelism: 2, KeyLength: 32})
	assert.True(t, current.Verify("migrate-me", encoded))
}
