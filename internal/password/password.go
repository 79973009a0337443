package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

const saltLength = 16

// Params are the argon2id work factors. Raising them invalidates nothing:
// the parameters used at hash time are embedded in the encoded string and
// reused at verify time.
type Params struct {
	MemoryKiB   uint32
	Iterations  uint32
	Parallelism uint8
	KeyLength   uint32
}

// DefaultParams matches the cost the dashboard login can absorb per request.
func DefaultParams() Params {
	return Params{
		MemoryKiB:   64 * 1024,
		Iterations:  1,
		Parallelism: 4,
		KeyLength:   32,
	}
}

// Hasher hashes and verifies passwords with argon2id. It holds no state
// beyond the configured work factors.
type Hasher struct {
	params Params
}

func NewHasher(params Params) *Hasher {
	if params.KeyLength == 0 {
		params.KeyLength = 32
	}
	return &Hasher{params: params}
}

// Hash derives an argon2id hash with a fresh random salt and encodes it as
// $argon2id$v=19$m=65536,t=1,p=4$<salt>$<hash>. Two calls with the same
// plaintext never produce the same string.
func (h *Hasher) Hash(plaintext string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(plaintext), salt, h.params.Iterations, h.params.MemoryKiB, h.params.Parallelism, h.params.KeyLength)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.params.MemoryKiB, h.params.Iterations, h.params.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify recomputes the hash using the salt and work factors embedded in the
// encoded string and compares in constant time. Malformed or unrecognized
// encodings verify false rather than failing.
func (h *Hasher) Verify(plaintext, encoded string) bool {
	salt, key, params, err := decode(encoded)
	if err != nil {
		return false
	}

	comparison := argon2.IDKey([]byte(plaintext), salt, params.Iterations, params.MemoryKiB, params.Parallelism, uint32(len(key)))

	return subtle.ConstantTimeCompare(key, comparison) == 1
}

func decode(encoded string) (salt, key []byte, params Params, err error) {
	sections := strings.Split(encoded, "$")
	// ["", "argon2id", "v=19", "m=65536,t=1,p=4", salt, hash]
	if len(sections) != 6 {
		return nil, nil, params, fmt.Errorf("invalid hash format")
	}
	if sections[1] != "argon2id" {
		return nil, nil, params, fmt.Errorf("unsupported algorithm %q", sections[1])
	}

	var version int
	if _, err := fmt.Sscanf(sections[2], "v=%d", &version); err != nil {
		return nil, nil, params, fmt.Errorf("invalid version section: %w", err)
	}
	if version != argon2.Version {
		return nil, nil, params, fmt.Errorf("incompatible argon2 version %d", version)
	}

	var parallelism uint32
	if _, err := fmt.Sscanf(sections[3], "m=%d,t=%d,p=%d", &params.MemoryKiB, &params.Iterations, &parallelism); err != nil {
		return nil, nil, params, fmt.Errorf("invalid params section: %w", err)
	}
	params.Parallelism = uint8(parallelism)

	salt, err = base64.RawStdEncoding.DecodeString(sections[4])
	if err != nil {
		return nil, nil, params, fmt.Errorf("failed to decode salt: %w", err)
	}
	key, err = base64.RawStdEncoding.DecodeString(sections[5])
	if err != nil {
		return nil, nil, params, fmt.Errorf("failed to decode hash: %w", err)
	}

	return salt, key, params, nil
}
