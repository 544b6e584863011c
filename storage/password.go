package storage

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/crypto/argon2"
)

// Argon2idParams configures Argon2id hashing parameters
type Argon2idParams struct {
	Time        uint32 `yaml:"time"`
	MemoryKiB   uint32 `yaml:"memory_kib"`
	Parallelism uint8  `yaml:"parallelism"`
	KeyLen      uint32 `yaml:"key_len"`
	SaltLen     uint32 `yaml:"salt_len"`
}

// hashArgon2id returns a PHC-formatted argon2id hash string
// Format: $argon2id$v=19$m=65536,t=1,p=4$<saltB64>$<hashB64>
func hashArgon2id(secret string, p Argon2idParams) (string, error) {
	if p.Time == 0 {
		p = defaultArgon2idParams()
	}
	salt := make([]byte, p.SaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	dk := argon2.IDKey([]byte(secret), salt, p.Time, p.MemoryKiB, p.Parallelism, p.KeyLen)
	saltB64 := base64.RawStdEncoding.EncodeToString(salt)
	hashB64 := base64.RawStdEncoding.EncodeToString(dk)
	return fmt.Sprintf("$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s", p.MemoryKiB, p.Time, p.Parallelism, saltB64, hashB64), nil
}

// verifyHash checks user passwords and key secrets
var verifyHash = verifyArgon2id

// verifyArgon2id verifies the given secret against a PHC-formatted argon2id hash
func verifyArgon2id(encoded, secret string) (bool, error) {
	params, salt, hash, err := parseArgon2id(encoded)
	if err != nil {
		return false, err
	}
	dk := argon2.IDKey([]byte(secret), salt, params.Time, params.MemoryKiB, params.Parallelism, uint32(len(hash)))
	return subtle.ConstantTimeCompare(dk, hash) == 1, nil
}

// extractArgon2idParams parses a PHC-formatted argon2id string and returns parameters
func extractArgon2idParams(encoded string) (Argon2idParams, error) {
	p, _, _, err := parseArgon2id(encoded)
	return p, err
}

// parseArgon2id parses a PHC-formatted argon2id hash and returns parameters, salt and hash bytes.
func parseArgon2id(encoded string) (Argon2idParams, []byte, []byte, error) {
	var out Argon2idParams
	if !strings.HasPrefix(encoded, "$argon2id$") {
		return out, nil, nil, errors.Errorf("unsupported hash format")
	}
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 {
		return out, nil, nil, errors.Errorf("invalid argon2id hash format")
	}
	if parts[2] != "v=19" {
		return out, nil, nil, errors.Errorf("unsupported argon2 version")
	}
	for _, kv := range strings.Split(parts[3], ",") {
		key, value, found := strings.Cut(kv, "=")
		if !found {
			return out, nil, nil, errors.Errorf("invalid argon2id parameter '%s'", kv)
		}
		switch key {
		case "m":
			v, err := strconv.ParseUint(value, 10, 32)
			if err != nil {
				return out, nil, nil, errors.WithStack(err)
			}
			out.MemoryKiB = uint32(v)
		case "t":
			v, err := strconv.ParseUint(value, 10, 32)
			if err != nil {
				return out, nil, nil, errors.WithStack(err)
			}
			out.Time = uint32(v)
		case "p":
			v, err := strconv.ParseUint(value, 10, 8)
			if err != nil {
				return out, nil, nil, errors.WithStack(err)
			}
			out.Parallelism = uint8(v)
		}
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return out, nil, nil, errors.WithStack(err)
	}
	hash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return out, nil, nil, errors.WithStack(err)
	}
	out.SaltLen = uint32(len(salt))
	out.KeyLen = uint32(len(hash))
	return out, salt, hash, nil
}

func argon2idParamsEqual(a, b Argon2idParams) bool {
	return a.Time == b.Time && a.MemoryKiB == b.MemoryKiB && a.Parallelism == b.Parallelism && a.KeyLen == b.KeyLen && a.SaltLen == b.SaltLen
}

func defaultArgon2idParams() Argon2idParams {
	return Argon2idParams{Time: 1, MemoryKiB: 64 * 1024, Parallelism: 4, KeyLen: 32, SaltLen: 16}
}
