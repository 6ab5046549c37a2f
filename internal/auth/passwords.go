package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
)

const MinPasswordLength = 12

var errBadHash = errors.New("invalid argon2id hash")

type argon2Params struct {
	memory      uint32
	iterations  uint32
	parallelism uint8
	saltLen     uint32
	keyLen      uint32
}

var defaultArgon2idParams = argon2Params{
	memory:      64 * 1024,
	iterations:  3,
	parallelism: 2,
	saltLen:     16,
	keyLen:      32,
}

// HashPassword returns an argon2id hash in PHC string format.
func HashPassword(plaintext string) (string, error) {
	return defaultArgon2idParams.hash(plaintext)
}

func VerifyPassword(hash, plaintext string) (bool, error) {
	p, salt, key, err := parseArgon2idHash(hash)
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare(key, p.derive(plaintext, salt)) == 1, nil
}

// NeedsRehash reports whether hash was produced with weaker parameters than
// the current defaults.
func NeedsRehash(hash string) bool {
	p, _, _, err := parseArgon2idHash(hash)
	if err != nil {
		return true
	}
	d := defaultArgon2idParams
	return p.memory < d.memory || p.iterations < d.iterations || p.keyLen < d.keyLen
}

func (p argon2Params) derive(plaintext string, salt []byte) []byte {
	return argon2.IDKey([]byte(plaintext), salt, p.iterations, p.memory, p.parallelism, p.keyLen)
}

func (p argon2Params) hash(plaintext string) (string, error) {
	salt := make([]byte, p.saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("read salt: %w", err)
	}

	b64 := base64.RawStdEncoding
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		p.memory,
		p.iterations,
		p.parallelism,
		b64.EncodeToString(salt),
		b64.EncodeToString(p.derive(plaintext, salt)),
	), nil
}

func parseArgon2idHash(hash string) (argon2Params, []byte, []byte, error) {
	parts := strings.Split(hash, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return argon2Params{}, nil, nil, errBadHash
	}
	if parts[2] != "v="+strconv.Itoa(argon2.Version) {
		return argon2Params{}, nil, nil, errors.New("unsupported argon2 version")
	}

	var p argon2Params
	for _, kv := range strings.Split(parts[3], ",") {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			return argon2Params{}, nil, nil, errBadHash
		}
		bits := 32
		if k == "p" {
			bits = 8
		}
		n, err := strconv.ParseUint(v, 10, bits)
		if err != nil {
			return argon2Params{}, nil, nil, fmt.Errorf("argon2 param %s: %w", k, err)
		}
		switch k {
		case "m":
			p.memory = uint32(n)
		case "t":
			p.iterations = uint32(n)
		case "p":
			p.parallelism = uint8(n)
		default:
			return argon2Params{}, nil, nil, fmt.Errorf("unknown argon2 param %q", k)
		}
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return argon2Params{}, nil, nil, errors.New("invalid argon2 salt")
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(key) == 0 {
		return argon2Params{}, nil, nil, errors.New("invalid argon2 key")
	}
	p.saltLen = uint32(len(salt))
	p.keyLen = uint32(len(key))

	return p, salt, key, nil
}
