package helpers

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidHash         = errors.New("invalid hash format")
	ErrIncompatibleVersion = errors.New("incompatible argon2 version")
)

// Argon2Params tunes the Argon2id key derivation.
type Argon2Params struct {
	Time    uint32
	Memory  uint32 // KiB
	Threads uint8
	KeyLen  uint32
	SaltLen uint32
}

// DefaultArgon2Params follows the OWASP minimum for Argon2id.
var DefaultArgon2Params = Argon2Params{Time: 3, Memory: 64 * 1024, Threads: 4, KeyLen: 32, SaltLen: 16}

// PasswordHasher produces deterministic Argon2id hashes: the salt is an HMAC of the
// password keyed by a server side pepper, so the same input always yields the same PHC string.
type PasswordHasher struct {
	pepper []byte
	params Argon2Params
}

func NewPasswordHasher(pepper string, params Argon2Params) *PasswordHasher {
	if params.SaltLen == 0 || params.SaltLen > sha256.Size {
		params.SaltLen = 16
	}
	if params.KeyLen == 0 {
		params.KeyLen = 32
	}
	return &PasswordHasher{pepper: []byte(pepper), params: params}
}

func (h *PasswordHasher) salt(plain string) []byte {
	mac := hmac.New(sha256.New, h.pepper)
	mac.Write([]byte(plain))
	return mac.Sum(nil)[:h.params.SaltLen]
}

// Hash returns the PHC encoded hash: $argon2id$v=19$m=..,t=..,p=..$<salt>$<hash>
func (h *PasswordHasher) Hash(plain string) (string, error) {
	p := h.params
	salt := h.salt(plain)
	key := argon2.IDKey([]byte(plain), salt, p.Time, p.Memory, p.Threads, p.KeyLen)
	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, p.Memory, p.Time, p.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify checks plain against a stored Argon2id or bcrypt hash in constant time.
func (h *PasswordHasher) Verify(plain, stored string) bool {
	if strings.HasPrefix(stored, "$2a$") || strings.HasPrefix(stored, "$2b$") || strings.HasPrefix(stored, "$2y$") {
		return CompareHashAndPassword(stored, plain)
	}
	ok, err := verifyArgon2id(plain, stored)
	return err == nil && ok
}

func verifyArgon2id(plain, encoded string) (bool, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return false, ErrInvalidHash
	}
	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return false, ErrInvalidHash
	}
	if version != argon2.Version {
		return false, ErrIncompatibleVersion
	}
	var memory, t uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &t, &threads); err != nil {
		return false, ErrInvalidHash
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, ErrInvalidHash
	}
	expected, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(expected) == 0 {
		return false, ErrInvalidHash
	}
	computed := argon2.IDKey([]byte(plain), salt, t, memory, threads, uint32(len(expected)))
	return subtle.ConstantTimeCompare(computed, expected) == 1, nil
}

// CompareHashAndPassword compares a bcrypt hash with a plain password
func CompareHashAndPassword(hash string, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
