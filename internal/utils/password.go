package utils

import (
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is the longest password bcrypt accepts. The limit is
// in bytes, not characters.
const MaxPasswordBytes = 72

// PasswordCost is the bcrypt work factor for new hashes. Tests lower it.
var PasswordCost = bcrypt.DefaultCost

var (
	compareHash = bcrypt.CompareHashAndPassword

	dummyOnce sync.Once
	dummyHash []byte
)

// HashPassword returns the bcrypt hash stored in place of a user's
// password.
func HashPassword(password string) (string, error) {
	if len(password) > MaxPasswordBytes {
		return "", errors.Wrap(bcrypt.ErrPasswordTooLong, "hashing password")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", errors.Wrap(err, "hashing password")
	}
	return string(hash), nil
}

// CheckPasswordHash reports whether password matches hash. An empty hash
// never matches, but is still compared against a throwaway hash so that
// unknown accounts take as long to reject as a wrong password.
func CheckPasswordHash(password, hash string) bool {
	if hash == "" {
		_ = compareHash(placeholderHash(), []byte(password))
		return false
	}
	return compareHash([]byte(hash), []byte(password)) == nil
}

func placeholderHash() []byte {
	dummyOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("no account has this password"), PasswordCost)
	})
	return dummyHash
}
