package auth

import (
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

var ErrPasswordMismatch = errors.New("password mismatch")

// compareHash is swapped in tests
var compareHash = bcrypt.CompareHashAndPassword

var (
	dummyHashOnce sync.Once
	dummyHash     []byte
)

// decoyHash is compared against when there is no stored hash, so every login pays the bcrypt cost
func decoyHash() []byte {
	dummyHashOnce.Do(func() {
		dummyHash, _ = bcrypt.GenerateFromPassword([]byte("social-admin decoy password"), bcrypt.DefaultCost)
	})
	return dummyHash
}

func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.Wrap(err, "hash password")
	}
	return string(hashed), nil
}

// CheckPassword compares a plaintext password with a stored bcrypt hash.
// An empty hash never matches but still costs one comparison; pass "" for unknown accounts.
func CheckPassword(hash, password string) error {
	if hash == "" {
		_ = compareHash(decoyHash(), []byte(password))
		return ErrPasswordMismatch
	}
	if err := compareHash([]byte(hash), []byte(password)); err != nil {
		return errors.Wrap(ErrPasswordMismatch, err.Error())
	}
	return nil
}
