package utils

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// passwordCost is pinned rather than left at bcrypt.DefaultCost so a library
// default change cannot silently alter hashing behaviour between deploys.
const passwordCost = 12

// ErrPasswordTooLong is returned when the plaintext exceeds what bcrypt hashes.
var ErrPasswordTooLong = errors.New("password exceeds 72 bytes")

// HashPassword derives a bcrypt hash from an agent's plaintext password.
// bcrypt only consumes the first 72 bytes, so longer inputs are rejected
// instead of being truncated silently.
func HashPassword(password string) (string, error) {
	if len(password) > 72 {
		return "", ErrPasswordTooLong
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPasswordHash reports whether the plaintext matches the stored hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
