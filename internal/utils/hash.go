package utils

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword returns a bcrypt hash of the provided password.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// CheckPassword compares a bcrypt hashed password with its possible plaintext equivalent.
func CheckPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}

// HashPIN hashes a customer PIN with SHA-256. The PIN space is four
// digits, so this is an obfuscation step, not a KDF; the cashier-side
// daily limit is the real brake on guessing.
func HashPIN(pin string) string {
	sum := sha256.Sum256([]byte(pin))
	return hex.EncodeToString(sum[:])
}

// CheckPIN compares a stored PIN hash with a candidate PIN in constant time.
func CheckPIN(storedHash, pin string) bool {
	return subtle.ConstantTimeCompare([]byte(storedHash), []byte(HashPIN(pin))) == 1
}
