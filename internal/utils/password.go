package utils

import "golang.org/x/crypto/bcrypt"

// passwordHashCost is the bcrypt work factor applied to stored credentials.
const passwordHashCost = bcrypt.DefaultCost

// HashPassword derives the bcrypt hash stored for a user's password.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), passwordHashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPasswordHash reports whether the plaintext password matches the stored hash.
func CheckPasswordHash(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
