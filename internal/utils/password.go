package utils

import "golang.org/x/crypto/bcrypt"

// MaxPasswordBytes is the longest input bcrypt reads; anything past it is ignored.
const MaxPasswordBytes = 72

// HashPassword hashes plain with a per-call random salt. Costs below
// bcrypt.DefaultCost are raised to it.
func HashPassword(plain string, cost int) (string, error) {
	if cost < bcrypt.DefaultCost {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword compares in constant time via bcrypt. Inputs longer than
// MaxPasswordBytes never match, since bcrypt would compare only their prefix.
func CheckPassword(hash, plain string) bool {
	ok := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
	return ok && len(plain) <= MaxPasswordBytes
}
