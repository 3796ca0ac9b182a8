package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes a plaintext password with configured cost.
func HashPassword(password string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword verifies a password against its hashed value. bcrypt
// compares in constant time.
func ComparePassword(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}

// BcryptVerifier adapts the package functions to the service's
// credential verifier interface.
type BcryptVerifier struct {
	Cost int
}

// Hash implements the verifier interface.
func (v BcryptVerifier) Hash(password string) (string, error) {
	return HashPassword(password, v.Cost)
}

// Compare implements the verifier interface.
func (v BcryptVerifier) Compare(hashed, plain string) error {
	return ComparePassword(hashed, plain)
}
