package service

import (
	"golang.org/x/crypto/bcrypt"
)

// passwordHasher wraps bcrypt so tests can lower the cost.
type passwordHasher struct {
	cost int
}

func (h passwordHasher) Hash(plain string) (string, error) {
	cost := h.cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (passwordHasher) Matches(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
