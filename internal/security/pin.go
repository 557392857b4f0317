package security

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrWrongPIN = errors.New("wrong PIN")
)

// PINChecker verifies the parent PIN against a bcrypt hash
type PINChecker struct {
	hash []byte
}

// NewPINChecker hashes pin once so it is never kept in memory in plain text
func NewPINChecker(pin string) (*PINChecker, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash PIN: %w", err)
	}
	return &PINChecker{hash: hash}, nil
}

// Check returns ErrWrongPIN unless pin matches
func (c *PINChecker) Check(pin string) error {
	if err := bcrypt.CompareHashAndPassword(c.hash, []byte(pin)); err != nil {
		return ErrWrongPIN
	}
	return nil
}
