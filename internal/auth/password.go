package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// defaultCost is the bcrypt work factor. Each +1 doubles hashing time; 12 is
// roughly a quarter second, which only the login route ever pays.
const defaultCost = 12

// maxPasswordBytes is bcrypt's input limit. Longer input is rejected rather
// than silently truncated.
const maxPasswordBytes = 72

// ErrInvalidPassword means the password does not match the hash.
var ErrInvalidPassword = errors.New("auth: invalid password")

type PasswordService struct {
	cost int
}

func NewPasswordService() *PasswordService {
	return &PasswordService{cost: defaultCost}
}

// NewPasswordServiceWithCost is for tests in other packages; bcrypt.MinCost
// keeps them fast.
func NewPasswordServiceWithCost(cost int) *PasswordService {
	return &PasswordService{cost: cost}
}

func (p *PasswordService) Hash(plaintext string) (string, error) {
	if len(plaintext) > maxPasswordBytes {
		return "", fmt.Errorf("auth: password must be %d bytes or fewer", maxPasswordBytes)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), p.cost)
	if err != nil {
		return "", fmt.Errorf("auth: hashing password: %w", err)
	}
	return string(hashed), nil
}

// Verify returns ErrInvalidPassword on a mismatch and a wrapped error when the
// hash itself is unusable. Input over maxPasswordBytes never matches, since
// Hash refuses to produce a hash for it.
func (p *PasswordService) Verify(hash, plaintext string) error {
	if len(plaintext) > maxPasswordBytes {
		return ErrInvalidPassword
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrInvalidPassword
	}
	if err != nil {
		return fmt.Errorf("auth: comparing password hash: %w", err)
	}
	return nil
}
