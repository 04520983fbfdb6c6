package credentials

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Submission is the payload emitted for a valid credential form.
type Submission struct {
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
}

// HashOption configures password hashing.
type HashOption func(*hashConfig)

type hashConfig struct {
	cost int
}

// WithCost sets the bcrypt cost. Values outside bcrypt's range fall back to
// bcrypt.DefaultCost.
func WithCost(cost int) HashOption {
	return func(cfg *hashConfig) {
		cfg.cost = cost
	}
}

// bcrypt only reads the first 72 bytes of its input.
const bcryptMaxInput = 72

// HashPassword returns a bcrypt hash of password.
func HashPassword(password string, opts ...HashOption) (string, error) {
	cfg := hashConfig{cost: bcrypt.DefaultCost}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if cfg.cost < bcrypt.MinCost || cfg.cost > bcrypt.MaxCost {
		cfg.cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword(bcryptInput(password), cfg.cost)
	if err != nil {
		return "", fmt.Errorf("credentials: hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches hash.
func VerifyPassword(hash, password string) bool {
	if hash == "" {
		return false
	}
	err := bcrypt.CompareHashAndPassword([]byte(hash), bcryptInput(password))
	return err == nil
}

// bcryptInput pre-hashes passwords longer than bcrypt accepts so every byte
// of a long password still counts.
func bcryptInput(password string) []byte {
	if len(password) <= bcryptMaxInput {
		return []byte(password)
	}
	sum := sha256.Sum256([]byte(password))
	return []byte(base64.RawStdEncoding.EncodeToString(sum[:]))
}

func newSubmission(email, password string, opts ...HashOption) (Submission, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return Submission{}, errors.New("credentials: email is required")
	}
	hash, err := HashPassword(password, opts...)
	if err != nil {
		return Submission{}, err
	}
	return Submission{Email: email, PasswordHash: hash}, nil
}
