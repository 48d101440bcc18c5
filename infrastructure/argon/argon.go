package argon

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/nacl/secretbox"
)

const nonceSize = 24

var (
	ErrSecretRequired = errors.New("secret is required")
	ErrOpenFailed     = errors.New("unseal failed: invalid ciphertext or wrong secret")
)

// Params controls argon2id key derivation.
type Params struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
	KeyLength   uint32
}

var DefaultParams = &Params{
	Memory:      64 * 1024,
	Iterations:  2,
	Parallelism: 1,
	KeyLength:   32,
}

// DeriveKey stretches secret into a key of p.KeyLength bytes. The salt scopes
// the key to one purpose, so the same secret can feed several keys.
func DeriveKey(secret, salt string, p *Params) ([]byte, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrSecretRequired
	}
	if p == nil {
		p = DefaultParams
	}
	return argon2.IDKey([]byte(secret), []byte(salt), p.Iterations, p.Memory, p.Parallelism, p.KeyLength), nil
}

// Sealer encrypts short credentials (backend bearer tokens) for storage.
type Sealer struct {
	key [32]byte
}

// NewSealer derives a secretbox key from secret. Derivation is slow by
// design of argon2id, so build one Sealer at startup and share it.
func NewSealer(secret string, p *Params) (*Sealer, error) {
	if p == nil {
		p = DefaultParams
	}
	kp := *p
	kp.KeyLength = 32
	key, err := DeriveKey(secret, "portfolio/token-seal/v2", &kp)
	if err != nil {
		return nil, err
	}
	s := &Sealer{}
	copy(s.key[:], key)
	return s, nil
}

// Seal returns base64(nonce || secretbox).
func (s *Sealer) Seal(plaintext string) (string, error) {
	if plaintext == "" {
		return "", errors.New("nothing to seal")
	}
	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}
	out := secretbox.Seal(nonce[:], []byte(plaintext), &nonce, &s.key)
	return base64.RawStdEncoding.EncodeToString(out), nil
}

// Open reverses Seal.
func (s *Sealer) Open(sealed string) (string, error) {
	raw, err := base64.RawStdEncoding.DecodeString(sealed)
	if err != nil || len(raw) < nonceSize+secretbox.Overhead {
		return "", ErrOpenFailed
	}
	var nonce [nonceSize]byte
	copy(nonce[:], raw[:nonceSize])
	plain, ok := secretbox.Open(nil, raw[nonceSize:], &nonce, &s.key)
	if !ok {
		return "", ErrOpenFailed
	}
	return string(plain), nil
}
