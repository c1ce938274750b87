package crypt

import (
	"bytes"
	"crypto/rand"
	"fmt"
	"sync"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"

	apperrors "enough/internal/platform/errors"
)

// Header marks sealed payloads so plaintext records written before
// encryption was enabled stay readable.
const Header = "ENOUGH-SEALED-1\n"

const (
	saltSize    = 16
	kdfTime     = 3
	kdfMemory   = 64 * 1024
	kdfThreads  = 2
	kdfKeyBytes = chacha20poly1305.KeySize
)

// Codec is the encryption-at-rest boundary used by the record stores.
type Codec interface {
	Seal(plain []byte) ([]byte, error)
	Open(data []byte) ([]byte, error)
}

func IsSealed(data []byte) bool {
	return bytes.HasPrefix(data, []byte(Header))
}

// Plain stores records as-is.
type Plain struct{}

func (Plain) Seal(plain []byte) ([]byte, error) { return plain, nil }

func (Plain) Open(data []byte) ([]byte, error) {
	if IsSealed(data) {
		return nil, fmt.Errorf("%w: record is encrypted but encryption is disabled", apperrors.ErrDecrypt)
	}
	return data, nil
}

// Passphrase seals with XChaCha20-Poly1305 under an Argon2id key derived
// from the passphrase and a per-file salt.
type Passphrase struct {
	passphrase []byte

	mu   sync.Mutex
	keys map[string][]byte
}

func NewPassphrase(passphrase string) (*Passphrase, error) {
	if passphrase == "" {
		return nil, fmt.Errorf("%w: empty passphrase", apperrors.ErrConfiguration)
	}
	return &Passphrase{passphrase: []byte(passphrase), keys: map[string][]byte{}}, nil
}

func (p *Passphrase) Seal(plain []byte) ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	aead, err := chacha20poly1305.NewX(p.key(salt))
	if err != nil {
		return nil, fmt.Errorf("init cipher: %w", err)
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	out := make([]byte, 0, len(Header)+saltSize+len(nonce)+len(plain)+aead.Overhead())
	out = append(out, Header...)
	out = append(out, salt...)
	out = append(out, nonce...)
	return aead.Seal(out, nonce, plain, []byte(Header)), nil
}

func (p *Passphrase) Open(data []byte) ([]byte, error) {
	if !IsSealed(data) {
		return data, nil
	}
	body := data[len(Header):]
	if len(body) < saltSize+chacha20poly1305.NonceSizeX {
		return nil, fmt.Errorf("%w: truncated payload", apperrors.ErrDecrypt)
	}
	salt := body[:saltSize]
	nonce := body[saltSize : saltSize+chacha20poly1305.NonceSizeX]
	aead, err := chacha20poly1305.NewX(p.key(salt))
	if err != nil {
		return nil, fmt.Errorf("init cipher: %w", err)
	}
	plain, err := aead.Open(nil, nonce, body[saltSize+len(nonce):], []byte(Header))
	if err != nil {
		return nil, fmt.Errorf("%w: wrong passphrase or corrupted file", apperrors.ErrDecrypt)
	}
	return plain, nil
}

// key memoises derivations per salt; a weekly query otherwise pays the
// Argon2 cost once per file.
func (p *Passphrase) key(salt []byte) []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	if k, ok := p.keys[string(salt)]; ok {
		return k
	}
	k := argon2.IDKey(p.passphrase, salt, kdfTime, kdfMemory, kdfThreads, kdfKeyBytes)
	p.keys[string(salt)] = k
	return k
}
