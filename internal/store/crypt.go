package store

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"
)

// Export payloads can carry client identity and medication data, so the
// export command offers at-rest encryption with a passphrase-derived key.

const (
	saltSize = 16

	scryptN = 1 << 15
	scryptR = 8
	scryptP = 1
)

func deriveKey(passphrase, salt []byte) ([]byte, error) {
	return scrypt.Key(passphrase, salt, scryptN, scryptR, scryptP, chacha20poly1305.KeySize)
}

// Seal encrypts plaintext with a key derived from passphrase. Output
// layout: salt || nonce || ciphertext.
func Seal(passphrase, plaintext []byte) ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	key, err := deriveKey(passphrase, salt)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	out := make([]byte, 0, saltSize+len(nonce)+len(plaintext)+aead.Overhead())
	out = append(out, salt...)
	out = append(out, nonce...)
	return aead.Seal(out, nonce, plaintext, nil), nil
}

// Unseal decrypts a payload produced by Seal. A wrong passphrase fails
// authentication and returns an error.
func Unseal(passphrase, sealed []byte) ([]byte, error) {
	if len(sealed) < saltSize+chacha20poly1305.NonceSizeX {
		return nil, fmt.Errorf("sealed payload too short")
	}
	salt := sealed[:saltSize]
	nonce := sealed[saltSize : saltSize+chacha20poly1305.NonceSizeX]
	ciphertext := sealed[saltSize+chacha20poly1305.NonceSizeX:]

	key, err := deriveKey(passphrase, salt)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	plaintext, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("decrypt: wrong passphrase or corrupted payload")
	}
	return plaintext, nil
}
