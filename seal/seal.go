// Package seal provides authenticated symmetric encryption for values that
// must survive a round trip through an untrusted client, such as a refresh
// token stored in a browser cookie. Sealed output is a compact, URL-safe
// string that carries everything needed to decrypt it again except the
// shared secret.
package seal

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"strings"

	apperrors "github.com/jrsteele09/go-auth-gateway/internal/errors"
	"golang.org/x/crypto/pbkdf2"
)

const (
	version    = "s1"
	saltLength = 16
	keyLength  = 32 // AES-256
	iterations = 4096
)

var encoding = base64.RawURLEncoding

// Seal serializes v as JSON and encrypts it under a key derived from secret.
// Each call uses a fresh salt and nonce, so sealing the same value twice
// yields different ciphertexts.
func Seal(secret string, v any) (string, error) {
	if secret == "" {
		return "", apperrors.Wrapf(apperrors.ErrConfiguration, "seal secret is not set")
	}

	plaintext, err := json.Marshal(v)
	if err != nil {
		return "", apperrors.Wrapf(err, "seal marshal")
	}

	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", apperrors.Wrapf(err, "seal salt")
	}

	aead, err := newAEAD(secret, salt)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", apperrors.Wrapf(err, "seal nonce")
	}

	ciphertext := aead.Seal(nil, nonce, plaintext, []byte(version))

	return strings.Join([]string{
		version,
		encoding.EncodeToString(salt),
		encoding.EncodeToString(nonce),
		encoding.EncodeToString(ciphertext),
	}, "."), nil
}

// Unseal decrypts a value produced by Seal into v. Any tampering, truncation
// or version mismatch yields ErrAuthenticity; plaintext is never returned
// from input that fails authentication.
func Unseal(secret, sealed string, v any) error {
	if secret == "" {
		return apperrors.Wrapf(apperrors.ErrConfiguration, "seal secret is not set")
	}

	parts := strings.Split(sealed, ".")
	if len(parts) != 4 || parts[0] != version {
		return apperrors.ErrAuthenticity
	}

	salt, err := encoding.DecodeString(parts[1])
	if err != nil || len(salt) != saltLength {
		return apperrors.ErrAuthenticity
	}
	nonce, err := encoding.DecodeString(parts[2])
	if err != nil {
		return apperrors.ErrAuthenticity
	}
	ciphertext, err := encoding.DecodeString(parts[3])
	if err != nil {
		return apperrors.ErrAuthenticity
	}

	aead, err := newAEAD(secret, salt)
	if err != nil {
		return err
	}
	if len(nonce) != aead.NonceSize() {
		return apperrors.ErrAuthenticity
	}

	plaintext, err := aead.Open(nil, nonce, ciphertext, []byte(version))
	if err != nil {
		return apperrors.ErrAuthenticity
	}

	if err := json.Unmarshal(plaintext, v); err != nil {
		return apperrors.Wrapf(err, "unseal unmarshal")
	}
	return nil
}

func newAEAD(secret string, salt []byte) (cipher.AEAD, error) {
	key := pbkdf2.Key([]byte(secret), salt, iterations, keyLength, sha256.New)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, apperrors.Wrapf(err, "seal cipher")
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, apperrors.Wrapf(err, "seal gcm")
	}
	return aead, nil
}
