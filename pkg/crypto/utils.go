package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"io"
	"strings"

	"github.com/gtank/cryptopasta"
)

const fingerprintTag = "secretary-fingerprint"

// NewRandomKey generates a random key suitable for Seal & Open.
func NewRandomKey() (string, error) {
	key := &[33]byte{} // slightly longer than we need to be safe
	_, err := io.ReadFull(rand.Reader, key[:])
	return base64.RawURLEncoding.EncodeToString(key[:]), err
}

// Open is the inverse of Seal, checking the HMAC and decrypting the encoded
// data, if possible.
func Open(encoded, key string) ([]byte, error) {
	rawkey, rawsig, err := splitKey(key)
	if err != nil {
		return nil, err
	}

	// split into cyphertext & signature
	bits := strings.SplitN(encoded, ".", 2)
	if len(bits) != 2 {
		return nil, fmt.Errorf("decryption failed, encoded string invalid")
	}

	cypher, err := base64.RawURLEncoding.DecodeString(bits[0])
	if err != nil {
		return nil, err
	}

	signature, err := base64.RawURLEncoding.DecodeString(bits[1])
	if err != nil {
		return nil, err
	}

	if !cryptopasta.CheckHMAC(cypher, signature, rawsig) {
		return nil, fmt.Errorf("signature validation failed")
	}

	return cryptopasta.Decrypt(cypher, rawkey)
}

// Seal encrypts & base64 encodes the plaintext, with a HMAC signature
// attached on the end.
func Seal(plaintext []byte, key string) (string, error) {
	rawkey, rawsig, err := splitKey(key)
	if err != nil {
		return "", err
	}

	cyphertext, err := cryptopasta.Encrypt(plaintext, rawkey)
	if err != nil {
		return "", err
	}

	signature := cryptopasta.GenerateHMAC(cyphertext, rawsig)

	// smoosh together and we're done
	return fmt.Sprintf(
		"%s.%s",
		base64.RawURLEncoding.EncodeToString(cyphertext),
		base64.RawURLEncoding.EncodeToString(signature),
	), nil
}

// Fingerprint returns a short stable digest of a secret, so log lines can tell
// credentials apart without carrying them.
func Fingerprint(secret string) string {
	if secret == "" {
		return "none"
	}
	sum := cryptopasta.Hash(fingerprintTag, []byte(secret))
	return hex.EncodeToString(sum[:6])
}

// splitKey derives separate encryption & signing keys from one key string.
func splitKey(key string) (*[32]byte, *[32]byte, error) {
	enc, err := toKey("enc:" + key)
	if err != nil {
		return nil, nil, err
	}
	sig, err := toKey("sig:" + key)
	return enc, sig, err
}

// toKey hashes a string of at least len 32 into *[32]byte, as needed by the
// cryptopasta library.
func toKey(s string) (*[32]byte, error) {
	if len(s) < 36 {
		return nil, fmt.Errorf("key too short for encryption/signing operation, want at least 32 chars")
	}
	data := &[32]byte{}
	copy(data[:], cryptopasta.Hash("secretary-key", []byte(s)))
	return data, nil
}
