// Package middleware provides SessionStore wrappers that add behavior to any
// backend. Sessions carry student names and ids in their context, so stores
// that persist to disk or a shared Redis can be wrapped to encrypt at rest.
package middleware

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"menuflow/pkg/domain"
	"menuflow/pkg/ports"
)

// Middleware wraps a SessionStore to add behavior.
type Middleware func(ports.SessionStore) ports.SessionStore

// EncryptionConfig holds the keys for encryption and decryption.
type EncryptionConfig struct {
	// ActiveKey encrypts new data. Must be 32 bytes for AES-256.
	ActiveKey []byte

	// FallbackKeys are old keys tried when decryption with the active key
	// fails, enabling zero-downtime key rotation.
	FallbackKeys [][]byte
}

type encryptionMiddleware struct {
	next   ports.SessionStore
	config EncryptionConfig
}

// NewEncryption creates a middleware that stores sessions as AES-GCM
// envelopes: the persisted record keeps only the user id in the clear.
func NewEncryption(config EncryptionConfig) Middleware {
	if len(config.ActiveKey) != 32 {
		panic("active key must be 32 bytes (AES-256)")
	}
	return func(next ports.SessionStore) ports.SessionStore {
		return &encryptionMiddleware{next: next, config: config}
	}
}

const envelopeKey = "__encrypted__"

func (m *encryptionMiddleware) Save(ctx context.Context, sess *domain.Session) error {
	plainText, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	ciphertext, err := encrypt(plainText, m.config.ActiveKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt session: %w", err)
	}

	// The envelope is a bare session carrying only the ciphertext; screen,
	// stack and selections stay opaque to the backend.
	envelope := domain.NewSession(sess.UserID, "")
	envelope.CurrentScreen = ""
	envelope.Context = map[string]any{
		envelopeKey: base64.StdEncoding.EncodeToString(ciphertext),
	}

	return m.next.Save(ctx, envelope)
}

func (m *encryptionMiddleware) Load(ctx context.Context, userID string) (*domain.Session, error) {
	envelope, err := m.next.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	encryptedStr, ok := envelope.Context[envelopeKey].(string)
	if !ok {
		// Fail closed: a store configured for encryption must not hand out
		// sessions that bypassed it.
		return nil, errors.New("session is missing its encrypted envelope")
	}

	ciphertext, err := base64.StdEncoding.DecodeString(encryptedStr)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ciphertext base64: %w", err)
	}

	plainText, err := decryptWithRotation(ciphertext, m.config.ActiveKey, m.config.FallbackKeys)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt session: %w", err)
	}

	var sess domain.Session
	if err := json.Unmarshal(plainText, &sess); err != nil {
		return nil, fmt.Errorf("failed to unmarshal decrypted session: %w", err)
	}
	return &sess, nil
}

func (m *encryptionMiddleware) Delete(ctx context.Context, userID string) error {
	return m.next.Delete(ctx, userID)
}

func (m *encryptionMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

func encrypt(plaintext []byte, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func decryptWithRotation(ciphertext []byte, activeKey []byte, fallbackKeys [][]byte) ([]byte, error) {
	if plain, err := decrypt(ciphertext, activeKey); err == nil {
		return plain, nil
	}

	for _, key := range fallbackKeys {
		if plain, err := decrypt(ciphertext, key); err == nil {
			return plain, nil
		}
	}

	return nil, errors.New("decryption failed with all available keys")
}

func decrypt(ciphertext []byte, key []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	if len(ciphertext) < gcm.NonceSize() {
		return nil, errors.New("ciphertext too short")
	}

	nonce := ciphertext[:gcm.NonceSize()]
	return gcm.Open(nil, nonce, ciphertext[gcm.NonceSize():], nil)
}
