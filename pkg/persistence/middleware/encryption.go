package middleware

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/ports"
)

// envelopeFile is the file key that carries the ciphertext inside an
// encrypted artifact envelope.
const envelopeFile = "__encrypted__"

// EncryptionConfig holds the keys for encryption and decryption.
type EncryptionConfig struct {
	// ActiveKey is the key used for encrypting new artifacts.
	// Must be 32 bytes for AES-256.
	ActiveKey []byte

	// FallbackKeys is a list of old keys to try when decryption fails.
	// This enables zero-downtime key rotation.
	FallbackKeys [][]byte
}

type encryptionMiddleware struct {
	next   ports.ArtifactStore
	config EncryptionConfig
}

// NewEncryptionMiddleware creates a middleware that encrypts stored
// artifacts using AES-GCM (envelope encryption). The underlying store only
// ever sees an opaque envelope; pipeline text, hierarchy and workflow name
// stay hidden at rest.
func NewEncryptionMiddleware(config EncryptionConfig) Middleware {
	if len(config.ActiveKey) != 32 {
		panic("active key must be 32 bytes (AES-256)")
	}
	return func(next ports.ArtifactStore) ports.ArtifactStore {
		return &encryptionMiddleware{
			next:   next,
			config: config,
		}
	}
}

// ParseKeys decodes a comma-separated list of hex-encoded 256-bit keys, as
// carried by ESPALIER_STORE_KEY style environment variables. The first key
// is the active one; the rest become rotation fallbacks.
func ParseKeys(s string) (EncryptionConfig, error) {
	var cfg EncryptionConfig
	for i, part := range strings.Split(s, ",") {
		key, err := hex.DecodeString(strings.TrimSpace(part))
		if err != nil {
			return EncryptionConfig{}, fmt.Errorf("store key %d is not valid hex: %w", i+1, err)
		}
		if len(key) != 32 {
			return EncryptionConfig{}, fmt.Errorf("store key %d must be 32 bytes (64 hex characters), got %d", i+1, len(key))
		}
		if i == 0 {
			cfg.ActiveKey = key
		} else {
			cfg.FallbackKeys = append(cfg.FallbackKeys, key)
		}
	}
	return cfg, nil
}

func (m *encryptionMiddleware) Save(ctx context.Context, artifact *domain.Artifact) error {
	plainText, err := json.Marshal(artifact)
	if err != nil {
		return fmt.Errorf("failed to marshal artifact: %w", err)
	}

	ciphertext, err := encrypt(plainText, m.config.ActiveKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt artifact: %w", err)
	}

	// The envelope keeps ID and CreatedAt in the clear: stores key on the ID
	// and order listings by CreatedAt. Everything else is hidden.
	envelope := &domain.Artifact{
		ID:        artifact.ID,
		Name:      "encrypted",
		CreatedAt: artifact.CreatedAt,
		Files: map[string]string{
			envelopeFile: base64.StdEncoding.EncodeToString(ciphertext),
		},
	}

	return m.next.Save(ctx, envelope)
}

func (m *encryptionMiddleware) Load(ctx context.Context, id string) (*domain.Artifact, error) {
	envelope, err := m.next.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	return m.open(envelope)
}

func (m *encryptionMiddleware) Delete(ctx context.Context, id string) error {
	return m.next.Delete(ctx, id)
}

func (m *encryptionMiddleware) List(ctx context.Context) ([]*domain.Artifact, error) {
	envelopes, err := m.next.List(ctx)
	if err != nil {
		return nil, err
	}

	artifacts := make([]*domain.Artifact, 0, len(envelopes))
	for _, envelope := range envelopes {
		artifact, err := m.open(envelope)
		if err != nil {
			return nil, fmt.Errorf("artifact %s: %w", envelope.ID, err)
		}
		artifacts = append(artifacts, artifact)
	}
	return artifacts, nil
}

// open unwraps one envelope back into the real artifact. When encryption is
// configured, a stored artifact without an envelope is treated as an error
// rather than passed through: fail secure.
func (m *encryptionMiddleware) open(envelope *domain.Artifact) (*domain.Artifact, error) {
	encryptedStr, ok := envelope.Files[envelopeFile]
	if !ok {
		return nil, errors.New("artifact is missing its encrypted envelope")
	}

	ciphertext, err := base64.StdEncoding.DecodeString(encryptedStr)
	if err != nil {
		return nil, fmt.Errorf("failed to decode ciphertext base64: %w", err)
	}

	plainText, err := decryptWithRotation(ciphertext, m.config.ActiveKey, m.config.FallbackKeys)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt artifact: %w", err)
	}

	var artifact domain.Artifact
	if err := json.Unmarshal(plainText, &artifact); err != nil {
		return nil, fmt.Errorf("failed to unmarshal decrypted artifact: %w", err)
	}
	return &artifact, nil
}

// Helpers

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
	// Try the active key first, then fallbacks in order.
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
