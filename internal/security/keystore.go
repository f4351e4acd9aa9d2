package security

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	keyringService = "g4fchat"
	vaultFile      = "vault.enc"
)

// KeyStore holds provider API keys. Writes go to the OS keychain when
// one is available and to the encrypted vault file otherwise.
type KeyStore struct {
	vaultPath string
	password  string // vault password, empty when keychain-only
}

// NewKeyStore creates a key store rooted at dir (typically ~/.g4fchat).
func NewKeyStore(dir, password string) (*KeyStore, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}
	return &KeyStore{
		vaultPath: filepath.Join(dir, vaultFile),
		password:  password,
	}, nil
}

// Set stores a secret, preferring the OS keychain.
func (ks *KeyStore) Set(name, value string) error {
	if err := keyring.Set(keyringService, name, value); err == nil {
		return nil
	}
	return ks.setInVault(name, value)
}

// Get retrieves a secret by name.
func (ks *KeyStore) Get(name string) (string, error) {
	if val, err := keyring.Get(keyringService, name); err == nil {
		return val, nil
	}
	return ks.getFromVault(name)
}

// Delete removes a secret from both backends.
func (ks *KeyStore) Delete(name string) error {
	_ = keyring.Delete(keyringService, name)
	return ks.deleteFromVault(name)
}

// Resolve turns a config APIKey value into a usable secret:
//
//	"env:NAME"     → value of the environment variable
//	"keyring:name" → secret stored under name in this key store
//	anything else  → used literally
//
// A missing env var or keyring entry resolves to "" so a provider with
// no key configured can still be constructed and fail at request time.
func (ks *KeyStore) Resolve(raw string) string {
	switch {
	case strings.HasPrefix(raw, "env:"):
		return os.Getenv(strings.TrimPrefix(raw, "env:"))
	case strings.HasPrefix(raw, "keyring:"):
		val, err := ks.Get(strings.TrimPrefix(raw, "keyring:"))
		if err != nil {
			return ""
		}
		return val
	default:
		return raw
	}
}

// MaskKey returns a masked version of an API key for display.
func MaskKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:3] + "..." + key[len(key)-4:]
}

// Vault operations (encrypted JSON file)

func (ks *KeyStore) loadVault() (map[string]string, error) {
	data, err := os.ReadFile(ks.vaultPath)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]string), nil
		}
		return nil, err
	}
	if ks.password == "" {
		return nil, fmt.Errorf("no vault password set")
	}

	plaintext, err := Open(string(data), ks.password)
	if err != nil {
		return nil, fmt.Errorf("open vault: %w", err)
	}

	var vault map[string]string
	if err := json.Unmarshal(plaintext, &vault); err != nil {
		return nil, fmt.Errorf("parse vault: %w", err)
	}
	return vault, nil
}

func (ks *KeyStore) saveVault(vault map[string]string) error {
	if ks.password == "" {
		return fmt.Errorf("no vault password set")
	}
	data, err := json.Marshal(vault)
	if err != nil {
		return err
	}
	sealed, err := Seal(data, ks.password)
	if err != nil {
		return err
	}
	return os.WriteFile(ks.vaultPath, []byte(sealed), 0600)
}

func (ks *KeyStore) setInVault(name, value string) error {
	vault, err := ks.loadVault()
	if err != nil {
		vault = make(map[string]string)
	}
	vault[name] = value
	return ks.saveVault(vault)
}

func (ks *KeyStore) getFromVault(name string) (string, error) {
	vault, err := ks.loadVault()
	if err != nil {
		return "", err
	}
	val, ok := vault[name]
	if !ok {
		return "", fmt.Errorf("key not found: %s", name)
	}
	return val, nil
}

func (ks *KeyStore) deleteFromVault(name string) error {
	vault, err := ks.loadVault()
	if err != nil {
		return nil // nothing to delete
	}
	delete(vault, name)
	return ks.saveVault(vault)
}
