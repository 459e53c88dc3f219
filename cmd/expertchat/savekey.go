package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/coder/expertchat/ai"
)

func configDir() (string, error) {
	cdir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cdir, "expertchat"), nil
}

// keyPath returns where the API key for provider is stored.
func keyPath(provider string) (string, error) {
	cdir, err := configDir()
	if err != nil {
		return "", err
	}
	if provider == "" {
		provider = ai.ProviderOpenAI
	}
	return filepath.Join(cdir, provider+".key"), nil
}

func saveKey(provider, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("key is empty")
	}
	kp, err := keyPath(provider)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(kp), 0o700); err != nil {
		return err
	}
	return os.WriteFile(kp, []byte(key), 0o600)
}

// loadKey returns the saved key for provider. A missing file is reported
// with an error satisfying os.IsNotExist.
func loadKey(provider string) (string, error) {
	kp, err := keyPath(provider)
	if err != nil {
		return "", err
	}
	b, err := os.ReadFile(kp)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

// pickKey chooses between a key given by flag or environment and a saved
// one. The explicit key wins when present.
func pickKey(explicit, saved string) string {
	if explicit != "" {
		return explicit
	}
	return saved
}
