package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var errEmptySecret = errors.New("secret file is empty")

// ReadSecret читает обязательный секрет из файла Docker Secrets.
func ReadSecret(dir, secretName string) (string, error) {
	filePath := filepath.Join(dir, secretName)
	secretBytes, err := os.ReadFile(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to read secret file %s: %w", filePath, err)
	}
	secret := strings.TrimSpace(string(secretBytes))
	if secret == "" {
		return "", fmt.Errorf("%s: %w", filePath, errEmptySecret)
	}
	return secret, nil
}

// ReadOptionalSecret как ReadSecret, но отсутствующий или пустой файл дает пустую строку.
func ReadOptionalSecret(dir, secretName string) (string, error) {
	secret, err := ReadSecret(dir, secretName)
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, errEmptySecret) {
		return "", nil
	}
	return secret, err
}
