package fs

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"IEats/internal/cli/repo"
)

// AuthFSStore: файловое хранилище токена сессии для CLI.
// Пустой Path означает <UserConfigDir>/IEats/token.
type AuthFSStore struct {
	Path string
}

var _ repo.TokenStore = AuthFSStore{}

func (s AuthFSStore) tokenPath() (string, error) {
	p := s.Path
	if p == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return "", err
		}
		p = filepath.Join(dir, "IEats", "token")
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
		return "", err
	}
	return p, nil
}

// Save сохраняет auth‑токен в файл.
func (s AuthFSStore) Save(token string) error {
	p, err := s.tokenPath()
	if err != nil {
		return err
	}
	return os.WriteFile(p, []byte(strings.TrimSpace(token)), 0o600)
}

// Load читает auth‑токен из файла.
func (s AuthFSStore) Load() (string, error) {
	p, err := s.tokenPath()
	if err != nil {
		return "", err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		return "", err
	}
	// обрезаем завершающие переводы строки/пробелы
	tok := strings.TrimRight(string(b), " \t\r\n")
	if tok == "" {
		return "", errors.New("empty token file")
	}
	return tok, nil
}

// Clear удаляет файл токена. Отсутствие файла не ошибка.
func (s AuthFSStore) Clear() error {
	p, err := s.tokenPath()
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
