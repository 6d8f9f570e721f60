// securefile — зашифрованное файловое хранилище: аналог защищённых
// preferences нативной оболочки.
//
// Содержимое (JSON-карта ключ→значение) шифруется XChaCha20-Poly1305;
// ключ шифрования генерируется при первом обращении и лежит рядом
// отдельным файлом с правами 0600. Формат файла: nonce || ciphertext.
package securefile

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/douglas-germano/fitgen-sub000/internal/storage"
)

// Store — зашифрованное хранилище поверх пары файлов (данные + ключ).
type Store struct {
	mu      sync.Mutex
	path    string
	keyPath string
}

// New создаёт хранилище. path — файл данных; ключ будет создан
// рядом с суффиксом ".key", если его ещё нет.
func New(path string) (*Store, error) {
	const op = "storage.securefile.New"

	if path == "" {
		return nil, fmt.Errorf("%s: empty path", op)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Store{path: path, keyPath: path + ".key"}, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	const op = "storage.securefile.Set"

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	data[storage.Prefix+key] = value

	if err := s.save(data); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Store) Get(_ context.Context, key string) (string, error) {
	const op = "storage.securefile.Get"

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	v, ok := data[storage.Prefix+key]
	if !ok {
		return "", storage.ErrNotFound
	}

	return v, nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	const op = "storage.securefile.Delete"

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if _, ok := data[storage.Prefix+key]; !ok {
		return nil
	}

	delete(data, storage.Prefix+key)

	if err := s.save(data); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Clear удаляет только ключи под storage.Prefix.
func (s *Store) Clear(_ context.Context) error {
	const op = "storage.securefile.Clear"

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.load()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	changed := false
	for k := range data {
		if strings.HasPrefix(k, storage.Prefix) {
			delete(data, k)
			changed = true
		}
	}

	if !changed {
		return nil
	}

	if err := s.save(data); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Store) Close() error { return nil }

// loadKey читает ключ шифрования, при отсутствии — генерирует новый.
func (s *Store) loadKey() ([]byte, error) {
	raw, err := os.ReadFile(s.keyPath)
	if err == nil {
		if len(raw) != chacha20poly1305.KeySize {
			return nil, fmt.Errorf("key file %q: unexpected size %d", s.keyPath, len(raw))
		}

		return raw, nil
	}

	if !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}

	key := make([]byte, chacha20poly1305.KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, err
	}

	if err := os.WriteFile(s.keyPath, key, 0o600); err != nil {
		return nil, err
	}

	return key, nil
}

func (s *Store) load() (map[string]string, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return make(map[string]string), nil
		}

		return nil, err
	}

	key, err := s.loadKey()
	if err != nil {
		return nil, err
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}

	if len(raw) < aead.NonceSize() {
		return nil, fmt.Errorf("data file %q: truncated", s.path)
	}

	nonce, ciphertext := raw[:aead.NonceSize()], raw[aead.NonceSize():]

	plain, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("decrypt %q: %w", s.path, err)
	}

	data := make(map[string]string)
	if err := json.Unmarshal(plain, &data); err != nil {
		return nil, err
	}

	return data, nil
}

func (s *Store) save(data map[string]string) error {
	plain, err := json.Marshal(data)
	if err != nil {
		return err
	}

	key, err := s.loadKey()
	if err != nil {
		return err
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return err
	}

	raw := aead.Seal(nonce, nonce, plain, nil)

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".fitgen-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}

	if err := os.Chmod(tmpName, 0o600); err != nil {
		_ = os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, s.path)
}
