// file — хранилище в JSON-файле: аналог браузерного localStorage
// для обычного (незащищённого) профиля.
//
// Файл может содержать чужие записи (другие приложения, старые версии),
// поэтому Clear удаляет только ключи под storage.Prefix, а запись
// выполняется атомарно через временный файл + rename.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/douglas-germano/fitgen-sub000/internal/storage"
)

// Store — хранилище поверх одного JSON-файла.
type Store struct {
	mu   sync.Mutex
	path string
}

// New создаёт хранилище по пути к файлу. Файл создаётся лениво
// при первой записи; директория — сразу.
func New(path string) (*Store, error) {
	const op = "storage.file.New"

	if path == "" {
		return nil, fmt.Errorf("%s: empty path", op)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Store{path: path}, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	const op = "storage.file.Set"

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
	const op = "storage.file.Get"

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
	const op = "storage.file.Delete"

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

// Clear удаляет только ключи под storage.Prefix, чужие записи
// в том же файле сохраняются.
func (s *Store) Clear(_ context.Context) error {
	const op = "storage.file.Clear"

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

// load читает файл целиком; отсутствующий файл — пустая карта.
func (s *Store) load() (map[string]string, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return make(map[string]string), nil
		}

		return nil, err
	}

	if len(raw) == 0 {
		return make(map[string]string), nil
	}

	data := make(map[string]string)
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}

	return data, nil
}

// save пишет атомарно: временный файл в той же директории + rename.
func (s *Store) save(data map[string]string) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}

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
