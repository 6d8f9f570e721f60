// storage задаёт контракт локального key-value хранилища клиента.
//
// Все ключи живут под общим префиксом Prefix, чтобы не конфликтовать
// с чужими данными в том же бэкенде (общий JSON-файл, общий Redis).
// Конкретный бэкенд выбирается один раз на старте по конфигурации;
// остальной код (session, cli) работает только через интерфейс Store
// и ничего не знает о платформе.
package storage

import (
	"context"
	"errors"
)

// Prefix — общий префикс всех ключей клиента.
const Prefix = "fitgen_"

var (
	// ErrNotFound — ключ отсутствует в хранилище.
	ErrNotFound = errors.New("not found")
)

// Store — контракт key-value хранилища сессии.
//
// Ключи передаются логическими именами ("token", "refresh_token");
// реализация сама добавляет Prefix. Clear удаляет только ключи
// под Prefix и не трогает чужие записи в том же бэкенде.
type Store interface {
	// Set записывает значение по ключу.
	Set(ctx context.Context, key, value string) error
	// Get возвращает значение по ключу или ErrNotFound.
	Get(ctx context.Context, key string) (string, error)
	// Delete удаляет ключ; отсутствие ключа — не ошибка.
	Delete(ctx context.Context, key string) error
	// Clear удаляет все ключи под Prefix.
	Clear(ctx context.Context) error
	// Close освобождает ресурсы бэкенда.
	Close() error
}
