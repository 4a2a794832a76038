// Package badgerstore implementa el Entity Store sobre BadgerDB embebido:
// cada colección es un arreglo JSON bajo su clave estable. Es el adaptador
// por defecto cuando no hay DATABASE_URL configurado.
package badgerstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/nexile/pharmacy-api/internal/domain/entity"
	"github.com/nexile/pharmacy-api/internal/domain/repository"
	"github.com/nexile/pharmacy-api/internal/domain/seed"
)

var _ repository.EntityStore = (*Store)(nil)

// Store adaptador de persistencia sobre una instancia Badger.
type Store struct {
	db *badger.DB
}

// Open abre (o crea) la base en dir y devuelve el store.
// El logging interno de Badger se redirige a zerolog.
func Open(dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("badgerstore: directorio requerido")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("badgerstore: crear directorio %s: %w", dir, err)
	}
	opts := badger.DefaultOptions(dir).WithLogger(&badgerLogger{zl: log.Logger})
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("badgerstore: abrir base: %w", err)
	}
	return &Store{db: db}, nil
}

// OpenInMemory abre una instancia en memoria (tests).
func OpenInMemory() (*Store, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("badgerstore: abrir base en memoria: %w", err)
	}
	return &Store{db: db}, nil
}

// Close cierra la base subyacente.
func (s *Store) Close() error { return s.db.Close() }

// getCollection lee la colección bajo key. Clave ausente → siembra y
// persiste de inmediato para que lecturas posteriores sean estables. JSON
// corrupto → degrada a la semilla, la persiste y emite un warning
// estructurado (disponibilidad sobre consistencia).
func getCollection[T any](s *Store, key string, seedFn func() []T) ([]T, error) {
	var raw []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		items := seedFn()
		if err := putCollection(s, key, items); err != nil {
			return nil, err
		}
		return items, nil
	}
	if err != nil {
		return nil, fmt.Errorf("badgerstore: leer %s: %w", key, err)
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		log.Warn().Str("collection", key).Err(err).
			Msg("store: colección corrupta, degradando a datos semilla")
		items = seedFn()
		if err := putCollection(s, key, items); err != nil {
			return nil, err
		}
	}
	return items, nil
}

func putCollection[T any](s *Store, key string, items []T) error {
	buf, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("badgerstore: serializar %s: %w", key, err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), buf)
	})
	if err != nil {
		return fmt.Errorf("badgerstore: escribir %s: %w", key, err)
	}
	return nil
}

func (s *Store) Branches() ([]entity.Branch, error) {
	return getCollection(s, repository.KeyBranches, seed.Branches)
}

func (s *Store) PutBranches(items []entity.Branch) error {
	return putCollection(s, repository.KeyBranches, items)
}

func (s *Store) Users() ([]entity.User, error) {
	return getCollection(s, repository.KeyUsers, seed.Users)
}

func (s *Store) PutUsers(items []entity.User) error {
	return putCollection(s, repository.KeyUsers, items)
}

func (s *Store) Products() ([]entity.Product, error) {
	return getCollection(s, repository.KeyProducts, seed.Products)
}

func (s *Store) PutProducts(items []entity.Product) error {
	return putCollection(s, repository.KeyProducts, items)
}

func (s *Store) Transactions() ([]entity.Transaction, error) {
	return getCollection(s, repository.KeyTransactions, seed.Transactions)
}

func (s *Store) PutTransactions(items []entity.Transaction) error {
	return putCollection(s, repository.KeyTransactions, items)
}

// badgerLogger adapta el logger interno de Badger a zerolog.
type badgerLogger struct {
	zl zerolog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.zl.Error().Msgf(format, args...)
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.zl.Warn().Msgf(format, args...)
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.zl.Debug().Msgf(format, args...)
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.zl.Debug().Msgf(format, args...)
}
