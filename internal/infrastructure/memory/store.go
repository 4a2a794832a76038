// Package memory implementa el Entity Store en memoria: mismo contrato y
// misma semántica de semilla que los adaptadores durables, sin disco. Se usa
// en tests y como fake de inyección.
package memory

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/nexile/pharmacy-api/internal/domain/entity"
	"github.com/nexile/pharmacy-api/internal/domain/repository"
	"github.com/nexile/pharmacy-api/internal/domain/seed"
)

var _ repository.EntityStore = (*Store)(nil)

// Store guarda cada colección como su arreglo JSON serializado, igual que
// los adaptadores durables, para que la semántica de round-trip sea idéntica.
type Store struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// New crea un store vacío; cada colección se siembra en su primer acceso.
func New() *Store {
	return &Store{data: make(map[string][]byte)}
}

// getCollection devuelve la colección bajo key. Primer acceso → siembra y
// persiste. JSON corrupto → degrada a la semilla y lo deja en el log.
func getCollection[T any](s *Store, key string, seedFn func() []T) ([]T, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok := s.data[key]
	if !ok {
		items := seedFn()
		buf, err := json.Marshal(items)
		if err != nil {
			return nil, err
		}
		s.data[key] = buf
		return items, nil
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		log.Warn().Str("collection", key).Err(err).
			Msg("store: colección corrupta, degradando a datos semilla")
		items = seedFn()
		if buf, mErr := json.Marshal(items); mErr == nil {
			s.data[key] = buf
		}
		return items, nil
	}
	return items, nil
}

func putCollection[T any](s *Store, key string, items []T) error {
	buf, err := json.Marshal(items)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = buf
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

// Corrupt escribe bytes arbitrarios bajo una clave para ejercitar en tests
// la degradación a semilla.
func (s *Store) Corrupt(key string, raw []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = raw
}
