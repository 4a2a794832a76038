// Package postgres implementa el Entity Store sobre PostgreSQL: una fila
// jsonb por colección bajo su clave estable, leída y reescrita íntegra en
// cada mutación. Mantiene el mismo layout de estado persistido que el
// adaptador embebido.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"

	"github.com/nexile/pharmacy-api/internal/domain/entity"
	"github.com/nexile/pharmacy-api/internal/domain/repository"
	"github.com/nexile/pharmacy-api/internal/domain/seed"
)

var _ repository.EntityStore = (*Store)(nil)

// Store adaptador de persistencia de colecciones sobre un pool pgx.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore construye el adaptador y asegura la tabla de colecciones.
func NewStore(ctx context.Context, pool *pgxpool.Pool) (*Store, error) {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS collections (
			key  TEXT PRIMARY KEY,
			doc  JSONB NOT NULL
		)`)
	if err != nil {
		return nil, fmt.Errorf("postgres: crear tabla collections: %w", err)
	}
	return &Store{pool: pool}, nil
}

// getCollection lee la fila de la colección. Fila ausente → siembra dentro
// de la misma transacción. Documento corrupto → degrada a la semilla, la
// persiste y deja el evento en el log.
func getCollection[T any](s *Store, key string, seedFn func() []T) ([]T, error) {
	ctx := context.Background()
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("postgres: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var raw []byte
	err = tx.QueryRow(ctx, `SELECT doc FROM collections WHERE key = $1 FOR UPDATE`, key).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		items := seedFn()
		if err := upsertTx(ctx, tx, key, items); err != nil {
			return nil, err
		}
		if err := tx.Commit(ctx); err != nil {
			return nil, fmt.Errorf("postgres: commit siembra %s: %w", key, err)
		}
		return items, nil
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: leer %s: %w", key, err)
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		log.Warn().Str("collection", key).Err(err).
			Msg("store: colección corrupta, degradando a datos semilla")
		items = seedFn()
		if err := upsertTx(ctx, tx, key, items); err != nil {
			return nil, err
		}
		if err := tx.Commit(ctx); err != nil {
			return nil, fmt.Errorf("postgres: commit siembra %s: %w", key, err)
		}
		return items, nil
	}
	return items, nil
}

func putCollection[T any](s *Store, key string, items []T) error {
	buf, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("postgres: serializar %s: %w", key, err)
	}
	_, err = s.pool.Exec(context.Background(), `
		INSERT INTO collections (key, doc) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET doc = EXCLUDED.doc`, key, buf)
	if err != nil {
		return fmt.Errorf("postgres: escribir %s: %w", key, err)
	}
	return nil
}

func upsertTx[T any](ctx context.Context, tx pgx.Tx, key string, items []T) error {
	buf, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("postgres: serializar %s: %w", key, err)
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO collections (key, doc) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET doc = EXCLUDED.doc`, key, buf)
	if err != nil {
		return fmt.Errorf("postgres: sembrar %s: %w", key, err)
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
