package badgerstore

import (
	"testing"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexile/pharmacy-api/internal/domain/repository"
)

// Una colección con JSON ilegible degrada a la semilla y la persiste:
// disponibilidad sobre consistencia, igual que con clave ausente.
func TestGetCollection_ColeccionCorruptaDegradaASemilla(t *testing.T) {
	store, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(repository.KeyProducts), []byte("{esto no es json"))
	}))

	products, err := store.Products()
	require.NoError(t, err)
	require.Len(t, products, 4, "semilla completa en lugar de error")

	// La semilla quedó escrita: la relectura ya no pasa por la degradación.
	var raw []byte
	require.NoError(t, store.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(repository.KeyProducts))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	}))
	assert.NotEqual(t, "{esto no es json", string(raw))

	releido, err := store.Products()
	require.NoError(t, err)
	assert.Equal(t, len(products), len(releido))
}
