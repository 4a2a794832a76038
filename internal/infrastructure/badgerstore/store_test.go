package badgerstore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexile/pharmacy-api/internal/domain/entity"
	"github.com/nexile/pharmacy-api/internal/infrastructure/badgerstore"
)

func openStore(t *testing.T) *badgerstore.Store {
	t.Helper()
	store, err := badgerstore.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestStore_SiembraYPersiste(t *testing.T) {
	store := openStore(t)

	branches, err := store.Branches()
	require.NoError(t, err)
	require.Len(t, branches, 2)

	products, err := store.Products()
	require.NoError(t, err)
	require.Len(t, products, 4)

	// Una mutación debe sobrevivir relecturas.
	products[0].Stock = 3
	require.NoError(t, store.PutProducts(products))

	releido, err := store.Products()
	require.NoError(t, err)
	assert.Equal(t, 3, releido[0].Stock)
}

func TestStore_RoundTripDeTransacciones(t *testing.T) {
	store := openStore(t)

	txs, err := store.Transactions()
	require.NoError(t, err)
	require.Empty(t, txs)

	require.NoError(t, store.PutTransactions([]entity.Transaction{{ID: "t1", BranchID: "b1"}}))
	releido, err := store.Transactions()
	require.NoError(t, err)
	require.Len(t, releido, 1)
	assert.Equal(t, "t1", releido[0].ID)
}

func TestStore_AbrirEnDirectorio(t *testing.T) {
	dir := t.TempDir()
	store, err := badgerstore.Open(dir)
	require.NoError(t, err)

	users, err := store.Users()
	require.NoError(t, err)
	require.Len(t, users, 3)
	require.NoError(t, store.Close())

	// Reabrir el mismo directorio conserva los datos sembrados.
	store2, err := badgerstore.Open(dir)
	require.NoError(t, err)
	defer store2.Close()

	users2, err := store2.Users()
	require.NoError(t, err)
	assert.Equal(t, len(users), len(users2))
}
