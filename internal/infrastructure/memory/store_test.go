package memory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexile/pharmacy-api/internal/domain/entity"
	"github.com/nexile/pharmacy-api/internal/domain/repository"
	"github.com/nexile/pharmacy-api/internal/infrastructure/memory"
)

func TestStore_SiembraEnPrimerAcceso(t *testing.T) {
	store := memory.New()

	branches, err := store.Branches()
	require.NoError(t, err)
	require.Len(t, branches, 2, "dataset semilla")
	assert.Equal(t, "b1", branches[0].ID)

	users, err := store.Users()
	require.NoError(t, err)
	assert.Len(t, users, 3)

	txs, err := store.Transactions()
	require.NoError(t, err)
	assert.Empty(t, txs, "las ventas arrancan vacías")
}

func TestStore_LaSemillaQuedaPersistida(t *testing.T) {
	store := memory.New()

	products, err := store.Products()
	require.NoError(t, err)
	require.NotEmpty(t, products)

	// Una mutación posterior debe partir de la semilla ya persistida, no
	// regenerarla.
	products[0].Stock = 7
	require.NoError(t, store.PutProducts(products))

	releido, err := store.Products()
	require.NoError(t, err)
	assert.Equal(t, 7, releido[0].Stock, "lecturas posteriores son estables")
}

func TestStore_JSONCorruptoDegradaASemilla(t *testing.T) {
	store := memory.New()
	store.Corrupt(repository.KeyProducts, []byte("{esto no es un arreglo"))

	products, err := store.Products()
	require.NoError(t, err, "la corrupción nunca se propaga al caller")
	require.Len(t, products, 4, "dataset semilla restaurado")

	// La semilla restaurada reemplaza los bytes corruptos.
	releido, err := store.Products()
	require.NoError(t, err)
	assert.Equal(t, products, releido)
}

func TestStore_RoundTripConDecimales(t *testing.T) {
	store := memory.New()

	products, err := store.Products()
	require.NoError(t, err)
	original := products[0].Price

	require.NoError(t, store.PutProducts(products))
	releido, err := store.Products()
	require.NoError(t, err)
	assert.True(t, original.Equal(releido[0].Price), "decimal sobrevive el round-trip JSON")
}

func TestStore_ColeccionesIndependientes(t *testing.T) {
	store := memory.New()
	store.Corrupt(repository.KeyUsers, []byte("xxx"))

	// Corromper users no afecta branches.
	branches, err := store.Branches()
	require.NoError(t, err)
	assert.Len(t, branches, 2)

	require.NoError(t, store.PutUsers([]entity.User{{ID: "solo"}}))
	users, err := store.Users()
	require.NoError(t, err)
	assert.Len(t, users, 1)
}
