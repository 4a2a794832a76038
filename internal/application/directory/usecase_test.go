package directory_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nexile/pharmacy-api/internal/application/directory"
	"github.com/nexile/pharmacy-api/internal/application/dto"
	"github.com/nexile/pharmacy-api/internal/application/scope"
	"github.com/nexile/pharmacy-api/internal/domain"
	"github.com/nexile/pharmacy-api/internal/domain/entity"
	"github.com/nexile/pharmacy-api/internal/infrastructure/memory"
)

var codigoRe = regexp.MustCompile(`^\d{4}$`)

func dirStore(t *testing.T) *memory.Store {
	t.Helper()
	store := memory.New()
	require.NoError(t, store.PutBranches([]entity.Branch{
		{ID: "b1", Name: "Centro"},
		{ID: "b2", Name: "Norte"},
	}))
	require.NoError(t, store.PutUsers([]entity.User{
		{ID: "u1", Name: "Alice", Email: "alice@x.com", Role: entity.RoleOwner},
		{ID: "u2", Name: "Bob", Email: "bob@x.com", Role: entity.RoleManager, AssignedBranchIDs: []string{"b1"}, AccessCode: "1234"},
		{ID: "u3", Name: "Charlie", Email: "charlie@x.com", Role: entity.RolePharmacist, BranchID: "b1"},
	}))
	return store
}

func TestCreateBranch_Alta(t *testing.T) {
	store := dirStore(t)
	uc := directory.NewUseCase(store)

	out, err := uc.CreateBranch("Sur", "Medellín")
	require.NoError(t, err)
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, "Sur", out.Name)

	branches, err := store.Branches()
	require.NoError(t, err)
	assert.Len(t, branches, 3)
}

func TestCreateBranch_NombreVacio(t *testing.T) {
	uc := directory.NewUseCase(dirStore(t))
	_, err := uc.CreateBranch("", "x")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAssignManager_Idempotente(t *testing.T) {
	store := dirStore(t)
	uc := directory.NewUseCase(store)

	require.NoError(t, uc.AssignManager("u2", "b2"))
	require.NoError(t, uc.AssignManager("u2", "b2"), "reasignar no es error")

	users, err := store.Users()
	require.NoError(t, err)
	for _, u := range users {
		if u.ID == "u2" {
			assert.Equal(t, []string{"b1", "b2"}, u.AssignedBranchIDs, "sin duplicados")
		}
	}
}

func TestAssignManager_GerenteOSucursalInexistente(t *testing.T) {
	uc := directory.NewUseCase(dirStore(t))

	assert.ErrorIs(t, uc.AssignManager("u-nope", "b1"), domain.ErrNotFound)
	assert.ErrorIs(t, uc.AssignManager("u2", "b-nope"), domain.ErrNotFound)
	// Un farmacéutico no es asignable como gerente.
	assert.ErrorIs(t, uc.AssignManager("u3", "b1"), domain.ErrNotFound)
}

func TestUnassignManager_NoOpSiNoAsignada(t *testing.T) {
	store := dirStore(t)
	uc := directory.NewUseCase(store)

	require.NoError(t, uc.UnassignManager("u2", "b2"), "quitar lo no asignado es no-op")
	require.NoError(t, uc.UnassignManager("u2", "b1"))

	users, err := store.Users()
	require.NoError(t, err)
	for _, u := range users {
		if u.ID == "u2" {
			assert.Empty(t, u.AssignedBranchIDs)
		}
	}

	assert.ErrorIs(t, uc.UnassignManager("u-nope", "b1"), domain.ErrNotFound)
}

// Eliminar una sucursal limpia en cascada las asignaciones de los gerentes;
// el gerente sobrevive con alcance reducido.
func TestDeleteBranch_CascadaSobreAsignaciones(t *testing.T) {
	store := dirStore(t)
	uc := directory.NewUseCase(store)

	require.NoError(t, uc.AssignManager("u2", "b2"))
	require.NoError(t, uc.DeleteBranch("b1"))

	branches, err := store.Branches()
	require.NoError(t, err)
	require.Len(t, branches, 1)
	assert.Equal(t, "b2", branches[0].ID)

	users, err := store.Users()
	require.NoError(t, err)
	for _, u := range users {
		if u.ID == "u2" {
			assert.Equal(t, []string{"b2"}, u.AssignedBranchIDs, "b1 removida, b2 intacta")
		}
	}
}

func TestDeleteBranch_Inexistente(t *testing.T) {
	uc := directory.NewUseCase(dirStore(t))
	assert.ErrorIs(t, uc.DeleteBranch("b-nope"), domain.ErrNotFound)
}

func TestListBranches_RespetaAlcance(t *testing.T) {
	uc := directory.NewUseCase(dirStore(t))

	all, err := uc.ListBranches(scope.Caller{Role: entity.RoleOwner})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := uc.ListBranches(scope.Caller{Role: entity.RoleManager, AssignedBranchIDs: []string{"b2"}})
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "b2", mine[0].ID)
}

func TestCreateManager_CodigoUnicoDeCuatroDigitos(t *testing.T) {
	store := dirStore(t)
	uc := directory.NewUseCase(store)

	out, err := uc.CreateManager(dto.CreateManagerRequest{Name: "Dana", Email: "dana@x.com"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleManager, out.User.Role)
	assert.Regexp(t, codigoRe, out.AccessCode)
	assert.NotEqual(t, "1234", out.AccessCode, "no colisiona con códigos vigentes")

	users, err := store.Users()
	require.NoError(t, err)
	assert.Len(t, users, 4)
}

func TestCreateManager_EmailDuplicado(t *testing.T) {
	uc := directory.NewUseCase(dirStore(t))
	_, err := uc.CreateManager(dto.CreateManagerRequest{Name: "Otro Bob", Email: "bob@x.com"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegenerateAccessCode_InvalidaElAnterior(t *testing.T) {
	store := dirStore(t)
	uc := directory.NewUseCase(store)

	code, err := uc.RegenerateAccessCode("u2")
	require.NoError(t, err)
	assert.Regexp(t, codigoRe, code)

	users, err := store.Users()
	require.NoError(t, err)
	for _, u := range users {
		if u.ID == "u2" {
			assert.Equal(t, code, u.AccessCode)
			assert.NotEqual(t, "1234", u.AccessCode)
		}
	}

	_, err = uc.RegenerateAccessCode("u-nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListManagers_SoloGerentes(t *testing.T) {
	uc := directory.NewUseCase(dirStore(t))
	out, err := uc.ListManagers()
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "u2", out[0].ID)
}

func TestDeleteUser(t *testing.T) {
	store := dirStore(t)
	uc := directory.NewUseCase(store)

	require.NoError(t, uc.DeleteUser("u3"))
	users, err := store.Users()
	require.NoError(t, err)
	assert.Len(t, users, 2)

	assert.ErrorIs(t, uc.DeleteUser("u-nope"), domain.ErrUserNotFound)
}
