// Package directory administra el ciclo de vida de sucursales y la
// asignación de gerentes, incluida la limpieza en cascada al eliminar.
package directory

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nexile/pharmacy-api/internal/application/dto"
	"github.com/nexile/pharmacy-api/internal/application/scope"
	"github.com/nexile/pharmacy-api/internal/domain"
	"github.com/nexile/pharmacy-api/internal/domain/entity"
	"github.com/nexile/pharmacy-api/internal/domain/repository"
)

// UseCase casos de uso de directorio: sucursales, gerentes y asignaciones.
// Las mutaciones leen-modifican-escriben colecciones completas, por lo que se
// serializan con un mutex propio.
type UseCase struct {
	store repository.EntityStore
	mu    sync.Mutex
}

// NewUseCase construye el caso de uso.
func NewUseCase(store repository.EntityStore) *UseCase {
	return &UseCase{store: store}
}

// CreateBranch da de alta una sucursal.
func (uc *UseCase) CreateBranch(name, location string) (*dto.BranchResponse, error) {
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()

	branches, err := uc.store.Branches()
	if err != nil {
		return nil, err
	}
	branch := entity.Branch{ID: uuid.New().String(), Name: name, Location: location}
	if err := uc.store.PutBranches(append(branches, branch)); err != nil {
		return nil, err
	}
	return toBranchResponse(branch), nil
}

// DeleteBranch elimina la sucursal y quita su id de la lista de asignaciones
// de todos los gerentes. Productos y transacciones que la referencian NO se
// eliminan en cascada; quedan como referencias huérfanas.
func (uc *UseCase) DeleteBranch(id string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	branches, err := uc.store.Branches()
	if err != nil {
		return err
	}
	kept := branches[:0:0]
	found := false
	for _, b := range branches {
		if b.ID == id {
			found = true
			continue
		}
		kept = append(kept, b)
	}
	if !found {
		return domain.ErrNotFound
	}
	if err := uc.store.PutBranches(kept); err != nil {
		return err
	}

	users, err := uc.store.Users()
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].Role != entity.RoleManager {
			continue
		}
		assigned := users[i].AssignedBranchIDs[:0:0]
		for _, bid := range users[i].AssignedBranchIDs {
			if bid != id {
				assigned = append(assigned, bid)
			}
		}
		users[i].AssignedBranchIDs = assigned
	}
	return uc.store.PutUsers(users)
}

// ListBranches devuelve las sucursales visibles para el caller.
func (uc *UseCase) ListBranches(caller scope.Caller) ([]dto.BranchResponse, error) {
	branches, err := uc.store.Branches()
	if err != nil {
		return nil, err
	}
	visible := scope.Branches(caller, branches)
	out := make([]dto.BranchResponse, 0, len(visible))
	for _, b := range visible {
		out = append(out, *toBranchResponse(b))
	}
	return out, nil
}

// AssignManager asigna la sucursal al gerente. Idempotente: asignar una
// sucursal ya asignada no es error. Gerente o sucursal inexistentes → ErrNotFound.
func (uc *UseCase) AssignManager(managerID, branchID string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	branches, err := uc.store.Branches()
	if err != nil {
		return err
	}
	branchExists := false
	for _, b := range branches {
		if b.ID == branchID {
			branchExists = true
			break
		}
	}
	if !branchExists {
		return domain.ErrNotFound
	}

	users, err := uc.store.Users()
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].ID != managerID || users[i].Role != entity.RoleManager {
			continue
		}
		if users[i].IsAssignedTo(branchID) {
			return nil
		}
		users[i].AssignedBranchIDs = append(users[i].AssignedBranchIDs, branchID)
		return uc.store.PutUsers(users)
	}
	return domain.ErrNotFound
}

// UnassignManager quita la sucursal de la lista del gerente. Quitar una
// sucursal no asignada es no-op.
func (uc *UseCase) UnassignManager(managerID, branchID string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	users, err := uc.store.Users()
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].ID != managerID || users[i].Role != entity.RoleManager {
			continue
		}
		assigned := users[i].AssignedBranchIDs[:0:0]
		for _, bid := range users[i].AssignedBranchIDs {
			if bid != branchID {
				assigned = append(assigned, bid)
			}
		}
		users[i].AssignedBranchIDs = assigned
		return uc.store.PutUsers(users)
	}
	return domain.ErrNotFound
}

// CreateManager da de alta un gerente con un código de acceso nuevo. El
// código se devuelve en claro una única vez.
func (uc *UseCase) CreateManager(in dto.CreateManagerRequest) (*dto.ManagerCreatedResponse, error) {
	if in.Email == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	uc.mu.Lock()
	defer uc.mu.Unlock()

	users, err := uc.store.Users()
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Email == in.Email {
			return nil, domain.ErrEmailAlreadyExists
		}
	}
	code, err := generateAccessCode(users)
	if err != nil {
		return nil, err
	}
	manager := entity.User{
		ID:                 uuid.New().String(),
		Name:               in.Name,
		Email:              in.Email,
		Role:               entity.RoleManager,
		AccessCode:         code,
		SubscriptionStatus: entity.SubscriptionActive,
		TrialEndsAt:        time.Now(),
	}
	if err := uc.store.PutUsers(append(users, manager)); err != nil {
		return nil, err
	}
	return &dto.ManagerCreatedResponse{User: *toUserResponse(manager), AccessCode: code}, nil
}

// RegenerateAccessCode emite un código nuevo para el gerente e invalida el
// anterior.
func (uc *UseCase) RegenerateAccessCode(managerID string) (string, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	users, err := uc.store.Users()
	if err != nil {
		return "", err
	}
	for i := range users {
		if users[i].ID != managerID || users[i].Role != entity.RoleManager {
			continue
		}
		code, err := generateAccessCode(users)
		if err != nil {
			return "", err
		}
		users[i].AccessCode = code
		if err := uc.store.PutUsers(users); err != nil {
			return "", err
		}
		return code, nil
	}
	return "", domain.ErrNotFound
}

// ListManagers devuelve todos los gerentes (solo dueño).
func (uc *UseCase) ListManagers() ([]dto.UserResponse, error) {
	users, err := uc.store.Users()
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0)
	for _, u := range users {
		if u.Role == entity.RoleManager {
			out = append(out, *toUserResponse(u))
		}
	}
	return out, nil
}

// DeleteUser elimina un usuario por id.
func (uc *UseCase) DeleteUser(id string) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	users, err := uc.store.Users()
	if err != nil {
		return err
	}
	kept := users[:0:0]
	found := false
	for _, u := range users {
		if u.ID == id {
			found = true
			continue
		}
		kept = append(kept, u)
	}
	if !found {
		return domain.ErrUserNotFound
	}
	return uc.store.PutUsers(kept)
}

// generateAccessCode produce un código numérico de 4 dígitos que no colisiona
// con el de ningún gerente actual.
func generateAccessCode(users []entity.User) (string, error) {
	inUse := make(map[string]bool)
	for _, u := range users {
		if u.Role == entity.RoleManager && u.AccessCode != "" {
			inUse[u.AccessCode] = true
		}
	}
	for attempts := 0; attempts < 10000; attempts++ {
		n, err := rand.Int(rand.Reader, big.NewInt(9000))
		if err != nil {
			return "", fmt.Errorf("generar código de acceso: %w", err)
		}
		code := fmt.Sprintf("%04d", n.Int64()+1000)
		if !inUse[code] {
			return code, nil
		}
	}
	// 9000 códigos posibles; solo alcanzable con el espacio casi agotado.
	return "", fmt.Errorf("generar código de acceso: espacio de códigos agotado")
}

func toBranchResponse(b entity.Branch) *dto.BranchResponse {
	return &dto.BranchResponse{ID: b.ID, Name: b.Name, Location: b.Location}
}

func toUserResponse(u entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:                 u.ID,
		Name:               u.Name,
		Email:              u.Email,
		Role:               u.Role,
		BranchID:           u.BranchID,
		AssignedBranchIDs:  u.AssignedBranchIDs,
		SubscriptionStatus: u.SubscriptionStatus,
		TrialEndsAt:        u.TrialEndsAt,
	}
}
