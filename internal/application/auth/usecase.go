// Package auth implementa el colaborador de autenticación. La verificación
// de credenciales es un concern intercambiable: el núcleo solo consume el
// Caller que este paquete produce.
package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/nexile/pharmacy-api/internal/application/dto"
	"github.com/nexile/pharmacy-api/internal/domain"
	"github.com/nexile/pharmacy-api/internal/domain/entity"
	"github.com/nexile/pharmacy-api/internal/domain/repository"
	"github.com/nexile/pharmacy-api/pkg/jwt"
)

const trialDays = 30

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	store  repository.EntityStore
	jwtCfg JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(store repository.EntityStore, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{store: store, jwtCfg: jwtCfg}
}

// Register autoregistra un dueño o farmacéutico: hashea el password con
// bcrypt y persiste con suscripción de prueba. Los gerentes no se registran
// por aquí: los da de alta el dueño con código de acceso (directory).
func (uc *AuthUseCase) Register(in dto.RegisterRequest) (*dto.UserResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Role != entity.RoleOwner && in.Role != entity.RolePharmacist {
		return nil, domain.ErrInvalidInput
	}
	if in.Role == entity.RolePharmacist && in.BranchID == "" {
		return nil, domain.ErrInvalidInput
	}

	users, err := uc.store.Users()
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if strings.EqualFold(u.Email, in.Email) {
			return nil, domain.ErrEmailAlreadyExists
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	name := in.Name
	if name == "" {
		name = in.Email
	}
	user := entity.User{
		ID:                 uuid.New().String(),
		Name:               name,
		Email:              in.Email,
		Role:               in.Role,
		PasswordHash:       string(hash),
		SubscriptionStatus: entity.SubscriptionTrial,
		TrialEndsAt:        time.Now().Add(trialDays * 24 * time.Hour),
	}
	if in.Role == entity.RolePharmacist {
		user.BranchID = in.BranchID
	}
	if err := uc.store.PutUsers(append(users, user)); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Login autentica según rol y genera el JWT de sesión:
//   - MANAGER: coincidencia por código de acceso.
//   - OWNER / PHARMACIST: email (case-insensitive) + rol + bcrypt.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	users, err := uc.store.Users()
	if err != nil {
		return nil, err
	}

	var user *entity.User
	if in.Role == entity.RoleManager {
		for i := range users {
			if users[i].Role == entity.RoleManager && in.AccessCode != "" && users[i].AccessCode == in.AccessCode {
				user = &users[i]
				break
			}
		}
		if user == nil {
			return nil, domain.ErrUnauthorized
		}
	} else {
		for i := range users {
			if strings.EqualFold(users[i].Email, in.Email) && users[i].Role == in.Role {
				user = &users[i]
				break
			}
		}
		if user == nil {
			return nil, domain.ErrUserNotFound
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
			return nil, domain.ErrUnauthorized
		}
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: *toUserResponse(*user)}, nil
}

// GetUser carga el usuario por id (para reconstruir el Caller por request).
func (uc *AuthUseCase) GetUser(id string) (*entity.User, error) {
	users, err := uc.store.Users()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// HasActiveSubscription indica si la cuenta puede operar: suscripción activa
// o trial aún no vencido. Gerentes y farmacéuticos heredan la vigencia de su
// propia ficha, que el dueño administra al darlos de alta.
func (uc *AuthUseCase) HasActiveSubscription(_ context.Context, userID string) (bool, error) {
	user, err := uc.GetUser(userID)
	if err != nil {
		return false, err
	}
	switch user.SubscriptionStatus {
	case entity.SubscriptionActive:
		return true, nil
	case entity.SubscriptionTrial:
		return user.TrialEndsAt.IsZero() || time.Now().Before(user.TrialEndsAt), nil
	default:
		return false, nil
	}
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
