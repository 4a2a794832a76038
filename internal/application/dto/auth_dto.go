package dto

import "time"

// LoginRequest credenciales de inicio de sesión. Los gerentes autentican por
// código de acceso; dueños y farmacéuticos por email y password.
type LoginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	AccessCode string `json:"access_code"`
	Role       string `json:"role"`
}

// RegisterRequest alta por auto-registro (dueño o farmacéutico).
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
	BranchID string `json:"branch_id"` // requerido para farmacéuticos
}

// UserResponse representación pública de un usuario (sin credenciales).
type UserResponse struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	Role               string    `json:"role"`
	BranchID           string    `json:"branch_id,omitempty"`
	AssignedBranchIDs  []string  `json:"assigned_branch_ids,omitempty"`
	SubscriptionStatus string    `json:"subscription_status"`
	TrialEndsAt        time.Time `json:"trial_ends_at"`
}

// LoginResponse token de sesión más el usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
