package entity

import "time"

// Roles válidos para User.
const (
	RoleOwner      = "OWNER"
	RoleManager    = "MANAGER"
	RolePharmacist = "PHARMACIST"
)

// Estados de suscripción.
const (
	SubscriptionActive  = "active"
	SubscriptionTrial   = "trial"
	SubscriptionExpired = "expired"
)

// User representa un usuario del sistema. Por rol solo un campo de afiliación
// es significativo: BranchID para farmacéuticos, AssignedBranchIDs para
// gerentes; los dueños no tienen ninguno.
type User struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"` // único en toda la colección
	Role               string    `json:"role"`  // OWNER, MANAGER, PHARMACIST
	BranchID           string    `json:"branchId,omitempty"`
	AssignedBranchIDs  []string  `json:"assignedBranchIds,omitempty"`
	PasswordHash       string    `json:"passwordHash,omitempty"` // bcrypt; vacío para gerentes
	AccessCode         string    `json:"accessCode,omitempty"`   // código numérico de 4 dígitos (gerentes)
	SubscriptionStatus string    `json:"subscriptionStatus"`
	TrialEndsAt        time.Time `json:"trialEndsAt"`
}

// IsAssignedTo indica si el gerente tiene asignada la sucursal.
func (u *User) IsAssignedTo(branchID string) bool {
	for _, id := range u.AssignedBranchIDs {
		if id == branchID {
			return true
		}
	}
	return false
}
