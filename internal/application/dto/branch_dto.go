package dto

// CreateBranchRequest alta de sucursal (solo dueño).
type CreateBranchRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

// BranchResponse representación pública de una sucursal.
type BranchResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

// AssignManagerRequest asignación o desasignación gerente-sucursal.
type AssignManagerRequest struct {
	ManagerID string `json:"manager_id"`
	BranchID  string `json:"branch_id"`
}

// ManagerCreatedResponse alta de gerente: usuario más su código de acceso en
// claro, visible una única vez para entregarlo fuera de banda.
type ManagerCreatedResponse struct {
	User       UserResponse `json:"user"`
	AccessCode string       `json:"access_code"`
}

// CreateManagerRequest alta de gerente por el dueño.
type CreateManagerRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
