// Package scope implementa el filtrado de entidades por rol y afiliación de
// sucursal. Es el único lugar donde vive la regla de visibilidad: dashboards
// y reportes no reimplementan la comprobación de membresía.
package scope

import "github.com/nexile/pharmacy-api/internal/domain/entity"

// Caller es la identidad que el colaborador de autenticación entrega a cada
// llamada del núcleo. El núcleo nunca rederiva identidad por sí mismo.
type Caller struct {
	ID                string
	Role              string
	BranchID          string   // farmacéuticos
	AssignedBranchIDs []string // gerentes
}

// CallerFromUser construye el Caller a partir del usuario persistido.
func CallerFromUser(u entity.User) Caller {
	return Caller{
		ID:                u.ID,
		Role:              u.Role,
		BranchID:          u.BranchID,
		AssignedBranchIDs: u.AssignedBranchIDs,
	}
}

// Allows es el predicado polimórfico de visibilidad: decide si el caller
// puede ver registros de la sucursal dada. Los registros fuera de alcance se
// filtran en silencio, nunca se reportan como error: la ausencia de datos es
// indistinguible de la denegación de acceso.
func Allows(caller Caller, branchID string) bool {
	switch caller.Role {
	case entity.RoleOwner:
		return true
	case entity.RoleManager:
		for _, id := range caller.AssignedBranchIDs {
			if id == branchID {
				return true
			}
		}
		return false
	case entity.RolePharmacist:
		return caller.BranchID == branchID
	default:
		return false
	}
}

// Products devuelve los productos visibles para el caller. Función pura:
// no toca el store ni muta la lista de entrada. Un resultado vacío es válido.
func Products(caller Caller, products []entity.Product) []entity.Product {
	if caller.Role == entity.RoleOwner {
		return products
	}
	out := make([]entity.Product, 0, len(products))
	for _, p := range products {
		if Allows(caller, p.BranchID) {
			out = append(out, p)
		}
	}
	return out
}

// Transactions devuelve las transacciones visibles para el caller.
func Transactions(caller Caller, txs []entity.Transaction) []entity.Transaction {
	if caller.Role == entity.RoleOwner {
		return txs
	}
	out := make([]entity.Transaction, 0, len(txs))
	for _, t := range txs {
		if Allows(caller, t.BranchID) {
			out = append(out, t)
		}
	}
	return out
}

// Branches devuelve las sucursales visibles para el caller.
func Branches(caller Caller, branches []entity.Branch) []entity.Branch {
	if caller.Role == entity.RoleOwner {
		return branches
	}
	out := make([]entity.Branch, 0, len(branches))
	for _, b := range branches {
		if Allows(caller, b.ID) {
			out = append(out, b)
		}
	}
	return out
}
