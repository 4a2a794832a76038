package repository

import "github.com/nexile/pharmacy-api/internal/domain/entity"

// Claves estables de las colecciones persistidas. Cada una guarda un arreglo
// JSON completo que se lee y reescribe íntegro en cada mutación.
const (
	KeyBranches     = "nexile_branches"
	KeyUsers        = "nexile_users"
	KeyProducts     = "nexile_products"
	KeyTransactions = "nexile_transactions"
)

// EntityStore define el puerto de persistencia clave-valor para las cuatro
// colecciones (DIP). Es el único dueño de las entidades persistidas: ningún
// componente muta una lista recuperada sin reescribirla con Put.
//
// Semántica de primer acceso: una colección vacía se puebla con el dataset
// semilla y se persiste de inmediato, de modo que lecturas posteriores sean
// estables. Un fallo de deserialización degrada a la semilla (disponibilidad
// sobre consistencia) y se registra, nunca se propaga al caller.
type EntityStore interface {
	Branches() ([]entity.Branch, error)
	PutBranches([]entity.Branch) error

	Users() ([]entity.User, error)
	PutUsers([]entity.User) error

	Products() ([]entity.Product, error)
	PutProducts([]entity.Product) error

	Transactions() ([]entity.Transaction, error)
	PutTransactions([]entity.Transaction) error
}
