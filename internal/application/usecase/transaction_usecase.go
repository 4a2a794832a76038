package usecase

import (
	"github.com/nexile/pharmacy-api/internal/application/dto"
	"github.com/nexile/pharmacy-api/internal/application/scope"
	"github.com/nexile/pharmacy-api/internal/domain/entity"
	"github.com/nexile/pharmacy-api/internal/domain/repository"
)

// TransactionUseCase lectura de ventas registradas. Las transacciones son
// inmutables: no hay update ni delete.
type TransactionUseCase struct {
	store repository.EntityStore
}

// NewTransactionUseCase construye el caso de uso.
func NewTransactionUseCase(store repository.EntityStore) *TransactionUseCase {
	return &TransactionUseCase{store: store}
}

// List devuelve las ventas visibles para el caller.
func (uc *TransactionUseCase) List(caller scope.Caller) (*dto.TransactionListResponse, error) {
	txs, err := uc.store.Transactions()
	if err != nil {
		return nil, err
	}
	visible := scope.Transactions(caller, txs)
	items := make([]dto.TransactionResponse, 0, len(visible))
	for _, t := range visible {
		items = append(items, *toTransactionResponse(t))
	}
	return &dto.TransactionListResponse{Items: items}, nil
}

// Scoped devuelve las entidades visibles para el caller, para colaboradores
// de exportación que consumen datos planos.
func (uc *TransactionUseCase) Scoped(caller scope.Caller) ([]entity.Transaction, error) {
	txs, err := uc.store.Transactions()
	if err != nil {
		return nil, err
	}
	return scope.Transactions(caller, txs), nil
}

func toTransactionResponse(t entity.Transaction) *dto.TransactionResponse {
	items := make([]dto.TransactionItemResponse, 0, len(t.Items))
	for _, it := range t.Items {
		items = append(items, dto.TransactionItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			Price:       it.Price,
		})
	}
	return &dto.TransactionResponse{
		ID:           t.ID,
		Date:         t.Date,
		Total:        t.Total,
		BranchID:     t.BranchID,
		PharmacistID: t.PharmacistID,
		Items:        items,
	}
}
