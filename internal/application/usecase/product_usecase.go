package usecase

import (
	"sync"

	"github.com/google/uuid"

	"github.com/nexile/pharmacy-api/internal/application/dto"
	"github.com/nexile/pharmacy-api/internal/application/scope"
	"github.com/nexile/pharmacy-api/internal/domain"
	"github.com/nexile/pharmacy-api/internal/domain/entity"
	"github.com/nexile/pharmacy-api/internal/domain/repository"
)

// ProductUseCase alta y listado de productos de inventario. El stock solo se
// muta por delta desde el punto de venta; no existe borrado de productos.
type ProductUseCase struct {
	store repository.EntityStore
	mu    sync.Mutex
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(store repository.EntityStore) *ProductUseCase {
	return &ProductUseCase{store: store}
}

// Create da de alta un producto en una sucursal del alcance del caller.
func (uc *ProductUseCase) Create(caller scope.Caller, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.SKU == "" || in.Name == "" || in.BranchID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Stock < 0 || in.MinStockLevel < 0 {
		return nil, domain.ErrInvalidInput
	}
	// Fuera de alcance se comporta como inexistente, nunca como fuga de
	// información de otras sucursales.
	if !scope.Allows(caller, in.BranchID) {
		return nil, domain.ErrNotFound
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	products, err := uc.store.Products()
	if err != nil {
		return nil, err
	}
	product := entity.Product{
		ID:            uuid.New().String(),
		Name:          in.Name,
		SKU:           in.SKU,
		Category:      in.Category,
		Price:         in.Price,
		Cost:          in.Cost,
		Stock:         in.Stock,
		MinStockLevel: in.MinStockLevel,
		ExpiryDate:    in.ExpiryDate,
		BranchID:      in.BranchID,
	}
	if err := uc.store.PutProducts(append(products, product)); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List devuelve los productos visibles para el caller, paginados.
func (uc *ProductUseCase) List(caller scope.Caller, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	products, err := uc.store.Products()
	if err != nil {
		return nil, err
	}
	visible := scope.Products(caller, products)

	start := page.Offset
	if start > len(visible) {
		start = len(visible)
	}
	end := start + page.Limit
	if end > len(visible) {
		end = len(visible)
	}
	items := make([]dto.ProductResponse, 0, end-start)
	for _, p := range visible[start:end] {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(visible)},
	}, nil
}

// GetByID devuelve un producto si está en el alcance del caller; fuera de
// alcance responde como no encontrado.
func (uc *ProductUseCase) GetByID(caller scope.Caller, id string) (*dto.ProductResponse, error) {
	products, err := uc.store.Products()
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		if p.ID == id {
			if !scope.Allows(caller, p.BranchID) {
				return nil, domain.ErrNotFound
			}
			return toProductResponse(p), nil
		}
	}
	return nil, domain.ErrNotFound
}

func toProductResponse(p entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		SKU:           p.SKU,
		Category:      p.Category,
		Price:         p.Price,
		Cost:          p.Cost,
		Stock:         p.Stock,
		MinStockLevel: p.MinStockLevel,
		ExpiryDate:    p.ExpiryDate,
		BranchID:      p.BranchID,
		LowStock:      p.IsLowStock(),
	}
}
