// Package pos implementa el procesador de transacciones del punto de venta:
// valida el carrito contra el stock actual y confirma la venta decrementando
// inventario como una unidad lógica.
package pos

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/nexile/pharmacy-api/internal/application/scope"
	"github.com/nexile/pharmacy-api/internal/domain"
	"github.com/nexile/pharmacy-api/internal/domain/entity"
	"github.com/nexile/pharmacy-api/internal/domain/repository"
)

// CartLine es una línea del carrito: producto y cantidad solicitada.
type CartLine struct {
	ProductID string
	Quantity  int
}

// CheckoutUseCase confirma ventas. La secuencia validar+decrementar se
// serializa por sucursal: dos checkouts concurrentes sobre el mismo producto
// no pueden pasar ambos la validación contra una lectura obsoleta.
type CheckoutUseCase struct {
	store repository.EntityStore

	mu       sync.Mutex
	byBranch map[string]*sync.Mutex
}

// NewCheckoutUseCase construye el procesador.
func NewCheckoutUseCase(store repository.EntityStore) *CheckoutUseCase {
	return &CheckoutUseCase{
		store:    store,
		byBranch: make(map[string]*sync.Mutex),
	}
}

func (uc *CheckoutUseCase) branchLock(branchID string) *sync.Mutex {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	m, ok := uc.byBranch[branchID]
	if !ok {
		m = &sync.Mutex{}
		uc.byBranch[branchID] = m
	}
	return m
}

// Checkout valida el carrito y, si pasa, registra la transacción y
// decrementa el stock de cada línea. Rechazo con cero mutación:
//   - carrito vacío → domain.ErrEmptyCart
//   - caller sin sucursal propia → domain.ErrForbidden
//   - demanda total mayor al stock actual → *domain.InsufficientStockError
//
// El precio de cada línea se congela desde el producto al momento del commit
// y el total se almacena, no se recalcula después.
func (uc *CheckoutUseCase) Checkout(ctx context.Context, caller scope.Caller, cart []CartLine) (*entity.Transaction, error) {
	if len(cart) == 0 {
		return nil, domain.ErrEmptyCart
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	// La venta se registra contra la sucursal del caller; sin sucursal no hay
	// dónde imputarla.
	branchID := caller.BranchID
	if branchID == "" {
		return nil, domain.ErrForbidden
	}

	lock := uc.branchLock(branchID)
	lock.Lock()
	defer lock.Unlock()

	// Validación contra el store en el momento del commit, no contra la
	// lectura con la que se armó el carrito.
	products, err := uc.store.Products()
	if err != nil {
		return nil, fmt.Errorf("checkout: leer productos: %w", err)
	}
	byID := make(map[string]int, len(products)) // id → índice en products
	for i, p := range products {
		byID[p.ID] = i
	}
	// La demanda se agrega por producto: líneas duplicadas compiten por el
	// mismo stock y se validan como una sola, en orden de carrito.
	demand := make(map[string]int, len(cart))
	for _, line := range cart {
		if line.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		idx, ok := byID[line.ProductID]
		if !ok {
			return nil, domain.ErrNotFound
		}
		demand[line.ProductID] += line.Quantity
		if p := products[idx]; demand[line.ProductID] > p.Stock {
			return nil, &domain.InsufficientStockError{
				ProductID: p.ID,
				Requested: demand[line.ProductID],
				Available: p.Stock,
			}
		}
	}

	now := time.Now()
	tx := entity.Transaction{
		ID:           newTransactionID(now),
		Date:         now,
		BranchID:     branchID,
		PharmacistID: caller.ID,
		StockSync:    entity.StockSyncOK,
		Items:        make([]entity.TransactionItem, 0, len(cart)),
	}
	total := decimal.Zero
	for _, line := range cart {
		p := products[byID[line.ProductID]]
		tx.Items = append(tx.Items, entity.TransactionItem{
			ProductID:   p.ID,
			ProductName: p.Name,
			Quantity:    line.Quantity,
			Price:       p.Price,
		})
		total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	tx.Total = total

	// Commit en dos fases: primero la transacción, luego el decremento de
	// stock. Si el decremento falla la venta registrada se conserva pero se
	// marca STOCK_SYNC_FAILED para conciliación posterior.
	txs, err := uc.store.Transactions()
	if err != nil {
		return nil, fmt.Errorf("checkout: leer transacciones: %w", err)
	}
	txs = append(txs, tx)
	if err := uc.store.PutTransactions(txs); err != nil {
		return nil, fmt.Errorf("checkout: registrar transacción: %w", err)
	}

	for _, line := range cart {
		products[byID[line.ProductID]].Stock -= line.Quantity
	}
	if err := uc.store.PutProducts(products); err != nil {
		log.Warn().
			Str("transaction_id", tx.ID).
			Str("branch_id", branchID).
			Err(err).
			Msg("checkout: transacción registrada pero el decremento de stock falló; marcando para conciliación")
		tx.StockSync = entity.StockSyncFailed
		txs[len(txs)-1].StockSync = entity.StockSyncFailed
		if err := uc.store.PutTransactions(txs); err != nil {
			log.Error().Str("transaction_id", tx.ID).Err(err).
				Msg("checkout: no se pudo persistir la marca de conciliación")
		}
	}

	return &tx, nil
}

// newTransactionID genera un id único con orden temporal aproximado:
// timestamp más sufijo aleatorio para evitar colisiones.
func newTransactionID(now time.Time) string {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("tx-%d", now.UnixNano())
	}
	return fmt.Sprintf("tx-%d-%s", now.UnixNano(), hex.EncodeToString(buf))
}
