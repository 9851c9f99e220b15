package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/pos-backend/internal/application/dto"
	"github.com/tu-usuario/pos-backend/internal/application/inventory"
	"github.com/tu-usuario/pos-backend/internal/domain"
	"github.com/tu-usuario/pos-backend/internal/domain/entity"
	"github.com/tu-usuario/pos-backend/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	r := &fakeProductRepo{products: map[string]*entity.Product{}}
	for _, p := range products {
		cp := *p
		r.products[p.ID] = &cp
	}
	return r
}

func (r *fakeProductRepo) Create(p *entity.Product) error { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}
func (r *fakeProductRepo) GetBySKU(string) (*entity.Product, error) { return nil, nil }
func (r *fakeProductRepo) Update(p *entity.Product) error           { r.products[p.ID] = p; return nil }
func (r *fakeProductRepo) List(repository.ProductFilter) ([]*entity.Product, int, error) {
	return nil, 0, nil
}
func (r *fakeProductRepo) Delete(string) error { return nil }
func (r *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}
func (r *fakeProductRepo) UpdateStock(id string, quantity int64) error {
	p, ok := r.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.StockQuantity = quantity
	return nil
}
func (r *fakeProductRepo) Summary() (*repository.InventorySummary, error) {
	return &repository.InventorySummary{}, nil
}

type fakeLogRepo struct {
	entries []*entity.InventoryLogEntry
}

func (r *fakeLogRepo) Create(e *entity.InventoryLogEntry) error {
	r.entries = append(r.entries, e)
	return nil
}
func (r *fakeLogRepo) GetByID(id string) (*entity.InventoryLogEntry, error) {
	for _, e := range r.entries {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, nil
}
func (r *fakeLogRepo) List(repository.InventoryLogFilter) ([]*entity.InventoryLogEntry, int, error) {
	return r.entries, len(r.entries), nil
}
func (r *fakeLogRepo) HistoryByProduct(productID string, limit int) ([]*entity.InventoryLogEntry, error) {
	var out []*entity.InventoryLogEntry
	for _, e := range r.entries {
		if e.ProductID == productID {
			out = append(out, e)
		}
	}
	return out, nil
}

// fakeTxRunner ejecuta la función directamente sobre los fakes; suficiente para
// verificar la lógica del ledger, el rollback real lo cubre la base de datos.
type fakeTxRunner struct {
	products *fakeProductRepo
	logs     *fakeLogRepo
}

func (t *fakeTxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	logRepo repository.InventoryLogRepository,
) error) error {
	return fn(t.products, t.logs)
}

func testProduct(id string, stock int64) *entity.Product {
	return &entity.Product{
		ID:            id,
		SKU:           "SKU-" + id,
		Name:          "Producto " + id,
		Price:         decimal.NewFromInt(10),
		StockQuantity: stock,
		MinStockLevel: 2,
		IsActive:      true,
	}
}

func newTestUseCase(products ...*entity.Product) (*inventory.UseCase, *fakeProductRepo, *fakeLogRepo) {
	productRepo := newFakeProductRepo(products...)
	logRepo := &fakeLogRepo{}
	uc := inventory.NewUseCase(&fakeTxRunner{products: productRepo, logs: logRepo}, productRepo, logRepo)
	return uc, productRepo, logRepo
}

// ──────────────────────────────────────────────────────────────────────────────
// Apply
// ──────────────────────────────────────────────────────────────────────────────

func TestApply_VentaDescuentaStock(t *testing.T) {
	uc, productRepo, logRepo := newTestUseCase(testProduct("p1", 10))

	entry, err := uc.Apply(context.Background(), "u1", dto.ApplyInventoryRequest{
		ProductID:      "p1",
		Action:         entity.InventoryActionSale,
		QuantityChange: -3,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(10), entry.QuantityBefore)
	assert.Equal(t, int64(7), entry.QuantityAfter)
	assert.Equal(t, entry.QuantityAfter, entry.QuantityBefore+entry.QuantityChange,
		"after debe ser before + change")

	p, _ := productRepo.GetByID("p1")
	assert.Equal(t, int64(7), p.StockQuantity, "el contador del producto debe reflejar la entrada")
	assert.Len(t, logRepo.entries, 1)
}

func TestApply_StockInsuficienteNoEscribeNada(t *testing.T) {
	uc, productRepo, logRepo := newTestUseCase(testProduct("p1", 2))

	_, err := uc.Apply(context.Background(), "u1", dto.ApplyInventoryRequest{
		ProductID:      "p1",
		Action:         entity.InventoryActionSale,
		QuantityChange: -5,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	p, _ := productRepo.GetByID("p1")
	assert.Equal(t, int64(2), p.StockQuantity, "el stock no debe cambiar si la operación se rechaza")
	assert.Empty(t, logRepo.entries, "no debe quedar entrada en el ledger")
}

func TestApply_CompraAumentaStock(t *testing.T) {
	uc, productRepo, _ := newTestUseCase(testProduct("p1", 0))

	entry, err := uc.Apply(context.Background(), "u1", dto.ApplyInventoryRequest{
		ProductID:      "p1",
		Action:         entity.InventoryActionPurchase,
		QuantityChange: 25,
		Notes:          "Reposición",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(25), entry.QuantityAfter)

	p, _ := productRepo.GetByID("p1")
	assert.Equal(t, int64(25), p.StockQuantity)
}

func TestApply_AccionDesconocidaRechazada(t *testing.T) {
	uc, _, _ := newTestUseCase(testProduct("p1", 10))

	_, err := uc.Apply(context.Background(), "u1", dto.ApplyInventoryRequest{
		ProductID:      "p1",
		Action:         "teleport",
		QuantityChange: -1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApply_ProductoInexistente(t *testing.T) {
	uc, _, _ := newTestUseCase()

	_, err := uc.Apply(context.Background(), "u1", dto.ApplyInventoryRequest{
		ProductID:      "nope",
		Action:         entity.InventoryActionSale,
		QuantityChange: -1,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// AdjustTo
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjustTo_DerivaElDelta(t *testing.T) {
	uc, productRepo, logRepo := newTestUseCase(testProduct("p1", 10))

	entry, err := uc.AdjustTo(context.Background(), "u1", dto.AdjustStockRequest{
		ProductID:   "p1",
		NewQuantity: 4,
		Notes:       "Conteo físico",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.InventoryActionAdjustment, entry.Action)
	assert.Equal(t, int64(-6), entry.QuantityChange, "delta = nuevo - actual")
	assert.Equal(t, int64(4), entry.QuantityAfter)

	p, _ := productRepo.GetByID("p1")
	assert.Equal(t, int64(4), p.StockQuantity)
	assert.Len(t, logRepo.entries, 1)
}

func TestAdjustTo_SinCambioRechazado(t *testing.T) {
	uc, _, logRepo := newTestUseCase(testProduct("p1", 10))

	_, err := uc.AdjustTo(context.Background(), "u1", dto.AdjustStockRequest{
		ProductID:   "p1",
		NewQuantity: 10,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, logRepo.entries)
}

func TestAdjustTo_CantidadNegativaRechazada(t *testing.T) {
	uc, _, _ := newTestUseCase(testProduct("p1", 10))

	_, err := uc.AdjustTo(context.Background(), "u1", dto.AdjustStockRequest{
		ProductID:   "p1",
		NewQuantity: -1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// History
// ──────────────────────────────────────────────────────────────────────────────

func TestHistory_EncadenaBeforeAfter(t *testing.T) {
	uc, _, _ := newTestUseCase(testProduct("p1", 0))

	ctx := context.Background()
	deltas := []int64{10, -3, -2, 5}
	for _, d := range deltas {
		action := entity.InventoryActionPurchase
		if d < 0 {
			action = entity.InventoryActionSale
		}
		_, err := uc.Apply(ctx, "u1", dto.ApplyInventoryRequest{
			ProductID:      "p1",
			Action:         action,
			QuantityChange: d,
		})
		require.NoError(t, err)
	}

	history, err := uc.History(ctx, "p1", 10)
	require.NoError(t, err)
	require.Len(t, history, len(deltas))

	// Cada entrada parte del after de la anterior.
	for i := 1; i < len(history); i++ {
		assert.Equal(t, history[i-1].QuantityAfter, history[i].QuantityBefore,
			"entrada %d debe partir del after de la entrada %d", i, i-1)
	}
	assert.Equal(t, int64(10), history[len(history)-1].QuantityAfter)
}
