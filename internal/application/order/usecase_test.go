package order_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/pos-backend/internal/application/dto"
	"github.com/tu-usuario/pos-backend/internal/application/order"
	"github.com/tu-usuario/pos-backend/internal/domain"
	"github.com/tu-usuario/pos-backend/internal/domain/entity"
	"github.com/tu-usuario/pos-backend/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Store en memoria con semántica transaccional: RunOrder trabaja sobre una
// copia y solo la publica si la función termina sin error. Así los tests de
// rollback verifican que un fallo a mitad de pedido no deja estado parcial.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	products  map[string]*entity.Product
	orders    map[string]*entity.Order
	items     map[string][]*entity.OrderItem
	logs      []*entity.InventoryLogEntry
	customers map[string]*entity.Customer
	points    map[string]int64
	mails     []string // destinatarios de confirmaciones enviadas
}

func newMemStore() *memStore {
	return &memStore{
		products:  map[string]*entity.Product{},
		orders:    map[string]*entity.Order{},
		items:     map[string][]*entity.OrderItem{},
		customers: map[string]*entity.Customer{},
		points:    map[string]int64{},
	}
}

func (s *memStore) clone() *memStore {
	c := newMemStore()
	for k, v := range s.products {
		cp := *v
		c.products[k] = &cp
	}
	for k, v := range s.orders {
		cp := *v
		c.orders[k] = &cp
	}
	for k, v := range s.items {
		c.items[k] = append([]*entity.OrderItem{}, v...)
	}
	c.logs = append([]*entity.InventoryLogEntry{}, s.logs...)
	for k, v := range s.customers {
		cp := *v
		c.customers[k] = &cp
	}
	for k, v := range s.points {
		c.points[k] = v
	}
	c.mails = append([]string{}, s.mails...)
	return c
}

func (s *memStore) replaceWith(o *memStore) {
	s.products, s.orders, s.items = o.products, o.orders, o.items
	s.logs, s.customers, s.points, s.mails = o.logs, o.customers, o.points, o.mails
}

// ── Repos sobre el store ──

type storeProductRepo struct{ s *memStore }

func (r storeProductRepo) Create(p *entity.Product) error { r.s.products[p.ID] = p; return nil }
func (r storeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}
func (r storeProductRepo) GetBySKU(string) (*entity.Product, error) { return nil, nil }
func (r storeProductRepo) Update(p *entity.Product) error           { r.s.products[p.ID] = p; return nil }
func (r storeProductRepo) List(repository.ProductFilter) ([]*entity.Product, int, error) {
	return nil, 0, nil
}
func (r storeProductRepo) Delete(string) error { return nil }
func (r storeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.GetByID(id)
}
func (r storeProductRepo) UpdateStock(id string, quantity int64) error {
	p, ok := r.s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.StockQuantity = quantity
	return nil
}
func (r storeProductRepo) Summary() (*repository.InventorySummary, error) {
	return &repository.InventorySummary{}, nil
}

type storeOrderRepo struct{ s *memStore }

func (r storeOrderRepo) Create(o *entity.Order) error { r.s.orders[o.ID] = o; return nil }
func (r storeOrderRepo) CreateItem(i *entity.OrderItem) error {
	r.s.items[i.OrderID] = append(r.s.items[i.OrderID], i)
	return nil
}
func (r storeOrderRepo) GetByID(id string) (*entity.Order, error) {
	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}
func (r storeOrderRepo) GetByNumber(string) (*entity.Order, error) { return nil, nil }
func (r storeOrderRepo) GetForUpdate(id string) (*entity.Order, error) {
	return r.GetByID(id)
}
func (r storeOrderRepo) Update(o *entity.Order) error { r.s.orders[o.ID] = o; return nil }
func (r storeOrderRepo) ItemsByOrder(orderID string) ([]*entity.OrderItem, error) {
	return r.s.items[orderID], nil
}
func (r storeOrderRepo) List(repository.OrderFilter) ([]*entity.Order, int, error) {
	return nil, 0, nil
}
func (r storeOrderRepo) ListByCustomer(string, int) ([]*entity.Order, error) { return nil, nil }

type storeLogRepo struct{ s *memStore }

func (r storeLogRepo) Create(e *entity.InventoryLogEntry) error {
	r.s.logs = append(r.s.logs, e)
	return nil
}
func (r storeLogRepo) GetByID(string) (*entity.InventoryLogEntry, error) { return nil, nil }
func (r storeLogRepo) List(repository.InventoryLogFilter) ([]*entity.InventoryLogEntry, int, error) {
	return r.s.logs, len(r.s.logs), nil
}
func (r storeLogRepo) HistoryByProduct(string, int) ([]*entity.InventoryLogEntry, error) {
	return nil, nil
}

type storeCustomerRepo struct{ s *memStore }

func (r storeCustomerRepo) Create(c *entity.Customer) error { r.s.customers[c.ID] = c; return nil }
func (r storeCustomerRepo) GetByID(id string) (*entity.Customer, error) {
	c, ok := r.s.customers[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}
func (r storeCustomerRepo) GetByEmail(string) (*entity.Customer, error) { return nil, nil }
func (r storeCustomerRepo) GetByPhone(string) (*entity.Customer, error) { return nil, nil }
func (r storeCustomerRepo) Update(c *entity.Customer) error             { r.s.customers[c.ID] = c; return nil }
func (r storeCustomerRepo) List(string, int, int) ([]*entity.Customer, error) {
	return nil, nil
}
func (r storeCustomerRepo) Delete(string) error { return nil }
func (r storeCustomerRepo) AddLoyaltyPoints(id string, points int64) error {
	r.s.points[id] += points
	return nil
}

// txRunner copia-al-escribir: la función corre contra un clon del store y solo
// un retorno sin error publica los cambios.
type txRunner struct{ s *memStore }

func (t *txRunner) RunOrder(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	logRepo repository.InventoryLogRepository,
) error) error {
	work := t.s.clone()
	err := fn(storeOrderRepo{work}, storeProductRepo{work}, storeLogRepo{work})
	if err != nil {
		return err
	}
	t.s.replaceWith(work)
	return nil
}

type recordingMailer struct{ s *memStore }

func (m recordingMailer) SendOrderConfirmation(to, _, _ string, _ decimal.Decimal) error {
	m.s.mails = append(m.s.mails, to)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

func newOrderTestUseCase(t *testing.T) (*order.UseCase, *memStore) {
	t.Helper()
	s := newMemStore()
	uc := order.NewUseCase(&txRunner{s}, storeOrderRepo{s}, storeProductRepo{s}, storeCustomerRepo{s}, recordingMailer{s})
	return uc, s
}

func addProduct(s *memStore, id string, price int64, stock int64) {
	s.products[id] = &entity.Product{
		ID:            id,
		SKU:           "SKU-" + id,
		Name:          "Producto " + id,
		Price:         decimal.NewFromInt(price),
		StockQuantity: stock,
		IsActive:      true,
	}
}

func strPtr(v string) *string { return &v }

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateOrder_DescuentaStockYCalculaTotales(t *testing.T) {
	uc, s := newOrderTestUseCase(t)
	addProduct(s, "p1", 10, 20)
	addProduct(s, "p2", 5, 8)

	resp, err := uc.Create(context.Background(), "u1", dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{
			{ProductID: "p1", Quantity: 3},
			{ProductID: "p2", Quantity: 2},
		},
		Tax:      decimal.NewFromInt(4),
		Discount: decimal.NewFromInt(2),
	})
	require.NoError(t, err)

	// 3×10 + 2×5 = 40; total = 40 + 4 - 2 = 42
	assert.True(t, resp.Subtotal.Equal(decimal.NewFromInt(40)), "subtotal 40, got %s", resp.Subtotal)
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(42)), "total 42, got %s", resp.Total)
	assert.Equal(t, entity.OrderStatusPending, resp.Status)
	assert.Len(t, resp.Items, 2)

	assert.Equal(t, int64(17), s.products["p1"].StockQuantity)
	assert.Equal(t, int64(6), s.products["p2"].StockQuantity)

	// Una entrada de venta por línea, referenciando el número de pedido.
	require.Len(t, s.logs, 2)
	for _, e := range s.logs {
		assert.Equal(t, entity.InventoryActionSale, e.Action)
		assert.Equal(t, resp.OrderNumber, e.ReferenceNumber)
		assert.Negative(t, e.QuantityChange)
	}
}

func TestCreateOrder_SnapshotDePrecioEnLaLinea(t *testing.T) {
	uc, s := newOrderTestUseCase(t)
	addProduct(s, "p1", 10, 20)

	override := decimal.NewFromInt(7)
	resp, err := uc.Create(context.Background(), "u1", dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{
			{ProductID: "p1", Quantity: 2, UnitPrice: &override},
		},
	})
	require.NoError(t, err)

	require.Len(t, resp.Items, 1)
	assert.True(t, resp.Items[0].UnitPrice.Equal(override), "la línea usa el precio indicado")
	assert.Equal(t, "SKU-p1", resp.Items[0].ProductSKU, "la línea guarda el snapshot del producto")
	assert.True(t, resp.Total.Equal(decimal.NewFromInt(14)))
}

func TestCreateOrder_StockInsuficienteRevierteTodo(t *testing.T) {
	uc, s := newOrderTestUseCase(t)
	addProduct(s, "p1", 10, 20)
	addProduct(s, "p2", 5, 5)

	// La primera línea cabría; la segunda no. Nada debe persistir.
	_, err := uc.Create(context.Background(), "u1", dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{
			{ProductID: "p1", Quantity: 3},
			{ProductID: "p2", Quantity: 6},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, int64(20), s.products["p1"].StockQuantity, "la primera línea también se revierte")
	assert.Equal(t, int64(5), s.products["p2"].StockQuantity)
	assert.Empty(t, s.orders, "no debe quedar pedido")
	assert.Empty(t, s.logs, "no deben quedar entradas del ledger")
}

func TestCreateOrder_AgotarStockYReponerConCancelacion(t *testing.T) {
	uc, s := newOrderTestUseCase(t)
	addProduct(s, "p1", 10, 5)
	ctx := context.Background()

	// Pedido por todo el stock disponible: queda en cero.
	first, err := uc.Create(ctx, "u1", dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{{ProductID: "p1", Quantity: 5}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(0), s.products["p1"].StockQuantity)

	// Con stock en cero, una unidad más se rechaza.
	_, err = uc.Create(ctx, "u1", dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{{ProductID: "p1", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Cancelar el primer pedido devuelve el stock exactamente al nivel previo.
	_, err = uc.Cancel(ctx, first.ID, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(5), s.products["p1"].StockQuantity)
}

func TestCreateOrder_SinLineasRechazado(t *testing.T) {
	uc, _ := newOrderTestUseCase(t)

	_, err := uc.Create(context.Background(), "u1", dto.CreateOrderRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateOrder_ClienteInexistenteRechazado(t *testing.T) {
	uc, s := newOrderTestUseCase(t)
	addProduct(s, "p1", 10, 20)

	_, err := uc.Create(context.Background(), "u1", dto.CreateOrderRequest{
		CustomerID: "ghost",
		Items:      []dto.OrderItemRequest{{ProductID: "p1", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cancel
// ──────────────────────────────────────────────────────────────────────────────

func TestCancelOrder_ReponeStockConEntradasReturn(t *testing.T) {
	uc, s := newOrderTestUseCase(t)
	addProduct(s, "p1", 10, 20)

	created, err := uc.Create(context.Background(), "u1", dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{{ProductID: "p1", Quantity: 4}},
	})
	require.NoError(t, err)
	require.Equal(t, int64(16), s.products["p1"].StockQuantity)

	cancelled, err := uc.Cancel(context.Background(), created.ID, "u1")
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusCancelled, cancelled.Status)
	assert.Equal(t, int64(20), s.products["p1"].StockQuantity, "el stock vuelve al nivel original")

	// La venta original queda en el ledger; la cancelación agrega una entrada
	// compensatoria, no borra nada.
	require.Len(t, s.logs, 2)
	assert.Equal(t, entity.InventoryActionSale, s.logs[0].Action)
	assert.Equal(t, entity.InventoryActionReturn, s.logs[1].Action)
	assert.Equal(t, int64(4), s.logs[1].QuantityChange)
}

func TestCancelOrder_DobleCancelacionRechazada(t *testing.T) {
	uc, s := newOrderTestUseCase(t)
	addProduct(s, "p1", 10, 20)

	created, err := uc.Create(context.Background(), "u1", dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{{ProductID: "p1", Quantity: 4}},
	})
	require.NoError(t, err)

	_, err = uc.Cancel(context.Background(), created.ID, "u1")
	require.NoError(t, err)

	_, err = uc.Cancel(context.Background(), created.ID, "u1")
	assert.ErrorIs(t, err, domain.ErrOrderCancelled, "la segunda cancelación no debe reponer stock otra vez")
	assert.Equal(t, int64(20), s.products["p1"].StockQuantity)
	assert.Len(t, s.logs, 2)
}

func TestCancelOrder_Inexistente(t *testing.T) {
	uc, _ := newOrderTestUseCase(t)

	_, err := uc.Cancel(context.Background(), "nope", "u1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update / completar pedido
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateOrder_CompletarAcreditaPuntosYEnviaCorreo(t *testing.T) {
	uc, s := newOrderTestUseCase(t)
	addProduct(s, "p1", 10, 20)
	s.customers["c1"] = &entity.Customer{ID: "c1", Name: "Ana", Email: "ana@example.com"}

	created, err := uc.Create(context.Background(), "u1", dto.CreateOrderRequest{
		CustomerID: "c1",
		Items:      []dto.OrderItemRequest{{ProductID: "p1", Quantity: 3}},
	})
	require.NoError(t, err)

	updated, err := uc.Update(context.Background(), created.ID, dto.UpdateOrderRequest{
		Status: strPtr(entity.OrderStatusCompleted),
	})
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusCompleted, updated.Status)
	require.NotNil(t, updated.CompletedAt)
	assert.Equal(t, int64(30), s.points["c1"], "1 punto por unidad monetaria entera del total")
	assert.Equal(t, []string{"ana@example.com"}, s.mails)
}

func TestUpdateOrder_CancelledViaUpdateRechazado(t *testing.T) {
	uc, s := newOrderTestUseCase(t)
	addProduct(s, "p1", 10, 20)

	created, err := uc.Create(context.Background(), "u1", dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{{ProductID: "p1", Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = uc.Update(context.Background(), created.ID, dto.UpdateOrderRequest{
		Status: strPtr(entity.OrderStatusCancelled),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cancelar requiere su propia operación")
}

func TestUpdateOrder_RecalculaTotalConNuevoTax(t *testing.T) {
	uc, s := newOrderTestUseCase(t)
	addProduct(s, "p1", 10, 20)

	created, err := uc.Create(context.Background(), "u1", dto.CreateOrderRequest{
		Items: []dto.OrderItemRequest{{ProductID: "p1", Quantity: 2}},
	})
	require.NoError(t, err)
	require.True(t, created.Total.Equal(decimal.NewFromInt(20)))

	tax := decimal.NewFromInt(3)
	updated, err := uc.Update(context.Background(), created.ID, dto.UpdateOrderRequest{Tax: &tax})
	require.NoError(t, err)
	assert.True(t, updated.Total.Equal(decimal.NewFromInt(23)), "total = subtotal + tax - discount")
}
