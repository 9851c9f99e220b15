package payment_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/pos-backend/internal/application/dto"
	"github.com/tu-usuario/pos-backend/internal/application/payment"
	"github.com/tu-usuario/pos-backend/internal/domain"
	"github.com/tu-usuario/pos-backend/internal/domain/entity"
	"github.com/tu-usuario/pos-backend/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakePaymentRepo struct {
	payments map[string]*entity.Payment
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{payments: map[string]*entity.Payment{}}
}

func (r *fakePaymentRepo) Create(p *entity.Payment) error { r.payments[p.ID] = p; return nil }
func (r *fakePaymentRepo) GetByID(id string) (*entity.Payment, error) {
	p, ok := r.payments[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}
func (r *fakePaymentRepo) GetByTransactionID(string) (*entity.Payment, error) { return nil, nil }
func (r *fakePaymentRepo) Update(p *entity.Payment) error                     { r.payments[p.ID] = p; return nil }
func (r *fakePaymentRepo) List(repository.PaymentFilter) ([]*entity.Payment, int, error) {
	return nil, 0, nil
}
func (r *fakePaymentRepo) SumCompletedByOrder(orderID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, p := range r.payments {
		if p.OrderID == orderID && p.Status == entity.PaymentStatusCompleted {
			sum = sum.Add(p.Amount)
		}
	}
	return sum, nil
}

type fakeOrderRepo struct {
	orders map[string]*entity.Order
}

func (r *fakeOrderRepo) Create(o *entity.Order) error     { r.orders[o.ID] = o; return nil }
func (r *fakeOrderRepo) CreateItem(*entity.OrderItem) error { return nil }
func (r *fakeOrderRepo) GetByID(id string) (*entity.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}
func (r *fakeOrderRepo) GetByNumber(string) (*entity.Order, error) { return nil, nil }
func (r *fakeOrderRepo) GetForUpdate(id string) (*entity.Order, error) {
	return r.GetByID(id)
}
func (r *fakeOrderRepo) Update(o *entity.Order) error { r.orders[o.ID] = o; return nil }
func (r *fakeOrderRepo) ItemsByOrder(string) ([]*entity.OrderItem, error) {
	return nil, nil
}
func (r *fakeOrderRepo) List(repository.OrderFilter) ([]*entity.Order, int, error) {
	return nil, 0, nil
}
func (r *fakeOrderRepo) ListByCustomer(string, int) ([]*entity.Order, error) { return nil, nil }

type fakeTxRunner struct {
	payments *fakePaymentRepo
	orders   *fakeOrderRepo
}

func (t *fakeTxRunner) RunPayment(ctx context.Context, fn func(
	paymentRepo repository.PaymentRepository,
	orderRepo repository.OrderRepository,
) error) error {
	return fn(t.payments, t.orders)
}

func newPaymentTestUseCase(orders ...*entity.Order) (*payment.UseCase, *fakePaymentRepo) {
	paymentRepo := newFakePaymentRepo()
	orderRepo := &fakeOrderRepo{orders: map[string]*entity.Order{}}
	for _, o := range orders {
		orderRepo.orders[o.ID] = o
	}
	uc := payment.NewUseCase(&fakeTxRunner{payments: paymentRepo, orders: orderRepo}, paymentRepo, orderRepo)
	return uc, paymentRepo
}

func testOrder(id string, total int64, status string) *entity.Order {
	return &entity.Order{
		ID:          id,
		OrderNumber: "ORD-TEST-" + id,
		Status:      status,
		Total:       decimal.NewFromInt(total),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreatePayment_RegistraCompleted(t *testing.T) {
	uc, _ := newPaymentTestUseCase(testOrder("o1", 100, entity.OrderStatusPending))

	resp, err := uc.Create(context.Background(), "u1", dto.CreatePaymentRequest{
		OrderID: "o1",
		Amount:  decimal.NewFromInt(60),
		Method:  entity.PaymentMethodCash,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.PaymentStatusCompleted, resp.Status)
	assert.True(t, resp.Amount.Equal(decimal.NewFromInt(60)))
}

func TestCreatePayment_PagosParcialesHastaElTotal(t *testing.T) {
	uc, _ := newPaymentTestUseCase(testOrder("o1", 100, entity.OrderStatusPending))
	ctx := context.Background()

	for _, amount := range []int64{40, 35, 25} {
		_, err := uc.Create(ctx, "u1", dto.CreatePaymentRequest{
			OrderID: "o1",
			Amount:  decimal.NewFromInt(amount),
			Method:  entity.PaymentMethodCard,
		})
		require.NoError(t, err)
	}

	status, err := uc.OrderPaymentStatus(ctx, "o1")
	require.NoError(t, err)
	assert.True(t, status.PaidAmount.Equal(decimal.NewFromInt(100)))
	assert.True(t, status.RemainingAmount.IsZero())
	assert.True(t, status.IsFullyPaid)
}

func TestCreatePayment_SobrepagoRechazado(t *testing.T) {
	uc, repo := newPaymentTestUseCase(testOrder("o1", 100, entity.OrderStatusPending))
	ctx := context.Background()

	_, err := uc.Create(ctx, "u1", dto.CreatePaymentRequest{
		OrderID: "o1",
		Amount:  decimal.NewFromInt(80),
		Method:  entity.PaymentMethodCash,
	})
	require.NoError(t, err)

	_, err = uc.Create(ctx, "u1", dto.CreatePaymentRequest{
		OrderID: "o1",
		Amount:  decimal.NewFromInt(30),
		Method:  entity.PaymentMethodCash,
	})
	assert.ErrorIs(t, err, domain.ErrOverPayment, "80 + 30 > 100")
	assert.Len(t, repo.payments, 1, "el pago rechazado no debe persistirse")
}

func TestCreatePayment_SobrepagoSinPagosPrevios(t *testing.T) {
	uc, repo := newPaymentTestUseCase(testOrder("o1", 8, entity.OrderStatusPending))

	_, err := uc.Create(context.Background(), "u1", dto.CreatePaymentRequest{
		OrderID: "o1",
		Amount:  decimal.NewFromInt(10),
		Method:  entity.PaymentMethodCash,
	})
	assert.ErrorIs(t, err, domain.ErrOverPayment, "10 contra un total de 8 se rechaza aunque no haya pagos previos")
	assert.Empty(t, repo.payments)
}

func TestCreatePayment_MontoExactoPermitido(t *testing.T) {
	uc, _ := newPaymentTestUseCase(testOrder("o1", 100, entity.OrderStatusPending))

	_, err := uc.Create(context.Background(), "u1", dto.CreatePaymentRequest{
		OrderID: "o1",
		Amount:  decimal.NewFromInt(100),
		Method:  entity.PaymentMethodCash,
	})
	assert.NoError(t, err, "pagar exactamente el total no es sobrepago")
}

func TestCreatePayment_PedidoCanceladoRechazado(t *testing.T) {
	uc, _ := newPaymentTestUseCase(testOrder("o1", 100, entity.OrderStatusCancelled))

	_, err := uc.Create(context.Background(), "u1", dto.CreatePaymentRequest{
		OrderID: "o1",
		Amount:  decimal.NewFromInt(10),
		Method:  entity.PaymentMethodCash,
	})
	assert.ErrorIs(t, err, domain.ErrOrderCancelled)
}

func TestCreatePayment_MontoNoPositivoRechazado(t *testing.T) {
	uc, _ := newPaymentTestUseCase(testOrder("o1", 100, entity.OrderStatusPending))

	_, err := uc.Create(context.Background(), "u1", dto.CreatePaymentRequest{
		OrderID: "o1",
		Amount:  decimal.Zero,
		Method:  entity.PaymentMethodCash,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreatePayment_MetodoDesconocidoRechazado(t *testing.T) {
	uc, _ := newPaymentTestUseCase(testOrder("o1", 100, entity.OrderStatusPending))

	_, err := uc.Create(context.Background(), "u1", dto.CreatePaymentRequest{
		OrderID: "o1",
		Amount:  decimal.NewFromInt(10),
		Method:  "bitcoin",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Refund
// ──────────────────────────────────────────────────────────────────────────────

func TestRefund_LiberaMontoParaNuevosPagos(t *testing.T) {
	uc, _ := newPaymentTestUseCase(testOrder("o1", 100, entity.OrderStatusPending))
	ctx := context.Background()

	created, err := uc.Create(ctx, "u1", dto.CreatePaymentRequest{
		OrderID: "o1",
		Amount:  decimal.NewFromInt(100),
		Method:  entity.PaymentMethodCash,
	})
	require.NoError(t, err)

	refunded, err := uc.Refund(ctx, created.ID, dto.RefundPaymentRequest{Reason: "producto defectuoso"})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusRefunded, refunded.Status)

	// El pago reembolsado ya no cuenta contra el total.
	status, err := uc.OrderPaymentStatus(ctx, "o1")
	require.NoError(t, err)
	assert.True(t, status.PaidAmount.IsZero())
	assert.False(t, status.IsFullyPaid)

	_, err = uc.Create(ctx, "u1", dto.CreatePaymentRequest{
		OrderID: "o1",
		Amount:  decimal.NewFromInt(100),
		Method:  entity.PaymentMethodCard,
	})
	assert.NoError(t, err, "tras el reembolso se puede volver a pagar")
}

func TestRefund_DobleReembolsoRechazado(t *testing.T) {
	uc, _ := newPaymentTestUseCase(testOrder("o1", 100, entity.OrderStatusPending))
	ctx := context.Background()

	created, err := uc.Create(ctx, "u1", dto.CreatePaymentRequest{
		OrderID: "o1",
		Amount:  decimal.NewFromInt(50),
		Method:  entity.PaymentMethodCash,
	})
	require.NoError(t, err)

	_, err = uc.Refund(ctx, created.ID, dto.RefundPaymentRequest{})
	require.NoError(t, err)

	_, err = uc.Refund(ctx, created.ID, dto.RefundPaymentRequest{})
	assert.ErrorIs(t, err, domain.ErrPaymentRefunded, "la transición es de una sola vía")
}

func TestRefund_PagoInexistente(t *testing.T) {
	uc, _ := newPaymentTestUseCase()

	_, err := uc.Refund(context.Background(), "nope", dto.RefundPaymentRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// OrderPaymentStatus
// ──────────────────────────────────────────────────────────────────────────────

func TestOrderPaymentStatus_SaldoPendiente(t *testing.T) {
	uc, _ := newPaymentTestUseCase(testOrder("o1", 100, entity.OrderStatusPending))
	ctx := context.Background()

	_, err := uc.Create(ctx, "u1", dto.CreatePaymentRequest{
		OrderID: "o1",
		Amount:  decimal.NewFromInt(30),
		Method:  entity.PaymentMethodCash,
	})
	require.NoError(t, err)

	status, err := uc.OrderPaymentStatus(ctx, "o1")
	require.NoError(t, err)
	assert.True(t, status.OrderTotal.Equal(decimal.NewFromInt(100)))
	assert.True(t, status.PaidAmount.Equal(decimal.NewFromInt(30)))
	assert.True(t, status.RemainingAmount.Equal(decimal.NewFromInt(70)))
	assert.False(t, status.IsFullyPaid)
}

func TestOrderPaymentStatus_PedidoInexistente(t *testing.T) {
	uc, _ := newPaymentTestUseCase()

	_, err := uc.OrderPaymentStatus(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
