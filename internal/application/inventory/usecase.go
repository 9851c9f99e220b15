package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/pos-backend/internal/application/dto"
	"github.com/tu-usuario/pos-backend/internal/domain"
	"github.com/tu-usuario/pos-backend/internal/domain/entity"
	"github.com/tu-usuario/pos-backend/internal/domain/repository"
)

// UseCase escribe el ledger de inventario de forma transaccional. Es el único
// punto por el que cambia StockQuantity: leer stock, calcular nuevo stock,
// rechazar si queda negativo, escribir la entrada y actualizar el contador en
// la misma unidad de trabajo.
type UseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	logRepo     repository.InventoryLogRepository
}

// NewUseCase construye el caso de uso del ledger.
func NewUseCase(txRunner TxRunner, productRepo repository.ProductRepository, logRepo repository.InventoryLogRepository) *UseCase {
	return &UseCase{txRunner: txRunner, productRepo: productRepo, logRepo: logRepo}
}

// Apply aplica un delta firmado al stock de un producto dentro de una transacción.
// Rechaza con ErrInsufficientStock cualquier cambio que dejaría el stock negativo.
func (uc *UseCase) Apply(ctx context.Context, userID string, in dto.ApplyInventoryRequest) (*dto.InventoryLogResponse, error) {
	if in.ProductID == "" || in.QuantityChange == 0 {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidInventoryAction(in.Action) {
		return nil, domain.ErrInvalidInput
	}

	var entry *entity.InventoryLogEntry
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		logRepo repository.InventoryLogRepository,
	) error {
		var err error
		entry, err = ApplyInTx(productRepo, logRepo, ApplyInput{
			ProductID:       in.ProductID,
			UserID:          userID,
			Action:          in.Action,
			QuantityChange:  in.QuantityChange,
			ReferenceNumber: in.ReferenceNumber,
			Notes:           in.Notes,
			Now:             time.Now(),
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return toLogResponse(entry), nil
}

// AdjustTo fija el stock en una cantidad absoluta; el delta se deriva del stock
// actual y se registra como acción adjustment.
func (uc *UseCase) AdjustTo(ctx context.Context, userID string, in dto.AdjustStockRequest) (*dto.InventoryLogResponse, error) {
	if in.ProductID == "" || in.NewQuantity < 0 {
		return nil, domain.ErrInvalidInput
	}

	var entry *entity.InventoryLogEntry
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		logRepo repository.InventoryLogRepository,
	) error {
		// El delta se calcula con la fila bloqueada, no con una lectura previa.
		product, err := productRepo.GetForUpdate(in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		delta := in.NewQuantity - product.StockQuantity
		if delta == 0 {
			return domain.ErrInvalidInput
		}
		notes := in.Notes
		if notes == "" {
			notes = "Ajuste de stock"
		}
		entry, err = applyLocked(productRepo, logRepo, product, ApplyInput{
			ProductID:      in.ProductID,
			UserID:         userID,
			Action:         entity.InventoryActionAdjustment,
			QuantityChange: delta,
			Notes:          notes,
			Now:            time.Now(),
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return toLogResponse(entry), nil
}

// ApplyInput entrada del escritor del ledger a nivel de transacción.
type ApplyInput struct {
	ProductID       string
	UserID          string
	Action          string
	QuantityChange  int64
	ReferenceNumber string
	Notes           string
	Now             time.Time
}

// ApplyInTx ejecuta una escritura del ledger usando los repositorios
// proporcionados (misma transacción del caller). Lo usa también el coordinador
// de pedidos para descontar y reponer stock dentro de su propia transacción.
func ApplyInTx(
	productRepo repository.ProductRepository,
	logRepo repository.InventoryLogRepository,
	in ApplyInput,
) (*entity.InventoryLogEntry, error) {
	// Bloquea la fila del producto (SELECT FOR UPDATE): la verificación se hace
	// contra el contador vivo, no contra una lectura obsoleta.
	product, err := productRepo.GetForUpdate(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return applyLocked(productRepo, logRepo, product, in)
}

// applyLocked asume la fila del producto ya bloqueada en esta transacción.
func applyLocked(
	productRepo repository.ProductRepository,
	logRepo repository.InventoryLogRepository,
	product *entity.Product,
	in ApplyInput,
) (*entity.InventoryLogEntry, error) {
	before := product.StockQuantity
	after := before + in.QuantityChange
	if after < 0 {
		return nil, domain.ErrInsufficientStock
	}

	entry := &entity.InventoryLogEntry{
		ID:              uuid.New().String(),
		ProductID:       in.ProductID,
		UserID:          in.UserID,
		Action:          in.Action,
		QuantityChange:  in.QuantityChange,
		QuantityBefore:  before,
		QuantityAfter:   after,
		ReferenceNumber: in.ReferenceNumber,
		Notes:           in.Notes,
		CreatedAt:       in.Now,
	}
	if err := logRepo.Create(entry); err != nil {
		return nil, err
	}
	if err := productRepo.UpdateStock(in.ProductID, after); err != nil {
		return nil, err
	}
	return entry, nil
}

// Get obtiene una entrada del ledger por ID.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.InventoryLogResponse, error) {
	entry, err := uc.logRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, domain.ErrNotFound
	}
	return toLogResponse(entry), nil
}

// List lista entradas del ledger con filtros (producto, acción, ventana en días).
func (uc *UseCase) List(ctx context.Context, filter repository.InventoryLogFilter) (*dto.InventoryLogListResponse, error) {
	if filter.Limit <= 0 {
		filter.Limit = 20
	}
	if filter.Action != "" && !entity.ValidInventoryAction(filter.Action) {
		return nil, domain.ErrInvalidInput
	}
	entries, total, err := uc.logRepo.List(filter)
	if err != nil {
		return nil, err
	}
	out := &dto.InventoryLogListResponse{
		Items: make([]dto.InventoryLogResponse, 0, len(entries)),
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset, Total: total},
	}
	for _, e := range entries {
		out.Items = append(out.Items, *toLogResponse(e))
	}
	return out, nil
}

// History devuelve el historial del ledger de un producto (más reciente primero).
func (uc *UseCase) History(ctx context.Context, productID string, limit int) ([]dto.InventoryLogResponse, error) {
	if productID == "" {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if limit <= 0 {
		limit = 50
	}
	entries, err := uc.logRepo.HistoryByProduct(productID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventoryLogResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, *toLogResponse(e))
	}
	return out, nil
}

// Summary conteos agregados: productos activos, stock bajo y agotados.
func (uc *UseCase) Summary(ctx context.Context) (*dto.InventorySummaryResponse, error) {
	s, err := uc.productRepo.Summary()
	if err != nil {
		return nil, err
	}
	return &dto.InventorySummaryResponse{
		TotalProducts: s.TotalProducts,
		LowStockCount: s.LowStockCount,
		OutOfStock:    s.OutOfStock,
	}, nil
}

func toLogResponse(e *entity.InventoryLogEntry) *dto.InventoryLogResponse {
	if e == nil {
		return nil
	}
	return &dto.InventoryLogResponse{
		ID:              e.ID,
		ProductID:       e.ProductID,
		UserID:          e.UserID,
		Action:          e.Action,
		QuantityChange:  e.QuantityChange,
		QuantityBefore:  e.QuantityBefore,
		QuantityAfter:   e.QuantityAfter,
		ReferenceNumber: e.ReferenceNumber,
		Notes:           e.Notes,
		CreatedAt:       e.CreatedAt,
	}
}
