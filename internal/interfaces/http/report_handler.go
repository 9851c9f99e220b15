package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/pos-backend/internal/application/dto"
	"github.com/tu-usuario/pos-backend/internal/application/report"
)

// ReportHandler reportes de ventas (solo lectura).
type ReportHandler struct {
	uc *report.UseCase
}

// NewReportHandler construye el handler de reportes.
func NewReportHandler(uc *report.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Sales godoc
// @Summary      Ventas por día
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start  query  string  false  "fecha inicial YYYY-MM-DD (default: hace 30 días)"
// @Param        end    query  string  false  "fecha final YYYY-MM-DD (default: hoy)"
// @Success      200  {array}   dto.DailySalesResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/sales [get]
func (h *ReportHandler) Sales(c *fiber.Ctx) error {
	var start, end time.Time
	if s := c.Query("start"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "start debe ser YYYY-MM-DD"})
		}
		start = t
	}
	if s := c.Query("end"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "end debe ser YYYY-MM-DD"})
		}
		end = t.Add(24*time.Hour - time.Second)
	}
	out, err := h.uc.SalesByDay(c.Context(), start, end)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// TopProducts godoc
// @Summary      Productos más vendidos según el ledger
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        days   query  int  false  "ventana en días (default 30)"
// @Param        limit  query  int  false  "máx. resultados (default 10)"
// @Success      200  {array}  dto.TopProductResponse
// @Router       /api/reports/top-products [get]
func (h *ReportHandler) TopProducts(c *fiber.Ctx) error {
	out, err := h.uc.TopProducts(c.Context(), c.QueryInt("days", 30), c.QueryInt("limit", 10))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// PaymentMethods godoc
// @Summary      Desglose de pagos por método
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        days  query  int  false  "ventana en días (default 30)"
// @Success      200  {array}  dto.PaymentMethodReportResponse
// @Router       /api/reports/payment-methods [get]
func (h *ReportHandler) PaymentMethods(c *fiber.Ctx) error {
	out, err := h.uc.PaymentMethods(c.Context(), c.QueryInt("days", 30))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
