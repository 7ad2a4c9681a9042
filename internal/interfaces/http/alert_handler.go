package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
)

// AlertHandler consultas, resolución y barrido de alertas de inventario.
type AlertHandler struct {
	uc      *inventory.AlertUseCase
	deriver *inventory.AlertDeriver
}

// NewAlertHandler construye el handler.
func NewAlertHandler(uc *inventory.AlertUseCase, deriver *inventory.AlertDeriver) *AlertHandler {
	return &AlertHandler{uc: uc, deriver: deriver}
}

type alertListQuery struct {
	ProductID string `query:"product_id"`
	Type      string `query:"type" validate:"omitempty,oneof=low_stock out_of_stock expiring expired"`
	Resolved  string `query:"resolved" validate:"omitempty,oneof=true false"`
	Limit     int    `query:"limit" validate:"min=0,max=100"`
	Offset    int    `query:"offset" validate:"min=0"`
}

// List godoc
// @Summary      Listar alertas
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "ID del producto"
// @Param        type        query  string  false  "low_stock | out_of_stock | expiring | expired"
// @Param        resolved    query  bool    false  "Filtrar por estado"
// @Param        limit       query  int     false  "Límite"  default(20)
// @Param        offset      query  int     false  "Offset"  default(0)
// @Success      200         {object}  dto.AlertListResponse
// @Failure      400         {object}  dto.ErrorResponse
// @Router       /api/inventory/alerts [get]
func (h *AlertHandler) List(c *fiber.Ctx) error {
	var q alertListQuery
	if err := bindQuery(c, &q); err != nil {
		return writeError(c, err)
	}
	page := dto.PageRequest{Limit: q.Limit, Offset: q.Offset}
	page.DefaultPage()
	query := inventory.AlertQuery{
		ProductID: q.ProductID,
		Type:      q.Type,
		Limit:     page.Limit,
		Offset:    page.Offset,
	}
	if q.Resolved != "" {
		resolved, _ := strconv.ParseBool(q.Resolved)
		query.Resolved = &resolved
	}
	list, err := h.uc.List(c.UserContext(), query)
	if err != nil {
		return writeError(c, err)
	}
	items := make([]dto.AlertResponse, 0, len(list))
	for _, a := range list {
		items = append(items, dto.NewAlertResponse(a))
	}
	return c.JSON(dto.AlertListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}

// Summary godoc
// @Summary      Alertas abiertas por tipo
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AlertSummaryResponse
// @Router       /api/inventory/alerts/summary [get]
func (h *AlertHandler) Summary(c *fiber.Ctx) error {
	counts, err := h.uc.Summary(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	out := dto.AlertSummaryResponse{Counts: make(map[string]int, len(counts))}
	for t, n := range counts {
		out.Counts[string(t)] = n
		out.Total += n
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener alerta por ID
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la alerta"
// @Success      200  {object}  dto.AlertResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/alerts/{id} [get]
func (h *AlertHandler) Get(c *fiber.Ctx) error {
	a, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewAlertResponse(a))
}

// Resolve godoc
// @Summary      Resolver alerta
// @Description  Resolver una alerta ya resuelta la devuelve sin cambios.
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la alerta"
// @Success      200  {object}  dto.AlertResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/alerts/{id}/resolve [post]
func (h *AlertHandler) Resolve(c *fiber.Ctx) error {
	a, err := h.uc.Resolve(c.UserContext(), c.Params("id"), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewAlertResponse(a))
}

// Sweep godoc
// @Summary      Barrido de alertas (solo admin)
// @Description  Vuelve a derivar las alertas de todos los productos activos.
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  inventory.SweepResult
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/inventory/alerts/sweep [post]
func (h *AlertHandler) Sweep(c *fiber.Ctx) error {
	res, err := h.deriver.Sweep(c.UserContext(), GetUserID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(res)
}
