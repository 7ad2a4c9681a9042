package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
)

// InventoryHandler maneja el libro de movimientos y la lista de reposición.
type InventoryHandler struct {
	ledger        *inventory.LedgerUseCase
	replenishment *inventory.ReplenishmentUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledger *inventory.LedgerUseCase, replenishment *inventory.ReplenishmentUseCase) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, replenishment: replenishment}
}

type movementListQuery struct {
	ProductID string `query:"product_id"`
	Type      string `query:"type"`
	DateRange string `query:"date_range" validate:"omitempty,oneof=today week"`
	From      string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To        string `query:"to" validate:"omitempty,datetime=2006-01-02"`
	Limit     int    `query:"limit" validate:"min=0,max=100"`
	Offset    int    `query:"offset" validate:"min=0"`
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de stock
// @Description  purchase y return suman; sale, adjustment, transfer y loss restan. Sin stock suficiente responde 409.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "product_id, type, quantity, unit_price"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := bindAndValidate(c, &in); err != nil {
		return writeError(c, err)
	}
	mov, err := h.ledger.RecordMovement(c.UserContext(), inventory.MovementInput{
		ProductID: in.ProductID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		UnitPrice: in.UnitPrice,
		Reference: in.Reference,
		Notes:     in.Notes,
		Actor:     GetUserID(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewMovementResponse(mov))
}

// ListMovements godoc
// @Summary      Listar movimientos
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "ID del producto"
// @Param        type        query  string  false  "Tipo de movimiento"
// @Param        date_range  query  string  false  "today | week"
// @Param        from        query  string  false  "Desde (AAAA-MM-DD)"
// @Param        to          query  string  false  "Hasta (AAAA-MM-DD, inclusive)"
// @Param        limit       query  int     false  "Límite"  default(20)
// @Param        offset      query  int     false  "Offset"  default(0)
// @Success      200         {object}  dto.MovementListResponse
// @Failure      400         {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var q movementListQuery
	if err := bindQuery(c, &q); err != nil {
		return writeError(c, err)
	}
	from, to, err := dayRange(q.From, q.To)
	if err != nil {
		return writeError(c, err)
	}
	page := dto.PageRequest{Limit: q.Limit, Offset: q.Offset}
	page.DefaultPage()
	list, err := h.ledger.ListMovements(c.UserContext(), inventory.MovementQuery{
		ProductID: q.ProductID,
		Type:      q.Type,
		DateRange: q.DateRange,
		From:      from,
		To:        to,
		Limit:     page.Limit,
		Offset:    page.Offset,
	})
	if err != nil {
		return writeError(c, err)
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, dto.NewMovementResponse(m))
	}
	return c.JSON(dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}

// GetMovement godoc
// @Summary      Obtener movimiento por ID
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/{id} [get]
func (h *InventoryHandler) GetMovement(c *fiber.Ctx) error {
	mov, err := h.ledger.GetMovement(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.NewMovementResponse(mov))
}

// Replenishment godoc
// @Summary      Lista de reposición
// @Description  Productos en o bajo su punto de reorden, ordenados por urgencia.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ReplenishmentSuggestionDTO
// @Router       /api/inventory/replenishment [get]
func (h *InventoryHandler) Replenishment(c *fiber.Ctx) error {
	list, err := h.replenishment.GenerateReplenishmentList(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(list)
}
