package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/application/inventory"
	"github.com/jhoicas/inventario-ledger/internal/application/usecase"
	"github.com/jhoicas/inventario-ledger/internal/domain"
)

const defaultExpiringDays = 30

// ProductHandler maneja las peticiones HTTP del catálogo (protegido).
type ProductHandler struct {
	uc        *usecase.ProductUseCase
	stockCard *inventory.StockCardUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, stockCard *inventory.StockCardUseCase) *ProductHandler {
	return &ProductHandler{uc: uc, stockCard: stockCard}
}

type productListQuery struct {
	Status     string `query:"status" validate:"omitempty,oneof=low_stock out_of_stock"`
	Search     string `query:"search" validate:"omitempty,max=100"`
	CategoryID string `query:"category_id"`
	SupplierID string `query:"supplier_id"`
	Limit      int    `query:"limit" validate:"min=0,max=100"`
	Offset     int    `query:"offset" validate:"min=0"`
}

type expiringQuery struct {
	Days   int `query:"days" validate:"min=0,max=3650"`
	Limit  int `query:"limit" validate:"min=0,max=100"`
	Offset int `query:"offset" validate:"min=0"`
}

type stockCardQuery struct {
	From string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To   string `query:"to" validate:"omitempty,datetime=2006-01-02"`
}

// Create godoc
// @Summary      Crear producto
// @Description  SKU y código de barras vacíos se derivan del correlativo. initial_quantity entra como compra.
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := bindAndValidate(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar producto
// @Description  La existencia no se edita aquí; cambia solo con movimientos.
// @Tags         products
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID del producto"
// @Param        body  body  dto.UpdateProductRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := bindAndValidate(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar productos activos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        status       query  string  false  "low_stock | out_of_stock"
// @Param        search       query  string  false  "Nombre, SKU o código de barras"
// @Param        category_id  query  string  false  "ID de categoría"
// @Param        supplier_id  query  string  false  "ID de proveedor"
// @Param        limit        query  int     false  "Límite"  default(20)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Success      200          {object}  dto.ProductListResponse
// @Failure      400          {object}  dto.ErrorResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var q productListQuery
	if err := bindQuery(c, &q); err != nil {
		return writeError(c, err)
	}
	page := dto.PageRequest{Limit: q.Limit, Offset: q.Offset}
	page.DefaultPage()
	out, err := h.uc.List(c.UserContext(), usecase.ProductQuery{
		Status:     q.Status,
		Search:     q.Search,
		CategoryID: q.CategoryID,
		SupplierID: q.SupplierID,
		Limit:      page.Limit,
		Offset:     page.Offset,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListExpiring godoc
// @Summary      Productos por vencer
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        days    query  int  false  "Ventana en días"  default(30)
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.ProductListResponse
// @Router       /api/products/expiring [get]
func (h *ProductHandler) ListExpiring(c *fiber.Ctx) error {
	var q expiringQuery
	if err := bindQuery(c, &q); err != nil {
		return writeError(c, err)
	}
	if c.Query("days") == "" {
		q.Days = defaultExpiringDays
	}
	page := dto.PageRequest{Limit: q.Limit, Offset: q.Offset}
	page.DefaultPage()
	out, err := h.uc.ListExpiringSoon(c.UserContext(), q.Days, page.Limit, page.Offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// StockCard godoc
// @Summary      Kardex del producto en PDF
// @Tags         products
// @Security     Bearer
// @Produce      application/pdf
// @Param        id    path   string  true   "ID del producto"
// @Param        from  query  string  false  "Desde (AAAA-MM-DD)"
// @Param        to    query  string  false  "Hasta (AAAA-MM-DD, inclusive)"
// @Success      200   {file}    file
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/products/{id}/stock-card.pdf [get]
func (h *ProductHandler) StockCard(c *fiber.Ctx) error {
	var q stockCardQuery
	if err := bindQuery(c, &q); err != nil {
		return writeError(c, err)
	}
	from, to, err := dayRange(q.From, q.To)
	if err != nil {
		return writeError(c, err)
	}
	id := c.Params("id")
	pdf, err := h.stockCard.Generate(c.UserContext(), id, from, to)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="kardex-%s.pdf"`, id))
	return c.Send(pdf)
}

// dayRange convierte fechas AAAA-MM-DD en un rango cerrado [from 00:00, to 23:59:59.999] UTC.
func dayRange(fromS, toS string) (from, to *time.Time, err error) {
	if fromS != "" {
		t, perr := time.Parse(dto.DateLayout, fromS)
		if perr != nil {
			return nil, nil, domain.Invalid("from", "formato esperado AAAA-MM-DD")
		}
		from = &t
	}
	if toS != "" {
		t, perr := time.Parse(dto.DateLayout, toS)
		if perr != nil {
			return nil, nil, domain.Invalid("to", "formato esperado AAAA-MM-DD")
		}
		end := t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		to = &end
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, nil, domain.Invalid("to", "no puede ser anterior a from")
	}
	return from, to, nil
}
