package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/domain"
)

// MovementType motivo de un movimiento de stock.
type MovementType string

// Tipos de movimiento.
const (
	MovementPurchase   MovementType = "purchase"   // compra a proveedor
	MovementSale       MovementType = "sale"       // venta
	MovementReturn     MovementType = "return"     // devolución de cliente
	MovementAdjustment MovementType = "adjustment" // ajuste por conteo (siempre descuenta)
	MovementTransfer   MovementType = "transfer"   // traslado fuera de esta existencia
	MovementLoss       MovementType = "loss"       // merma, daño o robo
)

// MovementTypes lista los tipos válidos en orden estable.
var MovementTypes = []MovementType{
	MovementPurchase, MovementSale, MovementReturn,
	MovementAdjustment, MovementTransfer, MovementLoss,
}

// ParseMovementType valida s contra los tipos conocidos.
func ParseMovementType(s string) (MovementType, error) {
	for _, t := range MovementTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", domain.Invalid("type", "tipo de movimiento desconocido: "+s)
}

// Increases indica si el movimiento suma a la existencia.
func (t MovementType) Increases() bool {
	return t == MovementPurchase || t == MovementReturn
}

// Signed devuelve la variación firmada para una cantidad positiva.
func (t MovementType) Signed(quantity int) int {
	if t.Increases() {
		return quantity
	}
	return -quantity
}

// Apply calcula la existencia posterior al movimiento.
// Devuelve ErrInsufficientStock si el resultado sería negativo.
func (t MovementType) Apply(before, quantity int) (int, error) {
	after := before + t.Signed(quantity)
	if after < 0 {
		return before, domain.ErrInsufficientStock
	}
	return after, nil
}

// StockMovement es un hecho inmutable que justifica el valor de Product.Quantity.
type StockMovement struct {
	ID             string
	ProductID      string
	Type           MovementType
	Quantity       int // magnitud positiva, el signo lo da Type
	BeforeQuantity int
	AfterQuantity  int
	UnitPrice      decimal.Decimal
	TotalPrice     decimal.Decimal
	Reference      string // factura, orden, acta, etc.
	Notes          string
	CreatedBy      string // UserID; vacío si lo generó el sistema
	CreatedAt      time.Time
}
