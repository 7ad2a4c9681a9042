package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// ReplenishmentUseCase genera la lista de reposición: productos activos en o bajo su punto de
// reorden con la cantidad sugerida de compra.
type ReplenishmentUseCase struct {
	productRepo repository.ProductRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(productRepo repository.ProductRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{productRepo: productRepo}
}

var idealFactor = decimal.NewFromFloat(1.5)

// GenerateReplenishmentList devuelve las sugerencias ordenadas por urgencia:
// primero agotados, luego mayor déficit relativo, luego mayor margen unitario.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error) {
	products, err := uc.productRepo.List(ctx, repository.ProductFilter{
		ActiveOnly:  true,
		StockStatus: repository.StockStatusReorder,
		Limit:       1000,
	})
	if err != nil {
		return nil, err
	}
	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(products))
	for _, p := range products {
		current := decimal.NewFromInt(int64(p.Quantity))
		reorder := decimal.NewFromInt(int64(p.ReorderLevel))
		ideal := reorder.Mul(idealFactor).Ceil()
		suggested := ideal.Sub(current)
		if suggested.LessThan(decimal.NewFromInt(1)) {
			suggested = decimal.NewFromInt(1)
		}
		// Déficit relativo: 1 = agotado, 0 = justo en el punto de reorden.
		deficit := decimal.NewFromInt(1)
		if reorder.GreaterThan(decimal.Zero) {
			deficit = reorder.Sub(current).Div(reorder).Round(4)
		}
		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			ProductID:          p.ID,
			SKU:                p.SKU,
			ProductName:        p.Name,
			CurrentStock:       p.Quantity,
			ReorderLevel:       p.ReorderLevel,
			IdealStock:         int(ideal.IntPart()),
			SuggestedOrderQty:  int(suggested.IntPart()),
			UnitCost:           p.CostPrice,
			EstimatedOrderCost: suggested.Mul(p.CostPrice),
			UnitMargin:         p.UnitPrice.Sub(p.CostPrice),
			Deficit:            deficit,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if (a.CurrentStock == 0) != (b.CurrentStock == 0) {
			return a.CurrentStock == 0
		}
		if !a.Deficit.Equal(b.Deficit) {
			return a.Deficit.GreaterThan(b.Deficit)
		}
		return a.UnitMargin.GreaterThan(b.UnitMargin)
	})
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}
