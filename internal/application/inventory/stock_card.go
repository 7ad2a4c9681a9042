package inventory

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

// maxStockCardRows limita el kardex a los movimientos más recientes.
const maxStockCardRows = 500

// StockCardUseCase arma el kardex de un producto y delega el render al generador.
type StockCardUseCase struct {
	productRepo repository.ProductRepository
	movRepo     repository.StockMovementRepository
	generator   StockCardGenerator
}

// NewStockCardUseCase construye el caso de uso.
func NewStockCardUseCase(productRepo repository.ProductRepository, movRepo repository.StockMovementRepository, generator StockCardGenerator) *StockCardUseCase {
	return &StockCardUseCase{productRepo: productRepo, movRepo: movRepo, generator: generator}
}

// Generate devuelve el documento del kardex del producto entre from y to (ambos opcionales).
// Los movimientos se entregan en orden cronológico.
func (uc *StockCardUseCase) Generate(ctx context.Context, productID string, from, to *time.Time) ([]byte, error) {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	movements, err := uc.movRepo.List(ctx, repository.MovementFilter{
		ProductID: productID,
		From:      from,
		To:        to,
		Limit:     maxStockCardRows,
	})
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(movements)-1; i < j; i, j = i+1, j-1 {
		movements[i], movements[j] = movements[j], movements[i]
	}
	return uc.generator.GenerateStockCard(ctx, product, movements)
}
