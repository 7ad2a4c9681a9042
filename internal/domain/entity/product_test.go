package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
)

func validProduct() *entity.Product {
	return &entity.Product{
		Name:         "Leche entera 1L",
		UnitPrice:    decimal.RequireFromString("4500"),
		CostPrice:    decimal.RequireFromString("3200"),
		TaxRate:      decimal.NewFromInt(5),
		ReorderLevel: 5,
	}
}

func TestProduct_Validate(t *testing.T) {
	assert.NoError(t, validProduct().Validate())

	p := validProduct()
	p.UnitPrice = decimal.RequireFromString("3000")
	assert.ErrorIs(t, p.Validate(), domain.ErrInvalidInput, "precio menor que costo")

	p = validProduct()
	p.TaxRate = decimal.NewFromInt(101)
	assert.ErrorIs(t, p.Validate(), domain.ErrInvalidInput)

	p = validProduct()
	mfg := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	exp := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	p.ManufactureDate, p.ExpiryDate = &mfg, &exp
	assert.ErrorIs(t, p.Validate(), domain.ErrInvalidInput)
}

func TestProduct_StockStatus(t *testing.T) {
	p := validProduct()
	p.Quantity = 0
	assert.Equal(t, entity.StockStatusOut, p.StockStatus())
	p.Quantity = 5
	assert.Equal(t, entity.StockStatusLow, p.StockStatus())
	p.Quantity = 6
	assert.Equal(t, entity.StockStatusIn, p.StockStatus())
	assert.True(t, decimal.RequireFromString("19200").Equal(p.TotalValue()))
}

func TestProduct_DaysToExpiry(t *testing.T) {
	today := time.Date(2026, 3, 10, 18, 30, 0, 0, time.UTC)
	p := validProduct()
	assert.Nil(t, p.DaysToExpiry(today))

	exp := time.Date(2026, 3, 20, 0, 0, 0, 0, time.UTC)
	p.ExpiryDate = &exp
	assert.Equal(t, 10, *p.DaysToExpiry(today))

	past := time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC)
	p.ExpiryDate = &past
	assert.Equal(t, -1, *p.DaysToExpiry(today))
}

func TestAlertFields_Validate(t *testing.T) {
	ten := 10
	assert.ErrorIs(t, entity.AlertFields{}.Validate(entity.AlertLowStock), domain.ErrInvalidInput)
	assert.NoError(t, entity.AlertFields{Threshold: &ten}.Validate(entity.AlertLowStock))
	assert.NoError(t, entity.AlertFields{Threshold: &ten}.Validate(entity.AlertOutOfStock))
	assert.ErrorIs(t, entity.AlertFields{}.Validate(entity.AlertExpiring), domain.ErrInvalidInput)
	assert.NoError(t, entity.AlertFields{DaysToExpiry: &ten}.Validate(entity.AlertExpiring))
	assert.ErrorIs(t, entity.AlertFields{DaysToExpiry: &ten}.Validate(entity.AlertExpired), domain.ErrInvalidInput)
	assert.NoError(t, entity.AlertFields{}.Validate(entity.AlertExpired))
}
