// Package analytics contiene el tablero de inventario: valorización de la existencia y flujo
// del libro de movimientos.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
)

const dashboardTopSold = 5 // productos en el widget de más vendidos

// DashboardUseCase genera el resumen del día y del mes en curso.
// Solo lee: no toca el libro ni las alertas.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	alertRepo     repository.InventoryAlertRepository
	now           func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, alertRepo repository.InventoryAlertRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, alertRepo: alertRepo, now: time.Now}
}

// GetSummary arma el tablero con cinco consultas en paralelo.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := uc.now()

	// Hoy: 00:00:00.000 – 23:59:59.999; mes: día 1 a las 00:00 – fin de hoy.
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.Add(24*time.Hour - time.Nanosecond)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var (
		valuation    repository.StockValuation
		today, month []repository.MovementTotals
		top          []repository.TopMover
		openAlerts   map[entity.AlertType]int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		valuation, err = uc.analyticsRepo.StockValuation(gctx)
		return wrap("valorización", err)
	})
	g.Go(func() (err error) {
		today, err = uc.analyticsRepo.MovementTotals(gctx, todayStart, todayEnd)
		return wrap("movimientos de hoy", err)
	})
	g.Go(func() (err error) {
		month, err = uc.analyticsRepo.MovementTotals(gctx, monthStart, todayEnd)
		return wrap("movimientos del mes", err)
	})
	g.Go(func() (err error) {
		top, err = uc.analyticsRepo.TopSold(gctx, monthStart, todayEnd, dashboardTopSold)
		return wrap("más vendidos", err)
	})
	g.Go(func() (err error) {
		openAlerts, err = uc.alertRepo.CountUnresolvedByType(gctx)
		return wrap("alertas abiertas", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := &dto.DashboardSummaryDTO{
		Stock: dto.StockValuationDTO{
			Products:    valuation.Products,
			Units:       valuation.Units,
			CostValue:   valuation.CostValue.Round(2),
			RetailValue: valuation.RetailValue.Round(2),
		},
		Today:      flow(today),
		Month:      flow(month),
		TopSold:    make([]dto.TopMoverDTO, 0, len(top)),
		OpenAlerts: make(map[string]int, 4),
		DateLabel:  monthLabel(now),
	}
	for _, t := range top {
		out.TopSold = append(out.TopSold, dto.TopMoverDTO{
			ProductID: t.ProductID,
			SKU:       t.SKU,
			Name:      t.Name,
			Units:     t.Units,
			Revenue:   t.Revenue.Round(2),
		})
	}
	for _, t := range append(append([]entity.AlertType{}, entity.StockAlertTypes...), entity.ExpiryAlertTypes...) {
		out.OpenAlerts[string(t)] = openAlerts[t]
	}
	return out, nil
}

func wrap(what string, err error) error {
	if err != nil {
		return fmt.Errorf("dashboard: %s: %w", what, err)
	}
	return nil
}

// flow suma entradas y salidas según el signo de cada tipo de movimiento.
func flow(totals []repository.MovementTotals) dto.PeriodFlowDTO {
	f := dto.PeriodFlowDTO{
		SalesRevenue: decimal.Zero,
		ByType:       make([]dto.MovementTotalsDTO, 0, len(totals)),
	}
	for _, t := range totals {
		if t.Type.Increases() {
			f.UnitsIn += t.Units
		} else {
			f.UnitsOut += t.Units
		}
		if t.Type == entity.MovementSale {
			f.SalesRevenue = t.Value.Round(2)
		}
		f.ByType = append(f.ByType, dto.MovementTotalsDTO{
			Type:  string(t.Type),
			Count: t.Count,
			Units: t.Units,
			Value: t.Value.Round(2),
		})
	}
	return f
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
