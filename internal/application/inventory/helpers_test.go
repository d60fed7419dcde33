package inventory_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-panel/internal/application/dto"
	appinv "github.com/jhoicas/inventario-panel/internal/application/inventory"
	"github.com/jhoicas/inventario-panel/internal/application/usecase"
	"github.com/jhoicas/inventario-panel/internal/domain/entity"
	"github.com/jhoicas/inventario-panel/internal/domain/inventory"
	"github.com/jhoicas/inventario-panel/internal/domain/repository"
	"github.com/jhoicas/inventario-panel/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testActor = "operador"

type fixture struct {
	store     *memory.Store
	movements *appinv.MovementUseCase
	reconcile *appinv.ReconcileUseCase
	products  *usecase.ProductUseCase
	ledger    *appinv.LedgerUseCase
}

func newFixture(allowLedgerDelete bool) *fixture {
	store := memory.NewStore()
	return &fixture{
		store:     store,
		movements: appinv.NewMovementUseCase(store, nil),
		reconcile: appinv.NewReconcileUseCase(store, inventory.NewNormalizer(), nil),
		products:  usecase.NewProductUseCase(store, store.Products(), nil),
		ledger:    appinv.NewLedgerUseCase(store.Movements(), appinv.LedgerConfig{AllowDelete: allowLedgerDelete}, nil),
	}
}

// createProduct da de alta un producto por el caso de uso (con movimiento "creation").
func (f *fixture) createProduct(t *testing.T, code, name string, qty int64) *dto.ProductResponse {
	t.Helper()
	p, err := f.products.Create(context.Background(), testActor, dto.CreateProductRequest{
		Code: code, Name: name, Quantity: qty, Price: decimal.NewFromInt(10), Category: "Geral",
	})
	require.NoError(t, err)
	return p
}

func (f *fixture) product(t *testing.T, code string) *entity.Product {
	t.Helper()
	p, err := f.store.Products().GetByCode(context.Background(), code)
	require.NoError(t, err)
	return p
}

func (f *fixture) allMovements(t *testing.T) []*entity.Movement {
	t.Helper()
	list, err := f.store.Movements().List(context.Background(), repository.MovementFilter{})
	require.NoError(t, err)
	return list
}

func rows(maps ...map[string]string) *appinv.SliceSource {
	raw := make([]inventory.RawRow, len(maps))
	for i, m := range maps {
		raw[i] = inventory.RowFromStrings(m)
	}
	return appinv.NewSliceSource(raw)
}

func repositoryFilter(limit int, kind string) repository.MovementFilter {
	return repository.MovementFilter{Limit: limit, Kind: entity.MovementKind(kind)}
}
