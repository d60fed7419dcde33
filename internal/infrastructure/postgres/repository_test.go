package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-panel/internal/application/dto"
	appinv "github.com/jhoicas/inventario-panel/internal/application/inventory"
	"github.com/jhoicas/inventario-panel/internal/application/usecase"
	"github.com/jhoicas/inventario-panel/internal/domain"
	"github.com/jhoicas/inventario-panel/internal/domain/entity"
	"github.com/jhoicas/inventario-panel/internal/domain/inventory"
	"github.com/jhoicas/inventario-panel/internal/domain/repository"
	"github.com/jhoicas/inventario-panel/internal/infrastructure/postgres"
)

func newProduct(code, name string, qty int64, price string, category string) *entity.Product {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return &entity.Product{
		ID: uuid.New().String(), Code: code, Name: name, Quantity: qty,
		Price: decimal.RequireFromString(price), Category: category, AddedAt: now, UpdatedAt: now,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// ProductRepo
// ──────────────────────────────────────────────────────────────────────────────

func TestProductRepo_CrearYLeer(t *testing.T) {
	pool := requireDB(t)
	ctx := context.Background()
	repo := postgres.NewProductRepository(pool)

	p := newProduct("A1", "Widget", 10, "12.50", "Geral")
	require.NoError(t, repo.Create(ctx, p))

	got, err := repo.GetByCode(ctx, "A1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, int64(10), got.Quantity)
	assert.True(t, p.Price.Equal(got.Price), "precio: %s", got.Price)

	missing, err := repo.GetByID(ctx, uuid.New().String())
	require.NoError(t, err)
	assert.Nil(t, missing)

	invalid, err := repo.GetByID(ctx, "no-es-uuid")
	require.NoError(t, err)
	assert.Nil(t, invalid)
}

func TestProductRepo_CodigoUnico(t *testing.T) {
	pool := requireDB(t)
	ctx := context.Background()
	repo := postgres.NewProductRepository(pool)

	require.NoError(t, repo.Create(ctx, newProduct("A1", "Widget", 1, "1", "Geral")))
	err := repo.Create(ctx, newProduct("A1", "Otro", 2, "2", "Geral"))
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	b := newProduct("B1", "Gadget", 1, "1", "Geral")
	require.NoError(t, repo.Create(ctx, b))
	b.Code = "A1"
	assert.ErrorIs(t, repo.Update(ctx, b), domain.ErrDuplicate)
}

func TestProductRepo_ListFiltraYOrdena(t *testing.T) {
	pool := requireDB(t)
	ctx := context.Background()
	repo := postgres.NewProductRepository(pool)
	for _, p := range []*entity.Product{
		newProduct("F-01", "Porca", 5, "0.10", "Ferragens"),
		newProduct("F-02", "Martelo", 1, "30", "Ferragens"),
		newProduct("E-01", "Cabo 50%", 3, "4", "Eletro"),
	} {
		require.NoError(t, repo.Create(ctx, p))
	}

	list, err := repo.List(ctx, repository.ProductFilter{Category: "FERR", OrderBy: repository.ProductOrderCategory})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Martelo", list[0].Name)

	list, err = repo.List(ctx, repository.ProductFilter{Search: "50%"})
	require.NoError(t, err)
	require.Len(t, list, 1, "el % se busca literal")

	list, err = repo.List(ctx, repository.ProductFilter{Limit: 2, Offset: 1})
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo completo sobre Postgres
// ──────────────────────────────────────────────────────────────────────────────

func TestIntegracion_ConciliarMoverYEliminar(t *testing.T) {
	pool := requireDB(t)
	ctx := context.Background()
	tx := postgres.NewTxRunner(pool)
	products := usecase.NewProductUseCase(tx, postgres.NewProductRepository(pool), nil)
	movements := appinv.NewMovementUseCase(tx, nil)
	reconcile := appinv.NewReconcileUseCase(tx, inventory.NewNormalizer(), nil)
	movRepo := postgres.NewMovementRepository(pool)

	created, err := products.Create(ctx, "ana", dto.CreateProductRequest{Code: "A1", Name: "Widget", Quantity: 10, Price: decimal.NewFromInt(10)})
	require.NoError(t, err)

	sum, err := reconcile.Reconcile(ctx, appinv.NewSliceSource([]inventory.RawRow{
		inventory.RowFromStrings(map[string]string{"code": "A1", "name": "Widget", "quantity": "15", "price": "10"}),
		inventory.RowFromStrings(map[string]string{"code": "B1", "name": "Gadget", "quantity": "2", "price": "3,5"}),
	}), appinv.ReconcileInput{Source: "hoja", Actor: "ana"})
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Updated)
	assert.Equal(t, 1, sum.Inserted)

	_, err = movements.ApplyMovement(ctx, appinv.MovementInput{ProductID: created.ID, Kind: entity.MovementStockOut, Quantity: 20})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	got, err := products.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(15), got.Quantity)

	list, err := movRepo.List(ctx, repository.MovementFilter{ProductID: created.ID})
	require.NoError(t, err)
	require.Len(t, list, 2, "creation + stock_in")
	assert.Equal(t, entity.MovementStockIn, list[0].Kind)
	assert.Equal(t, int64(5), list[0].QuantityDelta)

	del, err := products.Delete(ctx, "ana", created.ID, "")
	require.NoError(t, err)
	assert.Nil(t, del.ProductID)

	all, err := movRepo.List(ctx, repository.MovementFilter{})
	require.NoError(t, err)
	var deletion *entity.Movement
	for _, m := range all {
		if m.ProductName == "Widget" {
			assert.Empty(t, m.ProductID, "ON DELETE SET NULL")
		}
		if m.Kind == entity.MovementDeletion {
			deletion = m
		}
	}
	require.NotNil(t, deletion)
	assert.Equal(t, "Widget", deletion.ProductName)
	assert.Equal(t, int64(15), deletion.QuantityDelta)
}

func TestIntegracion_RollbackSinEscrituraParcial(t *testing.T) {
	pool := requireDB(t)
	ctx := context.Background()
	tx := postgres.NewTxRunner(pool)
	repo := postgres.NewProductRepository(pool)

	p := newProduct("A1", "Widget", 1, "1", "Geral")
	err := tx.Run(ctx, func(productRepo repository.ProductRepository, movementRepo repository.MovementRepository) error {
		if err := productRepo.Create(ctx, p); err != nil {
			return err
		}
		if err := movementRepo.Create(ctx, &entity.Movement{
			ProductID: p.ID, ProductName: p.Name, Kind: entity.MovementCreation, QuantityDelta: 1, QuantityAfter: 1, OccurredAt: time.Now(),
		}); err != nil {
			return err
		}
		return productRepo.Create(ctx, newProduct("A1", "Duplicado", 1, "1", "Geral"))
	})
	require.ErrorIs(t, err, domain.ErrDuplicate)

	got, err := repo.GetByCode(ctx, "A1")
	require.NoError(t, err)
	assert.Nil(t, got, "el alta se deshace")

	list, err := postgres.NewMovementRepository(pool).List(ctx, repository.MovementFilter{ProductID: p.ID})
	require.NoError(t, err)
	assert.Empty(t, list, "la entrada se deshace con el alta")
}

func TestMovementRepo_ProductoEliminadoNoRechazaLaEntrada(t *testing.T) {
	pool := requireDB(t)
	ctx := context.Background()
	products := postgres.NewProductRepository(pool)
	movements := postgres.NewMovementRepository(pool)

	p := newProduct("G-01", "Widget", 5, "1", "Geral")
	require.NoError(t, products.Create(ctx, p))
	require.NoError(t, products.Delete(ctx, p.ID))

	m := &entity.Movement{
		ProductID: p.ID, ProductName: "Widget", Kind: entity.MovementStockOut,
		QuantityDelta: 2, QuantityBefore: 5, QuantityAfter: 3, OccurredAt: time.Now(),
	}
	require.NoError(t, movements.Create(ctx, m))
	assert.Empty(t, m.ProductID, "la entrada queda sin producto")

	got, err := movements.GetByID(ctx, m.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got.ProductID)
	assert.Equal(t, "Widget", got.ProductName)
	assert.Equal(t, entity.MovementStockOut, got.Kind)
}

func TestReportRepo_Totales(t *testing.T) {
	pool := requireDB(t)
	ctx := context.Background()
	repo := postgres.NewProductRepository(pool)
	require.NoError(t, repo.Create(ctx, newProduct("F-01", "Parafuso", 100, "0.25", "Ferragens")))
	require.NoError(t, repo.Create(ctx, newProduct("E-01", "Cabo", 5, "4", "Eletro")))

	reports := postgres.NewReportRepository(pool)
	totals, err := reports.GetTotals(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, totals.ProductCount)
	assert.Equal(t, int64(105), totals.TotalQuantity)
	assert.True(t, decimal.NewFromInt(45).Equal(totals.TotalValue))

	cats, err := reports.GetCategoryTotals(ctx)
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Equal(t, "Eletro", cats[0].Category)

	names, err := reports.ListCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Eletro", "Ferragens"}, names)
}
