package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-panel/internal/application/dto"
	appinv "github.com/jhoicas/inventario-panel/internal/application/inventory"
	"github.com/jhoicas/inventario-panel/internal/domain"
	"github.com/jhoicas/inventario-panel/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// ApplyMovement
// ──────────────────────────────────────────────────────────────────────────────

func TestApplyMovement_EntradaSumaYRegistra(t *testing.T) {
	f := newFixture(false)
	p := f.createProduct(t, "A1", "Widget", 10)

	got, err := f.movements.ApplyMovement(context.Background(), appinv.MovementInput{
		ProductID: p.ID, Kind: entity.MovementStockIn, Quantity: 5, Actor: testActor,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(15), got.Quantity)

	movs := f.allMovements(t)
	require.Len(t, movs, 2, "creation + stock_in")
	last := movs[0]
	assert.Equal(t, entity.MovementStockIn, last.Kind)
	assert.Equal(t, int64(5), last.QuantityDelta)
	assert.Equal(t, int64(10), last.QuantityBefore)
	assert.Equal(t, int64(15), last.QuantityAfter)
	assert.Equal(t, "Entrada manual", last.Note)
	assert.Equal(t, testActor, last.CreatedBy)
}

func TestApplyMovement_SalidaSinStockNoCambiaNada(t *testing.T) {
	f := newFixture(false)
	p := f.createProduct(t, "A1", "Widget", 15)

	_, err := f.movements.ApplyMovement(context.Background(), appinv.MovementInput{
		ProductID: p.ID, Kind: entity.MovementStockOut, Quantity: 20,
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, domain.KindInsufficientStock, domain.ErrorKind(err))

	assert.Equal(t, int64(15), f.product(t, "A1").Quantity, "la cantidad no cambia")
	assert.Len(t, f.allMovements(t), 1, "solo la entrada de creación")
}

func TestApplyMovement_SalidaExactaDejaCero(t *testing.T) {
	f := newFixture(false)
	p := f.createProduct(t, "A1", "Widget", 4)

	got, err := f.movements.ApplyMovement(context.Background(), appinv.MovementInput{
		ProductID: p.ID, Kind: entity.MovementStockOut, Quantity: 4, Note: "venta mostrador",
	})
	require.NoError(t, err)
	assert.Zero(t, got.Quantity)
	assert.Equal(t, "venta mostrador", f.allMovements(t)[0].Note)
}

func TestApplyMovement_CantidadInvalida(t *testing.T) {
	f := newFixture(false)
	p := f.createProduct(t, "A1", "Widget", 4)

	for _, q := range []int64{0, -3} {
		_, err := f.movements.ApplyMovement(context.Background(), appinv.MovementInput{
			ProductID: p.ID, Kind: entity.MovementStockIn, Quantity: q,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity, "cantidad %d", q)
	}
	assert.Len(t, f.allMovements(t), 1)
}

func TestApplyMovement_ProductoInexistente(t *testing.T) {
	f := newFixture(false)
	_, err := f.movements.ApplyMovement(context.Background(), appinv.MovementInput{
		ProductID: "no-existe", Kind: entity.MovementStockIn, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestApplyMovement_TipoNoPermitido(t *testing.T) {
	f := newFixture(false)
	p := f.createProduct(t, "A1", "Widget", 4)
	_, err := f.movements.ApplyMovement(context.Background(), appinv.MovementInput{
		ProductID: p.ID, Kind: entity.MovementAdjustment, Quantity: 1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApplyMovementFromRequest(t *testing.T) {
	f := newFixture(false)
	p := f.createProduct(t, "A1", "Widget", 4)
	resp, err := f.movements.ApplyMovementFromRequest(context.Background(), testActor, dto.ApplyMovementRequest{
		ProductID: p.ID, Kind: "stock_out", Quantity: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.Quantity)
}

// ──────────────────────────────────────────────────────────────────────────────
// Libro de movimientos
// ──────────────────────────────────────────────────────────────────────────────

func TestLedger_ListaMasRecientePrimeroConLimite(t *testing.T) {
	f := newFixture(false)
	p := f.createProduct(t, "A1", "Widget", 0)
	for i := 0; i < 3; i++ {
		_, err := f.movements.ApplyMovement(context.Background(), appinv.MovementInput{
			ProductID: p.ID, Kind: entity.MovementStockIn, Quantity: int64(i + 1),
		})
		require.NoError(t, err)
	}

	list, err := f.ledger.List(context.Background(), repositoryFilter(2, ""))
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(3), list[0].QuantityDelta, "la última entrada va primero")
	assert.Equal(t, int64(2), list[1].QuantityDelta)
}

func TestLedger_TipoDesconocido(t *testing.T) {
	f := newFixture(false)
	_, err := f.ledger.List(context.Background(), repositoryFilter(0, "robo"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLedger_BorradoDeshabilitado(t *testing.T) {
	f := newFixture(false)
	f.createProduct(t, "A1", "Widget", 1)
	mov := f.allMovements(t)[0]

	err := f.ledger.Delete(context.Background(), testActor, mov.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Len(t, f.allMovements(t), 1)
}

func TestLedger_BorradoHabilitadoNoTocaStock(t *testing.T) {
	f := newFixture(true)
	f.createProduct(t, "A1", "Widget", 7)
	mov := f.allMovements(t)[0]

	require.NoError(t, f.ledger.Delete(context.Background(), testActor, mov.ID))
	assert.Empty(t, f.allMovements(t), "no se registra ninguna entrada nueva")
	assert.Equal(t, int64(7), f.product(t, "A1").Quantity)

	err := f.ledger.Delete(context.Background(), testActor, mov.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
