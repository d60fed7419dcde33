package inventory_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-panel/internal/application/dto"
	appinv "github.com/jhoicas/inventario-panel/internal/application/inventory"
	"github.com/jhoicas/inventario-panel/internal/domain"
	"github.com/jhoicas/inventario-panel/internal/domain/entity"
	"github.com/jhoicas/inventario-panel/internal/domain/inventory"
	"github.com/jhoicas/inventario-panel/internal/domain/repository"
)

// applyOp decodifica un entero en una operación sobre uno de tres productos (P0..P2):
// entrada, salida, edición de cantidad, baja, fila importada o alta.
func applyOp(ctx context.Context, f *fixture, v int) error {
	code := fmt.Sprintf("P%d", v%3)
	qty := int64((v/15)%25 + 1)
	p, err := f.store.Products().GetByCode(ctx, code)
	if err != nil {
		return err
	}

	switch (v / 3) % 6 {
	case 0, 1:
		if p == nil {
			return nil
		}
		kind := entity.MovementStockIn
		if (v/3)%6 == 1 {
			kind = entity.MovementStockOut
		}
		before := p.Quantity
		_, err := f.movements.ApplyMovement(ctx, appinv.MovementInput{ProductID: p.ID, Kind: kind, Quantity: qty})
		if errors.Is(err, domain.ErrInsufficientStock) {
			if kind != entity.MovementStockOut || before >= qty {
				return fmt.Errorf("stock insuficiente inesperado: antes=%d q=%d", before, qty)
			}
			return nil
		}
		return err
	case 2:
		if p == nil {
			return nil
		}
		newQty := qty - 1
		_, err := f.products.Update(ctx, testActor, p.ID, dto.UpdateProductRequest{Quantity: &newQty})
		return err
	case 3:
		if p == nil {
			return nil
		}
		_, err := f.products.Delete(ctx, testActor, p.ID, "")
		return err
	case 4:
		row := inventory.RowFromStrings(map[string]string{
			"codigo":     code,
			"nome":       "Producto " + code,
			"quantidade": fmt.Sprint(qty - 1),
			"preco":      fmt.Sprint(v % 2),
		})
		sum, err := f.reconcile.Reconcile(ctx, appinv.NewSliceSource([]inventory.RawRow{row}), appinv.ReconcileInput{Source: "prop"})
		if err != nil {
			return err
		}
		if len(sum.Errors) > 0 {
			return fmt.Errorf("fila importada rechazada: %s", sum.Errors[0].Message)
		}
		return nil
	default:
		if p != nil {
			return nil
		}
		_, err := f.products.Create(ctx, testActor, dto.CreateProductRequest{Code: code, Name: "Producto " + code, Quantity: qty})
		return err
	}
}

func TestPropiedades_MotorDeMovimientos(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("el libro reconstruye la cantidad de cada producto desde cero", prop.ForAll(
		func(ops []int) bool {
			ctx := context.Background()
			f := newFixture(false)
			for _, v := range ops {
				if err := applyOp(ctx, f, v); err != nil {
					t.Logf("FAIL: operación %d: %v", v, err)
					return false
				}
			}

			products, err := f.store.Products().List(ctx, repository.ProductFilter{})
			if err != nil {
				return false
			}
			movs, err := f.store.Movements().List(ctx, repository.MovementFilter{})
			if err != nil {
				return false
			}

			perProduct := map[string]int64{}
			var global int64
			for _, m := range movs {
				global += m.SignedDelta()
				if m.ProductID != "" {
					perProduct[m.ProductID] += m.SignedDelta()
				}
			}
			var live int64
			for _, p := range products {
				if p.Quantity < 0 {
					t.Logf("FAIL: %s con cantidad negativa %d", p.Code, p.Quantity)
					return false
				}
				if perProduct[p.ID] != p.Quantity {
					t.Logf("FAIL: %s: libro=%d producto=%d", p.Code, perProduct[p.ID], p.Quantity)
					return false
				}
				live += p.Quantity
			}
			if global != live {
				t.Logf("FAIL: suma global del libro=%d, stock vivo=%d", global, live)
				return false
			}
			return true
		},
		gen.SliceOf(gen.IntRange(0, 9999)),
	))

	properties.Property("una salida nunca deja stock negativo", prop.ForAll(
		func(initial int, out int) bool {
			ctx := context.Background()
			f := newFixture(false)
			p, err := f.products.Create(ctx, testActor, dto.CreateProductRequest{Code: "X", Name: "X", Quantity: int64(initial)})
			if err != nil {
				return false
			}
			got, err := f.movements.ApplyMovement(ctx, appinv.MovementInput{ProductID: p.ID, Kind: entity.MovementStockOut, Quantity: int64(out)})
			stored, _ := f.store.Products().GetByID(ctx, p.ID)
			if out > initial {
				return errors.Is(err, domain.ErrInsufficientStock) && stored.Quantity == int64(initial)
			}
			return err == nil && got.Quantity == int64(initial-out) && stored.Quantity >= 0
		},
		gen.IntRange(0, 500),
		gen.IntRange(1, 600),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestPropiedades_Conciliacion(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("conciliar dos veces las mismas filas no cambia nada la segunda vez", prop.ForAll(
		func(values []int) bool {
			ctx := context.Background()
			f := newFixture(false)

			raw := make([]inventory.RawRow, 0, len(values))
			for i, v := range values {
				raw = append(raw, inventory.RowFromStrings(map[string]string{
					"code":      fmt.Sprintf("C%d", i),
					"name":      fmt.Sprintf("Item %d", v%13),
					"quantity":  fmt.Sprintf("%d", v%100),
					"price":     fmt.Sprintf("%d,%02d", v%50, v%100),
					"categoria": []string{"", "Geral", "Ferragens"}[v%3],
				}))
			}

			first, err := f.reconcile.Reconcile(ctx, appinv.NewSliceSource(raw), appinv.ReconcileInput{Source: "p"})
			if err != nil || len(first.Errors) > 0 || first.Inserted != len(values) {
				t.Logf("FAIL: primera ejecución %+v (%v)", first, err)
				return false
			}
			before, _ := f.store.Movements().List(ctx, repository.MovementFilter{})

			second, err := f.reconcile.Reconcile(ctx, appinv.NewSliceSource(raw), appinv.ReconcileInput{Source: "p"})
			if err != nil {
				return false
			}
			after, _ := f.store.Movements().List(ctx, repository.MovementFilter{})
			if second.Skipped != len(values) || second.Inserted+second.Updated != 0 || len(second.Errors) != 0 {
				t.Logf("FAIL: segunda ejecución %+v", second)
				return false
			}
			return len(after) == len(before)
		},
		gen.SliceOf(gen.IntRange(0, 100000)),
	))

	properties.Property("dos productos no comparten código", prop.ForAll(
		func(code string, otherCode string) bool {
			ctx := context.Background()
			f := newFixture(false)
			first, err := f.products.Create(ctx, testActor, dto.CreateProductRequest{Code: code, Name: "Original", Quantity: 1, Price: decimal.NewFromInt(1)})
			if err != nil {
				return false
			}
			_, err = f.products.Create(ctx, testActor, dto.CreateProductRequest{Code: code, Name: "Copia", Quantity: 2})
			if !errors.Is(err, domain.ErrDuplicate) {
				t.Logf("FAIL: alta duplicada aceptada para %q", code)
				return false
			}

			if otherCode != code {
				second, err := f.products.Create(ctx, testActor, dto.CreateProductRequest{Code: otherCode, Name: "Otro"})
				if err != nil {
					return false
				}
				_, err = f.products.Update(ctx, testActor, second.ID, dto.UpdateProductRequest{Code: &code})
				if !errors.Is(err, domain.ErrDuplicate) {
					t.Logf("FAIL: edición a código duplicado aceptada")
					return false
				}
			}

			stored, _ := f.store.Products().GetByCode(ctx, code)
			return stored != nil && stored.ID == first.ID && stored.Name == "Original"
		},
		gen.RegexMatch(`[A-Z]{1,3}[0-9]{1,3}`),
		gen.RegexMatch(`[A-Z]{1,3}[0-9]{1,3}`),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
