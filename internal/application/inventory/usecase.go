package inventory

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/jhoicas/inventario-panel/internal/domain"
	"github.com/jhoicas/inventario-panel/internal/domain/entity"
	"github.com/jhoicas/inventario-panel/internal/domain/repository"
	"github.com/jhoicas/inventario-panel/pkg/logger"
)

// MovementUseCase motor de movimientos: entradas y salidas manuales de stock con
// bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
type MovementUseCase struct {
	txRunner TxRunner
	log      *logger.Logger
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(txRunner TxRunner, log *logger.Logger) *MovementUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &MovementUseCase{txRunner: txRunner, log: log}
}

// MovementInput entrada para aplicar un movimiento manual.
type MovementInput struct {
	ProductID string
	Kind      entity.MovementKind // stock_in | stock_out
	Quantity  int64
	Note      string
	Actor     string
}

// ApplyMovement inicia una transacción, bloquea el producto, ajusta la cantidad y
// registra la entrada del libro. Si algo falla no queda ningún cambio.
func (uc *MovementUseCase) ApplyMovement(ctx context.Context, in MovementInput) (*entity.Product, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	if in.Kind != entity.MovementStockIn && in.Kind != entity.MovementStockOut {
		return nil, domain.NewValidationError("kind", "debe ser stock_in o stock_out")
	}
	if strings.TrimSpace(in.ProductID) == "" {
		return nil, domain.NewValidationError("product_id", "es obligatorio")
	}

	var result *entity.Product
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, movementRepo repository.MovementRepository) error {
		p, err := productRepo.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrProductNotFound
		}

		before := p.Quantity
		switch in.Kind {
		case entity.MovementStockIn:
			if p.Quantity > math.MaxInt64-in.Quantity {
				return domain.NewValidationError("quantity", "la cantidad resultante excede el máximo")
			}
			p.Quantity += in.Quantity
		case entity.MovementStockOut:
			if p.Quantity < in.Quantity {
				return domain.ErrInsufficientStock
			}
			p.Quantity -= in.Quantity
		}

		now := time.Now().UTC()
		p.UpdatedAt = now
		if err := productRepo.Update(ctx, p); err != nil {
			return err
		}

		note := strings.TrimSpace(in.Note)
		if note == "" {
			note = defaultMovementNote(in.Kind)
		}
		mov := newMovement(p, in.Kind, before, note, in.Actor, now)
		if err := movementRepo.Create(ctx, mov); err != nil {
			return err
		}
		result = p
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			uc.log.Warn().Str("product_id", in.ProductID).Int64("quantity", in.Quantity).Msg("salida rechazada por stock insuficiente")
		} else if !errors.Is(err, domain.ErrProductNotFound) {
			uc.log.Error().Err(err).Str("product_id", in.ProductID).Str("kind", string(in.Kind)).Msg("error aplicando movimiento")
		}
		return nil, err
	}

	uc.log.Info().
		Str("product_id", result.ID).
		Str("kind", string(in.Kind)).
		Int64("quantity", in.Quantity).
		Int64("stock", result.Quantity).
		Str("actor", in.Actor).
		Msg("movimiento aplicado")
	return result, nil
}

func defaultMovementNote(kind entity.MovementKind) string {
	if kind == entity.MovementStockOut {
		return "Salida manual"
	}
	return "Entrada manual"
}

// newMovement construye la entrada del libro para p, que ya tiene la cantidad final.
func newMovement(p *entity.Product, kind entity.MovementKind, before int64, note, actor string, now time.Time) *entity.Movement {
	delta := p.Quantity - before
	if delta < 0 {
		delta = -delta
	}
	return &entity.Movement{
		ProductID:      p.ID,
		ProductName:    p.Name,
		Kind:           kind,
		QuantityDelta:  delta,
		QuantityBefore: before,
		QuantityAfter:  p.Quantity,
		Note:           note,
		CreatedBy:      actor,
		OccurredAt:     now,
	}
}
