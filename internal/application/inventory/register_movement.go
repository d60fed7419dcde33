package inventory

import (
	"context"

	"github.com/jhoicas/inventario-panel/internal/application/dto"
	"github.com/jhoicas/inventario-panel/internal/domain/entity"
)

// ApplyMovementFromRequest adapta el request HTTP al caso de uso ApplyMovement(ctx, MovementInput).
// Usar desde handlers HTTP o desde el CLI, que tienen el actor y un dto.ApplyMovementRequest.
func (uc *MovementUseCase) ApplyMovementFromRequest(ctx context.Context, actor string, in dto.ApplyMovementRequest) (*dto.ProductResponse, error) {
	p, err := uc.ApplyMovement(ctx, MovementInput{
		ProductID: in.ProductID,
		Kind:      entity.MovementKind(in.Kind),
		Quantity:  in.Quantity,
		Note:      in.Note,
		Actor:     actor,
	})
	if err != nil {
		return nil, err
	}
	return dto.NewProductResponse(p), nil
}
