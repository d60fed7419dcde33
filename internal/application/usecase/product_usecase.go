package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-panel/internal/application/dto"
	"github.com/jhoicas/inventario-panel/internal/application/inventory"
	"github.com/jhoicas/inventario-panel/internal/domain"
	"github.com/jhoicas/inventario-panel/internal/domain/entity"
	"github.com/jhoicas/inventario-panel/internal/domain/repository"
	"github.com/jhoicas/inventario-panel/pkg/logger"
)

// ProductUseCase casos de uso CRUD para productos. Toda alta, edición o baja deja
// su entrada en el libro dentro de la misma transacción.
type ProductUseCase struct {
	txRunner inventory.TxRunner
	repo     repository.ProductRepository
	log      *logger.Logger
}

// NewProductUseCase construye el caso de uso. repo se usa para las lecturas fuera de tx.
func NewProductUseCase(txRunner inventory.TxRunner, repo repository.ProductRepository, log *logger.Logger) *ProductUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ProductUseCase{txRunner: txRunner, repo: repo, log: log}
}

// Create crea un nuevo producto y registra un movimiento "creation".
func (uc *ProductUseCase) Create(ctx context.Context, actor string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	now := time.Now().UTC()
	product := &entity.Product{
		ID:        uuid.New().String(),
		Code:      in.Code,
		Name:      in.Name,
		Quantity:  in.Quantity,
		Price:     in.Price,
		Category:  in.Category,
		AddedAt:   now,
		UpdatedAt: now,
	}
	product.Normalize()
	if err := product.Validate(); err != nil {
		return nil, err
	}

	note := strings.TrimSpace(in.Note)
	if note == "" {
		note = "Producto creado desde el panel"
	}
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, movementRepo repository.MovementRepository) error {
		existing, err := productRepo.GetByCode(ctx, product.Code)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicate
		}
		if err := productRepo.Create(ctx, product); err != nil {
			return err
		}
		return movementRepo.Create(ctx, productMovement(product, entity.MovementCreation, 0, note, actor, now))
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("product_id", product.ID).Str("code", product.Code).Str("actor", actor).Msg("producto creado")
	return dto.NewProductResponse(product), nil
}

// GetByID obtiene un producto por ID. Devuelve (nil, nil) si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return dto.NewProductResponse(product), nil
}

// List lista productos con filtros opcionales.
func (uc *ProductUseCase) List(ctx context.Context, filter repository.ProductFilter) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return dto.NewProductListResponse(list, filter.Limit, filter.Offset), nil
}

// Update aplica los campos no nulos. Si cambia la cantidad registra "adjustment";
// si solo cambian datos, "update". Sin cambios no escribe nada.
func (uc *ProductUseCase) Update(ctx context.Context, actor, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	var result *entity.Product
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, movementRepo repository.MovementRepository) error {
		product, err := productRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		old := product.Clone()

		if in.Code != nil {
			product.Code = *in.Code
		}
		if in.Name != nil {
			product.Name = *in.Name
		}
		if in.Quantity != nil {
			product.Quantity = *in.Quantity
		}
		if in.Price != nil {
			product.Price = *in.Price
		}
		if in.Category != nil {
			product.Category = *in.Category
		}
		product.Normalize()
		if err := product.Validate(); err != nil {
			return err
		}

		fields := changedFields(old, product)
		if len(fields) == 0 {
			result = product
			return nil
		}
		if product.Code != old.Code {
			other, err := productRepo.GetByCode(ctx, product.Code)
			if err != nil {
				return err
			}
			if other != nil && other.ID != product.ID {
				return domain.ErrDuplicate
			}
		}

		now := time.Now().UTC()
		product.UpdatedAt = now
		if err := productRepo.Update(ctx, product); err != nil {
			return err
		}
		kind := entity.MovementUpdate
		if product.Quantity != old.Quantity {
			kind = entity.MovementAdjustment
		}
		note := fmt.Sprintf("Editado desde el panel (%s)", strings.Join(fields, ", "))
		if old.Name != product.Name {
			note = fmt.Sprintf("Editado desde el panel: %s -> %s (%s)", old.Name, product.Name, strings.Join(fields, ", "))
		}
		if err := movementRepo.Create(ctx, productMovement(product, kind, old.Quantity, note, actor, now)); err != nil {
			return err
		}
		result = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto.NewProductResponse(result), nil
}

// Delete elimina el producto y registra un movimiento "deletion" que conserva el
// nombre; el producto ya no existe, así que la entrada queda sin product_id.
func (uc *ProductUseCase) Delete(ctx context.Context, actor, id, note string) (*dto.MovementResponse, error) {
	note = strings.TrimSpace(note)
	if note == "" {
		note = "Producto eliminado desde el panel"
	}
	var mov *entity.Movement
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, movementRepo repository.MovementRepository) error {
		product, err := productRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}
		if err := productRepo.Delete(ctx, product.ID); err != nil {
			return err
		}
		mov = &entity.Movement{
			ProductName:    product.Name,
			Kind:           entity.MovementDeletion,
			QuantityDelta:  product.Quantity,
			QuantityBefore: product.Quantity,
			QuantityAfter:  0,
			Note:           note,
			CreatedBy:      actor,
			OccurredAt:     time.Now().UTC(),
		}
		return movementRepo.Create(ctx, mov)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("product_id", id).Str("actor", actor).Msg("producto eliminado")
	return dto.NewMovementResponse(mov), nil
}

// DeleteMany elimina varios productos; los ids inexistentes se ignoran.
// Cada baja es atómica por separado: ante un error devuelve las ya realizadas.
func (uc *ProductUseCase) DeleteMany(ctx context.Context, actor string, ids []string, note string) ([]dto.MovementResponse, error) {
	out := make([]dto.MovementResponse, 0, len(ids))
	for _, id := range ids {
		mov, err := uc.Delete(ctx, actor, id, note)
		if errors.Is(err, domain.ErrProductNotFound) {
			continue
		}
		if err != nil {
			return out, err
		}
		out = append(out, *mov)
	}
	return out, nil
}

func changedFields(old, cur *entity.Product) []string {
	var fields []string
	if old.Code != cur.Code {
		fields = append(fields, "code")
	}
	if old.Name != cur.Name {
		fields = append(fields, "name")
	}
	if !old.Price.Equal(cur.Price) {
		fields = append(fields, "price")
	}
	if old.Category != cur.Category {
		fields = append(fields, "category")
	}
	if old.Quantity != cur.Quantity {
		fields = append(fields, "quantity")
	}
	return fields
}

func productMovement(p *entity.Product, kind entity.MovementKind, before int64, note, actor string, now time.Time) *entity.Movement {
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
