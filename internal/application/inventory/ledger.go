package inventory

import (
	"context"

	"github.com/jhoicas/inventario-panel/internal/application/dto"
	"github.com/jhoicas/inventario-panel/internal/domain"
	"github.com/jhoicas/inventario-panel/internal/domain/repository"
	"github.com/jhoicas/inventario-panel/pkg/logger"
)

const (
	defaultLedgerPage = 200
	maxLedgerPage     = 1000
)

// LedgerConfig opciones del libro de movimientos.
type LedgerConfig struct {
	PageSize    int  // LEDGER_PAGE_SIZE
	AllowDelete bool // LEDGER_ALLOW_DELETE
}

// LedgerUseCase consulta del libro y borrado administrativo de entradas.
type LedgerUseCase struct {
	movementRepo repository.MovementRepository
	cfg          LedgerConfig
	log          *logger.Logger
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(movementRepo repository.MovementRepository, cfg LedgerConfig, log *logger.Logger) *LedgerUseCase {
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultLedgerPage
	}
	if cfg.PageSize > maxLedgerPage {
		cfg.PageSize = maxLedgerPage
	}
	if log == nil {
		log = logger.Nop()
	}
	return &LedgerUseCase{movementRepo: movementRepo, cfg: cfg, log: log}
}

// List devuelve las entradas más recientes primero. Limit 0 usa el tamaño de página configurado.
func (uc *LedgerUseCase) List(ctx context.Context, filter repository.MovementFilter) ([]dto.MovementResponse, error) {
	if filter.Limit <= 0 {
		filter.Limit = uc.cfg.PageSize
	}
	if filter.Limit > maxLedgerPage {
		filter.Limit = maxLedgerPage
	}
	if filter.Kind != "" && !filter.Kind.Valid() {
		return nil, domain.NewValidationError("kind", "tipo de movimiento desconocido")
	}
	list, err := uc.movementRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return dto.NewMovementList(list), nil
}

// Delete borra una entrada del libro. Solo se permite con LEDGER_ALLOW_DELETE; el
// stock del producto no cambia y no se registra ninguna entrada nueva.
func (uc *LedgerUseCase) Delete(ctx context.Context, actor, id string) error {
	if !uc.cfg.AllowDelete {
		return domain.ErrForbidden
	}
	mov, err := uc.movementRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if mov == nil {
		return domain.ErrNotFound
	}
	if err := uc.movementRepo.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Warn().
		Str("movement_id", id).
		Str("kind", string(mov.Kind)).
		Str("product_name", mov.ProductName).
		Str("actor", actor).
		Msg("entrada del libro eliminada; el historial ya no reconstruye el stock")
	return nil
}
