package inventory

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-panel/internal/application/dto"
	"github.com/jhoicas/inventario-panel/internal/domain"
	"github.com/jhoicas/inventario-panel/internal/domain/entity"
	"github.com/jhoicas/inventario-panel/internal/domain/inventory"
	"github.com/jhoicas/inventario-panel/internal/domain/repository"
	"github.com/jhoicas/inventario-panel/pkg/logger"
)

// DefaultImportSource etiqueta usada cuando el llamador no indica el origen.
const DefaultImportSource = "importación"

// maxCodeAttempts reintentos cuando un código sintetizado ya existe en el catálogo.
const maxCodeAttempts = 3

var errGeneratedCodeTaken = errors.New("código generado ya existe")

// ReconcileUseCase concilia filas externas (planilla, CSV, hoja remota) contra el catálogo.
// Cada fila se aplica en su propia transacción: un fallo afecta solo a esa fila.
type ReconcileUseCase struct {
	txRunner   TxRunner
	normalizer *inventory.Normalizer
	log        *logger.Logger
}

// NewReconcileUseCase construye el caso de uso. normalizer nil usa el de por defecto.
func NewReconcileUseCase(txRunner TxRunner, normalizer *inventory.Normalizer, log *logger.Logger) *ReconcileUseCase {
	if normalizer == nil {
		normalizer = inventory.NewNormalizer()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &ReconcileUseCase{txRunner: txRunner, normalizer: normalizer, log: log}
}

// ReconcileInput datos de la importación.
type ReconcileInput struct {
	Source string // etiqueta legible del origen (nombre de archivo, hoja remota)
	Actor  string
}

// importRun estado de una ejecución de Reconcile.
type importRun struct {
	source  string
	actor   string
	summary *dto.ImportSummary
	seen    map[string]inventory.Candidate // código -> primera fila aceptada en esta ejecución
}

// Reconcile recorre src fila a fila. Devuelve siempre el resumen; el error solo es
// no nulo si ctx se cancela, en cuyo caso Interrupted queda en true y las filas ya
// aplicadas permanecen.
func (uc *ReconcileUseCase) Reconcile(ctx context.Context, src RowSource, in ReconcileInput) (*dto.ImportSummary, error) {
	started := time.Now().UTC()
	source := strings.TrimSpace(in.Source)
	if source == "" {
		source = DefaultImportSource
	}
	run := &importRun{
		source:  source,
		actor:   in.Actor,
		summary: &dto.ImportSummary{Source: source, StartedAt: started, Errors: []dto.RowError{}},
		seen:    make(map[string]inventory.Candidate),
	}
	sum := run.summary

	var runErr error
	for {
		if err := ctx.Err(); err != nil {
			sum.Interrupted = true
			runErr = err
			break
		}
		row, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var readErr *RowReadError
			if errors.As(err, &readErr) {
				sum.Errors = append(sum.Errors, dto.RowError{Row: readErr.Line, Kind: domain.KindValidation, Message: readErr.Err.Error()})
				continue
			}
			uc.log.Error().Err(err).Str("source", source).Msg("error leyendo el origen de la importación")
			sum.Errors = append(sum.Errors, dto.RowError{Row: 0, Kind: domain.KindPersistence, Message: err.Error()})
			break
		}
		uc.reconcileRow(ctx, run, row)
	}

	if sum.Changed() {
		uc.recordBulkImport(context.WithoutCancel(ctx), run)
	}
	sum.DurationMS = time.Since(started).Milliseconds()

	uc.log.Info().
		Str("source", source).
		Int("inserted", sum.Inserted).
		Int("updated", sum.Updated).
		Int("skipped", sum.Skipped).
		Int("dropped", sum.Dropped).
		Int("errors", len(sum.Errors)).
		Bool("interrupted", sum.Interrupted).
		Int64("duration_ms", sum.DurationMS).
		Msg("importación conciliada")
	return sum, runErr
}

func (uc *ReconcileUseCase) reconcileRow(ctx context.Context, run *importRun, row SourceRow) {
	sum := run.summary
	c, err := uc.normalizer.Normalize(row.Values)
	if err != nil {
		if errors.Is(err, inventory.ErrEmptyName) {
			sum.Dropped++
			return
		}
		sum.Errors = append(sum.Errors, rowError(row.Line, inventory.RawCode(row.Values), err))
		return
	}

	if first, ok := run.seen[c.Code]; ok {
		if first.Equal(c) {
			sum.Skipped++
			return
		}
		sum.Errors = append(sum.Errors, dto.RowError{
			Row:     row.Line,
			Code:    c.Code,
			Kind:    domain.KindDuplicateCode,
			Message: "código repetido en la misma importación con datos distintos",
		})
		return
	}

	var outcome inventory.ChangeKind
	for attempt := 1; ; attempt++ {
		outcome, err = uc.applyCandidate(ctx, run, row.Line, c)
		if errors.Is(err, errGeneratedCodeTaken) && attempt < maxCodeAttempts {
			c.Code = uc.normalizer.GenerateCode()
			continue
		}
		break
	}
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		if errors.Is(err, errGeneratedCodeTaken) {
			err = fmt.Errorf("%w: %w", domain.ErrDuplicate, err)
		}
		if domain.ErrorKind(err) == domain.KindPersistence {
			uc.log.Error().Err(err).Int("row", row.Line).Str("code", c.Code).Msg("error persistiendo fila importada")
		}
		sum.Errors = append(sum.Errors, rowError(row.Line, c.Code, err))
		return
	}

	run.seen[c.Code] = c
	switch outcome {
	case inventory.ChangeInsert:
		sum.Inserted++
	case inventory.ChangeNone:
		sum.Skipped++
	default:
		sum.Updated++
	}
}

// applyCandidate inserta o actualiza el producto y escribe su movimiento en una sola tx.
func (uc *ReconcileUseCase) applyCandidate(ctx context.Context, run *importRun, line int, c inventory.Candidate) (inventory.ChangeKind, error) {
	var outcome inventory.ChangeKind
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository, movementRepo repository.MovementRepository) error {
		existing, err := productRepo.GetByCodeForUpdate(ctx, c.Code)
		if err != nil {
			return err
		}
		if existing != nil && c.CodeGenerated {
			return errGeneratedCodeTaken
		}

		ch := inventory.Diff(existing, c)
		outcome = ch.Kind
		if ch.Kind == inventory.ChangeNone {
			return nil
		}

		now := time.Now().UTC()
		note := fmt.Sprintf("importado de %s, fila %d", run.source, line)
		var p *entity.Product
		var before int64
		if ch.Kind == inventory.ChangeInsert {
			p = inventory.NewProduct(uuid.New().String(), c, now)
			if err := p.Validate(); err != nil {
				return err
			}
			if err := productRepo.Create(ctx, p); err != nil {
				return err
			}
		} else {
			p = existing
			before = p.Quantity
			inventory.Apply(p, c, now)
			if err := p.Validate(); err != nil {
				return err
			}
			if err := productRepo.Update(ctx, p); err != nil {
				return err
			}
			note += " (" + strings.Join(ch.Fields, ", ") + ")"
		}
		return movementRepo.Create(ctx, newMovement(p, ch.MovementKind(), before, note, run.actor, now))
	})
	return outcome, err
}

// recordBulkImport deja una entrada resumen en el libro. No toca productos.
func (uc *ReconcileUseCase) recordBulkImport(ctx context.Context, run *importRun) {
	sum := run.summary
	err := uc.txRunner.Run(ctx, func(_ repository.ProductRepository, movementRepo repository.MovementRepository) error {
		return movementRepo.Create(ctx, &entity.Movement{
			ProductName: run.source,
			Kind:        entity.MovementBulkImport,
			Note: fmt.Sprintf("importación: %d insertados, %d actualizados, %d sin cambios, %d errores",
				sum.Inserted, sum.Updated, sum.Skipped, len(sum.Errors)),
			CreatedBy:  run.actor,
			OccurredAt: time.Now().UTC(),
		})
	})
	if err != nil {
		uc.log.Error().Err(err).Str("source", run.source).Msg("no se pudo registrar el resumen de importación")
	}
}

func rowError(line int, code string, err error) dto.RowError {
	return dto.RowError{Row: line, Code: code, Kind: domain.ErrorKind(err), Message: err.Error()}
}
