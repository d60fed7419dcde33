package dto

import (
	"time"

	"github.com/jhoicas/inventario-panel/internal/domain/entity"
)

// ApplyMovementRequest body para POST /api/inventory/movements.
type ApplyMovementRequest struct {
	ProductID string `json:"product_id"`
	Kind      string `json:"kind"` // stock_in | stock_out
	Quantity  int64  `json:"quantity"`
	Note      string `json:"note,omitempty"`
}

// MovementResponse salida de una entrada del libro.
type MovementResponse struct {
	ID             string    `json:"id"`
	ProductID      *string   `json:"product_id"`
	ProductName    string    `json:"product_name"`
	Kind           string    `json:"kind"`
	QuantityDelta  int64     `json:"quantity_delta"`
	QuantityBefore int64     `json:"quantity_before"`
	QuantityAfter  int64     `json:"quantity_after"`
	Note           string    `json:"note"`
	CreatedBy      string    `json:"created_by,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// NewMovementResponse convierte la entidad; product_id vacío se serializa como null.
func NewMovementResponse(m *entity.Movement) *MovementResponse {
	if m == nil {
		return nil
	}
	var productID *string
	if m.ProductID != "" {
		id := m.ProductID
		productID = &id
	}
	return &MovementResponse{
		ID:             m.ID,
		ProductID:      productID,
		ProductName:    m.ProductName,
		Kind:           string(m.Kind),
		QuantityDelta:  m.QuantityDelta,
		QuantityBefore: m.QuantityBefore,
		QuantityAfter:  m.QuantityAfter,
		Note:           m.Note,
		CreatedBy:      m.CreatedBy,
		OccurredAt:     m.OccurredAt,
	}
}

// NewMovementList convierte una lista de entidades.
func NewMovementList(list []*entity.Movement) []MovementResponse {
	out := make([]MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, *NewMovementResponse(m))
	}
	return out
}

// ImportRowsRequest body para POST /api/imports/rows (sincronización de hoja remota).
type ImportRowsRequest struct {
	Source string           `json:"source"`
	Rows   []map[string]any `json:"rows"`
}

// RowError error de una fila de importación; la importación continúa con la siguiente.
type RowError struct {
	Row     int    `json:"row"`
	Code    string `json:"code,omitempty"`
	Kind    string `json:"kind"` // VALIDATION | DUPLICATE_CODE | PERSISTENCE
	Message string `json:"message"`
}

// ImportSummary resultado de una conciliación. Las filas ya aplicadas quedan aplicadas.
type ImportSummary struct {
	Source      string     `json:"source"`
	Inserted    int        `json:"inserted"`
	Updated     int        `json:"updated"`
	Skipped     int        `json:"skipped"`
	Dropped     int        `json:"dropped"` // filas sin nombre, descartadas sin error
	Errors      []RowError `json:"errors"`
	Interrupted bool       `json:"interrupted"`
	StartedAt   time.Time  `json:"started_at"`
	DurationMS  int64      `json:"duration_ms"`
}

// Changed indica si la importación modificó algún producto.
func (s *ImportSummary) Changed() bool {
	return s.Inserted+s.Updated > 0
}
