// Package sheet adapta planillas (CSV, XLSX) y filas JSON al origen de filas de la conciliación.
package sheet

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	appinv "github.com/jhoicas/inventario-panel/internal/application/inventory"
	"github.com/jhoicas/inventario-panel/internal/domain"
	"github.com/jhoicas/inventario-panel/internal/domain/inventory"
)

var (
	// ErrUnsupportedFormat formato de archivo no soportado (.xls binario incluido).
	ErrUnsupportedFormat = fmt.Errorf("%w: formato de archivo no soportado (use .csv o .xlsx)", domain.ErrInvalidInput)
	// ErrEmptySheet la planilla no tiene cabecera.
	ErrEmptySheet = fmt.Errorf("%w: la planilla está vacía", domain.ErrInvalidInput)
)

// Source RowSource que además debe cerrarse.
type Source interface {
	appinv.RowSource
	io.Closer
}

type nopCloser struct {
	appinv.RowSource
}

func (nopCloser) Close() error { return nil }

// Open elige el lector según la extensión del nombre de archivo.
func Open(filename string, r io.Reader) (Source, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".txt":
		src, err := NewCSVSource(r)
		if err != nil {
			return nil, err
		}
		return nopCloser{src}, nil
	case ".xlsx", ".xlsm":
		return NewXLSXSource(r)
	default:
		return nil, ErrUnsupportedFormat
	}
}

// FromMaps origen de filas JSON (sincronización de hoja remota). Línea = índice + 1.
func FromMaps(rows []map[string]any) Source {
	raw := make([]inventory.RawRow, len(rows))
	for i, m := range rows {
		raw[i] = inventory.RowFromAny(m)
	}
	return nopCloser{appinv.NewSliceSource(raw)}
}

// IsFormatError indica si el error proviene de un formato no soportado o planilla vacía.
func IsFormatError(err error) bool {
	return errors.Is(err, ErrUnsupportedFormat) || errors.Is(err, ErrEmptySheet)
}
