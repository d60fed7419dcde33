package sheet

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	appinv "github.com/jhoicas/inventario-panel/internal/application/inventory"
)

// XLSXSource lee la primera hoja de un libro .xlsx. La primera fila es la cabecera.
type XLSXSource struct {
	file   *excelize.File
	rows   *excelize.Rows
	header []string
	line   int
}

var _ appinv.RowSource = (*XLSXSource)(nil)

// rawValues lee el valor guardado en la celda y no el texto formateado ("1,200.00" -> "1200").
var rawValues = excelize.Options{RawCellValue: true}

// NewXLSXSource abre el libro desde r. Llamar Close al terminar.
func NewXLSXSource(r io.Reader) (*XLSXSource, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("xlsx: abrir: %w", err)
	}
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		_ = f.Close()
		return nil, ErrEmptySheet
	}
	rows, err := f.Rows(sheets[0])
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("xlsx: hoja %q: %w", sheets[0], err)
	}
	if !rows.Next() {
		_ = rows.Close()
		_ = f.Close()
		return nil, ErrEmptySheet
	}
	header, err := rows.Columns(rawValues)
	if err != nil {
		_ = rows.Close()
		_ = f.Close()
		return nil, fmt.Errorf("xlsx: cabecera: %w", err)
	}
	return &XLSXSource{file: f, rows: rows, header: trimHeader(header)}, nil
}

// Next implementa RowSource.
func (s *XLSXSource) Next() (appinv.SourceRow, error) {
	if !s.rows.Next() {
		if err := s.rows.Error(); err != nil {
			return appinv.SourceRow{}, fmt.Errorf("xlsx: leer: %w", err)
		}
		return appinv.SourceRow{}, io.EOF
	}
	s.line++
	cols, err := s.rows.Columns(rawValues)
	if err != nil {
		return appinv.SourceRow{}, &appinv.RowReadError{Line: s.line, Err: err}
	}
	return appinv.SourceRow{Line: s.line, Values: rowFromRecord(s.header, cols)}, nil
}

// Close libera el libro y sus archivos temporales.
func (s *XLSXSource) Close() error {
	_ = s.rows.Close()
	return s.file.Close()
}
