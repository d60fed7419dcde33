package sheet

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	appinv "github.com/jhoicas/inventario-panel/internal/application/inventory"
	"github.com/jhoicas/inventario-panel/internal/domain/inventory"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// CSVSource lee una planilla CSV. La primera fila es la cabecera.
// Acepta UTF-8 (con o sin BOM) y Windows-1252, separador ',' ';' o tabulador.
type CSVSource struct {
	r      *csv.Reader
	header []string
	line   int
}

var _ appinv.RowSource = (*CSVSource)(nil)

// NewCSVSource lee el contenido completo (el tamaño ya viene acotado por IMPORT_MAX_FILE_MB)
// para detectar codificación y separador antes de parsear.
func NewCSVSource(r io.Reader) (*CSVSource, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("csv: leer: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)
	if !utf8.Valid(data) {
		decoded, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), data)
		if err != nil {
			return nil, fmt.Errorf("csv: decodificar Windows-1252: %w", err)
		}
		data = decoded
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = sniffDelimiter(data)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptySheet
	}
	if err != nil {
		return nil, fmt.Errorf("csv: cabecera: %w", err)
	}
	return &CSVSource{r: cr, header: trimHeader(header)}, nil
}

// Next implementa RowSource.
func (s *CSVSource) Next() (appinv.SourceRow, error) {
	record, err := s.r.Read()
	if errors.Is(err, io.EOF) {
		return appinv.SourceRow{}, io.EOF
	}
	s.line++
	if err != nil {
		var perr *csv.ParseError
		if errors.As(err, &perr) {
			return appinv.SourceRow{}, &appinv.RowReadError{Line: s.line, Err: perr.Err}
		}
		return appinv.SourceRow{}, err
	}
	return appinv.SourceRow{Line: s.line, Values: rowFromRecord(s.header, record)}, nil
}

// sniffDelimiter elige el separador más frecuente de la primera línea.
func sniffDelimiter(data []byte) rune {
	first := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		first = data[:i]
	}
	best, bestCount := ',', bytes.Count(first, []byte{','})
	for _, d := range []rune{';', '\t'} {
		if n := bytes.Count(first, []byte(string(d))); n > bestCount {
			best, bestCount = d, n
		}
	}
	return best
}

func trimHeader(h []string) []string {
	out := make([]string, len(h))
	for i, c := range h {
		out[i] = strings.TrimSpace(c)
	}
	return out
}

// rowFromRecord indexa por cabecera; columnas sin cabecera se descartan y las que
// faltan al final de la fila quedan ausentes.
func rowFromRecord(header, record []string) inventory.RawRow {
	row := make(inventory.RawRow, len(header))
	for i, key := range header {
		if key == "" || i >= len(record) {
			continue
		}
		row[key] = inventory.Text(record[i])
	}
	return row
}
