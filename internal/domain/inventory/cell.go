package inventory

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type cellKind uint8

const (
	cellAbsent cellKind = iota
	cellText
	cellNumber
)

// Cell valor crudo de una columna externa: texto, número o ausente.
// Es el único tipo que entra al normalizador; nada "any" pasa de aquí hacia adentro.
type Cell struct {
	kind cellKind
	text string
	num  float64
}

// Absent representa una columna que no vino en la fila.
var Absent = Cell{}

// Text construye una celda de texto.
func Text(s string) Cell { return Cell{kind: cellText, text: s} }

// Number construye una celda numérica (JSON, hojas de cálculo).
func Number(f float64) Cell { return Cell{kind: cellNumber, num: f} }

// IsAbsent indica si la columna no vino en la fila.
func (c Cell) IsAbsent() bool { return c.kind == cellAbsent }

// String devuelve la representación textual; los números sin ceros de relleno.
func (c Cell) String() string {
	switch c.kind {
	case cellText:
		return c.text
	case cellNumber:
		if math.IsNaN(c.num) || math.IsInf(c.num, 0) {
			return ""
		}
		return strconv.FormatFloat(c.num, 'f', -1, 64)
	}
	return ""
}

// RawRow fila externa: nombre de columna -> celda.
type RawRow map[string]Cell

// RowFromStrings adapta una fila CSV/XLSX ya indexada por cabecera.
func RowFromStrings(m map[string]string) RawRow {
	row := make(RawRow, len(m))
	for k, v := range m {
		row[k] = Text(v)
	}
	return row
}

// RowFromAny adapta una fila decodificada de JSON (sincronización de hoja remota).
func RowFromAny(m map[string]any) RawRow {
	row := make(RawRow, len(m))
	for k, v := range m {
		row[k] = cellFromAny(v)
	}
	return row
}

func cellFromAny(v any) Cell {
	switch x := v.(type) {
	case nil:
		return Absent
	case string:
		return Text(x)
	case float64:
		return Number(x)
	case float32:
		return Number(float64(x))
	case int:
		return Number(float64(x))
	case int32:
		return Number(float64(x))
	case int64:
		return Number(float64(x))
	case json.Number:
		if f, err := x.Float64(); err == nil {
			return Number(f)
		}
		return Text(x.String())
	case bool:
		return Text(strconv.FormatBool(x))
	default:
		return Text(fmt.Sprint(x))
	}
}

// NormalizeKey normaliza un nombre de columna: recorta, pasa a minúsculas,
// quita acentos y colapsa los espacios internos en "_" ("Preço  Unitário" -> "preco_unitario").
func NormalizeKey(k string) string {
	k = strings.ToLower(strings.TrimSpace(k))
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(t, k); err == nil {
		k = folded
	}
	return strings.Join(strings.Fields(k), "_")
}
