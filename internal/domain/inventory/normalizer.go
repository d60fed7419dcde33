package inventory

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-panel/internal/domain"
	"github.com/jhoicas/inventario-panel/internal/domain/entity"
)

// Errores de normalización de filas.
var (
	ErrEmptyName          = errors.New("nombre vacío")
	ErrNegativeQuantity   = errors.New("cantidad negativa")
	ErrQuantityOutOfRange = errors.New("cantidad fuera de rango")
)

// NormalizeError error tipado de normalización. errors.Is funciona tanto con el
// sentinel concreto (ErrEmptyName, ...) como con domain.ErrInvalidInput.
type NormalizeError struct {
	Field string
	Value string
	Err   error
}

func (e *NormalizeError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("%s: %v (%q)", e.Field, e.Err, e.Value)
}

func (e *NormalizeError) Unwrap() []error { return []error{e.Err, domain.ErrInvalidInput} }

// Aliases de columnas aceptados por campo (claves ya normalizadas con NormalizeKey).
var columnAliases = map[string][]string{
	"name":     {"name", "nome", "nombre", "produto", "producto", "product"},
	"quantity": {"quantity", "quantidade", "cantidad", "qty", "qtd", "estoque", "stock"},
	"price":    {"price", "preco", "precio", "valor", "valor_unitario"},
	"category": {"category", "categoria"},
	"code":     {"code", "codigo", "sku", "cod"},
}

var (
	leadingInt     = regexp.MustCompile(`^[+-]?\d+`)
	leadingDecimal = regexp.MustCompile(`^(\d+(\.\d+)?|\.\d+)`)
)

// Candidate producto candidato, ya tipado y validado, producido por el normalizador.
type Candidate struct {
	Name          string
	Quantity      int64
	Price         decimal.Decimal
	Category      string
	Code          string
	CodeGenerated bool // el código fue sintetizado porque la fila no traía uno
}

// Equal compara campo a campo; el precio se compara por valor (10 == 10.00).
func (c Candidate) Equal(o Candidate) bool {
	return c.Name == o.Name &&
		c.Quantity == o.Quantity &&
		c.Price.Equal(o.Price) &&
		c.Category == o.Category &&
		c.Code == o.Code
}

// Normalizer convierte filas externas en candidatos. No toca el almacenamiento.
type Normalizer struct {
	// NewCode sintetiza un código cuando la fila no trae uno. No garantiza unicidad global.
	NewCode func() string
}

// NewNormalizer construye el normalizador con el generador de códigos por defecto.
func NewNormalizer() *Normalizer {
	return &Normalizer{NewCode: RandomCode}
}

// RandomCode devuelve un token hexadecimal corto (8 caracteres).
func RandomCode() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// Normalize aplica las reglas de normalización a una fila.
func (n *Normalizer) Normalize(row RawRow) (Candidate, error) {
	cells := make(map[string]Cell, len(row))
	for k, v := range row {
		cells[NormalizeKey(k)] = v
	}
	lookup := func(field string) Cell {
		for _, alias := range columnAliases[field] {
			if c, ok := cells[alias]; ok && !c.IsAbsent() {
				return c
			}
		}
		return Absent
	}

	var c Candidate
	c.Name = strings.TrimSpace(lookup("name").String())
	if c.Name == "" {
		return Candidate{}, &NormalizeError{Field: "name", Err: ErrEmptyName}
	}

	qty, err := parseQuantity(lookup("quantity"))
	if err != nil {
		return Candidate{}, err
	}
	c.Quantity = qty
	c.Price = parsePrice(lookup("price"))

	c.Category = strings.TrimSpace(lookup("category").String())
	if c.Category == "" {
		c.Category = entity.DefaultCategory
	}

	c.Code = strings.TrimSpace(lookup("code").String())
	if c.Code == "" {
		c.Code = n.GenerateCode()
		c.CodeGenerated = true
	}
	return c, nil
}

// GenerateCode sintetiza un código con NewCode, o con RandomCode si no se configuró.
func (n *Normalizer) GenerateCode() string {
	if n.NewCode == nil {
		return RandomCode()
	}
	return n.NewCode()
}

// RawCode devuelve el código tal como vino en la fila, sin sintetizar. Sirve para
// identificar en los errores filas que no pudieron normalizarse.
func RawCode(row RawRow) string {
	for k, v := range row {
		key := NormalizeKey(k)
		for _, alias := range columnAliases["code"] {
			if key == alias && !v.IsAbsent() {
				return strings.TrimSpace(v.String())
			}
		}
	}
	return ""
}

// parseQuantity: texto -> prefijo entero ("12 un" = 12, "3.7" = 3, "abc" = 0);
// número -> truncado; ausente -> 0. Las cantidades negativas rechazan la fila.
func parseQuantity(cell Cell) (int64, error) {
	var q int64
	switch cell.kind {
	case cellAbsent:
		return 0, nil
	case cellNumber:
		if math.IsNaN(cell.num) || math.IsInf(cell.num, 0) {
			return 0, nil
		}
		t := math.Trunc(cell.num)
		if t >= 0x1p63 || t < -0x1p63 { // float64(MaxInt64) redondea a 2^63
			return 0, &NormalizeError{Field: "quantity", Value: cell.String(), Err: ErrQuantityOutOfRange}
		}
		q = int64(t)
	case cellText:
		m := leadingInt.FindString(strings.TrimSpace(cell.text))
		if m == "" {
			return 0, nil
		}
		v, err := strconv.ParseInt(m, 10, 64)
		if err != nil {
			return 0, &NormalizeError{Field: "quantity", Value: cell.text, Err: ErrQuantityOutOfRange}
		}
		q = v
	}
	if q < 0 {
		return 0, &NormalizeError{Field: "quantity", Value: cell.String(), Err: ErrNegativeQuantity}
	}
	return q, nil
}

// parsePrice: descarta todo lo que no sea dígito, coma o punto; la coma pasa a punto
// y se toma el mayor prefijo decimal válido ("R$ 1.234,50" -> 1.234). Ausente o ilegible -> 0.
func parsePrice(cell Cell) decimal.Decimal {
	switch cell.kind {
	case cellNumber:
		if math.IsNaN(cell.num) || math.IsInf(cell.num, 0) {
			return decimal.Zero
		}
		return decimal.NewFromFloat(cell.num).Abs()
	case cellText:
		var b strings.Builder
		for _, r := range cell.text {
			switch {
			case r >= '0' && r <= '9', r == '.':
				b.WriteRune(r)
			case r == ',':
				b.WriteRune('.')
			}
		}
		m := leadingDecimal.FindString(b.String())
		if m == "" {
			return decimal.Zero
		}
		d, err := decimal.NewFromString(m)
		if err != nil {
			return decimal.Zero
		}
		return d
	}
	return decimal.Zero
}
