package report

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency moneda de los informes si no se configura otra.
const DefaultCurrency = "BRL"

// MoneyFormatter formatea importes en la moneda configurada (REPORT_CURRENCY).
type MoneyFormatter struct {
	currency *money.Currency
}

// NewMoneyFormatter resuelve el código ISO 4217; un código desconocido usa DefaultCurrency.
func NewMoneyFormatter(code string) *MoneyFormatter {
	cur := money.GetCurrency(strings.ToUpper(strings.TrimSpace(code)))
	if cur == nil {
		cur = money.GetCurrency(DefaultCurrency)
	}
	return &MoneyFormatter{currency: cur}
}

// Code código ISO de la moneda.
func (f *MoneyFormatter) Code() string { return f.currency.Code }

// Format convierte el importe a unidades menores (redondeo half-up) y lo muestra
// con el símbolo y separadores de la moneda.
func (f *MoneyFormatter) Format(amount decimal.Decimal) string {
	minor := amount.Shift(int32(f.currency.Fraction)).Round(0).IntPart()
	return money.New(minor, f.currency.Code).Display()
}
