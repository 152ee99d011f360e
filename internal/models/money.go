package models

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Money tipo unificado de montos en pesos colombianos (sin decimales)
type Money struct {
	decimal.Decimal
}

// NewMoneyFromDecimal crea un monto desde un decimal
func NewMoneyFromDecimal(amount decimal.Decimal) Money {
	return Money{Decimal: amount.Round(0)}
}

// NewMoneyFromInt crea un monto desde pesos enteros
func NewMoneyFromInt(amount int64) Money {
	return Money{Decimal: decimal.NewFromInt(amount)}
}

// MarshalJSON serializa como cadena de pesos enteros
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.Decimal.Round(0).StringFixed(0))
}

// UnmarshalJSON acepta cadena o número
func (m *Money) UnmarshalJSON(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		d, err := decimal.NewFromString(s)
		if err != nil {
			return err
		}
		m.Decimal = d.Round(0)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	m.Decimal = decimal.NewFromFloat(f).Round(0)
	return nil
}

// Value para escritura en base de datos
func (m Money) Value() (driver.Value, error) {
	return m.Decimal.Round(0).Value()
}

// Scan para lectura desde base de datos
func (m *Money) Scan(value interface{}) error {
	if err := m.Decimal.Scan(value); err != nil {
		return err
	}
	m.Decimal = m.Decimal.Round(0)
	return nil
}

// String devuelve el monto en pesos enteros
func (m Money) String() string {
	return m.Decimal.Round(0).StringFixed(0)
}

// CentsInt64 devuelve el monto en centavos (COP x 100), como lo exige Wompi
func (m Money) CentsInt64() int64 {
	return m.Decimal.Round(0).Mul(decimal.NewFromInt(100)).IntPart()
}
