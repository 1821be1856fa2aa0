package batch

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// ReturnValue implementa la fórmula de valor recuperado de una devolución
// (servicio de dominio):
//
//	ValorUnitario = PrecioOriginal * (Porcentaje / 100)
//	ValorLote     = ValorUnitario * Cantidad
//
// Con porcentaje 100 se acredita el valor completo; porcentajes menores
// representan merma por castigo de precio.
func ReturnValue(originalPrice, quantity, percentage decimal.Decimal) (perUnit, value decimal.Decimal) {
	perUnit = originalPrice.Mul(percentage).Div(hundred)
	value = perUnit.Mul(quantity)
	return perUnit, value
}
