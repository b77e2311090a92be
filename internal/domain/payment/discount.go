package payment

import "github.com/shopspring/decimal"

var cent = decimal.NewFromInt(100)

// ComputeDiscount は注文合計に対する割引額を返す。
//
//	remise = min(total * pourcentage / 100, plafond)
//
// 結果は必ず 0 <= remise <= total に収まる。
func ComputeDiscount(total, pourcentage decimal.Decimal, plafond *decimal.Decimal) decimal.Decimal {
	remise := total.Mul(pourcentage).Div(cent)

	if plafond != nil && remise.GreaterThan(*plafond) {
		remise = *plafond
	}
	if remise.IsNegative() {
		return decimal.Zero
	}
	if remise.GreaterThan(total) {
		return total
	}
	return remise
}
