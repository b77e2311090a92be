package payment

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestComputeDiscount(t *testing.T) {
	cases := []struct {
		name        string
		total       string
		pourcentage string
		plafond     *decimal.Decimal
		want        string
	}{
		{"10 pourcent sans plafond", "300", "10", nil, "30"},
		{"plafond non atteint", "300", "10", decPtr("50"), "30"},
		{"plafond atteint", "300", "10", decPtr("20"), "20"},
		{"zero pourcent", "300", "0", nil, "0"},
		{"pourcentage negatif", "300", "-5", nil, "0"},
		{"cent pourcent", "300", "100", nil, "300"},
		{"plus de cent pourcent", "300", "150", nil, "300"},
		{"total zero", "0", "10", nil, "0"},
		{"plafond zero", "300", "10", decPtr("0"), "0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeDiscount(dec(tc.total), dec(tc.pourcentage), tc.plafond)
			assert.True(t, dec(tc.want).Equal(got), "want %s got %s", tc.want, got)
		})
	}
}
