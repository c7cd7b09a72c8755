package service

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestProfitMargin(t *testing.T) {
	tests := []struct {
		name         string
		sellingPrice float64
		cost         float64
		want         float64
	}{
		{"half cost", 100.00, 50.00, 50.00},
		{"typical product", 45.00, 23.00, 48.89},
		{"sold at cost", 23.00, 23.00, 0},
		{"sold below cost", 20.00, 23.00, -15.00},
		{"unpriced", 0, 23.00, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := profitMargin(tt.sellingPrice, decimal.NewFromFloat(tt.cost))
			if !almostEqual(got, tt.want) {
				t.Errorf("profitMargin(%v, %v) = %v, want %v", tt.sellingPrice, tt.cost, got, tt.want)
			}
		})
	}
}
