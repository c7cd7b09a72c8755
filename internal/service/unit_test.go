package service

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/momento-cake/admin-sub007/internal/model/entity"
)

func TestConvertQuantity(t *testing.T) {
	tests := []struct {
		name     string
		quantity float64
		from     entity.Unit
		to       entity.Unit
		want     string
		wantErr  bool
	}{
		{"gram to kilogram", 500, entity.UnitGram, entity.UnitKilogram, "0.5", false},
		{"kilogram to gram", 2, entity.UnitKilogram, entity.UnitGram, "2000", false},
		{"milliliter to liter", 250, entity.UnitMilliliter, entity.UnitLiter, "0.25", false},
		{"liter to milliliter", 1.5, entity.UnitLiter, entity.UnitMilliliter, "1500", false},
		{"same unit", 42, entity.UnitGram, entity.UnitGram, "42", false},
		{"piece to piece", 3, entity.UnitPiece, entity.UnitPiece, "3", false},
		{"mass to volume", 100, entity.UnitGram, entity.UnitMilliliter, "", true},
		{"piece to mass", 1, entity.UnitPiece, entity.UnitGram, "", true},
		{"unknown unit", 1, entity.Unit("oz"), entity.UnitGram, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ConvertQuantity(decimal.NewFromFloat(tt.quantity), tt.from, tt.to)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error converting %v %s to %s", tt.quantity, tt.from, tt.to)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			want, _ := decimal.NewFromString(tt.want)
			if !got.Equal(want) {
				t.Errorf("got %s, want %s", got, want)
			}
		})
	}
}

func TestUnitValid(t *testing.T) {
	for _, u := range []entity.Unit{entity.UnitGram, entity.UnitKilogram, entity.UnitMilliliter, entity.UnitLiter, entity.UnitPiece} {
		if !u.Valid() {
			t.Errorf("unit %s should be valid", u)
		}
	}
	if entity.Unit("oz").Valid() {
		t.Error("oz should not be valid")
	}
}
