package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/momento-cake/admin-sub007/internal/model/entity"
)

// unitConversions 同族单位换算系数（目标单位数量 = 源数量 × 系数）
var unitConversions = map[entity.Unit]map[entity.Unit]decimal.Decimal{
	entity.UnitGram: {
		entity.UnitGram:     decimal.NewFromInt(1),
		entity.UnitKilogram: decimal.New(1, -3),
	},
	entity.UnitKilogram: {
		entity.UnitGram:     decimal.NewFromInt(1000),
		entity.UnitKilogram: decimal.NewFromInt(1),
	},
	entity.UnitMilliliter: {
		entity.UnitMilliliter: decimal.NewFromInt(1),
		entity.UnitLiter:      decimal.New(1, -3),
	},
	entity.UnitLiter: {
		entity.UnitMilliliter: decimal.NewFromInt(1000),
		entity.UnitLiter:      decimal.NewFromInt(1),
	},
	entity.UnitPiece: {
		entity.UnitPiece: decimal.NewFromInt(1),
	},
}

// ConvertQuantity 将数量从一个单位换算到另一个单位。
// 仅支持同族换算（质量之间、体积之间、件数对件数）。
func ConvertQuantity(quantity decimal.Decimal, from, to entity.Unit) (decimal.Decimal, error) {
	targets, ok := unitConversions[from]
	if !ok {
		return decimal.Zero, fmt.Errorf("unsupported unit: %s", from)
	}
	factor, ok := targets[to]
	if !ok {
		return decimal.Zero, fmt.Errorf("cannot convert %s to %s", from, to)
	}
	return quantity.Mul(factor), nil
}
