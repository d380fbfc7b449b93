package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FlowerType is the colour family of a flower.
type FlowerType string

const (
	FlowerTypeRed    FlowerType = "Red"
	FlowerTypeYellow FlowerType = "Yellow"
	FlowerTypePink   FlowerType = "Pink"
	FlowerTypeWhite  FlowerType = "White"
	FlowerTypeAzure  FlowerType = "Azure"
	FlowerTypeBlue   FlowerType = "Blue"
	FlowerTypeOrange FlowerType = "Orange"
	FlowerTypePurple FlowerType = "Purple"
)

var flowerTypes = []FlowerType{
	FlowerTypeRed,
	FlowerTypeYellow,
	FlowerTypePink,
	FlowerTypeWhite,
	FlowerTypeAzure,
	FlowerTypeBlue,
	FlowerTypeOrange,
	FlowerTypePurple,
}

// FlowerCategory is the occasion a flower is offered for.
type FlowerCategory string

const (
	CategoryBirthday  FlowerCategory = "Birthday"
	CategoryWedding   FlowerCategory = "Wedding"
	CategoryLovedOne  FlowerCategory = "For a Loved One"
	CategorySympathy  FlowerCategory = "Sympathy / Funeral"
	CategoryMom       FlowerCategory = "For Mom / Grandma"
	CategoryColleague FlowerCategory = "For Colleague / Boss"
	CategoryMan       FlowerCategory = "For Man / Boyfriend"
	CategoryChildren  FlowerCategory = "For Children"
	CategoryUniversal FlowerCategory = "Universal (Any Occasion)"
)

var flowerCategories = []FlowerCategory{
	CategoryBirthday,
	CategoryWedding,
	CategoryLovedOne,
	CategorySympathy,
	CategoryMom,
	CategoryColleague,
	CategoryMan,
	CategoryChildren,
	CategoryUniversal,
}

// ParseFlowerType maps a display string onto the closed FlowerType set.
func ParseFlowerType(raw string) (FlowerType, bool) {
	for _, t := range flowerTypes {
		if strings.EqualFold(string(t), strings.TrimSpace(raw)) {
			return t, true
		}
	}
	return "", false
}

// ParseFlowerCategory maps a display string onto the closed FlowerCategory set.
func ParseFlowerCategory(raw string) (FlowerCategory, bool) {
	for _, c := range flowerCategories {
		if strings.EqualFold(string(c), strings.TrimSpace(raw)) {
			return c, true
		}
	}
	return "", false
}

// Flower is a read-only catalog entry.
type Flower struct {
	ID       int64           `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Type     FlowerType      `json:"type"`
	Category FlowerCategory  `json:"category"`
	ImgLink  string          `json:"img_link"`
}

// PriceFor returns the total price of quantity units rounded to cents. Every
// stored order amount is computed here.
func (f Flower) PriceFor(quantity int) decimal.Decimal {
	return f.Price.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}
