package models

import (
	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product represents a catalog item
type Product struct {
	ID             primitive.ObjectID  `json:"id"`
	Title          string              `json:"title"`
	Description    string              `json:"description"`
	Category       string              `json:"category"`
	Price          decimal.Decimal     `json:"price"`
	SalePrice      decimal.NullDecimal `json:"sale_price"`
	ShippingWeight decimal.Decimal     `json:"shipping_weight"`
	ShippingWidth  decimal.Decimal     `json:"shipping_width"`
	ShippingLength decimal.Decimal     `json:"shipping_length"`
	ShippingHeight decimal.Decimal     `json:"shipping_height"`
	ImageURL       string              `json:"image_url"` // stored filename under the upload dir
	Featured       bool                `json:"featured"`
}

// EffectivePrice is the sale price when one is set, else the base price
func (p Product) EffectivePrice() decimal.Decimal {
	if p.SalePrice.Valid && p.SalePrice.Decimal.IsPositive() {
		return p.SalePrice.Decimal
	}
	return p.Price
}

// OnSale reports whether the sale price overrides the base price
func (p Product) OnSale() bool {
	return p.SalePrice.Valid && p.SalePrice.Decimal.IsPositive()
}

// CategoryGroup is one category with its products, in catalog order
type CategoryGroup struct {
	Category string
	Products []Product
}

// GroupByCategory groups products by category. Categories appear in the
// order they are first seen.
func GroupByCategory(products []Product) []CategoryGroup {
	index := map[string]int{}
	var groups []CategoryGroup
	for _, p := range products {
		i, ok := index[p.Category]
		if !ok {
			i = len(groups)
			index[p.Category] = i
			groups = append(groups, CategoryGroup{Category: p.Category})
		}
		groups[i].Products = append(groups[i].Products, p)
	}
	return groups
}

// Featured filters the products flagged for the home page
func Featured(products []Product) []Product {
	featured := []Product{}
	for _, p := range products {
		if p.Featured {
			featured = append(featured, p)
		}
	}
	return featured
}
