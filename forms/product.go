package forms

import (
	"strings"

	"go-storefront/models"

	"github.com/shopspring/decimal"
)

// ProductForm is the clerk's add/edit product payload. The image travels
// separately as the "imageUrl" file part.
type ProductForm struct {
	Title          string `schema:"title" validate:"filled"`
	Description    string `schema:"description" validate:"filled"`
	Category       string `schema:"category" validate:"filled"`
	Price          string `schema:"price" validate:"posdecimal"`
	SalePrice      string `schema:"salePrice" validate:"omitempty,posdecimal"`
	ShippingWeight string `schema:"shippingWeight" validate:"posdecimal"`
	ShippingWidth  string `schema:"shippingWidth" validate:"posdecimal"`
	ShippingLength string `schema:"shippingLength" validate:"posdecimal"`
	ShippingHeight string `schema:"shippingHeight" validate:"posdecimal"`
	Featured       string `schema:"featured"`
}

var productMessages = map[string]string{
	"title.filled":              "Title is required.",
	"description.filled":        "Description is required.",
	"category.filled":           "Category is required.",
	"price.posdecimal":          "Price must be greater than 0.",
	"salePrice.posdecimal":      "Sale price must be greater than 0.",
	"shippingWeight.posdecimal": "Shipping weight must be positive.",
	"shippingWidth.posdecimal":  "Shipping width must be positive.",
	"shippingLength.posdecimal": "Shipping length must be positive.",
	"shippingHeight.posdecimal": "Shipping height must be positive.",
}

// Validate checks every product rule
func (f *ProductForm) Validate() Messages {
	f.SalePrice = strings.TrimSpace(f.SalePrice)
	return check(f, productMessages)
}

// ProductFormFrom fills a form from a stored product, for the edit page
func ProductFormFrom(p models.Product) ProductForm {
	f := ProductForm{
		Title:          p.Title,
		Description:    p.Description,
		Category:       p.Category,
		Price:          p.Price.String(),
		ShippingWeight: p.ShippingWeight.String(),
		ShippingWidth:  p.ShippingWidth.String(),
		ShippingLength: p.ShippingLength.String(),
		ShippingHeight: p.ShippingHeight.String(),
	}
	if p.SalePrice.Valid {
		f.SalePrice = p.SalePrice.Decimal.String()
	}
	if p.Featured {
		f.Featured = "on"
	}
	return f
}

// Apply copies a validated form onto p. The image and ID are left alone.
func (f ProductForm) Apply(p *models.Product) {
	p.Title = strings.TrimSpace(f.Title)
	p.Description = strings.TrimSpace(f.Description)
	p.Category = strings.TrimSpace(f.Category)
	p.Price, _ = PositiveDecimal(f.Price)
	p.SalePrice = decimal.NullDecimal{}
	if sale, ok := PositiveDecimal(f.SalePrice); ok {
		p.SalePrice = decimal.NewNullDecimal(sale)
	}
	p.ShippingWeight, _ = PositiveDecimal(f.ShippingWeight)
	p.ShippingWidth, _ = PositiveDecimal(f.ShippingWidth)
	p.ShippingLength, _ = PositiveDecimal(f.ShippingLength)
	p.ShippingHeight, _ = PositiveDecimal(f.ShippingHeight)
	p.Featured = f.Featured != ""
}
