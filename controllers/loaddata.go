package controllers

import (
	"fmt"
	"net/http"

	"go-storefront/models"

	"github.com/shopspring/decimal"
)

func seed(title, description, category, price, sale, weight, width, length, height, image string, featured bool) models.Product {
	return models.Product{
		Title:          title,
		Description:    description,
		Category:       category,
		Price:          decimal.RequireFromString(price),
		SalePrice:      decimal.NewNullDecimal(decimal.RequireFromString(sale)),
		ShippingWeight: decimal.RequireFromString(weight),
		ShippingWidth:  decimal.RequireFromString(width),
		ShippingLength: decimal.RequireFromString(length),
		ShippingHeight: decimal.RequireFromString(height),
		ImageURL:       image,
		Featured:       featured,
	}
}

// SampleProducts is the catalog loaded by /load-data/products
var SampleProducts = []models.Product{
	seed("Hendrix Velvet Barrel Chair", "This seashell-inspired barrel chair adds a touch of texture to your living room.",
		"Living Room Furniture", "549.99", "319.99", "25", "150", "150", "150", "chair.png", true),
	seed("Modern Sofa", "A comfortable sofa that fits perfectly in any modern living room.",
		"Living Room Furniture", "799.99", "599.99", "40", "200", "90", "85", "sofa.png", true),
	seed("Classic Coffee Table", "A beautiful coffee table crafted from reclaimed wood.",
		"Living Room Furniture", "299.99", "199.99", "20", "120", "60", "45", "coffeetable.png", true),
	seed("Contemporary TV Stand", "Sleek TV stand with ample storage.",
		"Living Room Furniture", "399.99", "279.99", "35", "180", "40", "50", "tvstand.png", false),
	seed("Queen Bed Frame", "Elegant queen bed frame with a minimalist design.",
		"Bedroom Furniture", "499.99", "349.99", "50", "210", "200", "100", "bedframe.png", true),
	seed("Nightstand", "Compact and stylish nightstand to complement your bed.",
		"Bedroom Furniture", "149.99", "99.99", "15", "50", "40", "45", "nightstand.png", false),
}

// LoadDataController seeds the catalog
type LoadDataController struct {
	Catalog Catalog
	Views   Renderer
}

// NewLoadDataController creates a new LoadDataController
func NewLoadDataController(catalog Catalog, views Renderer) *LoadDataController {
	return &LoadDataController{Catalog: catalog, Views: views}
}

// LoadProducts inserts the sample products whose titles are not taken yet
func (lc *LoadDataController) LoadProducts(w http.ResponseWriter, r *http.Request) {
	added := 0
	for _, sample := range SampleProducts {
		exists, err := lc.Catalog.ExistsByTitle(r.Context(), sample.Title)
		if err != nil {
			failure(lc.Views, w, r, err, "An error occurred while loading data.")
			return
		}
		if exists {
			continue
		}
		product := sample
		if err := lc.Catalog.Create(r.Context(), &product); err != nil {
			failure(lc.Views, w, r, err, "An error occurred while loading data.")
			return
		}
		added++
	}

	p := page(r, "Load Data")
	p.Message = "Products have already been added to the database"
	if added > 0 {
		p.Message = fmt.Sprintf("Added %d products to the database", added)
	}
	lc.Views.Render(w, http.StatusOK, "loadData/message", p)
}
