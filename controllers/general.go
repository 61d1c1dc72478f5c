package controllers

import (
	"net/http"

	"go-storefront/models"
)

// GeneralController serves the home and welcome pages
type GeneralController struct {
	Catalog Catalog
	Views   Renderer
}

// NewGeneralController creates a new GeneralController
func NewGeneralController(catalog Catalog, views Renderer) *GeneralController {
	return &GeneralController{Catalog: catalog, Views: views}
}

// Home lists the featured products
func (gc *GeneralController) Home(w http.ResponseWriter, r *http.Request) {
	products, err := gc.Catalog.FindAll(r.Context())
	if err != nil {
		failure(gc.Views, w, r, err, "Error retrieving products.")
		return
	}
	p := page(r, "Home")
	p.Data = models.Featured(products)
	gc.Views.Render(w, http.StatusOK, "general/home", p)
}

// Welcome is shown after a successful sign-up
func (gc *GeneralController) Welcome(w http.ResponseWriter, r *http.Request) {
	gc.Views.Render(w, http.StatusOK, "general/welcome", page(r, "Welcome"))
}
