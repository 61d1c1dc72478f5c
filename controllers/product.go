package controllers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"

	"go-storefront/forms"
	"go-storefront/models"
	"go-storefront/repository"
	"go-storefront/services"
	"go-storefront/session"
	"go-storefront/utils"

	"github.com/gorilla/mux"
)

const defaultMaxUpload = 10 << 20

// Catalog is the product repository as seen by the handlers
type Catalog interface {
	FindByID(ctx context.Context, id string) (*models.Product, error)
	FindAll(ctx context.Context) ([]models.Product, error)
	FindAllSorted(ctx context.Context) ([]models.Product, error)
	ExistsByTitle(ctx context.Context, title string) (bool, error)
	Create(ctx context.Context, p *models.Product) error
	Update(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id string) error
}

// ImageStorage keeps uploaded product images
type ImageStorage interface {
	Save(header *multipart.FileHeader) (string, error)
	Remove(filename string) error
}

// ProductController serves the public inventory and the clerk console
type ProductController struct {
	Catalog        Catalog
	Images         ImageStorage
	Views          Renderer
	MaxUploadBytes int64
}

// NewProductController creates a new ProductController
func NewProductController(catalog Catalog, images ImageStorage, views Renderer, maxUploadBytes int64) *ProductController {
	return &ProductController{Catalog: catalog, Images: images, Views: views, MaxUploadBytes: maxUploadBytes}
}

// GetInventory lists every product grouped by category
func (pc *ProductController) GetInventory(w http.ResponseWriter, r *http.Request) {
	products, err := pc.Catalog.FindAll(r.Context())
	if err != nil {
		failure(pc.Views, w, r, err, "Error retrieving products.")
		return
	}
	p := page(r, "Inventory")
	p.Data = models.GroupByCategory(products)
	pc.Views.Render(w, http.StatusOK, "inventory/inventory", p)
}

// GetProducts is the clerk's product list, sorted by title
func (pc *ProductController) GetProducts(w http.ResponseWriter, r *http.Request) {
	products, err := pc.Catalog.FindAllSorted(r.Context())
	if err != nil {
		failure(pc.Views, w, r, err, "Error retrieving products.")
		return
	}
	p := page(r, "Inventory Management")
	p.Message = fmt.Sprintf("Hello, %s, manage your products here.", session.FromContext(r.Context()).User.FirstName)
	p.Data = products
	pc.Views.Render(w, http.StatusOK, "inventory/list", p)
}

func (pc *ProductController) renderForm(w http.ResponseWriter, r *http.Request, name, title string, form forms.ProductForm, msgs forms.Messages, product *models.Product) {
	p := page(r, title)
	p.Form = form
	p.Errors = msgs
	if product != nil {
		p.Data = *product
	}
	pc.Views.Render(w, http.StatusOK, name, p)
}

// readProductForm parses a multipart (or plain) product post. The image part
// is nil when no file was chosen.
func (pc *ProductController) readProductForm(w http.ResponseWriter, r *http.Request) (forms.ProductForm, *multipart.FileHeader, error) {
	var form forms.ProductForm
	limit := pc.MaxUploadBytes
	if limit <= 0 {
		limit = defaultMaxUpload
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(limit); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return form, nil, err
	}
	if err := forms.Decode(r, &form); err != nil {
		return form, nil, err
	}
	var header *multipart.FileHeader
	if r.MultipartForm != nil {
		if files := r.MultipartForm.File["imageUrl"]; len(files) > 0 && files[0].Filename != "" {
			header = files[0]
		}
	}
	return form, header, nil
}

// saveImage stores an upload, reporting bad files as a field message
func (pc *ProductController) saveImage(header *multipart.FileHeader) (string, forms.Messages) {
	filename, err := pc.Images.Save(header)
	if errors.Is(err, utils.ErrImageType) {
		return "", forms.Messages{"imageUrl": "Only image files (jpg, jpeg, png, gif) are allowed."}
	}
	if err != nil {
		slog.Error("Error uploading image", "filename", header.Filename, "error", err)
		return "", forms.Messages{"imageUrl": "Error uploading image."}
	}
	return filename, nil
}

func (pc *ProductController) removeImage(filename string) {
	if err := pc.Images.Remove(filename); err != nil {
		slog.Warn("Error removing image", "filename", filename, "error", err)
	}
}

// AddProductPage shows the empty product form
func (pc *ProductController) AddProductPage(w http.ResponseWriter, r *http.Request) {
	pc.renderForm(w, r, "inventory/add", "Add Product", forms.ProductForm{}, nil, nil)
}

// CreateProduct handles adding a new product with its image
func (pc *ProductController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	form, header, err := pc.readProductForm(w, r)
	if err != nil {
		slog.Warn("Invalid product form", "error", err)
		renderError(pc.Views, w, r, http.StatusBadRequest, "Error", "Invalid form submission.")
		return
	}

	msgs := form.Validate()
	if header == nil {
		if msgs == nil {
			msgs = forms.Messages{}
		}
		msgs["imageUrl"] = "Product image is required."
	}
	if len(msgs) > 0 {
		pc.renderForm(w, r, "inventory/add", "Add Product", form, msgs, nil)
		return
	}

	filename, msgs := pc.saveImage(header)
	if msgs != nil {
		pc.renderForm(w, r, "inventory/add", "Add Product", form, msgs, nil)
		return
	}

	product := models.Product{ImageURL: filename}
	form.Apply(&product)
	if err := pc.Catalog.Create(r.Context(), &product); err != nil {
		pc.removeImage(filename)
		failure(pc.Views, w, r, err, "Error saving product.")
		return
	}
	http.Redirect(w, r, "/inventory/list", http.StatusSeeOther)
}

func (pc *ProductController) findProduct(ctx context.Context, id string) (*models.Product, error) {
	product, err := pc.Catalog.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, services.ErrNotFound
	}
	return product, err
}

// EditProductPage shows the product form filled from the stored product
func (pc *ProductController) EditProductPage(w http.ResponseWriter, r *http.Request) {
	product, err := pc.findProduct(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		failure(pc.Views, w, r, err, "Error retrieving product.")
		return
	}
	pc.renderForm(w, r, "inventory/edit", "Edit Product", forms.ProductFormFrom(*product), nil, product)
}

// UpdateProduct applies the form and, when a new image was uploaded,
// replaces the stored image
func (pc *ProductController) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	form, header, err := pc.readProductForm(w, r)
	if err != nil {
		slog.Warn("Invalid product form", "error", err)
		renderError(pc.Views, w, r, http.StatusBadRequest, "Error", "Invalid form submission.")
		return
	}

	product, err := pc.findProduct(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		failure(pc.Views, w, r, err, "Error updating product.")
		return
	}
	if msgs := form.Validate(); len(msgs) > 0 {
		pc.renderForm(w, r, "inventory/edit", "Edit Product", form, msgs, product)
		return
	}

	oldImage, newImage := product.ImageURL, ""
	if header != nil {
		filename, msgs := pc.saveImage(header)
		if msgs != nil {
			pc.renderForm(w, r, "inventory/edit", "Edit Product", form, msgs, product)
			return
		}
		newImage = filename
		product.ImageURL = filename
	}

	form.Apply(product)
	if err := pc.Catalog.Update(r.Context(), product); err != nil {
		if newImage != "" {
			pc.removeImage(newImage)
		}
		failure(pc.Views, w, r, err, "Error updating product.")
		return
	}
	if newImage != "" {
		pc.removeImage(oldImage)
	}
	http.Redirect(w, r, "/inventory/list", http.StatusSeeOther)
}

// RemoveProductPage asks the clerk to confirm a removal
func (pc *ProductController) RemoveProductPage(w http.ResponseWriter, r *http.Request) {
	product, err := pc.findProduct(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		failure(pc.Views, w, r, err, "Error retrieving product.")
		return
	}
	p := page(r, "Remove Product")
	p.Data = *product
	pc.Views.Render(w, http.StatusOK, "inventory/remove", p)
}

// DeleteProduct removes a product and its image
func (pc *ProductController) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	product, err := pc.findProduct(r.Context(), id)
	if err != nil {
		failure(pc.Views, w, r, err, "Error deleting product.")
		return
	}
	if err := pc.Catalog.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			err = services.ErrNotFound
		}
		failure(pc.Views, w, r, err, "Error deleting product.")
		return
	}
	pc.removeImage(product.ImageURL)
	http.Redirect(w, r, "/inventory/list", http.StatusSeeOther)
}
