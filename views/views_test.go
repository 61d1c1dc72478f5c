package views

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go-storefront/forms"
	"go-storefront/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestRenderEveryPage(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	product := models.Product{
		ID:        primitive.NewObjectID(),
		Title:     "Nightstand",
		Category:  "Bedroom Furniture",
		Price:     decimal.RequireFromString("149.99"),
		SalePrice: decimal.NewNullDecimal(decimal.RequireFromString("99.99")),
		ImageURL:  "nightstand.png",
	}
	cart := &models.Cart{}
	cart.Add(product)
	clerk := &models.SessionIdentity{FirstName: "Bo", Role: models.RoleClerk}

	pages := map[string]Page{
		"general/home":        {Title: "Home", Data: []models.Product{product}},
		"general/welcome":     {Title: "Welcome"},
		"general/error":       {Title: "Error", Message: "Product not found."},
		"general/message":     {Title: "Order Placed", Message: "done"},
		"general/cart":        {Title: "Shopping Cart", Data: cart.Totals()},
		"users/sign-up":       {Title: "Sign Up", Form: forms.SignUpForm{}},
		"users/log-in":        {Title: "Log In", Form: forms.LogInForm{}, Errors: forms.Messages{"email": "Invalid email or password."}},
		"inventory/inventory": {Title: "Inventory", Data: models.GroupByCategory([]models.Product{product})},
		"inventory/list":      {Title: "Inventory Management", User: clerk, Data: []models.Product{product}},
		"inventory/add":       {Title: "Add Product", User: clerk, Form: forms.ProductForm{}},
		"inventory/edit":      {Title: "Edit Product", User: clerk, Form: forms.ProductFormFrom(product), Data: product},
		"inventory/remove":    {Title: "Remove Product", User: clerk, Data: product},
		"loadData/message":    {Title: "Load Data", User: clerk, Message: "Added 6 products to the database"},
	}
	for name, page := range pages {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.Render(rec, http.StatusOK, name, page)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Contains(t, rec.Body.String(), "<h1>"+page.Title+"</h1>")
		})
	}
}

func TestRenderCartTotals(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	cart := &models.Cart{}
	cart.Add(models.Product{ID: primitive.NewObjectID(), Title: "Table", Price: decimal.RequireFromString("10")})
	cart.Add(models.Product{ID: primitive.NewObjectID(), Title: "Table", Price: decimal.RequireFromString("10")})

	rec := httptest.NewRecorder()
	r.Render(rec, http.StatusOK, "general/cart", Page{Title: "Shopping Cart", Message: "Hello, Ana. This is your cart.", Data: cart.Totals()})
	body := rec.Body.String()
	assert.Contains(t, body, "Hello, Ana. This is your cart.")
	assert.Contains(t, body, "$20.00")
	assert.Contains(t, body, "$2.00")
	assert.Contains(t, body, "$22.00")
}

func TestRenderEscapesAndSetsStatus(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	r.Render(rec, http.StatusUnauthorized, "general/error", Page{Title: "Unauthorized", Message: "<script>"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.NotContains(t, rec.Body.String(), "<script>")
}

func TestRenderUnknownPage(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	r.Render(rec, http.StatusOK, "nope", Page{})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestProductFormsIncludeSharedFields(t *testing.T) {
	r, err := New()
	require.NoError(t, err)

	clerk := &models.SessionIdentity{FirstName: "Bo", Role: models.RoleClerk}
	product := models.Product{ID: primitive.NewObjectID(), Title: "Lamp", Price: decimal.RequireFromString("20")}
	for name, page := range map[string]Page{
		"inventory/add":  {Title: "Add Product", User: clerk, Form: forms.ProductForm{}},
		"inventory/edit": {Title: "Edit Product", User: clerk, Form: forms.ProductFormFrom(product), Data: product},
	} {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.Render(rec, http.StatusOK, name, page)
			require.Equal(t, http.StatusOK, rec.Code)
			body := rec.Body.String()
			assert.Contains(t, body, `name="shippingWeight"`)
			assert.Contains(t, body, `name="imageUrl"`)
		})
	}
}
