package controllers

import (
	"fmt"
	"net/http"

	"go-storefront/services"
	"go-storefront/session"

	"github.com/gorilla/mux"
)

// CartController handles the session cart
type CartController struct {
	Cart     *services.CartService
	Sessions *session.Manager
	Views    Renderer
}

// NewCartController creates a new CartController
func NewCartController(cart *services.CartService, sessions *session.Manager, views Renderer) *CartController {
	return &CartController{Cart: cart, Sessions: sessions, Views: views}
}

// Buy adds one unit of a product to the cart
func (cc *CartController) Buy(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	productID := mux.Vars(r)["id"]

	if _, err := cc.Cart.Add(r.Context(), s.CartOrNew(), productID); err != nil {
		failure(cc.Views, w, r, err, "An error occurred while processing your request.")
		return
	}
	if !saveSession(cc.Sessions, w, r, s) {
		return
	}
	http.Redirect(w, r, "/cart", http.StatusFound)
}

// GetCart shows the cart with its totals
func (cc *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	p := page(r, "Shopping Cart")
	p.Message = fmt.Sprintf("Hello, %s. This is your cart.", s.User.FirstName)
	p.Data = s.Cart.Totals()
	cc.Views.Render(w, http.StatusOK, "general/cart", p)
}

// UpdateQuantity sets a line's quantity from the "qty" field
func (cc *CartController) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	cc.Cart.UpdateQuantity(s.CartOrNew(), mux.Vars(r)["id"], r.PostFormValue("qty"))
	if !saveSession(cc.Sessions, w, r, s) {
		return
	}
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// RemoveFromCart removes a product from the cart
func (cc *CartController) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())
	cc.Cart.Remove(s.CartOrNew(), mux.Vars(r)["id"])
	if !saveSession(cc.Sessions, w, r, s) {
		return
	}
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}
