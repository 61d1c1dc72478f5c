package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"go-storefront/services"
	"go-storefront/session"
)

// OrderController places orders from the session cart
type OrderController struct {
	Cart     *services.CartService
	Sessions *session.Manager
	Views    Renderer
}

// NewOrderController creates a new OrderController
func NewOrderController(cart *services.CartService, sessions *session.Manager, views Renderer) *OrderController {
	return &OrderController{Cart: cart, Sessions: sessions, Views: views}
}

// Checkout emails the order summary and empties the cart. The identity stays
// signed in; a failed email leaves the cart as it was.
func (oc *OrderController) Checkout(w http.ResponseWriter, r *http.Request) {
	s := session.FromContext(r.Context())

	summary, err := oc.Cart.Checkout(r.Context(), s.Cart, s.User.Email)
	if errors.Is(err, services.ErrEmptyCart) {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}
	if err != nil {
		slog.Error("Error sending order email", "to", s.User.Email, "error", err)
		renderError(oc.Views, w, r, http.StatusInternalServerError, "Checkout Error",
			"An error occurred while processing your order. Please try again.")
		return
	}
	slog.Info("Order placed", "customer", s.User.ID, "lines", len(summary.Lines), "total", summary.GrandTotal.StringFixed(2))
	if err := oc.Sessions.Save(w, r, s); err != nil {
		// The confirmation is already out, so the order still reports success
		slog.Error("Order placed but session cart not cleared", "customer", s.User.ID, "error", err)
	}
	p := page(r, "Order Placed")
	p.Message = "Your order has been placed successfully. A confirmation email has been sent to your email address."
	oc.Views.Render(w, http.StatusOK, "general/message", p)
}
