package services

import (
	"context"
	"errors"

	"go-storefront/models"
	"go-storefront/repository"
	"go-storefront/utils"
)

// ProductFinder loads catalog products by id
type ProductFinder interface {
	FindByID(ctx context.Context, id string) (*models.Product, error)
}

// CartService applies cart operations to a session's cart
type CartService struct {
	products ProductFinder
	mailer   utils.Mailer
}

// NewCartService creates a CartService
func NewCartService(products ProductFinder, mailer utils.Mailer) *CartService {
	return &CartService{products: products, mailer: mailer}
}

// Add loads productID and adds one unit of it to cart
func (s *CartService) Add(ctx context.Context, cart *models.Cart, productID string) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, productID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, &DependencyError{Dependency: "catalog", Err: err}
	}
	cart.Add(*product)
	return product, nil
}

// UpdateQuantity sets a line's quantity, coercing bad input to 1
func (s *CartService) UpdateQuantity(cart *models.Cart, productID, rawQty string) {
	cart.UpdateQuantity(productID, rawQty)
}

// Remove drops a product from cart
func (s *CartService) Remove(cart *models.Cart, productID string) {
	cart.Remove(productID)
}

// Checkout totals cart and emails the summary to customerEmail. The cart is
// cleared only after the email is accepted; on failure it is left as is and
// the order is not placed.
func (s *CartService) Checkout(ctx context.Context, cart *models.Cart, customerEmail string) (models.OrderSummary, error) {
	if cart.IsEmpty() {
		return models.OrderSummary{}, ErrEmptyCart
	}
	summary := cart.Totals()
	email := utils.OrderConfirmationEmail(customerEmail, summary)
	if err := s.mailer.SendEmail(ctx, email); err != nil {
		return summary, &DependencyError{Dependency: "email", Err: err}
	}
	cart.Clear()
	return summary, nil
}
