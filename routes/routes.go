// routes/routes.go
package routes

import (
	"net/http"

	"go-storefront/controllers"
	"go-storefront/middleware"
	"go-storefront/session"
	"go-storefront/views"

	"github.com/gorilla/mux"
)

// Controllers groups the handlers mounted by RegisterRoutes
type Controllers struct {
	General  *controllers.GeneralController
	User     *controllers.UserController
	Cart     *controllers.CartController
	Order    *controllers.OrderController
	Product  *controllers.ProductController
	LoadData *controllers.LoadDataController
}

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(router *mux.Router, guard *middleware.Guard, c Controllers, uploadDir string) {
	notClerk := func(message string, h http.HandlerFunc) http.Handler {
		return guard.Require(middleware.NotClerk, message)(h)
	}
	customer := func(message string, h http.HandlerFunc) http.Handler {
		return guard.Require(middleware.CustomerOnly, message)(h)
	}

	// Static files
	router.PathPrefix("/images/").Handler(http.StripPrefix("/images/", http.FileServer(http.Dir(uploadDir))))
	router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", views.Static()))

	// Public routes
	router.Handle("/", notClerk("Data clerks are not authorized to view the Home page.", c.General.Home)).Methods("GET")
	router.HandleFunc("/general/welcome", c.General.Welcome).Methods("GET")
	router.HandleFunc("/sign-up", c.User.SignUpPage).Methods("GET")
	router.HandleFunc("/sign-up", c.User.Register).Methods("POST")
	router.HandleFunc("/log-in", c.User.LogInPage).Methods("GET")
	router.HandleFunc("/log-in", c.User.Login).Methods("POST")
	router.HandleFunc("/logout", c.User.Logout).Methods("GET")
	router.Handle("/inventory", notClerk("Data clerks are not authorized to view this page.", c.Product.GetInventory)).Methods("GET")

	// Cart routes
	router.Handle("/buy/{id}", customer("You must be logged in as a customer to buy products.", c.Cart.Buy)).Methods("GET")
	router.Handle("/cart", customer("You must be logged in as a customer to view the cart.", c.Cart.GetCart)).Methods("GET")
	router.Handle("/cart/update/{id}", customer("You must be logged in as a customer to view the cart.", c.Cart.UpdateQuantity)).Methods("POST")
	router.Handle("/cart/remove/{id}", customer("You must be logged in as a customer to view the cart.", c.Cart.RemoveFromCart)).Methods("POST")

	// Order routes
	router.Handle("/cart/checkout", customer("You must be logged in as a customer to place an order.", c.Order.Checkout)).Methods("POST")

	// Clerk routes
	clerk := router.PathPrefix("/inventory").Subrouter()
	clerk.Use(guard.Require(middleware.ClerkOnly, "You are not authorized to view this page."))
	clerk.HandleFunc("/list", c.Product.GetProducts).Methods("GET")
	clerk.HandleFunc("/add", c.Product.AddProductPage).Methods("GET")
	clerk.HandleFunc("/add", c.Product.CreateProduct).Methods("POST")
	clerk.HandleFunc("/edit/{id}", c.Product.EditProductPage).Methods("GET")
	clerk.HandleFunc("/edit/{id}", c.Product.UpdateProduct).Methods("POST")
	clerk.HandleFunc("/remove/{id}", c.Product.RemoveProductPage).Methods("GET")
	clerk.HandleFunc("/remove/{id}", c.Product.DeleteProduct).Methods("POST")

	loadData := router.PathPrefix("/load-data").Subrouter()
	loadData.Use(guard.Require(middleware.ClerkOnly, "You are not authorized to add products"))
	loadData.HandleFunc("/products", c.LoadData.LoadProducts).Methods("GET")

	router.NotFoundHandler = http.HandlerFunc(controllers.NotFound)
	router.MethodNotAllowedHandler = http.HandlerFunc(controllers.NotFound)
}

// Handler wraps the router with the middleware every request passes through
func Handler(router *mux.Router, sessions *session.Manager) http.Handler {
	return middleware.Recoverer(middleware.RequestLogger(sessions.Middleware(router)))
}
