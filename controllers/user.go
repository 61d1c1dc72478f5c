package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"go-storefront/forms"
	"go-storefront/models"
	"go-storefront/services"
	"go-storefront/session"
)

const unexpectedError = "Unexpected error. Please try again."

// UserController handles sign-up, log-in and logout
type UserController struct {
	Accounts *services.AccountService
	Sessions *session.Manager
	Views    Renderer
}

// NewUserController creates a new UserController
func NewUserController(accounts *services.AccountService, sessions *session.Manager, views Renderer) *UserController {
	return &UserController{Accounts: accounts, Sessions: sessions, Views: views}
}

func (uc *UserController) renderSignUp(w http.ResponseWriter, r *http.Request, status int, form forms.SignUpForm, msgs forms.Messages) {
	form.Password = ""
	p := page(r, "Sign Up")
	p.Form = form
	p.Errors = msgs
	uc.Views.Render(w, status, "users/sign-up", p)
}

func (uc *UserController) renderLogIn(w http.ResponseWriter, r *http.Request, status int, form forms.LogInForm, msgs forms.Messages) {
	form.Password = ""
	p := page(r, "Log In")
	p.Form = form
	p.Errors = msgs
	uc.Views.Render(w, status, "users/log-in", p)
}

// SignUpPage shows the empty sign-up form
func (uc *UserController) SignUpPage(w http.ResponseWriter, r *http.Request) {
	uc.renderSignUp(w, r, http.StatusOK, forms.SignUpForm{}, nil)
}

// Register handles user registration
func (uc *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var form forms.SignUpForm
	if err := forms.Decode(r, &form); err != nil {
		uc.renderSignUp(w, r, http.StatusBadRequest, form, forms.Messages{"email": "Invalid input."})
		return
	}

	_, err := uc.Accounts.SignUp(r.Context(), form)
	var vErr *services.ValidationError
	switch {
	case errors.As(err, &vErr):
		uc.renderSignUp(w, r, http.StatusOK, form, vErr.Fields)
	case err != nil:
		slog.Error("Error saving user", "email", form.Email, "error", err)
		uc.renderSignUp(w, r, http.StatusInternalServerError, form, forms.Messages{"email": unexpectedError})
	default:
		http.Redirect(w, r, "/general/welcome", http.StatusSeeOther)
	}
}

// LogInPage shows the empty log-in form
func (uc *UserController) LogInPage(w http.ResponseWriter, r *http.Request) {
	uc.renderLogIn(w, r, http.StatusOK, forms.LogInForm{}, nil)
}

// Login handles user authentication. Unknown emails and wrong passwords get
// the same response.
func (uc *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var form forms.LogInForm
	if err := forms.Decode(r, &form); err != nil {
		uc.renderLogIn(w, r, http.StatusBadRequest, form, forms.Messages{"email": "Invalid input."})
		return
	}

	identity, err := uc.Accounts.LogIn(r.Context(), form)
	var vErr *services.ValidationError
	switch {
	case errors.As(err, &vErr):
		uc.renderLogIn(w, r, http.StatusOK, form, vErr.Fields)
		return
	case errors.Is(err, services.ErrInvalidCredentials):
		uc.renderLogIn(w, r, http.StatusUnauthorized, form, forms.Messages{"email": "Invalid email or password."})
		return
	case err != nil:
		slog.Error("Login error", "error", err)
		uc.renderLogIn(w, r, http.StatusInternalServerError, form, forms.Messages{"email": unexpectedError})
		return
	}

	s := session.FromContext(r.Context())
	// A cart belongs to the identity that filled it
	if s.User == nil || s.User.ID != identity.ID {
		s.Cart = nil
	}
	s.User = identity
	if err := uc.Sessions.Renew(w, r, s); err != nil {
		slog.Error("Error starting session", "error", err)
		uc.renderLogIn(w, r, http.StatusInternalServerError, form, forms.Messages{"email": unexpectedError})
		return
	}

	if identity.Role == models.RoleClerk {
		http.Redirect(w, r, "/inventory/list", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// Logout destroys the whole session, cart included
func (uc *UserController) Logout(w http.ResponseWriter, r *http.Request) {
	if err := uc.Sessions.Destroy(w, r, session.FromContext(r.Context())); err != nil {
		slog.Error("Error destroying session", "error", err)
	}
	http.Redirect(w, r, "/log-in", http.StatusFound)
}
