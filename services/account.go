package services

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"go-storefront/forms"
	"go-storefront/models"
	"go-storefront/repository"
	"go-storefront/utils"
)

// DuplicateEmailMessage is shown when signing up with a registered email
const DuplicateEmailMessage = "That email is already registered. Please use another."

// AccountStore persists accounts. Create hashes the password.
type AccountStore interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, u *models.User) error
}

// NotificationQueue accepts emails for a later, retried delivery
type NotificationQueue interface {
	Enqueue(ctx context.Context, email utils.Email) error
}

// AccountService signs users up and logs them in
type AccountService struct {
	users  AccountStore
	mailer utils.Mailer
	retry  NotificationQueue // nil disables retries
}

// NewAccountService creates an AccountService. retry may be nil.
func NewAccountService(users AccountStore, mailer utils.Mailer, retry NotificationQueue) *AccountService {
	return &AccountService{users: users, mailer: mailer, retry: retry}
}

// SignUp validates the form, stores the account and sends a welcome email.
// A failed welcome email does not undo the account; it is queued for retry.
func (s *AccountService) SignUp(ctx context.Context, form forms.SignUpForm) (*models.User, error) {
	if msgs := form.Validate(); len(msgs) > 0 {
		return nil, &ValidationError{Fields: msgs}
	}

	user := &models.User{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
		Password:  form.Password,
		Role:      models.RoleCustomer,
	}
	err := s.users.Create(ctx, user)
	if errors.Is(err, repository.ErrDuplicateEmail) {
		return nil, &ValidationError{Fields: forms.Messages{"email": DuplicateEmailMessage}}
	}
	if err != nil {
		return nil, &DependencyError{Dependency: "accounts", Err: err}
	}

	s.welcome(ctx, user)
	return user, nil
}

func (s *AccountService) welcome(ctx context.Context, user *models.User) {
	email, err := utils.WelcomeEmail(user.Email, user.FirstName, user.LastName)
	if err != nil {
		slog.Error("Error building welcome email", "error", err)
		return
	}
	sendErr := s.mailer.SendEmail(ctx, email)
	if sendErr == nil {
		return
	}
	if s.retry == nil {
		slog.Error("Failed to send welcome email", "to", user.Email, "error", sendErr)
		return
	}
	if err := s.retry.Enqueue(ctx, email); err != nil {
		slog.Error("Failed to send or queue welcome email", "to", user.Email, "send_error", sendErr, "queue_error", err)
		return
	}
	slog.Warn("Welcome email deferred", "to", user.Email, "error", sendErr)
}

var (
	dummyHashOnce sync.Once
	dummyHash     string
)

// burn a comparison so unknown emails cost as much as wrong passwords
func compareDummy(password string) {
	dummyHashOnce.Do(func() {
		dummyHash, _ = utils.HashPassword("not-a-real-password", 0)
	})
	utils.VerifyPassword(dummyHash, password)
}

// LogIn checks credentials and derives the session identity from the stored
// account, role included
func (s *AccountService) LogIn(ctx context.Context, form forms.LogInForm) (*models.SessionIdentity, error) {
	if msgs := form.Validate(); len(msgs) > 0 {
		return nil, &ValidationError{Fields: msgs}
	}

	user, err := s.users.FindByEmail(ctx, form.Email)
	if errors.Is(err, repository.ErrNotFound) {
		compareDummy(form.Password)
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, &DependencyError{Dependency: "accounts", Err: err}
	}
	if !utils.VerifyPassword(user.Password, form.Password) {
		return nil, ErrInvalidCredentials
	}
	return models.IdentityFor(*user), nil
}
