package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-storefront/models"
	"go-storefront/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserRepository reads and writes the users collection
type UserRepository struct {
	Collection *mongo.Collection
	BcryptCost int
}

// NewUserRepository creates a UserRepository on db
func NewUserRepository(db *mongo.Database, bcryptCost int) *UserRepository {
	return &UserRepository{
		Collection: db.Collection("users"),
		BcryptCost: bcryptCost,
	}
}

// EnsureIndexes creates the unique email index
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := r.Collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("email_unique"),
	})
	if err != nil {
		return fmt.Errorf("create email index: %w", err)
	}
	return nil
}

// FindByEmail looks up an account by its exact stored email
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var user models.User
	err := r.Collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

// Create stores a new account. u.Password holds the plain password on entry
// and the hash on return. DateCreated and Role are defaulted when unset.
func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	hashed, err := utils.HashPassword(u.Password, r.BcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	doc := *u
	doc.ID = primitive.NewObjectID()
	doc.Password = hashed
	if doc.DateCreated.IsZero() {
		doc.DateCreated = time.Now().UTC()
	}
	if !doc.Role.Valid() {
		doc.Role = models.RoleCustomer
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if _, err := r.Collection.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}
	*u = doc
	return nil
}
