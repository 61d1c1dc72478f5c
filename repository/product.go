package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-storefront/models"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const opTimeout = 5 * time.Second

// productDocument is the stored shape of a product. Money and dimensions are
// Decimal128 so nothing is lost to floating point.
type productDocument struct {
	ID             primitive.ObjectID    `bson:"_id,omitempty"`
	Title          string                `bson:"title"`
	Description    string                `bson:"description"`
	Category       string                `bson:"category"`
	Price          primitive.Decimal128  `bson:"price"`
	SalePrice      *primitive.Decimal128 `bson:"salePrice,omitempty"`
	ShippingWeight primitive.Decimal128  `bson:"shippingWeight"`
	ShippingWidth  primitive.Decimal128  `bson:"shippingWidth"`
	ShippingLength primitive.Decimal128  `bson:"shippingLength"`
	ShippingHeight primitive.Decimal128  `bson:"shippingHeight"`
	ImageURL       string                `bson:"imageUrl"`
	Featured       bool                  `bson:"featured"`
}

// ProductRepository reads and writes the products collection
type ProductRepository struct {
	Collection *mongo.Collection
}

// NewProductRepository creates a ProductRepository on db
func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{Collection: db.Collection("products")}
}

// FindByID loads one product. Malformed ids are reported as ErrNotFound.
func (r *ProductRepository) FindByID(ctx context.Context, id string) (*models.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var doc productDocument
	err = r.Collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find product %s: %w", id, err)
	}
	p, err := doc.toModel()
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// FindAll returns every product in insertion order
func (r *ProductRepository) FindAll(ctx context.Context) ([]models.Product, error) {
	return r.find(ctx, options.Find())
}

// FindAllSorted returns every product ordered by title
func (r *ProductRepository) FindAllSorted(ctx context.Context) ([]models.Product, error) {
	return r.find(ctx, options.Find().SetSort(bson.D{{Key: "title", Value: 1}}))
}

func (r *ProductRepository) find(ctx context.Context, opts *options.FindOptions) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	cursor, err := r.Collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find products: %w", err)
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	for cursor.Next(ctx) {
		var doc productDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode product: %w", err)
		}
		p, err := doc.toModel()
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("read products: %w", err)
	}
	return products, nil
}

// ExistsByTitle reports whether a product with the exact title is stored
func (r *ProductRepository) ExistsByTitle(ctx context.Context, title string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	count, err := r.Collection.CountDocuments(ctx, bson.M{"title": title})
	if err != nil {
		return false, fmt.Errorf("count products: %w", err)
	}
	return count > 0, nil
}

// Create inserts p and sets its ID
func (r *ProductRepository) Create(ctx context.Context, p *models.Product) error {
	doc, err := toProductDocument(*p)
	if err != nil {
		return err
	}
	doc.ID = primitive.NewObjectID()

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if _, err := r.Collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	p.ID = doc.ID
	return nil
}

// Update replaces the stored product with p
func (r *ProductRepository) Update(ctx context.Context, p *models.Product) error {
	doc, err := toProductDocument(*p)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	result, err := r.Collection.ReplaceOne(ctx, bson.M{"_id": p.ID}, doc)
	if err != nil {
		return fmt.Errorf("update product %s: %w", p.ID.Hex(), err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes the product with the given id
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	result, err := r.Collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete product %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func toProductDocument(p models.Product) (productDocument, error) {
	doc := productDocument{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Category:    p.Category,
		ImageURL:    p.ImageURL,
		Featured:    p.Featured,
	}
	var err error
	fields := []struct {
		dst *primitive.Decimal128
		src decimal.Decimal
	}{
		{&doc.Price, p.Price},
		{&doc.ShippingWeight, p.ShippingWeight},
		{&doc.ShippingWidth, p.ShippingWidth},
		{&doc.ShippingLength, p.ShippingLength},
		{&doc.ShippingHeight, p.ShippingHeight},
	}
	for _, f := range fields {
		if *f.dst, err = toDecimal128(f.src); err != nil {
			return doc, err
		}
	}
	if p.SalePrice.Valid {
		sale, err := toDecimal128(p.SalePrice.Decimal)
		if err != nil {
			return doc, err
		}
		doc.SalePrice = &sale
	}
	return doc, nil
}

func (doc productDocument) toModel() (models.Product, error) {
	p := models.Product{
		ID:          doc.ID,
		Title:       doc.Title,
		Description: doc.Description,
		Category:    doc.Category,
		ImageURL:    doc.ImageURL,
		Featured:    doc.Featured,
	}
	var err error
	fields := []struct {
		dst *decimal.Decimal
		src primitive.Decimal128
	}{
		{&p.Price, doc.Price},
		{&p.ShippingWeight, doc.ShippingWeight},
		{&p.ShippingWidth, doc.ShippingWidth},
		{&p.ShippingLength, doc.ShippingLength},
		{&p.ShippingHeight, doc.ShippingHeight},
	}
	for _, f := range fields {
		if *f.dst, err = fromDecimal128(f.src); err != nil {
			return p, fmt.Errorf("product %s: %w", doc.ID.Hex(), err)
		}
	}
	if doc.SalePrice != nil {
		sale, err := fromDecimal128(*doc.SalePrice)
		if err != nil {
			return p, fmt.Errorf("product %s: %w", doc.ID.Hex(), err)
		}
		p.SalePrice = decimal.NewNullDecimal(sale)
	}
	return p, nil
}

func toDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	v, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return primitive.Decimal128{}, fmt.Errorf("encode decimal %s: %w", d.String(), err)
	}
	return v, nil
}

func fromDecimal128(v primitive.Decimal128) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(v.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("decode decimal %s: %w", v.String(), err)
	}
	return d, nil
}
