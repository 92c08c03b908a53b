package repository

import (
	"context"
	"time"

	"catalog-service/models"
	"catalog-service/pkg/errs"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProductRepository struct {
	collection *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{
		collection: db.Collection("products"),
	}
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]models.Product, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, errs.Storage("find products", err)
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, errs.Storage("decode products", err)
	}
	return products, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errs.NotFound("product")
		}
		return nil, errs.Storage("find product", err)
	}
	return &product, nil
}

func (r *ProductRepository) Insert(ctx context.Context, product *models.Product) error {
	if _, err := r.collection.InsertOne(ctx, product); err != nil {
		return errs.Storage("insert product", err)
	}
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, id string, updates map[string]interface{}) (*models.Product, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	for field, value := range updates {
		set[field] = value
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var product models.Product
	err := r.collection.
		FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).
		Decode(&product)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errs.NotFound("product")
		}
		return nil, errs.Storage("update product", err)
	}
	return &product, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, errs.Storage("delete product", err)
	}
	return result.DeletedCount > 0, nil
}

func (r *ProductRepository) PushReview(ctx context.Context, productID string, review models.Review) (*models.Product, error) {
	update := bson.M{
		"$push": bson.M{"reviews": review},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var product models.Product
	err := r.collection.
		FindOneAndUpdate(ctx, bson.M{"_id": productID}, update, opts).
		Decode(&product)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, errs.NotFound("product")
		}
		return nil, errs.Storage("push review", err)
	}
	return &product, nil
}

func (r *ProductRepository) SetReviewHidden(ctx context.Context, productID, reviewID string, hidden bool) error {
	filter := bson.M{"_id": productID, "reviews._id": reviewID}
	update := bson.M{"$set": bson.M{"reviews.$.hidden": hidden}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return errs.Storage("update review", err)
	}
	if result.MatchedCount == 0 {
		return errs.NotFound("review")
	}
	return nil
}

func (r *ProductRepository) PullReview(ctx context.Context, productID, reviewID string) (bool, error) {
	filter := bson.M{"_id": productID}
	update := bson.M{"$pull": bson.M{"reviews": bson.M{"_id": reviewID}}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, errs.Storage("delete review", err)
	}
	return result.ModifiedCount > 0, nil
}
