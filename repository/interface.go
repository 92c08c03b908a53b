package repository

import (
	"context"

	"catalog-service/models"
)

// ProductRepo defines the persistence operations used by catalog-service.
// This interface uses plain Go types (no mongo-driver types) to make swapping
// adapters easier.
type ProductRepo interface {
	FindAll(ctx context.Context) ([]models.Product, error)
	FindByID(ctx context.Context, id string) (*models.Product, error)
	Insert(ctx context.Context, product *models.Product) error
	// Update applies only the supplied fields and returns the updated document.
	Update(ctx context.Context, id string, updates map[string]interface{}) (*models.Product, error)
	// Delete removes the product and its embedded reviews. It reports whether
	// a deletion occurred; deleting a missing id is not an error.
	Delete(ctx context.Context, id string) (bool, error)

	// PushReview appends a review to the product's review array and returns
	// the updated product.
	PushReview(ctx context.Context, productID string, review models.Review) (*models.Product, error)
	SetReviewHidden(ctx context.Context, productID, reviewID string, hidden bool) error
	// PullReview removes a review by id and reports whether one was removed.
	PullReview(ctx context.Context, productID, reviewID string) (bool, error)
}

// SettingRepo defines the operations backing the site-settings store.
type SettingRepo interface {
	FindByKey(ctx context.Context, key string) (*models.Setting, error)
	FindAll(ctx context.Context) ([]models.Setting, error)
	// Upsert creates the setting if absent and replaces its value if present.
	Upsert(ctx context.Context, key string, value interface{}) (*models.Setting, error)
}
