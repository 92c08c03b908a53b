package controllers

import (
	"context"
	"time"

	"catalog-service/models"
	"catalog-service/services"
)

// Default configuration values
const (
	DefaultCacheTTL       = 10 * time.Minute
	DefaultContextTimeout = 30 * time.Second
)

// CatalogServiceAPI defines the interface for catalog operations consumed by
// the HTTP layer.
type CatalogServiceAPI interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	CreateProduct(ctx context.Context, input services.ProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, patch services.ProductPatch) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) (bool, error)
	AddReview(ctx context.Context, productID string, input services.ReviewInput) (*models.Product, error)
	ToggleReview(ctx context.Context, productID, reviewID string) (*models.Review, error)
	DeleteReview(ctx context.Context, productID, reviewID string) (bool, error)
}

// SettingsServiceAPI defines the interface for the site-settings store.
type SettingsServiceAPI interface {
	Get(ctx context.Context, key string, defaultValue interface{}) (interface{}, error)
	GetAll(ctx context.Context) (map[string]interface{}, error)
	Set(ctx context.Context, key string, value interface{}) (*models.Setting, error)
}
