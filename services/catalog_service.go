package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"catalog-service/models"
	"catalog-service/pkg/errs"
	"catalog-service/repository"

	"github.com/google/uuid"
)

// defaultReviewerName is used when a review is submitted without a name.
const defaultReviewerName = "Customer"

// keyedMutex serializes writes per product id. Read-then-write sequences
// (gallery merge, review toggle) are not atomic at the storage layer, so
// concurrent updates to the same product would race last-write-wins without
// it. Serialization only holds within a single process.
type keyedMutex struct {
	mus sync.Map
}

func (k *keyedMutex) Lock(id string) func() {
	v, _ := k.mus.LoadOrStore(id, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// CatalogService sequences repository calls for the catalog: products, their
// gallery lifecycle, and the embedded review ledger. It holds no state of its
// own beyond per-product write locks.
type CatalogService struct {
	repo  repository.ProductRepo
	locks keyedMutex

	// injectable for tests
	newID func() string
	now   func() time.Time
}

func NewCatalogService(repo repository.ProductRepo) *CatalogService {
	return &CatalogService{
		repo:  repo,
		newID: uuid.NewString,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.repo.FindAll(ctx)
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *CatalogService) CreateProduct(ctx context.Context, input ProductInput) (*models.Product, error) {
	if fields := validateProductInput(input.Title, input.Price); len(fields) > 0 {
		return nil, errs.Validation(fields...)
	}

	now := s.now()
	product := &models.Product{
		ID:          s.newID(),
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		Price:       input.Price,
		Image:       input.Image,
		Gallery:     emptyIfNil(input.Gallery),
		Features:    emptyIfNil(input.Features),
		Warranty:    input.Warranty,
		Video:       input.Video,
		Reviews:     []models.Review{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Insert(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct merges only the fields supplied in patch into the existing
// product. The gallery is rewritten only when the patch touches it.
func (s *CatalogService) UpdateProduct(ctx context.Context, id string, patch ProductPatch) (*models.Product, error) {
	unlock := s.locks.Lock(id)
	defer unlock()

	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	var invalid []string

	if patch.Title != nil {
		if strings.TrimSpace(*patch.Title) == "" {
			invalid = append(invalid, "title")
		} else {
			updates["title"] = strings.TrimSpace(*patch.Title)
		}
	}
	if patch.Price != nil {
		if *patch.Price < 0 {
			invalid = append(invalid, "price")
		} else {
			updates["price"] = *patch.Price
		}
	}
	if len(invalid) > 0 {
		return nil, errs.Validation(invalid...)
	}

	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Features != nil {
		updates["features"] = emptyIfNil(*patch.Features)
	}
	if patch.Warranty != nil {
		updates["warranty"] = *patch.Warranty
	}
	if patch.Video != nil {
		updates["video"] = *patch.Video
	}

	if patch.NewImage != nil || patch.ClearImage {
		uploaded := ""
		if patch.NewImage != nil {
			uploaded = *patch.NewImage
		}
		updates["image"] = ResolvePrimaryImage(current.Image, uploaded, patch.ClearImage)
	}

	if len(patch.GalleryAdd) > 0 || len(patch.GalleryRemove) > 0 {
		updates["gallery"] = ReconcileGallery(current.Gallery, patch.GalleryAdd, patch.GalleryRemove)
	}

	if len(updates) == 0 {
		return current, nil
	}
	return s.repo.Update(ctx, id, updates)
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id string) (bool, error) {
	return s.repo.Delete(ctx, id)
}

// AddReview appends a review to the product's ledger. The review id is unique
// within the product, hidden starts false, and the name falls back to a
// placeholder when absent. Append order is the display order.
func (s *CatalogService) AddReview(ctx context.Context, productID string, input ReviewInput) (*models.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = defaultReviewerName
	}

	review := models.Review{
		ID:      s.newID(),
		Name:    name,
		Rating:  input.Rating,
		Comment: input.Comment,
		Date:    s.now(),
		Hidden:  false,
	}
	return s.repo.PushReview(ctx, productID, review)
}

// ToggleReview flips the hidden flag of a review without deleting its data.
func (s *CatalogService) ToggleReview(ctx context.Context, productID, reviewID string) (*models.Review, error) {
	unlock := s.locks.Lock(productID)
	defer unlock()

	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	for i := range product.Reviews {
		if product.Reviews[i].ID != reviewID {
			continue
		}
		hidden := !product.Reviews[i].Hidden
		if err := s.repo.SetReviewHidden(ctx, productID, reviewID, hidden); err != nil {
			return nil, err
		}
		review := product.Reviews[i]
		review.Hidden = hidden
		return &review, nil
	}
	return nil, errs.NotFound("review")
}

func (s *CatalogService) DeleteReview(ctx context.Context, productID, reviewID string) (bool, error) {
	return s.repo.PullReview(ctx, productID, reviewID)
}

func validateProductInput(title string, price float64) []string {
	var fields []string
	if strings.TrimSpace(title) == "" {
		fields = append(fields, "title")
	}
	if price < 0 {
		fields = append(fields, "price")
	}
	return fields
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
