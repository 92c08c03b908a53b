package services

import (
	"context"
	"reflect"
	"testing"

	"catalog-service/models"
	"catalog-service/pkg/errs"
)

// fakeProductRepo is an in-memory stand-in for the Mongo repository. Update
// mirrors $set semantics: only the supplied fields change.
type fakeProductRepo struct {
	products map[string]models.Product
	order    []string
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[string]models.Product{}}
}

func (f *fakeProductRepo) FindAll(ctx context.Context) ([]models.Product, error) {
	all := make([]models.Product, 0, len(f.order))
	for _, id := range f.order {
		all = append(all, f.products[id])
	}
	return all, nil
}

func (f *fakeProductRepo) FindByID(ctx context.Context, id string) (*models.Product, error) {
	product, ok := f.products[id]
	if !ok {
		return nil, errs.NotFound("product")
	}
	return &product, nil
}

func (f *fakeProductRepo) Insert(ctx context.Context, product *models.Product) error {
	f.products[product.ID] = *product
	f.order = append(f.order, product.ID)
	return nil
}

func (f *fakeProductRepo) Update(ctx context.Context, id string, updates map[string]interface{}) (*models.Product, error) {
	product, ok := f.products[id]
	if !ok {
		return nil, errs.NotFound("product")
	}
	for field, value := range updates {
		switch field {
		case "title":
			product.Title = value.(string)
		case "description":
			product.Description = value.(string)
		case "price":
			product.Price = value.(float64)
		case "image":
			product.Image = value.(string)
		case "gallery":
			product.Gallery = value.([]string)
		case "features":
			product.Features = value.([]string)
		case "warranty":
			product.Warranty = value.(string)
		case "video":
			product.Video = value.(string)
		}
	}
	f.products[id] = product
	return &product, nil
}

func (f *fakeProductRepo) Delete(ctx context.Context, id string) (bool, error) {
	if _, ok := f.products[id]; !ok {
		return false, nil
	}
	delete(f.products, id)
	for i, pid := range f.order {
		if pid == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return true, nil
}

func (f *fakeProductRepo) PushReview(ctx context.Context, productID string, review models.Review) (*models.Product, error) {
	product, ok := f.products[productID]
	if !ok {
		return nil, errs.NotFound("product")
	}
	product.Reviews = append(product.Reviews, review)
	f.products[productID] = product
	return &product, nil
}

func (f *fakeProductRepo) SetReviewHidden(ctx context.Context, productID, reviewID string, hidden bool) error {
	product, ok := f.products[productID]
	if !ok {
		return errs.NotFound("product")
	}
	for i := range product.Reviews {
		if product.Reviews[i].ID == reviewID {
			product.Reviews[i].Hidden = hidden
			f.products[productID] = product
			return nil
		}
	}
	return errs.NotFound("review")
}

func (f *fakeProductRepo) PullReview(ctx context.Context, productID, reviewID string) (bool, error) {
	product, ok := f.products[productID]
	if !ok {
		return false, nil
	}
	for i := range product.Reviews {
		if product.Reviews[i].ID == reviewID {
			product.Reviews = append(product.Reviews[:i], product.Reviews[i+1:]...)
			f.products[productID] = product
			return true, nil
		}
	}
	return false, nil
}

func newTestService() (*CatalogService, *fakeProductRepo) {
	repo := newFakeProductRepo()
	return NewCatalogService(repo), repo
}

func TestCreateThenGetRoundtrip(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	input := ProductInput{
		Title:       "Lock A",
		Description: "A sturdy lock",
		Price:       100,
		Gallery:     []string{"g1", "g2"},
		Features:    []string{"steel body"},
		Warranty:    "2 years",
	}

	created, err := service.CreateProduct(ctx, input)
	if err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected a generated product id")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Fatal("expected server-assigned timestamps")
	}

	got, err := service.GetProduct(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetProduct failed: %v", err)
	}
	if got.Title != input.Title || got.Price != input.Price || got.Warranty != input.Warranty {
		t.Fatalf("roundtrip mismatch: %+v", got)
	}
	if !reflect.DeepEqual(got.Gallery, input.Gallery) {
		t.Fatalf("gallery mismatch: got %v want %v", got.Gallery, input.Gallery)
	}
	if len(got.Reviews) != 0 {
		t.Fatalf("new product should have no reviews, got %d", len(got.Reviews))
	}
}

func TestCreateProductValidation(t *testing.T) {
	service, _ := newTestService()

	_, err := service.CreateProduct(context.Background(), ProductInput{Title: "  ", Price: -5})
	if !errs.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}

	var appErr *errs.Error
	if !asAppError(err, &appErr) {
		t.Fatalf("expected *errs.Error, got %T", err)
	}
	if !reflect.DeepEqual(appErr.Fields, []string{"title", "price"}) {
		t.Fatalf("expected violated fields [title price], got %v", appErr.Fields)
	}
}

func TestUpdateProductMergesOnlySuppliedFields(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	created, err := service.CreateProduct(ctx, ProductInput{Title: "Lock A", Description: "desc", Price: 100})
	if err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}

	price := 120.0
	updated, err := service.UpdateProduct(ctx, created.ID, ProductPatch{Price: &price})
	if err != nil {
		t.Fatalf("UpdateProduct failed: %v", err)
	}

	if updated.Price != 120 {
		t.Fatalf("expected price 120, got %v", updated.Price)
	}
	if updated.Title != "Lock A" {
		t.Fatalf("title should be untouched, got %q", updated.Title)
	}
	if updated.Description != "desc" {
		t.Fatalf("description should be untouched, got %q", updated.Description)
	}
}

func TestUpdateProductNotFound(t *testing.T) {
	service, _ := newTestService()

	title := "x"
	_, err := service.UpdateProduct(context.Background(), "missing", ProductPatch{Title: &title})
	if !errs.IsNotFound(err) {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestUpdateProductReconcilesGallery(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	created, err := service.CreateProduct(ctx, ProductInput{
		Title:   "Lock A",
		Price:   100,
		Gallery: []string{"a", "b", "c"},
	})
	if err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}

	updated, err := service.UpdateProduct(ctx, created.ID, ProductPatch{
		GalleryAdd:    []string{"d"},
		GalleryRemove: []string{"b"},
	})
	if err != nil {
		t.Fatalf("UpdateProduct failed: %v", err)
	}

	want := []string{"a", "c", "d"}
	if !reflect.DeepEqual(updated.Gallery, want) {
		t.Fatalf("expected gallery %v, got %v", want, updated.Gallery)
	}
}

func TestUpdateProductPrimaryImageRules(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	created, err := service.CreateProduct(ctx, ProductInput{Title: "Lock A", Price: 100, Image: "old.jpg"})
	if err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}

	// New upload replaces unconditionally.
	newImage := "new.jpg"
	updated, err := service.UpdateProduct(ctx, created.ID, ProductPatch{NewImage: &newImage})
	if err != nil {
		t.Fatalf("UpdateProduct failed: %v", err)
	}
	if updated.Image != "new.jpg" {
		t.Fatalf("expected image new.jpg, got %q", updated.Image)
	}

	// Untouched patch leaves it unchanged.
	price := 50.0
	updated, err = service.UpdateProduct(ctx, created.ID, ProductPatch{Price: &price})
	if err != nil {
		t.Fatalf("UpdateProduct failed: %v", err)
	}
	if updated.Image != "new.jpg" {
		t.Fatalf("image should be untouched, got %q", updated.Image)
	}

	// Explicit clear empties it.
	updated, err = service.UpdateProduct(ctx, created.ID, ProductPatch{ClearImage: true})
	if err != nil {
		t.Fatalf("UpdateProduct failed: %v", err)
	}
	if updated.Image != "" {
		t.Fatalf("expected cleared image, got %q", updated.Image)
	}
}

func TestDeleteProductIsIdempotent(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	created, err := service.CreateProduct(ctx, ProductInput{Title: "Lock A", Price: 100})
	if err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}

	deleted, err := service.DeleteProduct(ctx, created.ID)
	if err != nil || !deleted {
		t.Fatalf("first delete: deleted=%v err=%v", deleted, err)
	}

	deleted, err = service.DeleteProduct(ctx, created.ID)
	if err != nil {
		t.Fatalf("second delete errored: %v", err)
	}
	if deleted {
		t.Fatal("second delete should report false")
	}
}

func TestAddReviewDefaults(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	created, err := service.CreateProduct(ctx, ProductInput{Title: "Lock A", Price: 100})
	if err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}

	product, err := service.AddReview(ctx, created.ID, ReviewInput{Rating: 5, Comment: "great"})
	if err != nil {
		t.Fatalf("AddReview failed: %v", err)
	}
	if len(product.Reviews) != 1 {
		t.Fatalf("expected 1 review, got %d", len(product.Reviews))
	}

	review := product.Reviews[0]
	if review.Hidden {
		t.Fatal("new review should not be hidden")
	}
	if review.Name != "Customer" {
		t.Fatalf("expected placeholder name, got %q", review.Name)
	}
	if review.ID == "" {
		t.Fatal("expected a generated review id")
	}
	if review.Date.IsZero() {
		t.Fatal("expected a submission date")
	}
}

func TestAddReviewKeepsInsertionOrder(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	created, err := service.CreateProduct(ctx, ProductInput{Title: "Lock A", Price: 100})
	if err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}

	for _, name := range []string{"first", "second", "third"} {
		if _, err := service.AddReview(ctx, created.ID, ReviewInput{Name: name, Rating: 4, Comment: "ok"}); err != nil {
			t.Fatalf("AddReview(%s) failed: %v", name, err)
		}
	}

	product, err := service.GetProduct(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetProduct failed: %v", err)
	}
	for i, want := range []string{"first", "second", "third"} {
		if product.Reviews[i].Name != want {
			t.Fatalf("review %d: expected %q, got %q", i, want, product.Reviews[i].Name)
		}
	}
}

func TestToggleReviewTwiceRestores(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	created, err := service.CreateProduct(ctx, ProductInput{Title: "Lock A", Price: 100})
	if err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}
	product, err := service.AddReview(ctx, created.ID, ReviewInput{Rating: 5, Comment: "great"})
	if err != nil {
		t.Fatalf("AddReview failed: %v", err)
	}
	reviewID := product.Reviews[0].ID

	toggled, err := service.ToggleReview(ctx, created.ID, reviewID)
	if err != nil {
		t.Fatalf("first toggle failed: %v", err)
	}
	if !toggled.Hidden {
		t.Fatal("first toggle should hide the review")
	}

	toggled, err = service.ToggleReview(ctx, created.ID, reviewID)
	if err != nil {
		t.Fatalf("second toggle failed: %v", err)
	}
	if toggled.Hidden {
		t.Fatal("second toggle should restore visibility")
	}
}

func TestToggleReviewNotFound(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	created, err := service.CreateProduct(ctx, ProductInput{Title: "Lock A", Price: 100})
	if err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}

	if _, err := service.ToggleReview(ctx, created.ID, "missing"); !errs.IsNotFound(err) {
		t.Fatalf("expected not-found for missing review, got %v", err)
	}
	if _, err := service.ToggleReview(ctx, "missing", "missing"); !errs.IsNotFound(err) {
		t.Fatalf("expected not-found for missing product, got %v", err)
	}
}

func TestDeleteReviewIsIdempotent(t *testing.T) {
	service, _ := newTestService()
	ctx := context.Background()

	created, err := service.CreateProduct(ctx, ProductInput{Title: "Lock A", Price: 100})
	if err != nil {
		t.Fatalf("CreateProduct failed: %v", err)
	}
	product, err := service.AddReview(ctx, created.ID, ReviewInput{Rating: 3, Comment: "fine"})
	if err != nil {
		t.Fatalf("AddReview failed: %v", err)
	}
	reviewID := product.Reviews[0].ID

	deleted, err := service.DeleteReview(ctx, created.ID, reviewID)
	if err != nil || !deleted {
		t.Fatalf("first delete: deleted=%v err=%v", deleted, err)
	}

	deleted, err = service.DeleteReview(ctx, created.ID, reviewID)
	if err != nil {
		t.Fatalf("second delete errored: %v", err)
	}
	if deleted {
		t.Fatal("second delete should report false")
	}
}

func asAppError(err error, target **errs.Error) bool {
	e, ok := err.(*errs.Error)
	if ok {
		*target = e
	}
	return ok
}
