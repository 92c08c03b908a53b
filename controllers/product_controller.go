package controllers

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"catalog-service/pkg/errs"
	"catalog-service/services"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProductController handles the product catalog endpoints.
type ProductController struct {
	service   CatalogServiceAPI
	uploader  services.ImageUploader
	cache     *CacheManager
	validator *RequestValidator
}

func NewProductController(service CatalogServiceAPI, uploader services.ImageUploader, redisClient *redis.Client) *ProductController {
	return &ProductController{
		service:   service,
		uploader:  uploader,
		cache:     NewCacheManager(redisClient),
		validator: NewRequestValidator(),
	}
}

// GetProducts returns the full catalog. No pagination: the expected catalog
// size is small, which is a known scaling limit.
func (pc *ProductController) GetProducts(c *gin.Context) {
	if products, ok := pc.cache.GetProductList(c.Request.Context()); ok {
		c.JSON(http.StatusOK, gin.H{"products": products})
		return
	}

	products, err := pc.service.ListProducts(c.Request.Context())
	if err != nil {
		zap.L().Error("Error listing products", zap.Error(err))
		c.JSON(errs.HTTPStatus(err), gin.H{"error": "Failed to fetch products"})
		return
	}

	pc.cache.SetProductListAsync(products)
	c.JSON(http.StatusOK, gin.H{"products": products})
}

// GetProductByID returns a single product by its identifier.
func (pc *ProductController) GetProductByID(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		zap.L().Warn("Invalid product ID format", zap.String("id", id))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID format"})
		return
	}

	if product, ok := pc.cache.GetProduct(c.Request.Context(), id); ok {
		c.JSON(http.StatusOK, product)
		return
	}

	product, err := pc.service.GetProduct(c.Request.Context(), id)
	if err != nil {
		if errs.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		} else {
			zap.L().Error("Error fetching product", zap.Error(err), zap.String("id", id))
			c.JSON(errs.HTTPStatus(err), gin.H{"error": "Internal Server Error"})
		}
		return
	}

	pc.cache.SetProductAsync(id, product)
	c.JSON(http.StatusOK, product)
}

// CreateProduct creates a product from a multipart form: text fields plus an
// optional primary image file and up to MaxGalleryFiles gallery files.
func (pc *ProductController) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid form data"})
		return
	}
	if err := pc.validator.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	image, gallery, ok := pc.uploadImages(c)
	if !ok {
		return
	}

	input := services.ProductInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Image:       image,
		Gallery:     gallery,
		Features:    SplitFeatures(req.Features),
		Warranty:    req.Warranty,
		Video:       req.Video,
	}

	product, err := pc.service.CreateProduct(c.Request.Context(), input)
	if err != nil {
		zap.L().Error("Error creating product", zap.Error(err))
		c.JSON(errs.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}

	pc.cache.Invalidate(c.Request.Context())
	zap.L().Info("Product created", zap.String("id", product.ID), zap.String("title", product.Title))
	c.JSON(http.StatusCreated, product)
}

// UpdateProduct applies a partial update. Only the form fields actually
// present are merged; gallery deletions and new uploads are reconciled
// against the stored gallery in one step.
func (pc *ProductController) UpdateProduct(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID format"})
		return
	}

	patch := services.ProductPatch{}

	if title, ok := c.GetPostForm("title"); ok {
		patch.Title = &title
	}
	if description, ok := c.GetPostForm("description"); ok {
		patch.Description = &description
	}
	if priceStr, ok := c.GetPostForm("price"); ok {
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price value"})
			return
		}
		patch.Price = &price
	}
	if features, ok := c.GetPostForm("features"); ok {
		lines := SplitFeatures(features)
		patch.Features = &lines
	}
	if warranty, ok := c.GetPostForm("warranty"); ok {
		patch.Warranty = &warranty
	}
	if video, ok := c.GetPostForm("video"); ok {
		patch.Video = &video
	}

	patch.ClearImage = c.PostForm("deleteMainImage") == "true"
	patch.GalleryRemove = c.PostFormArray("deletedGalleryImages")

	image, gallery, ok := pc.uploadImages(c)
	if !ok {
		return
	}
	if image != "" {
		patch.NewImage = &image
	}
	patch.GalleryAdd = gallery

	product, err := pc.service.UpdateProduct(c.Request.Context(), id, patch)
	if err != nil {
		if errs.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		} else {
			zap.L().Error("Error updating product", zap.Error(err), zap.String("id", id))
			c.JSON(errs.HTTPStatus(err), gin.H{"error": err.Error()})
		}
		return
	}

	pc.cache.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, product)
}

// DeleteProduct removes a product and its reviews. Deleting a missing id is
// reported, not treated as an error.
func (pc *ProductController) DeleteProduct(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID format"})
		return
	}

	deleted, err := pc.service.DeleteProduct(c.Request.Context(), id)
	if err != nil {
		zap.L().Error("Error deleting product", zap.Error(err), zap.String("id", id))
		c.JSON(errs.HTTPStatus(err), gin.H{"error": "Failed to delete product"})
		return
	}

	if deleted {
		pc.cache.Invalidate(c.Request.Context())
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// uploadImages pushes the primary image and gallery files from the multipart
// form to object storage and returns their references. A missing multipart
// body is fine; the request simply carries no files.
func (pc *ProductController) uploadImages(c *gin.Context) (string, []string, bool) {
	form, err := c.MultipartForm()
	if err != nil {
		return "", nil, true
	}

	var image string
	if files := form.File["image"]; len(files) > 0 {
		image, err = pc.uploadOne(c, files[0])
		if err != nil {
			return "", nil, false
		}
	}

	galleryFiles := form.File["gallery"]
	if len(galleryFiles) > MaxGalleryFiles {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Too many gallery files"})
		return "", nil, false
	}

	var gallery []string
	for _, file := range galleryFiles {
		ref, err := pc.uploadOne(c, file)
		if err != nil {
			return "", nil, false
		}
		gallery = append(gallery, ref)
	}
	return image, gallery, true
}

func (pc *ProductController) uploadOne(c *gin.Context, file *multipart.FileHeader) (string, error) {
	if !pc.validator.IsValidImageType(file) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image type for file " + file.Filename})
		return "", errs.Validation("image")
	}
	if err := pc.validator.ValidateFileSize(file); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", err
	}

	ref, err := pc.uploader.Upload(c.Request.Context(), file)
	if err != nil {
		zap.L().Error("Error uploading image", zap.Error(err), zap.String("filename", file.Filename))
		c.JSON(errs.HTTPStatus(err), gin.H{"error": "Failed to upload image"})
		return "", err
	}
	return ref, nil
}
