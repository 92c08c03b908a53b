package controllers

import (
	"net/http"

	"catalog-service/pkg/errs"
	"catalog-service/services"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ReviewController handles review submission and the admin review ledger
// endpoints. Reviews live inside their parent product; there is no global
// review index.
type ReviewController struct {
	service   CatalogServiceAPI
	cache     *CacheManager
	validator *RequestValidator
}

func NewReviewController(service CatalogServiceAPI, redisClient *redis.Client) *ReviewController {
	return &ReviewController{
		service:   service,
		cache:     NewCacheManager(redisClient),
		validator: NewRequestValidator(),
	}
}

// AddReview appends a customer review to a product. Open to shoppers.
func (rc *ReviewController) AddReview(c *gin.Context) {
	productID := c.Param("id")

	var req AddReviewRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid review data"})
		return
	}
	if err := rc.validator.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := services.ReviewInput{
		Name:    req.Name,
		Rating:  req.Rating,
		Comment: req.Comment,
	}

	product, err := rc.service.AddReview(c.Request.Context(), productID, input)
	if err != nil {
		if errs.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		} else {
			zap.L().Error("Error adding review", zap.Error(err), zap.String("product_id", productID))
			c.JSON(errs.HTTPStatus(err), gin.H{"error": "Failed to add review"})
		}
		return
	}

	rc.cache.Invalidate(c.Request.Context())
	c.JSON(http.StatusCreated, product)
}

// ToggleReview flips a review's visibility without deleting its data.
func (rc *ReviewController) ToggleReview(c *gin.Context) {
	productID := c.Param("id")
	reviewID := c.Param("reviewId")

	review, err := rc.service.ToggleReview(c.Request.Context(), productID, reviewID)
	if err != nil {
		if errs.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
		} else {
			zap.L().Error("Error toggling review", zap.Error(err),
				zap.String("product_id", productID), zap.String("review_id", reviewID))
			c.JSON(errs.HTTPStatus(err), gin.H{"error": "Failed to toggle review"})
		}
		return
	}

	rc.cache.Invalidate(c.Request.Context())
	c.JSON(http.StatusOK, review)
}

// DeleteReview removes a review by id. Deleting a missing review is reported,
// not treated as an error.
func (rc *ReviewController) DeleteReview(c *gin.Context) {
	productID := c.Param("id")
	reviewID := c.Param("reviewId")

	deleted, err := rc.service.DeleteReview(c.Request.Context(), productID, reviewID)
	if err != nil {
		zap.L().Error("Error deleting review", zap.Error(err),
			zap.String("product_id", productID), zap.String("review_id", reviewID))
		c.JSON(errs.HTTPStatus(err), gin.H{"error": "Failed to delete review"})
		return
	}

	if deleted {
		rc.cache.Invalidate(c.Request.Context())
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
