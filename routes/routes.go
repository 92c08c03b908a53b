package routes

import (
	"catalog-service/controllers"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the public and admin route groups. The adminOnly
// middleware supplies the "is an authorized administrator" decision; the
// catalog itself carries no auth logic.
func RegisterRoutes(
	r *gin.Engine,
	pc *controllers.ProductController,
	rc *controllers.ReviewController,
	sc *controllers.SettingsController,
	adminOnly gin.HandlerFunc,
) {
	products := r.Group("/products")
	{
		products.GET("/", pc.GetProducts)
		products.GET("/:id", pc.GetProductByID)
		products.POST("/:id/reviews", rc.AddReview)
	}

	admin := r.Group("/admin", adminOnly)
	{
		admin.POST("/products", pc.CreateProduct)
		admin.PUT("/products/:id", pc.UpdateProduct)
		admin.DELETE("/products/:id", pc.DeleteProduct)

		admin.POST("/products/:id/reviews/:reviewId/toggle", rc.ToggleReview)
		admin.DELETE("/products/:id/reviews/:reviewId", rc.DeleteReview)

		admin.GET("/settings", sc.GetSettings)
		admin.GET("/settings/:key", sc.GetSetting)
		admin.PUT("/settings/:key", sc.PutSetting)
		admin.POST("/settings/hero", sc.UploadHeroImage)
		admin.POST("/settings/toggle-reviews", sc.ToggleReviews)

		admin.GET("/uploads/presign", pc.GeneratePresignedUpload)
	}
}
