package controllers

import (
	"net/http"

	"catalog-service/pkg/errs"
	"catalog-service/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SettingsController handles the site-settings endpoints.
type SettingsController struct {
	service   SettingsServiceAPI
	uploader  services.ImageUploader
	validator *RequestValidator
}

func NewSettingsController(service SettingsServiceAPI, uploader services.ImageUploader) *SettingsController {
	return &SettingsController{
		service:   service,
		uploader:  uploader,
		validator: NewRequestValidator(),
	}
}

// GetSettings returns all settings as a key-value snapshot.
func (sc *SettingsController) GetSettings(c *gin.Context) {
	settings, err := sc.service.GetAll(c.Request.Context())
	if err != nil {
		zap.L().Error("Error fetching settings", zap.Error(err))
		c.JSON(errs.HTTPStatus(err), gin.H{"error": "Failed to fetch settings"})
		return
	}
	c.JSON(http.StatusOK, settings)
}

// GetSetting returns a single setting value, or null when unset.
func (sc *SettingsController) GetSetting(c *gin.Context) {
	key := c.Param("key")

	value, err := sc.service.Get(c.Request.Context(), key, nil)
	if err != nil {
		zap.L().Error("Error fetching setting", zap.Error(err), zap.String("key", key))
		c.JSON(errs.HTTPStatus(err), gin.H{"error": "Failed to fetch setting"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": key, "value": value})
}

// PutSetting upserts a single setting from a JSON body {"value": ...}.
func (sc *SettingsController) PutSetting(c *gin.Context) {
	key := c.Param("key")

	var body struct {
		Value interface{} `json:"value"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid setting payload"})
		return
	}

	setting, err := sc.service.Set(c.Request.Context(), key, body.Value)
	if err != nil {
		zap.L().Error("Error saving setting", zap.Error(err), zap.String("key", key))
		c.JSON(errs.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, setting)
}

// UploadHeroImage stores a new hero image and records its reference under the
// heroImage setting.
func (sc *SettingsController) UploadHeroImage(c *gin.Context) {
	file, err := c.FormFile("heroImage")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "heroImage file is required"})
		return
	}
	if !sc.validator.IsValidImageType(file) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid image type"})
		return
	}
	if err := sc.validator.ValidateFileSize(file); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ref, err := sc.uploader.Upload(c.Request.Context(), file)
	if err != nil {
		zap.L().Error("Error uploading hero image", zap.Error(err))
		c.JSON(errs.HTTPStatus(err), gin.H{"error": "Failed to upload hero image"})
		return
	}

	setting, err := sc.service.Set(c.Request.Context(), "heroImage", ref)
	if err != nil {
		zap.L().Error("Error saving hero image setting", zap.Error(err))
		c.JSON(errs.HTTPStatus(err), gin.H{"error": "Failed to save hero image"})
		return
	}
	c.JSON(http.StatusOK, setting)
}

// ToggleReviews stores whether customer reviews are publicly shown.
func (sc *SettingsController) ToggleReviews(c *gin.Context) {
	showReviews := c.PostForm("showReviews") == "on" || c.PostForm("showReviews") == "true"

	setting, err := sc.service.Set(c.Request.Context(), "showReviews", showReviews)
	if err != nil {
		zap.L().Error("Error toggling reviews setting", zap.Error(err))
		c.JSON(errs.HTTPStatus(err), gin.H{"error": "Failed to save setting"})
		return
	}

	zap.L().Info("Reviews visibility toggled", zap.Bool("show_reviews", showReviews))
	c.JSON(http.StatusOK, setting)
}
