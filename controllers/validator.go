package controllers

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validation constants
const (
	MaxUploadSize   = 10 * 1024 * 1024 // 10MB
	MaxGalleryFiles = 10
)

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// CreateProductRequest defines the expected form fields for creating a product.
// Features arrive as one text blob split on newlines, matching the admin form.
type CreateProductRequest struct {
	Title       string  `form:"title" validate:"required"`
	Description string  `form:"description" validate:"required"`
	Price       float64 `form:"price" validate:"gte=0"`
	Features    string  `form:"features"`
	Warranty    string  `form:"warranty"`
	Video       string  `form:"video"`
}

// AddReviewRequest defines the expected fields for a review submission.
type AddReviewRequest struct {
	Name    string  `form:"name" json:"name"`
	Rating  float64 `form:"rating" json:"rating" validate:"required,gte=1,lte=5"`
	Comment string  `form:"comment" json:"comment" validate:"required"`
}

// RequestValidator handles all input validation
type RequestValidator struct {
	validate *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	return &RequestValidator{
		validate: validator.New(),
	}
}

func (rv *RequestValidator) Struct(s interface{}) error {
	return rv.validate.Struct(s)
}

// IsValidImageType checks if the file is a valid image
func (rv *RequestValidator) IsValidImageType(file *multipart.FileHeader) bool {
	if allowedImageTypes[file.Header.Get("Content-Type")] {
		return true
	}

	// Fallback: check by extension
	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp", ".gif":
		return true
	}

	return false
}

// ValidateFileSize checks if file size is within limits
func (rv *RequestValidator) ValidateFileSize(file *multipart.FileHeader) error {
	if file.Size > MaxUploadSize {
		return fmt.Errorf("file too large (max %dMB)", MaxUploadSize/(1024*1024))
	}
	return nil
}

// SplitFeatures turns the newline-separated features blob into trimmed,
// non-empty lines in their given order.
func SplitFeatures(features string) []string {
	lines := strings.Split(features, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
