package controllers

import (
	"net/http"
	"strconv"

	"catalog-service/pkg/errs"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const defaultPresignExpirySeconds = 900

// GeneratePresignedUpload returns a presigned PUT URL so the admin UI can
// push large images straight to object storage, plus the public URL the
// object will be served from.
func (pc *ProductController) GeneratePresignedUpload(c *gin.Context) {
	filename := c.Query("filename")
	contentType := c.Query("contentType")
	if filename == "" || contentType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "filename and contentType are required"})
		return
	}
	if !allowedImageTypes[contentType] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unsupported content type"})
		return
	}

	expires := int64(defaultPresignExpirySeconds)
	if expiresStr := c.Query("expires"); expiresStr != "" {
		parsed, err := strconv.ParseInt(expiresStr, 10, 64)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid expires value"})
			return
		}
		expires = parsed
	}

	uploadURL, key, publicURL, err := pc.uploader.PresignedPut(c.Request.Context(), filename, contentType, expires)
	if err != nil {
		zap.L().Error("Error generating presigned upload", zap.Error(err), zap.String("filename", filename))
		c.JSON(errs.HTTPStatus(err), gin.H{"error": "Failed to generate upload URL"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"uploadUrl": uploadURL,
		"key":       key,
		"publicUrl": publicURL,
	})
}
