package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tablefare/restaurant-backend/internal/storage"
	"github.com/tablefare/restaurant-backend/pkg/logger"
	"github.com/tablefare/restaurant-backend/pkg/metrics"
)

// allowedImageExts is the upload extension allowlist.
var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// UploadHandler accepts admin image uploads and stores them in the object
// store.
type UploadHandler struct {
	store       *storage.ImageStore
	maxFileSize int64
	verifyUser  gin.HandlerFunc
	verifyAdmin gin.HandlerFunc
}

func NewUploadHandler(store *storage.ImageStore, maxFileSize int64, verifyUser, verifyAdmin gin.HandlerFunc) *UploadHandler {
	return &UploadHandler{store: store, maxFileSize: maxFileSize, verifyUser: verifyUser, verifyAdmin: verifyAdmin}
}

// Register routes under /imageUpload
func (h *UploadHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/imageUpload")
	g.POST("", h.verifyUser, h.verifyAdmin, h.Upload)
	g.GET("", h.notSupported("GET"))
	g.PUT("", h.notSupported("PUT"))
	g.DELETE("", h.notSupported("DELETE"))
}

func (h *UploadHandler) notSupported(verb string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusForbidden, gin.H{"error": verb + " operation not supported on " + c.Request.URL.Path})
	}
}

// Upload stores the multipart "imageFile" field and answers with the object
// key and a presigned GET URL.
func (h *UploadHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("imageFile")
	if err != nil {
		metrics.Uploads.WithLabelValues("rejected").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "imageFile field is required"})
		return
	}
	if fh.Size > h.maxFileSize {
		metrics.Uploads.WithLabelValues("rejected").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("file exceeds %d byte limit", h.maxFileSize)})
		return
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedImageExts[ext] {
		metrics.Uploads.WithLabelValues("rejected").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported image type"})
		return
	}

	f, err := fh.Open()
	if err != nil {
		metrics.Uploads.WithLabelValues("error").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not read upload"})
		return
	}
	defer f.Close()

	key := fmt.Sprintf("images/%d%s", time.Now().UnixNano(), ext)
	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if err := h.store.Put(c.Request.Context(), key, f, fh.Size, contentType); err != nil {
		logger.Errorf("image upload failed: %v", err)
		metrics.Uploads.WithLabelValues("error").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
		return
	}

	url, err := h.store.PresignedURL(c.Request.Context(), key, 24*time.Hour)
	if err != nil {
		logger.Warnf("presigned url generation failed: %v", err)
	}
	metrics.Uploads.WithLabelValues("ok").Inc()
	c.JSON(http.StatusOK, gin.H{"key": key, "url": url})
}
