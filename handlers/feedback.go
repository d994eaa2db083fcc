package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tablefare/restaurant-backend/internal/feedback"
	"github.com/tablefare/restaurant-backend/internal/models"
	"github.com/tablefare/restaurant-backend/pkg/logger"
)

// FeedbackHandler holds dependencies for the /feedback routes. Submission is
// the one unauthenticated write in the API: it is the public contact form.
type FeedbackHandler struct {
	repo        feedback.Repository
	verifyUser  gin.HandlerFunc
	verifyAdmin gin.HandlerFunc
}

func NewFeedbackHandler(repo feedback.Repository, verifyUser, verifyAdmin gin.HandlerFunc) *FeedbackHandler {
	return &FeedbackHandler{repo: repo, verifyUser: verifyUser, verifyAdmin: verifyAdmin}
}

// Register routes under /feedback
func (h *FeedbackHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/feedback")
	g.GET("", h.List)
	g.POST("", h.Create)
	g.PUT("", h.notSupported("PUT"))
	g.DELETE("", h.verifyUser, h.verifyAdmin, h.DeleteAll)

	g.GET("/:id", h.Get)
}

func (h *FeedbackHandler) notSupported(verb string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusForbidden, gin.H{"error": verb + " operation not supported on " + c.Request.URL.Path})
	}
}

func (h *FeedbackHandler) List(c *gin.Context) {
	fs, err := h.repo.List(c.Request.Context())
	if err != nil {
		logger.Errorf("feedback listing failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "listing failed"})
		return
	}
	c.JSON(http.StatusOK, fs)
}

func (h *FeedbackHandler) Get(c *gin.Context) {
	f, err := h.repo.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, feedback.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "feedback not found"})
			return
		}
		logger.Errorf("feedback lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	c.JSON(http.StatusOK, f)
}

func (h *FeedbackHandler) Create(c *gin.Context) {
	var f models.Feedback
	if err := c.ShouldBindJSON(&f); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := feedback.Validate(&f); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	out, err := h.repo.Create(c.Request.Context(), &f)
	if err != nil {
		logger.Errorf("feedback creation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "creation failed"})
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *FeedbackHandler) DeleteAll(c *gin.Context) {
	n, err := h.repo.DeleteAll(c.Request.Context())
	if err != nil {
		logger.Errorf("feedback purge failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": n})
}
