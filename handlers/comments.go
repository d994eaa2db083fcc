package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tablefare/restaurant-backend/internal/comments"
	"github.com/tablefare/restaurant-backend/internal/models"
	"github.com/tablefare/restaurant-backend/pkg/logger"
	"github.com/tablefare/restaurant-backend/pkg/middleware"
)

// CommentsHandler holds dependencies for the standalone /comments routes.
type CommentsHandler struct {
	svc         *comments.Service
	verifyUser  gin.HandlerFunc
	verifyAdmin gin.HandlerFunc
}

func NewCommentsHandler(svc *comments.Service, verifyUser, verifyAdmin gin.HandlerFunc) *CommentsHandler {
	return &CommentsHandler{svc: svc, verifyUser: verifyUser, verifyAdmin: verifyAdmin}
}

// Register routes under /comments
func (h *CommentsHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/comments")
	g.GET("", h.List)
	g.POST("", h.verifyUser, h.Create)
	g.PUT("", h.notSupported("PUT"))
	g.DELETE("", h.verifyUser, h.verifyAdmin, h.DeleteAll)

	g.GET("/:id", h.Get)
	g.POST("/:id", h.notSupported("POST"))
	g.PUT("/:id", h.verifyUser, h.Update)
	g.DELETE("/:id", h.verifyUser, h.Delete)
}

func (h *CommentsHandler) notSupported(verb string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusForbidden, gin.H{"error": verb + " operation not supported on " + c.Request.URL.Path})
	}
}

func (h *CommentsHandler) List(c *gin.Context) {
	cs, err := h.svc.List(c.Request.Context(), c.Query("dish"))
	if err != nil {
		logger.Errorf("comment listing failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "listing failed"})
		return
	}
	c.JSON(http.StatusOK, cs)
}

func (h *CommentsHandler) Get(c *gin.Context) {
	cm, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondCommentErr(c, err)
		return
	}
	c.JSON(http.StatusOK, cm)
}

func (h *CommentsHandler) Create(c *gin.Context) {
	u := middleware.CurrentUser(c)
	var req struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
		Dish    string `json:"dish"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	out, err := h.svc.Create(c.Request.Context(), u.ID, &models.Comment{
		Rating:  req.Rating,
		Comment: req.Comment,
		Dish:    req.Dish,
	})
	if err != nil {
		respondCommentErr(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *CommentsHandler) Update(c *gin.Context) {
	u := middleware.CurrentUser(c)
	var req struct {
		Rating  *int    `json:"rating"`
		Comment *string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	out, err := h.svc.Update(c.Request.Context(), u.ID, c.Param("id"), req.Rating, req.Comment)
	if err != nil {
		respondCommentErr(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *CommentsHandler) Delete(c *gin.Context) {
	u := middleware.CurrentUser(c)
	if err := h.svc.Delete(c.Request.Context(), u.ID, c.Param("id")); err != nil {
		respondCommentErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *CommentsHandler) DeleteAll(c *gin.Context) {
	n, err := h.svc.DeleteAll(c.Request.Context())
	if err != nil {
		logger.Errorf("comment purge failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": n})
}

func respondCommentErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, comments.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "comment not found"})
	case errors.Is(err, comments.ErrNotOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": "you are not the author of this comment"})
	case errors.Is(err, comments.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed"})
	default:
		logger.Errorf("comment operation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "operation failed"})
	}
}
