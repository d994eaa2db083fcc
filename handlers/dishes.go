package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tablefare/restaurant-backend/internal/catalog"
	"github.com/tablefare/restaurant-backend/internal/models"
	"github.com/tablefare/restaurant-backend/pkg/logger"
	"github.com/tablefare/restaurant-backend/pkg/middleware"
)

// DishCommentRequest carries the writable fields of a dish review. The
// author is always taken from the verified caller, never from the body.
type DishCommentRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// DishesHandler holds dependencies for the /dishes routes.
type DishesHandler struct {
	svc         *catalog.Service
	readOnly    bool
	verifyUser  gin.HandlerFunc
	verifyAdmin gin.HandlerFunc
}

func NewDishesHandler(svc *catalog.Service, readOnly bool, verifyUser, verifyAdmin gin.HandlerFunc) *DishesHandler {
	return &DishesHandler{svc: svc, readOnly: readOnly, verifyUser: verifyUser, verifyAdmin: verifyAdmin}
}

// Register routes under /dishes
func (h *DishesHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/dishes")
	g.GET("", h.List)
	g.POST("", h.verifyUser, h.verifyAdmin, h.writable(h.Create))
	g.PUT("", h.notSupported("PUT"))
	g.DELETE("", h.verifyUser, h.verifyAdmin, h.writable(h.DeleteAll))

	g.GET("/:id", h.Get)
	g.POST("/:id", h.notSupported("POST"))
	g.PUT("/:id", h.verifyUser, h.verifyAdmin, h.writable(h.Update))
	g.DELETE("/:id", h.verifyUser, h.verifyAdmin, h.writable(h.Delete))

	g.GET("/:id/comments", h.ListComments)
	g.POST("/:id/comments", h.verifyUser, h.writable(h.AddComment))
	g.PUT("/:id/comments", h.notSupported("PUT"))
	g.DELETE("/:id/comments", h.verifyUser, h.verifyAdmin, h.writable(h.DeleteAllComments))

	g.GET("/:id/comments/:commentId", h.GetComment)
	g.POST("/:id/comments/:commentId", h.notSupported("POST"))
	g.PUT("/:id/comments/:commentId", h.verifyUser, h.writable(h.UpdateComment))
	g.DELETE("/:id/comments/:commentId", h.verifyUser, h.writable(h.DeleteComment))
}

// notSupported mirrors the verb matrix: unsupported verbs answer 403 rather
// than 405.
func (h *DishesHandler) notSupported(verb string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusForbidden, gin.H{"error": verb + " operation not supported on " + c.Request.URL.Path})
	}
}

// writable rejects mutations while the catalog is serving seeded fallback
// content.
func (h *DishesHandler) writable(next gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.readOnly {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "catalog is read-only"})
			return
		}
		next(c)
	}
}

func (h *DishesHandler) List(c *gin.Context) {
	ds, err := h.svc.Dishes.List(c.Request.Context(), listFilterFromQuery(c))
	if err != nil {
		logger.Errorf("dish listing failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "listing failed"})
		return
	}
	c.JSON(http.StatusOK, ds)
}

func (h *DishesHandler) Get(c *gin.Context) {
	d, err := h.svc.Dishes.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondCatalogErr(c, err, "dish")
		return
	}
	c.JSON(http.StatusOK, d)
}

func (h *DishesHandler) Create(c *gin.Context) {
	var d models.Dish
	if err := c.ShouldBindJSON(&d); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	out, err := h.svc.CreateDish(c.Request.Context(), &d)
	if err != nil {
		respondCatalogErr(c, err, "dish")
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *DishesHandler) Update(c *gin.Context) {
	var upd catalog.DishUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	out, err := h.svc.UpdateDish(c.Request.Context(), c.Param("id"), upd)
	if err != nil {
		respondCatalogErr(c, err, "dish")
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *DishesHandler) Delete(c *gin.Context) {
	out, err := h.svc.Dishes.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondCatalogErr(c, err, "dish")
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *DishesHandler) DeleteAll(c *gin.Context) {
	n, err := h.svc.Dishes.DeleteAll(c.Request.Context())
	if err != nil {
		logger.Errorf("dish purge failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": n})
}

func (h *DishesHandler) ListComments(c *gin.Context) {
	d, err := h.svc.Dishes.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondCatalogErr(c, err, "dish")
		return
	}
	c.JSON(http.StatusOK, d.Comments)
}

func (h *DishesHandler) GetComment(c *gin.Context) {
	d, err := h.svc.Dishes.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondCatalogErr(c, err, "dish")
		return
	}
	for _, cm := range d.Comments {
		if cm.ID == c.Param("commentId") {
			c.JSON(http.StatusOK, cm)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "comment not found"})
}

func (h *DishesHandler) AddComment(c *gin.Context) {
	u := middleware.CurrentUser(c)
	var req DishCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	out, err := h.svc.AddDishComment(c.Request.Context(), c.Param("id"), &models.DishComment{
		Rating:  req.Rating,
		Comment: req.Comment,
		Author:  u.ID,
	})
	if err != nil {
		respondCatalogErr(c, err, "dish")
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *DishesHandler) UpdateComment(c *gin.Context) {
	u := middleware.CurrentUser(c)
	dishID, commentID := c.Param("id"), c.Param("commentId")
	if ok := h.commentOwnedBy(c, dishID, commentID, u.ID); !ok {
		return
	}
	var req struct {
		Rating  *int    `json:"rating"`
		Comment *string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	out, err := h.svc.UpdateDishComment(c.Request.Context(), dishID, commentID, req.Rating, req.Comment)
	if err != nil {
		respondCatalogErr(c, err, "comment")
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *DishesHandler) DeleteComment(c *gin.Context) {
	u := middleware.CurrentUser(c)
	dishID, commentID := c.Param("id"), c.Param("commentId")
	if ok := h.commentOwnedBy(c, dishID, commentID, u.ID); !ok {
		return
	}
	out, err := h.svc.Dishes.DeleteComment(c.Request.Context(), dishID, commentID)
	if err != nil {
		respondCatalogErr(c, err, "comment")
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *DishesHandler) DeleteAllComments(c *gin.Context) {
	out, err := h.svc.Dishes.DeleteAllComments(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondCatalogErr(c, err, "dish")
		return
	}
	c.JSON(http.StatusOK, out)
}

// commentOwnedBy checks the caller authored the comment, writing the error
// response itself when not. Returns true when the mutation may proceed.
func (h *DishesHandler) commentOwnedBy(c *gin.Context, dishID, commentID, userID string) bool {
	d, err := h.svc.Dishes.Get(c.Request.Context(), dishID)
	if err != nil {
		respondCatalogErr(c, err, "dish")
		return false
	}
	for _, cm := range d.Comments {
		if cm.ID == commentID {
			if cm.Author != userID {
				c.JSON(http.StatusForbidden, gin.H{"error": "you are not the author of this comment"})
				return false
			}
			return true
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "comment not found"})
	return false
}

// listFilterFromQuery maps ?featured=true and ?category=mains onto a filter.
func listFilterFromQuery(c *gin.Context) catalog.ListFilter {
	var f catalog.ListFilter
	switch c.Query("featured") {
	case "true":
		t := true
		f.Featured = &t
	case "false":
		ff := false
		f.Featured = &ff
	}
	f.Category = c.Query("category")
	return f
}

// respondCatalogErr maps the catalog error kinds onto status codes.
func respondCatalogErr(c *gin.Context, err error, resource string) {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": resource + " not found"})
	case errors.Is(err, catalog.ErrCommentNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "comment not found"})
	case errors.Is(err, catalog.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed"})
	default:
		logger.Errorf("%s operation failed: %v", resource, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "operation failed"})
	}
}
