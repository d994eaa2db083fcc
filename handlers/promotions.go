package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tablefare/restaurant-backend/internal/catalog"
	"github.com/tablefare/restaurant-backend/internal/models"
	"github.com/tablefare/restaurant-backend/pkg/logger"
)

// PromotionsHandler holds dependencies for the /promotions routes.
type PromotionsHandler struct {
	svc         *catalog.Service
	readOnly    bool
	verifyUser  gin.HandlerFunc
	verifyAdmin gin.HandlerFunc
}

func NewPromotionsHandler(svc *catalog.Service, readOnly bool, verifyUser, verifyAdmin gin.HandlerFunc) *PromotionsHandler {
	return &PromotionsHandler{svc: svc, readOnly: readOnly, verifyUser: verifyUser, verifyAdmin: verifyAdmin}
}

// Register routes under /promotions
func (h *PromotionsHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/promotions")
	g.GET("", h.List)
	g.POST("", h.verifyUser, h.verifyAdmin, h.writable(h.Create))
	g.PUT("", h.notSupported("PUT"))
	g.DELETE("", h.verifyUser, h.verifyAdmin, h.writable(h.DeleteAll))

	g.GET("/:id", h.Get)
	g.POST("/:id", h.notSupported("POST"))
	g.PUT("/:id", h.verifyUser, h.verifyAdmin, h.writable(h.Update))
	g.DELETE("/:id", h.verifyUser, h.verifyAdmin, h.writable(h.Delete))
}

func (h *PromotionsHandler) notSupported(verb string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusForbidden, gin.H{"error": verb + " operation not supported on " + c.Request.URL.Path})
	}
}

func (h *PromotionsHandler) writable(next gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.readOnly {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "catalog is read-only"})
			return
		}
		next(c)
	}
}

func (h *PromotionsHandler) List(c *gin.Context) {
	ps, err := h.svc.Promos.List(c.Request.Context(), listFilterFromQuery(c))
	if err != nil {
		logger.Errorf("promotion listing failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "listing failed"})
		return
	}
	c.JSON(http.StatusOK, ps)
}

func (h *PromotionsHandler) Get(c *gin.Context) {
	p, err := h.svc.Promos.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondCatalogErr(c, err, "promotion")
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *PromotionsHandler) Create(c *gin.Context) {
	var p models.Promotion
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	out, err := h.svc.CreatePromotion(c.Request.Context(), &p)
	if err != nil {
		respondCatalogErr(c, err, "promotion")
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *PromotionsHandler) Update(c *gin.Context) {
	var upd catalog.PromotionUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	out, err := h.svc.Promos.Update(c.Request.Context(), c.Param("id"), upd)
	if err != nil {
		respondCatalogErr(c, err, "promotion")
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *PromotionsHandler) Delete(c *gin.Context) {
	out, err := h.svc.Promos.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondCatalogErr(c, err, "promotion")
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *PromotionsHandler) DeleteAll(c *gin.Context) {
	n, err := h.svc.Promos.DeleteAll(c.Request.Context())
	if err != nil {
		logger.Errorf("promotion purge failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": n})
}
