package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tablefare/restaurant-backend/internal/catalog"
	"github.com/tablefare/restaurant-backend/internal/models"
	"github.com/tablefare/restaurant-backend/pkg/logger"
)

// LeadersHandler holds dependencies for the /leaders routes.
type LeadersHandler struct {
	svc         *catalog.Service
	readOnly    bool
	verifyUser  gin.HandlerFunc
	verifyAdmin gin.HandlerFunc
}

func NewLeadersHandler(svc *catalog.Service, readOnly bool, verifyUser, verifyAdmin gin.HandlerFunc) *LeadersHandler {
	return &LeadersHandler{svc: svc, readOnly: readOnly, verifyUser: verifyUser, verifyAdmin: verifyAdmin}
}

// Register routes under /leaders
func (h *LeadersHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/leaders")
	g.GET("", h.List)
	g.POST("", h.verifyUser, h.verifyAdmin, h.writable(h.Create))
	g.PUT("", h.notSupported("PUT"))
	g.DELETE("", h.verifyUser, h.verifyAdmin, h.writable(h.DeleteAll))

	g.GET("/:id", h.Get)
	g.POST("/:id", h.notSupported("POST"))
	g.PUT("/:id", h.verifyUser, h.verifyAdmin, h.writable(h.Update))
	g.DELETE("/:id", h.verifyUser, h.verifyAdmin, h.writable(h.Delete))
}

func (h *LeadersHandler) notSupported(verb string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusForbidden, gin.H{"error": verb + " operation not supported on " + c.Request.URL.Path})
	}
}

func (h *LeadersHandler) writable(next gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if h.readOnly {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "catalog is read-only"})
			return
		}
		next(c)
	}
}

func (h *LeadersHandler) List(c *gin.Context) {
	ls, err := h.svc.Leads.List(c.Request.Context(), listFilterFromQuery(c))
	if err != nil {
		logger.Errorf("leader listing failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "listing failed"})
		return
	}
	c.JSON(http.StatusOK, ls)
}

func (h *LeadersHandler) Get(c *gin.Context) {
	l, err := h.svc.Leads.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondCatalogErr(c, err, "leader")
		return
	}
	c.JSON(http.StatusOK, l)
}

func (h *LeadersHandler) Create(c *gin.Context) {
	var l models.Leader
	if err := c.ShouldBindJSON(&l); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	out, err := h.svc.CreateLeader(c.Request.Context(), &l)
	if err != nil {
		respondCatalogErr(c, err, "leader")
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *LeadersHandler) Update(c *gin.Context) {
	var upd catalog.LeaderUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	out, err := h.svc.Leads.Update(c.Request.Context(), c.Param("id"), upd)
	if err != nil {
		respondCatalogErr(c, err, "leader")
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *LeadersHandler) Delete(c *gin.Context) {
	out, err := h.svc.Leads.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondCatalogErr(c, err, "leader")
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *LeadersHandler) DeleteAll(c *gin.Context) {
	n, err := h.svc.Leads.DeleteAll(c.Request.Context())
	if err != nil {
		logger.Errorf("leader purge failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": n})
}
