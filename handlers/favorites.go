package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tablefare/restaurant-backend/internal/favorites"
	"github.com/tablefare/restaurant-backend/pkg/logger"
	"github.com/tablefare/restaurant-backend/pkg/middleware"
)

// FavoritesHandler holds dependencies for the /favorites routes. Every route
// is authenticated and operates on the caller's own favorites document.
type FavoritesHandler struct {
	repo       favorites.Repository
	verifyUser gin.HandlerFunc
}

func NewFavoritesHandler(repo favorites.Repository, verifyUser gin.HandlerFunc) *FavoritesHandler {
	return &FavoritesHandler{repo: repo, verifyUser: verifyUser}
}

// Register routes under /favorites
func (h *FavoritesHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/favorites", h.verifyUser)
	g.GET("", h.Get)
	g.POST("", h.AddMany)
	g.PUT("", h.notSupported("PUT"))
	g.DELETE("", h.Clear)

	g.GET("/:dishId", h.Check)
	g.POST("/:dishId", h.AddOne)
	g.PUT("/:dishId", h.notSupported("PUT"))
	g.DELETE("/:dishId", h.Remove)
}

func (h *FavoritesHandler) notSupported(verb string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusForbidden, gin.H{"error": verb + " operation not supported on " + c.Request.URL.Path})
	}
}

func (h *FavoritesHandler) Get(c *gin.Context) {
	u := middleware.CurrentUser(c)
	f, err := h.repo.GetByUser(c.Request.Context(), u.ID)
	if err != nil {
		logger.Errorf("favorites lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	if f == nil {
		c.JSON(http.StatusOK, gin.H{"favorites": nil})
		return
	}
	c.JSON(http.StatusOK, f)
}

// AddMany merges a body list of dish ids into the caller's favorites,
// deduplicating against what is already there.
func (h *FavoritesHandler) AddMany(c *gin.Context) {
	u := middleware.CurrentUser(c)
	var req []struct {
		ID string `json:"_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ids := make([]string, 0, len(req))
	for _, r := range req {
		if r.ID != "" {
			ids = append(ids, r.ID)
		}
	}
	f, err := h.repo.AddDishes(c.Request.Context(), u.ID, ids)
	if err != nil {
		logger.Errorf("favorites update failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, f)
}

// Check reports whether a single dish is in the caller's favorites.
func (h *FavoritesHandler) Check(c *gin.Context) {
	u := middleware.CurrentUser(c)
	f, err := h.repo.GetByUser(c.Request.Context(), u.ID)
	if err != nil {
		logger.Errorf("favorites lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	dishID := c.Param("dishId")
	exists := false
	if f != nil {
		for _, id := range f.Dishes {
			if id == dishID {
				exists = true
				break
			}
		}
	}
	c.JSON(http.StatusOK, gin.H{"exists": exists, "favorites": f})
}

func (h *FavoritesHandler) AddOne(c *gin.Context) {
	u := middleware.CurrentUser(c)
	f, err := h.repo.AddDishes(c.Request.Context(), u.ID, []string{c.Param("dishId")})
	if err != nil {
		logger.Errorf("favorites update failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, f)
}

func (h *FavoritesHandler) Remove(c *gin.Context) {
	u := middleware.CurrentUser(c)
	f, err := h.repo.RemoveDish(c.Request.Context(), u.ID, c.Param("dishId"))
	if err != nil {
		if errors.Is(err, favorites.ErrDishNotFavorited) {
			c.JSON(http.StatusNotFound, gin.H{"error": "dish is not in your favorites"})
			return
		}
		logger.Errorf("favorites update failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, f)
}

func (h *FavoritesHandler) Clear(c *gin.Context) {
	u := middleware.CurrentUser(c)
	if err := h.repo.DeleteByUser(c.Request.Context(), u.ID); err != nil {
		logger.Errorf("favorites delete failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
