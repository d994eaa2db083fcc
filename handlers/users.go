package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tablefare/restaurant-backend/internal/auth"
	"github.com/tablefare/restaurant-backend/internal/config"
	"github.com/tablefare/restaurant-backend/internal/facebook"
	"github.com/tablefare/restaurant-backend/internal/sessions"
	"github.com/tablefare/restaurant-backend/internal/users"
	"github.com/tablefare/restaurant-backend/pkg/logger"
	"github.com/tablefare/restaurant-backend/pkg/metrics"
	"github.com/tablefare/restaurant-backend/pkg/middleware"
)

// SignupRequest carries the local registration fields.
type SignupRequest struct {
	Username  string `json:"username" binding:"required"`
	Password  string `json:"password" binding:"required"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
}

// LoginRequest carries username/password credentials.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UsersHandler holds dependencies for the /users routes.
type UsersHandler struct {
	cfg         *config.Config
	usersSvc    *users.Service
	sessionsSvc *sessions.Service
	issuer      *auth.TokenIssuer
	fb          *facebook.Client
	verifyUser  gin.HandlerFunc
	verifyAdmin gin.HandlerFunc
}

func NewUsersHandler(cfg *config.Config, u *users.Service, s *sessions.Service, ti *auth.TokenIssuer, fb *facebook.Client, verifyUser, verifyAdmin gin.HandlerFunc) *UsersHandler {
	return &UsersHandler{cfg: cfg, usersSvc: u, sessionsSvc: s, issuer: ti, fb: fb, verifyUser: verifyUser, verifyAdmin: verifyAdmin}
}

// Register routes under /users
func (h *UsersHandler) Register(rg *gin.RouterGroup) {
	g := rg.Group("/users")
	g.GET("", h.verifyUser, h.verifyAdmin, h.List)
	g.POST("/signup", h.Signup)
	g.POST("/login", h.Login)
	g.GET("/logout", h.Logout)
	g.GET("/facebook/token", h.FacebookToken)
	g.GET("/checkJWTToken", h.CheckToken)
}

// Signup registers a local account. Admin accounts are never created here.
func (h *UsersHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, err := h.usersSvc.Register(c.Request.Context(), req.Username, req.Password, req.Firstname, req.Lastname)
	if err != nil {
		if errors.Is(err, auth.ErrDuplicateUsername) {
			c.JSON(http.StatusConflict, gin.H{"error": "username already exists"})
			return
		}
		logger.Errorf("signup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "registration failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "status": "Registration Successful!", "user": u})
}

// Login verifies credentials and hands back an access token plus a session id.
func (h *UsersHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	u, err := h.usersSvc.Verify(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			metrics.AuthAttempts.WithLabelValues("local", "failure").Inc()
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "status": "Login Unsuccessful!"})
			return
		}
		logger.Errorf("login failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}
	sid, err := h.sessionsSvc.Create(c.Request.Context(), u.ID, h.cfg.Session.TTL)
	if err != nil {
		logger.Errorf("failed to create session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}
	token, err := h.issuer.Issue(u)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create access token"})
		return
	}
	metrics.AuthAttempts.WithLabelValues("local", "success").Inc()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"status":  "You are successfully logged in!",
		"token":   token,
		"session": sid,
	})
}

// Logout destroys the session named in the request and blacklists the access
// token for its remaining lifetime.
func (h *UsersHandler) Logout(c *gin.Context) {
	sid := c.Query("session")
	if sid != "" {
		if err := h.sessionsSvc.Destroy(c.Request.Context(), sid); err != nil {
			logger.Errorf("failed to destroy session: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove session"})
			return
		}
	}
	if raw := middleware.RequestToken(c); raw != "" {
		if ttl := h.issuer.RemainingLife(raw); ttl > 0 {
			if err := sessions.BlacklistAccessToken(c.Request.Context(), raw, ttl); err != nil {
				logger.Warnf("failed to blacklist access token: %v", err)
			}
		}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "status": "You are successfully logged out!"})
}

// FacebookToken exchanges a Graph API access token for a local access token,
// provisioning the account on first sight of the external id.
func (h *UsersHandler) FacebookToken(c *gin.Context) {
	raw := middleware.RequestToken(c)
	if raw == "" {
		c.JSON(http.StatusForbidden, gin.H{"error": "no access token supplied"})
		return
	}
	prof, err := h.fb.Profile(c.Request.Context(), raw)
	if err != nil {
		metrics.AuthAttempts.WithLabelValues("facebook", "failure").Inc()
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "status": "Facebook login failed", "err": err.Error()})
		return
	}
	u, err := h.usersSvc.GetByFacebookID(c.Request.Context(), prof.ID)
	if err != nil {
		logger.Errorf("facebook lookup failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}
	if u == nil {
		u, err = h.usersSvc.ProvisionFacebook(c.Request.Context(), prof.ID, prof.Name, prof.FirstName, prof.LastName)
		if err != nil {
			logger.Errorf("facebook provisioning failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
			return
		}
	}
	sid, err := h.sessionsSvc.Create(c.Request.Context(), u.ID, h.cfg.Session.TTL)
	if err != nil {
		logger.Errorf("failed to create session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}
	token, err := h.issuer.Issue(u)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create access token"})
		return
	}
	metrics.AuthAttempts.WithLabelValues("facebook", "success").Inc()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"status":  "You are successfully logged in!",
		"token":   token,
		"session": sid,
	})
}

// CheckToken reports whether the presented access token is still valid.
func (h *UsersHandler) CheckToken(c *gin.Context) {
	raw := middleware.RequestToken(c)
	if raw == "" {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "status": "No JWT token supplied!"})
		return
	}
	sub, err := h.issuer.Verify(raw)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "status": "JWT invalid!", "err": err.Error()})
		return
	}
	u, err := h.usersSvc.GetByID(c.Request.Context(), sub)
	if err != nil {
		if errors.Is(err, auth.ErrUnknownSubject) {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "status": "JWT invalid!"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not verify credentials"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "status": "JWT valid!", "user": u})
}

// List returns all registered users. Admin only.
func (h *UsersHandler) List(c *gin.Context) {
	us, err := h.usersSvc.List(c.Request.Context())
	if err != nil {
		logger.Errorf("user listing failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "listing failed"})
		return
	}
	c.JSON(http.StatusOK, us)
}
