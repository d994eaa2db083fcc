package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/tablefare/restaurant-backend/internal/auth"
	"github.com/tablefare/restaurant-backend/internal/models"
)

type fakeResolver struct {
	users map[string]*models.User
	err   error
}

func (f *fakeResolver) GetByID(ctx context.Context, id string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, auth.ErrUnknownSubject
}

func newGateRouter(tv TokenVerifier, ur UserResolver, adminOnly bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	chain := []gin.HandlerFunc{VerifyUser(tv, ur)}
	if adminOnly {
		chain = append(chain, VerifyAdmin())
	}
	chain = append(chain, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": CurrentUser(c).ID})
	})
	r.GET("/guarded", chain...)
	r.POST("/guarded", chain...)
	return r
}

func issuerWithUser(t *testing.T, u *models.User) (*auth.TokenIssuer, string, *fakeResolver) {
	t.Helper()
	ti := auth.NewTokenIssuer("gate-test-secret-32-bytes-xxxxxxxx", time.Hour)
	tok, err := ti.Issue(u)
	require.NoError(t, err)
	return ti, tok, &fakeResolver{users: map[string]*models.User{u.ID: u}}
}

func TestVerifyUser_NoToken_403(t *testing.T) {
	ti, _, res := issuerWithUser(t, &models.User{ID: "u1"})
	r := newGateRouter(ti, res, false)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/guarded", nil))
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestVerifyUser_InvalidToken_401(t *testing.T) {
	ti, _, res := issuerWithUser(t, &models.User{ID: "u1"})
	r := newGateRouter(ti, res, false)

	req := httptest.NewRequest("GET", "/guarded", nil)
	req.Header.Set("Authorization", "Bearer not.a.token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestVerifyUser_ValidToken_AttachesUser(t *testing.T) {
	u := &models.User{ID: "u1", Username: "alice"}
	ti, tok, res := issuerWithUser(t, u)
	r := newGateRouter(ti, res, false)

	req := httptest.NewRequest("GET", "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"user":"u1"`)
}

// Token precedence: all four presentation channels reach the same gate.
func TestVerifyUser_TokenSources(t *testing.T) {
	u := &models.User{ID: "u1"}
	ti, tok, res := issuerWithUser(t, u)
	r := newGateRouter(ti, res, false)

	// query parameter
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/guarded?token="+tok, nil))
	require.Equal(t, http.StatusOK, w.Code)

	// custom header
	req := httptest.NewRequest("GET", "/guarded", nil)
	req.Header.Set("x-access-token", tok)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	// body field
	req = httptest.NewRequest("POST", "/guarded", strings.NewReader(`{"token":"`+tok+`"}`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}

// Body token takes precedence over a bad bearer header.
func TestVerifyUser_BodyBeatsHeader(t *testing.T) {
	u := &models.User{ID: "u1"}
	ti, tok, res := issuerWithUser(t, u)
	r := newGateRouter(ti, res, false)

	req := httptest.NewRequest("POST", "/guarded", strings.NewReader(`{"token":"`+tok+`"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer bogus")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestVerifyUser_UnknownSubject_401(t *testing.T) {
	ti := auth.NewTokenIssuer("gate-test-secret-32-bytes-xxxxxxxx", time.Hour)
	tok, err := ti.Issue(&models.User{ID: "ghost"})
	require.NoError(t, err)
	r := newGateRouter(ti, &fakeResolver{users: map[string]*models.User{}}, false)

	req := httptest.NewRequest("GET", "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

// A store outage must not read as "unauthenticated".
func TestVerifyUser_StoreFailure_500(t *testing.T) {
	u := &models.User{ID: "u1"}
	ti, tok, _ := issuerWithUser(t, u)
	r := newGateRouter(ti, &fakeResolver{err: errors.New("connection reset")}, false)

	req := httptest.NewRequest("GET", "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestVerifyAdmin(t *testing.T) {
	admin := &models.User{ID: "a1", Admin: true}
	plain := &models.User{ID: "p1"}
	ti := auth.NewTokenIssuer("gate-test-secret-32-bytes-xxxxxxxx", time.Hour)
	res := &fakeResolver{users: map[string]*models.User{"a1": admin, "p1": plain}}
	r := newGateRouter(ti, res, true)

	adminTok, err := ti.Issue(admin)
	require.NoError(t, err)
	plainTok, err := ti.Issue(plain)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+adminTok)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest("GET", "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+plainTok)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestVerifyUser_Expired_401(t *testing.T) {
	ti := auth.NewTokenIssuer("gate-test-secret-32-bytes-xxxxxxxx", -time.Second)
	u := &models.User{ID: "u1"}
	tok, err := ti.Issue(u)
	require.NoError(t, err)
	r := newGateRouter(ti, &fakeResolver{users: map[string]*models.User{"u1": u}}, false)

	req := httptest.NewRequest("GET", "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
