package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablefare/restaurant-backend/internal/auth"
	"github.com/tablefare/restaurant-backend/internal/config"
	"github.com/tablefare/restaurant-backend/internal/facebook"
	"github.com/tablefare/restaurant-backend/internal/sessions"
	"github.com/tablefare/restaurant-backend/internal/users"
	"github.com/tablefare/restaurant-backend/pkg/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// memSessionsRepo keeps sessions in a map; good enough for handler tests.
type memSessionsRepo struct {
	store map[string]*sessions.Session
}

func (m *memSessionsRepo) Create(ctx context.Context, s *sessions.Session) error {
	if m.store == nil {
		m.store = map[string]*sessions.Session{}
	}
	m.store[s.SessionID] = s
	return nil
}

func (m *memSessionsRepo) Get(ctx context.Context, sessionID string) (*sessions.Session, error) {
	s, ok := m.store[sessionID]
	if !ok {
		return nil, nil
	}
	return s, nil
}

func (m *memSessionsRepo) Delete(ctx context.Context, sessionID string) error {
	delete(m.store, sessionID)
	return nil
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "handler-test-secret-32-bytes-xxxx"
	cfg.JWT.TTL = time.Hour
	cfg.Session.TTL = time.Hour
	return cfg
}

func newUsersRouter(t *testing.T, fbBase string) (*gin.Engine, *users.Service, *auth.TokenIssuer, *memSessionsRepo) {
	t.Helper()
	cfg := testConfig()
	uSvc := users.NewService(users.NewMemoryRepository())
	srepo := &memSessionsRepo{}
	sSvc := sessions.NewService(srepo)
	issuer := auth.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.TTL)
	fb := facebook.NewClient(fbBase)

	verifyUser := middleware.VerifyUser(issuer, uSvc)
	h := NewUsersHandler(cfg, uSvc, sSvc, issuer, fb, verifyUser, middleware.VerifyAdmin())

	r := gin.New()
	h.Register(r.Group("/"))
	return r, uSvc, issuer, srepo
}

func TestSignupThenLogin(t *testing.T) {
	r, _, _, _ := newUsersRouter(t, "")

	body := `{"username":"alice","password":"p@ss1","firstname":"Alice","lastname":"A"}`
	req := httptest.NewRequest("POST", "/users/signup", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	// same username again is a conflict
	req = httptest.NewRequest("POST", "/users/signup", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusConflict, w.Code)

	req = httptest.NewRequest("POST", "/users/login", strings.NewReader(`{"username":"alice","password":"p@ss1"}`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var got map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	assert.NotEmpty(t, got["token"])
	assert.NotEmpty(t, got["session"])
}

func TestLoginWrongPassword(t *testing.T) {
	r, uSvc, _, _ := newUsersRouter(t, "")
	_, err := uSvc.Register(context.Background(), "alice", "p@ss1", "", "")
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/users/login", strings.NewReader(`{"username":"alice","password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCheckTokenValidAndInvalid(t *testing.T) {
	r, uSvc, issuer, _ := newUsersRouter(t, "")
	u, err := uSvc.Register(context.Background(), "alice", "p@ss1", "", "")
	require.NoError(t, err)
	tok, err := issuer.Issue(u)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/users/checkJWTToken", nil)
	req.Header.Set("x-access-token", tok)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest("GET", "/users/checkJWTToken", nil)
	req.Header.Set("x-access-token", "not-a-token")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// no token at all
	req = httptest.NewRequest("GET", "/users/checkJWTToken", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestLogoutDestroysSessionAndBlacklistsToken(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()
	sessions.SetBlacklistClient(redis.NewClient(&redis.Options{Addr: m.Addr()}))
	defer sessions.SetBlacklistClient(nil)

	r, uSvc, issuer, srepo := newUsersRouter(t, "")
	u, err := uSvc.Register(context.Background(), "alice", "p@ss1", "", "")
	require.NoError(t, err)
	tok, err := issuer.Issue(u)
	require.NoError(t, err)

	sSvc := sessions.NewService(srepo)
	sid, err := sSvc.Create(context.Background(), u.ID, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/users/logout?session="+sid, nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	got, err := sSvc.Validate(context.Background(), sid)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, true, m.Exists("blacklist:access:"+tok))
}

func TestFacebookTokenProvisionsOnce(t *testing.T) {
	graph := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("access_token") != "fb-token" {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"error":{"message":"Invalid OAuth access token"}}`)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"fb-123","name":"Bob Builder","first_name":"Bob","last_name":"Builder"}`)
	}))
	defer graph.Close()

	r, uSvc, _, _ := newUsersRouter(t, graph.URL)

	exchange := func() map[string]interface{} {
		req := httptest.NewRequest("GET", "/users/facebook/token", nil)
		req.Header.Set("x-access-token", "fb-token")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		var got map[string]interface{}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
		return got
	}

	first := exchange()
	assert.NotEmpty(t, first["token"])

	u, err := uSvc.GetByFacebookID(context.Background(), "fb-123")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "Bob Builder", u.Username)
	assert.False(t, u.Admin)

	// second exchange reuses the provisioned account
	second := exchange()
	assert.NotEmpty(t, second["token"])
	us, err := uSvc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, us, 1)
}

func TestFacebookTokenRejected(t *testing.T) {
	graph := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer graph.Close()

	r, _, _, _ := newUsersRouter(t, graph.URL)

	req := httptest.NewRequest("GET", "/users/facebook/token", nil)
	req.Header.Set("x-access-token", "bad")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListUsersIsAdminOnly(t *testing.T) {
	r, uSvc, issuer, _ := newUsersRouter(t, "")
	u, err := uSvc.Register(context.Background(), "alice", "p@ss1", "", "")
	require.NoError(t, err)
	tok, err := issuer.Issue(u)
	require.NoError(t, err)

	// regular user is rejected
	req := httptest.NewRequest("GET", "/users", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// no token at all
	req = httptest.NewRequest("GET", "/users", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
