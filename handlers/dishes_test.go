package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablefare/restaurant-backend/internal/auth"
	"github.com/tablefare/restaurant-backend/internal/catalog"
	"github.com/tablefare/restaurant-backend/internal/models"
	"github.com/tablefare/restaurant-backend/internal/users"
	"github.com/tablefare/restaurant-backend/pkg/middleware"
)

type dishesFixture struct {
	router   *gin.Engine
	svc      *catalog.Service
	userRepo *users.MemoryRepository
	issuer   *auth.TokenIssuer
}

func newDishesFixture(t *testing.T) *dishesFixture {
	t.Helper()
	repo := users.NewMemoryRepository()
	uSvc := users.NewService(repo)
	issuer := auth.NewTokenIssuer("dishes-test-secret-32-bytes-xxxx", time.Hour)
	svc := catalog.NewService(
		catalog.NewMemoryDishRepository(),
		catalog.NewMemoryLeaderRepository(),
		catalog.NewMemoryPromotionRepository(),
	)
	h := NewDishesHandler(svc, false, middleware.VerifyUser(issuer, uSvc), middleware.VerifyAdmin())
	r := gin.New()
	h.Register(r.Group("/"))
	return &dishesFixture{router: r, svc: svc, userRepo: repo, issuer: issuer}
}

func (f *dishesFixture) tokenFor(t *testing.T, username string, admin bool) string {
	t.Helper()
	u, err := f.userRepo.Insert(context.Background(), &models.User{Username: username, Admin: admin})
	require.NoError(t, err)
	tok, err := f.issuer.Issue(u)
	require.NoError(t, err)
	return tok
}

func (f *dishesFixture) do(method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

const dishBody = `{"name":"Uthappizza","description":"A unique combination","image":"images/uthappizza.png","category":"mains","price":4.99}`

func TestDishListIsPublic(t *testing.T) {
	f := newDishesFixture(t)
	w := f.do("GET", "/dishes", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDishCreateIsAdminGated(t *testing.T) {
	f := newDishesFixture(t)

	// no token
	w := f.do("POST", "/dishes", "", dishBody)
	require.Equal(t, http.StatusForbidden, w.Code)

	// plain user
	userTok := f.tokenFor(t, "alice", false)
	w = f.do("POST", "/dishes", userTok, dishBody)
	require.Equal(t, http.StatusForbidden, w.Code)

	// admin
	adminTok := f.tokenFor(t, "root", true)
	w = f.do("POST", "/dishes", adminTok, dishBody)
	require.Equal(t, http.StatusOK, w.Code)

	var d models.Dish
	require.NoError(t, json.NewDecoder(w.Body).Decode(&d))
	assert.NotEmpty(t, d.ID)
	assert.Equal(t, "Uthappizza", d.Name)
}

func TestDishUnsupportedVerbs(t *testing.T) {
	f := newDishesFixture(t)

	w := f.do("PUT", "/dishes", "", `{}`)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = f.do("POST", "/dishes/someid", "", `{}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDishCreateValidation(t *testing.T) {
	f := newDishesFixture(t)
	adminTok := f.tokenFor(t, "root", true)

	bad := `{"name":"X","description":"d","image":"i","category":"snacks","price":1}`
	w := f.do("POST", "/dishes", adminTok, bad)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	neg := `{"name":"X","description":"d","image":"i","category":"mains","price":-1}`
	w = f.do("POST", "/dishes", adminTok, neg)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDishCommentLifecycle(t *testing.T) {
	f := newDishesFixture(t)
	adminTok := f.tokenFor(t, "root", true)
	aliceTok := f.tokenFor(t, "alice", false)
	bobTok := f.tokenFor(t, "bob", false)

	w := f.do("POST", "/dishes", adminTok, dishBody)
	require.Equal(t, http.StatusOK, w.Code)
	var d models.Dish
	require.NoError(t, json.NewDecoder(w.Body).Decode(&d))

	// anonymous comment is rejected before any store access
	w = f.do("POST", "/dishes/"+d.ID+"/comments", "", `{"rating":5,"comment":"great"}`)
	require.Equal(t, http.StatusForbidden, w.Code)

	// alice comments
	w = f.do("POST", "/dishes/"+d.ID+"/comments", aliceTok, `{"rating":5,"comment":"great"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&d))
	require.Len(t, d.Comments, 1)
	commentID := d.Comments[0].ID

	// bob may not edit alice's comment
	w = f.do("PUT", "/dishes/"+d.ID+"/comments/"+commentID, bobTok, `{"rating":1}`)
	require.Equal(t, http.StatusForbidden, w.Code)

	// alice may
	w = f.do("PUT", "/dishes/"+d.ID+"/comments/"+commentID, aliceTok, `{"rating":4,"comment":"still great"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&d))
	require.Len(t, d.Comments, 1)
	assert.Equal(t, 4, d.Comments[0].Rating)
	assert.Equal(t, "still great", d.Comments[0].Comment)

	// bob may not delete it either
	w = f.do("DELETE", "/dishes/"+d.ID+"/comments/"+commentID, bobTok, "")
	require.Equal(t, http.StatusForbidden, w.Code)

	w = f.do("DELETE", "/dishes/"+d.ID+"/comments/"+commentID, aliceTok, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&d))
	assert.Len(t, d.Comments, 0)
}

func TestDishCommentRatingValidation(t *testing.T) {
	f := newDishesFixture(t)
	adminTok := f.tokenFor(t, "root", true)
	aliceTok := f.tokenFor(t, "alice", false)

	w := f.do("POST", "/dishes", adminTok, dishBody)
	require.Equal(t, http.StatusOK, w.Code)
	var d models.Dish
	require.NoError(t, json.NewDecoder(w.Body).Decode(&d))

	w = f.do("POST", "/dishes/"+d.ID+"/comments", aliceTok, `{"rating":6,"comment":"too good"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDishFeaturedFilter(t *testing.T) {
	f := newDishesFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateDish(ctx, &models.Dish{Name: "A", Description: "d", Image: "i", Category: "mains", Featured: true})
	require.NoError(t, err)
	_, err = f.svc.CreateDish(ctx, &models.Dish{Name: "B", Description: "d", Image: "i", Category: "dessert"})
	require.NoError(t, err)

	w := f.do("GET", "/dishes?featured=true", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	var ds []models.Dish
	require.NoError(t, json.NewDecoder(w.Body).Decode(&ds))
	require.Len(t, ds, 1)
	assert.Equal(t, "A", ds[0].Name)
}

func TestDishReadOnlyMode(t *testing.T) {
	repo := users.NewMemoryRepository()
	uSvc := users.NewService(repo)
	issuer := auth.NewTokenIssuer("dishes-test-secret-32-bytes-xxxx", time.Hour)
	dishes := catalog.NewMemoryDishRepository()
	leaders := catalog.NewMemoryLeaderRepository()
	promos := catalog.NewMemoryPromotionRepository()
	catalog.SeedMemory(dishes, leaders, promos)
	svc := catalog.NewService(dishes, leaders, promos)

	h := NewDishesHandler(svc, true, middleware.VerifyUser(issuer, uSvc), middleware.VerifyAdmin())
	r := gin.New()
	h.Register(r.Group("/"))

	// seeded content still served
	req := httptest.NewRequest("GET", "/dishes", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	var ds []models.Dish
	require.NoError(t, json.NewDecoder(w.Body).Decode(&ds))
	assert.NotEmpty(t, ds)

	// writes refused even for an admin
	u, err := repo.Insert(context.Background(), &models.User{Username: "root", Admin: true})
	require.NoError(t, err)
	tok, err := issuer.Issue(u)
	require.NoError(t, err)

	req = httptest.NewRequest("POST", "/dishes", strings.NewReader(dishBody))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+tok)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
