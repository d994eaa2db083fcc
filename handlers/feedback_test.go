package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tablefare/restaurant-backend/internal/feedback"
	"github.com/tablefare/restaurant-backend/internal/models"
)

func newFeedbackRouter() *gin.Engine {
	// the public routes never consult the gates; stub them out
	deny := func(c *gin.Context) { c.AbortWithStatus(http.StatusForbidden) }
	h := NewFeedbackHandler(feedback.NewMemoryRepository(), deny, deny)
	r := gin.New()
	h.Register(r.Group("/"))
	return r
}

func TestFeedbackSubmitIsPublic(t *testing.T) {
	r := newFeedbackRouter()

	body := `{"firstname":"Jane","lastname":"Doe","telnum":"5551234","email":"jane@example.com","agree":true,"contactType":"Email","message":"Great food"}`
	req := httptest.NewRequest("POST", "/feedback", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var f models.Feedback
	require.NoError(t, json.NewDecoder(w.Body).Decode(&f))
	assert.NotEmpty(t, f.ID)
	assert.Equal(t, "jane@example.com", f.Email)
}

func TestFeedbackRejectsBadEmail(t *testing.T) {
	r := newFeedbackRouter()

	body := `{"firstname":"Jane","lastname":"Doe","telnum":"5551234","email":"not-an-email","message":"hi"}`
	req := httptest.NewRequest("POST", "/feedback", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFeedbackListAndGet(t *testing.T) {
	r := newFeedbackRouter()

	body := `{"firstname":"Jane","lastname":"Doe","telnum":"5551234","email":"jane@example.com","message":"hi"}`
	req := httptest.NewRequest("POST", "/feedback", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	var created models.Feedback
	require.NoError(t, json.NewDecoder(w.Body).Decode(&created))

	req = httptest.NewRequest("GET", "/feedback", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	var fs []models.Feedback
	require.NoError(t, json.NewDecoder(w.Body).Decode(&fs))
	assert.Len(t, fs, 1)

	req = httptest.NewRequest("GET", "/feedback/"+created.ID, nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest("GET", "/feedback/missing", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
