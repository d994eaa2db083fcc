package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The rejection paths never reach the object store, so a nil store is fine.
func newUploadRouter(maxSize int64) *gin.Engine {
	allow := func(c *gin.Context) { c.Next() }
	h := NewUploadHandler(nil, maxSize, allow, allow)
	r := gin.New()
	h.Register(r.Group("/"))
	return r
}

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUploadRejectsUnsupportedExtension(t *testing.T) {
	r := newUploadRouter(1 << 20)
	body, ct := multipartBody(t, "imageFile", "notes.txt", []byte("hello"))

	req := httptest.NewRequest("POST", "/imageUpload", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unsupported image type")
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	r := newUploadRouter(16)
	body, ct := multipartBody(t, "imageFile", "big.png", bytes.Repeat([]byte("x"), 64))

	req := httptest.NewRequest("POST", "/imageUpload", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "byte limit")
}

func TestUploadRequiresImageFileField(t *testing.T) {
	r := newUploadRouter(1 << 20)
	body, ct := multipartBody(t, "wrongField", "pic.png", []byte("data"))

	req := httptest.NewRequest("POST", "/imageUpload", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadUnsupportedVerbs(t *testing.T) {
	r := newUploadRouter(1 << 20)

	req := httptest.NewRequest("GET", "/imageUpload", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "GET operation not supported")
}
