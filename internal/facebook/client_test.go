package facebook

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProfile_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/me", r.URL.Path)
		require.Equal(t, "valid-token", r.URL.Query().Get("access_token"))
		require.Equal(t, "id,name,first_name,last_name", r.URL.Query().Get("fields"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"fb-123","name":"Bob Jones","first_name":"Bob","last_name":"Jones"}`))
	}))
	defer srv.Close()

	p, err := NewClient(srv.URL).Profile(context.Background(), "valid-token")
	require.NoError(t, err)
	require.Equal(t, "fb-123", p.ID)
	require.Equal(t, "Bob Jones", p.Name)
	require.Equal(t, "Bob", p.FirstName)
	require.Equal(t, "Jones", p.LastName)
}

func TestProfile_RejectedToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"Invalid OAuth access token"}}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Profile(context.Background(), "bad-token")
	require.Error(t, err)
}

func TestProfile_EmptyToken(t *testing.T) {
	_, err := NewClient("http://unused").Profile(context.Background(), "")
	require.Error(t, err)
}

func TestProfile_MissingID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"name":"No Id"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Profile(context.Background(), "tok")
	require.Error(t, err)
}
