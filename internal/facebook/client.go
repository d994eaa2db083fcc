package facebook

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Profile is the subset of the Graph API profile the exchange needs. ID is
// the stable external-identity id used to link accounts.
type Profile struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Client fetches user profiles from the Facebook Graph API. The provider
// itself validates the access token; a rejected token comes back as a
// non-200 response here.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a Graph API client. baseURL is normally
// https://graph.facebook.com; tests point it at a local fake.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Profile exchanges an access token for the profile it belongs to.
func (c *Client) Profile(ctx context.Context, accessToken string) (*Profile, error) {
	if accessToken == "" {
		return nil, fmt.Errorf("access token required")
	}
	q := url.Values{}
	q.Set("fields", "id,name,first_name,last_name")
	q.Set("access_token", accessToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/me?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("graph api request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("graph api returned %d: %s", resp.StatusCode, string(b))
	}
	var p Profile
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("graph api decode: %w", err)
	}
	if p.ID == "" {
		return nil, fmt.Errorf("graph api profile missing id")
	}
	return &p, nil
}
