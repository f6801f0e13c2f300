package http

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/cornellsun/sunreader"
)

// Ensure PostService implements sunreader.PostService.
var _ sunreader.PostService = (*PostService)(nil)

// PostService fetches post JSON from the CMS API.
type PostService struct {
	client *http.Client
}

// NewPostService creates a new PostService with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewPostService(client *http.Client) *PostService {
	if client == nil {
		client = http.DefaultClient
	}
	return &PostService{client: client}
}

// FetchPost retrieves and decodes the post served at url.
func (s *PostService) FetchPost(ctx context.Context, url string) (*sunreader.Post, error) {
	body, _, err := get(ctx, s.client, url, DefaultUserAgent)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("reading post: %w", err)
	}

	return sunreader.DecodePost(data)
}
