// Package client is a Go client for the RentHub API. It attaches the stored
// bearer token to every request and treats a 401 as terminal: the token store
// is cleared and the error returned, with no refresh-and-retry.
package client

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
)

// TokenStore holds the access/refresh pair between calls.
type TokenStore interface {
	Access() string
	Refresh() string
	Set(access, refresh string)
	Clear()
}

// MemoryTokenStore is the default in-process store.
type MemoryTokenStore struct {
	mu      sync.RWMutex
	access  string
	refresh string
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (s *MemoryTokenStore) Access() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.access
}

func (s *MemoryTokenStore) Refresh() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refresh
}

func (s *MemoryTokenStore) Set(access, refresh string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = access
	s.refresh = refresh
}

func (s *MemoryTokenStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = ""
	s.refresh = ""
}

type Client struct {
	http   *resty.Client
	tokens TokenStore
}

func New(baseURL string, tokens TokenStore) *Client {
	if tokens == nil {
		tokens = NewMemoryTokenStore()
	}

	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(30 * time.Second).
		SetHeader("Accept", "application/json")

	httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		if token := tokens.Access(); token != "" {
			req.SetAuthToken(token)
		}
		return nil
	})

	// A 401 clears the stored pair so the caller is forced back through login.
	httpClient.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		if resp.StatusCode() == http.StatusUnauthorized {
			tokens.Clear()
		}
		return nil
	})

	return &Client{
		http:   httpClient,
		tokens: tokens,
	}
}

// Tokens exposes the underlying store, mainly for persisting across runs.
func (c *Client) Tokens() TokenStore {
	return c.tokens
}

func (c *Client) get(ctx context.Context, path string, query map[string]string, out any) error {
	request := c.http.R().SetContext(ctx)
	if len(query) > 0 {
		request.SetQueryParams(query)
	}
	if out != nil {
		request.SetResult(out)
	}

	resp, err := request.Get(path)
	return wrapResponse(resp, err)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	request := c.http.R().SetContext(ctx)
	if body != nil {
		request.SetBody(body)
	}
	if out != nil {
		request.SetResult(out)
	}

	resp, err := request.Post(path)
	return wrapResponse(resp, err)
}

func (c *Client) patch(ctx context.Context, path string, body, out any) error {
	request := c.http.R().SetContext(ctx)
	if body != nil {
		request.SetBody(body)
	}
	if out != nil {
		request.SetResult(out)
	}

	resp, err := request.Patch(path)
	return wrapResponse(resp, err)
}

func (c *Client) delete(ctx context.Context, path string) error {
	resp, err := c.http.R().SetContext(ctx).Delete(path)
	return wrapResponse(resp, err)
}
