package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginStoresTokens(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/token/", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ana@example.com", body["email"])

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access":  "access-token",
			"refresh": "refresh-token",
			"user":    map[string]any{"email": "ana@example.com"},
		})
	}))
	defer server.Close()

	tokens := NewMemoryTokenStore()
	apiClient := New(server.URL, tokens)

	profile, err := apiClient.Login(context.Background(), "ana@example.com", "password1")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", profile.Email)
	assert.Equal(t, "access-token", tokens.Access())
	assert.Equal(t, "refresh-token", tokens.Refresh())
}

func TestBearerAttachedWhenPresent(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[],"total":0,"page":1,"pageSize":25}`))
	}))
	defer server.Close()

	tokens := NewMemoryTokenStore()
	tokens.Set("my-access", "my-refresh")
	apiClient := New(server.URL, tokens)

	_, err := apiClient.ListBuildings(context.Background(), ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Bearer my-access", gotAuth)
}

func TestNoBearerWhenStoreEmpty(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	apiClient := New(server.URL, nil)
	require.NoError(t, apiClient.Health(context.Background()))
	assert.Empty(t, gotAuth)
}

func TestUnauthorizedClearsTokens(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"Invalid token"}`))
	}))
	defer server.Close()

	tokens := NewMemoryTokenStore()
	tokens.Set("stale-access", "stale-refresh")
	apiClient := New(server.URL, tokens)

	_, err := apiClient.ListUsers(context.Background(), ListOptions{})
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)

	// The 401 is terminal: both tokens are gone, no retry happened.
	assert.Empty(t, tokens.Access())
	assert.Empty(t, tokens.Refresh())
}

func TestValidationErrorsDecoded(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"errors":{"name":"Debe tener al menos 3 caracteres"}}`))
	}))
	defer server.Close()

	apiClient := New(server.URL, nil)
	_, err := apiClient.CreateBuilding(context.Background(), createBuildingFixture())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "Debe tener al menos 3 caracteres", apiErr.Fields["name"])
}

func TestMailUnavailableCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"code":"mail_service_unavailable"}`))
	}))
	defer server.Close()

	apiClient := New(server.URL, nil)
	_, err := apiClient.CreateUser(context.Background(), createUserFixture())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsMailUnavailable())
}

func TestListOptionsQuery(t *testing.T) {
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[],"total":0,"page":2,"pageSize":10}`))
	}))
	defer server.Close()

	apiClient := New(server.URL, nil)
	_, err := apiClient.ListUsers(context.Background(), ListOptions{
		Search:   "garcía",
		Page:     2,
		PageSize: 10,
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"garcía"}, gotQuery["search"])
	assert.Equal(t, []string{"2"}, gotQuery["page"])
	assert.Equal(t, []string{"10"}, gotQuery["page_size"])
}
