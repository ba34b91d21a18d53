package restclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"trackersync/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_AppliesHeadersAndAuth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.Header.Get("X-Token"))
		assert.Equal(t, "agent", r.Header.Get("User-Agent"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "/base/items", r.URL.Path)
		assert.Equal(t, "a b", r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(`{"name":"ok"}`))
	}))
	t.Cleanup(srv.Close)

	c := New("svc", srv.URL+"/base/",
		WithAuth(HeaderAuth{Header: "X-Token", Value: "secret"}),
		WithHeader("User-Agent", "agent"),
	)

	var out struct {
		Name string `json:"name"`
	}
	require.NoError(t, c.Get(context.Background(), "/items", map[string][]string{"q": {"a b"}}, &out))
	assert.Equal(t, "ok", out.Name)
}

func TestClient_StatusMapping(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{status: http.StatusNotFound, want: domain.ErrNotFound},
		{status: http.StatusUnauthorized, want: domain.ErrUnauthorized},
		{status: http.StatusForbidden, want: domain.ErrUnauthorized},
		{status: http.StatusInternalServerError, want: domain.ErrTransport},
		{status: http.StatusTooManyRequests, want: domain.ErrTransport},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			t.Cleanup(srv.Close)

			err := New("svc", srv.URL).Get(context.Background(), "x", nil, nil)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want))

			var apiErr *domain.APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
		})
	}
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	c := New("svc", srv.URL, WithTimeout(20*time.Millisecond))
	err := c.Get(context.Background(), "slow", nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrTransport))
}

func TestClient_OversizedBodyIsTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"kind":"a"},{"kind":"b"},{"kind":"c"}]`))
	}))
	t.Cleanup(srv.Close)

	_, err := New("svc", srv.URL, WithMaxBody(16)).Do(context.Background(), http.MethodGet, "feed", nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrTransport))
	assert.Contains(t, err.Error(), "exceeds 16 bytes")

	resp, err := New("svc", srv.URL, WithMaxBody(64)).Do(context.Background(), http.MethodGet, "feed", nil, nil)
	require.NoError(t, err)
	assert.Len(t, resp.Body, 40)
}

func TestAuthenticators_SkipEmptyCredentials(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	BearerAuth{}.Apply(req)
	HeaderAuth{Header: "X-Token"}.Apply(req)
	NoAuth{}.Apply(req)

	assert.Empty(t, req.Header.Get("Authorization"))
	assert.Empty(t, req.Header.Get("X-Token"))

	BearerAuth{Token: "t"}.Apply(req)
	assert.Equal(t, "Bearer t", req.Header.Get("Authorization"))
}
