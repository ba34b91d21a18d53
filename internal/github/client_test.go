package github

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

func TestClient_GetPullRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "OpenMDAO", r.Header.Get("User-Agent"))
		assert.Equal(t, "application/vnd.github+json", r.Header.Get("Accept"))
		assert.Equal(t, "Bearer ghp_x", r.Header.Get("Authorization"))

		switch r.URL.Path {
		case "/repos/OpenMDAO/OpenMDAO/pulls/5":
			_, _ = w.Write([]byte(`{"number":5,"title":"Fix solver","body":"details","state":"closed","merged":true,"merged_at":"2024-01-02T03:04:05Z","html_url":"https://github.com/OpenMDAO/OpenMDAO/pull/5"}`))
		case "/repos/OpenMDAO/OpenMDAO/pulls/6":
			_, _ = w.Write([]byte(`{"number":6,"title":"WIP","state":"open","merged":false,"merged_at":null}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"Not Found"}`))
		}
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL, "OpenMDAO", "OpenMDAO", "ghp_x", time.Second)
	ctx := context.Background()

	pr, err := c.GetPullRequest(ctx, 5)
	require.NoError(t, err)
	assert.True(t, pr.Merged)
	assert.Equal(t, "Fix solver", pr.Title)
	assert.Equal(t, "details", pr.Body)

	pr, err = c.GetPullRequest(ctx, 6)
	require.NoError(t, err)
	assert.False(t, pr.Merged)

	_, err = c.GetPullRequest(ctx, 7)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Equal(t, "OpenMDAO/OpenMDAO", c.Repository())
}

func TestClient_ListPullRequests(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/octo/repo/pulls", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[
			{"number":1,"title":"a","state":"open","merged_at":null},
			{"number":2,"title":"b","state":"closed","merged_at":"2024-01-02T03:04:05Z"}
		]`))
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL, "octo", "repo", "", time.Second)
	pulls, err := c.ListPullRequests(context.Background())
	require.NoError(t, err)
	require.Len(t, pulls, 2)
	assert.False(t, pulls[0].Merged)
	assert.True(t, pulls[1].Merged)
}

func TestClient_RateLimitedIsTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL, "octo", "repo", "", time.Second)
	_, err := c.GetPullRequest(context.Background(), 1)
	assert.True(t, errors.Is(err, domain.ErrTransport))
}
