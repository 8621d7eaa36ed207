package githubapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*httptest.Server, *atomic.Int64) {
	t.Helper()

	var requests atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/", func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		fullName := r.URL.Path[len("/repos/"):]
		if fullName == "missing/repo" {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(Repo{
			FullName: fullName,
			Stars:    42,
			Language: "Go",
		})
	})
	mux.HandleFunc("/users/octocat/repos", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]Repo{
			{FullName: "octocat/hello"},
			{FullName: "octocat/world"},
		})
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, &requests
}

func TestGetRepo(t *testing.T) {
	server, _ := newTestServer(t)
	client := NewClient(WithBaseURL(server.URL))

	repo, err := client.GetRepo(context.Background(), "octocat/hello")
	require.NoError(t, err)
	assert.Equal(t, "octocat/hello", repo.FullName)
	assert.Equal(t, 42, repo.Stars)
	assert.Equal(t, "Go", repo.Language)
}

func TestGetRepo_NotFound(t *testing.T) {
	server, _ := newTestServer(t)
	client := NewClient(WithBaseURL(server.URL))

	_, err := client.GetRepo(context.Background(), "missing/repo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestGetRepo_SendsToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(Repo{})
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL), WithToken("secret"))
	_, err := client.GetRepo(context.Background(), "o/r")
	require.NoError(t, err)
	assert.Equal(t, "Bearer secret", gotAuth)
}

func TestListRepos(t *testing.T) {
	server, _ := newTestServer(t)
	client := NewClient(WithBaseURL(server.URL))

	repos, err := client.ListRepos(context.Background(), "octocat")
	require.NoError(t, err)
	require.Len(t, repos, 2)
	assert.Equal(t, "octocat/hello", repos[0].FullName)
}

func TestGetRepos_Concurrent(t *testing.T) {
	server, requests := newTestServer(t)
	client := NewClient(WithBaseURL(server.URL))

	names := []string{"a/one", "b/two", "c/three"}
	repos, err := client.GetRepos(context.Background(), names)
	require.NoError(t, err)
	require.Len(t, repos, 3)

	// Results keep input order.
	for i, name := range names {
		assert.Equal(t, name, repos[i].FullName)
	}
	assert.Equal(t, int64(3), requests.Load())
}

func TestGetRepos_FirstErrorWins(t *testing.T) {
	server, _ := newTestServer(t)
	client := NewClient(WithBaseURL(server.URL))

	_, err := client.GetRepos(context.Background(), []string{"a/one", "missing/repo"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing/repo")
}
