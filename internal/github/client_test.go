package github

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reposJSON = `[
  {"id": 7, "name": "Flash_Crawler", "full_name": "SKaif009/Flash_Crawler",
   "description": "BFS web crawler", "html_url": "https://github.com/SKaif009/Flash_Crawler",
   "stargazers_count": 15, "forks_count": 8, "language": "Python",
   "topics": ["crawler"], "updated_at": "2024-12-20T15:30:00Z"},
  {"id": 8, "name": "dotfiles", "description": null, "stargazers_count": 1}
]`

func TestListRepos(t *testing.T) {
	var gotPath, gotQuery, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(reposJSON))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "SKaif009", "", 5*time.Second)
	repos, err := c.ListRepos(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/users/SKaif009/repos", gotPath)
	assert.Equal(t, "sort=updated&per_page=100", gotQuery)
	assert.Empty(t, gotAuth)

	require.Len(t, repos, 2)
	assert.Equal(t, "Flash_Crawler", repos[0].Name)
	assert.Equal(t, 15, repos[0].StargazersCount)
	assert.Equal(t, []string{"crawler"}, repos[0].Topics)
	assert.Equal(t, 2024, repos[0].UpdatedAt.Year())
	assert.NotNil(t, repos[1].Topics)
	assert.Empty(t, repos[1].Description)
}

func TestListReposSendsToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "SKaif009", "s3cret", 5*time.Second)
	repos, err := c.ListRepos(context.Background())
	require.NoError(t, err)
	assert.Empty(t, repos)
	assert.Equal(t, "Bearer s3cret", gotAuth)
}

func TestListReposErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "rate limited", status: http.StatusForbidden, body: `{"message":"API rate limit exceeded"}`, wantErr: ErrUnexpectedStatus},
		{name: "unknown user", status: http.StatusNotFound, body: `{"message":"Not Found"}`, wantErr: ErrUnexpectedStatus},
		{name: "bad json", status: http.StatusOK, body: `{"oops"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL, "x", "", time.Second).ListRepos(context.Background())
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr))
			}
		})
	}
}
