// Package githubapi is a thin wrapper around the GitHub REST API, covering
// the handful of read-only calls the original scripts made.
package githubapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"
)

const defaultBaseURL = "https://api.github.com"

// Repo is the subset of repository fields the wrapper exposes.
type Repo struct {
	FullName    string `json:"full_name"`
	Description string `json:"description"`
	Stars       int    `json:"stargazers_count"`
	Forks       int    `json:"forks_count"`
	Language    string `json:"language"`
	HTMLURL     string `json:"html_url"`
}

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API root, used by tests.
func WithBaseURL(base string) Option {
	return func(c *Client) { c.baseURL = base }
}

// WithToken sends the token as a bearer credential on every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetRepo fetches one repository by its "owner/name" full name.
func (c *Client) GetRepo(ctx context.Context, fullName string) (*Repo, error) {
	var repo Repo
	if err := c.get(ctx, "/repos/"+fullName, &repo); err != nil {
		return nil, err
	}
	return &repo, nil
}

// ListRepos fetches a user's public repositories.
func (c *Client) ListRepos(ctx context.Context, user string) ([]Repo, error) {
	var repos []Repo
	if err := c.get(ctx, "/users/"+user+"/repos", &repos); err != nil {
		return nil, err
	}
	return repos, nil
}

// GetRepos fetches several repositories concurrently. The first failure
// cancels the remaining requests.
func (c *Client) GetRepos(ctx context.Context, fullNames []string) ([]*Repo, error) {
	g, ctx := errgroup.WithContext(ctx)
	repos := make([]*Repo, len(fullNames))

	for i, fullName := range fullNames {
		i, fullName := i, fullName
		g.Go(func() error {
			repo, err := c.GetRepo(ctx, fullName)
			if err != nil {
				return fmt.Errorf("%s: %w", fullName, err)
			}
			repos[i] = repo
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return repos, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("github returned status %d for %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
