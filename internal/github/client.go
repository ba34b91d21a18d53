// Package github reads pull request metadata for one owner/repository.
package github

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"trackersync/internal/domain"
	"trackersync/internal/restclient"
)

const DefaultBaseURL = "https://api.github.com"

type Client struct {
	rest  *restclient.Client
	owner string
	repo  string
}

type pullRequestDTO struct {
	Number  int    `json:"number"`
	Title   string `json:"title"`
	Body    string `json:"body"`
	State   string `json:"state"`
	HTMLURL string `json:"html_url"`
	Merged  bool   `json:"merged"`
	// The list endpoint omits "merged"; merged_at is set either way.
	MergedAt *time.Time `json:"merged_at"`
}

func (p pullRequestDTO) toDomain() domain.PullRequest {
	return domain.PullRequest{
		Number: p.Number,
		Title:  p.Title,
		Body:   p.Body,
		State:  p.State,
		URL:    p.HTMLURL,
		Merged: p.Merged || p.MergedAt != nil,
	}
}

// New builds a client for owner/repo. The owner doubles as the User-Agent
// identity; token is optional and sent as a bearer credential.
func New(baseURL, owner, repo, token string, timeout time.Duration, opts ...restclient.Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	opts = append([]restclient.Option{
		restclient.WithTimeout(timeout),
		restclient.WithHeader("Accept", "application/vnd.github+json"),
		restclient.WithHeader("User-Agent", owner),
		restclient.WithAuth(restclient.BearerAuth{Token: token}),
	}, opts...)

	return &Client{
		rest:  restclient.New("github", baseURL, opts...),
		owner: owner,
		repo:  repo,
	}
}

func (c *Client) pullsPath() string {
	return "repos/" + url.PathEscape(c.owner) + "/" + url.PathEscape(c.repo) + "/pulls"
}

func (c *Client) GetPullRequest(ctx context.Context, number int) (domain.PullRequest, error) {
	var dto pullRequestDTO
	if err := c.rest.Get(ctx, fmt.Sprintf("%s/%d", c.pullsPath(), number), nil, &dto); err != nil {
		return domain.PullRequest{}, fmt.Errorf("get pull %d: %w", number, err)
	}
	return dto.toDomain(), nil
}

// ListPullRequests returns the repository's open pull requests.
func (c *Client) ListPullRequests(ctx context.Context) ([]domain.PullRequest, error) {
	var dto []pullRequestDTO
	if err := c.rest.Get(ctx, c.pullsPath(), nil, &dto); err != nil {
		return nil, fmt.Errorf("list pulls: %w", err)
	}

	pulls := make([]domain.PullRequest, 0, len(dto))
	for _, p := range dto {
		pulls = append(pulls, p.toDomain())
	}
	return pulls, nil
}

func (c *Client) Repository() string {
	return c.owner + "/" + c.repo
}
