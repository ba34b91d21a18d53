// Package tracker is a typed client for the Pivotal Tracker v5 REST API,
// scoped to a single project.
package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"trackersync/internal/domain"
	"trackersync/internal/restclient"
)

const (
	DefaultBaseURL = "https://www.pivotaltracker.com/services/v5"
	tokenHeader    = "X-TrackerToken"
)

type Client struct {
	rest    *restclient.Client
	project string

	mu     sync.Mutex
	people map[int64]domain.Person
}

func New(baseURL, projectID, token string, timeout time.Duration, opts ...restclient.Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	opts = append([]restclient.Option{
		restclient.WithTimeout(timeout),
		restclient.WithAuth(restclient.HeaderAuth{Header: tokenHeader, Value: token}),
	}, opts...)

	return &Client{
		rest:    restclient.New("tracker", baseURL, opts...),
		project: projectID,
	}
}

func (c *Client) path(format string, args ...any) string {
	return "projects/" + url.PathEscape(c.project) + "/" + fmt.Sprintf(format, args...)
}

func (c *Client) GetStory(ctx context.Context, id int64) (domain.Story, error) {
	var dto storyDTO
	if err := c.rest.Get(ctx, c.path("stories/%d", id), nil, &dto); err != nil {
		return domain.Story{}, fmt.Errorf("get story %d: %w", id, err)
	}
	return storyFromDTO(dto), nil
}

// SearchStories runs an advanced-search query as is.
func (c *Client) SearchStories(ctx context.Context, query string) ([]domain.Story, error) {
	var dto searchDTO
	if err := c.rest.Get(ctx, c.path("search"), url.Values{"query": {query}}, &dto); err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	stories := make([]domain.Story, 0, len(dto.Stories.Stories))
	for _, s := range dto.Stories.Stories {
		stories = append(stories, storyFromDTO(s))
	}
	return stories, nil
}

// GetActivity returns the story's activity feed in the order the tracker sent it.
func (c *Client) GetActivity(ctx context.Context, storyID int64) ([]domain.ActivityEntry, error) {
	resp, err := c.rest.Do(ctx, http.MethodGet, c.path("stories/%d/activity", storyID), nil, nil)
	if err != nil {
		return nil, fmt.Errorf("get activity %d: %w", storyID, err)
	}
	if !resp.OK() {
		return nil, fmt.Errorf("get activity %d: %w", storyID, c.rest.StatusError(resp))
	}
	return activityFromJSON(resp.Body), nil
}

func (c *Client) GetPeople(ctx context.Context) ([]domain.Person, error) {
	var dto []membershipDTO
	if err := c.rest.Get(ctx, c.path("memberships"), nil, &dto); err != nil {
		return nil, fmt.Errorf("get memberships: %w", err)
	}

	people := make([]domain.Person, 0, len(dto))
	for _, m := range dto {
		people = append(people, personFromDTO(m.Person))
	}
	return people, nil
}

// GetPerson resolves a person from the cached membership index, building it
// on first use.
func (c *Client) GetPerson(ctx context.Context, id int64) (domain.Person, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.people == nil {
		people, err := c.GetPeople(ctx)
		if err != nil {
			return domain.Person{}, false, err
		}
		c.people = make(map[int64]domain.Person, len(people))
		for _, p := range people {
			c.people[p.ID] = p
		}
	}

	p, ok := c.people[id]
	return p, ok, nil
}

// RefreshPeople drops the person index; the next GetPerson rebuilds it.
func (c *Client) RefreshPeople() {
	c.mu.Lock()
	c.people = nil
	c.mu.Unlock()
}

// SetState requests a state change. The tracker decides whether the edge is
// legal; an error envelope on a 2xx or 4xx answer becomes a TransitionError,
// while 5xx answers stay transport failures.
func (c *Client) SetState(ctx context.Context, storyID int64, state domain.StoryState) (domain.Story, error) {
	resp, err := c.rest.Do(ctx, http.MethodPut, c.path("stories/%d", storyID), nil, stateRequest{CurrentState: string(state)})
	if err != nil {
		return domain.Story{}, fmt.Errorf("set state %d: %w", storyID, err)
	}

	var envelope errorDTO
	if json.Unmarshal(resp.Body, &envelope) == nil && envelope.present() {
		switch {
		case resp.StatusCode >= http.StatusInternalServerError,
			resp.StatusCode == http.StatusNotFound,
			resp.StatusCode == http.StatusUnauthorized,
			resp.StatusCode == http.StatusForbidden:
			return domain.Story{}, fmt.Errorf("set state %d: %w", storyID, c.rest.StatusError(resp))
		}
		return domain.Story{}, &domain.TransitionError{
			StoryID: storyID,
			State:   state,
			Message: envelope.message(),
		}
	}

	var dto storyDTO
	if err := c.rest.Decode(resp, &dto); err != nil {
		return domain.Story{}, fmt.Errorf("set state %d: %w", storyID, err)
	}
	return storyFromDTO(dto), nil
}

func (c *Client) ProjectID() string {
	return c.project
}

// ParseStoryID accepts a story id with or without a leading '#'.
func ParseStoryID(s string) (int64, error) {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid story id %q", s)
	}
	return id, nil
}
