package service

import (
	"context"
	"encoding/json"
	"math"
	"strconv"

	"trackersync/internal/domain"
)

const (
	pullRequestCreateActivity = "pull_request_create_activity"
	pullRequestChange         = "pull_request"
)

type ActivitySource interface {
	GetActivity(ctx context.Context, storyID int64) ([]domain.ActivityEntry, error)
}

// Matcher finds the pull request a story is linked to through its activity feed.
type Matcher struct {
	activity ActivitySource
}

func NewMatcher(activity ActivitySource) *Matcher {
	return &Matcher{activity: activity}
}

// LinkedPullRequest returns the story's pull request number, or nil when the
// feed holds no link. Tracker errors are returned unchanged.
func (m *Matcher) LinkedPullRequest(ctx context.Context, storyID int64) (*int, error) {
	entries, err := m.activity.GetActivity(ctx, storyID)
	if err != nil {
		return nil, err
	}
	return MatchPullRequest(entries), nil
}

// MatchPullRequest scans entries in the given order and returns the number
// from the first pull request creation activity that carries one.
func MatchPullRequest(entries []domain.ActivityEntry) *int {
	for _, entry := range entries {
		if entry.Kind != pullRequestCreateActivity {
			continue
		}
		for _, change := range entry.Changes {
			if change.Kind != pullRequestChange {
				continue
			}
			if n, ok := pullNumber(change.NewValues["number"]); ok {
				return &n
			}
		}
	}
	return nil
}

func pullNumber(v any) (int, bool) {
	var n int
	switch t := v.(type) {
	case float64:
		if t != math.Trunc(t) {
			return 0, false
		}
		n = int(t)
	case int:
		n = t
	case int64:
		n = int(t)
	case json.Number:
		i, err := t.Int64()
		if err != nil {
			return 0, false
		}
		n = int(i)
	case string:
		i, err := strconv.Atoi(t)
		if err != nil {
			return 0, false
		}
		n = i
	default:
		return 0, false
	}
	if n <= 0 {
		return 0, false
	}
	return n, true
}
