package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"trackersync/internal/domain"
	"trackersync/internal/service/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createActivity(number any) domain.ActivityEntry {
	return domain.ActivityEntry{
		Kind: "pull_request_create_activity",
		Changes: []domain.Change{
			{Kind: "pull_request", NewValues: map[string]any{"number": number}},
		},
	}
}

func TestMatchPullRequest(t *testing.T) {
	tests := []struct {
		name    string
		entries []domain.ActivityEntry
		want    *int
	}{
		{
			name: "first_match_wins",
			entries: []domain.ActivityEntry{
				{Kind: "comment"},
				createActivity(float64(42)),
				createActivity(float64(99)),
			},
			want: ptr(42),
		},
		{
			name:    "empty_feed",
			entries: nil,
			want:    nil,
		},
		{
			name: "no_pull_request_change",
			entries: []domain.ActivityEntry{
				{Kind: "pull_request_create_activity", Changes: []domain.Change{{Kind: "story"}}},
				{Kind: "story_update_activity", Changes: []domain.Change{{Kind: "pull_request", NewValues: map[string]any{"number": float64(5)}}}},
			},
			want: nil,
		},
		{
			name: "malformed_number_skipped",
			entries: []domain.ActivityEntry{
				createActivity("not-a-number"),
				createActivity(nil),
				createActivity(float64(12)),
			},
			want: ptr(12),
		},
		{
			name:    "missing_new_values",
			entries: []domain.ActivityEntry{{Kind: "pull_request_create_activity", Changes: []domain.Change{{Kind: "pull_request"}}}},
			want:    nil,
		},
		{
			name:    "string_number",
			entries: []domain.ActivityEntry{createActivity("17")},
			want:    ptr(17),
		},
		{
			name:    "json_number",
			entries: []domain.ActivityEntry{createActivity(json.Number("23"))},
			want:    ptr(23),
		},
		{
			name:    "fractional_rejected",
			entries: []domain.ActivityEntry{createActivity(float64(1.5))},
			want:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchPullRequest(tt.entries))
		})
	}
}

func TestMatcher_LinkedPullRequest(t *testing.T) {
	ctx := context.Background()

	tracker := mocks.NewTrackerClient(t)
	tracker.
		On("GetActivity", ctx, int64(1)).
		Return([]domain.ActivityEntry{createActivity(float64(42)), createActivity(float64(99))}, nil).Once()

	got, err := NewMatcher(tracker).LinkedPullRequest(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 42, *got)
}

func TestMatcher_LinkedPullRequest_PropagatesError(t *testing.T) {
	ctx := context.Background()

	tracker := mocks.NewTrackerClient(t)
	tracker.
		On("GetActivity", ctx, int64(1)).
		Return(nil, domain.ErrUnauthorized).Once()

	got, err := NewMatcher(tracker).LinkedPullRequest(ctx, 1)
	assert.Nil(t, got)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

func ptr(n int) *int {
	return &n
}
