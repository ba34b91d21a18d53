package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"trackersync/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintPass(t *testing.T) {
	pull := 42
	result := domain.PassResult{
		Kind:       domain.PassPush,
		PullNumber: &pull,
		Scanned:    3,
		Delivered: []domain.StoryInfo{
			{ID: 100, Kind: "feature", State: domain.StateDelivered, Owner: "Ada Lovelace", PullNumber: &pull, Name: "Login"},
		},
		Failures: []domain.StoryFailure{
			{StoryID: 101, Stage: domain.StageSetState, Err: errors.New("rejected")},
		},
	}

	var buf bytes.Buffer
	printPass(&buf, result)
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "push pass for #42: scanned 3, delivered 1, failed 1\n"))
	assert.Contains(t, out, "Ada Lovelace")
	assert.Contains(t, out, "set_state")
	assert.Contains(t, out, "rejected")
	assert.NotContains(t, out, "interrupted")
}

func TestPrintStories_MissingOwnerAndPull(t *testing.T) {
	var buf bytes.Buffer
	printStories(&buf, []domain.StoryInfo{{ID: 7, Kind: "bug", State: domain.StateStarted, Name: "Crash"}})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, []string{"7", "bug", "started", "-", "-", "Crash"}, strings.Fields(lines[1]))
}

func TestPassError(t *testing.T) {
	assert.NoError(t, passError(domain.PassResult{Kind: domain.PassPoll}, nil))

	searchErr := errors.New("search failed")
	assert.ErrorIs(t, passError(domain.PassResult{}, searchErr), searchErr)

	err := passError(domain.PassResult{
		Kind:     domain.PassPoll,
		Failures: []domain.StoryFailure{{StoryID: 1, Stage: domain.StagePull}},
	}, nil)
	assert.EqualError(t, err, "poll pass finished with 1 failure(s)")

	err = passError(domain.PassResult{Kind: domain.PassPush, Interrupted: true}, nil)
	assert.EqualError(t, err, "push pass interrupted")
}

func TestRootCommand_Subcommands(t *testing.T) {
	root := newRootCommand()

	names := make([]string, 0)
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.Subset(t, names, []string{"serve", "sweep", "deliver", "stories", "story", "pulls", "migrate"})

	root.SetArgs([]string{"deliver", "abc"})
	root.SetOut(&bytes.Buffer{})
	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid pull request number")
}
