package domain

import "time"

type StoryState string

const (
	StateUnscheduled StoryState = "unscheduled"
	StatePlanned     StoryState = "planned"
	StateUnstarted   StoryState = "unstarted"
	StateStarted     StoryState = "started"
	StateFinished    StoryState = "finished"
	StateDelivered   StoryState = "delivered"
	StateAccepted    StoryState = "accepted"
	StateRejected    StoryState = "rejected"
)

type Story struct {
	ID           int64
	Name         string
	Kind         string
	CurrentState StoryState
	OwnedByID    *int64
}

type Person struct {
	ID       int64
	Name     string
	Initials string
	Username string
	Email    string
}

// ActivityEntry is one item of a story's activity feed. Changes keep the
// tracker's raw new_values so callers decide how to read them.
type ActivityEntry struct {
	Kind    string
	Changes []Change
}

type Change struct {
	Kind      string
	NewValues map[string]any
}

type PullRequest struct {
	Number int
	Title  string
	Body   string
	State  string
	URL    string
	Merged bool
}

// StoryInfo is a per-pass projection of a story and its resolved pull request link.
type StoryInfo struct {
	ID         int64
	Name       string
	Kind       string
	State      StoryState
	Owner      string
	PullNumber *int
}

type PassKind string

const (
	PassPush PassKind = "push"
	PassPoll PassKind = "poll"
)

type FailureStage string

const (
	StageSearch   FailureStage = "search"
	StageActivity FailureStage = "activity"
	StagePull     FailureStage = "pull_request"
	StageSetState FailureStage = "set_state"
)

type StoryFailure struct {
	StoryID int64
	Stage   FailureStage
	Err     error
}

// PassResult summarises one reconciliation pass.
type PassResult struct {
	Kind        PassKind
	PullNumber  *int
	StartedAt   time.Time
	FinishedAt  time.Time
	Scanned     int
	Delivered   []StoryInfo
	Failures    []StoryFailure
	Interrupted bool
}

func (r PassResult) Failed() bool {
	return len(r.Failures) > 0
}

// PassRecord is a journaled pass as read back for reporting.
type PassRecord struct {
	ID          int64
	Kind        PassKind
	PullNumber  *int
	StartedAt   time.Time
	FinishedAt  time.Time
	Scanned     int
	Delivered   int
	Failures    int
	Interrupted bool
}
