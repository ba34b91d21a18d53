package http

import "time"

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error errorBody `json:"error"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

// PullRequestEvent is the subset of GitHub's pull_request webhook payload we read.
type PullRequestEvent struct {
	Action      string `json:"action"`
	Number      int    `json:"number"`
	PullRequest struct {
		Number int    `json:"number"`
		Merged bool   `json:"merged"`
		Title  string `json:"title"`
	} `json:"pull_request"`
}

type StoryDTO struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Kind       string `json:"kind"`
	State      string `json:"state"`
	Owner      string `json:"owner,omitempty"`
	PullNumber *int   `json:"pull_number,omitempty"`
}

type FailureDTO struct {
	StoryID int64  `json:"story_id,omitempty"`
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

type PassResultDTO struct {
	Kind        string       `json:"kind"`
	PullNumber  *int         `json:"pull_number,omitempty"`
	StartedAt   time.Time    `json:"started_at"`
	FinishedAt  time.Time    `json:"finished_at"`
	Scanned     int          `json:"scanned"`
	Delivered   []StoryDTO   `json:"delivered"`
	Failures    []FailureDTO `json:"failures"`
	Interrupted bool         `json:"interrupted"`
}

type PassRecordDTO struct {
	ID          int64     `json:"id"`
	Kind        string    `json:"kind"`
	PullNumber  *int      `json:"pull_number,omitempty"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
	Scanned     int       `json:"scanned"`
	Delivered   int       `json:"delivered"`
	Failures    int       `json:"failures"`
	Interrupted bool      `json:"interrupted"`
}

type PassesResponse struct {
	Passes []PassRecordDTO `json:"passes"`
}
