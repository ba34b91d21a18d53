package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"trackersync/internal/domain"

	"go.uber.org/zap"
)

const (
	pushQuery = "state:started or state:finished"
	pollQuery = "state:finished"

	defaultStoryTimeout = 30 * time.Second
)

type TrackerClient interface {
	GetStory(ctx context.Context, id int64) (domain.Story, error)
	SearchStories(ctx context.Context, query string) ([]domain.Story, error)
	GetActivity(ctx context.Context, storyID int64) ([]domain.ActivityEntry, error)
	GetPerson(ctx context.Context, id int64) (domain.Person, bool, error)
	RefreshPeople()
	SetState(ctx context.Context, storyID int64, state domain.StoryState) (domain.Story, error)
}

type PullRequestSource interface {
	GetPullRequest(ctx context.Context, number int) (domain.PullRequest, error)
	ListPullRequests(ctx context.Context) ([]domain.PullRequest, error)
}

// Recorder keeps an audit trail of finished passes.
type Recorder interface {
	RecordPass(ctx context.Context, result domain.PassResult) error
}

type Service struct {
	tracker  TrackerClient
	pulls    PullRequestSource
	matcher  *Matcher
	recorder Recorder
	log      *zap.SugaredLogger

	storyTimeout time.Duration
	now          func() time.Time

	// passes run one at a time; SetState carries no concurrency token.
	mu sync.Mutex
}

type Option func(*Service)

func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

func WithStoryTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.storyTimeout = d
		}
	}
}

func NewService(tracker TrackerClient, pulls PullRequestSource, log *zap.SugaredLogger, opts ...Option) *Service {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	s := &Service{
		tracker:      tracker,
		pulls:        pulls,
		matcher:      NewMatcher(tracker),
		log:          log.Named("reconciler"),
		storyTimeout: defaultStoryTimeout,
		now:          func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// decision reports whether a story should be delivered. A non-nil error is
// attributed to stage.
type decision func(ctx context.Context, info domain.StoryInfo) (deliver bool, stage domain.FailureStage, err error)

// Deliver transitions every started or finished story linked to pullNumber.
func (s *Service) Deliver(ctx context.Context, pullNumber int) (domain.PassResult, error) {
	eligible := stateSet(domain.StateStarted, domain.StateFinished)

	return s.run(ctx, domain.PassPush, &pullNumber, pushQuery, func(_ context.Context, info domain.StoryInfo) (bool, domain.FailureStage, error) {
		if _, ok := eligible[info.State]; !ok {
			return false, "", nil
		}
		return info.PullNumber != nil && *info.PullNumber == pullNumber, "", nil
	})
}

// TransitionMergedStories delivers finished stories whose linked pull request is merged.
func (s *Service) TransitionMergedStories(ctx context.Context) (domain.PassResult, error) {
	return s.run(ctx, domain.PassPoll, nil, pollQuery, func(ctx context.Context, info domain.StoryInfo) (bool, domain.FailureStage, error) {
		if info.State != domain.StateFinished || info.PullNumber == nil {
			return false, "", nil
		}
		pr, err := s.pulls.GetPullRequest(ctx, *info.PullNumber)
		if err != nil {
			return false, domain.StagePull, err
		}
		s.log.Debugw("pull request", "story_id", info.ID, "pull", pr.Number, "title", pr.Title, "merged", pr.Merged)
		return pr.Merged, "", nil
	})
}

func (s *Service) run(ctx context.Context, kind domain.PassKind, pull *int, query string, decide decision) (domain.PassResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := domain.PassResult{
		Kind:       kind,
		PullNumber: pull,
		StartedAt:  s.now(),
		Delivered:  make([]domain.StoryInfo, 0),
		Failures:   make([]domain.StoryFailure, 0),
	}
	s.tracker.RefreshPeople()

	stories, err := s.tracker.SearchStories(ctx, query)
	if err != nil {
		result.Failures = append(result.Failures, domain.StoryFailure{Stage: domain.StageSearch, Err: err})
		s.finish(ctx, &result)
		return result, err
	}

	seen := make(map[int64]struct{}, len(stories))
	for _, story := range stories {
		if ctx.Err() != nil {
			result.Interrupted = true
			break
		}
		if _, dup := seen[story.ID]; dup {
			continue
		}
		seen[story.ID] = struct{}{}
		result.Scanned++

		s.processStory(ctx, &result, story, decide)
	}

	s.finish(ctx, &result)
	return result, nil
}

// processStory runs on a context detached from ctx's cancellation so a story
// that has started is allowed to finish.
func (s *Service) processStory(ctx context.Context, result *domain.PassResult, story domain.Story, decide decision) {
	sctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.storyTimeout)
	defer cancel()

	log := s.log.With("story_id", story.ID, "pass", result.Kind)

	info, err := s.storyInfo(sctx, story)
	if err != nil {
		log.Warnw("resolve pull request link", "error", err)
		result.Failures = append(result.Failures, domain.StoryFailure{StoryID: story.ID, Stage: domain.StageActivity, Err: err})
		return
	}
	log.Debugw("story", "kind", info.Kind, "state", info.State, "owner", info.Owner, "name", info.Name, "pull", info.PullNumber)

	ok, stage, err := decide(sctx, info)
	if err != nil {
		log.Warnw("story skipped", "stage", stage, "error", err)
		result.Failures = append(result.Failures, domain.StoryFailure{StoryID: story.ID, Stage: stage, Err: err})
		return
	}
	if !ok {
		return
	}

	log.Infow("transitioning story", "owner", info.Owner, "name", info.Name, "pull", *info.PullNumber, "to", domain.StateDelivered)
	updated, err := s.tracker.SetState(sctx, story.ID, domain.StateDelivered)
	if err != nil {
		if errors.Is(err, domain.ErrTransitionRejected) {
			log.Warnw("transition rejected", "error", err)
		} else {
			log.Errorw("transition failed", "error", err)
		}
		result.Failures = append(result.Failures, domain.StoryFailure{StoryID: story.ID, Stage: domain.StageSetState, Err: err})
		return
	}

	info.State = updated.CurrentState
	result.Delivered = append(result.Delivered, info)
}

func (s *Service) finish(ctx context.Context, result *domain.PassResult) {
	result.FinishedAt = s.now()

	fields := []any{
		"pass", result.Kind,
		"scanned", result.Scanned,
		"delivered", len(result.Delivered),
		"failures", len(result.Failures),
		"interrupted", result.Interrupted,
		"duration", result.FinishedAt.Sub(result.StartedAt),
	}
	if result.PullNumber != nil {
		fields = append(fields, "pull", *result.PullNumber)
	}
	s.log.Infow("pass finished", fields...)

	if s.recorder == nil {
		return
	}
	rctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.storyTimeout)
	defer cancel()
	if err := s.recorder.RecordPass(rctx, *result); err != nil {
		s.log.Errorw("record pass", "pass", result.Kind, "error", err)
	}
}

// StoryInfo reports every story matching query with its owner and linked pull
// request. Stories whose feed cannot be read are reported without a link.
func (s *Service) StoryInfo(ctx context.Context, query string) ([]domain.StoryInfo, error) {
	stories, err := s.tracker.SearchStories(ctx, query)
	if err != nil {
		return nil, err
	}

	infos := make([]domain.StoryInfo, 0, len(stories))
	for _, story := range stories {
		info, err := s.storyInfo(ctx, story)
		if err != nil {
			s.log.Warnw("resolve pull request link", "story_id", story.ID, "error", err)
			info = s.baseInfo(ctx, story)
		}
		infos = append(infos, info)
	}
	return infos, nil
}

// Story resolves one story by id.
func (s *Service) Story(ctx context.Context, id int64) (domain.StoryInfo, error) {
	story, err := s.tracker.GetStory(ctx, id)
	if err != nil {
		return domain.StoryInfo{}, err
	}
	return s.storyInfo(ctx, story)
}

// PullRequests lists the repository's open pull requests.
func (s *Service) PullRequests(ctx context.Context) ([]domain.PullRequest, error) {
	return s.pulls.ListPullRequests(ctx)
}

func (s *Service) storyInfo(ctx context.Context, story domain.Story) (domain.StoryInfo, error) {
	info := s.baseInfo(ctx, story)

	pull, err := s.matcher.LinkedPullRequest(ctx, story.ID)
	if err != nil {
		return info, err
	}
	info.PullNumber = pull
	return info, nil
}

// baseInfo projects a story; the owner name is best effort.
func (s *Service) baseInfo(ctx context.Context, story domain.Story) domain.StoryInfo {
	info := domain.StoryInfo{
		ID:    story.ID,
		Name:  story.Name,
		Kind:  story.Kind,
		State: story.CurrentState,
	}
	if story.OwnedByID == nil {
		return info
	}

	person, ok, err := s.tracker.GetPerson(ctx, *story.OwnedByID)
	switch {
	case err != nil:
		s.log.Warnw("resolve owner", "story_id", story.ID, "owner_id", *story.OwnedByID, "error", err)
	case ok:
		info.Owner = person.Name
	}
	return info
}

func stateSet(states ...domain.StoryState) map[domain.StoryState]struct{} {
	set := make(map[domain.StoryState]struct{}, len(states))
	for _, st := range states {
		set[st] = struct{}{}
	}
	return set
}
