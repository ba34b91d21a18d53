package mocks

import (
	context "context"

	domain "trackersync/internal/domain"

	mock "github.com/stretchr/testify/mock"
)

// PullRequestSource is a mock type for the PullRequestSource type
type PullRequestSource struct {
	mock.Mock
}

// GetPullRequest provides a mock function with given fields: ctx, number
func (_m *PullRequestSource) GetPullRequest(ctx context.Context, number int) (domain.PullRequest, error) {
	ret := _m.Called(ctx, number)

	if len(ret) == 0 {
		panic("no return value specified for GetPullRequest")
	}

	var r0 domain.PullRequest
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, int) (domain.PullRequest, error)); ok {
		return rf(ctx, number)
	}
	if rf, ok := ret.Get(0).(func(context.Context, int) domain.PullRequest); ok {
		r0 = rf(ctx, number)
	} else {
		r0 = ret.Get(0).(domain.PullRequest)
	}

	if rf, ok := ret.Get(1).(func(context.Context, int) error); ok {
		r1 = rf(ctx, number)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// ListPullRequests provides a mock function with given fields: ctx
func (_m *PullRequestSource) ListPullRequests(ctx context.Context) ([]domain.PullRequest, error) {
	ret := _m.Called(ctx)

	if len(ret) == 0 {
		panic("no return value specified for ListPullRequests")
	}

	var r0 []domain.PullRequest
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context) ([]domain.PullRequest, error)); ok {
		return rf(ctx)
	}
	if rf, ok := ret.Get(0).(func(context.Context) []domain.PullRequest); ok {
		r0 = rf(ctx)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.PullRequest)
	}

	if rf, ok := ret.Get(1).(func(context.Context) error); ok {
		r1 = rf(ctx)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewPullRequestSource creates a new instance of PullRequestSource. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewPullRequestSource(t interface {
	mock.TestingT
	Cleanup(func())
}) *PullRequestSource {
	mock := &PullRequestSource{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
