package mocks

import (
	context "context"

	domain "trackersync/internal/domain"

	mock "github.com/stretchr/testify/mock"
)

// TrackerClient is a mock type for the TrackerClient type
type TrackerClient struct {
	mock.Mock
}

// GetActivity provides a mock function with given fields: ctx, storyID
func (_m *TrackerClient) GetActivity(ctx context.Context, storyID int64) ([]domain.ActivityEntry, error) {
	ret := _m.Called(ctx, storyID)

	if len(ret) == 0 {
		panic("no return value specified for GetActivity")
	}

	var r0 []domain.ActivityEntry
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, int64) ([]domain.ActivityEntry, error)); ok {
		return rf(ctx, storyID)
	}
	if rf, ok := ret.Get(0).(func(context.Context, int64) []domain.ActivityEntry); ok {
		r0 = rf(ctx, storyID)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.ActivityEntry)
	}

	if rf, ok := ret.Get(1).(func(context.Context, int64) error); ok {
		r1 = rf(ctx, storyID)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// GetPerson provides a mock function with given fields: ctx, id
func (_m *TrackerClient) GetPerson(ctx context.Context, id int64) (domain.Person, bool, error) {
	ret := _m.Called(ctx, id)

	if len(ret) == 0 {
		panic("no return value specified for GetPerson")
	}

	var r0 domain.Person
	var r1 bool
	var r2 error
	if rf, ok := ret.Get(0).(func(context.Context, int64) (domain.Person, bool, error)); ok {
		return rf(ctx, id)
	}
	if rf, ok := ret.Get(0).(func(context.Context, int64) domain.Person); ok {
		r0 = rf(ctx, id)
	} else {
		r0 = ret.Get(0).(domain.Person)
	}

	if rf, ok := ret.Get(1).(func(context.Context, int64) bool); ok {
		r1 = rf(ctx, id)
	} else {
		r1 = ret.Get(1).(bool)
	}

	if rf, ok := ret.Get(2).(func(context.Context, int64) error); ok {
		r2 = rf(ctx, id)
	} else {
		r2 = ret.Error(2)
	}

	return r0, r1, r2
}

// GetStory provides a mock function with given fields: ctx, id
func (_m *TrackerClient) GetStory(ctx context.Context, id int64) (domain.Story, error) {
	ret := _m.Called(ctx, id)

	if len(ret) == 0 {
		panic("no return value specified for GetStory")
	}

	var r0 domain.Story
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, int64) (domain.Story, error)); ok {
		return rf(ctx, id)
	}
	if rf, ok := ret.Get(0).(func(context.Context, int64) domain.Story); ok {
		r0 = rf(ctx, id)
	} else {
		r0 = ret.Get(0).(domain.Story)
	}

	if rf, ok := ret.Get(1).(func(context.Context, int64) error); ok {
		r1 = rf(ctx, id)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// RefreshPeople provides a mock function with no fields
func (_m *TrackerClient) RefreshPeople() {
	_m.Called()
}

// SearchStories provides a mock function with given fields: ctx, query
func (_m *TrackerClient) SearchStories(ctx context.Context, query string) ([]domain.Story, error) {
	ret := _m.Called(ctx, query)

	if len(ret) == 0 {
		panic("no return value specified for SearchStories")
	}

	var r0 []domain.Story
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, string) ([]domain.Story, error)); ok {
		return rf(ctx, query)
	}
	if rf, ok := ret.Get(0).(func(context.Context, string) []domain.Story); ok {
		r0 = rf(ctx, query)
	} else if ret.Get(0) != nil {
		r0 = ret.Get(0).([]domain.Story)
	}

	if rf, ok := ret.Get(1).(func(context.Context, string) error); ok {
		r1 = rf(ctx, query)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// SetState provides a mock function with given fields: ctx, storyID, state
func (_m *TrackerClient) SetState(ctx context.Context, storyID int64, state domain.StoryState) (domain.Story, error) {
	ret := _m.Called(ctx, storyID, state)

	if len(ret) == 0 {
		panic("no return value specified for SetState")
	}

	var r0 domain.Story
	var r1 error
	if rf, ok := ret.Get(0).(func(context.Context, int64, domain.StoryState) (domain.Story, error)); ok {
		return rf(ctx, storyID, state)
	}
	if rf, ok := ret.Get(0).(func(context.Context, int64, domain.StoryState) domain.Story); ok {
		r0 = rf(ctx, storyID, state)
	} else {
		r0 = ret.Get(0).(domain.Story)
	}

	if rf, ok := ret.Get(1).(func(context.Context, int64, domain.StoryState) error); ok {
		r1 = rf(ctx, storyID, state)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

// NewTrackerClient creates a new instance of TrackerClient. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewTrackerClient(t interface {
	mock.TestingT
	Cleanup(func())
}) *TrackerClient {
	mock := &TrackerClient{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
