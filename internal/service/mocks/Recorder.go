package mocks

import (
	context "context"

	domain "trackersync/internal/domain"

	mock "github.com/stretchr/testify/mock"
)

// Recorder is a mock type for the Recorder type
type Recorder struct {
	mock.Mock
}

// RecordPass provides a mock function with given fields: ctx, result
func (_m *Recorder) RecordPass(ctx context.Context, result domain.PassResult) error {
	ret := _m.Called(ctx, result)

	if len(ret) == 0 {
		panic("no return value specified for RecordPass")
	}

	var r0 error
	if rf, ok := ret.Get(0).(func(context.Context, domain.PassResult) error); ok {
		r0 = rf(ctx, result)
	} else {
		r0 = ret.Error(0)
	}

	return r0
}

// NewRecorder creates a new instance of Recorder. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
// The first argument is typically a *testing.T value.
func NewRecorder(t interface {
	mock.TestingT
	Cleanup(func())
}) *Recorder {
	mock := &Recorder{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
