package mocks

import (
	context "context"
	io "io"

	model "github.com/dtroode/gophboard-server/internal/model"
	mock "github.com/stretchr/testify/mock"
)

// Storage is a mock type for the Storage type
type Storage struct {
	mock.Mock
}

// Delete provides a mock function with given fields: ctx, key
func (_m *Storage) Delete(ctx context.Context, key string) error {
	ret := _m.Called(ctx, key)
	return ret.Error(0)
}

// Download provides a mock function with given fields: ctx, key
func (_m *Storage) Download(ctx context.Context, key string) (io.ReadCloser, error) {
	ret := _m.Called(ctx, key)

	var r0 io.ReadCloser
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(io.ReadCloser)
	}

	return r0, ret.Error(1)
}

// Location provides a mock function with given fields: key
func (_m *Storage) Location(key string) string {
	ret := _m.Called(key)
	return ret.String(0)
}

// Upload provides a mock function with given fields: ctx, object
func (_m *Storage) Upload(ctx context.Context, object model.Object) error {
	ret := _m.Called(ctx, object)

	if rf, ok := ret.Get(0).(func(context.Context, model.Object) error); ok {
		return rf(ctx, object)
	}

	return ret.Error(0)
}

// NewStorage creates a new instance of Storage. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewStorage(t interface {
	mock.TestingT
	Cleanup(func())
}) *Storage {
	m := &Storage{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
