package mocks

import (
	context "context"

	model "github.com/dtroode/gophboard-server/internal/model"
	mock "github.com/stretchr/testify/mock"
)

// FileStore is a mock type for the FileStore type
type FileStore struct {
	mock.Mock
}

// Create provides a mock function with given fields: ctx, file
func (_m *FileStore) Create(ctx context.Context, file model.File) (model.File, error) {
	ret := _m.Called(ctx, file)

	var r0 model.File
	if rf, ok := ret.Get(0).(func(context.Context, model.File) model.File); ok {
		r0 = rf(ctx, file)
	} else {
		r0 = ret.Get(0).(model.File)
	}

	return r0, ret.Error(1)
}

// GetByID provides a mock function with given fields: ctx, id
func (_m *FileStore) GetByID(ctx context.Context, id int64) (model.File, error) {
	ret := _m.Called(ctx, id)

	return ret.Get(0).(model.File), ret.Error(1)
}

// NewFileStore creates a new instance of FileStore. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewFileStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *FileStore {
	m := &FileStore{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
