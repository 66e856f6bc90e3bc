package mocks

import (
	context "context"

	model "github.com/dtroode/gophboard-server/internal/model"
	mock "github.com/stretchr/testify/mock"
)

// PostStore is a mock type for the PostStore type
type PostStore struct {
	mock.Mock
}

// Create provides a mock function with given fields: ctx, post
func (_m *PostStore) Create(ctx context.Context, post model.Post) (model.Post, error) {
	ret := _m.Called(ctx, post)

	var r0 model.Post
	if rf, ok := ret.Get(0).(func(context.Context, model.Post) model.Post); ok {
		r0 = rf(ctx, post)
	} else {
		r0 = ret.Get(0).(model.Post)
	}

	return r0, ret.Error(1)
}

// ListWithOwners provides a mock function with given fields: ctx
func (_m *PostStore) ListWithOwners(ctx context.Context) ([]model.BoardPost, error) {
	ret := _m.Called(ctx)

	var r0 []model.BoardPost
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]model.BoardPost)
	}

	return r0, ret.Error(1)
}

// NewPostStore creates a new instance of PostStore. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewPostStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *PostStore {
	m := &PostStore{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
