package mocks

import (
	context "context"

	model "github.com/dtroode/gophboard-server/internal/model"
	mock "github.com/stretchr/testify/mock"
)

// BoardService is a mock type for the BoardService type
type BoardService struct {
	mock.Mock
}

// CreatePost provides a mock function with given fields: ctx, params
func (_m *BoardService) CreatePost(ctx context.Context, params model.CreatePostParams) (model.BoardPost, error) {
	ret := _m.Called(ctx, params)

	var r0 model.BoardPost
	if rf, ok := ret.Get(0).(func(context.Context, model.CreatePostParams) model.BoardPost); ok {
		r0 = rf(ctx, params)
	} else {
		r0 = ret.Get(0).(model.BoardPost)
	}

	return r0, ret.Error(1)
}

// ListPosts provides a mock function with given fields: ctx
func (_m *BoardService) ListPosts(ctx context.Context) ([]model.BoardPost, error) {
	ret := _m.Called(ctx)

	var r0 []model.BoardPost
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]model.BoardPost)
	}

	return r0, ret.Error(1)
}

// ResolveDownload provides a mock function with given fields: ctx, fileID
func (_m *BoardService) ResolveDownload(ctx context.Context, fileID int64) (model.Download, error) {
	ret := _m.Called(ctx, fileID)
	return ret.Get(0).(model.Download), ret.Error(1)
}

// NewBoardService creates a new instance of BoardService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewBoardService(t interface {
	mock.TestingT
	Cleanup(func())
}) *BoardService {
	m := &BoardService{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
