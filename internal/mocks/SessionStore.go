package mocks

import (
	context "context"

	model "github.com/dtroode/gophboard-server/internal/model"
	mock "github.com/stretchr/testify/mock"
)

// SessionStore is a mock type for the SessionStore type
type SessionStore struct {
	mock.Mock
}

// Create provides a mock function with given fields: ctx, session
func (_m *SessionStore) Create(ctx context.Context, session model.Session) error {
	ret := _m.Called(ctx, session)
	return ret.Error(0)
}

// GetByJTI provides a mock function with given fields: ctx, jti
func (_m *SessionStore) GetByJTI(ctx context.Context, jti string) (model.Session, error) {
	ret := _m.Called(ctx, jti)
	return ret.Get(0).(model.Session), ret.Error(1)
}

// RevokeByJTI provides a mock function with given fields: ctx, jti
func (_m *SessionStore) RevokeByJTI(ctx context.Context, jti string) error {
	ret := _m.Called(ctx, jti)
	return ret.Error(0)
}

// NewSessionStore creates a new instance of SessionStore. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewSessionStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *SessionStore {
	m := &SessionStore{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
