package mocks

import (
	model "github.com/dtroode/gophboard-server/internal/model"
	mock "github.com/stretchr/testify/mock"
)

// TokenManager is a mock type for the TokenManager type
type TokenManager struct {
	mock.Mock
}

// Generate provides a mock function with given fields: userID
func (_m *TokenManager) Generate(userID int64) (model.IdentityToken, error) {
	ret := _m.Called(userID)
	return ret.Get(0).(model.IdentityToken), ret.Error(1)
}

// Parse provides a mock function with given fields: token
func (_m *TokenManager) Parse(token string) (int64, string, error) {
	ret := _m.Called(token)
	return ret.Get(0).(int64), ret.String(1), ret.Error(2)
}

// NewTokenManager creates a new instance of TokenManager. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewTokenManager(t interface {
	mock.TestingT
	Cleanup(func())
}) *TokenManager {
	m := &TokenManager{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
