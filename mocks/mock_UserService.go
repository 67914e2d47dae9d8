package mocks

import (
	"context"

	"github.com/aboutcode-org/dejacode/database/models"
	"github.com/aboutcode-org/dejacode/shared"
	"github.com/stretchr/testify/mock"
)

// NewUserService creates a new instance of UserService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewUserService(t testingT) *UserService {
	m := &UserService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// UserService is a mock type for the shared.UserService type
type UserService struct {
	mock.Mock
}

var _ shared.UserService = (*UserService)(nil)

func (_m *UserService) Create(ctx context.Context, user *models.User) (string, error) {
	ret := _m.Called(ctx, user)
	return ret.String(0), ret.Error(1)
}

func (_m *UserService) Authenticate(key string) (models.User, error) {
	ret := _m.Called(key)
	return ret.Get(0).(models.User), ret.Error(1)
}
