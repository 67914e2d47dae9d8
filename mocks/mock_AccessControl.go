package mocks

import (
	"github.com/aboutcode-org/dejacode/shared"
	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// NewAccessControl creates a new instance of AccessControl. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewAccessControl(t testingT) *AccessControl {
	m := &AccessControl{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// AccessControl is a mock type for the shared.AccessControl type
type AccessControl struct {
	mock.Mock
}

var _ shared.AccessControl = (*AccessControl)(nil)

func (_m *AccessControl) HasAccess(subject string) (bool, error) {
	ret := _m.Called(subject)
	return ret.Bool(0), ret.Error(1)
}

func (_m *AccessControl) InheritRole(roleWhichGetsPermissions, roleWhichProvidesPermissions shared.Role) error {
	ret := _m.Called(roleWhichGetsPermissions, roleWhichProvidesPermissions)
	return ret.Error(0)
}

func (_m *AccessControl) GetAllRoles(user string) []string {
	ret := _m.Called(user)
	if f, ok := ret.Get(0).(func(string) []string); ok {
		return f(user)
	}
	roles, _ := ret.Get(0).([]string)
	return roles
}

func (_m *AccessControl) GetDomainRole(user string) (shared.Role, error) {
	ret := _m.Called(user)
	return ret.Get(0).(shared.Role), ret.Error(1)
}

func (_m *AccessControl) GrantRole(subject string, role shared.Role) error {
	ret := _m.Called(subject, role)
	return ret.Error(0)
}

func (_m *AccessControl) RevokeRole(subject string, role shared.Role) error {
	ret := _m.Called(subject, role)
	return ret.Error(0)
}

func (_m *AccessControl) AllowRole(role shared.Role, object shared.Object, action []shared.Action) error {
	ret := _m.Called(role, object, action)
	return ret.Error(0)
}

func (_m *AccessControl) IsAllowed(subject string, object shared.Object, action shared.Action) (bool, error) {
	ret := _m.Called(subject, object, action)
	return ret.Bool(0), ret.Error(1)
}

func (_m *AccessControl) GetAllMembersOfDataspace() ([]string, error) {
	ret := _m.Called()
	members, _ := ret.Get(0).([]string)
	return members, ret.Error(1)
}
