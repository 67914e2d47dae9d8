package mocks

import (
	"github.com/aboutcode-org/dejacode/shared"
	"github.com/stretchr/testify/mock"
)

// NewRBACProvider creates a new instance of RBACProvider. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewRBACProvider(t testingT) *RBACProvider {
	m := &RBACProvider{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// RBACProvider is a mock type for the shared.RBACProvider type
type RBACProvider struct {
	mock.Mock
}

var _ shared.RBACProvider = (*RBACProvider)(nil)

func (_m *RBACProvider) GetDomainRBAC(domain string) shared.AccessControl {
	ret := _m.Called(domain)
	return ret.Get(0).(shared.AccessControl)
}

func (_m *RBACProvider) DomainsOfUser(user string) ([]string, error) {
	ret := _m.Called(user)
	domains, _ := ret.Get(0).([]string)
	return domains, ret.Error(1)
}
