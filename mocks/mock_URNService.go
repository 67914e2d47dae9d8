package mocks

import (
	"context"

	"github.com/aboutcode-org/dejacode/shared"
	"github.com/stretchr/testify/mock"
)

// NewURNService creates a new instance of URNService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewURNService(t testingT) *URNService {
	m := &URNService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// URNService is a mock type for the shared.URNService type
type URNService struct {
	mock.Mock
}

var _ shared.URNService = (*URNService)(nil)

func (_m *URNService) Resolve(ctx context.Context, dataspaceID uint, urn string) (any, error) {
	ret := _m.Called(ctx, dataspaceID, urn)
	return ret.Get(0), ret.Error(1)
}
