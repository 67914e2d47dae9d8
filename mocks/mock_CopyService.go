package mocks

import (
	"context"

	"github.com/aboutcode-org/dejacode/database/models"
	"github.com/aboutcode-org/dejacode/dtos"
	"github.com/aboutcode-org/dejacode/shared"
	"github.com/stretchr/testify/mock"
)

// NewCopyService creates a new instance of CopyService. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewCopyService(t testingT) *CopyService {
	m := &CopyService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// CopyService is a mock type for the shared.CopyService type
type CopyService struct {
	mock.Mock
}

var _ shared.CopyService = (*CopyService)(nil)

func (_m *CopyService) CheckPermission(user models.User, source, target models.Dataspace) error {
	ret := _m.Called(user, source, target)
	return ret.Error(0)
}

func (_m *CopyService) CopyBatch(ctx context.Context, user models.User, req dtos.CopyRequest) (dtos.CopyReport, error) {
	ret := _m.Called(ctx, user, req)
	return ret.Get(0).(dtos.CopyReport), ret.Error(1)
}
