package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"mediaapi/internal/model"
	"mediaapi/internal/service"
)

type MockItemService struct {
	mock.Mock
}

func (m *MockItemService) UploadSingle(ctx context.Context, up service.Upload, fields map[string]string) (*service.UploadResult, error) {
	args := m.Called(ctx, up, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UploadResult), args.Error(1)
}

func (m *MockItemService) UploadMultiple(ctx context.Context, rawCategory string, ups []service.Upload, fields map[string]string) (*service.UploadResult, error) {
	args := m.Called(ctx, rawCategory, ups, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UploadResult), args.Error(1)
}

func (m *MockItemService) DeleteItem(ctx context.Context, rawCategory, id string, images []string) (*service.DeleteResult, error) {
	args := m.Called(ctx, rawCategory, id, images)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DeleteResult), args.Error(1)
}

func (m *MockItemService) ListProducts(ctx context.Context) ([]model.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Item), args.Error(1)
}
