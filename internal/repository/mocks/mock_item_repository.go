package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"mediaapi/internal/model"
)

type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) Insert(ctx context.Context, category model.Category, doc model.Item) (string, error) {
	args := m.Called(ctx, category, doc)
	return args.String(0), args.Error(1)
}

func (m *MockItemRepository) DeleteByID(ctx context.Context, category model.Category, id string) (int64, error) {
	args := m.Called(ctx, category, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockItemRepository) FindAll(ctx context.Context, category model.Category) ([]model.Item, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Item), args.Error(1)
}
