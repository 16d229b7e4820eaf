package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"mediaapi/internal/model"
	"mediaapi/internal/storage"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Save(ctx context.Context, category model.Category, filename string, r io.Reader, opt storage.SaveOptions) error {
	args := m.Called(ctx, category, filename, r, opt)
	return args.Error(0)
}

func (m *MockStorage) Open(ctx context.Context, category model.Category, filename string) (io.ReadCloser, error) {
	args := m.Called(ctx, category, filename)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *MockStorage) Delete(ctx context.Context, category model.Category, filename string) error {
	args := m.Called(ctx, category, filename)
	return args.Error(0)
}
