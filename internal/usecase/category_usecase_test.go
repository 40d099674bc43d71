package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/iho/finledger/internal/domain"
	"github.com/iho/finledger/internal/usecase"
	"github.com/iho/finledger/internal/usecase/mocks"
)

func TestCategoryUseCase_ListCategoriesCacheMiss(t *testing.T) {
	ctrl := gomock.NewController(t)
	categoryRepo := mocks.NewMockGenCategoryRepository(ctrl)
	cache := mocks.NewMockGenCache(ctrl)

	categories := []*domain.Category{
		{ID: 1, Name: "Salary", Type: domain.CategoryTypeIncome},
		{ID: 2, UserID: 7, Name: "Hobby", Type: domain.CategoryTypeExpense},
	}

	cache.EXPECT().Get(gomock.Any(), "categories:7").Return(nil, errors.New("cache miss"))
	categoryRepo.EXPECT().ListVisible(gomock.Any(), int64(7)).Return(categories, nil)
	cache.EXPECT().Set(gomock.Any(), "categories:7", gomock.Any(), usecase.CategoryCacheTTL).Return(nil)

	uc := usecase.NewCategoryUseCase(categoryRepo, cache)

	got, err := uc.ListCategories(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, categories, got)
}

func TestCategoryUseCase_ListCategoriesCacheHit(t *testing.T) {
	ctrl := gomock.NewController(t)
	categoryRepo := mocks.NewMockGenCategoryRepository(ctrl)
	cache := mocks.NewMockGenCache(ctrl)

	cached, err := json.Marshal([]*domain.Category{{ID: 1, Name: "Salary", Type: domain.CategoryTypeIncome}})
	require.NoError(t, err)

	cache.EXPECT().Get(gomock.Any(), "categories:7").Return(cached, nil)

	uc := usecase.NewCategoryUseCase(categoryRepo, cache)

	got, err := uc.ListCategories(context.Background(), 7)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Salary", got[0].Name)
}

func TestCategoryUseCase_ListCategoriesCorruptCacheFallsThrough(t *testing.T) {
	ctrl := gomock.NewController(t)
	categoryRepo := mocks.NewMockGenCategoryRepository(ctrl)
	cache := mocks.NewMockGenCache(ctrl)

	cache.EXPECT().Get(gomock.Any(), "categories:7").Return([]byte("{not json"), nil)
	categoryRepo.EXPECT().ListVisible(gomock.Any(), int64(7)).Return([]*domain.Category{}, nil)
	cache.EXPECT().Set(gomock.Any(), "categories:7", gomock.Any(), usecase.CategoryCacheTTL).Return(nil)

	uc := usecase.NewCategoryUseCase(categoryRepo, cache)

	_, err := uc.ListCategories(context.Background(), 7)

	require.NoError(t, err)
}

func TestCategoryUseCase_CreateCategoryInvalidatesCache(t *testing.T) {
	ctrl := gomock.NewController(t)
	categoryRepo := mocks.NewMockGenCategoryRepository(ctrl)
	cache := mocks.NewMockGenCache(ctrl)

	categoryRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
	cache.EXPECT().Delete(gomock.Any(), "categories:7").Return(nil)

	uc := usecase.NewCategoryUseCase(categoryRepo, cache)

	category, err := uc.CreateCategory(context.Background(), usecase.CreateCategoryInput{
		Name: "Books",
		Type: domain.CategoryTypeExpense,
	}, 7)

	require.NoError(t, err)
	assert.Equal(t, int64(7), category.UserID)
}

func TestCategoryUseCase_CreateCategoryRejectsUnknownType(t *testing.T) {
	uc := usecase.NewCategoryUseCase(mocks.NewMockCategoryRepository(), nil)

	_, err := uc.CreateCategory(context.Background(), usecase.CreateCategoryInput{
		Name: "Books",
		Type: "transfer",
	}, 7)

	require.ErrorIs(t, err, domain.ErrInvalidRequest)
}

func TestCategoryUseCase_GetCategoryVisibility(t *testing.T) {
	categoryRepo := mocks.NewMockCategoryRepository()
	categoryRepo.Seed(&domain.Category{ID: 1, Name: "Shared", Type: domain.CategoryTypeExpense})
	categoryRepo.Seed(&domain.Category{ID: 2, UserID: 99, Name: "Private", Type: domain.CategoryTypeExpense})

	uc := usecase.NewCategoryUseCase(categoryRepo, nil)

	shared, err := uc.GetCategory(context.Background(), 1, 7)
	require.NoError(t, err)
	assert.Equal(t, "Shared", shared.Name)

	_, err = uc.GetCategory(context.Background(), 2, 7)
	require.ErrorIs(t, err, domain.ErrCategoryNotFound)
}

func TestCategoryUseCase_ListCategoriesByType(t *testing.T) {
	categoryRepo := mocks.NewMockCategoryRepository()
	categoryRepo.Seed(&domain.Category{ID: 1, Name: "Salary", Type: domain.CategoryTypeIncome})
	categoryRepo.Seed(&domain.Category{ID: 2, Name: "Groceries", Type: domain.CategoryTypeExpense})

	uc := usecase.NewCategoryUseCase(categoryRepo, nil)

	expenses, err := uc.ListCategoriesByType(context.Background(), 7, domain.CategoryTypeExpense)
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, "Groceries", expenses[0].Name)

	_, err = uc.ListCategoriesByType(context.Background(), 7, "bogus")
	require.ErrorIs(t, err, domain.ErrInvalidRequest)
}
