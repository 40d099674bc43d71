package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/iho/finledger/internal/domain"
)

// CategoryUseCase handles category lookups with a read-through cache.
type CategoryUseCase struct {
	categoryRepo CategoryRepository
	cache        Cache
}

// NewCategoryUseCase creates a new CategoryUseCase.
func NewCategoryUseCase(categoryRepo CategoryRepository, cache Cache) *CategoryUseCase {
	return &CategoryUseCase{
		categoryRepo: categoryRepo,
		cache:        cache,
	}
}

// ListCategories lists the categories visible to the user: the shared
// defaults plus the user's own.
func (uc *CategoryUseCase) ListCategories(ctx context.Context, userID int64) ([]*domain.Category, error) {
	if err := domain.ValidateUserID(userID); err != nil {
		return nil, err
	}

	key := categoryCacheKey(userID)

	if uc.cache != nil {
		if data, err := uc.cache.Get(ctx, key); err == nil {
			var categories []*domain.Category
			if err := json.Unmarshal(data, &categories); err == nil {
				return categories, nil
			}
		}
	}

	categories, err := uc.categoryRepo.ListVisible(ctx, userID)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if data, err := json.Marshal(categories); err == nil {
			_ = uc.cache.Set(ctx, key, data, CategoryCacheTTL)
		}
	}

	return categories, nil
}

// ListCategoriesByType lists visible categories of one polarity.
func (uc *CategoryUseCase) ListCategoriesByType(ctx context.Context, userID int64, categoryType domain.CategoryType) ([]*domain.Category, error) {
	if err := domain.ValidateUserID(userID); err != nil {
		return nil, err
	}

	if categoryType != domain.CategoryTypeIncome && categoryType != domain.CategoryTypeExpense {
		return nil, fmt.Errorf("%w: unknown category type %q", domain.ErrInvalidRequest, categoryType)
	}

	return uc.categoryRepo.ListVisibleByType(ctx, userID, categoryType)
}

// GetCategory retrieves a category visible to the user.
func (uc *CategoryUseCase) GetCategory(ctx context.Context, id, userID int64) (*domain.Category, error) {
	if err := domain.ValidateUserID(userID); err != nil {
		return nil, err
	}

	category, err := uc.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if category.UserID != 0 && category.UserID != userID {
		return nil, domain.ErrCategoryNotFound
	}

	return category, nil
}

// CreateCategoryInput represents input for creating a category.
type CreateCategoryInput struct {
	Name       string
	Type       domain.CategoryType
	Icon       string
	Background string
}

// CreateCategory creates a user-owned category and drops the cached listing.
func (uc *CategoryUseCase) CreateCategory(ctx context.Context, input CreateCategoryInput, userID int64) (*domain.Category, error) {
	if err := domain.ValidateUserID(userID); err != nil {
		return nil, err
	}

	if input.Name == "" {
		return nil, fmt.Errorf("%w: category name cannot be empty", domain.ErrInvalidRequest)
	}

	if input.Type != domain.CategoryTypeIncome && input.Type != domain.CategoryTypeExpense {
		return nil, fmt.Errorf("%w: unknown category type %q", domain.ErrInvalidRequest, input.Type)
	}

	now := time.Now().UTC()
	category := &domain.Category{
		UserID:     userID,
		Name:       input.Name,
		Type:       input.Type,
		Icon:       input.Icon,
		Background: input.Background,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := uc.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}

	if uc.cache != nil {
		_ = uc.cache.Delete(ctx, categoryCacheKey(userID))
	}

	return category, nil
}

func categoryCacheKey(userID int64) string {
	return fmt.Sprintf("categories:%d", userID)
}
