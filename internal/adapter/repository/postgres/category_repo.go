package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/finledger/internal/domain"
)

const categoryColumns = `id, user_id, name, type, icon, background, created_at, updated_at`

// CategoryRepository implements usecase.CategoryRepository. A user_id of zero
// marks a shared default category visible to everyone.
type CategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

// Create inserts a user-owned category and fills in its generated id.
func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	query := `
		INSERT INTO categories (user_id, name, type, icon, background, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	return r.pool.QueryRow(ctx, query,
		category.UserID,
		category.Name,
		category.Type,
		category.Icon,
		category.Background,
		category.CreatedAt,
		category.UpdatedAt,
	).Scan(&category.ID)
}

// GetByID retrieves a category by ID.
func (r *CategoryRepository) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`

	var category domain.Category
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&category.ID,
		&category.UserID,
		&category.Name,
		&category.Type,
		&category.Icon,
		&category.Background,
		&category.CreatedAt,
		&category.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}

	return &category, nil
}

// ListVisible lists the shared defaults plus the user's own categories.
func (r *CategoryRepository) ListVisible(ctx context.Context, userID int64) ([]*domain.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE user_id = 0 OR user_id = $1
		ORDER BY user_id, name
	`

	return r.queryCategories(ctx, query, userID)
}

// ListVisibleByType lists visible categories of one polarity.
func (r *CategoryRepository) ListVisibleByType(ctx context.Context, userID int64, categoryType domain.CategoryType) ([]*domain.Category, error) {
	query := `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE (user_id = 0 OR user_id = $1) AND type = $2
		ORDER BY user_id, name
	`

	return r.queryCategories(ctx, query, userID, categoryType)
}

func (r *CategoryRepository) queryCategories(ctx context.Context, query string, args ...any) ([]*domain.Category, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*domain.Category
	for rows.Next() {
		var category domain.Category
		err := rows.Scan(
			&category.ID,
			&category.UserID,
			&category.Name,
			&category.Type,
			&category.Icon,
			&category.Background,
			&category.CreatedAt,
			&category.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		categories = append(categories, &category)
	}

	return categories, rows.Err()
}
