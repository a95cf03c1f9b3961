package repositories

import (
	"database/sql"
	"fmt"

	"eventsphere/internal/models"
)

// CategoryRepository handles category data operations
type CategoryRepository struct {
	db *sql.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create creates a new category
func (r *CategoryRepository) Create(category *models.Category) (*models.Category, error) {
	if err := category.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	created := &models.Category{}
	err := r.db.QueryRow(`
		INSERT INTO categories (name, description)
		VALUES ($1, $2)
		RETURNING id, name, description`,
		category.Name, category.Description,
	).Scan(&created.ID, &created.Name, &created.Description)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	return created, nil
}

// GetByID retrieves a category by ID
func (r *CategoryRepository) GetByID(id int) (*models.Category, error) {
	category := &models.Category{}
	err := r.db.QueryRow(`
		SELECT id, name, description
		FROM categories
		WHERE id = $1`, id).Scan(&category.ID, &category.Name, &category.Description)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return category, nil
}

// GetByName retrieves a category by name
func (r *CategoryRepository) GetByName(name string) (*models.Category, error) {
	category := &models.Category{}
	err := r.db.QueryRow(`
		SELECT id, name, description
		FROM categories
		WHERE name = $1`, name).Scan(&category.ID, &category.Name, &category.Description)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, models.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category by name: %w", err)
	}
	return category, nil
}

// List retrieves all categories ordered by name
func (r *CategoryRepository) List() ([]*models.Category, error) {
	rows, err := r.db.Query("SELECT id, name, description FROM categories ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []*models.Category
	for rows.Next() {
		category := &models.Category{}
		if err = rows.Scan(&category.ID, &category.Name, &category.Description); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}
