package category

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

var ErrNotFound = errors.New("category not found")

type Repo interface {
	Store(ctx context.Context, userId int, category Category) error
	// GetAll returns pinned categories first, then unpinned, each group ordered
	// by usage count descending.
	GetAll(ctx context.Context, userId int) ([]Category, error)
	Update(ctx context.Context, userId int, category Category) (bool, error)
	Delete(ctx context.Context, userId int, id string) (bool, error)
	IncrementCount(ctx context.Context, id string) error
}

type RepoImpl struct {
	db *sql.DB
}

func NewCategoryRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) Store(ctx context.Context, userId int, category Category) error {
	query := "INSERT INTO category (id, user_id, name, is_pinned, count) VALUES (?, ?, ?, ?, ?)"
	_, err := r.db.ExecContext(ctx, query, category.ID, userId, category.Name, category.IsPinned, category.Count)
	if err != nil {
		err := fmt.Errorf("could not store category: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *RepoImpl) GetAll(ctx context.Context, userId int) ([]Category, error) {
	query := `SELECT id, name, is_pinned, count FROM category
				WHERE user_id = ? ORDER BY is_pinned DESC, count DESC, name`
	rows, err := r.db.QueryContext(ctx, query, userId)
	if err != nil {
		err := fmt.Errorf("could not query categories: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var categories []Category
	for rows.Next() {
		var category Category
		if err := rows.Scan(&category.ID, &category.Name, &category.IsPinned, &category.Count); err != nil {
			err := fmt.Errorf("could not scan category: %w", err)
			log.Error(err)
			return nil, err
		}
		categories = append(categories, category)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return categories, nil
}

func (r *RepoImpl) Update(ctx context.Context, userId int, category Category) (bool, error) {
	query := "UPDATE category SET name = ?, is_pinned = ? WHERE id = ? AND user_id = ?"
	result, err := r.db.ExecContext(ctx, query, category.Name, category.IsPinned, category.ID, userId)
	if err != nil {
		err := fmt.Errorf("could not update category: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}

func (r *RepoImpl) Delete(ctx context.Context, userId int, id string) (bool, error) {
	query := "DELETE FROM category WHERE id = ? AND user_id = ?"
	result, err := r.db.ExecContext(ctx, query, id, userId)
	if err != nil {
		err := fmt.Errorf("could not delete category: %w", err)
		log.Error(err)
		return false, err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		err := fmt.Errorf("could not get rows affected: %w", err)
		log.Error(err)
		return false, err
	}
	return rowsAffected == 1, nil
}

func (r *RepoImpl) IncrementCount(ctx context.Context, id string) error {
	query := "UPDATE category SET count = count + 1 WHERE id = ?"
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		err := fmt.Errorf("could not increment category count: %w", err)
		log.Error(err)
		return err
	}
	return nil
}
