package tag

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

var ErrNotFound = errors.New("tag not found")

type Repo interface {
	Store(ctx context.Context, userId int, tag Tag) error
	GetByType(ctx context.Context, userId int, tagType Type) ([]Tag, error)
	FindByName(ctx context.Context, userId int, name string, tagType Type) (Tag, error)
	Update(ctx context.Context, userId int, tag Tag) (bool, error)
	Delete(ctx context.Context, userId int, id string) (bool, error)
	IncrementCounter(ctx context.Context, id string) error
}

type RepoImpl struct {
	db *sql.DB
}

func NewTagRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) Store(ctx context.Context, userId int, tag Tag) error {
	query := "INSERT INTO tag (id, user_id, name, type, counter) VALUES (?, ?, ?, ?, ?)"
	_, err := r.db.ExecContext(ctx, query, tag.ID, userId, tag.Name, string(tag.Type), tag.Counter)
	if err != nil {
		err := fmt.Errorf("could not store tag: %w", err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *RepoImpl) GetByType(ctx context.Context, userId int, tagType Type) ([]Tag, error) {
	query := "SELECT id, name, type, counter FROM tag WHERE user_id = ? AND type = ? ORDER BY counter DESC, name"
	rows, err := r.db.QueryContext(ctx, query, userId, string(tagType))
	if err != nil {
		err := fmt.Errorf("could not query tags: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var tags []Tag
	for rows.Next() {
		var tag Tag
		var tagType string
		if err := rows.Scan(&tag.ID, &tag.Name, &tagType, &tag.Counter); err != nil {
			err := fmt.Errorf("could not scan tag: %w", err)
			log.Error(err)
			return nil, err
		}
		tag.Type = Type(tagType)
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return tags, nil
}

func (r *RepoImpl) FindByName(ctx context.Context, userId int, name string, tagType Type) (Tag, error) {
	query := "SELECT id, name, type, counter FROM tag WHERE user_id = ? AND name = ? AND type = ?"
	row := r.db.QueryRowContext(ctx, query, userId, name, string(tagType))
	var tag Tag
	var typeString string
	if err := row.Scan(&tag.ID, &tag.Name, &typeString, &tag.Counter); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Tag{}, ErrNotFound
		}
		err := fmt.Errorf("could not scan tag: %w", err)
		log.Error(err)
		return Tag{}, err
	}
	tag.Type = Type(typeString)
	return tag, nil
}

func (r *RepoImpl) Update(ctx context.Context, userId int, tag Tag) (bool, error) {
	query := "UPDATE tag SET name = ? WHERE id = ? AND user_id = ?"
	result, err := r.db.ExecContext(ctx, query, tag.Name, tag.ID, userId)
	if err != nil {
		err := fmt.Errorf("could not update tag: %w", err)
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
	query := "DELETE FROM tag WHERE id = ? AND user_id = ?"
	result, err := r.db.ExecContext(ctx, query, id, userId)
	if err != nil {
		err := fmt.Errorf("could not delete tag: %w", err)
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

func (r *RepoImpl) IncrementCounter(ctx context.Context, id string) error {
	query := "UPDATE tag SET counter = counter + 1 WHERE id = ?"
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		err := fmt.Errorf("could not increment tag counter: %w", err)
		log.Error(err)
		return err
	}
	return nil
}
