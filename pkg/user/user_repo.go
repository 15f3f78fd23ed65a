package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
)

var ErrUserNotFound = errors.New("user not found")

type Repo interface {
	Store(ctx context.Context, user User) (int, error)
	FindByUid(ctx context.Context, uid string) (User, error)
	FindByUsername(ctx context.Context, username string) (User, error)
	GetAll(ctx context.Context) ([]User, error)
	Delete(ctx context.Context, uid string) (bool, error)
}

type RepoImpl struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *RepoImpl {
	return &RepoImpl{db: db}
}

func (r *RepoImpl) Store(ctx context.Context, user User) (int, error) {
	query := "INSERT INTO users (uid, username, display_name) VALUES (?, ?, ?)"
	result, err := r.db.ExecContext(ctx, query, user.Uid, user.Username, user.DisplayName)
	if err != nil {
		err := fmt.Errorf("could not store user: %w", err)
		log.Error(err)
		return 0, err
	}
	lastInsertID, err := result.LastInsertId()
	if err != nil {
		err := fmt.Errorf("could not retrieve last insert id: %w", err)
		log.Error(err)
		return 0, err
	}
	return int(lastInsertID), nil
}

func (r *RepoImpl) FindByUid(ctx context.Context, uid string) (User, error) {
	query := "SELECT id, uid, username, display_name FROM users WHERE uid = ?"
	row := r.db.QueryRowContext(ctx, query, uid)
	var user User
	if err := row.Scan(&user.Id, &user.Uid, &user.Username, &user.DisplayName); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		err := fmt.Errorf("could not scan user: %w", err)
		log.Error(err)
		return User{}, err
	}
	return user, nil
}

func (r *RepoImpl) FindByUsername(ctx context.Context, username string) (User, error) {
	query := "SELECT id, uid, username, display_name FROM users WHERE username = ?"
	row := r.db.QueryRowContext(ctx, query, username)
	var user User
	if err := row.Scan(&user.Id, &user.Uid, &user.Username, &user.DisplayName); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		err := fmt.Errorf("could not scan user: %w", err)
		log.Error(err)
		return User{}, err
	}
	return user, nil
}

func (r *RepoImpl) GetAll(ctx context.Context) ([]User, error) {
	query := "SELECT id, uid, username, display_name FROM users ORDER BY username"
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query users: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var user User
		if err := rows.Scan(&user.Id, &user.Uid, &user.Username, &user.DisplayName); err != nil {
			err := fmt.Errorf("could not scan user: %w", err)
			log.Error(err)
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return users, nil
}

func (r *RepoImpl) Delete(ctx context.Context, uid string) (bool, error) {
	query := "DELETE FROM users WHERE uid = ?"
	result, err := r.db.ExecContext(ctx, query, uid)
	if err != nil {
		err := fmt.Errorf("could not delete user: %w", err)
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
