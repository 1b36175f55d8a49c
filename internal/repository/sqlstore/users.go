package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ghiffarsabda/kormimvp/internal/apperror"
	"github.com/ghiffarsabda/kormimvp/internal/model"
	"github.com/ghiffarsabda/kormimvp/internal/repository"
)

var _ repository.UserRepository = (*UserDB)(nil)

type UserDB struct {
	db *DB
}

const userColumns = `id, username, password_hash, created_at`

func scanUser(s scanner, u *model.User) error {
	return s.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
}

// Create inserts the user. A taken username surfaces as apperror.ErrConflict
// through the table's UNIQUE constraint.
func (r *UserDB) Create(ctx context.Context, user *model.User) error {
	user.CreatedAt = r.db.clock()

	id, err := r.db.insert(ctx,
		`INSERT INTO users (username, password_hash, created_at) VALUES (?, ?, ?)`,
		user.Username, user.PasswordHash, user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("user", "username "+user.Username)
		}
		return fmt.Errorf("sqlstore: inserting user %q: %w", user.Username, err)
	}
	user.ID = id
	return nil
}

func (r *UserDB) GetByID(ctx context.Context, id int) (*model.User, error) {
	var u model.User
	err := scanUser(r.db.queryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id), &u)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("user", id)
	}
	if err != nil {
		return nil, fmt.Errorf("sqlstore: getting user %d: %w", id, err)
	}
	return &u, nil
}

func (r *UserDB) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	err := scanUser(r.db.queryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username), &u)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &apperror.AppError{
			Err:     apperror.ErrNotFound,
			Message: "user not found with username " + username,
		}
	}
	if err != nil {
		return nil, fmt.Errorf("sqlstore: getting user %q: %w", username, err)
	}
	return &u, nil
}

func (r *UserDB) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.db.query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: listing users: %w", err)
	}
	return collect(rows, scanUser)
}

// Update replaces username and password hash. CreatedAt is read back from the
// stored row.
func (r *UserDB) Update(ctx context.Context, user *model.User) error {
	res, err := r.db.exec(ctx,
		`UPDATE users SET username = ?, password_hash = ? WHERE id = ?`,
		user.Username, user.PasswordHash, user.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("user", "username "+user.Username)
		}
		return fmt.Errorf("sqlstore: updating user %d: %w", user.ID, err)
	}
	if err := affected(res, apperror.NotFound("user", user.ID)); err != nil {
		return err
	}
	return r.db.createdAt(ctx, "users", user.ID, &user.CreatedAt)
}

func (r *UserDB) Delete(ctx context.Context, id int) error {
	res, err := r.db.exec(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlstore: deleting user %d: %w", id, err)
	}
	return affected(res, apperror.NotFound("user", id))
}
