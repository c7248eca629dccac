// Package repository implements dialect-aware persistence for the users
// table. All SQL is explicit and parameterized; user-supplied values are
// never concatenated into statements.
package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/frolovda/user-registry/internal/models"
	"github.com/frolovda/user-registry/internal/storage"
)

// MutableColumns is the single source of truth for the columns a
// partial update may touch. The HTTP layer derives its recognized field
// set from the same list.
var MutableColumns = []string{"username", "email", "feature"}

const (
	sqlInsertUser = `
		INSERT INTO users (username, email, feature, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`

	sqlListUsers = `
		SELECT id, username, email, feature, created_at, updated_at
		FROM   users
		ORDER  BY id DESC`

	sqlGetUserByID = `
		SELECT id, username, email, feature, created_at, updated_at
		FROM   users
		WHERE  id = ?`

	sqlDeleteUser = `
		DELETE FROM users WHERE id = ?`
)

// Users is the production repository backed by the storage gateway.
type Users struct {
	db *storage.Storage
}

// NewUsers returns a Users repository over db.
func NewUsers(db *storage.Storage) *Users {
	return &Users{db: db}
}

// Create inserts a new user, stamping both timestamp columns with the
// current instant in the dialect format. A username or email collision
// surfaces as storage.ErrDuplicateKey.
func (r *Users) Create(ctx context.Context, username, email string, feature models.Feature) error {
	const op = "repository.users.Create"

	now := r.db.Dialect().Now()
	_, err := r.db.Exec(ctx, sqlInsertUser, username, email, feature.Column(), now, now)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// List returns all users ordered by id descending, newest first.
func (r *Users) List(ctx context.Context) ([]models.User, error) {
	const op = "repository.users.List"

	rows, err := r.db.Query(ctx, sqlListUsers)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	result := make([]models.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// GetByID returns a single user by primary key, or storage.ErrNotFound
// when no row matches.
func (r *Users) GetByID(ctx context.Context, id int64) (*models.User, error) {
	const op = "repository.users.GetByID"

	var (
		u       models.User
		feature sql.NullString
	)
	err := r.db.QueryRow(ctx, sqlGetUserByID, id).
		Scan(&u.ID, &u.Username, &u.Email, &feature, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	u.Feature = models.DecodeFeatureColumn(feature.String, feature.Valid)
	return &u, nil
}

// Update applies a partial update to the supplied columns and always
// refreshes updated_at. The SET clause touches exactly the fields that
// were provided; callers reject empty field sets before reaching here.
// Zero matched rows is not an error.
func (r *Users) Update(ctx context.Context, id int64, fields models.UpdateFields) (int64, error) {
	const op = "repository.users.Update"

	sets := make([]string, 0, len(MutableColumns)+1)
	args := make([]any, 0, len(MutableColumns)+2)

	if fields.Username != nil {
		sets = append(sets, "username = ?")
		args = append(args, *fields.Username)
	}
	if fields.Email != nil {
		sets = append(sets, "email = ?")
		args = append(args, *fields.Email)
	}
	if fields.Feature != nil {
		sets = append(sets, "feature = ?")
		args = append(args, fields.Feature.Column())
	}
	sets = append(sets, "updated_at = ?")
	args = append(args, r.db.Dialect().Now())
	args = append(args, id)

	query := fmt.Sprintf("UPDATE users SET %s WHERE id = ?", strings.Join(sets, ", "))
	affected, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return affected, nil
}

// Delete removes a user by id. Deleting a missing id succeeds with zero
// affected rows.
func (r *Users) Delete(ctx context.Context, id int64) (int64, error) {
	const op = "repository.users.Delete"

	affected, err := r.db.Exec(ctx, sqlDeleteUser, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return affected, nil
}

func scanUser(rows *sql.Rows) (models.User, error) {
	var (
		u       models.User
		feature sql.NullString
	)
	if err := rows.Scan(&u.ID, &u.Username, &u.Email, &feature, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return models.User{}, err
	}
	u.Feature = models.DecodeFeatureColumn(feature.String, feature.Valid)
	return u, nil
}
