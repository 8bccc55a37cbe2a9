package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"jewelry-store/internal/entity"
)

const mysqlDuplicateEntry = 1062

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db}
}

const userColumns = `id, username, first_name, last_name, email, phone_number, password, type, status, created_at, updated_at`

func scanUser(row interface{ Scan(...interface{}) error }) (*entity.User, error) {
	var user entity.User
	err := row.Scan(&user.ID, &user.Username, &user.FirstName, &user.LastName, &user.Email,
		&user.Phone, &user.Password, &user.Type, &user.Status, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = ?`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %q: %w", username, entity.ErrNotFound)
		}
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %d: %w", id, entity.ErrNotFound)
		}
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) List(ctx context.Context) ([]*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

func (r *UserRepository) Create(ctx context.Context, user *entity.User) (*entity.User, error) {
	query := `INSERT INTO users (username, first_name, last_name, email, phone_number, password, type, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query, user.Username, user.FirstName, user.LastName,
		user.Email, user.Phone, user.Password, user.Type, user.Status)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return nil, fmt.Errorf("username %q: %w", user.Username, entity.ErrConflict)
		}
		return nil, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, int(id))
}

func (r *UserRepository) Update(ctx context.Context, user *entity.User) (*entity.User, error) {
	query := `UPDATE users SET username = ?, first_name = ?, last_name = ?, email = ?, phone_number = ?, password = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query, user.Username, user.FirstName, user.LastName,
		user.Email, user.Phone, user.Password, user.ID)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return nil, fmt.Errorf("username %q: %w", user.Username, entity.ErrConflict)
		}
		return nil, err
	}

	// RowsAffected is 0 both for a missing row and for a no-op update, so
	// reload instead; GetByID reports ErrNotFound for the former.
	return r.GetByID(ctx, user.ID)
}

func (r *UserRepository) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("user %d: %w", id, entity.ErrNotFound)
	}
	return nil
}
