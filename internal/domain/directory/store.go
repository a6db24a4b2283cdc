package directory

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"hrportal/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

const userColumns = `id, name, email, phone, username, role, hr_id, manager_id, created_at, updated_at`

func scanUser(row pgx.Row) (User, error) {
	var u User
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Phone, &u.Username, &u.Role, &u.HRID, &u.ManagerID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return User{}, err
	}
	return u, nil
}

func (s *Store) listUsers(ctx context.Context, query string, args ...any) ([]User, error) {
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *Store) ListUsersByRole(ctx context.Context, role string) ([]User, error) {
	return s.listUsers(ctx, `
    SELECT `+userColumns+`
    FROM users
    WHERE role = $1
    ORDER BY id
  `, role)
}

func (s *Store) ListUsersByManager(ctx context.Context, managerID int64) ([]User, error) {
	return s.listUsers(ctx, `
    SELECT `+userColumns+`
    FROM users
    WHERE manager_id = $1
    ORDER BY id
  `, managerID)
}

func (s *Store) GetUser(ctx context.Context, id int64) (User, error) {
	u, err := scanUser(s.DB.QueryRow(ctx, `
    SELECT `+userColumns+`
    FROM users
    WHERE id = $1
  `, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	return u, err
}

func (s *Store) CreateUser(ctx context.Context, user NewUser, passwordHash string) (User, error) {
	u, err := scanUser(s.DB.QueryRow(ctx, `
    INSERT INTO users (name, email, phone, username, password_hash, role, hr_id, manager_id)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
    RETURNING `+userColumns,
		user.Name, user.Email, user.Phone, user.Username, passwordHash, user.Role, user.HRID, user.ManagerID))
	if err != nil {
		return User{}, mapWriteError(err)
	}
	return u, nil
}

func (s *Store) UpdateUser(ctx context.Context, id int64, patch UserPatch, passwordHash string) (User, error) {
	u, err := scanUser(s.DB.QueryRow(ctx, `
    UPDATE users
    SET name = $1, email = $2, phone = $3, role = $4, username = $5, password_hash = $6,
        hr_id = $7, manager_id = $8, updated_at = now()
    WHERE id = $9
    RETURNING `+userColumns,
		patch.Name, patch.Email, patch.Phone, patch.Role, patch.Username, passwordHash, patch.HRID, patch.ManagerID, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, mapWriteError(err)
	}
	return u, nil
}

func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrUsernameTaken
	}
	return fmt.Errorf("write user: %w", err)
}
