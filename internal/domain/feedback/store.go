package feedback

import (
	"context"

	"hrportal/internal/platform/querier"
)

type Store struct {
	DB querier.Querier
}

func NewStore(db querier.Querier) *Store {
	return &Store{DB: db}
}

func (s *Store) CreateFeedback(ctx context.Context, item NewItem) (Item, error) {
	var out Item
	err := s.DB.QueryRow(ctx, `
    INSERT INTO feedback (from_name, message)
    VALUES ($1,$2)
    RETURNING id, from_name, message, created_at
  `, item.FromName, item.Message).Scan(&out.ID, &out.FromName, &out.Message, &out.CreatedAt)
	return out, err
}

func (s *Store) ListFeedback(ctx context.Context) ([]Item, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, from_name, message, created_at
    FROM feedback
    ORDER BY created_at DESC, id DESC
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []Item{}
	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ID, &item.FromName, &item.Message, &item.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *Store) DeleteFeedback(ctx context.Context, id int64) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM feedback WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
