package feedback

import "context"

type StoreAPI interface {
	CreateFeedback(ctx context.Context, item NewItem) (Item, error)
	ListFeedback(ctx context.Context) ([]Item, error)
	DeleteFeedback(ctx context.Context, id int64) error
}
