package feedback

import (
	"context"
	"strings"
)

type Service struct {
	Store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{Store: store}
}

func Validate(item NewItem) map[string]string {
	issues := map[string]string{}
	if strings.TrimSpace(item.FromName) == "" {
		issues["fromName"] = "Name is required"
	}
	if strings.TrimSpace(item.Message) == "" {
		issues["message"] = "Message is required"
	}
	return issues
}

func (s *Service) Submit(ctx context.Context, item NewItem) (Item, error) {
	item.FromName = strings.TrimSpace(item.FromName)
	item.Message = strings.TrimSpace(item.Message)
	return s.Store.CreateFeedback(ctx, item)
}

func (s *Service) List(ctx context.Context) ([]Item, error) {
	return s.Store.ListFeedback(ctx)
}

// MarkRead removes an item; HR has no other use for feedback once read.
func (s *Service) MarkRead(ctx context.Context, id int64) error {
	return s.Store.DeleteFeedback(ctx, id)
}
