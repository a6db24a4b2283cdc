package feedback

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("feedback not found")

type Item struct {
	ID        int64     `json:"id"`
	FromName  string    `json:"fromName"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

type NewItem struct {
	FromName string `json:"fromName"`
	Message  string `json:"message"`
}
