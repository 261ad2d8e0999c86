package book

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// 事件类型(同时作为RabbitMQ的routing key)
const (
	EventCreated = "book.created"
	EventUpdated = "book.updated"
	EventDeleted = "book.deleted"
)

// Event 图书变更事件
// 在事务提交之后发布,发布失败不影响请求结果
type Event struct {
	ID         string           `json:"id"`
	Type       string           `json:"type"`
	BookID     uint             `json:"book_id"`
	Title      string           `json:"titre,omitempty"`
	Author     string           `json:"auteur,omitempty"`
	Price      *decimal.Decimal `json:"prix,omitempty"`
	OccurredAt time.Time        `json:"occurred_at"`
}

// NewEvent 根据图书快照生成事件(删除事件只带ID)
func NewEvent(id, eventType string, b *Book) Event {
	e := Event{
		ID:         id,
		Type:       eventType,
		BookID:     b.ID,
		OccurredAt: time.Now(),
	}
	if eventType != EventDeleted {
		price := b.Price
		e.Title = b.Title
		e.Author = b.Author
		e.Price = &price
	}
	return e
}

// EventPublisher 事件发布接口
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}

// NopPublisher 不发布事件(消息队列未启用时使用)
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
