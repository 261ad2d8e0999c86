package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/pkg/mq"
)

// AuditRoutingKeys 审计消费者订阅全部图书事件
var AuditRoutingKeys = []string{"book.*"}

// NewAuditHandler 每个图书事件写一行审计日志
// 无法解析的消息直接丢弃（重投也不会成功）
func NewAuditHandler(log *zap.Logger) mq.Handler {
	return func(_ context.Context, routingKey string, body []byte) error {
		var event book.Event
		if err := json.Unmarshal(body, &event); err != nil {
			return fmt.Errorf("%w: 无法解析图书事件: %v", mq.ErrDrop, err)
		}
		if event.Type != routingKey {
			return fmt.Errorf("%w: 事件类型%q与routing key%q不一致", mq.ErrDrop, event.Type, routingKey)
		}

		fields := []zap.Field{
			zap.String("event_id", event.ID),
			zap.String("type", event.Type),
			zap.Uint("book_id", event.BookID),
			zap.Time("occurred_at", event.OccurredAt),
		}
		if event.Type != book.EventDeleted {
			fields = append(fields, zap.String("titre", event.Title), zap.String("auteur", event.Author))
			if event.Price != nil {
				fields = append(fields, zap.String("prix", event.Price.StringFixed(book.PriceScale)))
			}
		}
		log.Info("图书变更", fields...)
		return nil
	}
}
