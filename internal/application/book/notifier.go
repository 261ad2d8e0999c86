package book

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
)

// ChangeNotifier 变更提交后的旁路处理
// 1. 删除图书缓存和计数缓存（先删缓存再发事件，消费者回查时看到的是新数据）
// 2. 发布图书事件
// 任何一步失败都只记录日志
type ChangeNotifier struct {
	cache     book.Cache
	publisher book.EventPublisher
	log       *zap.Logger
}

// NewChangeNotifier 创建变更通知
func NewChangeNotifier(cache book.Cache, publisher book.EventPublisher, log *zap.Logger) *ChangeNotifier {
	return &ChangeNotifier{cache: cache, publisher: publisher, log: log}
}

// BookChanged 通知图书已变更
func (n *ChangeNotifier) BookChanged(ctx context.Context, eventType string, b *book.Book) {
	if err := n.cache.DeleteBook(ctx, b.ID); err != nil {
		n.log.Warn("删除图书缓存失败", zap.Uint("book_id", b.ID), zap.Error(err))
	}
	if eventType != book.EventUpdated {
		if err := n.cache.DeleteCount(ctx); err != nil {
			n.log.Warn("删除计数缓存失败", zap.Error(err))
		}
	}

	event := book.NewEvent(uuid.NewString(), eventType, b)
	if err := n.publisher.Publish(ctx, event); err != nil {
		n.log.Warn("发布图书事件失败",
			zap.String("event_id", event.ID),
			zap.String("type", eventType),
			zap.Uint("book_id", b.ID),
			zap.Error(err))
	}
}
