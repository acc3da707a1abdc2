package event

import (
	"context"
	"time"

	"github.com/xiebiao/bookcatalog/internal/domain/book"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
)

// Message 图书变更事件的消息体(JSON)
type Message struct {
	Type        string    `json:"type"`
	BookID      int       `json:"bookId"`
	Title       string    `json:"title,omitempty"`
	Author      string    `json:"author,omitempty"`
	ReleaseDate string    `json:"releaseDate,omitempty"`
	OccurredAt  time.Time `json:"occurredAt"`
}

// NewMessage 领域事件 → 消息体
// 内容摘要不随事件发送,下游需要时按ID回查
func NewMessage(e book.Event) Message {
	msg := Message{
		Type:       string(e.Type),
		BookID:     e.BookID,
		OccurredAt: e.OccurredAt,
	}
	if e.Book != nil {
		msg.Title = e.Book.Title
		msg.Author = e.Book.Author
		msg.ReleaseDate = e.Book.ReleaseDate.String()
	}
	return msg
}

// Sender 消息发送接口(*mq.Publisher实现)
type Sender interface {
	Publish(ctx context.Context, routingKey string, message interface{}) error
	Exchange() string
}

// bookEventPublisher 基于RabbitMQ的图书事件发布
type bookEventPublisher struct {
	sender Sender
}

// NewBookEventPublisher 创建事件发布者
func NewBookEventPublisher(sender Sender) book.EventPublisher {
	metrics.InitMetrics()
	return &bookEventPublisher{sender: sender}
}

// Publish 以事件类型作为路由键发布
func (p *bookEventPublisher) Publish(ctx context.Context, e book.Event) error {
	err := p.sender.Publish(ctx, string(e.Type), NewMessage(e))

	metrics.IncCounterVec(metrics.MessagesPublishedTotal, map[string]string{
		"exchange":    p.sender.Exchange(),
		"routing_key": string(e.Type),
		"result":      metrics.Result(err),
	})
	return err
}
