package book

import (
	"context"
	"time"
)

// EventType 图书变更事件类型(同时作为消息路由键)
type EventType string

const (
	EventCreated EventType = "book.created"
	EventUpdated EventType = "book.updated"
	EventDeleted EventType = "book.deleted"
)

// Event 图书变更事件
// 删除事件的Book为nil,只携带BookID
type Event struct {
	Type       EventType
	BookID     int
	Book       *Book
	OccurredAt time.Time
}

// NewEvent 创建事件
func NewEvent(eventType EventType, id int, b *Book) Event {
	return Event{
		Type:       eventType,
		BookID:     id,
		Book:       b.Clone(),
		OccurredAt: time.Now(),
	}
}

// NopPublisher 未启用消息队列时的空实现
type NopPublisher struct{}

// Publish 丢弃事件
func (NopPublisher) Publish(context.Context, Event) error {
	return nil
}
