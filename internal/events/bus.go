package events

import "sync"

// Bus 是简单的发布订阅，订阅者消费过慢时丢弃新事件，不阻塞发布方。
type Bus[T any] struct {
	mu     sync.Mutex
	subs   []chan T
	buffer int
	closed bool
}

// NewBus 创建总线，buffer 为每个订阅者的缓冲长度，<=0 时取 32。
func NewBus[T any](buffer int) *Bus[T] {
	if buffer <= 0 {
		buffer = 32
	}
	return &Bus[T]{buffer: buffer}
}

func (b *Bus[T]) Subscribe() <-chan T {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		ch := make(chan T)
		close(ch)
		return ch
	}
	ch := make(chan T, b.buffer)
	b.subs = append(b.subs, ch)
	return ch
}

// Publish 返回被丢弃的订阅者数量。
func (b *Bus[T]) Publish(evt T) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return 0
	}
	dropped := 0
	for _, ch := range b.subs {
		select {
		case ch <- evt:
		default:
			dropped++
		}
	}
	return dropped
}

func (b *Bus[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	for _, ch := range b.subs {
		close(ch)
	}
	b.closed = true
}
