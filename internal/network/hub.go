// Package network содержит хаб рассылки кадров веб-зрителям.
package network

import (
	"sync"

	"github.com/leoxie2000/nuggets-hemlock-main/pkg/api"
)

// Broadcaster занимается только раздачей кадров подписчикам.
// Игровая горутина публикует, горутины зрителей читают; буферизованные
// каналы и неблокирующая отправка гарантируют, что медленный зритель
// не затормозит игру.
type Broadcaster struct {
	mu sync.RWMutex
	// Мапа: ID сессии зрителя -> личный канал.
	subscribers map[string]chan api.ViewerFrame

	// Последний кадр; новый подписчик получает его сразу, не дожидаясь
	// следующего изменения состояния. Его же отдает /debug/game.
	last    api.ViewerFrame
	hasLast bool
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[string]chan api.ViewerFrame),
	}
}

// Register создает личный канал для сессии зрителя.
func (b *Broadcaster) Register(sessionID string) chan api.ViewerFrame {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Если канал был, закрываем.
	if old, ok := b.subscribers[sessionID]; ok {
		close(old)
	}

	ch := make(chan api.ViewerFrame, 16)
	if b.hasLast {
		ch <- b.last
	}
	b.subscribers[sessionID] = ch
	return ch
}

// Unregister удаляет подписчика.
func (b *Broadcaster) Unregister(sessionID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if ch, ok := b.subscribers[sessionID]; ok {
		close(ch)
		delete(b.subscribers, sessionID)
	}
}

// Publish отправляет кадр всем подписчикам. Переполненный канал
// пропускает кадр - зритель догонит на следующем.
func (b *Broadcaster) Publish(frame api.ViewerFrame) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.last = frame
	b.hasLast = true

	for _, ch := range b.subscribers {
		select {
		case ch <- frame:
		default:
		}
	}
}

// Last возвращает последний опубликованный кадр.
func (b *Broadcaster) Last() (api.ViewerFrame, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.last, b.hasLast
}

// SubscriberCount возвращает количество активных подписчиков.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
