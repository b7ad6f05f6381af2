package input

// Subscription 一次订阅
// Close 释放订阅，可重复调用
type Subscription struct {
	hub    *Hub
	id     uint64
	closed bool
}

// Close 取消订阅
func (s *Subscription) Close() error {
	if s == nil || s.closed {
		return nil
	}
	s.closed = true
	s.hub.remove(s.id)
	return nil
}

// Active 订阅是否仍然有效
func (s *Subscription) Active() bool {
	return s != nil && !s.closed
}

type entry struct {
	id      uint64
	dead    bool
	pointer PointerListener
	wheel   WheelListener
	scroll  ScrollListener
}

// Hub 事件分发中心
// 分发时按订阅顺序同步调用；监听函数中增删订阅是安全的，
// 本轮分发使用开始时的快照，被取消的订阅不会再收到事件
type Hub struct {
	nextID  uint64
	entries []*entry
}

// NewHub 创建事件分发中心
func NewHub() *Hub {
	return &Hub{}
}

func (h *Hub) add(e *entry) *Subscription {
	h.nextID++
	e.id = h.nextID
	h.entries = append(h.entries, e)
	return &Subscription{hub: h, id: e.id}
}

func (h *Hub) remove(id uint64) {
	for i, e := range h.entries {
		if e.id == id {
			e.dead = true
			h.entries = append(h.entries[:i:i], h.entries[i+1:]...)
			return
		}
	}
}

// SubscribePointer 订阅指针事件
func (h *Hub) SubscribePointer(l PointerListener) *Subscription {
	return h.add(&entry{pointer: l})
}

// SubscribeWheel 订阅滚轮事件
func (h *Hub) SubscribeWheel(l WheelListener) *Subscription {
	return h.add(&entry{wheel: l})
}

// SubscribeScroll 订阅视口滚动事件
func (h *Hub) SubscribeScroll(l ScrollListener) *Subscription {
	return h.add(&entry{scroll: l})
}

func (h *Hub) snapshot() []*entry {
	return append([]*entry(nil), h.entries...)
}

// DispatchPointer 分发指针事件
func (h *Hub) DispatchPointer(ev PointerEvent) {
	for _, e := range h.snapshot() {
		if e.pointer != nil && !e.dead {
			e.pointer(ev)
		}
	}
}

// DispatchWheel 分发滚轮事件
func (h *Hub) DispatchWheel(ev WheelEvent) {
	for _, e := range h.snapshot() {
		if e.wheel != nil && !e.dead {
			e.wheel(ev)
		}
	}
}

// DispatchScroll 分发滚动事件
func (h *Hub) DispatchScroll(ev ScrollEvent) {
	for _, e := range h.snapshot() {
		if e.scroll != nil && !e.dead {
			e.scroll(ev)
		}
	}
}

// PointerListenerCount 当前指针监听数量
func (h *Hub) PointerListenerCount() int {
	n := 0
	for _, e := range h.entries {
		if e.pointer != nil {
			n++
		}
	}
	return n
}

// ScrollListenerCount 当前滚动监听数量
func (h *Hub) ScrollListenerCount() int {
	n := 0
	for _, e := range h.entries {
		if e.scroll != nil {
			n++
		}
	}
	return n
}

// ListenerCount 当前订阅总数
func (h *Hub) ListenerCount() int {
	return len(h.entries)
}
