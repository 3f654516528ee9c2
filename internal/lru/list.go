package lru

// node is an element of list. It carries its key so an evicted node can be
// removed from the owning map.
type node[K comparable] struct {
	key        K
	prev, next *node[K]
}

// list orders keys by recency: front is the most recently used entry,
// back the eviction candidate. Not safe for concurrent use.
type list[K comparable] struct {
	front, back *node[K]
	n           int
}

func (l *list[K]) len() int { return l.n }

// pushFront inserts key as the most recently used entry.
func (l *list[K]) pushFront(key K) *node[K] {
	e := &node[K]{key: key}
	l.linkFront(e)
	return e
}

// touch marks e as most recently used.
func (l *list[K]) touch(e *node[K]) {
	if e == l.front {
		return
	}
	l.unlink(e)
	l.linkFront(e)
}

// popBack removes the least recently used entry.
func (l *list[K]) popBack() (K, bool) {
	if l.back == nil {
		var zero K
		return zero, false
	}
	e := l.back
	l.unlink(e)
	return e.key, true
}

func (l *list[K]) remove(e *node[K]) {
	l.unlink(e)
}

func (l *list[K]) reset() {
	l.front, l.back, l.n = nil, nil, 0
}

func (l *list[K]) linkFront(e *node[K]) {
	e.prev = nil
	e.next = l.front
	if l.front != nil {
		l.front.prev = e
	}
	l.front = e
	if l.back == nil {
		l.back = e
	}
	l.n++
}

func (l *list[K]) unlink(e *node[K]) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		l.front = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		l.back = e.prev
	}
	e.prev, e.next = nil, nil
	l.n--
}
