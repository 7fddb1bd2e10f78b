package cache

// lruNode is an element of lruList. It carries its key so eviction can
// delete the map entry without a search.
type lruNode[K comparable] struct {
	key          K
	newer, older *lruNode[K]
}

// lruList orders keys by recency on a ring around a sentinel root:
// root.older is the most recent node and root.newer the least recent.
// The zero value is an empty list. It is not safe for concurrent use.
type lruList[K comparable] struct {
	root lruNode[K]
	n    int
}

func (l *lruList[K]) ring() *lruNode[K] {
	if l.root.older == nil {
		l.root.older = &l.root
		l.root.newer = &l.root
	}
	return &l.root
}

func (l *lruList[K]) Len() int { return l.n }

// PushFront inserts key as the most recently used node.
func (l *lruList[K]) PushFront(key K) *lruNode[K] {
	node := &lruNode[K]{key: key}
	l.insertAfterRoot(node)
	return node
}

// MoveToFront marks node as the most recently used.
func (l *lruList[K]) MoveToFront(node *lruNode[K]) {
	if l.ring().older == node {
		return
	}
	l.Remove(node)
	l.insertAfterRoot(node)
}

// Remove takes node off the ring.
func (l *lruList[K]) Remove(node *lruNode[K]) {
	node.newer.older = node.older
	node.older.newer = node.newer
	node.newer, node.older = nil, nil
	l.n--
}

// RemoveOldest takes the least recently used node off the ring and
// returns its key.
func (l *lruList[K]) RemoveOldest() (K, bool) {
	root := l.ring()
	if root.newer == root {
		var zero K
		return zero, false
	}
	node := root.newer
	l.Remove(node)
	return node.key, true
}

func (l *lruList[K]) insertAfterRoot(node *lruNode[K]) {
	root := l.ring()
	node.newer = root
	node.older = root.older
	root.older.newer = node
	root.older = node
	l.n++
}
