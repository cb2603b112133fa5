package paging

// recencyEntry is one resident page in the recency list.
type recencyEntry struct {
	key      PageKey
	lastUsed int64         // clock of the last access or insertion
	prev     *recencyEntry // towards least recently used
	next     *recencyEntry // towards most recently used
}

// recencyList tracks resident pages ordered from least to most recently used.
// It holds exactly the pages currently in RAM.
type recencyList struct {
	entries map[PageKey]*recencyEntry
	head    *recencyEntry // least recently used
	tail    *recencyEntry // most recently used
}

func newRecencyList(capacity int) *recencyList {
	return &recencyList{entries: make(map[PageKey]*recencyEntry, capacity)}
}

// touch stamps key with now and moves it to the most-recent end,
// inserting it if it is not tracked yet. Callers pass a non-decreasing now.
func (l *recencyList) touch(key PageKey, now int64) {
	e, ok := l.entries[key]
	if !ok {
		e = &recencyEntry{key: key}
		l.entries[key] = e
	} else {
		if l.tail == e {
			e.lastUsed = now
			return
		}
		l.unlink(e)
	}
	e.lastUsed = now
	l.pushBack(e)
}

// remove drops key from the list. Reports whether it was tracked.
func (l *recencyList) remove(key PageKey) bool {
	e, ok := l.entries[key]
	if !ok {
		return false
	}
	l.unlink(e)
	delete(l.entries, key)
	return true
}

// oldest returns the least recently used key.
func (l *recencyList) oldest() (PageKey, bool) {
	if l.head == nil {
		return PageKey{}, false
	}
	return l.head.key, true
}

func (l *recencyList) stamp(key PageKey) (int64, bool) {
	e, ok := l.entries[key]
	if !ok {
		return 0, false
	}
	return e.lastUsed, true
}

func (l *recencyList) contains(key PageKey) bool {
	_, ok := l.entries[key]
	return ok
}

func (l *recencyList) len() int {
	return len(l.entries)
}

// pushBack appends e at the most-recent end.
func (l *recencyList) pushBack(e *recencyEntry) {
	e.next = nil
	// either both head and tail are nil, or neither is
	if l.tail != nil {
		l.tail.next = e
		e.prev = l.tail
		l.tail = e
	} else {
		l.head = e
		l.tail = e
		e.prev = nil
	}
}

// unlink detaches e from its neighbours.
func (l *recencyList) unlink(e *recencyEntry) {
	if e.prev != nil {
		// a - e - b => a - b
		e.prev.next = e.next
	} else {
		// e - b => b
		l.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		// a - e => a
		l.tail = e.prev
	}
	e.next = nil
	e.prev = nil
}
