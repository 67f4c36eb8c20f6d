package minify

import "sync"

// offsetMapPool recycles offsetMap backing arrays across compress calls.
// The offset map is the match finder's one heap allocation; it is scoped
// to one call and released on every exit path.
var offsetMapPool = sync.Pool{
	New: func() any {
		return &offsetMap{}
	},
}

func acquireOffsetMap(n int) *offsetMap {
	m := offsetMapPool.Get().(*offsetMap)
	capacity := minArenaChunks
	if v := arenaNumerator * n / arenaDivisor; v > capacity {
		capacity = v
	}
	if cap(m.pairHead) < 1<<16 {
		m.pairHead = make([]int32, 1<<16)
	} else {
		m.pairHead = m.pairHead[:1<<16]
	}
	for i := range m.pairHead {
		m.pairHead[i] = invalidPairHead
	}
	if cap(m.chunks) < capacity {
		m.chunks = make([]offsetChunk, 0, capacity)
	} else {
		m.chunks = m.chunks[:0]
	}
	return m
}

func releaseOffsetMap(m *offsetMap) {
	if m == nil {
		return
	}
	offsetMapPool.Put(m)
}
