package minify

// offsetMap is the match finder's byte-pair hash-chain arena:
// pairHead[pair] holds the id of the newest
// chunk for that byte pair, or invalidPairHead. Each chunk stores up to
// chunkPositions earlier positions sharing that pair, oldest-within-chunk
// first (so traversal from the last filled slot down to 0, then following
// next, enumerates positions in strictly decreasing order). Chunks are
// allocated in a monotonic arena, never freed individually.
type offsetMap struct {
	pairHead []int32
	chunks   []offsetChunk
}

type offsetChunk struct {
	pos   [chunkPositions]int32
	count int8
	next  int32
}

// newOffsetMap allocates an offset map sized for an input of n bytes
// (chunk count max(0x10000, 2*n/15)).
func newOffsetMap(n int) *offsetMap {
	capacity := minArenaChunks
	if v := arenaNumerator * n / arenaDivisor; v > capacity {
		capacity = v
	}
	m := &offsetMap{
		pairHead: make([]int32, 1<<16),
		chunks:   make([]offsetChunk, 0, capacity),
	}
	for i := range m.pairHead {
		m.pairHead[i] = invalidPairHead
	}
	return m
}

func pairIndex(buf []byte, pos int) int {
	return int(buf[pos])<<8 | int(buf[pos+1])
}

// insert records position pos (whose byte pair is buf[pos],buf[pos+1]) in
// the chain for that pair, unless it is tombstoned: pos is skipped when
// buf[pos-1] == buf[pos] == buf[pos+1], i.e. the pair at pos is identical
// to the pair at pos-1, which is (or will be) inserted instead. This keeps
// constant byte runs out of the chains; a run-length probe at query time
// handles them instead.
func (m *offsetMap) insert(buf []byte, pos int) {
	if pos+1 >= len(buf) {
		return
	}
	if pos > 0 && buf[pos-1] == buf[pos] && buf[pos] == buf[pos+1] {
		return
	}
	pair := pairIndex(buf, pos)
	head := m.pairHead[pair]
	if head != invalidPairHead && m.chunks[head].count < chunkPositions {
		c := &m.chunks[head]
		c.pos[c.count] = int32(pos)
		c.count++
		return
	}
	id := int32(len(m.chunks))
	m.chunks = append(m.chunks, offsetChunk{count: 1, next: head})
	m.chunks[id].pos[0] = int32(pos)
	m.pairHead[pair] = id
}

// chainIterator walks a pair's chain newest-position-first.
type chainIterator struct {
	m     *offsetMap
	chunk int32
	idx   int8 // next slot to yield, counting down from chunk.count-1
}

func (m *offsetMap) chain(buf []byte, pos int) chainIterator {
	head := m.pairHead[pairIndex(buf, pos)]
	it := chainIterator{m: m, chunk: head}
	if head != invalidPairHead {
		it.idx = m.chunks[head].count - 1
	}
	return it
}

// next returns the next earlier position in the chain, or (-1, false) when
// exhausted.
func (it *chainIterator) next() (int, bool) {
	for it.chunk != invalidChunk {
		c := &it.m.chunks[it.chunk]
		if it.idx >= 0 {
			p := c.pos[it.idx]
			it.idx--
			return int(p), true
		}
		it.chunk = c.next
		if it.chunk != invalidChunk {
			it.idx = it.m.chunks[it.chunk].count - 1
		}
	}
	return 0, false
}
