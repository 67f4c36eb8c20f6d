package minify

// Match finder: parses an input buffer once into a sequence of
// Literal/Match events whose encoded bit cost is near-minimal, using a
// byte-pair hash-chain offset map plus the packet codec's last-four ring
// for LONGREP/SHORTREP candidates.

type matchFinder struct {
	buf []byte
	m   *offsetMap
}

func newMatchFinder(buf []byte) *matchFinder {
	return &matchFinder{buf: buf, m: acquireOffsetMap(len(buf))}
}

func (mf *matchFinder) release() {
	releaseOffsetMap(mf.m)
	mf.m = nil
}

// candidate is one scored match/rep option at a given position.
type candidate struct {
	length    int
	distance  uint32
	lastIndex int // -1 for a fresh MATCH, 0..3 for a ring reuse
	score     int
	followOK  bool // byte after the match equals the byte at the match's source sibling
}

// matchLengthAt returns how many bytes starting at pos match the bytes
// starting at pos-distance, capped at maxMatchLen and by buffer end.
func matchLengthAt(buf []byte, pos int, distance uint32) int {
	src := pos - int(distance)
	if src < 0 {
		return 0
	}
	n := len(buf) - pos
	if n > maxMatchLen {
		n = maxMatchLen
	}
	length := 0
	for length < n && buf[src+length] == buf[pos+length] {
		length++
	}
	return length
}

// scoreMatch computes bits_if_literal - bits_if_match for a fresh MATCH
// candidate, rejecting the edge cases that cost more than the equivalent
// literals.
func scoreMatch(length int, distance uint32) (score int, ok bool) {
	if length == 3 && distance > 1<<11 {
		return 0, false
	}
	if length == 4 && distance > 1<<13 {
		return 0, false
	}
	return literalCost(length) - matchCost(length, distance), true
}

func scoreRep(length int, lastIndex int) int {
	if length == 1 && lastIndex == 0 {
		return literalCost(1) - (4) // SHORTREP: 4-bit prefix, no length/distance bits
	}
	return literalCost(length) - longrepCost(length, lastIndex)
}

// better reports whether candidate a should be preferred over b: higher
// score; then "followed by a byte equal to its source-position sibling"
// (SHORTREP-enabling); then shorter distance; then smaller last-four index.
func better(a, b candidate) bool {
	if a.score != b.score {
		return a.score > b.score
	}
	if a.followOK != b.followOK {
		return a.followOK
	}
	if a.distance != b.distance {
		return a.distance < b.distance
	}
	return a.lastIndex < b.lastIndex
}

// find is the match finder's per-position query: best fresh-MATCH
// candidate, best LONGREP/SHORTREP candidate per ring entry, and a
// run-length probe for constant regions, combined by the tie-break rules
// in better.
func (mf *matchFinder) find(pos int, ring *distanceRing) (candidate, bool) {
	buf := mf.buf
	have := false
	var best candidate

	consider := func(c candidate) {
		if c.length < 1 {
			return
		}
		if pos+c.length < len(buf) {
			srcSibling := pos - int(c.distance) + c.length
			c.followOK = srcSibling >= 0 && srcSibling < len(buf) && buf[srcSibling] == buf[pos+c.length]
		}
		if !have || better(c, best) {
			best = c
			have = true
		}
	}

	if pos+1 < len(buf) {
		it := mf.m.chain(buf, pos)
		for p, ok := it.next(); ok; p, ok = it.next() {
			distance := uint32(pos - p)
			length := matchLengthAt(buf, pos, distance)
			if length < minMatchLen {
				continue
			}
			if score, ok2 := scoreMatch(length, distance); ok2 {
				consider(candidate{length: length, distance: distance, lastIndex: -1, score: score})
			}
		}
	}

	for i := 0; i < ringSize; i++ {
		distance := ring.at(i)
		if distance == 0 {
			continue
		}
		length := matchLengthAt(buf, pos, distance)
		minLen := minMatchLen
		if i == 0 {
			minLen = 1
		}
		if length < minLen {
			continue
		}
		consider(candidate{length: length, distance: distance, lastIndex: i, score: scoreRep(length, i)})
	}

	// Run-length extension: in a constant region, prefer the shortest
	// viable distance (distance 1), which shrinks the distance code.
	if pos > 0 && buf[pos] == buf[pos-1] {
		length := matchLengthAt(buf, pos, 1)
		if length >= minMatchLen {
			if idx := ring.indexOf(1); idx >= 0 {
				consider(candidate{length: length, distance: 1, lastIndex: idx, score: scoreRep(length, idx)})
			} else if score, ok2 := scoreMatch(length, 1); ok2 {
				consider(candidate{length: length, distance: 1, lastIndex: -1, score: score})
			}
		}
	}

	return best, have
}

// insertRange inserts every position in [start,end) into the offset map.
// Every byte spanned by a just-emitted match is still indexed, so a later
// position can match back into the middle of it.
func (mf *matchFinder) insertRange(start, end int) {
	limit := len(mf.buf) - 1
	for p := start; p < end && p < limit; p++ {
		mf.m.insert(mf.buf, p)
	}
}

// parse runs the full match-finding pass over buf, producing the ordered
// event sequence the packet codec consumes. It applies a one-position
// lazy-match heuristic (deferring to pos+1 when it scores at least as
// well) and updates ring after every emitted match. The packet encoder
// keeps no ring of its own: it codes each event's LastIndex as chosen
// here, and the packet decoder's ring replays the same updates.
func (mf *matchFinder) parse(ring *distanceRing) []Event {
	buf := mf.buf
	n := len(buf)
	var events []Event

	pos := 0
	literalStart := -1

	flushLiteral := func(upTo int) {
		if literalStart >= 0 && upTo > literalStart {
			events = append(events, literalEvent(literalStart, upTo-literalStart))
		}
		literalStart = -1
	}

	for pos < n {
		cand, ok := mf.find(pos, ring)
		if !ok {
			mf.m.insert(buf, pos)
			if literalStart < 0 {
				literalStart = pos
			}
			pos++
			continue
		}

		// Lazy-match heuristic: if the best candidate at pos+1, of any kind
		// (fresh MATCH or rep), scores at least as well, emit pos as a
		// literal. The check runs whatever kind of candidate won at pos.
		if pos+1 < n {
			next, nextOK := mf.find(pos+1, ring)
			if nextOK && next.score >= cand.score {
				mf.m.insert(buf, pos)
				if literalStart < 0 {
					literalStart = pos
				}
				pos++
				continue
			}
		}

		flushLiteral(pos)
		events = append(events, matchEvent(cand.distance, cand.length, cand.lastIndex))
		ring.use(cand.distance)
		mf.insertRange(pos, pos+cand.length)
		pos += cand.length
	}
	flushLiteral(pos)

	return events
}
