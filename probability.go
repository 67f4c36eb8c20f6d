package minify

// probabilityModel is a sliding-window adaptive binary model: Laplace-
// smoothed counts of recent 0s and 1s, feeding the arithmetic coder. A
// small window adapts to local byte statistics far more cheaply than an
// order-0 byte model.
type probabilityModel struct {
	prob    [2]uint32
	history []byte // ring of the last `window` bits, one bit per byte slot
	head    int    // next write index, mod len(history)
	count   int    // number of valid bits currently in history
	window  int
}

// newProbabilityModel creates a model with the given sliding-window width
// in bits. window must be in [1, maxWindowSize].
func newProbabilityModel(window int) *probabilityModel {
	return &probabilityModel{
		prob:    [2]uint32{1, 1},
		history: make([]byte, window),
		window:  window,
	}
}

// probs returns the current (p0, p1) pair. Must be read before update on
// both encode and decode, with no look-ahead.
func (m *probabilityModel) probs() (uint32, uint32) {
	return m.prob[0], m.prob[1]
}

// update absorbs bit after it has been coded with the (p0, p1) from probs.
func (m *probabilityModel) update(bit uint32) {
	b := bit & 1
	m.prob[b]++
	if m.count == m.window {
		evicted := m.history[m.head]
		m.prob[evicted]--
	} else {
		m.count++
	}
	m.history[m.head] = byte(b)
	m.head++
	if m.head == m.window {
		m.head = 0
	}
}
