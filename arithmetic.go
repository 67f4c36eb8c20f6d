package minify

// Adaptive binary arithmetic coder: a standard Witten-Neal-Cleary range
// coder with E1/E2/E3 renormalisation over 32-bit registers, sharing
// one probabilityModel between encoder and decoder so both sides see
// bit-identical (p0, p1) pairs before each update.
//
// Each byte is coded low-bit-first, 8 bits. The decoder knows the exact
// output length up front (the container's payloadLen), so no in-band
// sentinel bit is needed to mark byte boundaries.

const (
	arithHalf   = uint32(0x80000000)
	arithFirstQ = uint32(0x40000000)
	arithThirdQ = uint32(0xC0000000)
)

type arithmeticEncoder struct {
	model   *probabilityModel
	low     uint32
	high    uint32
	pending uint32
	out     *BitEmitter
}

func newArithmeticEncoder(out *BitEmitter, window int) *arithmeticEncoder {
	return &arithmeticEncoder{
		model: newProbabilityModel(window),
		low:   0,
		high:  0xFFFFFFFF,
		out:   out,
	}
}

// emitWithPending emits bit, then `pending` copies of its complement,
// resetting pending to 0.
func (e *arithmeticEncoder) emitWithPending(bit uint32) {
	e.out.EmitBit(bit)
	opp := bit ^ 1
	for ; e.pending > 0; e.pending-- {
		e.out.EmitBit(opp)
	}
}

func (e *arithmeticEncoder) renormalise() {
	for {
		switch {
		case e.high < arithHalf:
			e.emitWithPending(0)
		case e.low >= arithHalf:
			e.emitWithPending(1)
			e.low -= arithHalf
			e.high -= arithHalf
		case e.low >= arithFirstQ && e.high < arithThirdQ:
			e.pending++
			e.low -= arithFirstQ
			e.high -= arithFirstQ
		default:
			return
		}
		e.low <<= 1
		e.high = e.high<<1 | 1
	}
}

func (e *arithmeticEncoder) encodeBit(bit uint32) {
	p0, p1 := e.model.probs()
	rng := uint64(e.high-e.low) + 1
	mid := e.low + uint32((rng*uint64(p0))/uint64(p0+p1)) - 1
	if bit == 0 {
		e.high = mid
	} else {
		e.low = mid + 1
	}
	e.model.update(bit)
	e.renormalise()
}

func (e *arithmeticEncoder) encodeByte(b byte) {
	for i := 0; i < 8; i++ {
		e.encodeBit(uint32(b>>uint(i)) & 1)
	}
}

// finish emits the final disambiguating bits and flushes the bit emitter,
// returning the number of output bytes written.
func (e *arithmeticEncoder) finish() int {
	e.pending++
	if e.low < arithFirstQ {
		e.emitWithPending(0)
	} else {
		e.emitWithPending(1)
	}
	return e.out.EmitTail()
}

type arithmeticDecoder struct {
	model *probabilityModel
	low   uint32
	high  uint32
	value uint32
	in    *BitStream
}

func newArithmeticDecoder(in *BitStream, window int) *arithmeticDecoder {
	d := &arithmeticDecoder{
		model: newProbabilityModel(window),
		low:   0,
		high:  0xFFFFFFFF,
		in:    in,
	}
	d.value = in.GetBits(32)
	return d
}

func (d *arithmeticDecoder) renormalise() {
	for {
		switch {
		case d.high < arithHalf:
		case d.low >= arithHalf:
			d.low -= arithHalf
			d.high -= arithHalf
			d.value -= arithHalf
		case d.low >= arithFirstQ && d.high < arithThirdQ:
			d.low -= arithFirstQ
			d.high -= arithFirstQ
			d.value -= arithFirstQ
		default:
			return
		}
		d.low <<= 1
		d.high = d.high<<1 | 1
		d.value = d.value<<1 | d.in.GetOneBit()
	}
}

func (d *arithmeticDecoder) decodeBit() uint32 {
	p0, p1 := d.model.probs()
	rng := uint64(d.high-d.low) + 1
	mid := d.low + uint32((rng*uint64(p0))/uint64(p0+p1)) - 1
	var bit uint32
	if d.value <= mid {
		bit = 0
		d.high = mid
	} else {
		bit = 1
		d.low = mid + 1
	}
	d.model.update(bit)
	d.renormalise()
	return bit
}

func (d *arithmeticDecoder) decodeByte() byte {
	var b byte
	for i := 0; i < 8; i++ {
		b |= byte(d.decodeBit()) << uint(i)
	}
	return b
}

// arithmeticEncode arithmetic-encodes src under the given window size,
// returning the encoded bytes. The output buffer is sized generously: the
// coder can expand input marginally during renormalisation bursts.
func arithmeticEncode(src []byte, window int) []byte {
	buf := make([]byte, len(src)*2+64)
	emitter := NewBitEmitter(buf)
	enc := newArithmeticEncoder(emitter, window)
	for _, b := range src {
		enc.encodeByte(b)
	}
	n := enc.finish()
	return buf[:n]
}

// arithmeticDecode decodes exactly len(dst) bytes from src into dst.
func arithmeticDecode(dst, src []byte, window int) {
	stream := NewBitStream(src)
	dec := newArithmeticDecoder(stream, window)
	for i := range dst {
		dst[i] = dec.decodeByte()
	}
}
