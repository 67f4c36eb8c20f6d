package minify

import "math/bits"

// Packet codec: encodes/decodes the LZMA-dialect packet grammar across
// five parallel bit streams, and maintains the last-four-distance ring.
// Bit-cost helpers here are shared with the match finder so its scoring
// function mirrors the encoder exactly.

// lengthBits returns the number of SIZE-stream bits a match length costs.
func lengthBits(length int) int {
	switch {
	case length <= lenClass1Max:
		return 1 + lenClass1TailBits
	case length <= lenClass2Max:
		return 2 + lenClass2TailBits
	default:
		return 2 + lenClass3TailBits
	}
}

// distanceBits returns the number of OFFSET-stream bits a distance costs.
func distanceBits(distance uint32) int {
	dp := distance - 1
	if dp < 2 {
		return distSlotBits
	}
	k := bits.Len32(dp) - 1
	return distSlotBits + (k - 1)
}

// matchCost is the encoded bit cost of a fresh MATCH packet: 2 TYPE bits
// plus the length and distance stream costs.
func matchCost(length int, distance uint32) int {
	return 2 + lengthBits(length) + distanceBits(distance)
}

// longrepCost is the encoded bit cost of a LONGREPi packet; repIndex is
// the last-four ring slot (0..3). LONGREP0/1 cost 4 prefix bits,
// LONGREP2/3 cost 5.
func longrepCost(length int, repIndex int) int {
	prefix := 4
	if repIndex >= 2 {
		prefix = 5
	}
	return prefix + lengthBits(length)
}

// literalCost is the encoded bit cost of length literal bytes (1 TYPE bit
// + 1 LITERAL_MSB bit + 7 LITERAL bits each).
func literalCost(length int) int {
	return 9 * length
}

// encodeLength writes length (2..273) into the SIZE stream.
func encodeLength(e *BitEmitter, length int) {
	switch {
	case length <= lenClass1Max:
		e.EmitBit(0)
		e.EmitBits(uint32(length-minMatchLen), lenClass1TailBits)
	case length <= lenClass2Max:
		e.EmitBits(0b10, 2)
		e.EmitBits(uint32(length-lenClass2Base), lenClass2TailBits)
	default:
		e.EmitBits(0b11, 2)
		e.EmitBits(uint32(length-lenClass3Base), lenClass3TailBits)
	}
}

// decodeLength reads a length from the SIZE stream.
func decodeLength(s *BitStream) int {
	if s.GetOneBit() == 0 {
		return int(s.GetBits(lenClass1TailBits)) + minMatchLen
	}
	if s.GetOneBit() == 0 {
		return int(s.GetBits(lenClass2TailBits)) + lenClass2Base
	}
	return int(s.GetBits(lenClass3TailBits)) + lenClass3Base
}

// encodeDistance writes distance into the OFFSET stream. d' = distance-1.
// d' < 2 is a direct 6-bit slot value (slots 0,1); otherwise a 6-bit slot
// encodes k = floor(log2(d')) and the bit below d's top bit, followed by
// k-1 payload bits holding d's remaining low bits.
func encodeDistance(e *BitEmitter, distance uint32) {
	dp := distance - 1
	if dp < 2 {
		e.EmitBits(dp, distSlotBits)
		return
	}
	k := bits.Len32(dp) - 1
	topSub := (dp >> uint(k-1)) & 1
	slot := 2*uint32(k) + topSub
	e.EmitBits(slot, distSlotBits)
	if k > 1 {
		e.EmitBits(dp&((1<<uint(k-1))-1), k-1)
	}
}

// decodeDistance reads a distance from the OFFSET stream.
func decodeDistance(s *BitStream) uint32 {
	slot := s.GetBits(distSlotBits)
	if slot < 2 {
		return slot + 1
	}
	k := int(slot / 2)
	topSub := slot & 1
	var payload uint32
	if k > 1 {
		payload = s.GetBits(k - 1)
	}
	dp := uint32(1)<<uint(k) | topSub<<uint(k-1) | payload
	return dp + 1
}

// encodeType writes a packet's TYPE-stream prefix code.
func encodeType(e *BitEmitter, kind packetKind) {
	switch kind {
	case packetLit:
		e.EmitBits(0b0, 1)
	case packetMatch:
		e.EmitBits(0b10, 2)
	case packetShortRep:
		e.EmitBits(0b1100, 4)
	case packetLongRep0:
		e.EmitBits(0b1101, 4)
	case packetLongRep1:
		e.EmitBits(0b1110, 4)
	case packetLongRep2:
		e.EmitBits(0b11110, 5)
	case packetLongRep3:
		e.EmitBits(0b11111, 5)
	}
}

// decodeType reads a packet kind from the TYPE stream, mirroring the
// encoder's prefix-code table above.
func decodeType(s *BitStream) packetKind {
	if s.GetOneBit() == 0 {
		return packetLit
	}
	if s.GetOneBit() == 0 {
		return packetMatch
	}
	switch s.GetBits(2) {
	case 0b00:
		return packetShortRep
	case 0b01:
		return packetLongRep0
	case 0b10:
		return packetLongRep1
	default:
		if s.GetOneBit() == 0 {
			return packetLongRep2
		}
		return packetLongRep3
	}
}

// encodeLiteral writes one literal byte across the LITERAL_MSB and
// LITERAL streams relative to prevLiteral.
func encodeLiteral(msb, lit *BitEmitter, literal byte, prevLiteral *byte) {
	msb.EmitBit(uint32(literal^*prevLiteral) >> 7)
	lit.EmitBits(uint32(literal&0x7F), 7)
	*prevLiteral = literal
}

// decodeLiteral reconstructs one literal byte from the LITERAL_MSB and
// LITERAL streams relative to prevLiteral.
func decodeLiteral(msb, lit *BitStream, prevLiteral *byte) byte {
	msbBit := byte(msb.GetOneBit())
	low7 := byte(lit.GetBits(7))
	high := (msbBit ^ (*prevLiteral >> 7)) << 7
	literal := high | low7
	*prevLiteral = literal
	return literal
}

// repKindForIndex maps a last-four ring slot to its LONGREP packet kind.
func repKindForIndex(lastIndex int) packetKind {
	switch lastIndex {
	case 0:
		return packetLongRep0
	case 1:
		return packetLongRep1
	case 2:
		return packetLongRep2
	default:
		return packetLongRep3
	}
}

// packetEncoder drives the five bit streams on the encode side. The
// last-four ring itself is owned by the match finder's
// caller: each Event already carries the LastIndex decision made against
// that ring, so the encoder only needs to translate it into a packet kind.
type packetEncoder struct {
	typeE, msbE, litE, sizeE, offE *BitEmitter
	prevLiteral                    byte
}

func newPacketEncoder(typeE, msbE, litE, sizeE, offE *BitEmitter) *packetEncoder {
	return &packetEncoder{typeE: typeE, msbE: msbE, litE: litE, sizeE: sizeE, offE: offE}
}

// encode emits one event's packet(s).
func (p *packetEncoder) encode(buf []byte, ev Event) {
	if ev.Kind == EventLiteral {
		for i := 0; i < ev.Length; i++ {
			encodeType(p.typeE, packetLit)
			encodeLiteral(p.msbE, p.litE, buf[ev.Start+i], &p.prevLiteral)
		}
		return
	}

	var kind packetKind
	switch {
	case ev.LastIndex < 0:
		kind = packetMatch
	case ev.Length == 1 && ev.LastIndex == 0:
		kind = packetShortRep
	default:
		kind = repKindForIndex(ev.LastIndex)
	}
	encodeType(p.typeE, kind)
	switch kind {
	case packetMatch:
		encodeLength(p.sizeE, ev.Length)
		encodeDistance(p.offE, ev.Distance)
	case packetShortRep:
		// length and distance are both implicit.
	default:
		encodeLength(p.sizeE, ev.Length)
	}
}

// packetDecoder mirrors packetEncoder on the decode side, running the
// decode state machine directly into dst.
type packetDecoder struct {
	typeS, msbS, litS, sizeS, offS *BitStream
	ring                           distanceRing
	prevLiteral                    byte
}

func newPacketDecoder(typeS, msbS, litS, sizeS, offS *BitStream) *packetDecoder {
	return &packetDecoder{typeS: typeS, msbS: msbS, litS: litS, sizeS: sizeS, offS: offS}
}

// decode runs the state machine until dst is fully populated.
func (p *packetDecoder) decode(dst []byte) error {
	pos := 0
	for pos < len(dst) {
		kind := decodeType(p.typeS)
		if kind == packetLit {
			dst[pos] = decodeLiteral(p.msbS, p.litS, &p.prevLiteral)
			pos++
			continue
		}

		var length int
		var distance uint32
		switch kind {
		case packetMatch:
			length = decodeLength(p.sizeS)
			distance = decodeDistance(p.offS)
		case packetShortRep:
			length = 1
			distance = p.ring.at(0)
		case packetLongRep0:
			length = decodeLength(p.sizeS)
			distance = p.ring.at(0)
		case packetLongRep1:
			length = decodeLength(p.sizeS)
			distance = p.ring.at(1)
		case packetLongRep2:
			length = decodeLength(p.sizeS)
			distance = p.ring.at(2)
		case packetLongRep3:
			length = decodeLength(p.sizeS)
			distance = p.ring.at(3)
		}

		if distance == 0 || int(distance) > pos {
			return ErrMalformedInput
		}
		if pos+length > len(dst) {
			return ErrMalformedInput
		}
		if err := copyBackRef(dst, pos, int(distance), length); err != nil {
			return err
		}
		p.ring.use(distance)
		pos += length
	}
	return nil
}
